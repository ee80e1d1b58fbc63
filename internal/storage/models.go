// Package storage provides persistence for broadcast run history.
package storage

import (
	"time"

	"github.com/gateway-fm/chainharness/pkg/types"
)

// BroadcastRun is one persisted broadcast-and-confirm invocation.
type BroadcastRun struct {
	ID          string          `json:"id"`
	StartedAt   time.Time       `json:"startedAt"`
	CompletedAt *time.Time      `json:"completedAt,omitempty"`
	Submitted   int             `json:"submitted"`
	Confirmed   int             `json:"confirmed"`
	Reverted    int             `json:"reverted"`
	Unconfirmed int             `json:"unconfirmed"`
	Status      types.RunStatus `json:"status"`
	Error       string          `json:"error,omitempty"`
}

// ReceiptRecord is a confirmed receipt belonging to a run.
type ReceiptRecord struct {
	TxHash      string `json:"txHash"`
	BlockNumber uint64 `json:"blockNumber"`
	Status      uint64 `json:"status"` // 1 = success, 0 = revert
	GasUsed     uint64 `json:"gasUsed"`
}

// PaginatedRuns is a page of run history.
type PaginatedRuns struct {
	Runs   []BroadcastRun `json:"runs"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}
