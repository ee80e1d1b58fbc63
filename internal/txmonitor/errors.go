package txmonitor

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

// ConfirmationTimeoutError is returned when the wall-clock deadline passes
// with transactions still unconfirmed. Unconfirmed lists exactly the
// residual watch set; TxData holds whatever diagnostic transaction data
// the node returned for them.
type ConfirmationTimeoutError struct {
	Started     time.Time
	Timeout     time.Duration
	Unconfirmed []common.Hash
	TxData      map[common.Hash]json.RawMessage
}

func (e *ConfirmationTimeoutError) Error() string {
	return fmt.Sprintf("transaction confirmation timed out after %s (started %s): %d still unconfirmed",
		e.Timeout, e.Started.Format(time.RFC3339), len(e.Unconfirmed))
}

// TransactionFailedError is returned by BroadcastAndWait when ConfirmOK is
// set and a receipt reports failure status.
type TransactionFailedError struct {
	Hash    common.Hash
	Receipt *rpc.TransactionReceipt
}

func (e *TransactionFailedError) Error() string {
	return fmt.Sprintf("transaction %s failed in block %d", e.Hash.Hex(), e.Receipt.BlockNumber)
}
