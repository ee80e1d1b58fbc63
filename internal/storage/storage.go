package storage

import "context"

// Storage defines the persistence interface for broadcast run history.
type Storage interface {
	// Run lifecycle
	CreateRun(ctx context.Context, run *BroadcastRun) error
	CompleteRun(ctx context.Context, id string, run *BroadcastRun) error
	GetRun(ctx context.Context, id string) (*BroadcastRun, error)
	ListRuns(ctx context.Context, limit, offset int) (*PaginatedRuns, error)

	// Receipt bulk insert (called after the run completes)
	InsertReceipts(ctx context.Context, runID string, receipts []ReceiptRecord) error
	GetReceipts(ctx context.Context, runID string) ([]ReceiptRecord, error)

	// Lifecycle
	Close() error
}
