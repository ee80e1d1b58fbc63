package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/gateway-fm/chainharness/pkg/types"
)

// SQLiteStorage implements Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for better concurrent performance
	dsn := fmt.Sprintf("%s?_journal=WAL&_sync=NORMAL&_foreign_keys=ON", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &SQLiteStorage{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return s, nil
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS broadcast_runs (
		id TEXT PRIMARY KEY,
		started_at DATETIME NOT NULL,
		completed_at DATETIME,
		submitted INTEGER DEFAULT 0,
		confirmed INTEGER DEFAULT 0,
		reverted INTEGER DEFAULT 0,
		unconfirmed INTEGER DEFAULT 0,
		status TEXT DEFAULT 'running',
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_broadcast_runs_started ON broadcast_runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS receipts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		tx_hash TEXT NOT NULL,
		block_number INTEGER,
		status INTEGER,
		gas_used INTEGER,
		FOREIGN KEY (run_id) REFERENCES broadcast_runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_receipts_run ON receipts(run_id);
	CREATE INDEX IF NOT EXISTS idx_receipts_hash ON receipts(tx_hash);
	`

	_, err := s.db.Exec(schema)
	return err
}

// CreateRun inserts a new run in running state.
func (s *SQLiteStorage) CreateRun(ctx context.Context, run *BroadcastRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO broadcast_runs (id, started_at, submitted, confirmed, reverted, unconfirmed, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.Submitted, run.Confirmed, run.Reverted, run.Unconfirmed, string(run.Status), run.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}
	return nil
}

// CompleteRun records the final state of a run.
func (s *SQLiteStorage) CompleteRun(ctx context.Context, id string, run *BroadcastRun) error {
	completedAt := time.Now().UTC()
	if run.CompletedAt != nil {
		completedAt = run.CompletedAt.UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE broadcast_runs
		SET completed_at = ?, submitted = ?, confirmed = ?, reverted = ?, unconfirmed = ?, status = ?, error_message = ?
		WHERE id = ?`,
		completedAt, run.Submitted, run.Confirmed, run.Reverted, run.Unconfirmed, string(run.Status), run.Error, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// GetRun returns a single run by ID.
func (s *SQLiteStorage) GetRun(ctx context.Context, id string) (*BroadcastRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, completed_at, submitted, confirmed, reverted, unconfirmed, status, error_message
		FROM broadcast_runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// ListRuns returns runs ordered newest first.
func (s *SQLiteStorage) ListRuns(ctx context.Context, limit, offset int) (*PaginatedRuns, error) {
	if limit <= 0 {
		limit = 20
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM broadcast_runs`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, completed_at, submitted, confirmed, reverted, unconfirmed, status, error_message
		FROM broadcast_runs ORDER BY started_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	page := &PaginatedRuns{Runs: []BroadcastRun{}, Total: total, Limit: limit, Offset: offset}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		page.Runs = append(page.Runs, *run)
	}
	return page, rows.Err()
}

// InsertReceipts stores the receipts of a completed run in one transaction.
func (s *SQLiteStorage) InsertReceipts(ctx context.Context, runID string, receipts []ReceiptRecord) error {
	if len(receipts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO receipts (run_id, tx_hash, block_number, status, gas_used)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range receipts {
		if _, err := stmt.ExecContext(ctx, runID, r.TxHash, r.BlockNumber, r.Status, r.GasUsed); err != nil {
			return fmt.Errorf("failed to insert receipt %s: %w", r.TxHash, err)
		}
	}
	return tx.Commit()
}

// GetReceipts returns the receipts of a run in insertion order.
func (s *SQLiteStorage) GetReceipts(ctx context.Context, runID string) ([]ReceiptRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tx_hash, block_number, status, gas_used
		FROM receipts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query receipts: %w", err)
	}
	defer rows.Close()

	var receipts []ReceiptRecord
	for rows.Next() {
		var r ReceiptRecord
		if err := rows.Scan(&r.TxHash, &r.BlockNumber, &r.Status, &r.GasUsed); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, r)
	}
	return receipts, rows.Err()
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*BroadcastRun, error) {
	var run BroadcastRun
	var completedAt sql.NullTime
	var status string
	var errMsg sql.NullString

	err := row.Scan(&run.ID, &run.StartedAt, &completedAt, &run.Submitted, &run.Confirmed, &run.Reverted, &run.Unconfirmed, &status, &errMsg)
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	run.Status = types.RunStatus(status)
	run.Error = errMsg.String
	return &run, nil
}

var _ Storage = (*SQLiteStorage)(nil)
