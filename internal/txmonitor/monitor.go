// Package txmonitor waits for broadcast transactions to reach a
// confirmation depth.
package txmonitor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/chainharness/internal/metrics"
	"github.com/gateway-fm/chainharness/internal/rpc"
)

// HeadSource reports the current chain head height. The default source
// polls eth_blockNumber; a WebSocket newHeads tracker can be swapped in.
type HeadSource interface {
	HeadHeight(ctx context.Context) (uint64, error)
}

// Options holds the confirmation policy for one monitoring call.
// The policy is fixed for the lifetime of the call.
type Options struct {
	// ConfirmationBlocks is how many blocks must be mined on top of a
	// transaction's inclusion block before it counts as confirmed.
	// Zero means a receipt sighting is enough. Must be zero on test
	// chains that do not mine on their own, or the call can only end
	// in a timeout.
	ConfirmationBlocks uint64

	// MaxTimeout is the wall-clock ceiling for the whole call.
	MaxTimeout time.Duration

	// PollDelay is the sleep between poll rounds.
	PollDelay time.Duration

	// ConfirmOK makes BroadcastAndWait fail on any receipt that
	// reports failure status.
	ConfirmOK bool
}

// DefaultOptions returns the standard confirmation policy.
func DefaultOptions() Options {
	return Options{
		ConfirmationBlocks: 0,
		MaxTimeout:         5 * time.Minute,
		PollDelay:          time.Second,
		ConfirmOK:          true,
	}
}

// Monitor polls a chain node until a batch of transactions confirms.
type Monitor struct {
	client  rpc.Client
	head    HeadSource
	logger  *slog.Logger
	metrics *metrics.HarnessMetrics

	// Injected for deterministic tests.
	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Monitor.
func New(client rpc.Client, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		client: client,
		logger: logger,
		now:    time.Now,
		sleep:  sleepCtx,
	}
}

// SetHeadSource replaces the default eth_blockNumber polling with another
// chain head source. Polling remains the fallback while the source
// cannot answer.
func (m *Monitor) SetHeadSource(h HeadSource) {
	m.head = h
}

// SetMetrics attaches Prometheus metrics.
func (m *Monitor) SetMetrics(hm *metrics.HarnessMetrics) {
	m.metrics = hm
}

// WaitForReceipts polls until every transaction in txHashes has a receipt
// at least opts.ConfirmationBlocks deep, then returns a map from hash to
// receipt. Duplicate hashes collapse to one entry. An empty input returns
// an empty map without touching the node.
//
// A nil receipt from the node is pending inclusion and is retried each
// round; a node error aborts the call immediately. When opts.MaxTimeout
// elapses with transactions still pending, the call fails with a
// *ConfirmationTimeoutError listing exactly the unconfirmed hashes.
func (m *Monitor) WaitForReceipts(ctx context.Context, txHashes []common.Hash, opts Options) (map[common.Hash]*rpc.TransactionReceipt, error) {
	receipts := make(map[common.Hash]*rpc.TransactionReceipt, len(txHashes))

	// Deduplicate, keeping first-seen order for stable polling.
	watch := make([]common.Hash, 0, len(txHashes))
	seen := make(map[common.Hash]struct{}, len(txHashes))
	for _, hash := range txHashes {
		if _, ok := seen[hash]; ok {
			continue
		}
		seen[hash] = struct{}{}
		watch = append(watch, hash)
	}

	if len(watch) == 0 {
		return receipts, nil
	}

	started := m.now()

	m.logger.Info("waiting for transactions to confirm",
		slog.Int("count", len(watch)),
		slog.Uint64("confirmationBlocks", opts.ConfirmationBlocks),
		slog.Duration("maxTimeout", opts.MaxTimeout),
	)

	for len(watch) > 0 {
		if m.metrics != nil {
			m.metrics.PollRounds.Inc()
			m.metrics.WatchSetSize.Set(float64(len(watch)))
		}

		pollStart := m.now()
		batch, err := m.client.GetTransactionReceiptsBatch(ctx, watch)
		if m.metrics != nil {
			m.metrics.PollLatency.Observe(m.now().Sub(pollStart).Seconds())
		}
		if err != nil {
			return nil, fmt.Errorf("receipt poll failed: %w", err)
		}

		// The head height is only needed when a depth policy is in
		// force; with zero confirmation blocks a sighting promotes.
		var head uint64
		if opts.ConfirmationBlocks > 0 && anyReceipt(batch) {
			head, err = m.headHeight(ctx)
			if err != nil {
				return nil, fmt.Errorf("chain head lookup failed: %w", err)
			}
		}

		var remaining []common.Hash
		for i, receipt := range batch {
			hash := watch[i]
			if receipt == nil {
				// Not yet included; inclusion visibility lags
				// broadcast, so this is steady state.
				m.logger.Debug("transaction not found yet", slog.String("tx", hash.Hex()))
				remaining = append(remaining, hash)
				continue
			}

			confirmations := uint64(0)
			if head > receipt.BlockNumber {
				confirmations = head - receipt.BlockNumber
			}
			if confirmations >= opts.ConfirmationBlocks {
				m.logger.Debug("transaction confirmed",
					slog.String("tx", hash.Hex()),
					slog.Uint64("block", receipt.BlockNumber),
					slog.Uint64("confirmations", confirmations),
				)
				receipts[hash] = receipt
				if m.metrics != nil {
					m.metrics.TxConfirmed.Inc()
					if !receipt.Succeeded() {
						m.metrics.TxReverted.Inc()
					}
				}
				continue
			}

			m.logger.Debug("still waiting for more confirmations",
				slog.String("tx", hash.Hex()),
				slog.Uint64("confirmations", confirmations),
				slog.Uint64("needed", opts.ConfirmationBlocks),
			)
			remaining = append(remaining, hash)
		}
		watch = remaining

		if len(watch) == 0 {
			break
		}

		if err := m.sleep(ctx, opts.PollDelay); err != nil {
			return nil, err
		}

		if m.now().Sub(started) > opts.MaxTimeout {
			if m.metrics != nil {
				m.metrics.ConfirmTimeouts.Inc()
			}
			return nil, m.timeoutError(ctx, started, opts.MaxTimeout, watch)
		}
	}

	if m.metrics != nil {
		m.metrics.WatchSetSize.Set(0)
		m.metrics.ConfirmLatency.Observe(m.now().Sub(started).Seconds())
	}

	return receipts, nil
}

// headHeight asks the configured head source, falling back to polling
// eth_blockNumber when it cannot answer. A WebSocket tracker has no
// height until its first notification arrives.
func (m *Monitor) headHeight(ctx context.Context) (uint64, error) {
	if m.head != nil {
		head, err := m.head.HeadHeight(ctx)
		if err == nil {
			return head, nil
		}
		m.logger.Debug("head source unavailable, polling for the head",
			slog.String("error", err.Error()),
		)
	}
	return m.client.GetBlockNumber(ctx)
}

// timeoutError collects best-effort transaction data for everything still
// unconfirmed. Diagnostic fetch failures never mask the timeout itself.
func (m *Monitor) timeoutError(ctx context.Context, started time.Time, timeout time.Duration, unconfirmed []common.Hash) error {
	txData := make(map[common.Hash]json.RawMessage, len(unconfirmed))
	for _, hash := range unconfirmed {
		data, err := m.client.GetTransactionByHash(ctx, hash)
		if err != nil {
			m.logger.Debug("diagnostic fetch failed",
				slog.String("tx", hash.Hex()),
				slog.String("error", err.Error()),
			)
			continue
		}
		m.logger.Error("transaction never confirmed",
			slog.String("tx", hash.Hex()),
			slog.String("data", string(data)),
		)
		txData[hash] = data
	}

	return &ConfirmationTimeoutError{
		Started:     started,
		Timeout:     timeout,
		Unconfirmed: append([]common.Hash(nil), unconfirmed...),
		TxData:      txData,
	}
}

func anyReceipt(batch []*rpc.TransactionReceipt) bool {
	for _, r := range batch {
		if r != nil {
			return true
		}
	}
	return false
}

// sleepCtx blocks for d or until the context is cancelled.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
