package txmonitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

// BroadcastAndWait submits each signed transaction in input order and then
// waits for the whole batch to confirm. A submission failure aborts before
// any monitoring begins. With opts.ConfirmOK set, any receipt reporting
// failure status makes the call fail with a *TransactionFailedError even
// though the rest of the batch confirmed.
func (m *Monitor) BroadcastAndWait(ctx context.Context, txs []*types.Transaction, opts Options) (map[common.Hash]*rpc.TransactionReceipt, error) {
	hashes := make([]common.Hash, 0, len(txs))
	for i, tx := range txs {
		rlp, err := tx.MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("encoding transaction %d: %w", i, err)
		}

		hash, err := m.client.SendRawTransaction(ctx, rlp)
		if err != nil {
			if m.metrics != nil {
				m.metrics.RecordBroadcast(false)
			}
			return nil, fmt.Errorf("broadcast of transaction %d (%s): %w", i, tx.Hash().Hex(), err)
		}
		if m.metrics != nil {
			m.metrics.RecordBroadcast(true)
		}

		m.logger.Debug("transaction broadcast",
			slog.Int("index", i),
			slog.String("tx", hash.Hex()),
		)
		hashes = append(hashes, hash)
	}

	receipts, err := m.WaitForReceipts(ctx, hashes, opts)
	if err != nil {
		return nil, err
	}

	if opts.ConfirmOK {
		// Check in submission order so the reported failure is stable.
		for _, hash := range hashes {
			receipt := receipts[hash]
			if receipt != nil && !receipt.Succeeded() {
				return nil, &TransactionFailedError{Hash: hash, Receipt: receipt}
			}
		}
	}

	return receipts, nil
}
