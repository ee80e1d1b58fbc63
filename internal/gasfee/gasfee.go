// Package gasfee suggests transaction fee parameters from live chain state.
package gasfee

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

// Fees holds suggested fee parameters in wei.
type Fees struct {
	GasTipCap *big.Int
	GasFeeCap *big.Int
	BaseFee   *big.Int
	Legacy    bool
}

// DefaultTip is used when the node does not suggest a priority fee.
const DefaultTip = 1_000_000_000 // 1 gwei

// GasMarginPercent is added on top of eth_estimateGas results to absorb
// state drift between estimation and inclusion.
const GasMarginPercent = 20

// Estimator derives fee suggestions from the connected node.
type Estimator struct {
	client rpc.Client
	logger *slog.Logger
}

// New creates a fee estimator.
func New(client rpc.Client, logger *slog.Logger) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Estimator{client: client, logger: logger}
}

// Suggest returns fee parameters for the next transaction. On EIP-1559
// chains the fee cap is twice the current base fee plus the tip, which
// keeps the transaction includable across several full blocks of base
// fee growth. Chains without a base fee fall back to the legacy gas
// price.
func (e *Estimator) Suggest(ctx context.Context) (*Fees, error) {
	baseFee, err := e.client.GetBaseFee(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch base fee: %w", err)
	}

	if baseFee == 0 {
		gasPrice, err := e.client.GetGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch gas price: %w", err)
		}
		e.logger.Debug("no base fee, using legacy gas price", "gas_price", gasPrice)
		return &Fees{
			GasTipCap: new(big.Int).SetUint64(gasPrice),
			GasFeeCap: new(big.Int).SetUint64(gasPrice),
			BaseFee:   big.NewInt(0),
			Legacy:    true,
		}, nil
	}

	tip, err := e.client.GetMaxPriorityFee(ctx)
	if err != nil {
		e.logger.Debug("priority fee suggestion unavailable, using default", "error", err)
		tip = DefaultTip
	}
	if tip == 0 {
		tip = DefaultTip
	}

	feeCap := new(big.Int).SetUint64(baseFee)
	feeCap.Mul(feeCap, big.NewInt(2))
	feeCap.Add(feeCap, new(big.Int).SetUint64(tip))

	return &Fees{
		GasTipCap: new(big.Int).SetUint64(tip),
		GasFeeCap: feeCap,
		BaseFee:   new(big.Int).SetUint64(baseFee),
		Legacy:    false,
	}, nil
}

// EstimateGas runs eth_estimateGas for the given call and adds a safety
// margin.
func (e *Estimator) EstimateGas(ctx context.Context, from, to string, data []byte, value *big.Int) (uint64, error) {
	gas, err := e.client.EstimateGas(ctx, from, to, data, value)
	if err != nil {
		return 0, fmt.Errorf("gas estimation failed: %w", err)
	}
	return gas + gas*GasMarginPercent/100, nil
}
