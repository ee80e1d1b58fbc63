package uniswapv2

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/chainharness/internal/rpc"
	"github.com/gateway-fm/chainharness/pkg/types"
)

// Trade is the outcome of a swap transaction analysis.
type Trade interface {
	Kind() types.TradeKind
}

// TradeSuccess describes an executed swap.
type TradeSuccess struct {
	GasUsed           uint64
	EffectiveGasPrice uint64

	// Routing path that was used for this trade.
	Path []common.Address

	AmountIn     *big.Int
	AmountOutMin *big.Int
	AmountOut    *big.Int

	// Price paid from the first token in the path to the last,
	// including fees collected along the route.
	Price *big.Rat
}

// Kind reports a successful trade.
func (t *TradeSuccess) Kind() types.TradeKind { return types.TradeKindSuccess }

// TradeFail describes a swap transaction that reverted.
type TradeFail struct {
	GasUsed           uint64
	EffectiveGasPrice uint64
}

// Kind reports a failed trade.
func (t *TradeFail) Kind() types.TradeKind { return types.TradeKindFail }

// AnalyzeTrade inspects a confirmed swap transaction and reports what
// the trade actually did. Only direct swapExactTokensForTokens calls to
// the router are supported.
func AnalyzeTrade(ctx context.Context, client rpc.Client, deployment *Deployment, txHash common.Hash) (Trade, error) {
	receipt, err := client.GetTransactionReceipt(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("fetch receipt for %s: %w", txHash.Hex(), err)
	}
	if receipt == nil {
		return nil, fmt.Errorf("transaction %s is not mined", txHash.Hex())
	}
	if !strings.EqualFold(receipt.To, deployment.Router.Hex()) {
		return nil, fmt.Errorf("transaction was sent to %s, not the router %s", receipt.To, deployment.Router.Hex())
	}

	if !receipt.Succeeded() {
		return &TradeFail{
			GasUsed:           receipt.GasUsed,
			EffectiveGasPrice: receipt.EffectiveGasPrice,
		}, nil
	}

	input, err := swapInputFor(ctx, client, txHash)
	if err != nil {
		return nil, err
	}

	amountOut, err := swapAmountOut(receipt.Logs)
	if err != nil {
		return nil, fmt.Errorf("analyse swap logs for %s: %w", txHash.Hex(), err)
	}

	// Both mock tokens use the same decimals, the raw ratio is the price.
	price := new(big.Rat).SetFrac(new(big.Int).Set(amountOut), new(big.Int).Set(input.AmountIn))

	return &TradeSuccess{
		GasUsed:           receipt.GasUsed,
		EffectiveGasPrice: receipt.EffectiveGasPrice,
		Path:              input.Path,
		AmountIn:          input.AmountIn,
		AmountOutMin:      input.AmountOutMin,
		AmountOut:         amountOut,
		Price:             price,
	}, nil
}

// swapInputFor fetches the original transaction and decodes its calldata.
func swapInputFor(ctx context.Context, client rpc.Client, txHash common.Hash) (*SwapInput, error) {
	raw, err := client.GetTransactionByHash(ctx, txHash)
	if err != nil {
		return nil, fmt.Errorf("fetch transaction %s: %w", txHash.Hex(), err)
	}

	var tx struct {
		Input string `json:"input"`
	}
	if err := json.Unmarshal(raw, &tx); err != nil {
		return nil, fmt.Errorf("parse transaction %s: %w", txHash.Hex(), err)
	}

	input, err := DecodeSwapInput(common.FromHex(tx.Input))
	if err != nil {
		return nil, fmt.Errorf("decode swap calldata for %s: %w", txHash.Hex(), err)
	}
	return input, nil
}

// swapAmountOut extracts the output amount from the last Swap event in
// the receipt. Receipts carry Transfer and Sync events as well, only
// Swap events matter here.
func swapAmountOut(logs []rpc.Log) (*big.Int, error) {
	var last *rpc.Log
	for i := range logs {
		if len(logs[i].Topics) > 0 && logs[i].Topics[0] == SwapEventTopic {
			last = &logs[i]
		}
	}
	if last == nil {
		return nil, fmt.Errorf("no Swap event in receipt")
	}
	if len(last.Data) < 4*32 {
		return nil, fmt.Errorf("short Swap event data: %d bytes", len(last.Data))
	}

	// Data layout: amount0In, amount1In, amount0Out, amount1Out.
	amount0Out := new(big.Int).SetBytes(last.Data[64:96])
	amount1Out := new(big.Int).SetBytes(last.Data[96:128])

	// The out token shows up on one side only for simple swaps.
	if amount0Out.Sign() > 0 && amount1Out.Sign() > 0 {
		return nil, fmt.Errorf("both swap outputs are non-zero, unsupported swap type")
	}
	if amount0Out.Sign() > 0 {
		return amount0Out, nil
	}
	return amount1Out, nil
}
