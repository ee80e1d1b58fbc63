// Package types contains public API types for the chain harness.
// These types form the external interface and must remain backwards-compatible.
package types

import "time"

// RunStatus represents the state of a broadcast-and-confirm run.
type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusTimedOut  RunStatus = "timed_out"
	RunStatusFailed    RunStatus = "failed"
)

// TradeKind distinguishes the outcome of an analyzed swap.
type TradeKind string

const (
	TradeKindSuccess TradeKind = "success"
	TradeKindFail    TradeKind = "fail"
)

// ConfirmationReport summarizes one monitoring call for CLI/MCP output.
type ConfirmationReport struct {
	Submitted   int           `json:"submitted"`
	Confirmed   int           `json:"confirmed"`
	Reverted    int           `json:"reverted"`
	Unconfirmed int           `json:"unconfirmed"`
	Elapsed     time.Duration `json:"elapsed"`
}

// FeeSuggestion is the result of a gas fee estimate.
type FeeSuggestion struct {
	GasTipCap string `json:"gasTipCap"` // wei, decimal string
	GasFeeCap string `json:"gasFeeCap"` // wei, decimal string
	BaseFee   string `json:"baseFee"`   // wei, decimal string; "0" pre-EIP-1559
	Legacy    bool   `json:"legacy"`    // true if the chain reports no base fee
}

// DeployedToken describes a mock ERC-20 deployment.
type DeployedToken struct {
	Address  string `json:"address"`
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals uint8  `json:"decimals"`
}

// DeployedExchange describes a Uniswap-v2-style AMM deployment.
type DeployedExchange struct {
	Factory string `json:"factory"`
	WETH9   string `json:"weth9"`
	Router  string `json:"router"`
}

// PairInfo describes a factory trading pair and its current reserves.
type PairInfo struct {
	Pair     string `json:"pair"`
	Reserve0 string `json:"reserve0"` // raw token units, decimal string
	Reserve1 string `json:"reserve1"` // raw token units, decimal string
}

// TradeReport is the analysis of one confirmed swap transaction.
// Amounts are raw token units as decimal strings; they are empty for
// reverted swaps, which leave no amounts to report.
type TradeReport struct {
	Kind              TradeKind `json:"kind"`
	GasUsed           uint64    `json:"gasUsed"`
	EffectiveGasPrice uint64    `json:"effectiveGasPrice"`
	Path              []string  `json:"path,omitempty"`
	AmountIn          string    `json:"amountIn,omitempty"`
	AmountOutMin      string    `json:"amountOutMin,omitempty"`
	AmountOut         string    `json:"amountOut,omitempty"`
	Price             string    `json:"price,omitempty"` // out/in, decimal
}

// TokenBalance is a point-in-time view of an ERC-20 holder.
type TokenBalance struct {
	Balance     string `json:"balance"`
	TotalSupply string `json:"totalSupply"`
	Allowance   string `json:"allowance,omitempty"` // set when a spender was queried
}
