package uniswapv2

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// Deployment holds addresses of a deployed Uniswap v2 style exchange.
// Compatible targets include Uniswap v2, Sushiswap, Pancakeswap v2 and
// other routers sharing the v2 interface.
type Deployment struct {
	Factory common.Address
	WETH9   common.Address
	Router  common.Address
}

// PairConfig holds parameters for seeding a trading pair.
type PairConfig struct {
	TokenA common.Address
	TokenB common.Address

	// Initial reserves deposited via addLiquidity.
	AmountA *big.Int
	AmountB *big.Int
}

// MaxUint256 is the maximum uint256 value (used for approvals).
var MaxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// SortTokens orders a token pair the way the factory does.
func SortTokens(tokenA, tokenB common.Address) (common.Address, common.Address) {
	if tokenA.Cmp(tokenB) < 0 {
		return tokenA, tokenB
	}
	return tokenB, tokenA
}
