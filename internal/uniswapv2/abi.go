package uniswapv2

import (
	"bytes"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Function selectors (first 4 bytes of keccak256(signature))
var (
	// WETH9 selectors
	SelectorDeposit = selector("deposit()")

	// UniswapV2Factory selectors
	SelectorCreatePair = selector("createPair(address,address)")
	SelectorGetPair    = selector("getPair(address,address)")

	// UniswapV2Pair selectors
	SelectorGetReserves = selector("getReserves()")

	// UniswapV2Router02 selectors
	SelectorAddLiquidity = selector("addLiquidity(address,address,uint256,uint256,uint256,uint256,address,uint256)")
	SelectorSwapExact    = selector("swapExactTokensForTokens(uint256,uint256,address[],address,uint256)")
)

// Event topics (keccak256 of the event signature)
var (
	// Swap(address,uint256,uint256,uint256,uint256,address) emitted by the pair
	SwapEventTopic = crypto.Keccak256Hash([]byte("Swap(address,uint256,uint256,uint256,uint256,address)"))

	// PairCreated(address,address,address,uint256) emitted by the factory
	PairCreatedEventTopic = crypto.Keccak256Hash([]byte("PairCreated(address,address,address,uint256)"))
)

// selector computes the 4-byte function selector from signature.
func selector(sig string) []byte {
	return crypto.Keccak256([]byte(sig))[:4]
}

// EncodeDeposit encodes WETH9.deposit() call (no args, just send ETH).
func EncodeDeposit() []byte {
	return SelectorDeposit
}

// EncodeCreatePair encodes UniswapV2Factory.createPair(address,address).
func EncodeCreatePair(tokenA, tokenB common.Address) []byte {
	data := make([]byte, 4+32+32)
	copy(data[:4], SelectorCreatePair)
	copy(data[4+12:36], tokenA.Bytes())
	copy(data[36+12:68], tokenB.Bytes())
	return data
}

// EncodeGetPair encodes UniswapV2Factory.getPair(address,address).
func EncodeGetPair(tokenA, tokenB common.Address) []byte {
	data := make([]byte, 4+32+32)
	copy(data[:4], SelectorGetPair)
	copy(data[4+12:36], tokenA.Bytes())
	copy(data[36+12:68], tokenB.Bytes())
	return data
}

// EncodeGetReserves encodes UniswapV2Pair.getReserves().
func EncodeGetReserves() []byte {
	return SelectorGetReserves
}

// EncodeAddLiquidity encodes UniswapV2Router02.addLiquidity. Minimum
// amounts are set to zero, the exchange is seeded from a clean state so
// slippage protection has nothing to protect.
func EncodeAddLiquidity(tokenA, tokenB common.Address, amountA, amountB *big.Int, to common.Address, deadline *big.Int) []byte {
	data := make([]byte, 4+8*32)
	copy(data[:4], SelectorAddLiquidity)
	copy(data[4+12:36], tokenA.Bytes())
	copy(data[36+12:68], tokenB.Bytes())
	amountA.FillBytes(data[68:100])
	amountB.FillBytes(data[100:132])
	// amountAMin, amountBMin left as zero
	copy(data[196+12:228], to.Bytes())
	deadline.FillBytes(data[228:260])
	return data
}

// EncodeSwapExactTokensForTokens encodes the router's
// swapExactTokensForTokens(uint256,uint256,address[],address,uint256).
func EncodeSwapExactTokensForTokens(amountIn, amountOutMin *big.Int, path []common.Address, to common.Address, deadline *big.Int) []byte {
	// Head: 5 words, then dynamic tail for path.
	data := make([]byte, 4+5*32+32+len(path)*32)
	copy(data[:4], SelectorSwapExact)
	amountIn.FillBytes(data[4:36])
	amountOutMin.FillBytes(data[36:68])
	// Offset of the path array relative to the start of the arguments.
	big.NewInt(5 * 32).FillBytes(data[68:100])
	copy(data[100+12:132], to.Bytes())
	deadline.FillBytes(data[132:164])
	big.NewInt(int64(len(path))).FillBytes(data[164:196])
	for i, hop := range path {
		copy(data[196+i*32+12:196+(i+1)*32], hop.Bytes())
	}
	return data
}

// SwapInput is the decoded argument set of a swapExactTokensForTokens call.
type SwapInput struct {
	AmountIn     *big.Int
	AmountOutMin *big.Int
	Path         []common.Address
	To           common.Address
	Deadline     *big.Int
}

// DecodeSwapInput decodes the calldata of a swapExactTokensForTokens call.
func DecodeSwapInput(data []byte) (*SwapInput, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("calldata too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], SelectorSwapExact) {
		return nil, fmt.Errorf("unsupported swap function selector %x", data[:4])
	}
	args := data[4:]
	if len(args) < 6*32 {
		return nil, fmt.Errorf("truncated swap arguments: %d bytes", len(args))
	}

	in := &SwapInput{
		AmountIn:     new(big.Int).SetBytes(args[0:32]),
		AmountOutMin: new(big.Int).SetBytes(args[32:64]),
		To:           common.BytesToAddress(args[96+12 : 128]),
		Deadline:     new(big.Int).SetBytes(args[128:160]),
	}

	offset := new(big.Int).SetBytes(args[64:96])
	if !offset.IsInt64() || offset.Int64()+32 > int64(len(args)) {
		return nil, fmt.Errorf("path offset %s out of range", offset)
	}
	pos := int(offset.Int64())
	pathLen := new(big.Int).SetBytes(args[pos : pos+32])
	if !pathLen.IsInt64() || pos+32+int(pathLen.Int64())*32 > len(args) {
		return nil, fmt.Errorf("path length %s out of range", pathLen)
	}
	n := int(pathLen.Int64())
	if n == 0 {
		return nil, fmt.Errorf("empty routing path")
	}
	in.Path = make([]common.Address, n)
	for i := 0; i < n; i++ {
		start := pos + 32 + i*32
		in.Path[i] = common.BytesToAddress(args[start+12 : start+32])
	}
	return in, nil
}
