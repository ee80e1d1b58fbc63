// Package token deploys and drives a mock ERC20 for test scenarios.
package token

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/chainharness/internal/account"
	"github.com/gateway-fm/chainharness/internal/contract"
	"github.com/gateway-fm/chainharness/internal/rpc"
	"github.com/gateway-fm/chainharness/internal/txmonitor"
)

// ERC20 function selectors
var (
	// transfer(address,uint256) = 0xa9059cbb
	transferSelector = common.FromHex("0xa9059cbb")
	// approve(address,uint256) = 0x095ea7b3
	approveSelector = common.FromHex("0x095ea7b3")
	// balanceOf(address) = 0x70a08231
	balanceOfSelector = common.FromHex("0x70a08231")
	// allowance(address,address) = 0xdd62ed3e
	allowanceSelector = common.FromHex("0xdd62ed3e")
	// totalSupply() = 0x18160ddd
	totalSupplySelector = common.FromHex("0x18160ddd")
)

// Decimals is fixed for the mock token. Name and symbol live off-chain
// on the Token value, the contract itself stores neither.
const Decimals = 18

// TransferGasLimit covers a transfer into a cold storage slot.
const TransferGasLimit = 70_000

// ApproveGasLimit covers an allowance write.
const ApproveGasLimit = 60_000

// Token is a deployed mock ERC20.
type Token struct {
	Address  common.Address
	Name     string
	Symbol   string
	Decimals uint8

	client rpc.Client
}

// Deploy creates a fresh mock token contract. The full supply is
// available to every holder because the contract uses unchecked
// arithmetic, so tests never need a funding step.
func Deploy(ctx context.Context, deployer *contract.Deployer, owner *account.Account, name, symbol string, client rpc.Client, opts txmonitor.Options) (*Token, error) {
	addr, err := deployer.DeployOrSkip(ctx, owner, "ERC20 "+symbol, Bytecode, opts)
	if err != nil {
		return nil, fmt.Errorf("token deployment failed: %w", err)
	}

	return &Token{
		Address:  addr,
		Name:     name,
		Symbol:   symbol,
		Decimals: Decimals,
		client:   client,
	}, nil
}

// Bind wraps an already deployed token contract.
func Bind(addr common.Address, name, symbol string, client rpc.Client) *Token {
	return &Token{
		Address:  addr,
		Name:     name,
		Symbol:   symbol,
		Decimals: Decimals,
		client:   client,
	}
}

// EncodeTransfer encodes a transfer(address,uint256) call.
func EncodeTransfer(to common.Address, amount *big.Int) []byte {
	return encodeAddressUint(transferSelector, to, amount)
}

// EncodeApprove encodes an approve(address,uint256) call.
func EncodeApprove(spender common.Address, amount *big.Int) []byte {
	return encodeAddressUint(approveSelector, spender, amount)
}

func encodeAddressUint(selector []byte, addr common.Address, amount *big.Int) []byte {
	if amount.Sign() < 0 {
		panic("amount must be non-negative")
	}
	data := make([]byte, 4+32+32)
	copy(data[0:4], selector)
	copy(data[4+12:4+32], addr.Bytes())
	amount.FillBytes(data[4+32 : 4+64])
	return data
}

// BalanceOf reads the token balance of an address.
func (t *Token) BalanceOf(ctx context.Context, holder common.Address) (*big.Int, error) {
	data := make([]byte, 4+32)
	copy(data[0:4], balanceOfSelector)
	copy(data[4+12:4+32], holder.Bytes())

	result, err := t.client.CallContract(ctx, t.Address.Hex(), data)
	if err != nil {
		return nil, fmt.Errorf("balanceOf call failed: %w", err)
	}
	return new(big.Int).SetBytes(result), nil
}

// Allowance reads the spending allowance granted by owner to spender.
func (t *Token) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	data := make([]byte, 4+32+32)
	copy(data[0:4], allowanceSelector)
	copy(data[4+12:4+32], owner.Bytes())
	copy(data[4+32+12:4+64], spender.Bytes())

	result, err := t.client.CallContract(ctx, t.Address.Hex(), data)
	if err != nil {
		return nil, fmt.Errorf("allowance call failed: %w", err)
	}
	return new(big.Int).SetBytes(result), nil
}

// TotalSupply reads the token's total supply.
func (t *Token) TotalSupply(ctx context.Context) (*big.Int, error) {
	result, err := t.client.CallContract(ctx, t.Address.Hex(), totalSupplySelector)
	if err != nil {
		return nil, fmt.Errorf("totalSupply call failed: %w", err)
	}
	return new(big.Int).SetBytes(result), nil
}
