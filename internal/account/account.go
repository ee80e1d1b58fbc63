// Package account manages signing accounts for the harness.
package account

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

// Account holds a signing key and a locally tracked nonce.
type Account struct {
	PrivateKey *ecdsa.PrivateKey
	Address    common.Address

	mu    sync.Mutex
	nonce uint64
}

// New creates an account from a private key.
func New(privateKey *ecdsa.PrivateKey) *Account {
	return &Account{
		PrivateKey: privateKey,
		Address:    crypto.PubkeyToAddress(privateKey.PublicKey),
	}
}

// NewFromHex creates an account from a hex-encoded private key.
func NewFromHex(hexKey string) (*Account, error) {
	privateKey, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return New(privateKey), nil
}

// NextNonce returns the current nonce and increments it.
func (a *Account) NextNonce() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	nonce := a.nonce
	a.nonce++
	return nonce
}

// PeekNonce returns the current nonce without incrementing.
func (a *Account) PeekNonce() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.nonce
}

// Resync fetches the pending nonce from the chain and updates local state.
// The nonce never moves backwards, so a concurrent reservation between the
// RPC call and the update cannot be reissued.
func (a *Account) Resync(ctx context.Context, client rpc.Client) error {
	nonce, err := client.GetNonce(ctx, a.Address.Hex())
	if err != nil {
		return err
	}
	a.mu.Lock()
	if nonce > a.nonce {
		a.nonce = nonce
	}
	a.mu.Unlock()
	return nil
}

// TxOpts bundles the fee parameters for SignTx.
type TxOpts struct {
	ChainID   *big.Int
	GasTipCap *big.Int
	GasFeeCap *big.Int
	Gas       uint64
}

// SignTx builds and signs an EIP-1559 transaction using the next local
// nonce. A nil `to` creates a contract.
func (a *Account) SignTx(opts TxOpts, to *common.Address, value *big.Int, data []byte) (*types.Transaction, error) {
	if opts.ChainID == nil || opts.ChainID.Sign() == 0 {
		return nil, fmt.Errorf("chain id must be non-zero")
	}
	if value == nil {
		value = big.NewInt(0)
	}

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   opts.ChainID,
		Nonce:     a.NextNonce(),
		GasTipCap: opts.GasTipCap,
		GasFeeCap: opts.GasFeeCap,
		Gas:       opts.Gas,
		To:        to,
		Value:     value,
		Data:      data,
	})

	signer := types.LatestSignerForChainID(opts.ChainID)
	signed, err := types.SignTx(tx, signer, a.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign tx: %w", err)
	}
	return signed, nil
}

// DevPrivateKeys are the well-known Anvil/Hardhat dev chain keys.
var DevPrivateKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", // Account 0
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d", // Account 1
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a", // Account 2
	"7c852118294e51e653712a81e05800f419141751be58f605c371e15141b007a6", // Account 3
	"47e179ec197488593b187f80a00eb0da91f1b9d0b13f8733639f19c30a34926a", // Account 4
}

// LoadDevAccounts loads the standard dev chain accounts.
func LoadDevAccounts() ([]*Account, error) {
	accounts := make([]*Account, 0, len(DevPrivateKeys))
	for _, hexKey := range DevPrivateKeys {
		acc, err := NewFromHex(hexKey)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}
