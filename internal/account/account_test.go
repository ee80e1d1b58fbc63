package account

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

func TestNewFromHex(t *testing.T) {
	acc, err := NewFromHex(DevPrivateKeys[0])
	if err != nil {
		t.Fatalf("NewFromHex() error = %v", err)
	}

	// The canonical Anvil account 0 address.
	want := common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")
	if acc.Address != want {
		t.Errorf("Address = %s, want %s", acc.Address.Hex(), want.Hex())
	}
}

func TestNewFromHexInvalid(t *testing.T) {
	if _, err := NewFromHex("not-a-key"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestNextNonceSequence(t *testing.T) {
	acc, err := NewFromHex(DevPrivateKeys[0])
	if err != nil {
		t.Fatal(err)
	}

	for i := uint64(0); i < 5; i++ {
		if got := acc.NextNonce(); got != i {
			t.Errorf("NextNonce() = %d, want %d", got, i)
		}
	}
	if got := acc.PeekNonce(); got != 5 {
		t.Errorf("PeekNonce() = %d, want 5", got)
	}
}

func TestNextNonceConcurrent(t *testing.T) {
	acc, err := NewFromHex(DevPrivateKeys[0])
	if err != nil {
		t.Fatal(err)
	}

	const workers = 8
	const perWorker = 100

	seen := make(chan uint64, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				seen <- acc.NextNonce()
			}
		}()
	}
	wg.Wait()
	close(seen)

	unique := make(map[uint64]bool)
	for n := range seen {
		if unique[n] {
			t.Fatalf("nonce %d issued twice", n)
		}
		unique[n] = true
	}
	if len(unique) != workers*perWorker {
		t.Errorf("got %d unique nonces, want %d", len(unique), workers*perWorker)
	}
}

type nonceClient struct {
	rpc.Client
	nonce uint64
}

func (c *nonceClient) GetNonce(_ context.Context, _ string) (uint64, error) {
	return c.nonce, nil
}

func TestResyncNeverMovesBackwards(t *testing.T) {
	acc, err := NewFromHex(DevPrivateKeys[0])
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 10; i++ {
		acc.NextNonce()
	}

	if err := acc.Resync(context.Background(), &nonceClient{nonce: 3}); err != nil {
		t.Fatalf("Resync() error = %v", err)
	}
	if got := acc.PeekNonce(); got != 10 {
		t.Errorf("PeekNonce() after stale resync = %d, want 10", got)
	}

	if err := acc.Resync(context.Background(), &nonceClient{nonce: 42}); err != nil {
		t.Fatalf("Resync() error = %v", err)
	}
	if got := acc.PeekNonce(); got != 42 {
		t.Errorf("PeekNonce() after forward resync = %d, want 42", got)
	}
}

func TestSignTx(t *testing.T) {
	acc, err := NewFromHex(DevPrivateKeys[0])
	if err != nil {
		t.Fatal(err)
	}

	to := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	opts := TxOpts{
		ChainID:   big.NewInt(1337),
		GasTipCap: big.NewInt(1_000_000_000),
		GasFeeCap: big.NewInt(20_000_000_000),
		Gas:       21000,
	}

	tx, err := acc.SignTx(opts, &to, big.NewInt(1), nil)
	if err != nil {
		t.Fatalf("SignTx() error = %v", err)
	}
	if tx.Type() != types.DynamicFeeTxType {
		t.Errorf("tx type = %d, want %d", tx.Type(), types.DynamicFeeTxType)
	}
	if tx.Nonce() != 0 {
		t.Errorf("nonce = %d, want 0", tx.Nonce())
	}

	signer := types.LatestSignerForChainID(opts.ChainID)
	from, err := types.Sender(signer, tx)
	if err != nil {
		t.Fatalf("Sender() error = %v", err)
	}
	if from != acc.Address {
		t.Errorf("recovered sender = %s, want %s", from.Hex(), acc.Address.Hex())
	}
}

func TestSignTxRequiresChainID(t *testing.T) {
	acc, err := NewFromHex(DevPrivateKeys[0])
	if err != nil {
		t.Fatal(err)
	}
	if _, err := acc.SignTx(TxOpts{}, nil, nil, nil); err == nil {
		t.Fatal("expected error for missing chain id")
	}
}

func TestLoadDevAccounts(t *testing.T) {
	accounts, err := LoadDevAccounts()
	if err != nil {
		t.Fatalf("LoadDevAccounts() error = %v", err)
	}
	if len(accounts) != len(DevPrivateKeys) {
		t.Fatalf("got %d accounts, want %d", len(accounts), len(DevPrivateKeys))
	}
	seen := make(map[common.Address]bool)
	for _, acc := range accounts {
		if seen[acc.Address] {
			t.Errorf("duplicate address %s", acc.Address.Hex())
		}
		seen[acc.Address] = true
	}
}
