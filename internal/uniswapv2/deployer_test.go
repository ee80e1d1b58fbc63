package uniswapv2

import (
	"bytes"
	"context"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"

	"github.com/gateway-fm/chainharness/internal/account"
	"github.com/gateway-fm/chainharness/internal/contract"
	"github.com/gateway-fm/chainharness/internal/gasfee"
	"github.com/gateway-fm/chainharness/internal/rpc"
	"github.com/gateway-fm/chainharness/internal/txmonitor"
)

// exchangeClient fakes the factory and a pair contract. The pair
// springs into existence once a createPair transaction is broadcast.
type exchangeClient struct {
	rpc.Client

	mu sync.Mutex

	pair       common.Address
	pairExists bool

	reserve0 *big.Int
	reserve1 *big.Int

	sent []*ethtypes.Transaction
}

func (c *exchangeClient) GetNonce(_ context.Context, _ string) (uint64, error) {
	return 0, nil
}

func (c *exchangeClient) GetBaseFee(_ context.Context) (uint64, error) {
	return 1_000_000_000, nil
}

func (c *exchangeClient) GetMaxPriorityFee(_ context.Context) (uint64, error) {
	return 100, nil
}

func (c *exchangeClient) SendRawTransaction(_ context.Context, txRLP []byte) (common.Hash, error) {
	var tx ethtypes.Transaction
	if err := tx.UnmarshalBinary(txRLP); err != nil {
		return common.Hash{}, err
	}

	c.mu.Lock()
	c.sent = append(c.sent, &tx)
	if len(tx.Data()) >= 4 && bytes.Equal(tx.Data()[:4], SelectorCreatePair) {
		c.pairExists = true
	}
	c.mu.Unlock()
	return tx.Hash(), nil
}

func (c *exchangeClient) GetTransactionReceiptsBatch(_ context.Context, txHashes []common.Hash) ([]*rpc.TransactionReceipt, error) {
	out := make([]*rpc.TransactionReceipt, len(txHashes))
	for i, hash := range txHashes {
		out[i] = &rpc.TransactionReceipt{
			TxHash:      hash,
			Status:      1,
			BlockNumber: 90,
			GasUsed:     100_000,
		}
	}
	return out, nil
}

func (c *exchangeClient) CallContract(_ context.Context, _ string, data []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case len(data) >= 4 && bytes.Equal(data[:4], SelectorGetPair):
		word := make([]byte, 32)
		if c.pairExists {
			copy(word[12:], c.pair.Bytes())
		}
		return word, nil
	case bytes.Equal(data, SelectorGetReserves):
		out := make([]byte, 64)
		c.reserve0.FillBytes(out[0:32])
		c.reserve1.FillBytes(out[32:64])
		return out, nil
	}
	return make([]byte, 32), nil
}

func newTestExchange(t *testing.T, client *exchangeClient) (*Deployer, *account.Account) {
	t.Helper()

	owner, err := account.NewFromHex(account.DevPrivateKeys[0])
	if err != nil {
		t.Fatalf("loading dev key: %v", err)
	}

	chainID := big.NewInt(31337)
	monitor := txmonitor.New(client, nil)
	estimator := gasfee.New(client, nil)
	contracts := contract.NewDeployer(client, monitor, estimator, chainID, nil)
	return NewDeployer(client, contracts, monitor, estimator, chainID, nil), owner
}

func fastOptions() txmonitor.Options {
	opts := txmonitor.DefaultOptions()
	opts.MaxTimeout = time.Second
	opts.PollDelay = time.Millisecond
	return opts
}

func pairClient() *exchangeClient {
	return &exchangeClient{
		pair:     common.HexToAddress("0xccc0000000000000000000000000000000000001"),
		reserve0: big.NewInt(0),
		reserve1: big.NewInt(0),
	}
}

func TestCreatePairSkipsExistingPair(t *testing.T) {
	client := pairClient()
	client.pairExists = true
	d, owner := newTestExchange(t, client)
	deployment := testDeployment()

	tokenA := common.HexToAddress("0xbbb0000000000000000000000000000000000001")
	tokenB := common.HexToAddress("0xbbb0000000000000000000000000000000000002")

	pair, err := d.CreatePair(context.Background(), owner, deployment, tokenA, tokenB, fastOptions())
	if err != nil {
		t.Fatalf("CreatePair() error = %v", err)
	}
	if pair != client.pair {
		t.Errorf("pair = %s, want %s", pair.Hex(), client.pair.Hex())
	}
	if len(client.sent) != 0 {
		t.Errorf("broadcast %d transactions for an existing pair, want 0", len(client.sent))
	}
}

func TestCreatePairBroadcastsFactoryCall(t *testing.T) {
	client := pairClient()
	d, owner := newTestExchange(t, client)
	deployment := testDeployment()

	tokenA := common.HexToAddress("0xbbb0000000000000000000000000000000000001")
	tokenB := common.HexToAddress("0xbbb0000000000000000000000000000000000002")

	pair, err := d.CreatePair(context.Background(), owner, deployment, tokenA, tokenB, fastOptions())
	if err != nil {
		t.Fatalf("CreatePair() error = %v", err)
	}
	if pair != client.pair {
		t.Errorf("pair = %s, want the factory-reported address %s", pair.Hex(), client.pair.Hex())
	}

	if len(client.sent) != 1 {
		t.Fatalf("broadcast %d transactions, want 1", len(client.sent))
	}
	tx := client.sent[0]
	if tx.To() == nil || *tx.To() != deployment.Factory {
		t.Errorf("createPair was sent to %v, want the factory %s", tx.To(), deployment.Factory.Hex())
	}
	if !bytes.Equal(tx.Data()[:4], SelectorCreatePair) {
		t.Errorf("calldata selector = %x, want createPair", tx.Data()[:4])
	}
}

func TestAddLiquidityOrdersApprovalsBeforeDeposit(t *testing.T) {
	client := pairClient()
	client.pairExists = true
	client.reserve0 = big.NewInt(500)
	client.reserve1 = big.NewInt(700)
	d, owner := newTestExchange(t, client)
	deployment := testDeployment()

	cfg := PairConfig{
		TokenA:  common.HexToAddress("0xbbb0000000000000000000000000000000000001"),
		TokenB:  common.HexToAddress("0xbbb0000000000000000000000000000000000002"),
		AmountA: big.NewInt(500),
		AmountB: big.NewInt(700),
	}

	if err := d.AddLiquidity(context.Background(), owner, deployment, cfg, fastOptions()); err != nil {
		t.Fatalf("AddLiquidity() error = %v", err)
	}

	if len(client.sent) != 3 {
		t.Fatalf("broadcast %d transactions, want 2 approvals and 1 deposit", len(client.sent))
	}

	approveA, approveB, deposit := client.sent[0], client.sent[1], client.sent[2]
	if *approveA.To() != cfg.TokenA || *approveB.To() != cfg.TokenB {
		t.Errorf("approvals went to %s and %s, want the two tokens", approveA.To().Hex(), approveB.To().Hex())
	}
	if *deposit.To() != deployment.Router {
		t.Errorf("deposit went to %s, want the router", deposit.To().Hex())
	}
	if !bytes.Equal(deposit.Data()[:4], SelectorAddLiquidity) {
		t.Errorf("deposit selector = %x, want addLiquidity", deposit.Data()[:4])
	}

	// Nonce order keeps the approvals ahead of the deposit.
	for i, tx := range client.sent {
		if tx.Nonce() != uint64(i) {
			t.Errorf("tx %d nonce = %d, want %d", i, tx.Nonce(), i)
		}
	}
}

func TestGetReservesParsesBothWords(t *testing.T) {
	client := pairClient()
	client.reserve0 = big.NewInt(123)
	client.reserve1 = big.NewInt(456)
	d, _ := newTestExchange(t, client)

	r0, r1, err := d.GetReserves(context.Background(), client.pair)
	if err != nil {
		t.Fatalf("GetReserves() error = %v", err)
	}
	if r0.Int64() != 123 || r1.Int64() != 456 {
		t.Errorf("reserves = %s/%s, want 123/456", r0, r1)
	}
}
