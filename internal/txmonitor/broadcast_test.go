package txmonitor

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

// signedTestTx builds a signed EIP-1559 transaction for broadcast tests.
func signedTestTx(t *testing.T, nonce uint64) *types.Transaction {
	t.Helper()

	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	chainID := big.NewInt(1337)
	to := common.HexToAddress("0x000000000000000000000000000000000000dead")
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   chainID,
		Nonce:     nonce,
		GasTipCap: big.NewInt(1),
		GasFeeCap: big.NewInt(1000000000),
		Gas:       21000,
		To:        &to,
		Value:     big.NewInt(1),
	})

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		t.Fatalf("sign tx: %v", err)
	}
	return signed
}

func TestBroadcastAndWaitConfirmsBatch(t *testing.T) {
	tx1 := signedTestTx(t, 0)
	tx2 := signedTestTx(t, 1)
	hash1 := tx1.Hash()
	hash2 := tx2.Hash()

	client := &scriptedClient{
		sendQueue: []common.Hash{hash1, hash2},
		sendErrAt: -1,
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash1: {receiptAt(hash1, 5, 1)},
			hash2: {receiptAt(hash2, 5, 1)},
		},
	}
	m, _ := newTestMonitor(client)

	receipts, err := m.BroadcastAndWait(context.Background(), []*types.Transaction{tx1, tx2}, DefaultOptions())
	if err != nil {
		t.Fatalf("BroadcastAndWait returned error: %v", err)
	}
	if len(receipts) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(receipts))
	}
	if client.sent != 2 {
		t.Errorf("expected 2 submissions, got %d", client.sent)
	}
}

func TestBroadcastAndWaitFailedReceipt(t *testing.T) {
	tx1 := signedTestTx(t, 0)
	tx2 := signedTestTx(t, 1)
	hash1 := tx1.Hash()
	hash2 := tx2.Hash()

	client := &scriptedClient{
		sendQueue: []common.Hash{hash1, hash2},
		sendErrAt: -1,
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash1: {receiptAt(hash1, 5, 1)},
			hash2: {receiptAt(hash2, 5, 0)}, // reverted
		},
	}
	m, _ := newTestMonitor(client)

	_, err := m.BroadcastAndWait(context.Background(), []*types.Transaction{tx1, tx2}, DefaultOptions())
	var failErr *TransactionFailedError
	if !errors.As(err, &failErr) {
		t.Fatalf("expected TransactionFailedError, got %v", err)
	}
	if failErr.Hash != hash2 {
		t.Errorf("failure names %s, want %s", failErr.Hash.Hex(), hash2.Hex())
	}
	if failErr.Receipt == nil || failErr.Receipt.Status != 0 {
		t.Errorf("failure must carry the offending receipt, got %+v", failErr.Receipt)
	}
}

func TestBroadcastAndWaitConfirmOKDisabled(t *testing.T) {
	tx := signedTestTx(t, 0)
	hash := tx.Hash()

	client := &scriptedClient{
		sendQueue: []common.Hash{hash},
		sendErrAt: -1,
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash: {receiptAt(hash, 5, 0)}, // reverted
		},
	}
	m, _ := newTestMonitor(client)

	opts := DefaultOptions()
	opts.ConfirmOK = false

	receipts, err := m.BroadcastAndWait(context.Background(), []*types.Transaction{tx}, opts)
	if err != nil {
		t.Fatalf("with ConfirmOK disabled a reverted receipt is returned, got error %v", err)
	}
	if receipts[hash] == nil || receipts[hash].Status != 0 {
		t.Errorf("expected the reverted receipt in the result map, got %+v", receipts[hash])
	}
}

func TestBroadcastAndWaitSubmissionFailureAborts(t *testing.T) {
	tx1 := signedTestTx(t, 0)
	tx2 := signedTestTx(t, 1)

	sendErr := errors.New("nonce too low")
	client := &scriptedClient{
		sendQueue: []common.Hash{tx1.Hash()},
		sendErrAt: 1, // second submission fails
		sendErr:   sendErr,
	}
	m, _ := newTestMonitor(client)

	_, err := m.BroadcastAndWait(context.Background(), []*types.Transaction{tx1, tx2}, DefaultOptions())
	if !errors.Is(err, sendErr) {
		t.Fatalf("expected submission error to propagate, got %v", err)
	}
	if len(client.polled) != 0 {
		t.Errorf("monitoring must not start after a submission failure, polled %d rounds", len(client.polled))
	}
}
