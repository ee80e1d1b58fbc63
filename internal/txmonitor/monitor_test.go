package txmonitor

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

// scriptedClient implements rpc.Client with per-round scripted responses.
type scriptedClient struct {
	mu sync.Mutex

	// receipts[hash] holds the response for each poll round; the last
	// entry repeats. nil means not yet included.
	receipts map[common.Hash][]*rpc.TransactionReceipt
	// heads holds the chain head per round; the last entry repeats.
	heads []uint64

	batchErr error
	diagErr  error

	// sendQueue holds the hash returned by each successive
	// SendRawTransaction call; sendErrAt fails the call at that index
	// (-1 disables).
	sendQueue []common.Hash
	sendErrAt int
	sendErr   error

	round     int
	polled    [][]common.Hash // hashes queried per round
	sent      int
	diagCalls []common.Hash
	headCalls int
}

// Ensure scriptedClient implements rpc.Client
var _ rpc.Client = (*scriptedClient)(nil)

func (s *scriptedClient) GetTransactionReceiptsBatch(ctx context.Context, txHashes []common.Hash) ([]*rpc.TransactionReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.batchErr != nil {
		return nil, s.batchErr
	}

	s.polled = append(s.polled, append([]common.Hash(nil), txHashes...))
	round := s.round
	s.round++

	out := make([]*rpc.TransactionReceipt, len(txHashes))
	for i, hash := range txHashes {
		script := s.receipts[hash]
		if len(script) == 0 {
			continue
		}
		idx := round
		if idx >= len(script) {
			idx = len(script) - 1
		}
		out[i] = script[idx]
	}
	return out, nil
}

func (s *scriptedClient) GetBlockNumber(ctx context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.headCalls
	s.headCalls++
	if len(s.heads) == 0 {
		return 0, nil
	}
	if idx >= len(s.heads) {
		idx = len(s.heads) - 1
	}
	return s.heads[idx], nil
}

func (s *scriptedClient) GetTransactionByHash(ctx context.Context, txHash common.Hash) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.diagCalls = append(s.diagCalls, txHash)
	if s.diagErr != nil {
		return nil, s.diagErr
	}
	return json.RawMessage(`{"hash":"` + txHash.Hex() + `"}`), nil
}

func (s *scriptedClient) Call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	return nil, nil
}

func (s *scriptedClient) BatchCall(ctx context.Context, calls []rpc.BatchRequest) ([]rpc.BatchResponse, error) {
	return nil, nil
}

func (s *scriptedClient) SendRawTransaction(ctx context.Context, txRLP []byte) (common.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.sent
	s.sent++
	if s.sendErr != nil && idx == s.sendErrAt {
		return common.Hash{}, s.sendErr
	}
	if idx < len(s.sendQueue) {
		return s.sendQueue[idx], nil
	}
	return common.Hash{}, nil
}

func (s *scriptedClient) GetTransactionReceipt(ctx context.Context, txHash common.Hash) (*rpc.TransactionReceipt, error) {
	return nil, nil
}

func (s *scriptedClient) GetChainID(ctx context.Context) (*big.Int, error) {
	return big.NewInt(1337), nil
}

func (s *scriptedClient) GetNonce(ctx context.Context, address string) (uint64, error) {
	return 0, nil
}

func (s *scriptedClient) GetGasPrice(ctx context.Context) (uint64, error) {
	return 0, nil
}

func (s *scriptedClient) GetMaxPriorityFee(ctx context.Context) (uint64, error) {
	return 0, nil
}

func (s *scriptedClient) GetBaseFee(ctx context.Context) (uint64, error) {
	return 0, nil
}

func (s *scriptedClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	return big.NewInt(0), nil
}

func (s *scriptedClient) GetCode(ctx context.Context, address string) (string, error) {
	return "", nil
}

func (s *scriptedClient) CallContract(ctx context.Context, to string, data []byte) ([]byte, error) {
	return nil, nil
}

func (s *scriptedClient) EstimateGas(ctx context.Context, from, to string, data []byte, value *big.Int) (uint64, error) {
	return 21000, nil
}

// newTestMonitor wires a manual clock into a monitor. Every sleep advances
// fake time by the requested delay, so timeouts are deterministic.
func newTestMonitor(client rpc.Client) (*Monitor, *int) {
	m := New(client, nil)
	sleeps := 0
	now := time.Unix(1700000000, 0)
	m.now = func() time.Time { return now }
	m.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps++
		now = now.Add(d)
		// Fake time needs to move even with a zero delay, or an
		// immediate deadline would never trip.
		if d <= 0 {
			now = now.Add(time.Millisecond)
		}
		return ctx.Err()
	}
	return m, &sleeps
}

func receiptAt(hash common.Hash, block uint64, status uint64) *rpc.TransactionReceipt {
	return &rpc.TransactionReceipt{
		TxHash:      hash,
		Status:      status,
		BlockNumber: block,
		GasUsed:     21000,
	}
}

func TestWaitForReceiptsImmediateConfirmation(t *testing.T) {
	hash1 := common.HexToHash("0x01")
	hash2 := common.HexToHash("0x02")

	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash1: {receiptAt(hash1, 100, 1)},
			hash2: {receiptAt(hash2, 100, 1)},
		},
		heads: []uint64{100},
	}
	m, sleeps := newTestMonitor(client)

	opts := DefaultOptions()
	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{hash1, hash2}, opts)
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}

	if len(receipts) != 2 {
		t.Fatalf("expected 2 receipts, got %d", len(receipts))
	}
	if receipts[hash1].BlockNumber != 100 || receipts[hash2].BlockNumber != 100 {
		t.Errorf("unexpected receipt contents: %+v", receipts)
	}
	if *sleeps != 0 {
		t.Errorf("expected no sleeps when everything confirms in round 1, got %d", *sleeps)
	}
}

func TestWaitForReceiptsEmptyInput(t *testing.T) {
	client := &scriptedClient{}
	m, _ := newTestMonitor(client)

	receipts, err := m.WaitForReceipts(context.Background(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}
	if len(receipts) != 0 {
		t.Fatalf("expected empty result map, got %d entries", len(receipts))
	}
	if len(client.polled) != 0 {
		t.Errorf("expected no polling for empty input, got %d rounds", len(client.polled))
	}
}

func TestWaitForReceiptsDeduplicatesInput(t *testing.T) {
	hash := common.HexToHash("0xaa")
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash: {receiptAt(hash, 7, 1)},
		},
	}
	m, _ := newTestMonitor(client)

	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{hash, hash, hash}, DefaultOptions())
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}
	if len(receipts) != 1 {
		t.Fatalf("expected 1 receipt for duplicated input, got %d", len(receipts))
	}
	if got := len(client.polled[0]); got != 1 {
		t.Errorf("expected 1 queried hash after dedup, got %d", got)
	}
}

func TestWaitForReceiptsLateInclusion(t *testing.T) {
	hash := common.HexToHash("0xbb")
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			// Not found for three rounds, included on round 4.
			hash: {nil, nil, nil, receiptAt(hash, 42, 1)},
		},
	}
	m, sleeps := newTestMonitor(client)

	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{hash}, DefaultOptions())
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}
	if receipts[hash] == nil || receipts[hash].BlockNumber != 42 {
		t.Fatalf("expected receipt at block 42, got %+v", receipts[hash])
	}
	if len(client.polled) != 4 {
		t.Errorf("expected 4 poll rounds, got %d", len(client.polled))
	}
	if *sleeps != 3 {
		t.Errorf("expected 3 inter-round sleeps, got %d", *sleeps)
	}
}

func TestWaitForReceiptsConfirmationDepth(t *testing.T) {
	hash := common.HexToHash("0xcc")
	included := receiptAt(hash, 100, 1)

	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash: {included},
		},
		// Head advances one block per round; depth 3 is reached when
		// the head hits 103.
		heads: []uint64{100, 101, 102, 103},
	}
	m, _ := newTestMonitor(client)

	opts := DefaultOptions()
	opts.ConfirmationBlocks = 3

	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{hash}, opts)
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}
	if receipts[hash] != included {
		t.Fatalf("expected the included receipt, got %+v", receipts[hash])
	}
	if len(client.polled) != 4 {
		t.Errorf("expected promotion on round 4 (head 103), got %d rounds", len(client.polled))
	}
}

// fixedHeadSource reports one height, or an error when it has none yet.
type fixedHeadSource struct {
	height uint64
	err    error
}

func (f *fixedHeadSource) HeadHeight(ctx context.Context) (uint64, error) {
	return f.height, f.err
}

func TestWaitForReceiptsUsesHeadSource(t *testing.T) {
	hash := common.HexToHash("0xd3")
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash: {receiptAt(hash, 100, 1)},
		},
		heads: []uint64{0}, // would never promote via polling
	}
	m, _ := newTestMonitor(client)
	m.SetHeadSource(&fixedHeadSource{height: 105})

	opts := DefaultOptions()
	opts.ConfirmationBlocks = 3

	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{hash}, opts)
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}
	if receipts[hash] == nil {
		t.Fatal("expected the receipt to promote against the head source")
	}
	if client.headCalls != 0 {
		t.Errorf("expected no eth_blockNumber calls with a working head source, got %d", client.headCalls)
	}
}

func TestWaitForReceiptsColdHeadSourceFallsBackToPolling(t *testing.T) {
	hash := common.HexToHash("0xd4")
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			hash: {receiptAt(hash, 100, 1)},
		},
		heads: []uint64{103},
	}
	m, _ := newTestMonitor(client)
	// A freshly started WebSocket tracker errors until its first
	// notification; the batch must still confirm.
	m.SetHeadSource(&fixedHeadSource{err: errors.New("no head observed yet")})

	opts := DefaultOptions()
	opts.ConfirmationBlocks = 3

	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{hash}, opts)
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}
	if receipts[hash] == nil {
		t.Fatal("expected the receipt to promote via the polled head")
	}
	if client.headCalls == 0 {
		t.Error("expected a fallback eth_blockNumber call")
	}
}

func TestWaitForReceiptsPromotionIsFinal(t *testing.T) {
	confirmed := common.HexToHash("0xd1")
	slow := common.HexToHash("0xd2")

	firstSighting := receiptAt(confirmed, 10, 1)
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			// Would report a different block if ever re-queried.
			confirmed: {firstSighting, receiptAt(confirmed, 99, 0)},
			slow:      {nil, receiptAt(slow, 11, 1)},
		},
	}
	m, _ := newTestMonitor(client)

	receipts, err := m.WaitForReceipts(context.Background(), []common.Hash{confirmed, slow}, DefaultOptions())
	if err != nil {
		t.Fatalf("WaitForReceipts returned error: %v", err)
	}

	if receipts[confirmed] != firstSighting {
		t.Errorf("promoted receipt was overwritten: %+v", receipts[confirmed])
	}
	// Round 2 must only query the transaction still in the watch set.
	if got := client.polled[1]; len(got) != 1 || got[0] != slow {
		t.Errorf("round 2 queried %v, want only %s", got, slow.Hex())
	}
}

func TestWaitForReceiptsTimeout(t *testing.T) {
	stuck1 := common.HexToHash("0xe1")
	stuck2 := common.HexToHash("0xe2")

	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{
			stuck1: {nil},
			stuck2: {nil},
		},
	}
	m, _ := newTestMonitor(client)

	opts := DefaultOptions()
	opts.MaxTimeout = 0 // Immediate deadline

	_, err := m.WaitForReceipts(context.Background(), []common.Hash{stuck1, stuck2}, opts)
	var timeoutErr *ConfirmationTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("expected ConfirmationTimeoutError, got %v", err)
	}

	if len(timeoutErr.Unconfirmed) != 2 {
		t.Fatalf("expected 2 unconfirmed hashes, got %v", timeoutErr.Unconfirmed)
	}
	want := map[common.Hash]bool{stuck1: true, stuck2: true}
	for _, h := range timeoutErr.Unconfirmed {
		if !want[h] {
			t.Errorf("unexpected hash in timeout error: %s", h.Hex())
		}
	}
	// The call must not loop forever: one round, then the deadline.
	if len(client.polled) != 1 {
		t.Errorf("expected 1 poll round before immediate timeout, got %d", len(client.polled))
	}
	if len(client.diagCalls) != 2 {
		t.Errorf("expected diagnostics for both stuck transactions, got %d", len(client.diagCalls))
	}
}

func TestWaitForReceiptsTimeoutSurvivesDiagnosticFailure(t *testing.T) {
	stuck := common.HexToHash("0xe3")
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{stuck: {nil}},
		diagErr:  errors.New("node dropped the tx"),
	}
	m, _ := newTestMonitor(client)

	opts := DefaultOptions()
	opts.MaxTimeout = 0

	_, err := m.WaitForReceipts(context.Background(), []common.Hash{stuck}, opts)
	var timeoutErr *ConfirmationTimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("diagnostic failure must not mask the timeout, got %v", err)
	}
	if len(timeoutErr.TxData) != 0 {
		t.Errorf("expected no diagnostic data on fetch failure, got %v", timeoutErr.TxData)
	}
}

func TestWaitForReceiptsPortErrorIsFatal(t *testing.T) {
	hash := common.HexToHash("0xf1")
	portErr := errors.New("connection refused")
	client := &scriptedClient{batchErr: portErr}
	m, _ := newTestMonitor(client)

	_, err := m.WaitForReceipts(context.Background(), []common.Hash{hash}, DefaultOptions())
	if !errors.Is(err, portErr) {
		t.Fatalf("expected the port error to propagate, got %v", err)
	}
	var timeoutErr *ConfirmationTimeoutError
	if errors.As(err, &timeoutErr) {
		t.Fatal("port failure must be distinguishable from a timeout")
	}
}

func TestWaitForReceiptsContextCancelled(t *testing.T) {
	hash := common.HexToHash("0xf2")
	client := &scriptedClient{
		receipts: map[common.Hash][]*rpc.TransactionReceipt{hash: {nil}},
	}
	m := New(client, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.WaitForReceipts(ctx, []common.Hash{hash}, DefaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
