package token

import (
	"bytes"
	"context"
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gateway-fm/chainharness/internal/rpc"
)

func TestEncodeTransfer(t *testing.T) {
	to := common.HexToAddress("0x1111111111111111111111111111111111111111")
	data := EncodeTransfer(to, big.NewInt(1000))

	if len(data) != 68 {
		t.Fatalf("encoded length = %d, want 68", len(data))
	}
	if !bytes.Equal(data[0:4], common.FromHex("0xa9059cbb")) {
		t.Errorf("selector = %x, want a9059cbb", data[0:4])
	}
	// Address is left-padded to 32 bytes.
	if !bytes.Equal(data[4:16], make([]byte, 12)) {
		t.Errorf("address padding = %x, want zeros", data[4:16])
	}
	if !bytes.Equal(data[16:36], to.Bytes()) {
		t.Errorf("address = %x, want %x", data[16:36], to.Bytes())
	}
	wantAmount, _ := hex.DecodeString("00000000000000000000000000000000000000000000000000000000000003e8")
	if !bytes.Equal(data[36:68], wantAmount) {
		t.Errorf("amount = %x, want %x", data[36:68], wantAmount)
	}
}

func TestEncodeApprove(t *testing.T) {
	spender := common.HexToAddress("0x2222222222222222222222222222222222222222")
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	data := EncodeApprove(spender, maxUint256)

	if !bytes.Equal(data[0:4], common.FromHex("0x095ea7b3")) {
		t.Errorf("selector = %x, want 095ea7b3", data[0:4])
	}
	for _, b := range data[36:68] {
		if b != 0xff {
			t.Fatalf("max uint256 encoding = %x", data[36:68])
		}
	}
}

func TestEncodeTransferNegativeAmountPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for negative amount")
		}
	}()
	EncodeTransfer(common.Address{}, big.NewInt(-1))
}

type callClient struct {
	rpc.Client

	calls  [][]byte
	result []byte
	err    error
}

func (c *callClient) CallContract(_ context.Context, _ string, data []byte) ([]byte, error) {
	c.calls = append(c.calls, data)
	return c.result, c.err
}

func TestBalanceOf(t *testing.T) {
	balance := big.NewInt(123456789)
	result := make([]byte, 32)
	balance.FillBytes(result)

	client := &callClient{result: result}
	tok := Bind(common.HexToAddress("0xabc0000000000000000000000000000000000000"), "Mock", "MCK", client)

	holder := common.HexToAddress("0x3333333333333333333333333333333333333333")
	got, err := tok.BalanceOf(context.Background(), holder)
	if err != nil {
		t.Fatalf("BalanceOf() error = %v", err)
	}
	if got.Cmp(balance) != 0 {
		t.Errorf("BalanceOf() = %s, want %s", got, balance)
	}

	if len(client.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(client.calls))
	}
	call := client.calls[0]
	if !bytes.Equal(call[0:4], common.FromHex("0x70a08231")) {
		t.Errorf("selector = %x, want 70a08231", call[0:4])
	}
	if !bytes.Equal(call[16:36], holder.Bytes()) {
		t.Errorf("holder = %x, want %x", call[16:36], holder.Bytes())
	}
}

func TestAllowance(t *testing.T) {
	result := make([]byte, 32)
	big.NewInt(42).FillBytes(result)

	client := &callClient{result: result}
	tok := Bind(common.HexToAddress("0xabc0000000000000000000000000000000000000"), "Mock", "MCK", client)

	owner := common.HexToAddress("0x4444444444444444444444444444444444444444")
	spender := common.HexToAddress("0x5555555555555555555555555555555555555555")
	got, err := tok.Allowance(context.Background(), owner, spender)
	if err != nil {
		t.Fatalf("Allowance() error = %v", err)
	}
	if got.Int64() != 42 {
		t.Errorf("Allowance() = %s, want 42", got)
	}

	call := client.calls[0]
	if len(call) != 68 {
		t.Fatalf("call length = %d, want 68", len(call))
	}
	if !bytes.Equal(call[16:36], owner.Bytes()) {
		t.Errorf("owner = %x", call[16:36])
	}
	if !bytes.Equal(call[48:68], spender.Bytes()) {
		t.Errorf("spender = %x", call[48:68])
	}
}

func TestTotalSupply(t *testing.T) {
	result := bytes.Repeat([]byte{0xff}, 32)
	client := &callClient{result: result}
	tok := Bind(common.HexToAddress("0xabc0000000000000000000000000000000000000"), "Mock", "MCK", client)

	got, err := tok.TotalSupply(context.Background())
	if err != nil {
		t.Fatalf("TotalSupply() error = %v", err)
	}
	maxUint256 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	if got.Cmp(maxUint256) != 0 {
		t.Errorf("TotalSupply() = %s, want max uint256", got)
	}

	if !bytes.Equal(client.calls[0], common.FromHex("0x18160ddd")) {
		t.Errorf("call data = %x, want bare selector", client.calls[0])
	}
}

func TestBytecodePresent(t *testing.T) {
	if len(Bytecode) == 0 {
		t.Fatal("bytecode is empty")
	}
	// Standard Solidity prologue.
	if !bytes.HasPrefix(Bytecode, common.FromHex("0x6080")) {
		t.Errorf("bytecode prefix = %x", Bytecode[:4])
	}
}
