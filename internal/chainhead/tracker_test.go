package chainhead

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// headServer is a minimal newHeads endpoint. Heights pushed to the
// channel are delivered as subscription notifications.
func headServer(t *testing.T, heads <-chan uint64, rejectSubscribe bool) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		defer conn.Close()

		var req struct {
			ID     int    `json:"id"`
			Method string `json:"method"`
		}
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		if req.Method != "eth_subscribe" {
			t.Errorf("method = %s, want eth_subscribe", req.Method)
			return
		}

		if rejectSubscribe {
			conn.WriteJSON(map[string]any{
				"jsonrpc": "2.0", "id": req.ID,
				"error": map[string]any{"code": -32601, "message": "notifications not supported"},
			})
			return
		}
		conn.WriteJSON(map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": "0xsub1"})

		for height := range heads {
			note := map[string]any{
				"jsonrpc": "2.0",
				"method":  "eth_subscription",
				"params": map[string]any{
					"subscription": "0xsub1",
					"result":       map[string]any{"number": fmt.Sprintf("0x%x", height)},
				},
			}
			if err := conn.WriteJSON(note); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForHead(t *testing.T, tr *Tracker, want uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if tr.Latest() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Latest() = %d, want %d", tr.Latest(), want)
}

func TestTrackerFollowsHeads(t *testing.T) {
	heads := make(chan uint64, 4)
	srv := headServer(t, heads, false)
	defer srv.Close()

	tr := NewTracker(wsURL(srv), testLogger())
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer tr.Stop()

	heads <- 100
	waitForHead(t, tr, 100)
	heads <- 101
	heads <- 102
	waitForHead(t, tr, 102)

	height, err := tr.HeadHeight(context.Background())
	if err != nil {
		t.Fatalf("HeadHeight() error = %v", err)
	}
	if height != 102 {
		t.Errorf("HeadHeight() = %d, want 102", height)
	}
}

func TestTrackerHeadHeightBeforeFirstNotification(t *testing.T) {
	heads := make(chan uint64)
	srv := headServer(t, heads, false)
	defer srv.Close()

	tr := NewTracker(wsURL(srv), testLogger())
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer tr.Stop()
	close(heads)

	if _, err := tr.HeadHeight(context.Background()); err == nil {
		t.Error("expected error before first head notification")
	}
}

func TestTrackerIgnoresStaleHeads(t *testing.T) {
	heads := make(chan uint64, 2)
	srv := headServer(t, heads, false)
	defer srv.Close()

	tr := NewTracker(wsURL(srv), testLogger())
	if err := tr.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer tr.Stop()

	heads <- 50
	waitForHead(t, tr, 50)
	// A reorged-in lower head must not move Latest backwards.
	heads <- 49
	time.Sleep(50 * time.Millisecond)
	if got := tr.Latest(); got != 50 {
		t.Errorf("Latest() = %d, want 50", got)
	}
}

func TestTrackerSubscribeRejected(t *testing.T) {
	srv := headServer(t, nil, true)
	defer srv.Close()

	tr := NewTracker(wsURL(srv), testLogger())
	if err := tr.Start(context.Background()); err == nil {
		tr.Stop()
		t.Fatal("expected error when subscription is rejected")
	}
}

func TestTrackerDialFailure(t *testing.T) {
	tr := NewTracker("ws://127.0.0.1:1", testLogger())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tr.Start(ctx); err == nil {
		tr.Stop()
		t.Fatal("expected dial error")
	}
}
