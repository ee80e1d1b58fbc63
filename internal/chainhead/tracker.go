// Package chainhead tracks the chain head over a WebSocket subscription.
package chainhead

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/websocket"
)

const (
	dialTimeout      = 10 * time.Second
	reconnectDelay   = 2 * time.Second
	subscribeTimeout = 5 * time.Second
)

// Tracker keeps the latest block height observed via a newHeads
// subscription. It reconnects on connection loss until stopped.
type Tracker struct {
	url    string
	logger *slog.Logger
	dialer *websocket.Dialer

	mu     sync.RWMutex
	latest uint64
	seen   bool
	conn   *websocket.Conn

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTracker creates a head tracker for the given WebSocket endpoint.
func NewTracker(url string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		url:    url,
		logger: logger,
		dialer: &websocket.Dialer{HandshakeTimeout: dialTimeout},
		done:   make(chan struct{}),
	}
}

// Start connects and subscribes. The first subscription must succeed,
// later connection losses are retried in the background.
func (t *Tracker) Start(ctx context.Context) error {
	conn, err := t.subscribe(ctx)
	if err != nil {
		return err
	}
	t.setConn(conn)

	t.wg.Add(1)
	go t.run(conn)
	return nil
}

// Stop closes the connection and waits for the read loop to exit.
func (t *Tracker) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
		t.mu.Lock()
		if t.conn != nil {
			t.conn.Close()
		}
		t.mu.Unlock()
	})
	t.wg.Wait()
}

func (t *Tracker) setConn(conn *websocket.Conn) {
	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()
}

// Latest returns the most recently observed head height. Zero before
// the first notification.
func (t *Tracker) Latest() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.latest
}

// HeadHeight returns the tracked head. It fails until the first
// notification arrives so callers can fall back to polling.
func (t *Tracker) HeadHeight(ctx context.Context) (uint64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.seen {
		return 0, fmt.Errorf("no head observed yet on %s", t.url)
	}
	return t.latest, nil
}

// subscribe dials the endpoint and issues eth_subscribe(newHeads).
func (t *Tracker) subscribe(ctx context.Context) (*websocket.Conn, error) {
	conn, _, err := t.dialer.DialContext(ctx, t.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", t.url, err)
	}

	req := map[string]any{
		"jsonrpc": "2.0",
		"id":      1,
		"method":  "eth_subscribe",
		"params":  []any{"newHeads"},
	}
	if err := conn.WriteJSON(req); err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribe to newHeads: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(subscribeTimeout))
	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := conn.ReadJSON(&resp); err != nil {
		conn.Close()
		return nil, fmt.Errorf("read subscription response: %w", err)
	}
	if resp.Error != nil {
		conn.Close()
		return nil, fmt.Errorf("subscription rejected: %s (code %d)", resp.Error.Message, resp.Error.Code)
	}
	conn.SetReadDeadline(time.Time{})

	t.logger.Debug("Subscribed to newHeads", slog.String("url", t.url))
	return conn, nil
}

// run reads head notifications and reconnects on failure.
func (t *Tracker) run(conn *websocket.Conn) {
	defer t.wg.Done()

	for {
		if conn != nil {
			t.readLoop(conn)
			conn.Close()
			conn = nil
		}

		select {
		case <-t.done:
			return
		case <-time.After(reconnectDelay):
		}

		ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
		next, err := t.subscribe(ctx)
		cancel()
		if err != nil {
			t.logger.Warn("Head subscription reconnect failed",
				slog.String("error", err.Error()),
			)
			continue
		}
		t.setConn(next)
		select {
		case <-t.done:
			next.Close()
			return
		default:
		}
		conn = next
	}
}

// readLoop consumes notifications until the connection breaks or the
// tracker is stopped.
func (t *Tracker) readLoop(conn *websocket.Conn) {
	for {
		select {
		case <-t.done:
			return
		default:
		}

		var note struct {
			Method string `json:"method"`
			Params struct {
				Result struct {
					Number string `json:"number"`
				} `json:"result"`
			} `json:"params"`
		}
		if err := conn.ReadJSON(&note); err != nil {
			select {
			case <-t.done:
			default:
				t.logger.Debug("Head subscription read error", slog.String("error", err.Error()))
			}
			return
		}
		if note.Method != "eth_subscription" || note.Params.Result.Number == "" {
			continue
		}

		height, err := hexutil.DecodeUint64(note.Params.Result.Number)
		if err != nil {
			t.logger.Debug("Bad head number in notification",
				slog.String("number", note.Params.Result.Number),
			)
			continue
		}

		t.mu.Lock()
		if height > t.latest || !t.seen {
			t.latest = height
		}
		t.seen = true
		t.mu.Unlock()
	}
}
