package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/biovault/bvconsole/internal/logging"
)

// ErrClosed is returned by Invoke after the connection has gone away.
var ErrClosed = errors.New("bridge: connection closed")

// Client invokes commands over a bridge connection. Calls are correlated by
// id, so any number of invocations may be in flight concurrently.
type Client struct {
	conn    *websocket.Conn
	timeout time.Duration
	log     zerolog.Logger

	writeMu sync.Mutex

	mu      sync.Mutex
	pending map[uint32]chan Response
	nextID  uint32

	closed    chan struct{}
	closeOnce sync.Once
}

// Dial connects to the bridge at url (ws://host:port). timeout bounds each
// Invoke call that doesn't carry its own deadline.
func Dial(ctx context.Context, url string, timeout time.Duration) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bridge: %w", err)
	}

	c := &Client{
		conn:    conn,
		timeout: timeout,
		log:     logging.Component("bridge-client"),
		pending: make(map[uint32]chan Response),
		closed:  make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// Close tears down the connection. Pending invocations fail with ErrClosed.
func (c *Client) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return c.conn.Close()
}

// Invoke sends cmd with args (JSON-encoded) and waits for the matching
// response, the per-call timeout, or context cancellation, whichever comes
// first. A response carrying an error string becomes a Go error.
func (c *Client) Invoke(ctx context.Context, cmd string, args any) (json.RawMessage, error) {
	var rawArgs json.RawMessage
	if args != nil {
		b, err := json.Marshal(args)
		if err != nil {
			return nil, fmt.Errorf("encode args: %w", err)
		}
		rawArgs = b
	}

	ch := make(chan Response, 1)
	id := c.register(ch)
	defer c.unregister(id)

	c.writeMu.Lock()
	err := c.conn.WriteJSON(Request{ID: id, Cmd: cmd, Args: rawArgs})
	c.writeMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("send %s: %w", cmd, err)
	}

	timer := time.NewTimer(c.timeout)
	defer timer.Stop()

	select {
	case resp := <-ch:
		if resp.Error != "" {
			return nil, fmt.Errorf("%s: %s", cmd, resp.Error)
		}
		return resp.Result, nil
	case <-timer.C:
		return nil, fmt.Errorf("%s: timed out after %s", cmd, c.timeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-c.closed:
		return nil, ErrClosed
	}
}

// InvokeInto invokes cmd and decodes the result into v.
func (c *Client) InvokeInto(ctx context.Context, cmd string, args, v any) error {
	raw, err := c.Invoke(ctx, cmd, args)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode %s result: %w", cmd, err)
	}
	return nil
}

// InvokeOr invokes cmd and falls back to the given value on any failure:
// timeout, disconnect, or a command error. The webview shim behaves the same
// way so the UI keeps working when the backend is unreachable.
func (c *Client) InvokeOr(ctx context.Context, cmd string, args any, fallback json.RawMessage) json.RawMessage {
	raw, err := c.Invoke(ctx, cmd, args)
	if err != nil {
		c.log.Debug().Err(err).Str("cmd", cmd).Msg("falling back")
		return fallback
	}
	return raw
}

func (c *Client) register(ch chan Response) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := c.nextID
	c.pending[id] = ch
	return id
}

func (c *Client) unregister(id uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
}

func (c *Client) readLoop() {
	defer c.closeOnce.Do(func() { close(c.closed) })
	for {
		var resp Response
		if err := c.conn.ReadJSON(&resp); err != nil {
			return
		}
		c.mu.Lock()
		ch, ok := c.pending[resp.ID]
		c.mu.Unlock()
		if !ok {
			c.log.Debug().Uint32("id", resp.ID).Msg("response for unknown request")
			continue
		}
		ch <- resp
	}
}
