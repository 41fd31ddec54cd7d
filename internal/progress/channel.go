package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

// State is the lifecycle state of a Channel.
type State int

const (
	Disconnected State = iota
	Connecting
	Open
	Closed
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "live"
	case Closed:
		return "closed"
	default:
		return "disconnected"
	}
}

// Channel is a one-shot subscription to server-pushed indexing events for
// one subject. There is no reconnect: once Closed, a Channel stays Closed
// and the caller dials a fresh one. Events pushed before the subscription
// opened are lost; the server only pushes after a client subscribes.
type Channel struct {
	conn   *websocket.Conn
	events chan Event
	done   chan struct{}

	mu    sync.Mutex
	state State

	closeOnce sync.Once
}

// Dial opens the push channel at rawURL, scoped to the given subject via
// the sub query parameter. The returned Channel is Open and delivering on
// Events(); the caller must Close it when done.
func Dial(ctx context.Context, rawURL, sub string) (*Channel, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("progress: parsing channel URL: %w", err)
	}
	q := u.Query()
	q.Set("sub", sub)
	u.RawQuery = q.Encode()

	c := &Channel{
		events: make(chan Event, 16),
		done:   make(chan struct{}),
		state:  Connecting,
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		c.setState(Closed)
		return nil, fmt.Errorf("progress: dialing %s: %w", u.String(), err)
	}

	c.conn = conn
	c.setState(Open)
	go c.readLoop()
	return c, nil
}

// Events returns the inbound event stream. The channel is closed when the
// connection closes, whether by the server or by Close.
func (c *Channel) Events() <-chan Event {
	return c.events
}

// State returns the current lifecycle state.
func (c *Channel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Channel) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Close releases the connection. Idempotent; safe to call from any
// goroutine. View teardown must call it so a remount always opens a fresh
// connection.
func (c *Channel) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			err = c.conn.Close()
		}
	})
	return err
}

// readLoop decodes inbound frames and forwards them on the events channel.
// Malformed frames are dropped: this is a best-effort telemetry channel,
// not a correctness-critical one.
func (c *Channel) readLoop() {
	defer func() {
		c.setState(Closed)
		_ = c.Close()
		close(c.events)
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var e Event
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}

		select {
		case c.events <- e:
		case <-c.done:
			return
		}
	}
}
