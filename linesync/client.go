package linesync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"tacmap/internal/logging"
	"tacmap/mapview"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum frame size a client accepts; snapshots can be large.
	maxClientMessage = 1 << 20

	// Maximum frame size the hub accepts from a client.
	maxPeerMessage = 4096

	sendQueue = 256
)

// Client is a connection to a relay. Publish and Clear may be called from
// the UI thread; received messages are queued on Incoming until drained.
type Client struct {
	conn     *websocket.Conn
	send     chan []byte
	incoming chan Message
	done     chan struct{}

	closeOnce sync.Once
}

// Dial connects to the relay at url, e.g. ws://host:8090/ws.
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial relay %s: %w", url, err)
	}
	c := &Client{
		conn:     conn,
		send:     make(chan []byte, sendQueue),
		incoming: make(chan Message, sendQueue),
		done:     make(chan struct{}),
	}
	go c.writePump()
	go c.readPump()
	return c, nil
}

// Incoming is closed once the connection ends.
func (c *Client) Incoming() <-chan Message { return c.incoming }

func (c *Client) Publish(l mapview.Line) error {
	wl := ToWire(l)
	return c.queue(Message{Type: KindLine, Line: &wl})
}

func (c *Client) Clear() error {
	return c.queue(Message{Type: KindClear})
}

// PublishEvent forwards lines the local user drew. Hook it into the
// control's EventHandler.
func (c *Client) PublishEvent(ev mapview.UIEvent) {
	if ev.Type != mapview.EventLineAdded || !ev.Local {
		return
	}
	if err := c.Publish(ev.Line); err != nil {
		logging.Warn("publish line: %v", err)
	}
}

func (c *Client) queue(msg Message) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}
	select {
	case c.send <- encode(msg):
		return nil
	default:
		return ErrQueueFull
	}
}

// Drain applies every queued message to ctl without blocking. It returns
// false once the connection has ended.
func (c *Client) Drain(ctl *mapview.Control) bool {
	for {
		select {
		case msg, ok := <-c.incoming:
			if !ok {
				return false
			}
			Apply(ctl, msg)
		default:
			return true
		}
	}
}

func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		err = c.conn.Close()
	})
	return err
}

func (c *Client) readPump() {
	defer func() {
		close(c.incoming)
		c.Close()
	}()
	c.conn.SetReadLimit(maxClientMessage)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("relay read: %v", err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		msg, err := Decode(data)
		if err != nil {
			logging.Warn("relay message: %v", err)
			continue
		}
		select {
		case c.incoming <- msg:
		case <-c.done:
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Warn("relay write: %v", err)
				c.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
