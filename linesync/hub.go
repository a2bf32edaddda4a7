package linesync

import (
	"net/http"
	"sync"
	"time"

	"tacmap/internal/logging"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

// Hub relays lines between every connected peer and remembers the newest
// ones so late joiners receive a snapshot.
type Hub struct {
	mu      sync.Mutex
	peers   map[*peer]struct{}
	lines   []WireLine
	limit   int
	closed  bool
	upgrade websocket.Upgrader

	// PeerRate and PeerBurst bound how fast a single peer may send.
	PeerRate  rate.Limit
	PeerBurst int
}

type peer struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	limiter *rate.Limiter
	addr    string
}

// NewHub returns a hub keeping at most limit lines; negative keeps all.
func NewHub(limit int) *Hub {
	return &Hub{
		peers: make(map[*peer]struct{}),
		limit: limit,
		upgrade: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		PeerRate:  rate.Every(10 * time.Millisecond),
		PeerBurst: 64,
	}
}

// ServeWS upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrade.Upgrade(w, r, nil)
	if err != nil {
		logging.Warn("websocket upgrade from %s: %v", r.RemoteAddr, err)
		return
	}
	p := &peer{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, sendQueue),
		limiter: rate.NewLimiter(h.PeerRate, h.PeerBurst),
		addr:    r.RemoteAddr,
	}
	if !h.register(p) {
		conn.Close()
		return
	}
	go p.writePump()
	p.readPump()
}

func (h *Hub) register(p *peer) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.peers[p] = struct{}{}
	// queued before any broadcast can reach this peer
	p.send <- encode(Message{Type: KindSnapshot, Lines: append([]WireLine(nil), h.lines...)})
	logging.Debug("peer %s joined (%d connected)", p.addr, len(h.peers))
	return true
}

func (h *Hub) unregister(p *peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.peers[p]; !ok {
		return
	}
	delete(h.peers, p)
	close(p.send)
	logging.Debug("peer %s left (%d connected)", p.addr, len(h.peers))
}

// Snapshot returns a copy of the lines a new peer would receive.
func (h *Hub) Snapshot() []WireLine {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]WireLine, len(h.lines))
	copy(out, h.lines)
	return out
}

// Peers reports the number of connected peers.
func (h *Hub) Peers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

// Clear drops every line and tells all peers.
func (h *Hub) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lines = nil
	h.broadcastLocked(nil, encode(Message{Type: KindClear}))
}

// Close disconnects every peer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for p := range h.peers {
		delete(h.peers, p)
		close(p.send)
	}
}

func (h *Hub) handle(from *peer, msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch msg.Type {
	case KindLine:
		h.lines = append(h.lines, *msg.Line)
		for h.limit >= 0 && len(h.lines) > h.limit {
			h.lines = h.lines[1:]
		}
		h.broadcastLocked(from, encode(msg))
	case KindClear:
		h.lines = nil
		h.broadcastLocked(from, encode(msg))
	default:
		logging.Debug("peer %s sent %q, ignored", from.addr, msg.Type)
	}
}

// broadcastLocked queues data for every peer except skip. Slow peers miss
// the message rather than stalling the hub.
func (h *Hub) broadcastLocked(skip *peer, data []byte) {
	for p := range h.peers {
		if p == skip {
			continue
		}
		select {
		case p.send <- data:
		default:
			logging.Warn("peer %s send queue full, dropping message", p.addr)
		}
	}
}

func (p *peer) readPump() {
	defer func() {
		p.hub.unregister(p)
		p.conn.Close()
	}()
	p.conn.SetReadLimit(maxPeerMessage)
	_ = p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		mt, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("peer %s read: %v", p.addr, err)
			}
			return
		}
		if mt != websocket.TextMessage {
			continue
		}
		if !p.limiter.Allow() {
			logging.Debug("peer %s rate limited", p.addr)
			continue
		}
		msg, err := Decode(data)
		if err != nil {
			logging.Warn("peer %s: %v", p.addr, err)
			continue
		}
		p.hub.handle(p, msg)
	}
}

func (p *peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		p.conn.Close()
	}()
	for {
		select {
		case data, ok := <-p.send:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = p.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := p.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				logging.Warn("peer %s write: %v", p.addr, err)
				return
			}
		case <-ticker.C:
			_ = p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
