package server

import (
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/verte-zerg/sentiboard/internal/dataset"
	"github.com/verte-zerg/sentiboard/internal/engine"
	"github.com/verte-zerg/sentiboard/internal/model"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// SelectionRequest is one client frame. A nil axis selects every known value.
type SelectionRequest struct {
	Periods   []string `json:"periods"`
	Platforms []string `json:"platforms"`
}

type errorFrame struct {
	Error string `json:"error"`
}

type wsClient struct {
	id     string
	conn   *websocket.Conn
	send   chan []byte
	done   chan struct{} // closed when writePump exits
	closer sync.Once
}

// hub tracks open connections so shutdown can close them.
type hub struct {
	mu      sync.Mutex
	clients map[string]*wsClient
}

func newHub() *hub {
	return &hub{clients: map[string]*wsClient{}}
}

func (h *hub) add(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

func (h *hub) remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, id)
}

func (h *hub) closeAll() {
	h.mu.Lock()
	clients := lo.Values(h.clients)
	h.mu.Unlock()
	for _, c := range clients {
		c.close()
	}
}

func (c *wsClient) close() {
	c.closer.Do(func() {
		_ = c.conn.Close()
	})
}

// selectionWebSocketHandler answers each selection frame with the computed series.
func selectionWebSocketHandler(d *dataset.Dataset, h *hub, checkOrigin func(*http.Request) bool) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
	records := d.Records()

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Warn().Err(err).Msg("failed to upgrade to websocket")
			return
		}

		client := &wsClient{
			id:   uuid.NewString(),
			conn: conn,
			send: make(chan []byte, 16),
			done: make(chan struct{}),
		}
		h.add(client)
		log.Info().Str("conn", client.id).Str("remote", r.RemoteAddr).Msg("websocket connected")

		go client.writePump()
		client.readPump(func(message []byte) []byte {
			return handleSelectionFrame(d, records, client.id, message)
		})
		h.remove(client.id)
		log.Info().Str("conn", client.id).Msg("websocket disconnected")
	}
}

func handleSelectionFrame(d *dataset.Dataset, records []model.Record, connID string, message []byte) []byte {
	var req SelectionRequest
	if err := json.Unmarshal(message, &req); err != nil {
		log.Debug().Str("conn", connID).Err(err).Msg("invalid selection frame")
		return mustMarshal(errorFrame{Error: "invalid selection: " + err.Error()})
	}
	sel := d.Restrict(req.Periods, req.Platforms)
	res := engine.Compute(records, sel)
	log.Debug().
		Str("conn", connID).
		Strs("periods", sel.Periods).
		Strs("platforms", sel.Platforms).
		Msg("selection frame")
	return mustMarshal(res)
}

func mustMarshal(v any) []byte {
	out, err := json.Marshal(v)
	if err != nil {
		out, _ = json.Marshal(errorFrame{Error: err.Error()})
	}
	return out
}

// readPump reads frames until the peer goes away and queues one reply per frame.
func (c *wsClient) readPump(reply func([]byte) []byte) {
	defer func() {
		close(c.send)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Str("conn", c.id).Err(err).Msg("websocket read error")
			}
			return
		}
		select {
		case c.send <- reply(message):
		case <-c.done:
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
		close(c.done)
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// newOriginChecker allows same-origin requests and any origin in allowed. "*" allows all.
func newOriginChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 || lo.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		if u.Host == r.Host {
			return true
		}
		return lo.Contains(allowed, origin)
	}
}
