// Package videobridge carries video commands to the embedded player page
// over a websocket. The channel is one-way: nothing the page sends back is
// interpreted.
package videobridge

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/llehouerou/eko/internal/playback"
)

const (
	sendBufferSize = 16
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 30 * time.Second
	maxReadSize    = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The page is served by this process on localhost.
	CheckOrigin: func(*http.Request) bool { return true },
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub fans video commands out to every connected surface. It implements
// playback.VideoSurface.
type Hub struct {
	log zerolog.Logger

	mu      sync.Mutex
	clients map[string]*client
	loaded  string // video cued on the surface
	playing bool
	closed  bool
}

var _ playback.VideoSurface = (*Hub)(nil)

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the hub logger.
func WithLogger(log zerolog.Logger) Option {
	return func(h *Hub) { h.log = log.With().Str("component", "videobridge").Logger() }
}

func NewHub(opts ...Option) *Hub {
	h := &Hub{
		log:     zerolog.Nop(),
		clients: make(map[string]*client),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Send delivers a command to every connected surface. Never blocks: a
// surface that cannot keep up loses the message.
func (h *Hub) Send(cmd playback.VideoCommand) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}

	msgs := translate(cmd, h.loaded)
	switch cmd.Action {
	case playback.VideoPlay, playback.VideoLoad:
		if cmd.VideoID != "" {
			h.loaded = cmd.VideoID
		}
		h.playing = true
	case playback.VideoPause:
		h.playing = false
	}

	frames, err := encode(msgs)
	if err != nil {
		h.log.Error().Err(err).Msg("encode video command")
		return
	}
	h.log.Debug().Str("action", string(cmd.Action)).Str("video", cmd.VideoID).Int("clients", len(h.clients)).Msg("video command")
	for _, c := range h.clients {
		for _, f := range frames {
			select {
			case c.send <- f:
			default:
				h.log.Warn().Str("client", c.id).Msg("video surface too slow, dropping command")
			}
		}
	}
}

// Clients returns the number of connected surfaces.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Handler serves the player page at / and the websocket at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", servePage)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

// ListenAndServe serves Handler on addr until ctx is done.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	h.log.Info().Str("addr", addr).Msg("video bridge listening")

	select {
	case err := <-errCh:
		return errors.Wrap(err, "video bridge")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	h.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "video bridge shutdown")
	}
	return nil
}

// Close disconnects every surface. Later commands are dropped.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, c := range h.clients {
		close(c.send)
		delete(h.clients, id)
	}
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}
	if !h.register(c) {
		conn.Close()
		return
	}
	go h.writePump(c)
	h.readPump(c)
}

// register adds c and cues the current video on it.
func (h *Hub) register(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c.id] = c

	if h.loaded != "" {
		var msgs []Message
		msgs = append(msgs, command(funcLoad, h.loaded))
		if !h.playing {
			msgs = append(msgs, command(funcPause))
		}
		if frames, err := encode(msgs); err == nil {
			for _, f := range frames {
				c.send <- f
			}
		}
	}
	h.log.Info().Str("client", c.id).Int("clients", len(h.clients)).Msg("video surface connected")
	return true
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
		h.log.Info().Str("client", c.id).Msg("video surface disconnected")
	}
}

// readPump discards incoming frames and detects disconnects.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxReadSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn().Err(err).Str("client", c.id).Msg("websocket read")
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
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
