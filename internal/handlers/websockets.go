package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"aquafeed/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 1 << 12

	defaultKeepalive = 10 * time.Second
	maxKeepalive     = time.Minute
)

// Stream message types.
const (
	wsTypeState     = "state"
	wsTypeKeepalive = "keepalive"
)

// wsEnvelope frames every stream message. Data carries a
// models.DashboardSnapshot for "state" and is empty for "keepalive".
type wsEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// The dashboard is served from any origin.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsSession is one connected dashboard client.
type wsSession struct {
	h         *Handler
	conn      *websocket.Conn
	log       *logger.Logger
	keepalive time.Duration
}

// @Summary      Dashboard stream
// @Description  WebSocket. Sends a state snapshot on connect and after every tick, feed and dismissal. A keepalive message goes out when nothing changed for interval (default 10s, at most 1m).
// @Tags         dashboard
// @Param        interval     query  string  false  "keepalive period as a duration, e.g. 15s"
// @Param        interval_ms  query  int     false  "keepalive period in milliseconds"
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	keepalive := parseKeepalive(c)

	log := h.log
	if log == nil {
		log = logger.NewNop()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	s := &wsSession{h: h, conn: conn, log: log, keepalive: keepalive}
	s.serve(c.Request.Context())
}

// serve subscribes before the first snapshot so no change between the two
// is lost, then pushes until the client goes away.
func (s *wsSession) serve(ctx context.Context) {
	changes, unsubscribe := s.h.services.Monitoring.Subscribe()
	defer unsubscribe()

	s.conn.SetReadLimit(maxMsgSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	gone := make(chan struct{})
	go s.drain(gone)

	if err := s.pushState(ctx); err != nil {
		s.log.Infow("ws_initial_state_failed", "err", err)
		return
	}

	idle := time.NewTimer(s.keepalive)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		idle.Stop()
		ping.Stop()
	}()

	for {
		var err error
		select {
		case <-gone:
			return
		case <-ctx.Done():
			return
		case <-changes:
			err = s.pushState(ctx)
		case <-idle.C:
			err = s.write(wsEnvelope{Type: wsTypeKeepalive})
		case <-ping.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			err = s.conn.WriteMessage(websocket.PingMessage, nil)
		}
		if err != nil {
			s.log.Infow("ws_write_failed", "err", err)
			return
		}
		idle.Reset(s.keepalive)
	}
}

// drain reads until the client disconnects so control frames are handled.
func (s *wsSession) drain(gone chan<- struct{}) {
	defer close(gone)
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			s.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

func (s *wsSession) pushState(ctx context.Context) error {
	st, err := s.h.services.Monitoring.GetState(ctx)
	if err != nil {
		s.log.Errorw("ws_get_dashboard_failed", "err", err)
		return err
	}
	return s.write(wsEnvelope{Type: wsTypeState, Data: st})
}

func (s *wsSession) write(env wsEnvelope) error {
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(env)
}

// parseKeepalive reads ?interval=15s or ?interval_ms=15000. Out of range or
// malformed values fall back to the default.
func parseKeepalive(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxKeepalive {
			return d
		}
	}
	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && time.Duration(v)*time.Millisecond <= maxKeepalive {
			return time.Duration(v) * time.Millisecond
		}
	}
	return defaultKeepalive
}
