package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"aquafeed/internal/config"
	"aquafeed/internal/models"
	"aquafeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

func TestParseKeepalive(t *testing.T) {
	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultKeepalive},
		{"interval_string_valid", "/ws?interval=15s", 15 * time.Second},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_at_max", "/ws?interval=1m", time.Minute},
		{"interval_too_large", "/ws?interval=2m", defaultKeepalive},
		{"interval_ms_too_large", "/ws?interval_ms=60001", defaultKeepalive},
		{"interval_negative", "/ws?interval=-1s", defaultKeepalive},
		{"interval_invalid_string", "/ws?interval=bogus", defaultKeepalive},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", defaultKeepalive},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := parseKeepalive(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

type wsMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// dialStream serves /ws for s and connects to it with the given query.
func dialStream(t *testing.T, s *service.Service, query string) *websocket.Conn {
	t.Helper()
	r := gin.New()
	r.GET("/ws", NewHandler(s, nil, nil).wsConnect)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = query

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) wsMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg wsMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func readState(t *testing.T, conn *websocket.Conn) models.DashboardSnapshot {
	t.Helper()
	msg := readMessage(t, conn)
	if msg.Type != wsTypeState || len(msg.Data) == 0 {
		t.Fatalf("expected state message, got %+v", msg)
	}
	var st models.DashboardSnapshot
	if err := json.Unmarshal(msg.Data, &st); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	return st
}

func TestWebSocket_PushesStateOnChange(t *testing.T) {
	snap := sampleSnapshot()
	snap.ActiveAlerts = []models.Alert{{ID: "temp-low-1", Kind: models.AlertTemperature, Severity: models.SeverityHigh}}
	snap.Alerts = snap.ActiveAlerts
	mon := &mockMonitoring{state: snap, changes: make(chan struct{}, 1)}

	conn := dialStream(t, &service.Service{Monitoring: mon}, "interval=1m")

	st := readState(t, conn)
	if st.Current.Temperature != 80 || len(st.ReadingHistory) != 2 || len(st.ActiveAlerts) != 1 || st.SuccessRate != 100 {
		t.Fatalf("unexpected initial state: %+v", st)
	}

	mon.changes <- struct{}{}
	if st := readState(t, conn); len(st.ActiveAlerts) != 1 {
		t.Fatalf("unexpected pushed state: %+v", st)
	}
}

func TestWebSocket_KeepaliveWhenIdle(t *testing.T) {
	mon := &mockMonitoring{state: sampleSnapshot()}
	conn := dialStream(t, &service.Service{Monitoring: mon}, "interval_ms=20")

	readState(t, conn)
	for i := 0; i < 2; i++ {
		if msg := readMessage(t, conn); msg.Type != wsTypeKeepalive || len(msg.Data) != 0 {
			t.Fatalf("expected keepalive, got %+v", msg)
		}
	}
}

func TestWebSocket_InitialGetStateError_Closes(t *testing.T) {
	mon := &mockMonitoring{err: errors.New("boom")}
	conn := dialStream(t, &service.Service{Monitoring: mon}, "")

	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}

	deadline := time.Now().Add(time.Second)
	for mon.unsubscribed.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("subscription not released (subscribed=%d)", mon.subscribed.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// stepSource yields queued values, then 0.5.
type stepSource struct {
	mu   sync.Mutex
	vals []float64
}

func (s *stepSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.vals) == 0 {
		return 0.5
	}
	v := s.vals[0]
	s.vals = s.vals[1:]
	return v
}

func (s *stepSource) push(v ...float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals = append(s.vals, v...)
}

func TestWebSocket_DismissPushesSnapshot(t *testing.T) {
	src := &stepSource{}
	mon := service.NewMonitorService(
		config.SimulationConfig{TickInterval: time.Second, FeedSuccessProbability: 0.95},
		service.MonitorDeps{Random: src},
	)
	ctx := context.Background()

	src.push(0.0, 0.5) // pH 6.1 raises one alert
	_, raised := mon.Tick(ctx)
	if len(raised) != 1 {
		t.Fatalf("expected one alert, got %+v", raised)
	}

	// keepalive far beyond the test so every message is a push
	conn := dialStream(t, &service.Service{Monitoring: mon}, "interval=1m")

	if st := readState(t, conn); len(st.ActiveAlerts) != 1 {
		t.Fatalf("initial active alerts: %+v", st.ActiveAlerts)
	}

	if _, ok := mon.Dismiss(ctx, raised[0].ID); !ok {
		t.Fatalf("dismiss %s failed", raised[0].ID)
	}

	st := readState(t, conn)
	if len(st.ActiveAlerts) != 0 {
		t.Fatalf("pushed snapshot still has active alerts: %+v", st.ActiveAlerts)
	}
	if len(st.Alerts) != 1 || !st.Alerts[0].Dismissed {
		t.Fatalf("pushed snapshot should keep the dismissed alert: %+v", st.Alerts)
	}
}
