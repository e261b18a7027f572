package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"time"

	"aquafeed/internal/models"
	"aquafeed/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	signUpCalls        int
	genCalls           int
	lastSignUpCtx      context.Context
	lastSignUpUsername string
	lastSignUpPassword string
	lastGenCtx         context.Context
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.signUpCalls++
	m.lastSignUpCtx = ctx
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.genCalls++
	m.lastGenCtx = ctx
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockMonitoring serves a fixed snapshot. Tests signal a change by sending
// on changes; a nil changes never fires.
type mockMonitoring struct {
	state   models.DashboardSnapshot
	err     error
	changes chan struct{}

	subscribed   atomic.Int32
	unsubscribed atomic.Int32
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.DashboardSnapshot, error) {
	return m.state, m.err
}

func (m *mockMonitoring) Subscribe() (<-chan struct{}, func()) {
	m.subscribed.Add(1)
	return m.changes, func() { m.unsubscribed.Add(1) }
}

// mockFeeder refuses when busy, otherwise hands back a channel that yields
// record (or is closed empty when closeEmpty is set).
type mockFeeder struct {
	busy       bool
	record     models.FeedingRecord
	closeEmpty bool
	calls      int
}

func (m *mockFeeder) Feed(ctx context.Context) (<-chan models.FeedingRecord, bool) {
	m.calls++
	if m.busy {
		return nil, false
	}
	ch := make(chan models.FeedingRecord, 1)
	if !m.closeEmpty {
		ch <- m.record
	}
	close(ch)
	return ch, true
}

func (m *mockFeeder) Feeding() bool { return m.busy }

type mockAlerts struct {
	alerts         []models.Alert
	lastActiveOnly bool
	lastDismissID  string
}

func (m *mockAlerts) ListAlerts(ctx context.Context, activeOnly bool) []models.Alert {
	m.lastActiveOnly = activeOnly
	return m.alerts
}

func (m *mockAlerts) Dismiss(ctx context.Context, id string) (models.Alert, bool) {
	m.lastDismissID = id
	for _, a := range m.alerts {
		if a.ID == id {
			a.Dismissed = true
			return a, true
		}
	}
	return models.Alert{}, false
}

type mockEventLog struct {
	resp     []models.DashboardEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DashboardEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

// authedRequest builds a request carrying a bearer token accepted by mockAuth.
func authedRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header = authHeader("valid")
	return req
}
