package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"pc_restarter/internal/models"
	"pc_restarter/internal/service"
	"pc_restarter/internal/statussync"

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

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockController struct {
	powerErr    error
	resetErr    error
	powerCalled int
	resetCalled int
}

func (m *mockController) Power(ctx context.Context) error {
	m.powerCalled++
	return m.powerErr
}
func (m *mockController) Reset(ctx context.Context) error {
	m.resetCalled++
	return m.resetErr
}

type mockMonitoring struct {
	state models.StatusModel
	err   error
}

func (m *mockMonitoring) GetState(ctx context.Context) (models.StatusModel, error) {
	return m.state, m.err
}

type mockEventLog struct {
	resp      []models.DeviceEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.DeviceEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

type mockHold struct {
	err   error
	steps []string // "press:power", "release:reset", ...
}

func (m *mockHold) Press(action string) error   { return m.step("press", action) }
func (m *mockHold) Release(action string) error { return m.step("release", action) }
func (m *mockHold) Cancel(action string) error  { return m.step("cancel", action) }

func (m *mockHold) step(kind, action string) error {
	m.steps = append(m.steps, kind+":"+action)
	return m.err
}

type mockOta struct {
	status    models.OtaStatus
	statusErr error
	checkErr  error
	updateErr error
	updates   int
}

func (m *mockOta) Status(ctx context.Context) (models.OtaStatus, error) {
	return m.status, m.statusErr
}
func (m *mockOta) Check(ctx context.Context) (models.OtaStatus, error) {
	return m.status, m.checkErr
}
func (m *mockOta) StartUpdate(ctx context.Context) (models.OtaStatus, error) {
	m.updates++
	return m.status, m.updateErr
}

type mockSetup struct {
	cfg      models.DeviceConfig
	networks []models.WifiNetwork
	err      error
	saved    []models.ConfigUpdate
}

func (m *mockSetup) GetConfig(ctx context.Context) (models.DeviceConfig, error) {
	return m.cfg, m.err
}
func (m *mockSetup) SaveConfig(ctx context.Context, upd models.ConfigUpdate) error {
	m.saved = append(m.saved, upd)
	return m.err
}
func (m *mockSetup) ScanWifi(ctx context.Context) ([]models.WifiNetwork, error) {
	return m.networks, m.err
}

// mockTracker hands out a single subscription fed by the test.
type mockTracker struct {
	frames chan service.Frame
	conn   statussync.ConnectionState

	mu           sync.Mutex
	unsubscribed bool
}

func newMockTracker() *mockTracker {
	return &mockTracker{frames: make(chan service.Frame, 8), conn: statussync.StateOpen}
}

func (m *mockTracker) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}
func (m *mockTracker) Snapshot() models.StatusModel { return models.NewStatusModel() }
func (m *mockTracker) Subscribe() (<-chan service.Frame, func()) {
	return m.frames, func() {
		m.mu.Lock()
		m.unsubscribed = true
		m.mu.Unlock()
	}
}
func (m *mockTracker) Connection() statussync.ConnectionState { return m.conn }

func (m *mockTracker) wasUnsubscribed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unsubscribed
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
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

// authed builds a request carrying a valid bearer token.
func authed(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	for k, vv := range authHeader("valid") {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func strPtr(s string) *string { return &s }
