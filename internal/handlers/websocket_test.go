package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"pc_restarter/internal/models"
	"pc_restarter/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	h := NewHandler(&service.Service{}, nil)

	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/ws", defaultInterval},
		{"interval_string_valid", "/ws?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/ws?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/ws?interval=2m", defaultInterval},
		{"interval_ms_too_large", "/ws?interval_ms=90000", defaultInterval},
		{"interval_invalid_string", "/ws?interval=bogus", defaultInterval},
		{"interval_ms_invalid", "/ws?interval_ms=NaN", defaultInterval},
		{"both_present_interval_wins", "/ws?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/ws?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.u, nil)
			c, _ := gin.CreateTestContext(w)
			c.Request = req
			got := h.parseInterval(c)
			if got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

func TestWebSocket_StateStream_InitialAndPeriodic(t *testing.T) {
	st := models.NewStatusModel()
	st.PCState = strPtr("ON")
	st.Connectivity = models.ConnectivityConnected
	mon := &mockMonitoring{state: st}
	s := &service.Service{Monitoring: mon}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	q := u.Query()
	q.Set("interval_ms", "20")
	u.RawQuery = q.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	type envelope struct {
		Type  string          `json:"type"`
		Data  json.RawMessage `json:"data"`
		Error string          `json:"error"`
	}

	// Read initial state
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != "state" || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var got models.StatusModel
	if err := json.Unmarshal(env.Data, &got); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if got.PCState == nil || *got.PCState != "ON" || got.Connectivity != models.ConnectivityConnected {
		t.Fatalf("unexpected state: %+v", got)
	}

	// Read a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != "state" {
		t.Fatalf("expected type=state, got %+v", env)
	}
}

func TestWebSocket_InitialGetStateError_Closes(t *testing.T) {
	mon := &mockMonitoring{err: errors.New("boom")}
	s := &service.Service{Monitoring: mon}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)

	srv := httptest.NewServer(r)
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	u.Scheme = "ws"
	u.Path = "/ws"
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// The server should close immediately after failing initial GetState/WriteJSON
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}

func dialWS(t *testing.T, srvURL, rawQuery string) *websocket.Conn {
	t.Helper()
	u, _ := url.Parse(srvURL)
	u.Scheme = "ws"
	u.Path = "/ws"
	u.RawQuery = rawQuery
	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	return conn
}

func TestWebSocket_ForwardsTrackerFrames(t *testing.T) {
	tr := newMockTracker()
	s := &service.Service{Monitoring: &mockMonitoring{state: models.NewStatusModel()}, Tracker: tr}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)
	srv := httptest.NewServer(r)
	defer srv.Close()

	// long resend period so only pushed frames arrive after the first one
	conn := dialWS(t, srv.URL, "interval=60s")

	type envelope struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	var env envelope
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(&env); err != nil || env.Type != service.FrameState {
		t.Fatalf("initial frame: %+v err=%v", env, err)
	}

	tr.frames <- service.Frame{Type: service.FrameLog, Data: service.LogLine{Message: "relay on"}}
	tr.frames <- service.Frame{Type: service.FrameHold, Data: service.HoldProgress{Action: "power", Progress: 0.5}}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read log frame: %v", err)
	}
	var line service.LogLine
	_ = json.Unmarshal(env.Data, &line)
	if env.Type != service.FrameLog || line.Message != "relay on" {
		t.Fatalf("unexpected log frame: %s %s", env.Type, env.Data)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read hold frame: %v", err)
	}
	var hp service.HoldProgress
	_ = json.Unmarshal(env.Data, &hp)
	if env.Type != service.FrameHold || hp.Action != "power" || hp.Progress != 0.5 {
		t.Fatalf("unexpected hold frame: %s %s", env.Type, env.Data)
	}

	_ = conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for !tr.wasUnsubscribed() {
		if time.Now().After(deadline) {
			t.Fatalf("subscription not released after client left")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestWebSocket_ClosedSubscriptionEndsStream(t *testing.T) {
	tr := newMockTracker()
	s := &service.Service{Monitoring: &mockMonitoring{state: models.NewStatusModel()}, Tracker: tr}

	r := gin.New()
	h := NewHandler(s, nil)
	r.GET("/ws", h.wsConnect)
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn := dialWS(t, srv.URL, "interval=60s")
	defer conn.Close()

	var raw json.RawMessage
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(&raw); err != nil {
		t.Fatalf("initial frame: %v", err)
	}

	close(tr.frames)
	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected the server to close, got %s", raw)
	}
}
