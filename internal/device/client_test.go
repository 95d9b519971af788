package device

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"pc_restarter/internal/models"
)

type seen struct {
	method, path, csrf, body string
}

type requestLog struct {
	mu    sync.Mutex
	calls []seen
}

func (l *requestLog) at(i int) seen {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[i]
}

func newDevice(t *testing.T, h func(w http.ResponseWriter, r *http.Request)) (*Client, *requestLog) {
	t.Helper()
	rl := &requestLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rl.mu.Lock()
		rl.calls = append(rl.calls, seen{r.Method, r.URL.Path, r.Header.Get(CSRFHeader), string(b)})
		rl.mu.Unlock()
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second, nil), rl
}

func TestClient_StatusReturnsRawBody(t *testing.T) {
	c, calls := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"pcState":"RUNNING","apMode":false}`))
	})

	b, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if string(b) != `{"pcState":"RUNNING","apMode":false}` {
		t.Fatalf("body = %s", b)
	}
	if got := calls.at(0); got.method != http.MethodGet || got.path != "/api/status" {
		t.Fatalf("request = %+v", got)
	}
}

func TestClient_ActionsPostToActionEndpoints(t *testing.T) {
	c, calls := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx := context.Background()

	if err := c.Power(ctx); err != nil {
		t.Fatalf("Power: %v", err)
	}
	if err := c.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	want := []string{"/api/action/power", "/api/action/reset"}
	for i, p := range want {
		if calls.at(i).method != http.MethodPost || calls.at(i).path != p {
			t.Fatalf("call %d = %+v, want POST %s", i, calls.at(i), p)
		}
	}
}

func TestClient_Non2xxWrapsErrUnexpectedStatus(t *testing.T) {
	c, _ := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wifiSsid required", http.StatusBadRequest)
	})

	err := c.SaveConfig(context.Background(), models.ConfigUpdate{})
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestClient_SaveConfigSendsJSON(t *testing.T) {
	c, calls := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("content-type = %q", r.Header.Get("Content-Type"))
		}
	})

	upd := models.ConfigUpdate{WifiSSID: "home", WifiPass: "secret", MQTTPort: 1883}
	if err := c.SaveConfig(context.Background(), upd); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	var got models.ConfigUpdate
	if err := json.Unmarshal([]byte(calls.at(0).body), &got); err != nil {
		t.Fatalf("body: %v", err)
	}
	if got.WifiSSID != "home" || got.WifiPass != "secret" || got.MQTTPort != 1883 {
		t.Fatalf("sent %+v", got)
	}
}

func TestClient_OtaUpdateEchoesCSRFTokenAndNormalizes(t *testing.T) {
	c, calls := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"updateInProgress":true,"available":true,"progress":140}`))
	})

	st, err := c.OtaUpdate(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("OtaUpdate: %v", err)
	}
	if calls.at(0).csrf != "tok-1" || calls.at(0).path != "/api/ota/update" {
		t.Fatalf("request = %+v", calls.at(0))
	}
	if st.Available || st.ProgressPct != 100 {
		t.Fatalf("status not normalized: %+v", st)
	}
}

func TestClient_OtaCheckEmptyBody(t *testing.T) {
	c, _ := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	st, err := c.OtaCheck(context.Background())
	if err != nil {
		t.Fatalf("OtaCheck: %v", err)
	}
	if st != (models.OtaStatus{}) {
		t.Fatalf("status = %+v, want zero", st)
	}
}

func TestClient_ConfigAndScanDecode(t *testing.T) {
	c, _ := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/config":
			_, _ = w.Write([]byte(`{"wifiSsid":"home","mqttPort":1883,"hasWifiPass":true}`))
		case "/api/wifi/scan":
			_, _ = w.Write([]byte(`{"scanning":false,"networks":[{"ssid":"a","rssi":-40,"secure":true}]}`))
		}
	})
	ctx := context.Background()

	cfg, err := c.Config(ctx)
	if err != nil || cfg.WifiSSID != "home" || !cfg.HasWifiPass {
		t.Fatalf("Config = %+v, %v", cfg, err)
	}
	scan, err := c.ScanWifi(ctx)
	if err != nil || scan.Scanning || len(scan.Networks) != 1 || scan.Networks[0].RSSI != -40 {
		t.Fatalf("ScanWifi = %+v, %v", scan, err)
	}
}

func TestClient_BadJSONIsAnError(t *testing.T) {
	c, _ := newDevice(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	if _, err := c.OtaStatus(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestClient_ContextCanceled(t *testing.T) {
	c, _ := newDevice(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.Power(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
