// Package device talks to the restarter firmware's REST API.
package device

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"
)

var ErrUnexpectedStatus = errors.New("device: unexpected http status")

// CSRFHeader carries the token the device pushes over the status channel.
const CSRFHeader = "X-CSRF-Token"

const (
	pathStatus    = "/api/status"
	pathConfig    = "/api/config"
	pathPower     = "/api/action/power"
	pathReset     = "/api/action/reset"
	pathWifiScan  = "/api/wifi/scan"
	pathOtaStatus = "/api/ota/status"
	pathOtaCheck  = "/api/ota/check"
	pathOtaUpdate = "/api/ota/update"

	// error bodies are only kept for the message
	maxErrorBody = 512
)

// Client is a thin JSON client bound to one device.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

// New builds a client for baseURL (e.g. http://192.168.4.1).
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     logger.OrNop(log),
	}
}

// BaseURL is the device origin the client was built with.
func (c *Client) BaseURL() string { return c.baseURL }

// Status returns the raw /api/status body; it has the same shape as a live frame.
func (c *Client) Status(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, pathStatus, nil, nil)
}

func (c *Client) Config(ctx context.Context) (models.DeviceConfig, error) {
	var cfg models.DeviceConfig
	err := c.getJSON(ctx, pathConfig, &cfg)
	return cfg, err
}

// SaveConfig posts the new configuration. The device may reboot right after.
func (c *Client) SaveConfig(ctx context.Context, upd models.ConfigUpdate) error {
	body, err := json.Marshal(upd)
	if err != nil {
		return err
	}
	_, err = c.do(ctx, http.MethodPost, pathConfig, body, nil)
	return err
}

// Power requests a short pulse on the power relay.
func (c *Client) Power(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, pathPower, nil, nil)
	return err
}

// Reset requests a pulse on the reset relay.
func (c *Client) Reset(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, pathReset, nil, nil)
	return err
}

// ScanWifi starts or continues a scan; poll until Scanning is false.
func (c *Client) ScanWifi(ctx context.Context) (models.WifiScan, error) {
	var scan models.WifiScan
	err := c.getJSON(ctx, pathWifiScan, &scan)
	return scan, err
}

func (c *Client) OtaStatus(ctx context.Context) (models.OtaStatus, error) {
	var st models.OtaStatus
	if err := c.getJSON(ctx, pathOtaStatus, &st); err != nil {
		return models.OtaStatus{}, err
	}
	return st.Normalize(), nil
}

func (c *Client) OtaCheck(ctx context.Context) (models.OtaStatus, error) {
	return c.otaPost(ctx, pathOtaCheck, nil)
}

// OtaUpdate starts flashing the remote image. The token must echo the one
// pushed over the status channel.
func (c *Client) OtaUpdate(ctx context.Context, csrfToken string) (models.OtaStatus, error) {
	return c.otaPost(ctx, pathOtaUpdate, http.Header{CSRFHeader: []string{csrfToken}})
}

// otaPost decodes an OtaStatus body when the device sends one.
func (c *Client) otaPost(ctx context.Context, path string, hdr http.Header) (models.OtaStatus, error) {
	b, err := c.do(ctx, http.MethodPost, path, nil, hdr)
	if err != nil {
		return models.OtaStatus{}, err
	}
	var st models.OtaStatus
	if len(bytes.TrimSpace(b)) == 0 {
		return st, nil
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return models.OtaStatus{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return st.Normalize(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	b, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, hdr http.Header) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debugw("device_request_failed", "method", method, "path", path, "err", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	c.log.Debugw("device_request", "method", method, "path", path, "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(data))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return nil, fmt.Errorf("%w: %s %s returned %d: %s", ErrUnexpectedStatus, method, path, resp.StatusCode, msg)
	}
	return data, nil
}
