package service

import (
	"context"
	"sync"
	"time"

	"pc_restarter/internal/models"
)

// deviceStub is a scripted DeviceAPI.
type deviceStub struct {
	mu sync.Mutex

	status    []byte
	statusErr error
	config    models.DeviceConfig
	configErr error
	actionErr error

	scans   []models.WifiScan // served in order; the last one repeats
	scanErr error

	ota       []models.OtaStatus // served in order; the last one repeats
	otaErr    error
	checkResp models.OtaStatus
	checkErr  error
	updResp   models.OtaStatus
	updErr    error

	powers, resets, scanCalls, otaCalls int
	savedCfg                            []models.ConfigUpdate
	csrfSeen                            []string

	saved chan models.ConfigUpdate
	fired chan string
}

func (d *deviceStub) Status(ctx context.Context) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status, d.statusErr
}

func (d *deviceStub) Config(ctx context.Context) (models.DeviceConfig, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.config, d.configErr
}

func (d *deviceStub) SaveConfig(ctx context.Context, upd models.ConfigUpdate) error {
	d.mu.Lock()
	d.savedCfg = append(d.savedCfg, upd)
	ch := d.saved
	d.mu.Unlock()
	if ch != nil {
		ch <- upd
	}
	return d.actionErr
}

func (d *deviceStub) Power(ctx context.Context) error {
	d.mu.Lock()
	d.powers++
	ch := d.fired
	err := d.actionErr
	d.mu.Unlock()
	if ch != nil {
		ch <- ActionPower
	}
	return err
}

func (d *deviceStub) Reset(ctx context.Context) error {
	d.mu.Lock()
	d.resets++
	ch := d.fired
	err := d.actionErr
	d.mu.Unlock()
	if ch != nil {
		ch <- ActionReset
	}
	return err
}

func (d *deviceStub) ScanWifi(ctx context.Context) (models.WifiScan, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scanCalls++
	if d.scanErr != nil {
		return models.WifiScan{}, d.scanErr
	}
	i := min(d.scanCalls-1, len(d.scans)-1)
	return d.scans[i], nil
}

func (d *deviceStub) OtaStatus(ctx context.Context) (models.OtaStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.otaCalls++
	if d.otaErr != nil {
		return models.OtaStatus{}, d.otaErr
	}
	if len(d.ota) == 0 {
		return models.OtaStatus{}, nil
	}
	i := min(d.otaCalls-1, len(d.ota)-1)
	return d.ota[i].Normalize(), nil
}

func (d *deviceStub) OtaCheck(ctx context.Context) (models.OtaStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.checkResp, d.checkErr
}

func (d *deviceStub) OtaUpdate(ctx context.Context, csrfToken string) (models.OtaStatus, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.csrfSeen = append(d.csrfSeen, csrfToken)
	return d.updResp, d.updErr
}

// memStateRepo is a concurrency-safe repository.StateRepo.
type memStateRepo struct {
	mu      sync.Mutex
	stored  models.StatusModel
	saves   int
	loadErr error
}

func (r *memStateRepo) Save(ctx context.Context, s models.StatusModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stored = s
	r.saves++
	return nil
}

func (r *memStateRepo) Load(ctx context.Context) (models.StatusModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return models.StatusModel{}, r.loadErr
	}
	if r.saves == 0 {
		return models.NewStatusModel(), nil
	}
	return r.stored, nil
}

// memEventRepo is a concurrency-safe repository.EventRepo that records appends.
type memEventRepo struct {
	mu     sync.Mutex
	events []models.DeviceEvent
	err    error
}

func (r *memEventRepo) Append(ctx context.Context, e models.DeviceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, e)
	return nil
}

func (r *memEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.DeviceEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	var out []models.DeviceEvent
	for _, e := range r.events {
		switch {
		case !from.IsZero() && e.OccurredAt.Before(from):
		case !to.IsZero() && e.OccurredAt.After(to):
		case typ != "" && e.Type != typ:
		default:
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memEventRepo) ofType(typ string) []models.DeviceEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.DeviceEvent
	for _, e := range r.events {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

func strPtr(s string) *string { return &s }

// waitFor polls cond until it holds or the deadline passes.
func waitFor(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
