package service

import (
	"context"
	"sync"
	"time"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
	"pc_restarter/internal/statussync"
)

const persistTimeout = 2 * time.Second

// TrackerService owns the status channel to the device. Every merged model is
// persisted and fanned out; log frames go to the event log.
type TrackerService struct {
	device    DeviceAPI
	stateRepo repository.StateRepo
	eventRepo repository.EventRepo
	client    *statussync.Client
	hub       *Hub
	log       *logger.Logger

	otaInterval time.Duration

	mu       sync.Mutex
	runCtx   context.Context
	otaWatch *statussync.PollWatcher[models.OtaStatus]
}

func NewTrackerService(
	dev DeviceAPI,
	resolve statussync.EndpointResolver,
	opts statussync.Options,
	stateRepo repository.StateRepo,
	eventRepo repository.EventRepo,
	otaInterval time.Duration,
	log *logger.Logger,
) *TrackerService {
	t := &TrackerService{
		device:      dev,
		stateRepo:   stateRepo,
		eventRepo:   eventRepo,
		hub:         NewHub(defaultHubBuffer),
		log:         logger.OrNop(log),
		otaInterval: otaInterval,
		runCtx:      context.Background(),
	}
	t.client = statussync.New(resolve, t.onUpdate, t.onLog, opts, log)
	return t
}

// Run fetches the initial status over HTTP, then keeps the live channel up
// until ctx is canceled.
func (t *TrackerService) Run(ctx context.Context) error {
	t.mu.Lock()
	t.runCtx = ctx
	t.mu.Unlock()

	defer t.stopOtaWatch()

	t.populate(ctx)
	return t.client.Run(ctx)
}

func (t *TrackerService) Snapshot() models.StatusModel {
	return t.client.Snapshot()
}

func (t *TrackerService) Subscribe() (<-chan Frame, func()) {
	return t.hub.Subscribe()
}

func (t *TrackerService) Connection() statussync.ConnectionState {
	return t.client.State()
}

// Hub is shared with services that publish their own frames.
func (t *TrackerService) Hub() *Hub {
	return t.hub
}

// ApplyOta merges an OTA document fetched over HTTP.
func (t *TrackerService) ApplyOta(st models.OtaStatus) {
	t.client.ApplyPatch(models.StatusPatch{Ota: &st})
}

// WatchOta polls OTA progress until the update is no longer running.
// At most one watcher runs at a time.
func (t *TrackerService) WatchOta() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.otaWatch != nil {
		select {
		case <-t.otaWatch.Done():
		default:
			return
		}
	}

	w := statussync.NewPollWatcher(t.otaInterval, t.device.OtaStatus,
		func(st models.OtaStatus) bool { return !st.UpdateInProgress },
		t.onOtaResult, t.log)
	if err := w.Start(t.runCtx); err != nil {
		t.log.Errorw("ota_watch_start_failed", "err", err)
		return
	}
	t.otaWatch = w
	t.log.Infow("ota_watch_started", "interval", t.otaInterval)
}

func (t *TrackerService) stopOtaWatch() {
	t.mu.Lock()
	w := t.otaWatch
	t.mu.Unlock()
	if w != nil {
		w.Stop()
		<-w.Done()
	}
}

func (t *TrackerService) populate(ctx context.Context) {
	body, err := t.device.Status(ctx)
	if err != nil {
		t.log.Infow("initial_status_failed", "err", err)
		return
	}
	t.client.Ingest(body)
}

func (t *TrackerService) onUpdate(m models.StatusModel) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := t.stateRepo.Save(ctx, m); err != nil {
		t.log.Errorw("snapshot_save_failed", "err", err)
	}

	t.hub.Publish(Frame{Type: FrameState, Data: m})

	if m.Ota != nil && m.Ota.UpdateInProgress {
		t.WatchOta()
	}
}

func (t *TrackerService) onLog(msg string) {
	now := time.Now().UTC()
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := t.eventRepo.Append(ctx, models.DeviceEvent{
		OccurredAt:  now,
		Type:        models.EventDeviceLog,
		Description: msg,
	}); err != nil {
		t.log.Errorw("device_log_append_failed", "err", err)
	}

	t.hub.Publish(Frame{Type: FrameLog, Data: LogLine{Message: msg, At: now}})
}

func (t *TrackerService) onOtaResult(st models.OtaStatus) {
	t.ApplyOta(st)
	if st.UpdateInProgress {
		return
	}

	desc := "OTA update finished"
	if st.Error != "" {
		desc = "OTA update failed"
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := t.eventRepo.Append(ctx, models.DeviceEvent{
		Type:        models.EventOta,
		Description: desc,
		Metadata: map[string]any{
			"version":         st.CurrentVersion,
			"error":           st.Error,
			"reboot_required": st.RebootRequired,
		},
	}); err != nil {
		t.log.Errorw("ota_event_append_failed", "err", err)
	}
}
