package service

import (
	"context"
	"errors"
	"fmt"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
)

var (
	ErrNoCSRFToken       = errors.New("device has not pushed a csrf token yet")
	ErrUpdateUnavailable = errors.New("no update can be offered right now")
)

type otaTracker interface {
	Snapshot() models.StatusModel
	ApplyOta(st models.OtaStatus)
	WatchOta()
}

// OtaService checks for and starts firmware updates. Failures of the update
// itself are reported through OtaStatus.Error and never retried.
type OtaService struct {
	device    DeviceAPI
	tracker   otaTracker
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewOtaService(dev DeviceAPI, tracker otaTracker, eventRepo repository.EventRepo, log *logger.Logger) *OtaService {
	return &OtaService{device: dev, tracker: tracker, eventRepo: eventRepo, log: logger.OrNop(log)}
}

// Status asks the device; when it cannot be reached the last merged status is returned.
func (s *OtaService) Status(ctx context.Context) (models.OtaStatus, error) {
	st, err := s.device.OtaStatus(ctx)
	if err != nil {
		if snap := s.tracker.Snapshot(); snap.Ota != nil {
			s.log.Debugw("ota_status_stale", "err", err)
			return *snap.Ota, nil
		}
		return models.OtaStatus{}, fmt.Errorf("ota status: %w", err)
	}
	s.tracker.ApplyOta(st)
	return st, nil
}

func (s *OtaService) Check(ctx context.Context) (models.OtaStatus, error) {
	st, err := s.device.OtaCheck(ctx)
	if err != nil {
		return models.OtaStatus{}, fmt.Errorf("ota check: %w", err)
	}
	if st == (models.OtaStatus{}) {
		// accepted without a body; the result arrives over the status channel
		if snap := s.tracker.Snapshot(); snap.Ota != nil {
			st = *snap.Ota
		}
		st.Checking = true
	}
	st = st.Normalize()
	s.tracker.ApplyOta(st)
	s.record(ctx, "OTA check requested", st)
	return st, nil
}

// StartUpdate needs the CSRF token from the status channel and refuses while
// an update cannot be offered.
func (s *OtaService) StartUpdate(ctx context.Context) (models.OtaStatus, error) {
	snap := s.tracker.Snapshot()
	if snap.CSRFToken == nil || *snap.CSRFToken == "" {
		return models.OtaStatus{}, ErrNoCSRFToken
	}
	if snap.Ota == nil || !snap.Ota.CanOfferUpdate() {
		return models.OtaStatus{}, ErrUpdateUnavailable
	}

	st, err := s.device.OtaUpdate(ctx, *snap.CSRFToken)
	if err != nil {
		st = *snap.Ota
		st.UpdateInProgress = false
		st.Error = err.Error()
		s.log.Infow("ota_update_rejected", "err", err)
		s.tracker.ApplyOta(st)
		s.record(ctx, "OTA update failed to start", st)
		return st, nil
	}

	if st == (models.OtaStatus{}) {
		st = *snap.Ota
		st.UpdateInProgress = true
		st.ProgressPct = 0
		st.Error = ""
	}
	st = st.Normalize()
	s.tracker.ApplyOta(st)
	s.tracker.WatchOta()
	s.record(ctx, "OTA update started", st)
	return st, nil
}

func (s *OtaService) record(ctx context.Context, desc string, st models.OtaStatus) {
	if err := s.eventRepo.Append(ctx, models.DeviceEvent{
		Type:        models.EventOta,
		Description: desc,
		Metadata: map[string]any{
			"current": st.CurrentVersion,
			"remote":  st.RemoteVersion,
			"error":   st.Error,
		},
	}); err != nil {
		s.log.Errorw("ota_event_append_failed", "err", err)
	}
}
