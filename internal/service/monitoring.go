package service

import (
	"context"
	"time"

	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
)

type snapshotter interface {
	Snapshot() models.StatusModel
}

type MonitoringService struct {
	live      snapshotter
	stateRepo repository.StateRepo
}

func NewMonitoringService(live snapshotter, stateRepo repository.StateRepo) *MonitoringService {
	return &MonitoringService{live: live, stateRepo: stateRepo}
}

// GetState returns the live merged model. Before the first frame of this
// process arrives it falls back to the last persisted snapshot, so a stale
// model is shown instead of nothing.
func (s *MonitoringService) GetState(ctx context.Context) (models.StatusModel, error) {
	if s.live != nil {
		if st := s.live.Snapshot(); !st.UpdatedAt.IsZero() {
			return st, nil
		}
	}
	st, err := s.stateRepo.Load(ctx)
	if err != nil {
		return models.StatusModel{}, err
	}
	st.UpdatedAt = toUTC(st.UpdatedAt)
	return st, nil
}

// toUTC normalizes non-zero time to UTC, preserving zero values.
func toUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}
