package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
)

// MaxLogLimit caps how many entries one history request returns.
const MaxLogLimit = 500

var (
	ErrInvalidTimeRange = errors.New("invalid time range: from must be <= to")
	ErrUnknownEventType = errors.New("unknown event type")
)

var eventTypes = map[string]struct{}{
	models.EventDeviceLog: {},
	models.EventAction:    {},
	models.EventOta:       {},
	models.EventConfig:    {},
}

// EventLogService reads device log lines, operator actions and OTA/config history.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

// List returns matching events oldest first. With a limit only the newest
// entries are kept, still oldest first, the way the console log panel shows them.
func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error) {
	f, err := normalizeFilter(f)
	if err != nil {
		return nil, err
	}
	events, err := s.eventRepo.List(ctx, f.From, f.To, f.Type)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if n := len(events); f.Limit > 0 && n > f.Limit {
		events = events[n-f.Limit:]
	}
	return events, nil
}

// normalizeFilter moves bounds to UTC, canonicalizes the type and clamps the limit.
func normalizeFilter(f LogFilter) (LogFilter, error) {
	if !f.From.IsZero() {
		f.From = f.From.UTC()
	}
	if !f.To.IsZero() {
		f.To = f.To.UTC()
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.From.After(f.To) {
		return LogFilter{}, ErrInvalidTimeRange
	}

	f.Type = strings.ToUpper(strings.TrimSpace(f.Type))
	if _, ok := eventTypes[f.Type]; f.Type != "" && !ok {
		return LogFilter{}, fmt.Errorf("%w: %q", ErrUnknownEventType, f.Type)
	}

	switch {
	case f.Limit < 0:
		f.Limit = 0
	case f.Limit > MaxLogLimit:
		f.Limit = MaxLogLimit
	}
	return f, nil
}

