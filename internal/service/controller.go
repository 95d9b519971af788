package service

import (
	"context"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
)

const (
	ActionPower = "power"
	ActionReset = "reset"
)

// ControllerService sends relay pulses. Requests are fire-and-forget: a
// failed request is logged and the next status frame shows the outcome.
type ControllerService struct {
	device    DeviceAPI
	eventRepo repository.EventRepo
	log       *logger.Logger
}

func NewControllerService(dev DeviceAPI, eventRepo repository.EventRepo, log *logger.Logger) *ControllerService {
	return &ControllerService{device: dev, eventRepo: eventRepo, log: logger.OrNop(log)}
}

// Power pulses the power button relay.
func (s *ControllerService) Power(ctx context.Context) error {
	return s.fire(ctx, ActionPower, "Power pulse requested", s.device.Power)
}

// Reset pulses the reset button relay.
func (s *ControllerService) Reset(ctx context.Context) error {
	return s.fire(ctx, ActionReset, "Reset pulse requested", s.device.Reset)
}

// fire only returns errors from recording the event.
func (s *ControllerService) fire(ctx context.Context, action, desc string, send func(context.Context) error) error {
	delivered := true
	if err := send(ctx); err != nil {
		delivered = false
		s.log.Infow("device_action_failed", "action", action, "err", err)
	}
	return s.eventRepo.Append(ctx, models.DeviceEvent{
		Type:        models.EventAction,
		Description: desc,
		Metadata:    map[string]any{"action": action, "delivered": delivered},
	})
}
