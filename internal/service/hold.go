package service

import (
	"context"
	"errors"
	"time"

	"pc_restarter/internal/hold"
	"pc_restarter/internal/logger"
)

const (
	defaultPowerHold     = 3 * time.Second
	defaultResetHold     = 3 * time.Second
	defaultActionTimeout = 5 * time.Second
)

var ErrUnknownAction = errors.New("unknown hold action")

// HoldService keeps one hold gesture per destructive action. Progress is
// broadcast to browsers; a completed hold fires the action.
type HoldService struct {
	gestures map[string]*hold.Gesture
	ctl      Controller
	hub      *Hub
	timeout  time.Duration
	log      *logger.Logger
}

func NewHoldService(ctl Controller, hub *Hub, powerHold, resetHold, tick, timeout time.Duration, log *logger.Logger) *HoldService {
	if powerHold <= 0 {
		powerHold = defaultPowerHold
	}
	if resetHold <= 0 {
		resetHold = defaultResetHold
	}
	if timeout <= 0 {
		timeout = defaultActionTimeout
	}
	s := &HoldService{
		ctl:     ctl,
		hub:     hub,
		timeout: timeout,
		log:     logger.OrNop(log),
	}
	var opts []hold.Option
	if tick > 0 {
		opts = append(opts, hold.WithTick(tick))
	}
	s.gestures = map[string]*hold.Gesture{
		ActionPower: hold.Bind(powerHold, s.progress(ActionPower), s.confirm(ActionPower, ctl.Power), opts...),
		ActionReset: hold.Bind(resetHold, s.progress(ActionReset), s.confirm(ActionReset, ctl.Reset), opts...),
	}
	return s
}

func (s *HoldService) Press(action string) error {
	g, err := s.gesture(action)
	if err != nil {
		return err
	}
	g.Press()
	return nil
}

func (s *HoldService) Release(action string) error {
	g, err := s.gesture(action)
	if err != nil {
		return err
	}
	g.Release()
	return nil
}

func (s *HoldService) Cancel(action string) error {
	g, err := s.gesture(action)
	if err != nil {
		return err
	}
	g.Cancel()
	return nil
}

// Close stops every running hold without firing.
func (s *HoldService) Close() {
	for _, g := range s.gestures {
		g.Unbind()
	}
}

func (s *HoldService) gesture(action string) (*hold.Gesture, error) {
	g, ok := s.gestures[action]
	if !ok {
		return nil, ErrUnknownAction
	}
	return g, nil
}

func (s *HoldService) progress(action string) func(float64) {
	return func(f float64) {
		if s.hub != nil {
			s.hub.Publish(Frame{Type: FrameHold, Data: HoldProgress{Action: action, Progress: f}})
		}
	}
}

// confirm runs the action off the gesture's lock, detached from any request.
func (s *HoldService) confirm(action string, fire func(context.Context) error) func() {
	return func() {
		s.log.Infow("hold_confirmed", "action", action)
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()
			if err := fire(ctx); err != nil {
				s.log.Errorw("hold_action_failed", "action", action, "err", err)
			}
		}()
	}
}
