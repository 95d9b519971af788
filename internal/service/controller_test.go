package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"pc_restarter/internal/models"
)

func TestControllerService_FireAndForget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		actionErr     error
		call          func(*ControllerService) error
		wantAction    string
		wantDelivered bool
	}{
		{
			name:          "power delivered",
			call:          func(s *ControllerService) error { return s.Power(context.Background()) },
			wantAction:    ActionPower,
			wantDelivered: true,
		},
		{
			name:          "reset failure is swallowed",
			actionErr:     errors.New("connection reset"),
			call:          func(s *ControllerService) error { return s.Reset(context.Background()) },
			wantAction:    ActionReset,
			wantDelivered: false,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			dev := &deviceStub{actionErr: tc.actionErr}
			events := &memEventRepo{}
			svc := NewControllerService(dev, events, nil)

			if err := tc.call(svc); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			ev := events.ofType(models.EventAction)
			if len(ev) != 1 {
				t.Fatalf("expected 1 ACTION event, got %d", len(ev))
			}
			meta := ev[0].Metadata.(map[string]any)
			if meta["action"] != tc.wantAction || meta["delivered"] != tc.wantDelivered {
				t.Fatalf("metadata = %v", meta)
			}
		})
	}
}

func TestControllerService_EventAppendErrorReturned(t *testing.T) {
	svc := NewControllerService(&deviceStub{}, &memEventRepo{err: errors.New("db down")}, nil)
	if err := svc.Power(context.Background()); err == nil {
		t.Fatalf("expected event append error")
	}
}

func TestHoldService_ConfirmFiresActionOnce(t *testing.T) {
	dev := &deviceStub{fired: make(chan string, 4)}
	hub := NewHub(64)
	frames, unsubscribe := hub.Subscribe()
	defer unsubscribe()

	ctl := NewControllerService(dev, &memEventRepo{}, nil)
	svc := NewHoldService(ctl, hub, 40*time.Millisecond, time.Hour, 5*time.Millisecond, time.Second, nil)
	defer svc.Close()

	if err := svc.Press(ActionPower); err != nil {
		t.Fatalf("Press: %v", err)
	}

	select {
	case a := <-dev.fired:
		if a != ActionPower {
			t.Fatalf("fired %q", a)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("hold never fired")
	}

	_ = svc.Release(ActionPower)
	_ = svc.Release(ActionPower)
	time.Sleep(30 * time.Millisecond)
	if len(dev.fired) != 0 {
		t.Fatalf("action fired more than once")
	}

	sawFull := false
	for len(frames) > 0 {
		f := <-frames
		if hp, ok := f.Data.(HoldProgress); ok && f.Type == FrameHold && hp.Action == ActionPower && hp.Progress == 1 {
			sawFull = true
		}
	}
	if !sawFull {
		t.Fatalf("no full-progress hold frame broadcast")
	}
}

func TestHoldService_EarlyReleaseDoesNotFire(t *testing.T) {
	dev := &deviceStub{fired: make(chan string, 4)}
	ctl := NewControllerService(dev, &memEventRepo{}, nil)
	svc := NewHoldService(ctl, nil, time.Hour, time.Hour, 0, 0, nil)
	defer svc.Close()

	_ = svc.Press(ActionReset)
	_ = svc.Release(ActionReset)
	_ = svc.Press(ActionReset)
	_ = svc.Cancel(ActionReset)

	time.Sleep(20 * time.Millisecond)
	if len(dev.fired) != 0 {
		t.Fatalf("reset fired without a completed hold")
	}
}

func TestHoldService_UnknownAction(t *testing.T) {
	svc := NewHoldService(NewControllerService(&deviceStub{}, &memEventRepo{}, nil), nil, 0, 0, 0, 0, nil)
	if err := svc.Press("shutdown"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
}
