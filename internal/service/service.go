package service

import (
	"context"
	"time"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
	"pc_restarter/internal/statussync"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Controller fires the relay pulses.
type Controller interface {
	Power(ctx context.Context) error
	Reset(ctx context.Context) error
}

// Monitoring exposes the merged device state.
type Monitoring interface {
	GetState(ctx context.Context) (models.StatusModel, error)
}

// EventLog exposes append-only logs with filtering access.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DeviceEvent, error)
}

// Tracker keeps the live status channel to the device.
// Stop via context cancellation in main() for graceful shutdown.
type Tracker interface {
	Run(ctx context.Context) error
	Snapshot() models.StatusModel
	Subscribe() (<-chan Frame, func())
	Connection() statussync.ConnectionState
}

// Hold drives the press-and-hold buttons for destructive actions.
type Hold interface {
	Press(action string) error
	Release(action string) error
	Cancel(action string) error
}

type Ota interface {
	Status(ctx context.Context) (models.OtaStatus, error)
	Check(ctx context.Context) (models.OtaStatus, error)
	StartUpdate(ctx context.Context) (models.OtaStatus, error)
}

// Setup reads and writes the device configuration.
type Setup interface {
	GetConfig(ctx context.Context) (models.DeviceConfig, error)
	SaveConfig(ctx context.Context, upd models.ConfigUpdate) error
	ScanWifi(ctx context.Context) ([]models.WifiNetwork, error)
}

// DeviceAPI is the part of the firmware REST API the services use.
type DeviceAPI interface {
	Status(ctx context.Context) ([]byte, error)
	Config(ctx context.Context) (models.DeviceConfig, error)
	SaveConfig(ctx context.Context, upd models.ConfigUpdate) error
	Power(ctx context.Context) error
	Reset(ctx context.Context) error
	ScanWifi(ctx context.Context) (models.WifiScan, error)
	OtaStatus(ctx context.Context) (models.OtaStatus, error)
	OtaCheck(ctx context.Context) (models.OtaStatus, error)
	OtaUpdate(ctx context.Context, csrfToken string) (models.OtaStatus, error)
}

// Config carries the tunables read by cmd/main.go.
type Config struct {
	Endpoint         statussync.EndpointResolver
	Sync             statussync.Options
	OtaPollInterval  time.Duration
	ScanPollInterval time.Duration
	ScanTimeout      time.Duration
	ActionTimeout    time.Duration
	PowerHold        time.Duration
	ResetHold        time.Duration
	HoldTick         time.Duration
	Auth             AuthConfig
}

// Service aggregates all sub-services.
type Service struct {
	Controller
	Monitoring
	EventLog
	Tracker
	Hold
	Ota
	Setup
	Authorization
}

// NewService wires the repository layer and the device client into concrete services.
func NewService(repos *repository.Repository, dev DeviceAPI, cfg Config, log *logger.Logger) *Service {
	log = logger.OrNop(log)

	tracker := NewTrackerService(dev, cfg.Endpoint, cfg.Sync, repos.StateRepo, repos.EventRepo, cfg.OtaPollInterval, log)
	controller := NewControllerService(dev, repos.EventRepo, log)

	return &Service{
		Controller:    controller,
		Monitoring:    NewMonitoringService(tracker, repos.StateRepo),
		EventLog:      NewEventLogService(repos.EventRepo),
		Tracker:       tracker,
		Hold:          NewHoldService(controller, tracker.Hub(), cfg.PowerHold, cfg.ResetHold, cfg.HoldTick, cfg.ActionTimeout, log),
		Ota:           NewOtaService(dev, tracker, repos.EventRepo, log),
		Setup:         NewSetupService(dev, repos.EventRepo, cfg.ScanPollInterval, cfg.ScanTimeout, cfg.ActionTimeout, log),
		Authorization: NewAuthService(repos.Auth, cfg.Auth),
	}
}
