package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"pc_restarter/internal/logger"
	"pc_restarter/internal/models"
	"pc_restarter/internal/repository"
	"pc_restarter/internal/statussync"
)

const (
	defaultScanPollInterval = 1500 * time.Millisecond
	defaultScanTimeout      = 20 * time.Second
)

var ErrEmptySSID = errors.New("wifiSsid is required")

// SetupService edits the device configuration.
type SetupService struct {
	device       DeviceAPI
	eventRepo    repository.EventRepo
	scanInterval time.Duration
	scanTimeout  time.Duration
	saveTimeout  time.Duration
	log          *logger.Logger
}

func NewSetupService(dev DeviceAPI, eventRepo repository.EventRepo, scanInterval, scanTimeout, saveTimeout time.Duration, log *logger.Logger) *SetupService {
	if scanInterval <= 0 {
		scanInterval = defaultScanPollInterval
	}
	if scanTimeout <= 0 {
		scanTimeout = defaultScanTimeout
	}
	if saveTimeout <= 0 {
		saveTimeout = defaultActionTimeout
	}
	return &SetupService{
		device:       dev,
		eventRepo:    eventRepo,
		scanInterval: scanInterval,
		scanTimeout:  scanTimeout,
		saveTimeout:  saveTimeout,
		log:          logger.OrNop(log),
	}
}

func (s *SetupService) GetConfig(ctx context.Context) (models.DeviceConfig, error) {
	cfg, err := s.device.Config(ctx)
	if err != nil {
		return models.DeviceConfig{}, fmt.Errorf("device config: %w", err)
	}
	return cfg, nil
}

// SaveConfig validates and posts the configuration without waiting for the
// device: it usually reboots before it answers.
func (s *SetupService) SaveConfig(ctx context.Context, upd models.ConfigUpdate) error {
	upd.WifiSSID = strings.TrimSpace(upd.WifiSSID)
	if upd.WifiSSID == "" {
		return ErrEmptySSID
	}
	upd.MQTTHost = strings.TrimSpace(upd.MQTTHost)
	if upd.MQTTPort <= 0 {
		upd.MQTTPort = models.DefaultMQTTPort
	}

	if err := s.eventRepo.Append(ctx, models.DeviceEvent{
		Type:        models.EventConfig,
		Description: "Configuration sent",
		Metadata:    map[string]any{"wifi_ssid": upd.WifiSSID, "mqtt_host": upd.MQTTHost},
	}); err != nil {
		s.log.Errorw("config_event_append_failed", "err", err)
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.saveTimeout)
		defer cancel()
		if err := s.device.SaveConfig(ctx, upd); err != nil {
			s.log.Infow("config_save_unconfirmed", "err", err)
		}
	}()
	return nil
}

// ScanWifi polls the device until its scan completes and returns the
// networks strongest first, one entry per SSID.
func (s *SetupService) ScanWifi(ctx context.Context) ([]models.WifiNetwork, error) {
	ctx, cancel := context.WithTimeout(ctx, s.scanTimeout)
	defer cancel()

	scan, err := s.device.ScanWifi(ctx)
	if err != nil {
		return nil, fmt.Errorf("wifi scan: %w", err)
	}
	if scan.Scanning {
		scan, err = s.awaitScan(ctx)
		if err != nil {
			return nil, err
		}
	}
	return normalizeNetworks(scan.Networks), nil
}

func (s *SetupService) awaitScan(ctx context.Context) (models.WifiScan, error) {
	result := make(chan models.WifiScan, 1)
	w := statussync.NewPollWatcher(s.scanInterval, s.device.ScanWifi,
		func(sc models.WifiScan) bool { return !sc.Scanning },
		func(sc models.WifiScan) {
			if !sc.Scanning {
				result <- sc
			}
		}, s.log)
	if err := w.Start(ctx); err != nil {
		return models.WifiScan{}, err
	}
	defer w.Stop()

	select {
	case sc := <-result:
		return sc, nil
	case <-ctx.Done():
		return models.WifiScan{}, fmt.Errorf("wifi scan: %w", ctx.Err())
	}
}

// normalizeNetworks drops hidden networks, keeps the strongest entry per SSID
// and sorts by signal.
func normalizeNetworks(in []models.WifiNetwork) []models.WifiNetwork {
	best := make(map[string]models.WifiNetwork, len(in))
	for _, n := range in {
		if strings.TrimSpace(n.SSID) == "" {
			continue
		}
		if cur, ok := best[n.SSID]; !ok || n.RSSI > cur.RSSI {
			best[n.SSID] = n
		}
	}

	out := make([]models.WifiNetwork, 0, len(best))
	for _, n := range best {
		n.SignalLevel = signalLevel(n.RSSI)
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RSSI != out[j].RSSI {
			return out[i].RSSI > out[j].RSSI
		}
		return out[i].SSID < out[j].SSID
	})
	return out
}

// signalLevel maps RSSI in dBm to 1..4 bars.
func signalLevel(rssi int) int {
	switch {
	case rssi > -50:
		return 4
	case rssi > -60:
		return 3
	case rssi > -70:
		return 2
	default:
		return 1
	}
}
