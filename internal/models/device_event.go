package models

import "time"

// Event types recorded by the console.
const (
	EventDeviceLog = "DEVICE_LOG"
	EventAction    = "ACTION"
	EventOta       = "OTA"
	EventConfig    = "CONFIG"
)

// DeviceEvent is a single log entry.
type DeviceEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // DEVICE_LOG | ACTION | OTA | CONFIG
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
