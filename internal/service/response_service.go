package service

import "time"

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "DEVICE_LOG", "ACTION", "OTA", "CONFIG"
	// Limit keeps only the newest entries; zero means all, capped at MaxLogLimit.
	Limit int
}

// Frame types pushed to browser subscribers.
const (
	FrameState = "state"
	FrameLog   = "log"
	FrameHold  = "hold"
)

// Frame is one message fanned out to browser subscribers.
type Frame struct {
	Type string
	Data any
}

// LogLine is the payload of a log frame.
type LogLine struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// HoldProgress is the payload of a hold frame.
type HoldProgress struct {
	Action   string  `json:"action"`
	Progress float64 `json:"progress"`
}
