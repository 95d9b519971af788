package models

import (
	"strings"
	"time"
)

// Connectivity labels how the device reaches the network.
type Connectivity string

const (
	ConnectivityAPMode       Connectivity = "AP_MODE"
	ConnectivityConnected    Connectivity = "CONNECTED"
	ConnectivityDisconnected Connectivity = "DISCONNECTED"
	ConnectivityUnknown      Connectivity = "UNKNOWN"
)

// StatusModel is the merged view of device state.
// Every field is optional: nil means "never reported".
// Pointers are replaced on merge, never written through, so a shallow copy is a safe snapshot.
type StatusModel struct {
	Hostname         *string      `json:"hostname"`
	DeviceID         *string      `json:"deviceId"`
	PCState          *string      `json:"pcState"`
	Connectivity     Connectivity `json:"connectivity"`
	APMode           *bool        `json:"apMode,omitempty"`
	WifiConnected    *bool        `json:"wifiConnected,omitempty"`
	HasConfig        *bool        `json:"hasConfig,omitempty"`
	PowerRelayActive *bool        `json:"powerRelayActive,omitempty"`
	ResetRelayActive *bool        `json:"resetRelayActive,omitempty"`
	SSID             *string      `json:"ssid"`
	IP               *string      `json:"ip"`
	RSSIDbm          *int         `json:"rssiDbm"`
	TemperatureC     *float64     `json:"temperatureC"`
	HddLastActiveSec *int64       `json:"hddLastActiveSec"`
	CPULoadPct       *float64     `json:"cpuLoadPct"`
	FreeHeapBytes    *int64       `json:"freeHeapBytes"`
	TotalHeapBytes   *int64       `json:"totalHeapBytes"`
	Ota              *OtaStatus   `json:"ota"`
	CSRFToken        *string      `json:"-"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// NewStatusModel returns an empty model with unknown connectivity.
func NewStatusModel() StatusModel {
	return StatusModel{Connectivity: ConnectivityUnknown}
}

// StatusPatch is one inbound frame as sent by the firmware.
// Keys match the StatusModel json names; the alias tag lists the short
// key older firmware builds send, used only when the main key is absent.
// Absent and null keys decode to nil and leave the model untouched.
type StatusPatch struct {
	Type    *string `json:"type"`
	Message *string `json:"message"`

	Hostname         *string    `json:"hostname"`
	DeviceID         *string    `json:"deviceId"`
	PCState          *string    `json:"pcState"`
	Connectivity     *string    `json:"connectivity"`
	APMode           *bool      `json:"apMode"`
	WifiConnected    *bool      `json:"wifiConnected"`
	HasConfig        *bool      `json:"hasConfig"`
	PowerRelayActive *bool      `json:"powerRelayActive"`
	ResetRelayActive *bool      `json:"resetRelayActive"`
	SSID             *string    `json:"ssid"`
	IP               *string    `json:"ip"`
	RSSIDbm          *int       `json:"rssiDbm" alias:"rssi"`
	TemperatureC     *float64   `json:"temperatureC" alias:"temperature"`
	HddLastActiveSec *int64     `json:"hddLastActiveSec" alias:"hddLastActive"`
	CPULoadPct       *float64   `json:"cpuLoadPct" alias:"cpuLoad"`
	FreeHeapBytes    *int64     `json:"freeHeapBytes" alias:"freeHeap"`
	TotalHeapBytes   *int64     `json:"totalHeapBytes" alias:"totalHeap"`
	Ota              *OtaStatus `json:"ota"`
	CSRFToken        *string    `json:"csrfToken"`
}

// MessageTypeLog marks frames that carry a device log line instead of status.
const MessageTypeLog = "log"

// IsLog reports whether the frame is a log entry.
func (p StatusPatch) IsLog() bool {
	return p.Type != nil && *p.Type == MessageTypeLog
}

// Apply merges the present fields of p into m and reports whether any field was set.
func (m *StatusModel) Apply(p StatusPatch) bool {
	changed := false
	setStr := func(dst **string, v *string) {
		if v != nil {
			*dst = v
			changed = true
		}
	}
	setBool := func(dst **bool, v *bool) {
		if v != nil {
			*dst = v
			changed = true
		}
	}
	setInt64 := func(dst **int64, v *int64) {
		if v != nil {
			*dst = v
			changed = true
		}
	}
	setFloat := func(dst **float64, v *float64) {
		if v != nil {
			*dst = v
			changed = true
		}
	}

	setStr(&m.Hostname, p.Hostname)
	setStr(&m.DeviceID, p.DeviceID)
	setStr(&m.PCState, p.PCState)
	setStr(&m.SSID, p.SSID)
	setStr(&m.IP, p.IP)
	setStr(&m.CSRFToken, p.CSRFToken)
	setBool(&m.APMode, p.APMode)
	setBool(&m.WifiConnected, p.WifiConnected)
	setBool(&m.HasConfig, p.HasConfig)
	setBool(&m.PowerRelayActive, p.PowerRelayActive)
	setBool(&m.ResetRelayActive, p.ResetRelayActive)
	setFloat(&m.TemperatureC, p.TemperatureC)
	setFloat(&m.CPULoadPct, p.CPULoadPct)
	setInt64(&m.HddLastActiveSec, p.HddLastActiveSec)
	setInt64(&m.FreeHeapBytes, p.FreeHeapBytes)
	setInt64(&m.TotalHeapBytes, p.TotalHeapBytes)

	if p.RSSIDbm != nil {
		m.RSSIDbm = p.RSSIDbm
		changed = true
	}
	if p.Ota != nil {
		ota := p.Ota.Normalize()
		m.Ota = &ota
		changed = true
	}

	switch {
	case p.Connectivity != nil:
		if c, ok := ParseConnectivity(*p.Connectivity); ok {
			m.Connectivity = c
			changed = true
		}
	case p.APMode != nil || p.WifiConnected != nil:
		m.Connectivity = deriveConnectivity(m.APMode, m.WifiConnected)
	}
	if m.Connectivity == "" {
		m.Connectivity = ConnectivityUnknown
	}
	return changed
}

// ParseConnectivity accepts the enum labels case-insensitively.
func ParseConnectivity(s string) (Connectivity, bool) {
	switch Connectivity(strings.ToUpper(strings.TrimSpace(s))) {
	case ConnectivityAPMode:
		return ConnectivityAPMode, true
	case ConnectivityConnected:
		return ConnectivityConnected, true
	case ConnectivityDisconnected:
		return ConnectivityDisconnected, true
	case ConnectivityUnknown:
		return ConnectivityUnknown, true
	}
	return "", false
}

// deriveConnectivity mirrors the firmware's labels: AP mode wins over station state.
func deriveConnectivity(apMode, wifiConnected *bool) Connectivity {
	switch {
	case apMode != nil && *apMode:
		return ConnectivityAPMode
	case wifiConnected == nil:
		return ConnectivityUnknown
	case *wifiConnected:
		return ConnectivityConnected
	default:
		return ConnectivityDisconnected
	}
}

