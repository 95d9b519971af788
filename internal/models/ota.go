package models

// OtaStatus mirrors the firmware's OTA state document.
type OtaStatus struct {
	CurrentVersion   string `json:"currentVersion"`
	RemoteVersion    string `json:"remoteVersion,omitempty"`
	Notes            string `json:"notes,omitempty"`
	Error            string `json:"error,omitempty"`
	ProgressPct      int    `json:"progress"`
	Checking         bool   `json:"checking"`
	UpdateInProgress bool   `json:"updateInProgress"`
	Available        bool   `json:"available"`
	LastCheckOK      bool   `json:"lastCheckOk"`
	RebootRequired   bool   `json:"rebootRequired"`
	LastCheckMs      int64  `json:"lastCheckMs,omitempty"`
}

// Normalize clamps progress to [0,100] and never offers an update while one is running.
func (o OtaStatus) Normalize() OtaStatus {
	switch {
	case o.ProgressPct < 0:
		o.ProgressPct = 0
	case o.ProgressPct > 100:
		o.ProgressPct = 100
	}
	if o.UpdateInProgress {
		o.Available = false
	}
	return o
}

// CanOfferUpdate reports whether the UI may offer to start an update.
func (o OtaStatus) CanOfferUpdate() bool {
	return o.Available && !o.UpdateInProgress && !o.Checking
}
