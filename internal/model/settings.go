package model

// Settings is the per-installation settings singleton (one row).
type Settings struct {
	ScreenLock   bool `json:"screen_lock"`
	ReadReceipts bool `json:"read_receipts"`
	LinkPreview  bool `json:"link_preview"`
	SafetyAlerts bool `json:"safety_alerts"`
}
