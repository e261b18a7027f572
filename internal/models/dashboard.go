package models

// DashboardSnapshot is a read-only copy of the dashboard state.
type DashboardSnapshot struct {
	Current        CurrentSensors  `json:"current"`
	ReadingHistory []SensorReading `json:"reading_history"` // oldest first
	FeedingHistory []FeedingRecord `json:"feeding_history"` // newest first
	SuccessRate    int             `json:"success_rate"`    // percent of FeedingHistory
	Alerts         []Alert         `json:"alerts"`
	ActiveAlerts   []Alert         `json:"active_alerts"`
	Feeding        bool            `json:"feeding"`
}
