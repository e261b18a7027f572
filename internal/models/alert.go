package models

import "time"

type AlertKind string

const (
	AlertTemperature AlertKind = "temperature"
	AlertPH          AlertKind = "ph"
	AlertFeeding     AlertKind = "feeding"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert is raised by threshold evaluation. Only Dismissed ever changes.
type Alert struct {
	ID        string    `json:"id"`
	Kind      AlertKind `json:"kind"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	Timestamp time.Time `json:"timestamp"`
	Dismissed bool      `json:"dismissed"`
}
