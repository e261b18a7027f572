package models

import "time"

// SensorReading is a single pH/temperature sample.
type SensorReading struct {
	Timestamp   time.Time `json:"timestamp"`
	PH          float64   `json:"ph"`
	Temperature float64   `json:"temperature"` // °F
}

// SensorStatus grades a value against its optimal band.
type SensorStatus string

const (
	StatusGood    SensorStatus = "good"
	StatusWarning SensorStatus = "warning"
	StatusDanger  SensorStatus = "danger"
)

// CurrentSensors is the latest reading as shown on the dashboard.
type CurrentSensors struct {
	PH                float64      `json:"ph"`
	Temperature       float64      `json:"temperature"`
	LastUpdated       time.Time    `json:"last_updated"`
	PHStatus          SensorStatus `json:"ph_status"`
	TemperatureStatus SensorStatus `json:"temperature_status"`
}
