package dashboard

import "aquafeed/internal/models"

// warningMargin is how close to a band edge a value must be to count as a warning.
const warningMargin = 0.3

// Classify grades value against the [lo, hi] band.
func Classify(value, lo, hi float64) models.SensorStatus {
	if value < lo || value > hi {
		return models.StatusDanger
	}
	if value < lo+warningMargin || value > hi-warningMargin {
		return models.StatusWarning
	}
	return models.StatusGood
}

// Current wraps a reading with its band status.
func Current(r models.SensorReading) models.CurrentSensors {
	return models.CurrentSensors{
		PH:                r.PH,
		Temperature:       r.Temperature,
		LastUpdated:       r.Timestamp,
		PHStatus:          Classify(r.PH, MinPH, MaxPH),
		TemperatureStatus: Classify(r.Temperature, MinTemperatureF, MaxTemperatureF),
	}
}
