package dashboard

import (
	"fmt"
	"strconv"
	"time"

	"aquafeed/internal/models"
)

// Optimal bands. Bounds themselves are in range.
const (
	MinTemperatureF = 75.0
	MaxTemperatureF = 85.0
	MinPH           = 6.5
	MaxPH           = 7.5

	// FeedingInterval is how long after the last feeding a feeding alert fires.
	FeedingInterval = 6 * time.Hour
)

const feedingDueMessage = "Scheduled feeding time - fish need to be fed"

// Evaluate derives the alerts for a reading taken at now. lastFeeding is the
// timestamp of the newest feeding record, or nil when there is none.
// Alerts come out in temperature, pH, feeding order.
func Evaluate(r models.SensorReading, now time.Time, lastFeeding *time.Time) []models.Alert {
	var out []models.Alert
	stamp := now.UnixMilli()

	switch {
	case r.Temperature < MinTemperatureF:
		out = append(out, newAlert(fmt.Sprintf("temp-low-%d", stamp), models.AlertTemperature, models.SeverityHigh, now,
			fmt.Sprintf("Temperature too low: %s°F (should be 75-85°F)", formatValue(r.Temperature))))
	case r.Temperature > MaxTemperatureF:
		out = append(out, newAlert(fmt.Sprintf("temp-high-%d", stamp), models.AlertTemperature, models.SeverityHigh, now,
			fmt.Sprintf("Temperature too high: %s°F (should be 75-85°F)", formatValue(r.Temperature))))
	}

	switch {
	case r.PH < MinPH:
		out = append(out, newAlert(fmt.Sprintf("ph-low-%d", stamp), models.AlertPH, models.SeverityMedium, now,
			fmt.Sprintf("pH too low: %s (should be 6.5-7.5)", formatValue(r.PH))))
	case r.PH > MaxPH:
		out = append(out, newAlert(fmt.Sprintf("ph-high-%d", stamp), models.AlertPH, models.SeverityMedium, now,
			fmt.Sprintf("pH too high: %s (should be 6.5-7.5)", formatValue(r.PH))))
	}

	if lastFeeding != nil && now.Sub(*lastFeeding) >= FeedingInterval {
		out = append(out, newAlert(fmt.Sprintf("feeding-time-%d", stamp), models.AlertFeeding, models.SeverityLow, now,
			feedingDueMessage))
	}

	return out
}

func newAlert(id string, kind models.AlertKind, sev models.Severity, now time.Time, msg string) models.Alert {
	return models.Alert{
		ID:        id,
		Kind:      kind,
		Message:   msg,
		Severity:  sev,
		Timestamp: now,
	}
}

// formatValue prints the shortest representation: 90, 6.2, 84.5.
func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
