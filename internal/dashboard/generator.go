package dashboard

import (
	"math"
	"time"

	"aquafeed/internal/models"
)

// Synthetic reading distribution: centre ± spread/2.
const (
	phCentre          = 6.8
	phSpread          = 1.4 // 6.1 .. 7.5
	temperatureCentre = 78.0
	temperatureSpread = 12.0 // 72 .. 84 °F
)

// Generator produces synthetic sensor readings.
type Generator struct {
	rnd RandomSource
}

func NewGenerator(rnd RandomSource) *Generator {
	if rnd == nil {
		rnd = DefaultSource()
	}
	return &Generator{rnd: rnd}
}

// Generate draws a new pH/temperature pair stamped with now.
func (g *Generator) Generate(now time.Time) models.SensorReading {
	ph := phCentre + (g.rnd.Float64()-0.5)*phSpread
	temp := temperatureCentre + (g.rnd.Float64()-0.5)*temperatureSpread
	return models.SensorReading{
		Timestamp:   now,
		PH:          round1(ph),
		Temperature: round1(temp),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
