package dashboard

import (
	"fmt"
	"time"

	"aquafeed/internal/models"
)

// Seeding parameters for a fresh dashboard.
const (
	seedFeedings           = 6
	seedFeedingSpacing     = 4 * time.Hour
	seedReadingSpacing     = time.Hour
	seedManualEvery        = 3
	seedSuccessProbability = 0.9
)

// State is the dashboard aggregate. It is not safe for concurrent use;
// the owner serializes access.
type State struct {
	current  models.SensorReading
	readings *ReadingHistory
	feedings *FeedingHistory
	alerts   AlertList
	feeding  bool
}

// NewState builds a state from explicit parts. readings are oldest first,
// feedings newest first.
func NewState(current models.SensorReading, readings []models.SensorReading, feedings []models.FeedingRecord) *State {
	return &State{
		current:  current,
		readings: NewReadingHistory(readings),
		feedings: NewFeedingHistory(feedings),
	}
}

// Seed builds the start-up state: a random current reading, 24 hourly
// readings ending at now and 6 feedings 4 hours apart, the newest at now.
func Seed(gen *Generator, rnd RandomSource, now time.Time) *State {
	current := gen.Generate(now)

	readings := make([]models.SensorReading, 0, ReadingCapacity)
	for i := ReadingCapacity - 1; i >= 0; i-- {
		readings = append(readings, gen.Generate(now.Add(-time.Duration(i)*seedReadingSpacing)))
	}

	feedings := make([]models.FeedingRecord, 0, seedFeedings)
	for i := 0; i < seedFeedings; i++ {
		kind := models.FeedingScheduled
		if i%seedManualEvery == 0 {
			kind = models.FeedingManual
		}
		feedings = append(feedings, models.FeedingRecord{
			ID:        fmt.Sprintf("feed-%d", i),
			Timestamp: now.Add(-time.Duration(i) * seedFeedingSpacing),
			Kind:      kind,
			Outcome:   DrawOutcome(rnd, seedSuccessProbability),
		})
	}

	return NewState(current, readings, feedings)
}

// DrawOutcome returns success with probability p.
func DrawOutcome(rnd RandomSource, p float64) models.FeedingOutcome {
	if rnd.Float64() < p {
		return models.FeedingSuccess
	}
	return models.FeedingFailed
}

// LastFeeding returns the newest feeding timestamp, or nil.
func (s *State) LastFeeding() *time.Time {
	rec, ok := s.feedings.Latest()
	if !ok {
		return nil
	}
	ts := rec.Timestamp
	return &ts
}

// LatestFeeding returns the newest feeding record.
func (s *State) LatestFeeding() (models.FeedingRecord, bool) {
	return s.feedings.Latest()
}

// ActiveAlerts counts alerts that have not been dismissed.
func (s *State) ActiveAlerts() int {
	return s.alerts.ActiveLen()
}

// ApplyReading runs one tick against r: evaluates alerts, makes r current,
// appends it to the history and advances the alert list. Returns the new
// alerts as stored.
func (s *State) ApplyReading(r models.SensorReading) []models.Alert {
	fresh := Evaluate(r, r.Timestamp, s.LastFeeding())
	s.current = r
	s.readings.Append(r)
	return s.alerts.Advance(fresh)
}

// RecordFeeding prepends a completed feeding.
func (s *State) RecordFeeding(rec models.FeedingRecord) {
	s.feedings.Prepend(rec)
}

// Dismiss flags an alert. Unknown ids are a no-op.
func (s *State) Dismiss(id string) (models.Alert, bool) {
	return s.alerts.Dismiss(id)
}

// BeginFeeding sets the in-progress flag. It reports false when a feed is
// already running.
func (s *State) BeginFeeding() bool {
	if s.feeding {
		return false
	}
	s.feeding = true
	return true
}

func (s *State) EndFeeding() { s.feeding = false }

func (s *State) Feeding() bool { return s.feeding }

func (s *State) Current() models.SensorReading { return s.current }

// Snapshot deep-copies the state for readers.
func (s *State) Snapshot() models.DashboardSnapshot {
	return models.DashboardSnapshot{
		Current:        Current(s.current),
		ReadingHistory: s.readings.Items(),
		FeedingHistory: s.feedings.Items(),
		SuccessRate:    s.feedings.SuccessRate(),
		Alerts:         s.alerts.All(),
		ActiveAlerts:   s.alerts.Active(),
		Feeding:        s.feeding,
	}
}
