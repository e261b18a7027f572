package dashboard

import (
	"fmt"
	"math"
	"slices"

	"aquafeed/internal/models"
)

// Buffer capacities.
const (
	ReadingCapacity = 24
	FeedingCapacity = 10
)

// ReadingHistory keeps the most recent readings, oldest first.
type ReadingHistory struct {
	items []models.SensorReading
}

func NewReadingHistory(seed []models.SensorReading) *ReadingHistory {
	h := &ReadingHistory{items: make([]models.SensorReading, 0, ReadingCapacity)}
	for _, r := range seed {
		h.Append(r)
	}
	return h
}

// Append adds r at the end, evicting the oldest entry on overflow.
func (h *ReadingHistory) Append(r models.SensorReading) {
	if len(h.items) < ReadingCapacity {
		h.items = append(h.items, r)
		return
	}
	copy(h.items, h.items[1:])
	h.items[len(h.items)-1] = r
}

func (h *ReadingHistory) Len() int { return len(h.items) }

// Items returns a copy, oldest first.
func (h *ReadingHistory) Items() []models.SensorReading {
	return append(make([]models.SensorReading, 0, len(h.items)), h.items...)
}

// FeedingHistory keeps the most recent feeding records, newest first.
type FeedingHistory struct {
	items []models.FeedingRecord
}

// NewFeedingHistory expects seed newest first.
func NewFeedingHistory(seed []models.FeedingRecord) *FeedingHistory {
	h := &FeedingHistory{items: make([]models.FeedingRecord, 0, FeedingCapacity)}
	for _, rec := range slices.Backward(seed) {
		h.Prepend(rec)
	}
	return h
}

// Prepend puts rec at index 0, dropping the tail on overflow.
func (h *FeedingHistory) Prepend(rec models.FeedingRecord) {
	if len(h.items) < FeedingCapacity {
		h.items = append(h.items, models.FeedingRecord{})
	}
	copy(h.items[1:], h.items[:len(h.items)-1])
	h.items[0] = rec
}

// Latest returns the newest record.
func (h *FeedingHistory) Latest() (models.FeedingRecord, bool) {
	if len(h.items) == 0 {
		return models.FeedingRecord{}, false
	}
	return h.items[0], true
}

func (h *FeedingHistory) Len() int { return len(h.items) }

// SuccessRate is the share of successful feedings as a whole percentage,
// rounded half up. An empty history rates 0.
func (h *FeedingHistory) SuccessRate() int {
	if len(h.items) == 0 {
		return 0
	}
	ok := 0
	for _, rec := range h.items {
		if rec.Outcome == models.FeedingSuccess {
			ok++
		}
	}
	return int(math.Floor(float64(ok)/float64(len(h.items))*100 + 0.5))
}

// Items returns a copy, newest first.
func (h *FeedingHistory) Items() []models.FeedingRecord {
	return append(make([]models.FeedingRecord, 0, len(h.items)), h.items...)
}

// AlertList holds raised alerts, newest first. Dismissed alerts survive
// until the next Advance.
type AlertList struct {
	items []models.Alert
}

// Advance puts fresh ahead of every alert that has not been dismissed and
// returns fresh as stored: an id already held by a kept alert gets a -2, -3
// ... suffix so ids stay unique.
func (l *AlertList) Advance(fresh []models.Alert) []models.Alert {
	kept := make([]models.Alert, 0, len(l.items))
	seen := make(map[string]struct{}, len(l.items)+len(fresh))
	for _, a := range l.items {
		if !a.Dismissed {
			kept = append(kept, a)
			seen[a.ID] = struct{}{}
		}
	}

	stored := make([]models.Alert, 0, len(fresh))
	for _, a := range fresh {
		a.ID = uniqueID(a.ID, seen)
		seen[a.ID] = struct{}{}
		stored = append(stored, a)
	}

	next := make([]models.Alert, 0, len(stored)+len(kept))
	next = append(next, stored...)
	l.items = append(next, kept...)
	return stored
}

func uniqueID(id string, seen map[string]struct{}) string {
	if _, dup := seen[id]; !dup {
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if _, dup := seen[candidate]; !dup {
			return candidate
		}
	}
}

// Dismiss flags the alert with the given id. Unknown ids are ignored.
func (l *AlertList) Dismiss(id string) (models.Alert, bool) {
	for i := range l.items {
		if l.items[i].ID == id {
			l.items[i].Dismissed = true
			return l.items[i], true
		}
	}
	return models.Alert{}, false
}

func (l *AlertList) Len() int { return len(l.items) }

// All returns a copy including dismissed alerts.
func (l *AlertList) All() []models.Alert {
	return append(make([]models.Alert, 0, len(l.items)), l.items...)
}

// ActiveLen counts the alerts that have not been dismissed.
func (l *AlertList) ActiveLen() int {
	n := 0
	for _, a := range l.items {
		if !a.Dismissed {
			n++
		}
	}
	return n
}

// Active returns the alerts that have not been dismissed.
func (l *AlertList) Active() []models.Alert {
	out := make([]models.Alert, 0, len(l.items))
	for _, a := range l.items {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	return out
}
