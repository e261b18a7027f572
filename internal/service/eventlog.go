package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aquafeed/internal/models"
	"aquafeed/internal/repository"
)

// EventLogService reads the dashboard journal.
type EventLogService struct {
	eventRepo repository.EventRepo
}

func NewEventLogService(eventRepo repository.EventRepo) *EventLogService {
	return &EventLogService{eventRepo: eventRepo}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
	errUnknownEventType = errors.New("unknown event type")
)

var knownEventTypes = map[string]struct{}{
	models.EventReading: {},
	models.EventAlert:   {},
	models.EventFeeding: {},
	models.EventDismiss: {},
}

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeEventType trims spaces and uppercases the event type filter.
func normalizeEventType(s string) string {
	return strings.TrimSpace(strings.ToUpper(s))
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f LogFilter) (time.Time, time.Time, string, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, "", errInvalidTimeRange
	}

	eventType := normalizeEventType(f.Type)
	if eventType != "" {
		if _, ok := knownEventTypes[eventType]; !ok {
			return time.Time{}, time.Time{}, "", fmt.Errorf("%w: %q", errUnknownEventType, f.Type)
		}
	}
	return from, to, eventType, nil
}

// IsFilterError reports whether err came from a malformed filter.
func IsFilterError(err error) bool {
	return errors.Is(err, errInvalidTimeRange) || errors.Is(err, errUnknownEventType)
}

func (s *EventLogService) List(ctx context.Context, f LogFilter) ([]models.DashboardEvent, error) {
	from, to, typ, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.List(ctx, from, to, typ)
}
