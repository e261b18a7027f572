package models

import "time"

type FeedingKind string

const (
	FeedingManual    FeedingKind = "manual"
	FeedingScheduled FeedingKind = "scheduled"
)

type FeedingOutcome string

const (
	FeedingSuccess FeedingOutcome = "success"
	FeedingFailed  FeedingOutcome = "failed"
)

// FeedingRecord is one completed feed, successful or not.
type FeedingRecord struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Kind      FeedingKind    `json:"kind"`    // manual | scheduled
	Outcome   FeedingOutcome `json:"outcome"` // success | failed
}
