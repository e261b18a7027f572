package service

import (
	"context"
	"time"

	"aquafeed/internal/config"
	"aquafeed/internal/models"
	"aquafeed/internal/repository"
)

type Authorization interface {
	SignUp(ctx context.Context, username, password string) (int, error)
	GenerateToken(ctx context.Context, username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Monitoring exposes the read-only dashboard view. Subscribe signals every
// state change; call cancel when done listening.
type Monitoring interface {
	GetState(ctx context.Context) (models.DashboardSnapshot, error)
	Subscribe() (changes <-chan struct{}, cancel func())
}

// Feeder triggers the simulated feeder. Only one feed may be in flight;
// a refused request returns ok=false and a nil channel.
type Feeder interface {
	Feed(ctx context.Context) (done <-chan models.FeedingRecord, ok bool)
	Feeding() bool
}

// Alerts lists and dismisses alerts.
type Alerts interface {
	ListAlerts(ctx context.Context, activeOnly bool) []models.Alert
	Dismiss(ctx context.Context, id string) (models.Alert, bool)
}

// EventLog exposes the append-only dashboard journal with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]models.DashboardEvent, error)
}

// Simulator runs the polling loop until ctx is canceled.
type Simulator interface {
	Run(ctx context.Context, tick time.Duration)
}

type Service struct {
	Monitoring
	Feeder
	Alerts
	EventLog
	Simulator
	Authorization
}

// NewService wires the repositories and the monitor into the service set.
func NewService(repos *repository.Repository, monitor *MonitorService, auth config.AuthConfig) *Service {
	return &Service{
		Monitoring:    monitor,
		Feeder:        monitor,
		Alerts:        monitor,
		EventLog:      NewEventLogService(repos.EventRepo),
		Simulator:     monitor,
		Authorization: NewAuthService(repos.Auth, auth),
	}
}
