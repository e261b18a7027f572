package publisher

import (
	"context"
	"fmt"

	"aquafeed/internal/config"
)

// Stream names one kind of payload mirrored to the broker.
type Stream string

const (
	StreamReadings Stream = "readings"
	StreamAlerts   Stream = "alerts"
	StreamFeedings Stream = "feedings"
)

// Publisher mirrors dashboard activity to a message broker.
type Publisher interface {
	Publish(ctx context.Context, stream Stream, key string, v any) error
	Close() error
}

// Nop drops everything.
type Nop struct{}

func (Nop) Publish(context.Context, Stream, string, any) error { return nil }
func (Nop) Close() error                                       { return nil }

// New builds the publisher selected by cfg.Driver.
func New(cfg config.PublisherConfig) (Publisher, error) {
	switch cfg.Driver {
	case config.DriverNone, "":
		return Nop{}, nil
	case config.DriverMQTT:
		return DialMQTT(cfg.MQTT, cfg.TopicPrefix)
	case config.DriverKafka:
		return NewKafka(cfg.Kafka, cfg.TopicPrefix), nil
	default:
		return nil, fmt.Errorf("unknown publisher driver %q", cfg.Driver)
	}
}
