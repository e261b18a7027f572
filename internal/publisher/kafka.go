package publisher

import (
	"context"
	"encoding/json"
	"fmt"

	"aquafeed/internal/config"

	"github.com/segmentio/kafka-go"
)

// kafkaWriter is the part of *kafka.Writer the publisher uses.
type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes JSON messages to <prefix>.<stream>.
type KafkaPublisher struct {
	writer kafkaWriter
	prefix string
}

// NewKafka builds a writer for the given brokers. Topics are set per message.
func NewKafka(cfg config.KafkaConfig, prefix string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  false,
	}
	return newKafkaPublisher(w, prefix)
}

func newKafkaPublisher(w kafkaWriter, prefix string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, prefix: prefix}
}

func (p *KafkaPublisher) topic(stream Stream) string {
	return p.prefix + "." + string(stream)
}

func (p *KafkaPublisher) Publish(ctx context.Context, stream Stream, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", stream, err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic(stream),
		Key:   []byte(key),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
