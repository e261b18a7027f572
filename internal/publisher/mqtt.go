package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aquafeed/internal/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	mqttConnectTimeout = 5 * time.Second
	mqttQuiesceMillis  = 250
	mqttQoS            = 0
)

var errMQTTConnectTimeout = errors.New("mqtt connect timed out")

// mqttClient is the part of mqtt.Client the publisher uses.
type mqttClient interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// MQTTPublisher publishes JSON payloads to <prefix>/<stream>.
type MQTTPublisher struct {
	client mqttClient
	prefix string
}

// DialMQTT connects to the broker and returns a ready publisher.
func DialMQTT(cfg config.MQTTConfig, prefix string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(mqttConnectTimeout)
	c := mqtt.NewClient(opts)

	token := c.Connect()
	if !token.WaitTimeout(mqttConnectTimeout) {
		return nil, errMQTTConnectTimeout
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.Broker, err)
	}
	return newMQTTPublisher(c, prefix), nil
}

func newMQTTPublisher(c mqttClient, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: c, prefix: prefix}
}

func (p *MQTTPublisher) topic(stream Stream) string {
	return p.prefix + "/" + string(stream)
}

// Publish sends v as JSON. The key is carried inside the payload only.
func (p *MQTTPublisher) Publish(ctx context.Context, stream Stream, _ string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", stream, err)
	}

	token := p.client.Publish(p.topic(stream), mqttQoS, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *MQTTPublisher) Close() error {
	p.client.Disconnect(mqttQuiesceMillis)
	return nil
}
