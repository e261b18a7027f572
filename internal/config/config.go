package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults mirror configs/config.yml.
const (
	defaultPort                   = "8080"
	defaultLogLevel               = "info"
	defaultDBPath                 = "app.db"
	defaultTokenTTL               = time.Hour
	defaultTickInterval           = 10 * time.Second
	defaultFeedLatency            = 2 * time.Second
	defaultFeedSuccessProbability = 0.95
	defaultPublisherDriver        = "none"
	defaultTopicPrefix            = "aquafeed"
	defaultMQTTClientID           = "aquafeed-monitor"

	envPrefix = "AQUAFEED"
)

// Publisher drivers.
const (
	DriverNone  = "none"
	DriverMQTT  = "mqtt"
	DriverKafka = "kafka"
)

var (
	errTickInterval = errors.New("simulation.tick_interval must be > 0")
	errFeedLatency  = errors.New("simulation.feed_latency must be >= 0")
	errProbability  = errors.New("simulation.feed_success_probability must be within [0, 1]")
	errSigningKey   = errors.New("auth.signing_key must not be empty")
	errTokenTTL     = errors.New("auth.token_ttl must be > 0")
)

type Config struct {
	Port       string
	LogLevel   string
	DB         DBConfig
	Auth       AuthConfig
	Simulation SimulationConfig
	Publisher  PublisherConfig
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// SimulationConfig holds the timing and odds of the simulated aquarium.
type SimulationConfig struct {
	TickInterval           time.Duration
	FeedLatency            time.Duration
	FeedSuccessProbability float64
}

type PublisherConfig struct {
	Driver      string // none | mqtt | kafka
	TopicPrefix string
	MQTT        MQTTConfig
	Kafka       KafkaConfig
}

type MQTTConfig struct {
	Broker   string
	ClientID string
}

type KafkaConfig struct {
	Brokers []string
}

// Load reads the config file at path, or configs/config.yml when path is
// empty. A missing default file is not an error; defaults apply.
// AQUAFEED_* environment variables override file values.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := Config{
		Port:     v.GetString("port"),
		LogLevel: NormalizeLevel(v.GetString("log_level")),
		DB:       DBConfig{Path: v.GetString("db.path")},
		Auth: AuthConfig{
			SigningKey: v.GetString("auth.signing_key"),
			TokenTTL:   v.GetDuration("auth.token_ttl"),
		},
		Simulation: SimulationConfig{
			TickInterval:           v.GetDuration("simulation.tick_interval"),
			FeedLatency:            v.GetDuration("simulation.feed_latency"),
			FeedSuccessProbability: v.GetFloat64("simulation.feed_success_probability"),
		},
		Publisher: PublisherConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("publisher.driver"))),
			TopicPrefix: v.GetString("publisher.topic_prefix"),
			MQTT: MQTTConfig{
				Broker:   v.GetString("publisher.mqtt.broker"),
				ClientID: v.GetString("publisher.mqtt.client_id"),
			},
			Kafka: KafkaConfig{Brokers: v.GetStringSlice("publisher.kafka.brokers")},
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", defaultPort)
	v.SetDefault("log_level", defaultLogLevel)
	v.SetDefault("db.path", defaultDBPath)
	v.SetDefault("auth.signing_key", "change-me")
	v.SetDefault("auth.token_ttl", defaultTokenTTL)
	v.SetDefault("simulation.tick_interval", defaultTickInterval)
	v.SetDefault("simulation.feed_latency", defaultFeedLatency)
	v.SetDefault("simulation.feed_success_probability", defaultFeedSuccessProbability)
	v.SetDefault("publisher.driver", defaultPublisherDriver)
	v.SetDefault("publisher.topic_prefix", defaultTopicPrefix)
	v.SetDefault("publisher.mqtt.client_id", defaultMQTTClientID)
}

// Validate checks the values the simulation and auth layers cannot work without.
func (c Config) Validate() error {
	if c.Simulation.TickInterval <= 0 {
		return errTickInterval
	}
	if c.Simulation.FeedLatency < 0 {
		return errFeedLatency
	}
	if p := c.Simulation.FeedSuccessProbability; p < 0 || p > 1 {
		return errProbability
	}
	if strings.TrimSpace(c.Auth.SigningKey) == "" {
		return errSigningKey
	}
	if c.Auth.TokenTTL <= 0 {
		return errTokenTTL
	}
	switch c.Publisher.Driver {
	case DriverNone, "":
	case DriverMQTT:
		if c.Publisher.MQTT.Broker == "" {
			return errors.New("publisher.mqtt.broker is required for the mqtt driver")
		}
	case DriverKafka:
		if len(c.Publisher.Kafka.Brokers) == 0 {
			return errors.New("publisher.kafka.brokers is required for the kafka driver")
		}
	default:
		return fmt.Errorf("unknown publisher.driver %q: must be none, mqtt or kafka", c.Publisher.Driver)
	}
	return nil
}

// NormalizeLevel lowercases and trims a log level so " DEBUG " compares
// equal to "debug".
func NormalizeLevel(level string) string {
	return strings.ToLower(strings.TrimSpace(level))
}
