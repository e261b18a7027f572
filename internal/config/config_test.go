package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
log_level: debug
db:
  path: /tmp/aqua.db
auth:
  signing_key: secret
  token_ttl: 30m
simulation:
  tick_interval: 5s
  feed_latency: 500ms
  feed_success_probability: 0.5
publisher:
  driver: MQTT
  topic_prefix: tank1
  mqtt:
    broker: tcp://broker:1883
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9090" || cfg.LogLevel != "debug" || cfg.DB.Path != "/tmp/aqua.db" {
		t.Fatalf("unexpected top-level values: %+v", cfg)
	}
	if cfg.Auth.SigningKey != "secret" || cfg.Auth.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected auth: %+v", cfg.Auth)
	}
	sim := cfg.Simulation
	if sim.TickInterval != 5*time.Second || sim.FeedLatency != 500*time.Millisecond || sim.FeedSuccessProbability != 0.5 {
		t.Fatalf("unexpected simulation: %+v", sim)
	}
	if cfg.Publisher.Driver != DriverMQTT || cfg.Publisher.TopicPrefix != "tank1" || cfg.Publisher.MQTT.Broker != "tcp://broker:1883" {
		t.Fatalf("unexpected publisher: %+v", cfg.Publisher)
	}
	if cfg.Publisher.MQTT.ClientID != defaultMQTTClientID {
		t.Fatalf("client id default not applied: %q", cfg.Publisher.MQTT.ClientID)
	}
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	// no configs/ directory in the package dir
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickInterval != 10*time.Second {
		t.Errorf("tick interval: got %v", cfg.Simulation.TickInterval)
	}
	if cfg.Simulation.FeedLatency != 2*time.Second {
		t.Errorf("feed latency: got %v", cfg.Simulation.FeedLatency)
	}
	if cfg.Simulation.FeedSuccessProbability != 0.95 {
		t.Errorf("success probability: got %v", cfg.Simulation.FeedSuccessProbability)
	}
	if cfg.Port != defaultPort || cfg.Publisher.Driver != DriverNone {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "simulation:\n  tick_interval: 5s\n")
	t.Setenv("AQUAFEED_SIMULATION_TICK_INTERVAL", "1s")
	t.Setenv("AQUAFEED_PORT", "7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Simulation.TickInterval != time.Second {
		t.Fatalf("env override ignored: %v", cfg.Simulation.TickInterval)
	}
	if cfg.Port != "7000" {
		t.Fatalf("port override ignored: %q", cfg.Port)
	}
}

func TestLoad_NormalizesLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: info\n")
	t.Setenv("AQUAFEED_LOG_LEVEL", " DEBUG ")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log level not normalized: %q", cfg.LogLevel)
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		Auth:       AuthConfig{SigningKey: "k", TokenTTL: time.Hour},
		Simulation: SimulationConfig{TickInterval: time.Second, FeedLatency: time.Second, FeedSuccessProbability: 0.95},
		Publisher:  PublisherConfig{Driver: DriverNone},
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config should be valid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero tick", func(c *Config) { c.Simulation.TickInterval = 0 }},
		{"negative latency", func(c *Config) { c.Simulation.FeedLatency = -time.Second }},
		{"probability above one", func(c *Config) { c.Simulation.FeedSuccessProbability = 1.1 }},
		{"probability below zero", func(c *Config) { c.Simulation.FeedSuccessProbability = -0.1 }},
		{"empty signing key", func(c *Config) { c.Auth.SigningKey = "  " }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"mqtt without broker", func(c *Config) { c.Publisher.Driver = DriverMQTT }},
		{"kafka without brokers", func(c *Config) { c.Publisher.Driver = DriverKafka }},
		{"unknown driver", func(c *Config) { c.Publisher.Driver = "amqp" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			tc.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
