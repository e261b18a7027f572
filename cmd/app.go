package main

import (
	"fmt"

	"aquafeed/internal/config"
	"aquafeed/internal/logger"
	"aquafeed/internal/metrics"
	"aquafeed/internal/publisher"
	"aquafeed/internal/repository"
	"aquafeed/internal/service"
)

// loadConfig reads the config file and applies flag overrides.
func loadConfig() (config.Config, *logger.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = config.NormalizeLevel(logLevel)
	}
	return cfg, logger.Get(cfg.LogLevel), nil
}

// newMonitor builds the broker publisher and the monitor that feeds it.
// journal may be nil.
func newMonitor(cfg config.Config, journal repository.EventRepo, m *metrics.Metrics, log *logger.Logger) (*service.MonitorService, publisher.Publisher, error) {
	pub, err := publisher.New(cfg.Publisher)
	if err != nil {
		return nil, nil, fmt.Errorf("init publisher: %w", err)
	}
	mon := service.NewMonitorService(cfg.Simulation, service.MonitorDeps{
		Journal:   journal,
		Publisher: pub,
		Metrics:   m,
		Log:       log.Component("monitor"),
	})
	log.Infow("monitor_ready",
		"tick", cfg.Simulation.TickInterval.String(),
		"feed_latency", cfg.Simulation.FeedLatency.String(),
		"publisher", cfg.Publisher.Driver,
	)
	return mon, pub, nil
}
