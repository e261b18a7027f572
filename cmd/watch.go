package main

import (
	"context"
	"time"

	"aquafeed/internal/logger"
	"aquafeed/internal/service"

	"github.com/spf13/cobra"
)

var (
	watchTicks    int
	watchInterval time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the sensor polling loop headless and log every reading",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		mon, pub, err := newMonitor(cfg, nil, nil, log)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()

		tick := cfg.Simulation.TickInterval
		if watchInterval > 0 {
			tick = watchInterval
		}
		watch(cmd.Context(), mon, tick, watchTicks, log)
		return nil
	},
}

func init() {
	watchCmd.Flags().IntVar(&watchTicks, "ticks", 0, "stop after n readings (0 runs until interrupted)")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 0, "override simulation.tick_interval")
}

// watch ticks mon every interval and logs the reading and the active alerts.
func watch(ctx context.Context, mon *service.MonitorService, interval time.Duration, limit int, log *logger.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()

	for n := 0; limit == 0 || n < limit; n++ {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		r, raised := mon.Tick(ctx)
		active := mon.ListAlerts(ctx, true)
		log.Infow("reading",
			"ph", r.PH,
			"temperature", r.Temperature,
			"raised", len(raised),
			"active_alerts", len(active),
		)
		for _, a := range active {
			log.Warnw("active_alert", "id", a.ID, "severity", a.Severity, "message", a.Message)
		}
	}
}
