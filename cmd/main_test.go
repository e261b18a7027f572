package main

import (
	"context"
	"testing"
	"time"

	"aquafeed/internal/config"
	"aquafeed/internal/logger"
	"aquafeed/internal/service"
)

func TestRootCommand_Subcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "watch"} {
		if !names[want] {
			t.Fatalf("missing subcommand %q", want)
		}
	}
	for _, flag := range []string{"config", "log-level"} {
		if rootCmd.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag --%s", flag)
		}
	}
}

func TestWatch_StopsAfterLimit(t *testing.T) {
	mon := service.NewMonitorService(config.SimulationConfig{FeedSuccessProbability: 1}, service.MonitorDeps{})
	before, err := mon.GetState(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		watch(context.Background(), mon, time.Millisecond, 3, logger.NewNop())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after 3 ticks")
	}

	after, err := mon.GetState(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	last := before.ReadingHistory[len(before.ReadingHistory)-1].Timestamp
	newer := 0
	for _, r := range after.ReadingHistory {
		if r.Timestamp.After(last) || r.Timestamp.Equal(last) {
			newer++
		}
	}
	// the seeded newest reading plus three ticks
	if newer < 3 {
		t.Fatalf("expected at least 3 new readings, got %d", newer)
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	mon := service.NewMonitorService(config.SimulationConfig{}, service.MonitorDeps{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		watch(ctx, mon, time.Hour, 0, logger.NewNop())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch ignored cancellation")
	}
}
