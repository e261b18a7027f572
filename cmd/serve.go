package main

import (
	"context"
	"fmt"
	"time"

	"aquafeed/internal/handlers"
	"aquafeed/internal/logger"
	"aquafeed/internal/metrics"
	"aquafeed/internal/repository"
	"aquafeed/internal/repository/db"
	"aquafeed/internal/server"
	"aquafeed/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the WebSocket stream and the sensor polling loop",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.LogLevel != logger.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err, "path", cfg.DB.Path)
		return err
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	repos := repository.NewRepository(sqlDB)
	m := metrics.New()
	mon, pub, err := newMonitor(cfg, repos.EventRepo, m, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			log.Errorw("failed to close publisher", "err", cerr)
		}
	}()

	services := service.NewService(repos, mon, cfg.Auth)
	apiHandler := handlers.NewHandler(services, m, log.Component("http"))
	srv := server.New(cfg.Port, apiHandler.InitRoutes())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		services.Simulator.Run(gctx, cfg.Simulation.TickInterval)
		return nil
	})
	g.Go(func() error {
		log.Infow("http_listening", "addr", srv.Addr())
		if err := srv.Run(); err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	// refuse new feeds; in-flight ones still journal before the database closes
	mon.Close()
	return err
}
