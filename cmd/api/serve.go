package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"accident-risk-api/alcohol"
	"accident-risk-api/config"
	"accident-risk-api/i18n"
	"accident-risk-api/logger"
	"accident-risk-api/risk"
	"accident-risk-api/server"
	"accident-risk-api/services"
	"accident-risk-api/telemetry"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfigFile(configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg.Server.LogLevel, cfg.Server.IsDev())
	defer func() { _ = log.Sync() }()

	if cfg.Tracing.Enabled {
		shutdown, err := telemetry.SetupTracing()
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := shutdown(sctx); err != nil {
				log.Warn("tracer shutdown", zap.Error(err))
			}
		}()
	}

	table, err := alcohol.LoadDefault()
	if err != nil {
		return fmt.Errorf("load alcohol table: %w", err)
	}
	translator, err := i18n.New()
	if err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	loc, err := time.LoadLocation(cfg.Server.Timezone)
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	cache, err := services.NewCacheService(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("redis unavailable, running without cache", zap.Error(err))
	}
	defer cache.Close()

	if !cfg.Auth.Enabled() {
		log.Warn("AUTH_CLIENTS is empty, protected routes are open")
	}

	engine := risk.New()
	weather := services.NewWeatherService(cfg.Providers, cache, log)
	maps := services.NewMapsService(cfg.Providers, cache, log)
	analyzer := services.NewRouteAnalyzer(maps, log)

	router, err := server.NewRouter(server.Deps{
		Config:     cfg,
		Logger:     log,
		Engine:     engine,
		Table:      table,
		Translator: translator,
		Cache:      cache,
		Auth:       services.NewAuthService(cfg.JWT, cfg.Auth),
		Weather:    weather,
		Maps:       maps,
		Analyzer:   analyzer,
		Assessor:   services.NewAssessor(engine, table, weather, analyzer, maps, loc, log),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("alcohol_table", table.Version()))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(sctx)
}
