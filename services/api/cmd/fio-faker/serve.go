package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"fiofaker/pkg/bus"
	"fiofaker/pkg/fixtures"
	"fiofaker/pkg/render"
	"fiofaker/pkg/telemetry"
	"fiofaker/services/api"
	"fiofaker/services/api/internal/config"
)

const serviceName = "fio-faker"

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mock API",
	}
	generator := seedFlag(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, err := config.Load(ctx)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := newLogger(cfg)

		cleanup, err := telemetry.Init(ctx, serviceName, cfg.OTLPEndpoint)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := cleanup(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("shutdown telemetry")
			}
		}()

		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)

		engine, err := render.New()
		if err != nil {
			return fmt.Errorf("load templates: %w", err)
		}
		gen, seed := generator(fixtures.WithRanges(cfg.Ranges.Fixtures()))
		if seed != nil {
			logger.Info().Uint64("seed", *seed).Msg("seeded fixture generator")
		}

		state := api.NewState()
		deps := api.Deps{
			Generator: gen,
			Renderer:  engine,
			State:     state,
			Logger:    &logger,
			Registry:  registry,
		}
		if cfg.NATSURL != "" {
			events, err := bus.New(cfg.NATSURL)
			if err != nil {
				return fmt.Errorf("connect nats: %w", err)
			}
			defer events.Close()
			deps.Publisher = events
			logger.Info().Str("url", cfg.NATSURL).Msg("publishing events")
		}

		server, err := api.New(deps, api.Config{
			ServiceName:    serviceName,
			RootURL:        cfg.RootURL,
			MaxLimit:       cfg.MaxLimit,
			JWTSecret:      cfg.JWTSecretKey,
			TrustProxy:     cfg.IsProduction(),
			AllowedOrigins: cfg.AllowedOrigins,
			RateLimit:      cfg.RateLimit,
		})
		if err != nil {
			return err
		}
		handler, err := server.Routes()
		if err != nil {
			return err
		}

		return listenAndServe(ctx, logger, cfg, state, &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}
	return cmd
}

func newLogger(cfg config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	var logger zerolog.Logger
	if cfg.IsProduction() {
		logger = zerolog.New(os.Stdout)
	} else {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return logger.Level(cfg.Level()).With().Timestamp().Str("service", serviceName).Logger()
}

// listenAndServe serves until ctx is done. Readiness flips to failing first
// and the listener stays open for the configured grace before shutdown.
func listenAndServe(ctx context.Context, logger zerolog.Logger, cfg config.Config, state *api.State, srv *http.Server) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		state.SetBad()
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("starting fio-faker api")
		state.SetGood()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			state.SetBad()
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	state.ShuttingDown()
	if grace := cfg.Grace(); grace > 0 {
		logger.Info().Dur("grace", grace).Msg("draining before shutdown")
		time.Sleep(grace)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
