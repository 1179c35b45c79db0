package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"glidescore/adapters/jsonfile"
	"glidescore/adapters/memory"
	"glidescore/api/httpapi"
	"glidescore/config"
	"glidescore/leaderboard"
)

// App aggregates the assembled server components.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Service *leaderboard.Service
	Handler http.Handler
	Server  *http.Server
}

func provideConfig() (*config.Config, error) {
	return config.Load()
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return setupLogging(cfg)
}

func provideStore(cfg *config.Config, logger *slog.Logger) (leaderboard.Store, error) {
	switch cfg.Storage.Adapter {
	case "file":
		return jsonfile.New(cfg.Storage.Path, logger), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown storage adapter: %s", cfg.Storage.Adapter)
	}
}

func provideService(store leaderboard.Store, logger *slog.Logger) *leaderboard.Service {
	return leaderboard.New(store, logger)
}

func provideHandler(svc *leaderboard.Service, cfg *config.Config) http.Handler {
	return httpapi.NewMux(svc, httpapi.Options{
		AllowCORSOrigin:  cfg.Server.CORSOrigin,
		RequestTimeout:   cfg.Server.RequestTimeout,
		RateLimitEnabled: cfg.Security.EnableRateLimit,
		RateLimitRPM:     cfg.Security.RateLimitRPM,
		RateLimitBurst:   cfg.Security.RateLimitBurst,
	})
}

func provideServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

// setupLogging configures the logger based on configuration.
func setupLogging(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	var handler slog.Handler
	switch cfg.Logging.Format {
	case "text":
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler).With("service", leaderboard.ServiceName)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
