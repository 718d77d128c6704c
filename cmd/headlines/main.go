// Command headlines is a terminal client that browses top headlines by
// category, loading further pages on demand.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"newsfox/internal/config"
	"newsfox/internal/domain/entity"
	"newsfox/internal/infra/cache"
	"newsfox/internal/infra/provider"
	"newsfox/internal/observability/logging"
	hlUC "newsfox/internal/usecase/headline"
	pkgconfig "newsfox/pkg/config"
)

func main() {
	configPath := flag.String("config", pkgconfig.GetEnvString("NEWSFOX_CONFIG", "configs/newsfox.yaml"), "path to the YAML config file")
	category := flag.String("category", string(entity.DefaultCategory), "category to open")
	logPath := flag.String("log", "headlines.log", "log file (the terminal is used for the UI)")
	flag.Parse()

	if err := run(*configPath, *category, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, "headlines:", err)
		os.Exit(1)
	}
}

func run(configPath, category, logPath string) error {
	_ = godotenv.Load()

	start, err := entity.ParseCategory(category)
	if err != nil {
		return err
	}

	// #nosec G304 -- log path comes from a CLI flag
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()
	logger := logging.New(logFile, "text")
	slog.SetDefault(logger)

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p, err := provider.New(cfg.Provider, nil)
	if err != nil {
		return err
	}
	if rawURL := os.Getenv(cfg.Cache.RedisURLEnv); rawURL != "" && cfg.Cache.TTL > 0 {
		rdb, err := cache.Connect(ctx, rawURL)
		if err != nil {
			logger.Warn("redis unavailable, running without cache", slog.Any("error", err))
		} else {
			defer func() { _ = rdb.Close() }()
			p = cache.WithPageCache(p, rdb, cfg.Cache.TTL)
		}
	}

	fetcher := hlUC.Fetcher{Provider: p, Timeout: cfg.Provider.Timeout}
	m := newModel(ctx, fetcher, logger, start)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
