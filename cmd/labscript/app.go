package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/labscript-ai/labscript"
	"github.com/labscript-ai/labscript/internal/adapters/file"
	"github.com/labscript-ai/labscript/internal/adapters/labservice"
	"github.com/labscript-ai/labscript/internal/adapters/memory"
	"github.com/labscript-ai/labscript/internal/adapters/redis"
	"github.com/labscript-ai/labscript/internal/config"
	"github.com/labscript-ai/labscript/internal/logging"
	"github.com/labscript-ai/labscript/pkg/orchestrator"
	"github.com/labscript-ai/labscript/pkg/ports"
)

// buildApp loads the configuration and assembles the application with the
// configured backend and service client.
func buildApp(cmd *cobra.Command, metrics *orchestrator.Metrics) (*labscript.App, config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	verbose, _ := cmd.Flags().GetBool("verbose")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Config{}, err
	}

	level := slog.LevelInfo
	if verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := logging.New(level)

	var backend ports.ConfigStore
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		backend = memory.NewStore()
	case config.BackendFile:
		backend = file.New(cfg.Storage.File.Path)
	case config.BackendRedis:
		var redisOpts []redis.Option
		if cfg.Storage.Redis.Key != "" {
			redisOpts = append(redisOpts, redis.WithKey(cfg.Storage.Redis.Key))
		}
		backend = redis.New(cfg.Storage.Redis.Address, cfg.Storage.Redis.Password, cfg.Storage.Redis.DB, redisOpts...)
	default:
		return nil, config.Config{}, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	service := labservice.New(cfg.Service.URL, labservice.WithTimeout(cfg.Service.Timeout.Std()))

	opts := []labscript.Option{
		labscript.WithLogger(logger),
		labscript.WithService(service),
		labscript.WithConfigStore(backend),
	}
	if metrics != nil {
		opts = append(opts, labscript.WithMetrics(metrics))
	}
	return labscript.New(cfg.Service.URL, opts...), cfg, nil
}
