package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/jaki95/soundcloud-playlist/config"
	"github.com/jaki95/soundcloud-playlist/internal/server"
	"github.com/jaki95/soundcloud-playlist/internal/soundcloud"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the config file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	client, err := soundcloud.New(cfg)
	if err != nil {
		if errors.Is(err, soundcloud.ErrDisabled) {
			slog.Warn("SoundCloud support is disabled, not starting the server")
			os.Exit(0)
		}
		slog.Error("Failed to create soundcloud client", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, client)

	slog.Info("Starting soundcloud playlist API server", "port", cfg.Server.Port)
	if err := srv.Start(cfg.Server.Port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
