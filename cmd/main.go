package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jaki95/soundcloud-playlist/config"
	"github.com/jaki95/soundcloud-playlist/internal/downloader"
	"github.com/jaki95/soundcloud-playlist/internal/soundcloud"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "Path to the config file")
	uri := flag.String("uri", "", "soundcloud:// request URI (required)")
	download := flag.Bool("download", false, "Download the extracted tracks")
	outputDir := flag.String("out", "./output", "Output directory for downloads")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *uri == "" {
		fmt.Fprintln(os.Stderr, "Missing required flag: -uri")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(cfg.LogLevel)}))
	slog.SetDefault(logger)

	client, err := soundcloud.New(cfg)
	if err != nil {
		if errors.Is(err, soundcloud.ErrDisabled) {
			slog.Warn("SoundCloud support is disabled, nothing to do")
			os.Exit(0)
		}
		slog.Error("Failed to create soundcloud client", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	playlist, err := client.GetPlaylist(ctx, *uri)
	if err != nil {
		slog.Error("Failed to get playlist", "uri", *uri, "error", err)
		os.Exit(1)
	}

	for i, track := range playlist.Tracks {
		fmt.Printf("%3d. %s (%s)\n     %s\n", i+1, track.Title, track.Duration(), track.StreamURL)
	}

	if !*download {
		return
	}

	d := downloader.NewHTTPDownloader()
	for _, track := range playlist.Tracks {
		if _, err := d.Download(ctx, track, *outputDir); err != nil {
			slog.Error("Failed to download track", "title", track.Title, "error", err)
			os.Exit(1)
		}
	}
}
