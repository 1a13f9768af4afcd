package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/voxpipe/voxpipe/internal/config"
	"github.com/voxpipe/voxpipe/internal/convert"
	"github.com/voxpipe/voxpipe/internal/httpserver"
	"github.com/voxpipe/voxpipe/internal/observability"
	"github.com/voxpipe/voxpipe/internal/pipeline"
	"github.com/voxpipe/voxpipe/internal/speech"
	"github.com/voxpipe/voxpipe/internal/translator"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(config.Options{})
	if err != nil {
		fatal("load config", err)
	}

	obs, err := observability.Setup(ctx, cfg.Observability)
	if err != nil {
		fatal("setup observability", err)
	}
	if obs != nil {
		defer obs.Shutdown(ctx)
	}

	transcriber, closeTranscriber, err := speech.NewGoogleTranscriber(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		fatal("create transcriber", err)
	}
	defer closeTranscriber()

	trans, closeTranslator, err := translator.NewGoogleTranslator(ctx, cfg.Google.CredentialsFile)
	if err != nil {
		fatal("create translator", err)
	}
	defer closeTranslator()

	converter := &convert.FFmpeg{
		Binary:     cfg.FFmpeg.Binary,
		SampleRate: cfg.FFmpeg.SampleRate,
		Channels:   cfg.FFmpeg.Channels,
	}

	pipe := pipeline.New(converter, transcriber, trans, cfg.Pipeline, obs)

	server, err := httpserver.New(cfg, pipe, obs)
	if err != nil {
		fatal("construct server", err)
	}

	slog.Info("starting server",
		"addr", cfg.Server.ListenAddr,
		"source_language", cfg.Pipeline.SourceLanguage,
		"target_language", cfg.Pipeline.TargetLanguage,
	)
	if err := server.Listen(ctx); err != nil && err != context.Canceled {
		fatal("server stopped", err)
	}
	slog.Info("shutdown complete")
}

func fatal(msg string, err error) {
	slog.Error(msg, "error", err)
	os.Exit(1)
}
