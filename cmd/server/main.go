package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clinicforms/consent-engine/internal/api"
	"github.com/clinicforms/consent-engine/internal/config"
	"github.com/clinicforms/consent-engine/internal/mailer"
	"github.com/clinicforms/consent-engine/internal/renderer"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Constructing the renderer up front surfaces missing assets and a
	// broken font config before the first submission arrives.
	rend, err := renderer.New(renderer.Config{
		FormsDir:   cfg.FormsDir(),
		FontConfig: cfg.FontConfig(),
		FontsDir:   cfg.FontsDir(),
		LogoPath:   cfg.LogoPath(),
	})
	if err != nil {
		slog.Error("Failed to create renderer", "error", err)
		os.Exit(1)
	}

	server := api.NewServer(rend, mailer.New(cfg.SMTP), api.Options{
		FrontendOrigin: cfg.FrontendOrigin,
		FormsDir:       cfg.FormsDir(),
		Timezone:       cfg.Timezone,
	})

	addr := fmt.Sprintf("0.0.0.0:%s", cfg.Port)

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting consent engine", "version", Version, "addr", addr)
		if err := server.Run(addr); err != nil {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
		os.Exit(1)
	case sig := <-sigChan:
		slog.Info("Shutting down", "signal", sig.String())
	}
}
