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

	tea "github.com/charmbracelet/bubbletea"

	"brainbook/pkg/config"
	"brainbook/pkg/export"
	"brainbook/pkg/handlers"
	"brainbook/pkg/logger"
	"brainbook/pkg/services"
	"brainbook/pkg/storage"
	"brainbook/pkg/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Close()

	log.Infow("Starting up", "dataDir", cfg.DataDir, "configDir", config.GetConfigDirPath())

	store, err := storage.NewStore(cfg.DataDir, log)
	if err != nil {
		return err
	}

	service := services.NewNoteService(store, log)
	defer func() {
		if err := service.Close(); err != nil {
			log.Warnw("Error closing service", "error", err)
		}
	}()

	if err := service.WatchStore(); err != nil {
		log.Warnw("File watching disabled", "error", err)
	}

	exporter := export.NewExporter(cfg.ExportDir, log)

	var srv *http.Server
	if cfg.ServeWeb {
		srv = &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: handlers.NewRouter(service, exporter, log),
		}
		go func() {
			log.Infow("Web server listening", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Errorw("Web server failed", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Warnw("Web server shutdown failed", "error", err)
			}
		}()
	}

	if cfg.Headless {
		if !cfg.ServeWeb {
			return fmt.Errorf("nothing to do: headless with web server disabled")
		}
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		log.Infow("Shutting down")
		return nil
	}

	p := tea.NewProgram(tui.InitialModel(service, exporter, log), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("terminal interface failed: %w", err)
	}

	log.Infow("Shutting down")
	return nil
}
