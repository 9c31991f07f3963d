package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nikhil2004nk/shra-calendar/internal/config"
	"github.com/nikhil2004nk/shra-calendar/internal/dataset"
	appLog "github.com/nikhil2004nk/shra-calendar/internal/log"
	"github.com/nikhil2004nk/shra-calendar/internal/web"
)

type flagConfig struct {
	configPath string
	listen     string
	dataDir    string
	year       int
}

func main() {
	appLog.Info("shracal starting", "version", "0.1.0")

	flags := parseFlags()

	cfg, err := config.Load(flags.configPath)
	if err != nil {
		appLog.Error("failed to load config", err, "config_path", flags.configPath)
		os.Exit(1)
	}

	// CLI flags override the config file where provided.
	if flags.listen != "" {
		cfg.Listen = flags.listen
	}
	if flags.dataDir != "" {
		cfg.DataDir = flags.dataDir
	}
	if flags.year != 0 {
		cfg.DefaultYear = flags.year
	}
	appLog.SetLevel(appLog.ParseLevel(cfg.LogLevel))

	appLog.Info("effective config",
		"listen", cfg.Listen,
		"week_start", cfg.WeekStart,
		"default_year", cfg.DefaultYear,
		"data_dir", cfg.DataDir,
		"refresh", cfg.RefreshCron,
	)

	snap, err := dataset.Load(cfg.DataDir)
	if err != nil {
		appLog.Error("failed to load datasets", err, "data_dir", cfg.DataDir)
		os.Exit(1)
	}

	server := web.NewServer(cfg, snap)

	// Periodic dataset reload only makes sense with a directory override;
	// the embedded copies cannot change at runtime.
	var scheduler *cron.Cron
	if cfg.DataDir != "" && cfg.RefreshCron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.RefreshCron, func() {
			fresh, err := dataset.Load(cfg.DataDir)
			if err != nil {
				appLog.Error("dataset reload failed, keeping previous snapshot", err, "data_dir", cfg.DataDir)
				return
			}
			server.SetSnapshot(fresh)
		})
		if err != nil {
			appLog.Error("invalid refresh schedule", err, "refresh", cfg.RefreshCron)
			os.Exit(1)
		}
		scheduler.Start()
		appLog.Info("dataset refresh scheduled", "refresh", cfg.RefreshCron, "data_dir", cfg.DataDir)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Info("signal received, shutting down", "signal", sig.String())
		cancel()
	}()

	srv := &http.Server{
		Addr:    cfg.Listen,
		Handler: server.Handler(),
	}

	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Error("HTTP server failed", err)
			cancel()
		}
	}()

	<-ctx.Done()

	if scheduler != nil {
		scheduler.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Error("HTTP server shutdown failed", err)
	}

	appLog.Info("shracal exiting")
}

func parseFlags() flagConfig {
	var cfg flagConfig

	flag.StringVar(&cfg.configPath, "config", "/etc/shra-calendar/config.yaml", "Path to config file")
	flag.StringVar(&cfg.listen, "listen", "", "HTTP listen address (overrides config if set)")
	flag.StringVar(&cfg.dataDir, "data", "", "Dataset directory override (overrides config if set)")
	flag.IntVar(&cfg.year, "year", 0, "Default year served when requests name none")

	flag.Parse()

	return cfg
}
