// Command matchy serves the meetup pairing flow over HTTP.
//
//	matchy                 run the HTTP server
//	matchy preview <seed>  print a pairing preview and exit
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/icssc/matchy-meetups-bot/internal/config"
	"github.com/icssc/matchy-meetups-bot/internal/history"
	"github.com/icssc/matchy-meetups-bot/internal/logging"
	"github.com/icssc/matchy-meetups-bot/internal/matchy"
	"github.com/icssc/matchy-meetups-bot/internal/notify"
	"github.com/icssc/matchy-meetups-bot/internal/roster"
	"github.com/icssc/matchy-meetups-bot/internal/server"
)

func main() {
	if !config.LoadDotEnv() {
		log.Println("No .env file found, using defaults")
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config.toml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewFromConfig(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	notifier := notify.NewLogNotifier(logger)
	svc := matchy.NewService(
		roster.NewFileDirectory(cfg.Storage.RosterFile),
		history.NewFileTranscript(cfg.Storage.TranscriptFile),
		notifier,
		notify.NewDispatcher(notifier, cfg.Notify.RatePerSecond, cfg.Notify.Burst, cfg.Notify.Concurrency, logger),
		matchy.Settings{
			RoleName:    cfg.Pairing.RoleName,
			Window:      time.Duration(cfg.History.WindowDays) * 24 * time.Hour,
			MaxMessages: cfg.History.MaxMessages,
			Options:     cfg.PairingOptions(),
		},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 1 {
		if err := runCommand(ctx, svc, os.Args[1:]); err != nil {
			log.Fatal(err)
		}
		return
	}

	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           server.NewServer(svc, logger).SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "addr", cfg.Server.Addr, "role", cfg.Pairing.RoleName)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func runCommand(ctx context.Context, svc *matchy.Service, args []string) error {
	switch {
	case args[0] == "preview" && len(args) == 2:
		p, err := svc.Preview(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Println(p.Text)
		return nil
	default:
		return fmt.Errorf("usage: matchy [preview <seed>]")
	}
}
