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

	"github.com/rs/zerolog/log"

	"github.com/Vansh-Raj/HeadBall/config"
	"github.com/Vansh-Raj/HeadBall/logging"
	"github.com/Vansh-Raj/HeadBall/network"
	"github.com/Vansh-Raj/HeadBall/room"
)

func main() {
	configDir := flag.String("config", ".", "directory holding .env and headball.json")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	metrics, err := room.NewMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("init metrics")
	}
	rooms := room.NewManager(logger, metrics)
	defer rooms.Close()

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           network.NewServer(rooms, logger).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Msg("listening (ws endpoint: /ws)")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("server stopped")
		}
		return
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
}
