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

	"github.com/minaorangina/beggar/config"
	"github.com/minaorangina/beggar/results"
	"github.com/minaorangina/beggar/server"
	"github.com/minaorangina/beggar/store"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ledger, err := results.NewLedger(cfg.LedgerMode, cfg.SQLitePath, cfg.PostgresDSN)
	if err != nil {
		logger.Fatal("could not open results ledger", zap.String("mode", cfg.LedgerMode), zap.Error(err))
	}
	defer ledger.Close()

	s := server.NewServer(server.ServerOpts{
		Store:            store.NewInMemoryGameStore(),
		Ledger:           ledger,
		Logger:           logger,
		DefaultPlayers:   cfg.DefaultPlayers,
		MaxTicks:         cfg.MaxTicks,
		AutoplayInterval: cfg.AutoplayInterval,
	})
	s.Addr = cfg.Addr

	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr), zap.String("ledger", cfg.LedgerMode))
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	s.StopAutoplay()
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		logger.Error("could not shut down cleanly", zap.Error(err))
	}
}
