package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"calculation-store/internal/calculator"
	"calculation-store/internal/config"
	"calculation-store/internal/logger"
	"calculation-store/internal/models"
	"calculation-store/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run migrates the schema and reports how many calculations of each type
// are stored.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	store, err := storage.Open(openCtx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close store", zap.Error(err))
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return err
	}
	log.Info("schema migrated")

	summary, err := calculator.New(store, log).Summary(ctx, uuid.Nil)
	if err != nil {
		return err
	}
	for _, typ := range models.Types() {
		log.Info("stored calculations", zap.Stringer("type", typ), zap.Int64("count", summary[typ]))
	}
	return nil
}
