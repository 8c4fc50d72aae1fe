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

	"github.com/joho/godotenv"
	"github.com/shinyyama/priority-items/internal/config"
	"github.com/shinyyama/priority-items/internal/db"
	"github.com/shinyyama/priority-items/internal/logger"
	"github.com/shinyyama/priority-items/internal/repository"
	"github.com/shinyyama/priority-items/internal/server"
	"go.uber.org/zap"
)

// set with -ldflags "-X main.gitSHA=... -X main.buildTime=..."
var (
	gitSHA    = "dev"
	buildTime = ""
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}
	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("db connect: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	seeded, err := repository.NewPriorityRepository(conn).EnsureSeeded(ctx)
	if err != nil {
		return fmt.Errorf("seed priority catalog: %w", err)
	}
	if seeded > 0 {
		zl.Info("priority catalog seeded", zap.Int64("rows", seeded))
	}
	if err := repository.NewItemRepository(conn).Migrate(ctx); err != nil {
		return fmt.Errorf("migrate items: %w", err)
	}

	srv := server.New(conn, zl, server.Options{
		StaticDir: cfg.StaticDir,
		GitSHA:    gitSHA,
		BuildTime: buildTime,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
