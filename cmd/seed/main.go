package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/shinyyama/priority-items/internal/config"
	"github.com/shinyyama/priority-items/internal/db"
	"github.com/shinyyama/priority-items/internal/repository"
)

// seed creates the schema and seeds the priority catalog without starting
// the HTTP server.
func main() {
	if err := run(); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
}

func run() error {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gdb, err := db.Connect(cfg)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("sql db: %w", err)
	}
	defer sqlDB.Close()

	priorityRepo := repository.NewPriorityRepository(gdb)
	n, err := priorityRepo.EnsureSeeded(ctx)
	if err != nil {
		return err
	}
	if err := repository.NewItemRepository(gdb).Migrate(ctx); err != nil {
		return fmt.Errorf("migrate items: %w", err)
	}

	list, err := priorityRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list priority: %w", err)
	}
	if n == 0 {
		log.Printf("priority catalog already populated; skipping seed")
	} else {
		log.Printf("seeded %d priority levels", n)
	}
	for _, p := range list {
		log.Printf("  %d  %s", p.ID, p.Label)
	}
	return nil
}
