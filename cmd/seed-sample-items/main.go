package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shinyyama/priority-items/internal/config"
	"github.com/shinyyama/priority-items/internal/db"
	"github.com/shinyyama/priority-items/internal/model"
	"github.com/shinyyama/priority-items/internal/repository"
	"github.com/shinyyama/priority-items/internal/service"
)

type sampleItem struct {
	Name        string
	Description string
	Label       string
}

var samples = []sampleItem{
	{"Revisar caída del servidor", "El endpoint de pagos devuelve 502 de forma intermitente.", "Urgente"},
	{"Actualizar dependencias", "", "Medio"},
	{"Documentar API de items", "Ejemplos de POST y PUT con cuerpo completo.", "Medio"},
	{"Limpiar estilos del formulario", "", "Bajo"},
}

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

	priorityRepo := repository.NewPriorityRepository(gdb)
	if _, err := priorityRepo.EnsureSeeded(ctx); err != nil {
		return err
	}
	itemRepo := repository.NewItemRepository(gdb)
	if err := itemRepo.Migrate(ctx); err != nil {
		return fmt.Errorf("migrate items: %w", err)
	}

	cnt, err := itemRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count items: %w", err)
	}
	if cnt > 0 && !strings.EqualFold(os.Getenv("FORCE_SEED"), "true") {
		log.Printf("items already exist; skipping seed (set FORCE_SEED=true to override)")
		return nil
	}

	list, err := priorityRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list priority: %w", err)
	}
	byLabel := labelIndex(list)

	svc := service.NewItemService(itemRepo)
	inserted, skipped := 0, 0
	for _, s := range samples {
		pid, ok := byLabel[s.Label]
		if !ok {
			skipped++
			continue
		}
		view, err := svc.Create(ctx, s.Name, s.Description, pid)
		if err != nil {
			return fmt.Errorf("insert %q: %w", s.Name, err)
		}
		log.Printf("  #%d %s [%s]", view.ID, view.Name, view.PriorityLabel)
		inserted++
	}

	log.Printf("seed complete: inserted=%d skipped=%d total=%d", inserted, skipped, len(samples))
	return nil
}

func labelIndex(list []model.Priority) map[string]uint64 {
	out := make(map[string]uint64, len(list))
	for _, p := range list {
		out[p.Label] = p.ID
	}
	return out
}
