package repository

import (
	"context"
	"fmt"

	"github.com/shinyyama/priority-items/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriorityRepository interface {
	// EnsureSeeded creates the priority table if needed and fills it with the
	// default labels when it is empty. It returns the number of rows inserted.
	EnsureSeeded(ctx context.Context) (int64, error)
	List(ctx context.Context) ([]model.Priority, error)
}

type priorityRepository struct {
	db *gorm.DB
}

func NewPriorityRepository(db *gorm.DB) PriorityRepository {
	return &priorityRepository{db: db}
}

func (r *priorityRepository) EnsureSeeded(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(&model.Priority{}); err != nil {
		return 0, fmt.Errorf("migrate priority: %w", err)
	}

	var inserted int64
	err := db.Transaction(func(tx *gorm.DB) error {
		var cnt int64
		if err := tx.Model(&model.Priority{}).Count(&cnt).Error; err != nil {
			return fmt.Errorf("count priority: %w", err)
		}
		if cnt > 0 {
			return nil
		}
		rows := make([]model.Priority, 0, len(model.DefaultPriorityLabels))
		for _, label := range model.DefaultPriorityLabels {
			rows = append(rows, model.Priority{Label: label})
		}
		// another instance may be seeding at the same time
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
		if res.Error != nil {
			return fmt.Errorf("seed priority: %w", res.Error)
		}
		inserted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

func (r *priorityRepository) List(ctx context.Context) ([]model.Priority, error) {
	list := make([]model.Priority, 0, len(model.DefaultPriorityLabels))
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
