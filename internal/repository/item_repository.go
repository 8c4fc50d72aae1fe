package repository

import (
	"context"
	"errors"
	"fmt"

	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/shinyyama/priority-items/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidPriority is returned when a write references a priority that is
// not in the catalog.
var ErrInvalidPriority = errors.New("priority does not exist")

// mysqlErrNoReferencedRow is ER_NO_REFERENCED_ROW_2.
const mysqlErrNoReferencedRow = 1452

type ItemRepository interface {
	Migrate(ctx context.Context) error
	Create(ctx context.Context, item *model.Item) (*model.ItemView, error)
	FindByID(ctx context.Context, id uint64) (*model.ItemView, error)
	List(ctx context.Context) ([]model.ItemView, error)
	Update(ctx context.Context, item *model.Item) (*model.ItemView, error)
	Delete(ctx context.Context, id uint64) error
	Count(ctx context.Context) (int64, error)
}

type itemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

// Migrate creates the items table and its foreign key to priority.
func (r *itemRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&model.Priority{}, &model.Item{})
}

// Create inserts item and returns the stored row as read back through the
// priority join.
func (r *itemRepository) Create(ctx context.Context, item *model.Item) (*model.ItemView, error) {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return nil, classify(err)
	}
	return r.FindByID(ctx, item.ID)
}

func (r *itemRepository) FindByID(ctx context.Context, id uint64) (*model.ItemView, error) {
	var view model.ItemView
	if err := r.views(ctx).Where("items.id = ?", id).Take(&view).Error; err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *itemRepository) List(ctx context.Context) ([]model.ItemView, error) {
	views := make([]model.ItemView, 0)
	if err := r.views(ctx).Order("items.id ASC").Find(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}

// Update overwrites name, description and priority of item.ID. It returns
// gorm.ErrRecordNotFound when no row has that id.
func (r *itemRepository) Update(ctx context.Context, item *model.Item) (*model.ItemView, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("id = ?", item.ID).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"description": item.Description,
			"priority_id": item.PriorityID,
		})
	if res.Error != nil {
		return nil, classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, item.ID)
}

func (r *itemRepository) Delete(ctx context.Context, id uint64) error {
	res := r.db.WithContext(ctx).Delete(&model.Item{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *itemRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Item{}).Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *itemRepository) views(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("items").
		Select("items.id, items.name, items.description, items.priority_id, priority.label AS priority_label").
		Joins("JOIN priority ON priority.id = items.priority_id")
}

func classify(err error) error {
	if isForeignKeyViolation(err) {
		return fmt.Errorf("%w: %w", ErrInvalidPriority, err)
	}
	return err
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysqldrv.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrNoReferencedRow
}
