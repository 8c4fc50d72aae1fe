package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shinyyama/priority-items/internal/model"
	"github.com/shinyyama/priority-items/internal/repository"
	"gorm.io/gorm"
)

type ItemService interface {
	Create(ctx context.Context, name, description string, priorityID uint64) (*model.ItemView, error)
	Get(ctx context.Context, id uint64) (*model.ItemView, error)
	List(ctx context.Context) ([]model.ItemView, error)
	Update(ctx context.Context, id uint64, name, description string, priorityID uint64) (*model.ItemView, error)
	Delete(ctx context.Context, id uint64) error
}

type itemService struct {
	repo repository.ItemRepository
}

func NewItemService(repo repository.ItemRepository) ItemService {
	return &itemService{repo: repo}
}

func (s *itemService) Create(ctx context.Context, name, description string, priorityID uint64) (*model.ItemView, error) {
	item, err := buildItem(name, description, priorityID)
	if err != nil {
		return nil, err
	}
	view, err := s.repo.Create(ctx, item)
	if err != nil {
		// the insert succeeded if only the read-back found nothing
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("read back created item: %v", err)
		}
		return nil, translate(err)
	}
	return view, nil
}

func (s *itemService) Get(ctx context.Context, id uint64) (*model.ItemView, error) {
	view, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (s *itemService) List(ctx context.Context) ([]model.ItemView, error) {
	return s.repo.List(ctx)
}

// Update replaces all three fields of the item; there is no partial update.
func (s *itemService) Update(ctx context.Context, id uint64, name, description string, priorityID uint64) (*model.ItemView, error) {
	item, err := buildItem(name, description, priorityID)
	if err != nil {
		return nil, err
	}
	item.ID = id
	view, err := s.repo.Update(ctx, item)
	if err != nil {
		return nil, translate(err)
	}
	return view, nil
}

func (s *itemService) Delete(ctx context.Context, id uint64) error {
	return translate(s.repo.Delete(ctx, id))
}

func buildItem(name, description string, priorityID uint64) (*model.Item, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if priorityID == 0 {
		return nil, fmt.Errorf("%w: priorityId is required", ErrInvalidInput)
	}
	return &model.Item{
		Name:        name,
		Description: description,
		PriorityID:  priorityID,
	}, nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrInvalidPriority):
		return fmt.Errorf("%w: %w", ErrConstraintViolation, err)
	default:
		return err
	}
}
