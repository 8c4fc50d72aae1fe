package service

import (
	"context"

	"github.com/shinyyama/priority-items/internal/model"
	"github.com/shinyyama/priority-items/internal/repository"
)

type PriorityService interface {
	List(ctx context.Context) ([]model.Priority, error)
}

type priorityService struct {
	repo repository.PriorityRepository
}

func NewPriorityService(repo repository.PriorityRepository) PriorityService {
	return &priorityService{repo: repo}
}

func (s *priorityService) List(ctx context.Context) ([]model.Priority, error) {
	return s.repo.List(ctx)
}
