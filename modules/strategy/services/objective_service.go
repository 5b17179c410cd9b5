package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

type ObjectiveService struct {
	repo      objective.Repository
	publisher eventbus.EventBus
}

func NewObjectiveService(repo objective.Repository, publisher eventbus.EventBus) *ObjectiveService {
	return &ObjectiveService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *ObjectiveService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *ObjectiveService) GetAll(ctx context.Context) ([]*objective.Objective, error) {
	return s.repo.GetAll(ctx)
}

func (s *ObjectiveService) GetByID(ctx context.Context, id uuid.UUID) (*objective.Objective, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ObjectiveService) GetPaginated(
	ctx context.Context, params *objective.FindParams,
) ([]*objective.Objective, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *ObjectiveService) Create(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("objective.created", created)
	return created, nil
}

func (s *ObjectiveService) Update(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	updated, err := s.repo.Update(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("objective.updated", updated)
	return updated, nil
}

func (s *ObjectiveService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("objective.deleted", id)
	return nil
}
