package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

type KeyResultService struct {
	repo      keyresult.Repository
	publisher eventbus.EventBus
}

func NewKeyResultService(repo keyresult.Repository, publisher eventbus.EventBus) *KeyResultService {
	return &KeyResultService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *KeyResultService) GetByID(ctx context.Context, id uuid.UUID) (*keyresult.KeyResult, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *KeyResultService) GetByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*keyresult.KeyResult, error) {
	return s.repo.GetByObjective(ctx, objectiveID)
}

func (s *KeyResultService) Create(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("keyresult.created", created)
	return created, nil
}

func (s *KeyResultService) Update(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	updated, err := s.repo.Update(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("keyresult.updated", updated)
	return updated, nil
}

func (s *KeyResultService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("keyresult.deleted", id)
	return nil
}
