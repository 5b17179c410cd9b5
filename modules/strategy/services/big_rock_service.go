package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

type BigRockService struct {
	repo      bigrock.Repository
	publisher eventbus.EventBus
}

func NewBigRockService(repo bigrock.Repository, publisher eventbus.EventBus) *BigRockService {
	return &BigRockService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *BigRockService) GetByID(ctx context.Context, id uuid.UUID) (*bigrock.BigRock, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *BigRockService) GetByTenant(ctx context.Context) ([]*bigrock.BigRock, error) {
	return s.repo.GetByTenant(ctx)
}

func (s *BigRockService) Create(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("bigrock.created", created)
	return created, nil
}

func (s *BigRockService) Update(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	updated, err := s.repo.Update(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("bigrock.updated", updated)
	return updated, nil
}

func (s *BigRockService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("bigrock.deleted", id)
	return nil
}
