package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

type CheckInService struct {
	repo      checkin.Repository
	publisher eventbus.EventBus
}

func NewCheckInService(repo checkin.Repository, publisher eventbus.EventBus) *CheckInService {
	return &CheckInService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *CheckInService) GetByEntity(ctx context.Context, entityType checkin.EntityType, entityID uuid.UUID) ([]*checkin.CheckIn, error) {
	return s.repo.GetByEntity(ctx, entityType, entityID)
}

func (s *CheckInService) Create(ctx context.Context, data *checkin.CheckIn) (*checkin.CheckIn, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("checkin.created", created)
	return created, nil
}

func (s *CheckInService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
