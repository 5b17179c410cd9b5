package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

type TeamService struct {
	repo      team.Repository
	publisher eventbus.EventBus
}

func NewTeamService(repo team.Repository, publisher eventbus.EventBus) *TeamService {
	return &TeamService{
		repo:      repo,
		publisher: publisher,
	}
}

func (s *TeamService) GetByID(ctx context.Context, id uuid.UUID) (*team.Team, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TeamService) GetByName(ctx context.Context, name string) (*team.Team, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *TeamService) GetAll(ctx context.Context) ([]*team.Team, error) {
	return s.repo.GetAll(ctx)
}

func (s *TeamService) Create(ctx context.Context, data *team.Team) (*team.Team, error) {
	created, err := s.repo.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("team.created", created)
	return created, nil
}

func (s *TeamService) Update(ctx context.Context, data *team.Team) (*team.Team, error) {
	updated, err := s.repo.Update(ctx, data)
	if err != nil {
		return nil, err
	}
	s.publisher.Publish("team.updated", updated)
	return updated, nil
}

func (s *TeamService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publisher.Publish("team.deleted", id)
	return nil
}
