package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
)

type stubPublisher struct {
	published [][]interface{}
}

func (p *stubPublisher) Publish(args ...interface{}) {
	p.published = append(p.published, args)
}
func (p *stubPublisher) Subscribe(handler interface{})   {}
func (p *stubPublisher) Unsubscribe(handler interface{}) {}
func (p *stubPublisher) Clear()                          {}
func (p *stubPublisher) SubscribersCount() int           { return 0 }

type mockObjectiveRepo struct {
	createErr error
	created   *objective.Objective
	deleted   []uuid.UUID
}

func (m *mockObjectiveRepo) Count(ctx context.Context) (int64, error) { return 0, nil }
func (m *mockObjectiveRepo) GetAll(ctx context.Context) ([]*objective.Objective, error) {
	return nil, nil
}
func (m *mockObjectiveRepo) GetPaginated(ctx context.Context, params *objective.FindParams) ([]*objective.Objective, error) {
	return nil, nil
}
func (m *mockObjectiveRepo) GetByID(ctx context.Context, id uuid.UUID) (*objective.Objective, error) {
	return nil, nil
}
func (m *mockObjectiveRepo) GetByTitle(ctx context.Context, title string) (*objective.Objective, error) {
	return nil, nil
}
func (m *mockObjectiveRepo) Create(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	m.created = data
	return data, nil
}
func (m *mockObjectiveRepo) Update(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	return data, nil
}
func (m *mockObjectiveRepo) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestObjectiveService_CreatePublishes(t *testing.T) {
	t.Parallel()

	repo := &mockObjectiveRepo{}
	publisher := &stubPublisher{}
	svc := NewObjectiveService(repo, publisher)

	data := objective.New("Grow revenue", 2024, objective.WithID(uuid.New()))
	created, err := svc.Create(context.Background(), data)
	require.NoError(t, err)
	require.Same(t, data, created)
	require.Same(t, data, repo.created)

	require.Len(t, publisher.published, 1)
	require.Equal(t, "objective.created", publisher.published[0][0])
	require.Same(t, data, publisher.published[0][1])
}

func TestObjectiveService_CreateErrorSuppressesEvent(t *testing.T) {
	t.Parallel()

	repo := &mockObjectiveRepo{createErr: errors.New("boom")}
	publisher := &stubPublisher{}
	svc := NewObjectiveService(repo, publisher)

	_, err := svc.Create(context.Background(), objective.New("Grow revenue", 2024))
	require.Error(t, err)
	require.Empty(t, publisher.published)
}

func TestObjectiveService_DeletePublishesID(t *testing.T) {
	t.Parallel()

	repo := &mockObjectiveRepo{}
	publisher := &stubPublisher{}
	svc := NewObjectiveService(repo, publisher)

	id := uuid.New()
	require.NoError(t, svc.Delete(context.Background(), id))
	require.Equal(t, []uuid.UUID{id}, repo.deleted)

	require.Len(t, publisher.published, 1)
	require.Equal(t, "objective.deleted", publisher.published[0][0])
	require.Equal(t, id, publisher.published[0][1])
}
