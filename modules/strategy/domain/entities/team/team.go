package team

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Team struct {
	id          uuid.UUID
	tenantID    uuid.UUID
	name        string
	description *string
	leaderEmail *string
	createdAt   time.Time
	updatedAt   time.Time
}

type Option func(*Team)

func WithID(id uuid.UUID) Option {
	return func(t *Team) {
		t.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(t *Team) {
		t.tenantID = tenantID
	}
}

func WithDescription(description *string) Option {
	return func(t *Team) {
		t.description = description
	}
}

func WithLeaderEmail(email *string) Option {
	return func(t *Team) {
		t.leaderEmail = email
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(t *Team) {
		t.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(t *Team) {
		t.updatedAt = updatedAt
	}
}

func New(name string, opts ...Option) *Team {
	t := &Team{
		id:        uuid.New(),
		name:      name,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Team) ID() uuid.UUID {
	return t.id
}

func (t *Team) TenantID() uuid.UUID {
	return t.tenantID
}

func (t *Team) Name() string {
	return t.name
}

func (t *Team) Description() *string {
	return t.description
}

func (t *Team) LeaderEmail() *string {
	return t.leaderEmail
}

func (t *Team) CreatedAt() time.Time {
	return t.createdAt
}

func (t *Team) UpdatedAt() time.Time {
	return t.updatedAt
}

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Team, error)
	GetByName(ctx context.Context, name string) (*Team, error)
	GetAll(ctx context.Context) ([]*Team, error)
	Create(ctx context.Context, data *Team) (*Team, error)
	Update(ctx context.Context, data *Team) (*Team, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
