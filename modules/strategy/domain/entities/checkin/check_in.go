package checkin

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EntityType string

const (
	EntityTypeObjective EntityType = "objective"
	EntityTypeKeyResult EntityType = "key_result"
	EntityTypeBigRock   EntityType = "big_rock"
)

// CheckIn records one progress update against an objective, key result or
// big rock. Imported check-ins carry no prior history, so previous values
// stay at zero.
type CheckIn struct {
	id               uuid.UUID
	tenantID         uuid.UUID
	entityType       EntityType
	entityID         uuid.UUID
	previousValue    float64
	newValue         float64
	previousProgress float64
	newProgress      float64
	status           string
	note             *string
	source           string
	asOfDate         time.Time
	createdAt        time.Time
}

type Option func(*CheckIn)

func WithID(id uuid.UUID) Option {
	return func(c *CheckIn) {
		c.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(c *CheckIn) {
		c.tenantID = tenantID
	}
}

func WithPreviousValue(v float64) Option {
	return func(c *CheckIn) {
		c.previousValue = v
	}
}

func WithNewValue(v float64) Option {
	return func(c *CheckIn) {
		c.newValue = v
	}
}

func WithPreviousProgress(v float64) Option {
	return func(c *CheckIn) {
		c.previousProgress = v
	}
}

func WithNewProgress(v float64) Option {
	return func(c *CheckIn) {
		c.newProgress = v
	}
}

func WithStatus(status string) Option {
	return func(c *CheckIn) {
		c.status = status
	}
}

func WithNote(note *string) Option {
	return func(c *CheckIn) {
		c.note = note
	}
}

func WithSource(source string) Option {
	return func(c *CheckIn) {
		c.source = source
	}
}

func WithAsOfDate(asOfDate time.Time) Option {
	return func(c *CheckIn) {
		c.asOfDate = asOfDate
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *CheckIn) {
		c.createdAt = createdAt
	}
}

func New(entityType EntityType, entityID uuid.UUID, opts ...Option) *CheckIn {
	c := &CheckIn{
		id:         uuid.New(),
		entityType: entityType,
		entityID:   entityID,
		source:     "manual",
		asOfDate:   time.Now(),
		createdAt:  time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *CheckIn) ID() uuid.UUID {
	return c.id
}

func (c *CheckIn) TenantID() uuid.UUID {
	return c.tenantID
}

func (c *CheckIn) EntityType() EntityType {
	return c.entityType
}

func (c *CheckIn) EntityID() uuid.UUID {
	return c.entityID
}

func (c *CheckIn) PreviousValue() float64 {
	return c.previousValue
}

func (c *CheckIn) NewValue() float64 {
	return c.newValue
}

func (c *CheckIn) PreviousProgress() float64 {
	return c.previousProgress
}

func (c *CheckIn) NewProgress() float64 {
	return c.newProgress
}

func (c *CheckIn) Status() string {
	return c.status
}

func (c *CheckIn) Note() *string {
	return c.note
}

func (c *CheckIn) Source() string {
	return c.source
}

func (c *CheckIn) AsOfDate() time.Time {
	return c.asOfDate
}

func (c *CheckIn) CreatedAt() time.Time {
	return c.createdAt
}

type Repository interface {
	GetByEntity(ctx context.Context, entityType EntityType, entityID uuid.UUID) ([]*CheckIn, error)
	Create(ctx context.Context, data *CheckIn) (*CheckIn, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
