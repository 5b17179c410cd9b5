package bigrock

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// BigRock is a quarter-scoped initiative, optionally linked to an objective.
type BigRock struct {
	id                   uuid.UUID
	tenantID             uuid.UUID
	title                string
	objectiveID          *uuid.UUID
	teamID               *uuid.UUID
	quarter              *int
	year                 int
	completionPercentage float64
	status               Status
	createdAt            time.Time
	updatedAt            time.Time
}

type Option func(*BigRock)

func WithID(id uuid.UUID) Option {
	return func(b *BigRock) {
		b.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(b *BigRock) {
		b.tenantID = tenantID
	}
}

func WithObjectiveID(objectiveID *uuid.UUID) Option {
	return func(b *BigRock) {
		b.objectiveID = objectiveID
	}
}

func WithTeamID(teamID *uuid.UUID) Option {
	return func(b *BigRock) {
		b.teamID = teamID
	}
}

func WithQuarter(quarter *int) Option {
	return func(b *BigRock) {
		b.quarter = quarter
	}
}

func WithYear(year int) Option {
	return func(b *BigRock) {
		b.year = year
	}
}

func WithCompletionPercentage(v float64) Option {
	return func(b *BigRock) {
		b.completionPercentage = v
	}
}

func WithStatus(status Status) Option {
	return func(b *BigRock) {
		b.status = status
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(b *BigRock) {
		b.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(b *BigRock) {
		b.updatedAt = updatedAt
	}
}

func New(title string, year int, opts ...Option) *BigRock {
	b := &BigRock{
		id:        uuid.New(),
		title:     title,
		year:      year,
		status:    StatusNotStarted,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *BigRock) ID() uuid.UUID {
	return b.id
}

func (b *BigRock) TenantID() uuid.UUID {
	return b.tenantID
}

func (b *BigRock) Title() string {
	return b.title
}

func (b *BigRock) ObjectiveID() *uuid.UUID {
	return b.objectiveID
}

func (b *BigRock) TeamID() *uuid.UUID {
	return b.teamID
}

func (b *BigRock) Quarter() *int {
	return b.quarter
}

func (b *BigRock) Year() int {
	return b.year
}

func (b *BigRock) CompletionPercentage() float64 {
	return b.completionPercentage
}

func (b *BigRock) Status() Status {
	return b.status
}

func (b *BigRock) CreatedAt() time.Time {
	return b.createdAt
}

func (b *BigRock) UpdatedAt() time.Time {
	return b.updatedAt
}

func (b *BigRock) SetCompletionPercentage(v float64) {
	b.completionPercentage = v
	b.updatedAt = time.Now()
}

func (b *BigRock) SetStatus(status Status) {
	b.status = status
	b.updatedAt = time.Now()
}
