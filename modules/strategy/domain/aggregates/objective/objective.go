package objective

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusOnTrack    Status = "on_track"
	StatusAtRisk     Status = "at_risk"
	StatusBehind     Status = "behind"
	StatusCompleted  Status = "completed"
)

type ProgressMode string

const (
	ProgressModeManual ProgressMode = "manual"
	ProgressModeRollup ProgressMode = "rollup"
)

type GoalType string

const (
	GoalTypeCommitted    GoalType = "committed"
	GoalTypeAspirational GoalType = "aspirational"
)

type Objective struct {
	id            uuid.UUID
	tenantID      uuid.UUID
	title         string
	description   string
	level         int
	teamID        *uuid.UUID
	parentID      *uuid.UUID
	quarter       *int
	year          int
	progress      float64
	progressMode  ProgressMode
	status        Status
	goalType      GoalType
	phasedTargets json.RawMessage
	ownerEmail    string
	placeholder   bool
	createdAt     time.Time
	updatedAt     time.Time
}

type Option func(*Objective)

func WithID(id uuid.UUID) Option {
	return func(o *Objective) {
		o.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(o *Objective) {
		o.tenantID = tenantID
	}
}

func WithDescription(description string) Option {
	return func(o *Objective) {
		o.description = description
	}
}

func WithLevel(level int) Option {
	return func(o *Objective) {
		o.level = level
	}
}

func WithTeamID(teamID *uuid.UUID) Option {
	return func(o *Objective) {
		o.teamID = teamID
	}
}

func WithParentID(parentID *uuid.UUID) Option {
	return func(o *Objective) {
		o.parentID = parentID
	}
}

func WithQuarter(quarter *int) Option {
	return func(o *Objective) {
		o.quarter = quarter
	}
}

func WithYear(year int) Option {
	return func(o *Objective) {
		o.year = year
	}
}

func WithProgress(progress float64) Option {
	return func(o *Objective) {
		o.progress = progress
	}
}

func WithProgressMode(mode ProgressMode) Option {
	return func(o *Objective) {
		o.progressMode = mode
	}
}

func WithStatus(status Status) Option {
	return func(o *Objective) {
		o.status = status
	}
}

func WithGoalType(goalType GoalType) Option {
	return func(o *Objective) {
		o.goalType = goalType
	}
}

func WithPhasedTargets(targets json.RawMessage) Option {
	return func(o *Objective) {
		o.phasedTargets = targets
	}
}

func WithOwnerEmail(email string) Option {
	return func(o *Objective) {
		o.ownerEmail = email
	}
}

func WithPlaceholder(placeholder bool) Option {
	return func(o *Objective) {
		o.placeholder = placeholder
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(o *Objective) {
		o.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(o *Objective) {
		o.updatedAt = updatedAt
	}
}

func New(title string, year int, opts ...Option) *Objective {
	o := &Objective{
		id:           uuid.New(),
		title:        title,
		year:         year,
		progressMode: ProgressModeManual,
		status:       StatusNotStarted,
		goalType:     GoalTypeCommitted,
		createdAt:    time.Now(),
		updatedAt:    time.Now(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *Objective) ID() uuid.UUID {
	return o.id
}

func (o *Objective) TenantID() uuid.UUID {
	return o.tenantID
}

func (o *Objective) Title() string {
	return o.title
}

func (o *Objective) Description() string {
	return o.description
}

func (o *Objective) Level() int {
	return o.level
}

func (o *Objective) TeamID() *uuid.UUID {
	return o.teamID
}

func (o *Objective) ParentID() *uuid.UUID {
	return o.parentID
}

func (o *Objective) Quarter() *int {
	return o.quarter
}

func (o *Objective) Year() int {
	return o.year
}

func (o *Objective) Progress() float64 {
	return o.progress
}

func (o *Objective) ProgressMode() ProgressMode {
	return o.progressMode
}

func (o *Objective) Status() Status {
	return o.status
}

func (o *Objective) GoalType() GoalType {
	return o.goalType
}

func (o *Objective) PhasedTargets() json.RawMessage {
	return o.phasedTargets
}

func (o *Objective) OwnerEmail() string {
	return o.ownerEmail
}

func (o *Objective) IsPlaceholder() bool {
	return o.placeholder
}

func (o *Objective) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Objective) UpdatedAt() time.Time {
	return o.updatedAt
}

func (o *Objective) SetProgress(progress float64) {
	o.progress = progress
	o.updatedAt = time.Now()
}

func (o *Objective) SetStatus(status Status) {
	o.status = status
	o.updatedAt = time.Now()
}

func (o *Objective) SetParentID(parentID *uuid.UUID) {
	o.parentID = parentID
	o.updatedAt = time.Now()
}

func (o *Objective) SetDescription(description string) {
	o.description = description
	o.updatedAt = time.Now()
}
