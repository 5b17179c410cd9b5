package keyresult

import (
	"time"

	"github.com/google/uuid"
)

type MetricType string

const (
	MetricTypeIncrease MetricType = "increase"
	MetricTypeDecrease MetricType = "decrease"
	MetricTypeMaintain MetricType = "maintain"
	MetricTypeComplete MetricType = "complete"
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusOnTrack    Status = "on_track"
	StatusAtRisk     Status = "at_risk"
	StatusBehind     Status = "behind"
	StatusCompleted  Status = "completed"
)

type KeyResult struct {
	id           uuid.UUID
	objectiveID  uuid.UUID
	tenantID     uuid.UUID
	title        string
	metricType   MetricType
	currentValue float64
	targetValue  float64
	initialValue float64
	unit         *string
	progress     float64
	weight       float64
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

type Option func(*KeyResult)

func WithID(id uuid.UUID) Option {
	return func(kr *KeyResult) {
		kr.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(kr *KeyResult) {
		kr.tenantID = tenantID
	}
}

func WithMetricType(metricType MetricType) Option {
	return func(kr *KeyResult) {
		kr.metricType = metricType
	}
}

func WithCurrentValue(v float64) Option {
	return func(kr *KeyResult) {
		kr.currentValue = v
	}
}

func WithTargetValue(v float64) Option {
	return func(kr *KeyResult) {
		kr.targetValue = v
	}
}

func WithInitialValue(v float64) Option {
	return func(kr *KeyResult) {
		kr.initialValue = v
	}
}

func WithUnit(unit *string) Option {
	return func(kr *KeyResult) {
		kr.unit = unit
	}
}

func WithProgress(progress float64) Option {
	return func(kr *KeyResult) {
		kr.progress = progress
	}
}

func WithWeight(weight float64) Option {
	return func(kr *KeyResult) {
		kr.weight = weight
	}
}

func WithStatus(status Status) Option {
	return func(kr *KeyResult) {
		kr.status = status
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(kr *KeyResult) {
		kr.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(kr *KeyResult) {
		kr.updatedAt = updatedAt
	}
}

func New(title string, objectiveID uuid.UUID, opts ...Option) *KeyResult {
	kr := &KeyResult{
		id:          uuid.New(),
		title:       title,
		objectiveID: objectiveID,
		metricType:  MetricTypeIncrease,
		weight:      1,
		status:      StatusNotStarted,
		createdAt:   time.Now(),
		updatedAt:   time.Now(),
	}
	for _, opt := range opts {
		opt(kr)
	}
	return kr
}

func (kr *KeyResult) ID() uuid.UUID {
	return kr.id
}

func (kr *KeyResult) ObjectiveID() uuid.UUID {
	return kr.objectiveID
}

func (kr *KeyResult) TenantID() uuid.UUID {
	return kr.tenantID
}

func (kr *KeyResult) Title() string {
	return kr.title
}

func (kr *KeyResult) MetricType() MetricType {
	return kr.metricType
}

func (kr *KeyResult) CurrentValue() float64 {
	return kr.currentValue
}

func (kr *KeyResult) TargetValue() float64 {
	return kr.targetValue
}

func (kr *KeyResult) InitialValue() float64 {
	return kr.initialValue
}

func (kr *KeyResult) Unit() *string {
	return kr.unit
}

func (kr *KeyResult) Progress() float64 {
	return kr.progress
}

func (kr *KeyResult) Weight() float64 {
	return kr.weight
}

func (kr *KeyResult) Status() Status {
	return kr.status
}

func (kr *KeyResult) CreatedAt() time.Time {
	return kr.createdAt
}

func (kr *KeyResult) UpdatedAt() time.Time {
	return kr.updatedAt
}

func (kr *KeyResult) SetCurrentValue(v float64) {
	kr.currentValue = v
	kr.updatedAt = time.Now()
}

func (kr *KeyResult) SetProgress(progress float64) {
	kr.progress = progress
	kr.updatedAt = time.Now()
}

func (kr *KeyResult) SetStatus(status Status) {
	kr.status = status
	kr.updatedAt = time.Now()
}
