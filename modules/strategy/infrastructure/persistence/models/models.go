package models

import (
	"database/sql"
	"time"
)

type Objective struct {
	ID            string
	TenantID      string
	Title         string
	Description   sql.NullString
	Level         int
	TeamID        sql.NullString
	ParentID      sql.NullString
	Quarter       sql.NullInt32
	Year          int
	Progress      float64
	ProgressMode  string
	Status        string
	GoalType      string
	PhasedTargets sql.NullString
	OwnerEmail    sql.NullString
	Placeholder   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type KeyResult struct {
	ID           string
	ObjectiveID  string
	TenantID     string
	Title        string
	MetricType   string
	CurrentValue float64
	TargetValue  float64
	InitialValue float64
	Unit         sql.NullString
	Progress     float64
	Weight       float64
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type BigRock struct {
	ID                   string
	TenantID             string
	Title                string
	ObjectiveID          sql.NullString
	TeamID               sql.NullString
	Quarter              sql.NullInt32
	Year                 int
	CompletionPercentage float64
	Status               string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type Team struct {
	ID          string
	TenantID    string
	Name        string
	Description sql.NullString
	LeaderEmail sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type CheckIn struct {
	ID               string
	TenantID         string
	EntityType       string
	EntityID         string
	PreviousValue    float64
	NewValue         float64
	PreviousProgress float64
	NewProgress      float64
	Status           sql.NullString
	Note             sql.NullString
	Source           string
	AsOfDate         time.Time
	CreatedAt        time.Time
}
