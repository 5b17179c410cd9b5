package goalimport

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Strategy controls what happens when an incoming record matches an
// existing entity by the identity rule (same tenant, same title).
type Strategy string

const (
	StrategySkip   Strategy = "skip"
	StrategyMerge  Strategy = "merge"
	StrategyCreate Strategy = "create"
)

type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

type Options struct {
	TenantID             uuid.UUID
	UserID               uuid.UUID
	UserEmail            string
	FiscalYearStartMonth int
	DuplicateStrategy    Strategy
	ImportCheckIns       bool
	ImportTeams          bool
}

type Summary struct {
	ObjectivesCreated int `json:"objectivesCreated"`
	KeyResultsCreated int `json:"keyResultsCreated"`
	BigRocksCreated   int `json:"bigRocksCreated"`
	CheckInsCreated   int `json:"checkInsCreated"`
	TeamsCreated      int `json:"teamsCreated"`
}

type SkippedItem struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	SourceID string `json:"sourceId"`
}

// MappedEntity records where a source record landed. TargetValue and
// InitialValue are only meaningful for key results; check-in mapping
// needs them to recompute progress.
type MappedEntity struct {
	Type         string    `json:"type"`
	ID           uuid.UUID `json:"id"`
	TargetValue  float64   `json:"targetValue,omitempty"`
	InitialValue float64   `json:"initialValue,omitempty"`
}

// EntityMap is the run-scoped correspondence table from source id to
// target entity. Presence of a source id means the record was imported
// or matched; absence means it was skipped or failed.
type EntityMap map[string]MappedEntity

type Result struct {
	Status       Status        `json:"status"`
	Summary      Summary       `json:"summary"`
	Warnings     []string      `json:"warnings"`
	Errors       []string      `json:"errors"`
	SkippedItems []SkippedItem `json:"skippedItems"`
	EntityMap    EntityMap     `json:"entityMap"`
}

// Goal item kinds as they appear in the export.
const (
	KindOutcome    = "Outcome"
	KindMetric     = "Metric"
	KindInitiative = "Initiative"
)

// FlexID tolerates the export's habit of serializing ids sometimes as
// JSON strings and sometimes as numbers.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == "" {
		*f = ""
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*f = FlexID(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// FlexNumber tolerates numeric fields serialized as numbers, numeric
// strings, or strings with thousands separators ("16,108").
type FlexNumber struct {
	Raw string
	Set bool
}

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		f.Raw = v
	} else {
		f.Raw = s
	}
	f.Set = f.Raw != ""
	return nil
}

// FlexOwner accepts either a bare string (name or email) or an object
// with name/email fields.
type FlexOwner struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (o *FlexOwner) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	if s[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		if strings.Contains(v, "@") {
			o.Email = v
		} else {
			o.Name = v
		}
		return nil
	}
	type alias FlexOwner
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*o = FlexOwner(a)
	return nil
}

type SourcePeriod struct {
	ID        FlexID `json:"id"`
	Label     string `json:"label"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type SourceTeam struct {
	ID          FlexID      `json:"id"`
	Name        string      `json:"name"`
	ParentTeam  FlexID      `json:"parentTeam"`
	Owners      []FlexOwner `json:"owners"`
	Description string      `json:"description"`
}

type SourceUser struct {
	ID    FlexID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SourceOutcome struct {
	Type       string     `json:"type"`
	MetricName string     `json:"metricName"`
	MetricUnit string     `json:"metricUnit"`
	Start      FlexNumber `json:"start"`
	Target     FlexNumber `json:"target"`
	TargetType string     `json:"targetType"`
}

// SourceGoalItem is the export's single polymorphic record covering
// objectives, KPIs and projects; Kind discriminates. Each mapper only
// consults the fields legal for its kind.
type SourceGoalItem struct {
	ID             FlexID          `json:"id"`
	Title          string          `json:"title"`
	Kind           string          `json:"type"`
	Owners         []FlexOwner     `json:"owners"`
	Teams          []FlexID        `json:"teams"`
	Period         string          `json:"period"`
	StartDate      string          `json:"startDate"`
	EndDate        string          `json:"endDate"`
	Parents        []FlexID        `json:"parents"`
	Description    string          `json:"description"`
	ProgressConfig string          `json:"progressConfig"`
	Progress       FlexNumber      `json:"progress"`
	Status         string          `json:"status"`
	Outcome        *SourceOutcome  `json:"outcome"`
	PhasedTargets  json.RawMessage `json:"phasedTargets"`
	LastCheckInAt  string          `json:"lastCheckInAt"`
	Aspirational   bool            `json:"aspirational"`
}

func (g *SourceGoalItem) firstParent() string {
	for _, p := range g.Parents {
		if p != "" {
			return p.String()
		}
	}
	return ""
}

type SourceCheckIn struct {
	ID           FlexID     `json:"id"`
	GoalItem     FlexID     `json:"goalItem"`
	Date         string     `json:"date"`
	Owner        FlexOwner  `json:"owner"`
	Note         string     `json:"note"`
	MetricName   string     `json:"metricName"`
	Status       string     `json:"status"`
	CurrentValue FlexNumber `json:"currentValue"`
	ActivityDate string     `json:"activityDate"`
}

func quarterOfMonth(m int) int {
	return (m-1)/3 + 1
}
