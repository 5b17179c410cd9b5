package goalimport

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
)

// Status vocabulary translation from the export to the platform.
// Anything unrecognized maps to not_started.
var statusByLabel = map[string]objective.Status{
	"On Track":    objective.StatusOnTrack,
	"At Risk":     objective.StatusAtRisk,
	"Behind":      objective.StatusBehind,
	"Closed":      objective.StatusCompleted,
	"Not Started": objective.StatusNotStarted,
}

func translateStatus(label string) objective.Status {
	if status, ok := statusByLabel[label]; ok {
		return status
	}
	return objective.StatusNotStarted
}

// parseNumeric converts a loosely-typed numeric field to a float64,
// tolerating thousands separators and surrounding whitespace.
func parseNumeric(n FlexNumber) (float64, error) {
	if !n.Set {
		return 0, nil
	}
	cleaned := strings.TrimSpace(n.Raw)
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid numeric value %q", n.Raw)
	}
	f, _ := d.Float64()
	return f, nil
}

// progressModeFromConfig infers rollup mode when the source's progress
// configuration references child aggregation.
func progressModeFromConfig(config string) objective.ProgressMode {
	lowered := strings.ToLower(config)
	for _, marker := range []string{"child", "rollup", "aggregate", "sub-goal", "subgoal"} {
		if strings.Contains(lowered, marker) {
			return objective.ProgressModeRollup
		}
	}
	return objective.ProgressModeManual
}

func goalTypeFromSource(aspirational bool) objective.GoalType {
	if aspirational {
		return objective.GoalTypeAspirational
	}
	return objective.GoalTypeCommitted
}

func ownerEmail(owners []FlexOwner, fallback string) string {
	for _, o := range owners {
		if o.Email != "" {
			return o.Email
		}
	}
	return fallback
}

// mapObjective builds an objective draft from an outcome-kind goal
// item. Level and parent linkage are supplied by the hierarchy
// resolver, not inferred here.
func mapObjective(item *SourceGoalItem, period Period, level int, parentID, teamID *uuid.UUID, opts Options) (*objective.Objective, error) {
	progress, err := parseNumeric(item.Progress)
	if err != nil {
		return nil, errors.Wrapf(err, "objective %q", item.Title)
	}
	now := time.Now()
	return objective.New(
		item.Title,
		period.Year,
		objective.WithID(uuid.New()),
		objective.WithTenantID(opts.TenantID),
		objective.WithDescription(item.Description),
		objective.WithLevel(level),
		objective.WithTeamID(teamID),
		objective.WithParentID(parentID),
		objective.WithQuarter(period.Quarter),
		objective.WithProgress(progress),
		objective.WithProgressMode(progressModeFromConfig(item.ProgressConfig)),
		objective.WithStatus(translateStatus(item.Status)),
		objective.WithGoalType(goalTypeFromSource(item.Aspirational)),
		objective.WithPhasedTargets(item.PhasedTargets),
		objective.WithOwnerEmail(ownerEmail(item.Owners, opts.UserEmail)),
		objective.WithCreatedAt(now),
		objective.WithUpdatedAt(now),
	), nil
}

// placeholderTitle is the deterministic title of the synthesized
// parent for a missing reference; the engine's duplicate lookup keys
// on it across runs.
func placeholderTitle(missingParentID string) string {
	return "[Placeholder] Imported parent " + missingParentID
}

// newPlaceholderObjective synthesizes a parent for metric items whose
// declared parent is absent from the archive. The flag plus the title
// prefix make it recognizable in later reconciliation passes.
func newPlaceholderObjective(missingParentID string, period Period, opts Options) *objective.Objective {
	now := time.Now()
	return objective.New(
		placeholderTitle(missingParentID),
		period.Year,
		objective.WithID(uuid.New()),
		objective.WithTenantID(opts.TenantID),
		objective.WithDescription("Synthesized during import for metrics whose parent was not in the archive."),
		objective.WithQuarter(period.Quarter),
		objective.WithProgressMode(objective.ProgressModeRollup),
		objective.WithStatus(objective.StatusNotStarted),
		objective.WithGoalType(objective.GoalTypeCommitted),
		objective.WithPlaceholder(true),
		objective.WithOwnerEmail(opts.UserEmail),
		objective.WithCreatedAt(now),
		objective.WithUpdatedAt(now),
	)
}

// metricTypeFromTarget derives the key-result direction from keyword
// families in the source's target-type string. Increase is the default.
func metricTypeFromTarget(targetType string) keyresult.MetricType {
	lowered := strings.ToLower(targetType)
	switch {
	case containsAny(lowered, "below", "at most", "at-most", "under"):
		return keyresult.MetricTypeDecrease
	case containsAny(lowered, "maintain", "keep at", "keep-at"):
		return keyresult.MetricTypeMaintain
	case containsAny(lowered, "complete", "finish", "done"):
		return keyresult.MetricTypeComplete
	default:
		return keyresult.MetricTypeIncrease
	}
}

func containsAny(s string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			return true
		}
	}
	return false
}

// mapKeyResult builds a key-result draft from a metric-kind goal item.
//
// The export does not record whether the raw progress value is the
// absolute current value or a 0-100 percentage, so this applies the
// same inference the progress values were written with: treat it as
// absolute when it exceeds 100, or when the target is large and the
// value is plausibly in the target's range; otherwise interpolate
// between start and target. A small legitimate absolute value (45
// widgets against a target of 100) will be misread as a percentage;
// the source format gives nothing to disambiguate with.
func mapKeyResult(item *SourceGoalItem, objectiveID uuid.UUID, opts Options) (*keyresult.KeyResult, error) {
	if item.Outcome == nil {
		return nil, errors.Errorf("metric %q has no outcome definition", item.Title)
	}
	progress, err := parseNumeric(item.Progress)
	if err != nil {
		return nil, errors.Wrapf(err, "metric %q", item.Title)
	}

	var (
		metricType   keyresult.MetricType
		currentValue float64
		targetValue  float64
		initialValue float64
		unit         string
	)

	switch item.Outcome.Type {
	case "Percentage":
		metricType = metricTypeFromTarget(item.Outcome.TargetType)
		currentValue = progress
		targetValue = 100
		unit = "%"
	case "Metric":
		start, err := parseNumeric(item.Outcome.Start)
		if err != nil {
			return nil, errors.Wrapf(err, "metric %q", item.Title)
		}
		target, err := parseNumeric(item.Outcome.Target)
		if err != nil {
			return nil, errors.Wrapf(err, "metric %q", item.Title)
		}
		metricType = metricTypeFromTarget(item.Outcome.TargetType)
		initialValue = start
		targetValue = target

		unit = item.Outcome.MetricUnit
		if unit == "" {
			if target == 100 && start == 0 {
				unit = "%"
			} else {
				unit = "Number"
			}
		}

		if isAbsoluteProgress(progress, target) {
			currentValue = progress
		} else {
			currentValue = interpolateValue(metricType, start, target, progress/100)
		}
	default:
		metricType = metricTypeFromTarget(item.Outcome.TargetType)
		currentValue = progress
		targetValue = 100
		unit = "%"
	}

	now := time.Now()
	return keyresult.New(
		item.Title,
		objectiveID,
		keyresult.WithID(uuid.New()),
		keyresult.WithTenantID(opts.TenantID),
		keyresult.WithMetricType(metricType),
		keyresult.WithCurrentValue(currentValue),
		keyresult.WithTargetValue(targetValue),
		keyresult.WithInitialValue(initialValue),
		keyresult.WithUnit(&unit),
		keyresult.WithProgress(progressOf(currentValue, initialValue, targetValue)),
		keyresult.WithWeight(1),
		keyresult.WithStatus(keyresult.Status(translateStatus(item.Status))),
		keyresult.WithCreatedAt(now),
		keyresult.WithUpdatedAt(now),
	), nil
}

// isAbsoluteProgress decides whether a raw progress value is already
// the absolute current value rather than a 0-100 percentage.
func isAbsoluteProgress(progress, target float64) bool {
	if progress > 100 {
		return true
	}
	return target > 100 && progress > 10 && progress >= 0.01*target
}

func interpolateValue(metricType keyresult.MetricType, start, target, fraction float64) float64 {
	switch metricType {
	case keyresult.MetricTypeIncrease:
		return start + (target-start)*fraction
	case keyresult.MetricTypeDecrease:
		return start - (start-target)*fraction
	case keyresult.MetricTypeMaintain:
		return target
	case keyresult.MetricTypeComplete:
		return fraction
	default:
		return start + (target-start)*fraction
	}
}

// progressOf recomputes percent progress from value bounds, clamped at
// 0 and allowed to exceed 100 for over-achievement.
func progressOf(current, initial, target float64) float64 {
	if target == initial {
		if current >= target {
			return 100
		}
		return 0
	}
	p := (current - initial) / (target - initial) * 100
	if p < 0 {
		return 0
	}
	return p
}

var bigRockStatusByLabel = map[string]bigrock.Status{
	"Closed":      bigrock.StatusCompleted,
	"Not Started": bigrock.StatusNotStarted,
}

// mapBigRock builds a big-rock draft from an initiative-kind goal item.
// Completion percentage passes through without rounding.
func mapBigRock(item *SourceGoalItem, period Period, objectiveID, teamID *uuid.UUID, opts Options) (*bigrock.BigRock, error) {
	completion, err := parseNumeric(item.Progress)
	if err != nil {
		return nil, errors.Wrapf(err, "initiative %q", item.Title)
	}
	status, ok := bigRockStatusByLabel[item.Status]
	if !ok {
		status = bigrock.StatusInProgress
	}
	now := time.Now()
	return bigrock.New(
		item.Title,
		period.Year,
		bigrock.WithID(uuid.New()),
		bigrock.WithTenantID(opts.TenantID),
		bigrock.WithObjectiveID(objectiveID),
		bigrock.WithTeamID(teamID),
		bigrock.WithQuarter(period.Quarter),
		bigrock.WithCompletionPercentage(completion),
		bigrock.WithStatus(status),
		bigrock.WithCreatedAt(now),
		bigrock.WithUpdatedAt(now),
	), nil
}

// mapCheckIn builds a check-in draft. For key-result targets the new
// progress is recomputed from the entity's recorded bounds; for other
// targets the current value already is the progress. Previous values
// are zero because the archive carries no prior history.
func mapCheckIn(src *SourceCheckIn, target MappedEntity, opts Options) (*checkin.CheckIn, error) {
	current, err := parseNumeric(src.CurrentValue)
	if err != nil {
		return nil, errors.Wrapf(err, "check-in %s", src.ID)
	}

	newProgress := current
	if target.Type == string(checkin.EntityTypeKeyResult) {
		newProgress = progressOf(current, target.InitialValue, target.TargetValue)
	}

	asOf := time.Now()
	for _, raw := range []string{src.ActivityDate, src.Date} {
		if t, ok := parseDate(raw); ok {
			asOf = t
			break
		}
	}

	var note *string
	if src.Note != "" {
		note = &src.Note
	}

	return checkin.New(
		checkin.EntityType(target.Type),
		target.ID,
		checkin.WithID(uuid.New()),
		checkin.WithTenantID(opts.TenantID),
		checkin.WithPreviousValue(0),
		checkin.WithNewValue(current),
		checkin.WithPreviousProgress(0),
		checkin.WithNewProgress(newProgress),
		checkin.WithStatus(string(translateStatus(src.Status))),
		checkin.WithNote(note),
		checkin.WithSource("import"),
		checkin.WithAsOfDate(asOf),
		checkin.WithCreatedAt(time.Now()),
	), nil
}
