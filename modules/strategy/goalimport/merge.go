package goalimport

import (
	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
)

// The merge policy rewrites a freshly mapped draft onto the id of the
// matched existing record before issuing the update.

func withObjectiveID(o *objective.Objective, id uuid.UUID) *objective.Objective {
	return objective.New(
		o.Title(),
		o.Year(),
		objective.WithID(id),
		objective.WithTenantID(o.TenantID()),
		objective.WithDescription(o.Description()),
		objective.WithLevel(o.Level()),
		objective.WithTeamID(o.TeamID()),
		objective.WithParentID(o.ParentID()),
		objective.WithQuarter(o.Quarter()),
		objective.WithProgress(o.Progress()),
		objective.WithProgressMode(o.ProgressMode()),
		objective.WithStatus(o.Status()),
		objective.WithGoalType(o.GoalType()),
		objective.WithPhasedTargets(o.PhasedTargets()),
		objective.WithOwnerEmail(o.OwnerEmail()),
		objective.WithPlaceholder(o.IsPlaceholder()),
		objective.WithCreatedAt(o.CreatedAt()),
		objective.WithUpdatedAt(o.UpdatedAt()),
	)
}

func withKeyResultID(kr *keyresult.KeyResult, id uuid.UUID) *keyresult.KeyResult {
	return keyresult.New(
		kr.Title(),
		kr.ObjectiveID(),
		keyresult.WithID(id),
		keyresult.WithTenantID(kr.TenantID()),
		keyresult.WithMetricType(kr.MetricType()),
		keyresult.WithCurrentValue(kr.CurrentValue()),
		keyresult.WithTargetValue(kr.TargetValue()),
		keyresult.WithInitialValue(kr.InitialValue()),
		keyresult.WithUnit(kr.Unit()),
		keyresult.WithProgress(kr.Progress()),
		keyresult.WithWeight(kr.Weight()),
		keyresult.WithStatus(kr.Status()),
		keyresult.WithCreatedAt(kr.CreatedAt()),
		keyresult.WithUpdatedAt(kr.UpdatedAt()),
	)
}

func withBigRockID(b *bigrock.BigRock, id uuid.UUID) *bigrock.BigRock {
	return bigrock.New(
		b.Title(),
		b.Year(),
		bigrock.WithID(id),
		bigrock.WithTenantID(b.TenantID()),
		bigrock.WithObjectiveID(b.ObjectiveID()),
		bigrock.WithTeamID(b.TeamID()),
		bigrock.WithQuarter(b.Quarter()),
		bigrock.WithCompletionPercentage(b.CompletionPercentage()),
		bigrock.WithStatus(b.Status()),
		bigrock.WithCreatedAt(b.CreatedAt()),
		bigrock.WithUpdatedAt(b.UpdatedAt()),
	)
}
