package persistence

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence/models"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/mapping"
)

func toDomainObjective(row *models.Objective) (*objective.Objective, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, err
	}

	opts := []objective.Option{
		objective.WithID(id),
		objective.WithTenantID(tenantID),
		objective.WithLevel(row.Level),
		objective.WithTeamID(mapping.SQLNullStringToUUID(row.TeamID)),
		objective.WithParentID(mapping.SQLNullStringToUUID(row.ParentID)),
		objective.WithQuarter(mapping.SQLNullInt32ToPointer(row.Quarter)),
		objective.WithProgress(row.Progress),
		objective.WithProgressMode(objective.ProgressMode(row.ProgressMode)),
		objective.WithStatus(objective.Status(row.Status)),
		objective.WithGoalType(objective.GoalType(row.GoalType)),
		objective.WithPlaceholder(row.Placeholder),
		objective.WithCreatedAt(row.CreatedAt),
		objective.WithUpdatedAt(row.UpdatedAt),
	}
	if row.Description.Valid {
		opts = append(opts, objective.WithDescription(row.Description.String))
	}
	if row.OwnerEmail.Valid {
		opts = append(opts, objective.WithOwnerEmail(row.OwnerEmail.String))
	}
	if row.PhasedTargets.Valid && row.PhasedTargets.String != "" {
		opts = append(opts, objective.WithPhasedTargets(json.RawMessage(row.PhasedTargets.String)))
	}
	return objective.New(row.Title, row.Year, opts...), nil
}

func toDomainKeyResult(row *models.KeyResult) (*keyresult.KeyResult, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	objectiveID, err := uuid.Parse(row.ObjectiveID)
	if err != nil {
		return nil, err
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, err
	}

	return keyresult.New(
		row.Title,
		objectiveID,
		keyresult.WithID(id),
		keyresult.WithTenantID(tenantID),
		keyresult.WithMetricType(keyresult.MetricType(row.MetricType)),
		keyresult.WithCurrentValue(row.CurrentValue),
		keyresult.WithTargetValue(row.TargetValue),
		keyresult.WithInitialValue(row.InitialValue),
		keyresult.WithUnit(mapping.SQLNullStringToPointer(row.Unit)),
		keyresult.WithProgress(row.Progress),
		keyresult.WithWeight(row.Weight),
		keyresult.WithStatus(keyresult.Status(row.Status)),
		keyresult.WithCreatedAt(row.CreatedAt),
		keyresult.WithUpdatedAt(row.UpdatedAt),
	), nil
}

func toDomainBigRock(row *models.BigRock) (*bigrock.BigRock, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, err
	}

	return bigrock.New(
		row.Title,
		row.Year,
		bigrock.WithID(id),
		bigrock.WithTenantID(tenantID),
		bigrock.WithObjectiveID(mapping.SQLNullStringToUUID(row.ObjectiveID)),
		bigrock.WithTeamID(mapping.SQLNullStringToUUID(row.TeamID)),
		bigrock.WithQuarter(mapping.SQLNullInt32ToPointer(row.Quarter)),
		bigrock.WithCompletionPercentage(row.CompletionPercentage),
		bigrock.WithStatus(bigrock.Status(row.Status)),
		bigrock.WithCreatedAt(row.CreatedAt),
		bigrock.WithUpdatedAt(row.UpdatedAt),
	), nil
}

func toDomainTeam(row *models.Team) (*team.Team, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, err
	}

	return team.New(
		row.Name,
		team.WithID(id),
		team.WithTenantID(tenantID),
		team.WithDescription(mapping.SQLNullStringToPointer(row.Description)),
		team.WithLeaderEmail(mapping.SQLNullStringToPointer(row.LeaderEmail)),
		team.WithCreatedAt(row.CreatedAt),
		team.WithUpdatedAt(row.UpdatedAt),
	), nil
}

func toDomainCheckIn(row *models.CheckIn) (*checkin.CheckIn, error) {
	id, err := uuid.Parse(row.ID)
	if err != nil {
		return nil, err
	}
	tenantID, err := uuid.Parse(row.TenantID)
	if err != nil {
		return nil, err
	}
	entityID, err := uuid.Parse(row.EntityID)
	if err != nil {
		return nil, err
	}

	opts := []checkin.Option{
		checkin.WithID(id),
		checkin.WithTenantID(tenantID),
		checkin.WithPreviousValue(row.PreviousValue),
		checkin.WithNewValue(row.NewValue),
		checkin.WithPreviousProgress(row.PreviousProgress),
		checkin.WithNewProgress(row.NewProgress),
		checkin.WithNote(mapping.SQLNullStringToPointer(row.Note)),
		checkin.WithSource(row.Source),
		checkin.WithAsOfDate(row.AsOfDate),
		checkin.WithCreatedAt(row.CreatedAt),
	}
	if row.Status.Valid {
		opts = append(opts, checkin.WithStatus(row.Status.String))
	}
	return checkin.New(checkin.EntityType(row.EntityType), entityID, opts...), nil
}
