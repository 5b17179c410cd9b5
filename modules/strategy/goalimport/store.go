package goalimport

import (
	"context"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
)

// EntityStore is the narrow persistence surface the importer drives.
// Every call is tenant-scoped through the context and returns the
// persisted record with its assigned id. The production implementation
// adapts the strategy repositories; tests use an in-memory fake.
type EntityStore interface {
	CreateObjective(ctx context.Context, data *objective.Objective) (*objective.Objective, error)
	UpdateObjective(ctx context.Context, data *objective.Objective) (*objective.Objective, error)
	GetObjectivesByTenant(ctx context.Context) ([]*objective.Objective, error)

	CreateKeyResult(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error)
	UpdateKeyResult(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error)
	GetKeyResultsByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*keyresult.KeyResult, error)

	CreateBigRock(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error)
	UpdateBigRock(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error)
	GetBigRocksByTenant(ctx context.Context) ([]*bigrock.BigRock, error)

	CreateTeam(ctx context.Context, data *team.Team) (*team.Team, error)
	GetTeamByName(ctx context.Context, name string) (*team.Team, error)

	CreateCheckIn(ctx context.Context, data *checkin.CheckIn) (*checkin.CheckIn, error)
}
