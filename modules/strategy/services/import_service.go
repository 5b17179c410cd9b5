package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/goalimport"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

var (
	importRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goal_import_runs_total",
		Help: "Completed goal-data import runs by final status.",
	}, []string{"status"})
	importEntities = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "goal_import_entities_created_total",
		Help: "Entities created by goal-data imports.",
	}, []string{"type"})
)

// ImportCompletedEvent is published on the event bus after every
// finished import run, successful or partial.
type ImportCompletedEvent struct {
	TenantID uuid.UUID
	Result   *goalimport.Result
}

// ImportService runs a goal-data import inside one tenant-scoped
// transaction: either the whole run commits, or (on an archive-fatal
// error) nothing does. Record-level failures do not roll back, they are
// part of the committed result.
type ImportService struct {
	objectives objective.Repository
	keyResults keyresult.Repository
	bigRocks   bigrock.Repository
	teams      team.Repository
	checkIns   checkin.Repository
	publisher  eventbus.EventBus
}

func NewImportService(
	objectives objective.Repository,
	keyResults keyresult.Repository,
	bigRocks bigrock.Repository,
	teams team.Repository,
	checkIns checkin.Repository,
	publisher eventbus.EventBus,
) *ImportService {
	return &ImportService{
		objectives: objectives,
		keyResults: keyResults,
		bigRocks:   bigRocks,
		teams:      teams,
		checkIns:   checkIns,
		publisher:  publisher,
	}
}

func (s *ImportService) Import(ctx context.Context, archive []byte, opts goalimport.Options) (*goalimport.Result, error) {
	result, err := composables.InTenantTxResult(ctx, func(txCtx context.Context) (*goalimport.Result, error) {
		importer := goalimport.NewImporter(&storeAdapter{
			objectives: s.objectives,
			keyResults: s.keyResults,
			bigRocks:   s.bigRocks,
			teams:      s.teams,
			checkIns:   s.checkIns,
		})
		return importer.Import(txCtx, archive, opts)
	})
	if result != nil {
		importRuns.WithLabelValues(string(result.Status)).Inc()
		importEntities.WithLabelValues("objective").Add(float64(result.Summary.ObjectivesCreated))
		importEntities.WithLabelValues("key_result").Add(float64(result.Summary.KeyResultsCreated))
		importEntities.WithLabelValues("big_rock").Add(float64(result.Summary.BigRocksCreated))
		importEntities.WithLabelValues("team").Add(float64(result.Summary.TeamsCreated))
		importEntities.WithLabelValues("check_in").Add(float64(result.Summary.CheckInsCreated))
	}
	if err != nil {
		return result, err
	}
	s.publisher.Publish("import.completed", &ImportCompletedEvent{
		TenantID: opts.TenantID,
		Result:   result,
	})
	return result, nil
}

// storeAdapter narrows the strategy repositories to the importer's
// EntityStore contract.
type storeAdapter struct {
	objectives objective.Repository
	keyResults keyresult.Repository
	bigRocks   bigrock.Repository
	teams      team.Repository
	checkIns   checkin.Repository
}

func (a *storeAdapter) CreateObjective(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	return a.objectives.Create(ctx, data)
}

func (a *storeAdapter) UpdateObjective(ctx context.Context, data *objective.Objective) (*objective.Objective, error) {
	return a.objectives.Update(ctx, data)
}

func (a *storeAdapter) GetObjectivesByTenant(ctx context.Context) ([]*objective.Objective, error) {
	return a.objectives.GetAll(ctx)
}

func (a *storeAdapter) CreateKeyResult(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	return a.keyResults.Create(ctx, data)
}

func (a *storeAdapter) UpdateKeyResult(ctx context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	return a.keyResults.Update(ctx, data)
}

func (a *storeAdapter) GetKeyResultsByObjective(ctx context.Context, objectiveID uuid.UUID) ([]*keyresult.KeyResult, error) {
	return a.keyResults.GetByObjective(ctx, objectiveID)
}

func (a *storeAdapter) CreateBigRock(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	return a.bigRocks.Create(ctx, data)
}

func (a *storeAdapter) UpdateBigRock(ctx context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	return a.bigRocks.Update(ctx, data)
}

func (a *storeAdapter) GetBigRocksByTenant(ctx context.Context) ([]*bigrock.BigRock, error) {
	return a.bigRocks.GetByTenant(ctx)
}

func (a *storeAdapter) CreateTeam(ctx context.Context, data *team.Team) (*team.Team, error) {
	return a.teams.Create(ctx, data)
}

// GetTeamByName translates the repository's not-found sentinel into the
// nil, nil convention the importer expects.
func (a *storeAdapter) GetTeamByName(ctx context.Context, name string) (*team.Team, error) {
	found, err := a.teams.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, persistence.ErrTeamNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return found, nil
}

func (a *storeAdapter) CreateCheckIn(ctx context.Context, data *checkin.CheckIn) (*checkin.CheckIn, error) {
	return a.checkIns.Create(ctx, data)
}
