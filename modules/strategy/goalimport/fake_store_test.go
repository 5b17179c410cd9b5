package goalimport

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/checkin"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
)

// fakeStore is the in-memory EntityStore used by the engine tests.
// failTitles forces a store error for specific titles so per-record
// failure handling can be exercised.
type fakeStore struct {
	objectives map[uuid.UUID]*objective.Objective
	keyResults map[uuid.UUID]*keyresult.KeyResult
	bigRocks   map[uuid.UUID]*bigrock.BigRock
	teams      map[uuid.UUID]*team.Team
	checkIns   []*checkin.CheckIn

	failTitles map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objectives: map[uuid.UUID]*objective.Objective{},
		keyResults: map[uuid.UUID]*keyresult.KeyResult{},
		bigRocks:   map[uuid.UUID]*bigrock.BigRock{},
		teams:      map[uuid.UUID]*team.Team{},
		failTitles: map[string]bool{},
	}
}

func (s *fakeStore) CreateObjective(_ context.Context, data *objective.Objective) (*objective.Objective, error) {
	if s.failTitles[data.Title()] {
		return nil, errors.New("store rejected objective")
	}
	s.objectives[data.ID()] = data
	return data, nil
}

func (s *fakeStore) UpdateObjective(_ context.Context, data *objective.Objective) (*objective.Objective, error) {
	if _, ok := s.objectives[data.ID()]; !ok {
		return nil, errors.New("objective not found")
	}
	s.objectives[data.ID()] = data
	return data, nil
}

func (s *fakeStore) GetObjectivesByTenant(_ context.Context) ([]*objective.Objective, error) {
	out := make([]*objective.Objective, 0, len(s.objectives))
	for _, o := range s.objectives {
		out = append(out, o)
	}
	return out, nil
}

func (s *fakeStore) CreateKeyResult(_ context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	if s.failTitles[data.Title()] {
		return nil, errors.New("store rejected key result")
	}
	s.keyResults[data.ID()] = data
	return data, nil
}

func (s *fakeStore) UpdateKeyResult(_ context.Context, data *keyresult.KeyResult) (*keyresult.KeyResult, error) {
	if _, ok := s.keyResults[data.ID()]; !ok {
		return nil, errors.New("key result not found")
	}
	s.keyResults[data.ID()] = data
	return data, nil
}

func (s *fakeStore) GetKeyResultsByObjective(_ context.Context, objectiveID uuid.UUID) ([]*keyresult.KeyResult, error) {
	var out []*keyresult.KeyResult
	for _, kr := range s.keyResults {
		if kr.ObjectiveID() == objectiveID {
			out = append(out, kr)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateBigRock(_ context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	if s.failTitles[data.Title()] {
		return nil, errors.New("store rejected big rock")
	}
	s.bigRocks[data.ID()] = data
	return data, nil
}

func (s *fakeStore) UpdateBigRock(_ context.Context, data *bigrock.BigRock) (*bigrock.BigRock, error) {
	if _, ok := s.bigRocks[data.ID()]; !ok {
		return nil, errors.New("big rock not found")
	}
	s.bigRocks[data.ID()] = data
	return data, nil
}

func (s *fakeStore) GetBigRocksByTenant(_ context.Context) ([]*bigrock.BigRock, error) {
	out := make([]*bigrock.BigRock, 0, len(s.bigRocks))
	for _, b := range s.bigRocks {
		out = append(out, b)
	}
	return out, nil
}

func (s *fakeStore) CreateTeam(_ context.Context, data *team.Team) (*team.Team, error) {
	if s.failTitles[data.Name()] {
		return nil, errors.New("store rejected team")
	}
	s.teams[data.ID()] = data
	return data, nil
}

func (s *fakeStore) GetTeamByName(_ context.Context, name string) (*team.Team, error) {
	for _, t := range s.teams {
		if t.Name() == name {
			return t, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateCheckIn(_ context.Context, data *checkin.CheckIn) (*checkin.CheckIn, error) {
	s.checkIns = append(s.checkIns, data)
	return data, nil
}
