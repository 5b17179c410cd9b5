package goalimport

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/entities/team"
)

// resolveTeams imports the archive's team collection. Teams match by
// name; the store exposes no team update, so merge behaves like skip
// for this phase.
func (r *run) resolveTeams() {
	teams := make([]SourceTeam, len(r.collections.Teams))
	copy(teams, r.collections.Teams)
	sort.Slice(teams, func(i, j int) bool { return teams[i].Name < teams[j].Name })

	for i := range teams {
		src := &teams[i]
		if src.Name == "" {
			r.warn("team " + src.ID.String() + " has no name, skipping")
			continue
		}

		existing, err := r.imp.store.GetTeamByName(r.ctx, src.Name)
		if err != nil {
			r.fail("team", src.Name, src.ID.String(), err)
			continue
		}
		if existing != nil {
			r.register(src.ID.String(), MappedEntity{Type: "team", ID: existing.ID()})
			if r.opts.DuplicateStrategy != StrategyCreate {
				r.skip("team", src.Name, src.ID.String())
				continue
			}
		}

		created, err := r.imp.store.CreateTeam(r.ctx, newTeamDraft(src, r.opts))
		if err != nil {
			r.fail("team", src.Name, src.ID.String(), err)
			continue
		}
		r.register(src.ID.String(), MappedEntity{Type: "team", ID: created.ID()})
		r.result.Summary.TeamsCreated++
	}
}

func newTeamDraft(src *SourceTeam, opts Options) *team.Team {
	var description *string
	if src.Description != "" {
		description = &src.Description
	}
	var leaderEmail *string
	if email := ownerEmail(src.Owners, ""); email != "" {
		leaderEmail = &email
	}
	now := time.Now()
	return team.New(
		src.Name,
		team.WithID(uuid.New()),
		team.WithTenantID(opts.TenantID),
		team.WithDescription(description),
		team.WithLeaderEmail(leaderEmail),
		team.WithCreatedAt(now),
		team.WithUpdatedAt(now),
	)
}

// resolveTeamRef maps a goal item's first resolvable team reference to
// an imported team id. When none resolves the entity imports team-less
// with a warning; the export carries only team ids at this point, so
// there is no name to create a team from.
func (r *run) resolveTeamRef(refs []FlexID) *uuid.UUID {
	var unresolved string
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if mapped, ok := r.result.EntityMap[ref.String()]; ok && mapped.Type == "team" {
			id := mapped.ID
			return &id
		}
		unresolved = ref.String()
	}
	if unresolved != "" {
		r.warn(fmt.Sprintf("team reference %s does not resolve to an imported team", unresolved))
	}
	return nil
}
