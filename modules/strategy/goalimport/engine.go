package goalimport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/bigrock"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
)

// Importer reconciles a goal-tracking export archive into the strategy
// model. One Import call is one sequential batch run; the phases are
// strictly ordered because each later phase resolves references through
// the correspondence table populated by earlier ones.
type Importer struct {
	store EntityStore
}

func NewImporter(store EntityStore) *Importer {
	return &Importer{store: store}
}

// run carries the state of a single import: the correspondence table,
// the result accumulator and the duplicate-lookup indexes. It is never
// shared between runs.
type run struct {
	imp    *Importer
	ctx    context.Context
	opts   Options
	parser *periodParser
	log    *logrus.Entry

	collections *rawCollections
	result      *Result

	// levels tracks the hierarchy level assigned to each imported
	// objective, keyed by source id, so children can sit one below
	// their parent.
	levels map[string]int

	existingObjectives map[string]*objective.Objective
	existingBigRocks   map[string]*bigrock.BigRock

	unparentedPlaceholder *uuid.UUID
}

// Import runs the whole reconciliation. The returned error is non-nil
// only when the archive container itself cannot be read; every
// per-record problem is aggregated into the Result instead.
func (i *Importer) Import(ctx context.Context, archive []byte, opts Options) (*Result, error) {
	if opts.DuplicateStrategy == "" {
		opts.DuplicateStrategy = StrategySkip
	}

	log, ok := composables.TryUseLogger(ctx)
	if !ok {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("tenant", opts.TenantID)

	result := &Result{
		Status:    StatusSuccess,
		EntityMap: EntityMap{},
	}

	collections, memberErrors, err := readArchive(archive)
	if err != nil {
		result.Status = StatusFailed
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}
	result.Errors = append(result.Errors, memberErrors...)

	r := &run{
		imp:         i,
		ctx:         ctx,
		opts:        opts,
		parser:      newPeriodParser(collections.Periods, opts.FiscalYearStartMonth),
		log:         log,
		collections: collections,
		result:      result,
		levels:      map[string]int{},
	}

	if err := r.loadExisting(); err != nil {
		result.Status = StatusFailed
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	if opts.ImportTeams {
		log.WithField("teams", len(collections.Teams)).Info("importing teams")
		r.resolveTeams()
	}

	outcomes, metrics, initiatives, unknown := splitGoalItems(collections.GoalItems)
	for _, item := range unknown {
		r.warn(fmt.Sprintf("goal item %q (%s) has unknown kind %q, skipping", item.Title, item.ID, item.Kind))
		r.skip("goal_item", item.Title, item.ID.String())
	}

	roots, children := splitRoots(outcomes)
	log.WithFields(logrus.Fields{
		"roots": len(roots), "children": len(children),
		"metrics": len(metrics), "initiatives": len(initiatives),
	}).Info("importing goal items")

	for _, item := range roots {
		r.importObjective(item, 0, nil)
	}
	for _, item := range orderChildren(children, result.EntityMap) {
		r.importChildObjective(item)
	}
	r.importMetrics(metrics)
	r.importInitiatives(initiatives)

	if opts.ImportCheckIns {
		log.WithField("checkins", len(collections.CheckIns)).Info("importing check-ins")
		r.importCheckIns()
	}

	if len(result.Warnings) > 0 || len(result.Errors) > 0 {
		result.Status = StatusPartial
	}
	log.WithFields(logrus.Fields{
		"status":   result.Status,
		"warnings": len(result.Warnings),
		"errors":   len(result.Errors),
	}).Info("import finished")
	return result, nil
}

// loadExisting pre-builds the duplicate-lookup indexes for the tenant:
// objectives by title, big rocks by title plus period.
func (r *run) loadExisting() error {
	objectives, err := r.imp.store.GetObjectivesByTenant(r.ctx)
	if err != nil {
		return err
	}
	r.existingObjectives = make(map[string]*objective.Objective, len(objectives))
	for _, o := range objectives {
		r.existingObjectives[o.Title()] = o
	}

	bigRocks, err := r.imp.store.GetBigRocksByTenant(r.ctx)
	if err != nil {
		return err
	}
	r.existingBigRocks = make(map[string]*bigrock.BigRock, len(bigRocks))
	for _, b := range bigRocks {
		r.existingBigRocks[bigRockKey(b.Title(), b.Quarter(), b.Year())] = b
	}
	return nil
}

func bigRockKey(title string, quarter *int, year int) string {
	q := 0
	if quarter != nil {
		q = *quarter
	}
	return fmt.Sprintf("%s|%d|%d", title, q, year)
}

func (r *run) register(sourceID string, entity MappedEntity) {
	if sourceID != "" {
		r.result.EntityMap[sourceID] = entity
	}
}

func (r *run) warn(msg string) {
	r.result.Warnings = append(r.result.Warnings, msg)
	r.log.Warn(msg)
}

func (r *run) fail(kind, title, sourceID string, err error) {
	msg := fmt.Sprintf("%s %q (%s): %v", kind, title, sourceID, err)
	r.result.Errors = append(r.result.Errors, msg)
	r.result.SkippedItems = append(r.result.SkippedItems, SkippedItem{Type: kind, Title: title, SourceID: sourceID})
	r.log.WithError(err).Warnf("%s %q failed", kind, title)
}

func (r *run) skip(kind, title, sourceID string) {
	r.result.SkippedItems = append(r.result.SkippedItems, SkippedItem{Type: kind, Title: title, SourceID: sourceID})
}

// importObjective reconciles one outcome item at the given level with
// the given parent. Duplicates match by title within the tenant.
func (r *run) importObjective(item *SourceGoalItem, level int, parentID *uuid.UUID) {
	period, warning := r.parser.Parse(item.Period)
	if warning != "" {
		r.warn(fmt.Sprintf("objective %q: %s", item.Title, warning))
	}
	teamID := r.resolveTeamRef(item.Teams)

	if existing, ok := r.existingObjectives[item.Title]; ok {
		switch r.opts.DuplicateStrategy {
		case StrategySkip:
			r.register(item.ID.String(), MappedEntity{Type: "objective", ID: existing.ID()})
			r.levels[item.ID.String()] = existing.Level()
			r.skip("objective", item.Title, item.ID.String())
			return
		case StrategyMerge:
			draft, err := mapObjective(item, period, level, parentID, teamID, r.opts)
			if err != nil {
				r.fail("objective", item.Title, item.ID.String(), err)
				return
			}
			merged, err := r.imp.store.UpdateObjective(r.ctx, withObjectiveID(draft, existing.ID()))
			if err != nil {
				r.fail("objective", item.Title, item.ID.String(), err)
				return
			}
			r.register(item.ID.String(), MappedEntity{Type: "objective", ID: merged.ID()})
			r.levels[item.ID.String()] = merged.Level()
			return
		}
	}

	draft, err := mapObjective(item, period, level, parentID, teamID, r.opts)
	if err != nil {
		r.fail("objective", item.Title, item.ID.String(), err)
		return
	}
	created, err := r.imp.store.CreateObjective(r.ctx, draft)
	if err != nil {
		r.fail("objective", item.Title, item.ID.String(), err)
		return
	}
	r.register(item.ID.String(), MappedEntity{Type: "objective", ID: created.ID()})
	r.levels[item.ID.String()] = level
	r.existingObjectives[created.Title()] = created
	r.result.Summary.ObjectivesCreated++
}

// importChildObjective resolves the declared parent through the
// correspondence table. A child whose parent never resolved falls back
// to root level with a warning.
func (r *run) importChildObjective(item *SourceGoalItem) {
	parentRef := item.firstParent()
	if mapped, ok := r.result.EntityMap[parentRef]; ok && mapped.Type == "objective" {
		parentID := mapped.ID
		r.importObjective(item, r.levels[parentRef]+1, &parentID)
		return
	}
	r.warn(fmt.Sprintf("objective %q: parent %s not found, importing at root level", item.Title, parentRef))
	r.importObjective(item, 0, nil)
}

// importMetrics runs the key-result phase. Before mapping, every
// distinct missing parent id gets exactly one synthesized placeholder
// objective so no metric is dropped for lack of a parent.
func (r *run) importMetrics(metrics []*SourceGoalItem) {
	for _, missingID := range missingMetricParents(metrics, r.result.EntityMap) {
		placeholder, created, err := r.resolvePlaceholder(missingID)
		if err != nil {
			r.fail("objective", placeholderTitle(missingID), missingID, err)
			continue
		}
		if created {
			r.warn(fmt.Sprintf("synthesized placeholder objective for missing parent %s", missingID))
		}
		r.register(missingID, MappedEntity{Type: "objective", ID: placeholder.ID()})
		r.levels[missingID] = placeholder.Level()
	}

	for _, item := range metrics {
		objectiveID, ok := r.metricParentID(item)
		if !ok {
			continue
		}
		r.importKeyResult(item, objectiveID)
	}
}

// resolvePlaceholder returns the placeholder objective for a missing
// reference, subject to the same duplicate rule as any other
// objective: an earlier run's placeholder matches by its deterministic
// title and is reused unless the create strategy is in force.
func (r *run) resolvePlaceholder(ref string) (*objective.Objective, bool, error) {
	if existing, ok := r.existingObjectives[placeholderTitle(ref)]; ok && r.opts.DuplicateStrategy != StrategyCreate {
		return existing, false, nil
	}
	created, err := r.imp.store.CreateObjective(r.ctx, newPlaceholderObjective(ref, Period{Year: time.Now().Year()}, r.opts))
	if err != nil {
		return nil, false, err
	}
	r.existingObjectives[created.Title()] = created
	r.result.Summary.ObjectivesCreated++
	return created, true, nil
}

// metricParentID resolves a metric's host objective, lazily creating a
// shared placeholder for metrics that declare no parent at all.
func (r *run) metricParentID(item *SourceGoalItem) (uuid.UUID, bool) {
	if parentRef := item.firstParent(); parentRef != "" {
		if mapped, ok := r.result.EntityMap[parentRef]; ok && mapped.Type == "objective" {
			return mapped.ID, true
		}
		r.fail("key_result", item.Title, item.ID.String(),
			fmt.Errorf("parent %s is not an imported objective", parentRef))
		return uuid.Nil, false
	}

	if r.unparentedPlaceholder == nil {
		placeholder, _, err := r.resolvePlaceholder("unparented metrics")
		if err != nil {
			r.fail("key_result", item.Title, item.ID.String(), err)
			return uuid.Nil, false
		}
		id := placeholder.ID()
		r.unparentedPlaceholder = &id
	}
	r.warn(fmt.Sprintf("metric %q has no parent, attached to placeholder objective", item.Title))
	return *r.unparentedPlaceholder, true
}

func (r *run) importKeyResult(item *SourceGoalItem, objectiveID uuid.UUID) {
	existingList, err := r.imp.store.GetKeyResultsByObjective(r.ctx, objectiveID)
	if err != nil {
		r.fail("key_result", item.Title, item.ID.String(), err)
		return
	}
	for _, existing := range existingList {
		if existing.Title() != item.Title {
			continue
		}
		switch r.opts.DuplicateStrategy {
		case StrategySkip:
			r.register(item.ID.String(), MappedEntity{
				Type:         "key_result",
				ID:           existing.ID(),
				TargetValue:  existing.TargetValue(),
				InitialValue: existing.InitialValue(),
			})
			r.skip("key_result", item.Title, item.ID.String())
			return
		case StrategyMerge:
			draft, err := mapKeyResult(item, objectiveID, r.opts)
			if err != nil {
				r.fail("key_result", item.Title, item.ID.String(), err)
				return
			}
			merged, err := r.imp.store.UpdateKeyResult(r.ctx, withKeyResultID(draft, existing.ID()))
			if err != nil {
				r.fail("key_result", item.Title, item.ID.String(), err)
				return
			}
			r.register(item.ID.String(), MappedEntity{
				Type:         "key_result",
				ID:           merged.ID(),
				TargetValue:  merged.TargetValue(),
				InitialValue: merged.InitialValue(),
			})
			return
		}
		break
	}

	draft, err := mapKeyResult(item, objectiveID, r.opts)
	if err != nil {
		r.fail("key_result", item.Title, item.ID.String(), err)
		return
	}
	created, err := r.imp.store.CreateKeyResult(r.ctx, draft)
	if err != nil {
		r.fail("key_result", item.Title, item.ID.String(), err)
		return
	}
	r.register(item.ID.String(), MappedEntity{
		Type:         "key_result",
		ID:           created.ID(),
		TargetValue:  created.TargetValue(),
		InitialValue: created.InitialValue(),
	})
	r.result.Summary.KeyResultsCreated++
}

// importInitiatives runs the big-rock phase. Unlike metrics,
// initiatives may exist without a parent objective.
func (r *run) importInitiatives(initiatives []*SourceGoalItem) {
	for _, item := range initiatives {
		period, warning := r.parser.Parse(item.Period)
		if warning != "" {
			r.warn(fmt.Sprintf("initiative %q: %s", item.Title, warning))
		}

		var objectiveID *uuid.UUID
		if parentRef := item.firstParent(); parentRef != "" {
			if mapped, ok := r.result.EntityMap[parentRef]; ok && mapped.Type == "objective" {
				id := mapped.ID
				objectiveID = &id
			} else {
				r.warn(fmt.Sprintf("initiative %q: parent %s not found, importing unlinked", item.Title, parentRef))
			}
		}
		teamID := r.resolveTeamRef(item.Teams)

		if existing, ok := r.existingBigRocks[bigRockKey(item.Title, period.Quarter, period.Year)]; ok {
			switch r.opts.DuplicateStrategy {
			case StrategySkip:
				r.register(item.ID.String(), MappedEntity{Type: "big_rock", ID: existing.ID()})
				r.skip("big_rock", item.Title, item.ID.String())
				continue
			case StrategyMerge:
				draft, err := mapBigRock(item, period, objectiveID, teamID, r.opts)
				if err != nil {
					r.fail("big_rock", item.Title, item.ID.String(), err)
					continue
				}
				merged, err := r.imp.store.UpdateBigRock(r.ctx, withBigRockID(draft, existing.ID()))
				if err != nil {
					r.fail("big_rock", item.Title, item.ID.String(), err)
					continue
				}
				r.register(item.ID.String(), MappedEntity{Type: "big_rock", ID: merged.ID()})
				continue
			}
		}

		draft, err := mapBigRock(item, period, objectiveID, teamID, r.opts)
		if err != nil {
			r.fail("big_rock", item.Title, item.ID.String(), err)
			continue
		}
		created, err := r.imp.store.CreateBigRock(r.ctx, draft)
		if err != nil {
			r.fail("big_rock", item.Title, item.ID.String(), err)
			continue
		}
		r.register(item.ID.String(), MappedEntity{Type: "big_rock", ID: created.ID()})
		r.existingBigRocks[bigRockKey(created.Title(), created.Quarter(), created.Year())] = created
		r.result.Summary.BigRocksCreated++
	}
}

// importCheckIns runs last so every referenced entity is already in the
// correspondence table.
func (r *run) importCheckIns() {
	for i := range r.collections.CheckIns {
		src := &r.collections.CheckIns[i]
		target, ok := r.result.EntityMap[src.GoalItem.String()]
		if !ok {
			r.warn(fmt.Sprintf("check-in %s: goal item %s was not imported, skipping", src.ID, src.GoalItem))
			r.skip("check_in", src.MetricName, src.ID.String())
			continue
		}
		if target.Type == "team" {
			r.warn(fmt.Sprintf("check-in %s: goal item %s resolved to a team, skipping", src.ID, src.GoalItem))
			r.skip("check_in", src.MetricName, src.ID.String())
			continue
		}

		draft, err := mapCheckIn(src, target, r.opts)
		if err != nil {
			r.fail("check_in", src.MetricName, src.ID.String(), err)
			continue
		}
		if _, err := r.imp.store.CreateCheckIn(r.ctx, draft); err != nil {
			r.fail("check_in", src.MetricName, src.ID.String(), err)
			continue
		}
		r.result.Summary.CheckInsCreated++
	}
}
