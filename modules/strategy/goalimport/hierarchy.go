package goalimport

import (
	"sort"
)

// depthUnresolvable caps the depth computation when a parent chain
// cycles or never reaches a resolvable root. Items landing here are
// imported as roots with a warning rather than dropped.
const depthUnresolvable = 1 << 16

// splitGoalItems partitions the flat goal-item list by kind. Items with
// an unknown kind are returned separately for reporting.
func splitGoalItems(items []SourceGoalItem) (outcomes, metrics, initiatives, unknown []*SourceGoalItem) {
	for i := range items {
		item := &items[i]
		switch item.Kind {
		case KindOutcome:
			outcomes = append(outcomes, item)
		case KindMetric:
			metrics = append(metrics, item)
		case KindInitiative:
			initiatives = append(initiatives, item)
		default:
			unknown = append(unknown, item)
		}
	}
	return outcomes, metrics, initiatives, unknown
}

// splitRoots separates outcome items with no parent references from
// those that declare one. Roots are sorted by title for reproducible
// output ordering.
func splitRoots(outcomes []*SourceGoalItem) (roots, children []*SourceGoalItem) {
	for _, item := range outcomes {
		if item.firstParent() == "" {
			roots = append(roots, item)
		} else {
			children = append(children, item)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Title < roots[j].Title })
	return roots, children
}

// orderChildren sorts child outcome items so that every parent is
// processed strictly before its children: ascending by depth within
// this batch, tie-broken by title. Depth is 0 when the first parent is
// already resolved (or absent from the batch entirely), else one more
// than the parent's depth, with a visited-set guarding against cycles.
func orderChildren(children []*SourceGoalItem, resolved EntityMap) []*SourceGoalItem {
	byID := make(map[string]*SourceGoalItem, len(children))
	for _, item := range children {
		if id := item.ID.String(); id != "" {
			byID[id] = item
		}
	}

	depths := make(map[string]int, len(children))
	var depthOf func(item *SourceGoalItem, visiting map[string]bool) int
	depthOf = func(item *SourceGoalItem, visiting map[string]bool) int {
		id := item.ID.String()
		if d, ok := depths[id]; ok {
			return d
		}
		if visiting[id] {
			depths[id] = depthUnresolvable
			return depthUnresolvable
		}
		visiting[id] = true
		defer delete(visiting, id)

		parentID := item.firstParent()
		var d int
		if _, ok := resolved[parentID]; ok {
			d = 0
		} else if parent, ok := byID[parentID]; ok {
			pd := depthOf(parent, visiting)
			if pd >= depthUnresolvable {
				d = depthUnresolvable
			} else {
				d = pd + 1
			}
		} else {
			// Parent is neither resolved nor in this batch; the item
			// falls back to root level during reconciliation.
			d = 0
		}
		depths[id] = d
		return d
	}

	for _, item := range children {
		depthOf(item, map[string]bool{})
	}

	ordered := make([]*SourceGoalItem, len(children))
	copy(ordered, children)
	sort.Slice(ordered, func(i, j int) bool {
		di, dj := depths[ordered[i].ID.String()], depths[ordered[j].ID.String()]
		if di != dj {
			return di < dj
		}
		return ordered[i].Title < ordered[j].Title
	})
	return ordered
}

// missingMetricParents returns the distinct parent ids declared by
// metric items that are absent from the correspondence table, sorted
// for deterministic placeholder synthesis. One placeholder is created
// per missing id, however many orphans share it.
func missingMetricParents(metrics []*SourceGoalItem, resolved EntityMap) []string {
	seen := make(map[string]bool)
	var missing []string
	for _, item := range metrics {
		parentID := item.firstParent()
		if parentID == "" || seen[parentID] {
			continue
		}
		if _, ok := resolved[parentID]; !ok {
			seen[parentID] = true
			missing = append(missing, parentID)
		}
	}
	sort.Strings(missing)
	return missing
}
