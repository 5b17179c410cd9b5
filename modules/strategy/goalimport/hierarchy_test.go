package goalimport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitGoalItems(t *testing.T) {
	t.Parallel()

	items := []SourceGoalItem{
		{ID: "1", Kind: KindOutcome},
		{ID: "2", Kind: KindMetric},
		{ID: "3", Kind: KindInitiative},
		{ID: "4", Kind: "Mystery"},
	}
	outcomes, metrics, initiatives, unknown := splitGoalItems(items)
	assert.Len(t, outcomes, 1)
	assert.Len(t, metrics, 1)
	assert.Len(t, initiatives, 1)
	assert.Len(t, unknown, 1)
}

func TestSplitRoots_SortedByTitle(t *testing.T) {
	t.Parallel()

	outcomes := []*SourceGoalItem{
		{ID: "b", Title: "Beta"},
		{ID: "a", Title: "Alpha"},
		{ID: "c", Title: "Child", Parents: []FlexID{"a"}},
	}
	roots, children := splitRoots(outcomes)
	require.Len(t, roots, 2)
	assert.Equal(t, "Alpha", roots[0].Title)
	assert.Equal(t, "Beta", roots[1].Title)
	require.Len(t, children, 1)
	assert.Equal(t, "Child", children[0].Title)
}

func TestOrderChildren_ParentsFirst(t *testing.T) {
	t.Parallel()

	resolved := EntityMap{"root": {Type: "objective"}}
	children := []*SourceGoalItem{
		{ID: "grandchild", Title: "Grandchild", Parents: []FlexID{"child"}},
		{ID: "child", Title: "Child", Parents: []FlexID{"root"}},
		{ID: "greatgrandchild", Title: "Greatgrandchild", Parents: []FlexID{"grandchild"}},
	}
	ordered := orderChildren(children, resolved)

	positions := map[string]int{}
	for i, item := range ordered {
		positions[item.ID.String()] = i
	}
	assert.Less(t, positions["child"], positions["grandchild"])
	assert.Less(t, positions["grandchild"], positions["greatgrandchild"])
}

func TestOrderChildren_CycleDoesNotRecurseForever(t *testing.T) {
	t.Parallel()

	children := []*SourceGoalItem{
		{ID: "a", Title: "A", Parents: []FlexID{"b"}},
		{ID: "b", Title: "B", Parents: []FlexID{"a"}},
		{ID: "ok", Title: "OK", Parents: []FlexID{"elsewhere"}},
	}
	ordered := orderChildren(children, EntityMap{})

	require.Len(t, ordered, 3)
	// The item whose parent is simply absent sorts before the cyclic
	// pair, which land at the unresolvable depth.
	assert.Equal(t, "ok", ordered[0].ID.String())
}

func TestMissingMetricParents_Deduplicated(t *testing.T) {
	t.Parallel()

	metrics := []*SourceGoalItem{
		{ID: "m1", Parents: []FlexID{"ghost"}},
		{ID: "m2", Parents: []FlexID{"ghost"}},
		{ID: "m3", Parents: []FlexID{"known"}},
		{ID: "m4"},
	}
	resolved := EntityMap{"known": {Type: "objective"}}

	missing := missingMetricParents(metrics, resolved)
	assert.Equal(t, []string{"ghost"}, missing)
}

func TestImport_CyclicParentsStillImport(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			outcomeItem("a", "Alpha", "b"),
			outcomeItem("b", "Beta", "a"),
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, result.Summary.ObjectivesCreated)
	assert.Equal(t, StatusPartial, result.Status)

	// Whichever side imported first fell back to root; the other links
	// to it. No parent chain may cycle.
	for _, o := range store.objectives {
		seen := map[string]bool{}
		current := o
		for current.ParentID() != nil {
			id := current.ParentID().String()
			require.False(t, seen[id], "cycle in stored parent chain")
			seen[id] = true
			current = store.objectives[*current.ParentID()]
			require.NotNil(t, current)
		}
	}
}
