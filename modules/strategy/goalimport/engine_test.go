package goalimport

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildArchive zips the given members; values are JSON-encoded unless
// already raw bytes.
func buildArchive(t *testing.T, members map[string]any) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, value := range members {
		f, err := w.Create(name)
		require.NoError(t, err)
		switch v := value.(type) {
		case []byte:
			_, err = f.Write(v)
		default:
			var payload []byte
			payload, err = json.Marshal(v)
			require.NoError(t, err)
			_, err = f.Write(payload)
		}
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func testOptions() Options {
	return Options{
		TenantID:          uuid.New(),
		UserID:            uuid.New(),
		UserEmail:         "importer@example.com",
		DuplicateStrategy: StrategySkip,
		ImportCheckIns:    true,
		ImportTeams:       true,
	}
}

func outcomeItem(id, title string, parents ...string) map[string]any {
	item := map[string]any{
		"id":       id,
		"title":    title,
		"type":     KindOutcome,
		"period":   "Q1 2024",
		"status":   "On Track",
		"progress": 10,
	}
	if len(parents) > 0 {
		item["parents"] = parents
	}
	return item
}

func TestImport_FailedOnUnreadableArchive(t *testing.T) {
	t.Parallel()

	importer := NewImporter(newFakeStore())
	result, err := importer.Import(context.Background(), []byte("not a zip"), testOptions())

	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.Zero(t, result.Summary.ObjectivesCreated)
}

func TestImport_CreatesHierarchy(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"export/objectives.json": []any{
			outcomeItem("o1", "Grow revenue"),
			outcomeItem("o2", "Expand EMEA", "o1"),
			outcomeItem("o3", "Enter DACH market", "o2"),
			map[string]any{
				"id": "k1", "title": "ARR", "type": KindMetric,
				"parents": []string{"o2"}, "progress": 45, "status": "On Track",
				"outcome": map[string]any{"type": "Metric", "start": 0, "target": 100},
			},
			map[string]any{
				"id": "p1", "title": "Hire Berlin team", "type": KindInitiative,
				"parents": []string{"o3"}, "period": "Q1 2024", "progress": 30,
			},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 3, result.Summary.ObjectivesCreated)
	assert.Equal(t, 1, result.Summary.KeyResultsCreated)
	assert.Equal(t, 1, result.Summary.BigRocksCreated)

	// Parent before child: every child's parent id must belong to an
	// already stored objective.
	for _, o := range store.objectives {
		if o.ParentID() == nil {
			continue
		}
		_, ok := store.objectives[*o.ParentID()]
		assert.True(t, ok, "objective %q has a dangling parent", o.Title())
	}

	// Levels follow the declared chain.
	byTitle := map[string]int{}
	for _, o := range store.objectives {
		byTitle[o.Title()] = o.Level()
	}
	assert.Equal(t, 0, byTitle["Grow revenue"])
	assert.Equal(t, 1, byTitle["Expand EMEA"])
	assert.Equal(t, 2, byTitle["Enter DACH market"])

	// No dangling references anywhere in the correspondence table.
	for sourceID, mapped := range result.EntityMap {
		switch mapped.Type {
		case "objective":
			_, ok := store.objectives[mapped.ID]
			assert.True(t, ok, sourceID)
		case "key_result":
			_, ok := store.keyResults[mapped.ID]
			assert.True(t, ok, sourceID)
		case "big_rock":
			_, ok := store.bigRocks[mapped.ID]
			assert.True(t, ok, sourceID)
		}
	}
}

func TestImport_IdempotentUnderSkip(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			outcomeItem("o1", "Grow revenue"),
			outcomeItem("o2", "Expand EMEA", "o1"),
			map[string]any{
				"id": "k1", "title": "ARR", "type": KindMetric,
				"parents": []string{"o1"}, "progress": 45, "status": "On Track",
				"outcome": map[string]any{"type": "Percentage"},
			},
		},
		"Teams.json": []any{
			map[string]any{"id": "t1", "name": "Sales"},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	opts := testOptions()

	first, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)
	require.Equal(t, 2, first.Summary.ObjectivesCreated)
	require.Equal(t, 1, first.Summary.KeyResultsCreated)
	require.Equal(t, 1, first.Summary.TeamsCreated)

	second, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)

	assert.Zero(t, second.Summary.ObjectivesCreated)
	assert.Zero(t, second.Summary.KeyResultsCreated)
	assert.Zero(t, second.Summary.TeamsCreated)
	assert.Len(t, store.objectives, 2)
	assert.Len(t, store.keyResults, 1)
	assert.Len(t, store.teams, 1)

	// Run 2 maps every source id to the run-1 target.
	for sourceID, mapped := range first.EntityMap {
		assert.Equal(t, mapped.ID, second.EntityMap[sourceID].ID, sourceID)
	}
}

func TestImport_MergeUpdatesExisting(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{outcomeItem("o1", "Grow revenue")},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	opts := testOptions()

	first, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)
	firstID := first.EntityMap["o1"].ID

	opts.DuplicateStrategy = StrategyMerge
	second, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)

	assert.Equal(t, firstID, second.EntityMap["o1"].ID)
	assert.Zero(t, second.Summary.ObjectivesCreated)
	assert.Len(t, store.objectives, 1)
}

func TestImport_PartialOnMalformedRecord(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			outcomeItem("o1", "Grow revenue"),
			map[string]any{
				"id": "k1", "title": "Broken metric", "type": KindMetric,
				"parents": []string{"o1"}, "progress": "forty-five",
				"outcome": map[string]any{"type": "Percentage"},
			},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 1, result.Summary.ObjectivesCreated)
	assert.Zero(t, result.Summary.KeyResultsCreated)
	require.Len(t, result.SkippedItems, 1)
	assert.Equal(t, "Broken metric", result.SkippedItems[0].Title)
	assert.Len(t, store.objectives, 1)
}

func TestImport_OrphanMetricsShareOnePlaceholder(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			map[string]any{
				"id": "k1", "title": "Metric A", "type": KindMetric,
				"parents": []string{"ghost"}, "progress": 10,
				"outcome": map[string]any{"type": "Percentage"},
			},
			map[string]any{
				"id": "k2", "title": "Metric B", "type": KindMetric,
				"parents": []string{"ghost"}, "progress": 20,
				"outcome": map[string]any{"type": "Percentage"},
			},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	// Exactly one placeholder for the shared missing parent.
	placeholders := 0
	var placeholderID uuid.UUID
	for _, o := range store.objectives {
		if o.IsPlaceholder() {
			placeholders++
			placeholderID = o.ID()
		}
	}
	require.Equal(t, 1, placeholders)

	// Both metrics are linked to it rather than dropped.
	assert.Equal(t, 2, result.Summary.KeyResultsCreated)
	for _, kr := range store.keyResults {
		assert.Equal(t, placeholderID, kr.ObjectiveID())
	}
}

func TestImport_UnresolvedParentFallsBackToRoot(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			outcomeItem("o1", "Child of nothing", "missing-parent"),
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 1, result.Summary.ObjectivesCreated)
	assert.NotEmpty(t, result.Warnings)
	for _, o := range store.objectives {
		assert.Nil(t, o.ParentID())
		assert.Equal(t, 0, o.Level())
	}
}

func TestImport_BadMemberDoesNotAbortRun(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{outcomeItem("o1", "Grow revenue")},
		"checkins.json":   []byte(`{"not": "an array"}`),
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 1, result.Summary.ObjectivesCreated)
	assert.NotEmpty(t, result.Errors)
}

func TestImport_CheckInsResolveThroughEntityMap(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			outcomeItem("o1", "Grow revenue"),
			map[string]any{
				"id": "k1", "title": "ARR", "type": KindMetric,
				"parents": []string{"o1"}, "progress": 0, "status": "On Track",
				"outcome": map[string]any{"type": "Metric", "start": 0, "target": 200},
			},
		},
		"checkins.json": []any{
			map[string]any{
				"id": "c1", "goalItem": "k1", "currentValue": 50,
				"status": "On Track", "activityDate": "2024-02-10",
			},
			map[string]any{
				"id": "c2", "goalItem": "never-imported", "currentValue": 10,
			},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	require.Equal(t, 1, result.Summary.CheckInsCreated)
	require.Len(t, store.checkIns, 1)
	ci := store.checkIns[0]
	assert.Equal(t, result.EntityMap["k1"].ID, ci.EntityID())
	assert.Equal(t, 50.0, ci.NewValue())
	assert.Equal(t, 25.0, ci.NewProgress())
	assert.Equal(t, StatusPartial, result.Status) // c2 warned
}

func TestImport_StoreFailureIsRecordLevel(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			outcomeItem("o1", "Good objective"),
			outcomeItem("o2", "Cursed objective"),
		},
	})

	store := newFakeStore()
	store.failTitles["Cursed objective"] = true
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 1, result.Summary.ObjectivesCreated)
	require.Len(t, result.SkippedItems, 1)
	assert.Equal(t, "Cursed objective", result.SkippedItems[0].Title)
	assert.NotContains(t, result.EntityMap, "o2")
}

func TestImport_PlaceholderReusedOnReimportUnderSkip(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			map[string]any{
				"id": "k1", "title": "Orphan metric", "type": KindMetric,
				"parents": []string{"ghost"}, "progress": 10,
				"outcome": map[string]any{"type": "Percentage"},
			},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	opts := testOptions()

	first, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)
	require.Equal(t, 1, first.Summary.ObjectivesCreated)
	require.Equal(t, 1, first.Summary.KeyResultsCreated)

	second, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)

	assert.Zero(t, second.Summary.ObjectivesCreated)
	assert.Zero(t, second.Summary.KeyResultsCreated)
	assert.Len(t, store.objectives, 1)
	assert.Len(t, store.keyResults, 1)

	// Run 2 resolves the missing parent to the run-1 placeholder.
	assert.Equal(t, first.EntityMap["ghost"].ID, second.EntityMap["ghost"].ID)
	assert.Equal(t, first.EntityMap["k1"].ID, second.EntityMap["k1"].ID)
}

func TestImport_UnparentedPlaceholderReusedOnReimport(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{
			map[string]any{
				"id": "k1", "title": "Floating metric", "type": KindMetric,
				"progress": 10,
				"outcome":  map[string]any{"type": "Percentage"},
			},
		},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	opts := testOptions()

	_, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)

	second, err := importer.Import(context.Background(), archive, opts)
	require.NoError(t, err)

	assert.Zero(t, second.Summary.ObjectivesCreated)
	assert.Zero(t, second.Summary.KeyResultsCreated)
	assert.Len(t, store.objectives, 1)
	assert.Len(t, store.keyResults, 1)
}

func TestImport_UnresolvedTeamRefWarns(t *testing.T) {
	t.Parallel()

	item := outcomeItem("o1", "Grow revenue")
	item["teams"] = []string{"t-ghost"}
	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{item},
	})

	store := newFakeStore()
	importer := NewImporter(store)
	result, err := importer.Import(context.Background(), archive, testOptions())
	require.NoError(t, err)

	assert.Equal(t, StatusPartial, result.Status)
	assert.Equal(t, 1, result.Summary.ObjectivesCreated)
	require.NotEmpty(t, result.Warnings)
	assert.Contains(t, result.Warnings[0], "t-ghost")
	for _, o := range store.objectives {
		assert.Nil(t, o.TeamID())
	}
}
