package goalimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadArchive_ClassifiesBySubstring(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"export/ACME TimePeriods (2024).json": []any{map[string]any{"id": "p1", "label": "Q1 2024"}},
		"export/ACME Teams.json":              []any{map[string]any{"id": "t1", "name": "Sales"}},
		"export/ACME Users.json":              []any{map[string]any{"id": "u1", "email": "a@b.c"}},
		"export/acme-objectives-dump.json":    []any{map[string]any{"id": "o1", "title": "Goal", "type": "Outcome"}},
		"export/acme-checkins-dump.json":      []any{map[string]any{"id": "c1", "goalItem": "o1"}},
		"export/README.txt":                   []byte("ignore me"),
	})

	collections, memberErrors, err := readArchive(archive)
	require.NoError(t, err)
	assert.Empty(t, memberErrors)

	assert.Len(t, collections.Periods, 1)
	assert.Len(t, collections.Teams, 1)
	assert.Len(t, collections.Users, 1)
	assert.Len(t, collections.GoalItems, 1)
	assert.Len(t, collections.CheckIns, 1)
	assert.Equal(t, "Sales", collections.Teams[0].Name)
}

func TestReadArchive_MissingMembersLeaveEmptyCollections(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{},
	})

	collections, memberErrors, err := readArchive(archive)
	require.NoError(t, err)
	assert.Empty(t, memberErrors)
	assert.Empty(t, collections.Periods)
	assert.Empty(t, collections.Teams)
	assert.Empty(t, collections.CheckIns)
}

func TestReadArchive_BadMemberIsIsolated(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []any{map[string]any{"id": "o1", "title": "Goal", "type": "Outcome"}},
		"Teams.json":      []byte("{not json at all"),
	})

	collections, memberErrors, err := readArchive(archive)
	require.NoError(t, err)
	require.Len(t, memberErrors, 1)
	assert.Contains(t, memberErrors[0], "Teams.json")
	assert.Len(t, collections.GoalItems, 1)
}

func TestReadArchive_NotAZip(t *testing.T) {
	t.Parallel()

	_, _, err := readArchive([]byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestFlexTypes(t *testing.T) {
	t.Parallel()

	archive := buildArchive(t, map[string]any{
		"objectives.json": []byte(`[
			{"id": 12345, "title": "Numeric id", "type": "Outcome", "progress": "12,500",
			 "owners": ["jo@example.com", {"name": "Sam", "email": "sam@example.com"}],
			 "parents": [67890]}
		]`),
	})

	collections, memberErrors, err := readArchive(archive)
	require.NoError(t, err)
	require.Empty(t, memberErrors)
	require.Len(t, collections.GoalItems, 1)

	item := collections.GoalItems[0]
	assert.Equal(t, "12345", item.ID.String())
	assert.Equal(t, "67890", item.firstParent())
	assert.Equal(t, "12,500", item.Progress.Raw)
	require.Len(t, item.Owners, 2)
	assert.Equal(t, "jo@example.com", item.Owners[0].Email)
	assert.Equal(t, "sam@example.com", item.Owners[1].Email)
}
