package goalimport

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/keyresult"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/domain/aggregates/objective"
)

func flexNum(raw string) FlexNumber {
	return FlexNumber{Raw: raw, Set: true}
}

func metricItem(title string, progress string, outcome *SourceOutcome) *SourceGoalItem {
	return &SourceGoalItem{
		ID:       FlexID("m-" + title),
		Title:    title,
		Kind:     KindMetric,
		Progress: flexNum(progress),
		Status:   "On Track",
		Outcome:  outcome,
	}
}

func TestTranslateStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, objective.StatusOnTrack, translateStatus("On Track"))
	assert.Equal(t, objective.StatusAtRisk, translateStatus("At Risk"))
	assert.Equal(t, objective.StatusBehind, translateStatus("Behind"))
	assert.Equal(t, objective.StatusCompleted, translateStatus("Closed"))
	assert.Equal(t, objective.StatusNotStarted, translateStatus("Not Started"))
	assert.Equal(t, objective.StatusNotStarted, translateStatus("Doing Great"))
	assert.Equal(t, objective.StatusNotStarted, translateStatus(""))
}

func TestParseNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected float64
	}{
		{"45", 45},
		{"16,108", 16108},
		{"1 250", 1250},
		{"0.25", 0.25},
		{"-3.5", -3.5},
	}
	for _, tt := range tests {
		got, err := parseNumeric(flexNum(tt.raw))
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.expected, got, tt.raw)
	}

	_, err := parseNumeric(flexNum("not a number"))
	assert.Error(t, err)

	got, err := parseNumeric(FlexNumber{})
	require.NoError(t, err)
	assert.Zero(t, got)
}

func TestMetricTypeFromTarget(t *testing.T) {
	t.Parallel()

	assert.Equal(t, keyresult.MetricTypeDecrease, metricTypeFromTarget("Stay below"))
	assert.Equal(t, keyresult.MetricTypeDecrease, metricTypeFromTarget("at most"))
	assert.Equal(t, keyresult.MetricTypeMaintain, metricTypeFromTarget("Maintain at"))
	assert.Equal(t, keyresult.MetricTypeMaintain, metricTypeFromTarget("keep at"))
	assert.Equal(t, keyresult.MetricTypeComplete, metricTypeFromTarget("Complete"))
	assert.Equal(t, keyresult.MetricTypeComplete, metricTypeFromTarget("finish"))
	assert.Equal(t, keyresult.MetricTypeIncrease, metricTypeFromTarget("Reach"))
	assert.Equal(t, keyresult.MetricTypeIncrease, metricTypeFromTarget(""))
}

func TestProgressModeFromConfig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, objective.ProgressModeRollup, progressModeFromConfig("Aggregate from child goals"))
	assert.Equal(t, objective.ProgressModeRollup, progressModeFromConfig("rollup"))
	assert.Equal(t, objective.ProgressModeManual, progressModeFromConfig("Manually entered"))
	assert.Equal(t, objective.ProgressModeManual, progressModeFromConfig(""))
}

func TestMapKeyResult_PercentageBranch(t *testing.T) {
	t.Parallel()

	item := metricItem("Conversion rate", "45", &SourceOutcome{Type: "Percentage"})
	kr, err := mapKeyResult(item, uuid.New(), Options{TenantID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, 45.0, kr.CurrentValue())
	assert.Equal(t, 100.0, kr.TargetValue())
	require.NotNil(t, kr.Unit())
	assert.Equal(t, "%", *kr.Unit())
}

func TestMapKeyResult_MetricPercentageInterpolation(t *testing.T) {
	t.Parallel()

	// start 0, target 100, progress 45: 45 is read as a percentage and
	// interpolates to a current value of 45.
	item := metricItem("Widgets", "45", &SourceOutcome{
		Type:   "Metric",
		Start:  flexNum("0"),
		Target: flexNum("100"),
	})
	kr, err := mapKeyResult(item, uuid.New(), Options{TenantID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, 45.0, kr.CurrentValue())
	assert.Equal(t, 100.0, kr.TargetValue())
	assert.Equal(t, 0.0, kr.InitialValue())
}

func TestMapKeyResult_MetricAbsoluteValue(t *testing.T) {
	t.Parallel()

	// progress 16108 against target 20000 exceeds 100, so it is already
	// the absolute current value.
	item := metricItem("Revenue", "16,108", &SourceOutcome{
		Type:   "Metric",
		Start:  flexNum("0"),
		Target: flexNum("20,000"),
	})
	kr, err := mapKeyResult(item, uuid.New(), Options{TenantID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, 16108.0, kr.CurrentValue())
	assert.Equal(t, 20000.0, kr.TargetValue())
}

func TestMapKeyResult_LargeTargetMidRangeValue(t *testing.T) {
	t.Parallel()

	// 90 does not exceed 100, but target 2000 > 100, 90 > 10 and
	// 90 >= 20, so the range rule reads it as absolute.
	item := metricItem("Signups", "90", &SourceOutcome{
		Type:   "Metric",
		Start:  flexNum("0"),
		Target: flexNum("2000"),
	})
	kr, err := mapKeyResult(item, uuid.New(), Options{TenantID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, 90.0, kr.CurrentValue())
}

func TestMapKeyResult_DecreaseInterpolation(t *testing.T) {
	t.Parallel()

	// Decrease from 80 to 20, 50% of the way: 80 - 60*0.5 = 50.
	item := metricItem("Defect count", "50", &SourceOutcome{
		Type:       "Metric",
		Start:      flexNum("80"),
		Target:     flexNum("20"),
		TargetType: "Stay below",
	})
	kr, err := mapKeyResult(item, uuid.New(), Options{TenantID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, keyresult.MetricTypeDecrease, kr.MetricType())
	assert.Equal(t, 50.0, kr.CurrentValue())
}

func TestMapKeyResult_UnitInference(t *testing.T) {
	t.Parallel()

	explicit := metricItem("MRR", "40", &SourceOutcome{
		Type: "Metric", Start: flexNum("0"), Target: flexNum("100"), MetricUnit: "USD",
	})
	kr, err := mapKeyResult(explicit, uuid.New(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "USD", *kr.Unit())

	inferredPercent := metricItem("Adoption", "40", &SourceOutcome{
		Type: "Metric", Start: flexNum("0"), Target: flexNum("100"),
	})
	kr, err = mapKeyResult(inferredPercent, uuid.New(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "%", *kr.Unit())

	inferredNumber := metricItem("Tickets", "40", &SourceOutcome{
		Type: "Metric", Start: flexNum("10"), Target: flexNum("60"),
	})
	kr, err = mapKeyResult(inferredNumber, uuid.New(), Options{})
	require.NoError(t, err)
	assert.Equal(t, "Number", *kr.Unit())
}

func TestMapKeyResult_MalformedNumber(t *testing.T) {
	t.Parallel()

	item := metricItem("Broken", "n/a", &SourceOutcome{Type: "Percentage"})
	_, err := mapKeyResult(item, uuid.New(), Options{})
	assert.Error(t, err)
}

func TestMapCheckIn_KeyResultProgress(t *testing.T) {
	t.Parallel()

	target := MappedEntity{Type: "key_result", ID: uuid.New(), InitialValue: 0, TargetValue: 200}
	src := &SourceCheckIn{ID: "c1", CurrentValue: flexNum("50"), Status: "On Track"}

	ci, err := mapCheckIn(src, target, Options{TenantID: uuid.New()})
	require.NoError(t, err)

	assert.Equal(t, 50.0, ci.NewValue())
	assert.Equal(t, 25.0, ci.NewProgress())
	assert.Zero(t, ci.PreviousValue())
	assert.Zero(t, ci.PreviousProgress())
}

func TestMapCheckIn_OverAchievementNotClamped(t *testing.T) {
	t.Parallel()

	target := MappedEntity{Type: "key_result", ID: uuid.New(), InitialValue: 0, TargetValue: 100}
	src := &SourceCheckIn{ID: "c2", CurrentValue: flexNum("130")}

	ci, err := mapCheckIn(src, target, Options{})
	require.NoError(t, err)
	assert.Equal(t, 130.0, ci.NewProgress())
}

func TestMapCheckIn_ObjectiveTarget(t *testing.T) {
	t.Parallel()

	target := MappedEntity{Type: "objective", ID: uuid.New()}
	src := &SourceCheckIn{ID: "c3", CurrentValue: flexNum("60")}

	ci, err := mapCheckIn(src, target, Options{})
	require.NoError(t, err)
	assert.Equal(t, 60.0, ci.NewProgress())
}

func TestNewPlaceholderObjective(t *testing.T) {
	t.Parallel()

	o := newPlaceholderObjective("src-42", Period{Year: 2024}, Options{TenantID: uuid.New()})

	assert.True(t, o.IsPlaceholder())
	assert.Contains(t, o.Title(), "[Placeholder]")
	assert.Contains(t, o.Title(), "src-42")
}
