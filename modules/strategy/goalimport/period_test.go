package goalimport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestPeriodParser_Patterns(t *testing.T) {
	t.Parallel()

	parser := newPeriodParser(nil, 1)

	tests := []struct {
		label    string
		expected Period
	}{
		{"Q1 2024", Period{Quarter: intPtr(1), Year: 2024}},
		{"2024 Q3", Period{Quarter: intPtr(3), Year: 2024}},
		{"Quarter 2 2024", Period{Quarter: intPtr(2), Year: 2024}},
		{"Quarter 2 FY24", Period{Quarter: intPtr(2), Year: 2024}},
		{"3Q24", Period{Quarter: intPtr(3), Year: 2024}},
		{"4Q2025", Period{Quarter: intPtr(4), Year: 2025}},
		{"FY25 Q2", Period{Quarter: intPtr(2), Year: 2025}},
		{"FY2025 Q2", Period{Quarter: intPtr(2), Year: 2025}},
		{"Annual 2024", Period{Year: 2024}},
		{"FY 2026", Period{Year: 2026}},
		{"2024", Period{Year: 2024}},
		{"March 2024", Period{Quarter: intPtr(1), Year: 2024}},
		{"November 2023", Period{Quarter: intPtr(4), Year: 2023}},
		{"Fiscal 2024 - quarter 2", Period{Quarter: intPtr(2), Year: 2024}},
		{"  Q1 2024  ", Period{Quarter: intPtr(1), Year: 2024}},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, warning := parser.Parse(tt.label)
			assert.Empty(t, warning)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPeriodParser_Fallback(t *testing.T) {
	t.Parallel()

	parser := newPeriodParser(nil, 1)
	got, warning := parser.Parse("whenever we get to it")

	assert.NotEmpty(t, warning)
	assert.Nil(t, got.Quarter)
	assert.Equal(t, time.Now().Year(), got.Year)
}

func TestPeriodParser_GroundTruthWins(t *testing.T) {
	t.Parallel()

	periods := []SourcePeriod{
		{ID: "p1", Label: "Q1 2024", StartDate: "2024-07-01", EndDate: "2024-09-30"},
	}
	parser := newPeriodParser(periods, 1)

	// The collection says this label actually starts in July, so the
	// collection wins over the textual Q1.
	got, warning := parser.Parse("Q1 2024")
	require.Empty(t, warning)
	require.NotNil(t, got.Quarter)
	assert.Equal(t, 3, *got.Quarter)
	assert.Equal(t, 2024, got.Year)
}

func TestPeriodParser_FiscalYearStart(t *testing.T) {
	t.Parallel()

	periods := []SourcePeriod{
		{ID: "p1", Label: "FY Q1", StartDate: "2024-07-01"},
	}
	parser := newPeriodParser(periods, 7)

	got, warning := parser.Parse("FY Q1")
	require.Empty(t, warning)
	require.NotNil(t, got.Quarter)
	assert.Equal(t, 1, *got.Quarter)
}

func TestParseYear_TwoDigit(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2024, parseYear("24"))
	assert.Equal(t, 2024, parseYear("2024"))
	assert.Equal(t, 2009, parseYear("09"))
}
