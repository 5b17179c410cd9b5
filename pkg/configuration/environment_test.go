package configuration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalImportOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    GoalImportOptions
		wantErr bool
	}{
		{"defaults", GoalImportOptions{DefaultStrategy: "skip", FiscalYearStartMonth: 1}, false},
		{"merge strategy", GoalImportOptions{DefaultStrategy: "merge", FiscalYearStartMonth: 7}, false},
		{"bad strategy", GoalImportOptions{DefaultStrategy: "upsert", FiscalYearStartMonth: 1}, true},
		{"month too low", GoalImportOptions{DefaultStrategy: "skip", FiscalYearStartMonth: 0}, true},
		{"month too high", GoalImportOptions{DefaultStrategy: "skip", FiscalYearStartMonth: 13}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestConfiguration_ValidateRLS(t *testing.T) {
	c := &Configuration{RLSEnforce: "ENFORCE", Database: DatabaseOptions{User: "vega_app"}}
	require.NoError(t, c.validateRLS())
	assert.Equal(t, "enforce", c.RLSEnforce)

	c = &Configuration{RLSEnforce: "enforce", Database: DatabaseOptions{User: "postgres"}}
	require.Error(t, c.validateRLS())

	c = &Configuration{RLSEnforce: "whatever"}
	require.Error(t, c.validateRLS())
}
