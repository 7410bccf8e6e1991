package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeights(t *testing.T) {
	w, err := ParseWeights("Gls/90=0.5; Tck/90 = 0.25;;")
	require.NoError(t, err)
	assert.Equal(t, Weights{{Stat: "Gls/90", Weight: 0.5}, {Stat: "Tck/90", Weight: 0.25}}, w)
	assert.Equal(t, []string{"Gls/90", "Tck/90"}, w.Stats())
	assert.InDelta(t, 0.75, w.Total(), 1e-12)
}

func TestParseWeights_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing equals", "Gls/90"},
		{"missing stat", "=0.5"},
		{"bad number", "Gls/90=abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWeights(tt.input)
			assert.Error(t, err)
		})
	}
}

func TestCriteria_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       Criteria
		wantErr bool
	}{
		{"zero value", Criteria{}, false},
		{"valid ranges", Criteria{MinAge: 18, MaxAge: 23, MinSalary: 100, MaxSalary: 5000}, false},
		{"max age below min", Criteria{MinAge: 25, MaxAge: 20}, true},
		{"max salary below min", Criteria{MinSalary: 500, MaxSalary: 100}, true},
		{"negative apps", Criteria{MinApps: -1}, true},
		{"empty position code", Criteria{Positions: []string{"DC", ""}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
