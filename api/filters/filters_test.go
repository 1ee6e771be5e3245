package filters

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewRaceFilter(t *testing.T) {
	circuitID := uuid.New()

	tests := []struct {
		name     string
		params   RaceQueryParams
		expected *RaceFilter
	}{
		{
			name:     "defaults",
			params:   RaceQueryParams{},
			expected: &RaceFilter{Limit: 100},
		},
		{
			name:     "limitCapped",
			params:   RaceQueryParams{Limit: 500, Offset: 10},
			expected: &RaceFilter{Limit: 100, Offset: 10},
		},
		{
			name:     "full",
			params:   RaceQueryParams{Status: "done", RaceType: "race", CircuitID: circuitID.String(), Year: 2025, Limit: 20},
			expected: &RaceFilter{Status: "done", RaceType: "race", CircuitID: &circuitID, Year: 2025, Limit: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewRaceFilter(tt.params))
		})
	}
}

func TestNewLapFilter(t *testing.T) {
	raceID := uuid.New()

	filter := NewLapFilter(LapQueryParams{RaceID: raceID.String(), DriverID: "not-a-uuid"})

	assert.Equal(t, &raceID, filter.RaceID)
	assert.Nil(t, filter.DriverID)
}

func TestNewScoreboardFilter(t *testing.T) {
	assert.Equal(t, &ScoreboardFilter{Year: 2026}, NewScoreboardFilter(ScoreboardQueryParams{Year: 2026}))
	assert.Equal(t, &CircuitFilter{Status: "active"}, NewCircuitFilter(CircuitQueryParams{Status: "active"}))
}
