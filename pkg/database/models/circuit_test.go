package models

import (
	"encoding/json"
	"testing"

	"familykarting/pkg/hours"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestCircuitSchedule(t *testing.T) {
	schedule := &hours.OperatingHours{
		Saturday: hours.DayHours{IsOpen: true, OpenTime: "09:00", CloseTime: "19:00"},
	}

	t.Run("unset", func(t *testing.T) {
		var circuit Circuit
		assert.Nil(t, circuit.Schedule())
	})

	t.Run("setAndClear", func(t *testing.T) {
		var circuit Circuit
		circuit.SetSchedule(schedule)
		assert.Equal(t, schedule, circuit.Schedule())

		circuit.SetSchedule(nil)
		assert.Nil(t, circuit.OperatingHours)
	})

	t.Run("columnRoundTrip", func(t *testing.T) {
		var circuit Circuit
		circuit.SetSchedule(schedule)

		value, err := circuit.OperatingHours.Value()
		require.NoError(t, err)

		var scanned datatypes.JSONType[hours.OperatingHours]
		require.NoError(t, scanned.Scan(value))
		assert.Equal(t, *schedule, scanned.Data())
	})

	t.Run("jsonShape", func(t *testing.T) {
		circuit := Circuit{Name: "Kartódromo de Baltar"}
		circuit.SetSchedule(schedule)

		raw, err := json.Marshal(circuit)
		require.NoError(t, err)

		var decoded struct {
			OperatingHours hours.OperatingHours `json:"operatingHours"`
		}
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, *schedule, decoded.OperatingHours)
	})
}
