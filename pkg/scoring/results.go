package scoring

import (
	"slices"

	"github.com/google/uuid"
)

// Lap is the minimum lap information the aggregation needs.
type Lap struct {
	DriverID uuid.UUID
	LapTime  float64
}

// Result is the ranked outcome of one driver in one race.
type Result struct {
	RaceID   uuid.UUID `json:"raceId"`
	DriverID uuid.UUID `json:"driverId"`
	BestLap  float64   `json:"bestLap"`
	Position int       `json:"position"`
	Points   int       `json:"points"`
}

// AggregateRace reduces the laps of a race to one ranked result per driver.
//
// Each driver is ranked by its best lap, fastest first. Equal best laps are not
// given a shared rank: the driver seen first on the input keeps the higher position,
// so callers should pass laps in recording order. Positions are always 1..N.
func AggregateRace(raceID uuid.UUID, laps []Lap) []Result {
	if len(laps) == 0 {
		return nil
	}

	best := make(map[uuid.UUID]int, len(laps))
	results := make([]Result, 0, len(laps))

	for _, lap := range laps {
		idx, seen := best[lap.DriverID]
		if !seen {
			best[lap.DriverID] = len(results)
			results = append(results, Result{RaceID: raceID, DriverID: lap.DriverID, BestLap: lap.LapTime})
			continue
		}

		if lap.LapTime < results[idx].BestLap {
			results[idx].BestLap = lap.LapTime
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.BestLap < b.BestLap:
			return -1
		case a.BestLap > b.BestLap:
			return 1
		}
		return 0
	})

	for i := range results {
		results[i].Position = i + 1
		results[i].Points = PointsFor(i + 1)
	}

	return results
}
