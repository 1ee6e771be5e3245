package scoring

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Race types, shared with the persisted races.
const (
	RaceTypeRace    = "race"
	RaceTypeTesting = "testing"
)

// ResultRow is a persisted race result joined with the race it belongs to.
type ResultRow struct {
	RaceID      uuid.UUID
	DriverID    uuid.UUID
	DriverName  string
	CircuitName string
	Position    *int
	Points      *int
	RaceDate    time.Time
	RaceType    string

	// Location of the circuit, nil when unknown.
	Location *time.Location
}

// Entry is the standing of one driver on a leaderboard.
type Entry struct {
	DriverID    uuid.UUID `json:"driverId"`
	DriverName  string    `json:"driverName"`
	TotalPoints int       `json:"totalPoints"`
	RacesCount  int       `json:"racesCount"`
	Wins        int       `json:"wins"`
}

// DriverResult is a single counted result, used for drill down.
type DriverResult struct {
	RaceID      uuid.UUID `json:"raceId"`
	RaceDate    time.Time `json:"raceDate"`
	CircuitName string    `json:"circuitName"`
	Position    *int      `json:"position"`
	Points      int       `json:"points"`
}

// Board is a leaderboard plus the results behind it.
type Board struct {
	Entries []Entry                      `json:"entries"`
	Results map[uuid.UUID][]DriverResult `json:"results"`
}

// Scoreboard holds the overall standings and one board per year.
type Scoreboard struct {
	Overall Board         `json:"overall"`
	Yearly  map[int]Board `json:"yearly"`
	Years   []int         `json:"years"`
}

// boardBuilder accumulates entries keeping the first-seen order of the drivers.
type boardBuilder struct {
	index   map[uuid.UUID]int
	entries []Entry
	results map[uuid.UUID][]DriverResult
}

func newBoardBuilder() *boardBuilder {
	return &boardBuilder{
		index:   make(map[uuid.UUID]int),
		results: make(map[uuid.UUID][]DriverResult),
	}
}

func (b *boardBuilder) add(row ResultRow, points int) {
	idx, exists := b.index[row.DriverID]
	if !exists {
		idx = len(b.entries)
		b.index[row.DriverID] = idx
		b.entries = append(b.entries, Entry{DriverID: row.DriverID, DriverName: row.DriverName})
	}

	entry := &b.entries[idx]
	entry.TotalPoints += points
	entry.RacesCount++
	if row.Position != nil && *row.Position == 1 {
		entry.Wins++
	}

	b.results[row.DriverID] = append(b.results[row.DriverID], DriverResult{
		RaceID:      row.RaceID,
		RaceDate:    row.RaceDate,
		CircuitName: row.CircuitName,
		Position:    row.Position,
		Points:      points,
	})
}

func (b *boardBuilder) build() Board {
	// Drivers tied on points keep the order they were first seen.
	slices.SortStableFunc(b.entries, func(x, y Entry) int {
		return y.TotalPoints - x.TotalPoints
	})

	for _, results := range b.results {
		slices.SortStableFunc(results, func(x, y DriverResult) int {
			return y.RaceDate.Compare(x.RaceDate)
		})
	}

	entries := b.entries
	if entries == nil {
		entries = []Entry{}
	}

	return Board{Entries: entries, Results: b.results}
}

// BuildScoreboard folds race results into the overall and yearly leaderboards.
// Testing sessions never count. The year of a race is taken from its date on the
// circuit's timezone, falling back to loc.
func BuildScoreboard(rows []ResultRow, loc *time.Location) Scoreboard {
	if loc == nil {
		loc = time.Local
	}

	overall := newBoardBuilder()
	yearly := make(map[int]*boardBuilder)

	for _, row := range rows {
		if row.RaceType == RaceTypeTesting {
			continue
		}

		points := 0
		if row.Points != nil {
			points = *row.Points
		}

		overall.add(row, points)

		year := RaceYear(row.RaceDate, row.Location, loc)
		builder, exists := yearly[year]
		if !exists {
			builder = newBoardBuilder()
			yearly[year] = builder
		}
		builder.add(row, points)
	}

	scoreboard := Scoreboard{
		Overall: overall.build(),
		Yearly:  make(map[int]Board, len(yearly)),
		Years:   make([]int, 0, len(yearly)),
	}

	for year, builder := range yearly {
		scoreboard.Yearly[year] = builder.build()
		scoreboard.Years = append(scoreboard.Years, year)
	}

	slices.Sort(scoreboard.Years)
	slices.Reverse(scoreboard.Years)

	return scoreboard
}

// RaceYear is the calendar year of a race on the circuit location, or fallback when unknown.
func RaceYear(date time.Time, circuit *time.Location, fallback *time.Location) int {
	if circuit != nil {
		return date.In(circuit).Year()
	}
	if fallback != nil {
		return date.In(fallback).Year()
	}
	return date.Year()
}
