package dto

import (
	"time"

	"familykarting/pkg/database/models"

	"github.com/google/uuid"
)

// DriverInput is the body for creating or replacing a driver.
type DriverInput struct {
	Name     string     `json:"name" binding:"required,max=200"`
	Birthday *time.Time `json:"birthday"`
	PhotoURL string     `json:"photoUrl" binding:"omitempty,url"`
}

// ToModel applies the input over a driver.
func (in *DriverInput) ToModel(driver *models.Driver) {
	driver.Name = in.Name
	driver.Birthday = in.Birthday
	driver.PhotoURL = in.PhotoURL
}

// DriverRaceResult is a single race of a driver.
type DriverRaceResult struct {
	RaceID      uuid.UUID `json:"raceId"`
	RaceDate    time.Time `json:"raceDate"`
	RaceType    string    `json:"raceType"`
	CircuitName string    `json:"circuitName"`
	Position    *int      `json:"position"`
	Points      *int      `json:"points"`
}

// DriverDetail is a driver with its career totals.
// Totals only count competitive races, testing sessions are listed but ignored.
type DriverDetail struct {
	Driver      *models.Driver     `json:"driver"`
	TotalPoints int                `json:"totalPoints"`
	RacesCount  int                `json:"racesCount"`
	Wins        int                `json:"wins"`
	BestLap     *float64           `json:"bestLap"`
	Results     []DriverRaceResult `json:"results"`
}

// DriverSummary is a driver on the listing.
type DriverSummary struct {
	models.Driver
	TotalPoints int `json:"totalPoints"`
	RacesCount  int `json:"racesCount"`
}
