package dto

import (
	"time"

	"familykarting/pkg/database/models"

	"github.com/google/uuid"
)

// LapEntry is a lap submitted along with a race or a batch.
type LapEntry struct {
	DriverID uuid.UUID `json:"driverId" binding:"required"`
	LapTime  float64   `json:"lapTime" binding:"required,gt=0"`
}

// RaceInput is the body for creating or replacing a race.
// Drivers registers participants, laps are only accepted on creation.
type RaceInput struct {
	RaceDate      time.Time   `json:"raceDate" binding:"required"`
	Status        string      `json:"status" binding:"omitempty,oneof=planned scheduled done"`
	RaceType      string      `json:"raceType" binding:"omitempty,oneof=race testing"`
	CircuitID     uuid.UUID   `json:"circuitId" binding:"required"`
	Description   string      `json:"description"`
	AttachmentURL string      `json:"attachmentUrl" binding:"omitempty,url"`
	DriverIDs     []uuid.UUID `json:"driverIds"`
	Laps          []LapEntry  `json:"laps" binding:"omitempty,dive"`
}

// ToModel applies the input over a race, defaulting the enums.
func (in *RaceInput) ToModel(race *models.Race) {
	race.RaceDate = in.RaceDate
	race.CircuitID = in.CircuitID
	race.Description = in.Description
	race.AttachmentURL = in.AttachmentURL

	race.Status = in.Status
	if race.Status == "" {
		race.Status = models.RaceStatusPlanned
	}

	race.RaceType = in.RaceType
	if race.RaceType == "" {
		race.RaceType = models.RaceTypeRace
	}
}

// RaceResult is a ranked participant of a race.
type RaceResult struct {
	DriverID   uuid.UUID `json:"driverId"`
	DriverName string    `json:"driverName"`
	Position   *int      `json:"position"`
	Points     *int      `json:"points"`
	BestLap    *float64  `json:"bestLap"`
}

// RaceDetail is a race with its circuit, results and laps.
type RaceDetail struct {
	Race    *models.Race `json:"race"`
	Results []RaceResult `json:"results"`
	Laps    []models.Lap `json:"laps"`
}
