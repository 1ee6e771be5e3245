package dto

import (
	"familykarting/pkg/database/models"
	"familykarting/pkg/hours"

	"github.com/google/uuid"
)

// CircuitInput is the body for creating or replacing a circuit.
type CircuitInput struct {
	Name           string                `json:"name" binding:"required,max=200"`
	Description    string                `json:"description"`
	PhotoURL       string                `json:"photoUrl" binding:"omitempty,url"`
	Length         *int                  `json:"length" binding:"omitempty,gt=0"`
	URL            string                `json:"url" binding:"omitempty,url"`
	Type           string                `json:"type" binding:"omitempty,oneof=outdoor indoor"`
	LocationLat    *float64              `json:"locationLat" binding:"omitempty,gte=-90,lte=90"`
	LocationLong   *float64              `json:"locationLong" binding:"omitempty,gte=-180,lte=180"`
	Status         string                `json:"status" binding:"omitempty,oneof=active inactive"`
	Timezone       *string               `json:"timezone"`
	OperatingHours *hours.OperatingHours `json:"operatingHours"`
}

// ToModel applies the input over a circuit, defaulting the enums.
func (in *CircuitInput) ToModel(circuit *models.Circuit) {
	circuit.Name = in.Name
	circuit.Description = in.Description
	circuit.PhotoURL = in.PhotoURL
	circuit.Length = in.Length
	circuit.URL = in.URL
	circuit.LocationLat = in.LocationLat
	circuit.LocationLong = in.LocationLong
	circuit.Timezone = in.Timezone
	circuit.SetSchedule(in.OperatingHours)

	circuit.Type = in.Type
	if circuit.Type == "" {
		circuit.Type = models.CircuitTypeOutdoor
	}

	circuit.Status = in.Status
	if circuit.Status == "" {
		circuit.Status = models.CircuitStatusActive
	}
}

// BestLap is the fastest lap recorded on a scope.
type BestLap struct {
	LapTime    float64   `json:"lapTime"`
	DriverID   uuid.UUID `json:"driverId"`
	DriverName string    `json:"driverName"`
	RaceID     uuid.UUID `json:"raceId"`
}

// CircuitDetail is a circuit with its races and record lap.
type CircuitDetail struct {
	Circuit *models.Circuit `json:"circuit"`
	BestLap *BestLap        `json:"bestLap"`
	Races   []models.Race   `json:"races"`
}

// CircuitHours is the schedule of a circuit evaluated at the request time.
type CircuitHours struct {
	OperatingHours *hours.OperatingHours `json:"operatingHours"`
	Status         *hours.Status         `json:"status"`
}
