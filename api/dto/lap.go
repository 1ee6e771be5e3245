package dto

import "github.com/google/uuid"

// LapInput is the body for creating or replacing a single lap.
type LapInput struct {
	RaceID   uuid.UUID `json:"raceId" binding:"required"`
	DriverID uuid.UUID `json:"driverId" binding:"required"`
	LapTime  float64   `json:"lapTime" binding:"required,gt=0"`
}

// LapBatchInput creates many laps of the same race at once.
type LapBatchInput struct {
	RaceID uuid.UUID  `json:"raceId" binding:"required"`
	Laps   []LapEntry `json:"laps" binding:"required,min=1,dive"`
}
