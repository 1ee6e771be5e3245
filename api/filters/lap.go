package filters

import "github.com/google/uuid"

// Query parameters for the lap listing.
type LapQueryParams struct {
	RaceID   string `form:"race_id" binding:"omitempty,uuid"`
	DriverID string `form:"driver_id" binding:"omitempty,uuid"`
}

// Filters used on the lap repository.
type LapFilter struct {
	RaceID   *uuid.UUID
	DriverID *uuid.UUID
}

// NewLapFilter creates the lap filter from the query.
func NewLapFilter(qp LapQueryParams) *LapFilter {
	filter := &LapFilter{}

	if id, err := uuid.Parse(qp.RaceID); err == nil {
		filter.RaceID = &id
	}
	if id, err := uuid.Parse(qp.DriverID); err == nil {
		filter.DriverID = &id
	}

	return filter
}
