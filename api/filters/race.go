package filters

import "github.com/google/uuid"

// Query parameters for the race listing.
type RaceQueryParams struct {
	Status    string `form:"status" binding:"omitempty,oneof=planned scheduled done"`
	RaceType  string `form:"race_type" binding:"omitempty,oneof=race testing"`
	CircuitID string `form:"circuit_id" binding:"omitempty,uuid"`
	Year      int    `form:"year" binding:"omitempty,min=1900,max=3000"`
	Limit     int    `form:"limit,default=100" binding:"omitempty,min=1"`
	Offset    int    `form:"offset,default=0" binding:"omitempty,min=0"`
}

// Filters used on the race repository.
type RaceFilter struct {
	Status    string
	RaceType  string
	CircuitID *uuid.UUID
	Year      int
	// Timezone used for the year of races whose circuit has none.
	Timezone string
	Limit    int
	Offset   int
}

// NewRaceFilter creates the race filter from the query.
// The binding already validated the circuit id.
func NewRaceFilter(qp RaceQueryParams) *RaceFilter {
	// Set to the default maximum.
	// Could use max on the form, but that would return a error.
	if qp.Limit <= 0 || qp.Limit > 100 {
		qp.Limit = 100
	}

	filter := &RaceFilter{
		Status:   qp.Status,
		RaceType: qp.RaceType,
		Year:     qp.Year,
		Limit:    qp.Limit,
		Offset:   qp.Offset,
	}

	if id, err := uuid.Parse(qp.CircuitID); err == nil {
		filter.CircuitID = &id
	}

	return filter
}
