package filters

// Query parameters for the circuit listing.
type CircuitQueryParams struct {
	Status string `form:"status" binding:"omitempty,oneof=active inactive"`
	Type   string `form:"type" binding:"omitempty,oneof=outdoor indoor"`
}

// Filters used on the circuit repository.
type CircuitFilter struct {
	Status string
	Type   string
}

// NewCircuitFilter creates the circuit filter from the query.
func NewCircuitFilter(qp CircuitQueryParams) *CircuitFilter {
	return &CircuitFilter{
		Status: qp.Status,
		Type:   qp.Type,
	}
}
