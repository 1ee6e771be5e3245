package filters

// Query parameters for the scoreboard.
type ScoreboardQueryParams struct {
	Year int `form:"year" binding:"omitempty,min=1900,max=3000"`
}

// Filters used on the scoreboard.
// A zero year returns every year.
type ScoreboardFilter struct {
	Year int
}

// NewScoreboardFilter creates the scoreboard filter from the query.
func NewScoreboardFilter(qp ScoreboardQueryParams) *ScoreboardFilter {
	return &ScoreboardFilter{Year: qp.Year}
}
