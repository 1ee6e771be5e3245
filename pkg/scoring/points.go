package scoring

// PointsTable holds the points earned by finishing position, starting from first place.
var PointsTable = []int{10, 8, 6, 4, 2, 1}

// PointsFor returns the points of a 1-based finishing position.
// Positions outside the table, including zero and negatives, are worth nothing.
func PointsFor(position int) int {
	if position < 1 || position > len(PointsTable) {
		return 0
	}
	return PointsTable[position-1]
}
