package tactics

// HasLineOfSight returns true if no sight-blocking cell lies strictly between
// a and b on the grid. Endpoints never block. The ray is marched from both
// ends so the result is symmetric regardless of rounding direction.
func HasLineOfSight(tm *TileMap, a, b Position) bool {
	if !tm.InBounds(a) || !tm.InBounds(b) {
		return false
	}
	return rayClear(tm, a, b) && rayClear(tm, b, a)
}

// rayClear marches an integer Bresenham ray from a toward b and reports
// whether every intermediate cell is sight-transparent.
func rayClear(tm *TileMap, a, b Position) bool {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx := sign(b.X - a.X)
	sy := sign(b.Y - a.Y)

	x, y := a.X, a.Y
	err := dx - dy
	for {
		if x == b.X && y == b.Y {
			return true
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
		if x == b.X && y == b.Y {
			return true
		}
		if tm.BlocksSight(Position{X: x, Y: y}) {
			return false
		}
	}
}

// LaneClear returns true when every cell strictly between a and b along the
// straight ray in direction dir is walkable and unoccupied. It is the stricter
// check used for charge lanes: a charge traverses cells bodily, so anything
// that blocks movement blocks the charge even if it would not block sight.
func LaneClear(tm *TileMap, a, b, dir Position, occupied func(Position) bool) bool {
	if dir.IsZero() {
		return false
	}
	for p := a.Add(dir); p != b; p = p.Add(dir) {
		if !tm.IsWalkable(p) {
			return false
		}
		if occupied != nil && occupied(p) {
			return false
		}
	}
	return true
}
