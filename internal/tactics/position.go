package tactics

// Position is an integer cell coordinate on the dungeon grid.
// It is a value type: all arithmetic returns a new Position.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}

// Sub returns the delta p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y}
}

// Scale returns p with both components multiplied by k.
func (p Position) Scale(k int) Position {
	return Position{X: p.X * k, Y: p.Y * k}
}

// Sign returns the per-component sign of p, each component in {-1, 0, 1}.
func (p Position) Sign() Position {
	return Position{X: sign(p.X), Y: sign(p.Y)}
}

// IsZero reports whether both components are zero.
func (p Position) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Chebyshev returns max(|dx|, |dy|) between a and b, the diagonal-inclusive
// board distance used by threat and freeze checks.
func Chebyshev(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}

// Neighbor visitation orders are fixed so that pattern generation and BFS
// tie-breaking are deterministic. Orthogonals first (N, E, S, W), then
// diagonals (NE, SE, SW, NW).
var (
	orthoDirs = [4]Position{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	diagDirs  = [4]Position{{1, -1}, {1, 1}, {-1, 1}, {-1, -1}}
	kingDirs  = [8]Position{
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
		{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
	}
	knightOffsets = [8]Position{
		{1, -2}, {2, -1}, {2, 1}, {1, 2},
		{-1, 2}, {-2, 1}, {-2, -1}, {-1, -2},
	}
)
