package tactics

// DefaultSearchRadius bounds BFS so a single enemy's planning cannot stall a
// turn on a large zone. Cells beyond this Chebyshev distance from the start
// are treated as unreachable, which is a normal "no path" outcome.
const DefaultSearchRadius = 24

// BlockedSet marks cells the pathfinder must route around, beyond static
// terrain: typically the current turn's occupied-tile set.
type BlockedSet map[Position]struct{}

// Contains reports whether p is in the set. A nil set contains nothing.
func (bs BlockedSet) Contains(p Position) bool {
	_, ok := bs[p]
	return ok
}

// FindPath returns the shortest path from `from` to `to` as the sequence of
// cells after `from` up to and including `to`, and true on success.
// Breadth-first search over an unweighted grid; the fixed neighbour order in
// stepDirs breaks ties deterministically. The goal cell is exempt from the
// blocked set so enemies can path toward the player's own (occupied) cell.
func FindPath(tm *TileMap, from, to Position, blocked BlockedSet, stepDirs []Position, radius int) ([]Position, bool) {
	if radius <= 0 {
		radius = DefaultSearchRadius
	}
	if !tm.IsWalkable(to) || Chebyshev(from, to) > radius {
		return nil, false
	}
	if from == to {
		return []Position{}, true
	}

	parent := map[Position]Position{from: from}
	queue := []Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range stepDirs {
			next := cur.Add(d)
			if _, seen := parent[next]; seen {
				continue
			}
			if Chebyshev(from, next) > radius {
				continue
			}
			if !tm.IsWalkable(next) {
				continue
			}
			if next != to && blocked.Contains(next) {
				continue
			}
			parent[next] = cur
			if next == to {
				return rebuildPath(parent, from, to), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// rebuildPath walks parent links back from the goal and reverses them.
func rebuildPath(parent map[Position]Position, from, to Position) []Position {
	var path []Position
	for p := to; p != from; p = parent[p] {
		path = append(path, p)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
