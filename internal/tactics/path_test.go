package tactics

import (
	"math/rand"
	"testing"
)

// oracleDistance is a brute-force BFS distance used to validate FindPath.
// It mirrors the engine's rules (goal exempt from the blocked set) but
// shares none of its code.
func oracleDistance(tm *TileMap, from, to Position, blocked BlockedSet, stepDirs []Position) int {
	if !tm.IsWalkable(to) {
		return -1
	}
	dist := map[Position]int{from: 0}
	queue := []Position{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range stepDirs {
			next := cur.Add(d)
			if _, seen := dist[next]; seen {
				continue
			}
			if !tm.IsWalkable(next) {
				continue
			}
			if next != to && blocked.Contains(next) {
				continue
			}
			dist[next] = dist[cur] + 1
			if next == to {
				return dist[next]
			}
			queue = append(queue, next)
		}
	}
	return -1
}

func TestFindPath_MatchesOracle(t *testing.T) {
	dirSets := map[string][]Position{
		"ortho": orthoDirs[:],
		"king":  kingDirs[:],
	}
	for name, dirs := range dirSets {
		for _, seed := range []int64{3, 11, 99} {
			rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic test
			tm := NewTileMap(10, 10)
			for i := 0; i < 20; i++ {
				tm.SetTerrain(Position{X: rng.Intn(10), Y: rng.Intn(10)}, TerrainWall)
			}
			blocked := BlockedSet{}
			for i := 0; i < 5; i++ {
				blocked[Position{X: rng.Intn(10), Y: rng.Intn(10)}] = struct{}{}
			}

			for trial := 0; trial < 30; trial++ {
				from := Position{X: rng.Intn(10), Y: rng.Intn(10)}
				to := Position{X: rng.Intn(10), Y: rng.Intn(10)}
				if from == to || !tm.IsWalkable(from) || blocked.Contains(from) {
					continue
				}
				want := oracleDistance(tm, from, to, blocked, dirs)
				path, ok := FindPath(tm, from, to, blocked, dirs, 0)
				if want == -1 {
					if ok {
						t.Errorf("%s seed %d: oracle says unreachable, FindPath returned a path from (%d,%d) to (%d,%d)",
							name, seed, from.X, from.Y, to.X, to.Y)
					}
					continue
				}
				if !ok {
					t.Errorf("%s seed %d: oracle distance %d, FindPath found nothing (%d,%d)→(%d,%d)",
						name, seed, want, from.X, from.Y, to.X, to.Y)
					continue
				}
				if len(path) != want {
					t.Errorf("%s seed %d: path length %d, oracle shortest %d", name, seed, len(path), want)
				}
				if path[len(path)-1] != to {
					t.Errorf("%s seed %d: path does not end at the goal", name, seed)
				}
			}
		}
	}
}

func TestFindPath_Contiguity(t *testing.T) {
	tm := NewTileMap(8, 8)
	tm.FillRect(3, 0, 3, 5, TerrainWall)
	path, ok := FindPath(tm, Position{0, 0}, Position{7, 0}, nil, orthoDirs[:], 0)
	if !ok {
		t.Fatal("expected a path around the wall")
	}
	prev := Position{0, 0}
	for _, p := range path {
		if Chebyshev(prev, p) != 1 || (prev.X != p.X && prev.Y != p.Y) {
			t.Fatalf("non-orthogonal hop from (%d,%d) to (%d,%d)", prev.X, prev.Y, p.X, p.Y)
		}
		if !tm.IsWalkable(p) {
			t.Fatalf("path crosses unwalkable cell (%d,%d)", p.X, p.Y)
		}
		prev = p
	}
}

func TestFindPath_RadiusBound(t *testing.T) {
	tm := NewTileMap(60, 3)
	from := Position{0, 1}
	to := Position{50, 1}
	if _, ok := FindPath(tm, from, to, nil, orthoDirs[:], 0); ok {
		t.Error("goal beyond the search radius should be treated as no path")
	}
	if _, ok := FindPath(tm, from, Position{20, 1}, nil, orthoDirs[:], 0); !ok {
		t.Error("goal inside the search radius should be reachable")
	}
}

func TestFindPath_GoalExemptFromBlockedSet(t *testing.T) {
	tm := NewTileMap(5, 5)
	to := Position{4, 2}
	blocked := BlockedSet{to: {}}
	path, ok := FindPath(tm, Position{0, 2}, to, blocked, orthoDirs[:], 0)
	if !ok {
		t.Fatal("blocked goal cell should still be reachable (the player occupies it)")
	}
	if path[len(path)-1] != to {
		t.Error("path should end on the goal")
	}
}

func TestFindPath_SameCell(t *testing.T) {
	tm := NewTileMap(5, 5)
	path, ok := FindPath(tm, Position{2, 2}, Position{2, 2}, nil, kingDirs[:], 0)
	if !ok || len(path) != 0 {
		t.Error("path to the current cell should be empty and found")
	}
}

func TestFindPath_KnightSteps(t *testing.T) {
	tm := NewTileMap(8, 8)
	path, ok := FindPath(tm, Position{0, 0}, Position{4, 4}, nil, knightOffsets[:], 0)
	if !ok {
		t.Fatal("knight should reach (4,4)")
	}
	prev := Position{0, 0}
	for _, p := range path {
		d := p.Sub(prev)
		dx, dy := abs(d.X), abs(d.Y)
		if !((dx == 1 && dy == 2) || (dx == 2 && dy == 1)) {
			t.Fatalf("non-knight hop from (%d,%d) to (%d,%d)", prev.X, prev.Y, p.X, p.Y)
		}
		prev = p
	}
}
