package tactics

import (
	"math/rand"
	"testing"
)

func TestLOS_OpenGrid(t *testing.T) {
	tm := NewTileMap(8, 8)
	cases := []struct {
		a, b Position
	}{
		{Position{0, 0}, Position{7, 7}},
		{Position{0, 7}, Position{7, 0}},
		{Position{3, 3}, Position{3, 3}},
		{Position{0, 4}, Position{7, 4}},
		{Position{2, 0}, Position{5, 6}},
	}
	for _, c := range cases {
		if !HasLineOfSight(tm, c.a, c.b) {
			t.Errorf("expected LOS on empty grid from (%d,%d) to (%d,%d)", c.a.X, c.a.Y, c.b.X, c.b.Y)
		}
	}
}

func TestLOS_WallBlocks(t *testing.T) {
	tm := NewTileMap(8, 8)
	tm.FillRect(3, 0, 3, 7, TerrainWall)

	if HasLineOfSight(tm, Position{0, 4}, Position{7, 4}) {
		t.Error("wall column should block horizontal LOS")
	}
	if HasLineOfSight(tm, Position{1, 1}, Position{6, 6}) {
		t.Error("wall column should block diagonal LOS")
	}
	// Cells on the same side still see each other.
	if !HasLineOfSight(tm, Position{0, 0}, Position{2, 7}) {
		t.Error("cells on the same side of the wall should keep LOS")
	}
}

func TestLOS_EndpointsNeverBlock(t *testing.T) {
	tm := NewTileMap(5, 5)
	// Adjacent cells always see each other regardless of what they contain.
	tm.SetTerrain(Position{2, 2}, TerrainSpikes)
	if !HasLineOfSight(tm, Position{2, 2}, Position{2, 3}) {
		t.Error("adjacent cells should always have LOS")
	}
}

func TestLOS_OutOfBounds(t *testing.T) {
	tm := NewTileMap(5, 5)
	if HasLineOfSight(tm, Position{0, 0}, Position{9, 9}) {
		t.Error("LOS to an out-of-bounds cell should be false")
	}
	if HasLineOfSight(tm, Position{-1, 0}, Position{2, 2}) {
		t.Error("LOS from an out-of-bounds cell should be false")
	}
}

// TestLOS_Symmetry exercises the required property hasLineOfSight(a,b) ==
// hasLineOfSight(b,a) over every cell pair of randomly obstructed grids.
func TestLOS_Symmetry(t *testing.T) {
	for _, seed := range []int64{1, 7, 42} {
		rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- deterministic test
		tm := NewTileMap(9, 9)
		for i := 0; i < 14; i++ {
			tm.SetTerrain(Position{X: rng.Intn(9), Y: rng.Intn(9)}, TerrainWall)
		}
		for ay := 0; ay < 9; ay++ {
			for ax := 0; ax < 9; ax++ {
				for by := 0; by < 9; by++ {
					for bx := 0; bx < 9; bx++ {
						a := Position{X: ax, Y: ay}
						b := Position{X: bx, Y: by}
						if HasLineOfSight(tm, a, b) != HasLineOfSight(tm, b, a) {
							t.Fatalf("seed %d: asymmetric LOS between (%d,%d) and (%d,%d)",
								seed, ax, ay, bx, by)
						}
					}
				}
			}
		}
	}
}

func TestLaneClear(t *testing.T) {
	tm := NewTileMap(8, 8)
	a := Position{0, 3}
	b := Position{6, 3}
	dir := Position{1, 0}

	if !LaneClear(tm, a, b, dir, nil) {
		t.Error("empty lane should be clear")
	}

	tm.SetTerrain(Position{3, 3}, TerrainWall)
	if LaneClear(tm, a, b, dir, nil) {
		t.Error("wall in lane should block")
	}

	tm.SetTerrain(Position{3, 3}, TerrainFloor)
	occupied := func(p Position) bool { return p == (Position{4, 3}) }
	if LaneClear(tm, a, b, dir, occupied) {
		t.Error("occupied cell in lane should block")
	}

	if LaneClear(tm, a, b, Position{}, nil) {
		t.Error("zero direction should never be clear")
	}
}
