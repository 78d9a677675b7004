package tactics

import "math/rand"

// spawnClearRadius keeps enemies from being generated on top of the player.
const spawnClearRadius = 3

// Crypt is a generated zone ready to hand to a coordinator: terrain, the
// starting roster, and the player spawn cell.
type Crypt struct {
	Grid   *TileMap
	Roster Roster
	Spawn  Position
	Exit   Position
}

// GenerateCrypt builds a bordered crypt level. Deeper crypts carry more
// enemies and more hazards. The same seed always produces the same layout.
func GenerateCrypt(cols, rows, depth int, seed int64) *Crypt {
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- layout generation
	grid := NewTileMap(cols, rows)

	// Outer border.
	grid.FillRect(0, 0, cols-1, 0, TerrainWall)
	grid.FillRect(0, rows-1, cols-1, rows-1, TerrainWall)
	grid.FillRect(0, 0, 0, rows-1, TerrainWall)
	grid.FillRect(cols-1, 0, cols-1, rows-1, TerrainWall)

	spawn := Position{X: 1, Y: 1}
	exit := Position{X: cols - 2, Y: rows - 2}

	// Interior scatter: walls plus a few hazards, never on the spawn,
	// the exit, or their immediate surroundings.
	protect := func(p Position) bool {
		return Chebyshev(p, spawn) <= 1 || Chebyshev(p, exit) <= 1
	}
	scatter := func(n int, t Terrain) {
		for placed := 0; placed < n; {
			p := Position{X: 1 + rng.Intn(cols-2), Y: 1 + rng.Intn(rows-2)}
			if protect(p) || grid.At(p).Terrain != TerrainFloor {
				continue
			}
			grid.SetTerrain(p, t)
			placed++
		}
	}
	interior := (cols - 2) * (rows - 2)
	scatter(interior/8, TerrainWall)
	scatter(interior/40, TerrainRubble)
	scatter(2+depth, TerrainSpikes)
	scatter(interior/50, TerrainWater)
	grid.SetTerrain(exit, TerrainExit)

	// Carve the spawn and exit open in case the scatter boxed them in.
	for _, d := range kingDirs {
		if p := spawn.Add(d); grid.InBounds(p) && p.X > 0 && p.Y > 0 && p.X < cols-1 && p.Y < rows-1 {
			grid.SetTerrain(p, TerrainFloor)
		}
	}

	crypt := &Crypt{Grid: grid, Spawn: spawn, Exit: exit}
	crypt.spawnRoster(rng, depth)
	return crypt
}

// spawnRoster scatters the enemy mix for the depth. Shallow crypts lean on
// pawns and kings; queens only appear from depth 3.
func (c *Crypt) spawnRoster(rng *rand.Rand, depth int) {
	mix := []Archetype{ArchetypePawn, ArchetypeKing, ArchetypeRook, ArchetypeBishop, ArchetypeKnight}
	if depth >= 3 {
		mix = append(mix, ArchetypeQueen)
	}
	count := 3 + depth*2

	id := 0
	for placed := 0; placed < count; {
		p := Position{
			X: 1 + rng.Intn(c.Grid.Cols-2),
			Y: 1 + rng.Intn(c.Grid.Rows-2),
		}
		if !c.Grid.IsWalkable(p) || c.Grid.IsHazard(p) || c.Grid.IsExit(p) {
			continue
		}
		if Chebyshev(p, c.Spawn) <= spawnClearRadius {
			continue
		}
		if c.Roster.OccupiedBy(p) != nil {
			continue
		}
		arch := mix[rng.Intn(len(mix))]
		facing := kingDirs[rng.Intn(len(kingDirs))]
		c.Roster = append(c.Roster, NewEnemy(id, arch, p, facing))
		id++
		placed++
	}
}
