package tactics

// Terrain identifies the base surface of a dungeon cell.
type Terrain uint8

const (
	TerrainFloor  Terrain = iota // open stone floor
	TerrainWall                  // structural wall
	TerrainRubble                // collapsed masonry, impassable
	TerrainWater                 // shallow water, passable
	TerrainSpikes                // floor spikes, passable but lethal to enemies
	TerrainExit                  // zone exit stairwell
	terrainCount                 // sentinel
)

func (t Terrain) String() string {
	switch t {
	case TerrainFloor:
		return "floor"
	case TerrainWall:
		return "wall"
	case TerrainRubble:
		return "rubble"
	case TerrainWater:
		return "water"
	case TerrainSpikes:
		return "spikes"
	case TerrainExit:
		return "exit"
	default:
		return "unknown"
	}
}

// terrainBlocksMovement returns true if the terrain is impassable.
func terrainBlocksMovement(t Terrain) bool {
	switch t {
	case TerrainWall, TerrainRubble:
		return true
	default:
		return false
	}
}

// terrainBlocksSight returns true if the terrain fully blocks line of sight.
// Spikes and water are floor-level hazards and do not obstruct vision.
func terrainBlocksSight(t Terrain) bool {
	switch t {
	case TerrainWall, TerrainRubble:
		return true
	default:
		return false
	}
}

// terrainIsHazard returns true if an enemy ending its move here is defeated.
func terrainIsHazard(t Terrain) bool {
	return t == TerrainSpikes
}

// Tile is one cell of the dungeon. BombFuse counts turns until a planted
// bomb on this cell detonates; zero means no bomb.
type Tile struct {
	Terrain  Terrain `json:"terrain"`
	BombFuse int8    `json:"bomb_fuse,omitempty"`
}

// TileMap is the authoritative per-cell terrain grid for one zone.
// Dimensions are fixed for the lifetime of the map.
type TileMap struct {
	Cols  int    `json:"cols"`
	Rows  int    `json:"rows"`
	Tiles []Tile `json:"tiles"` // row-major: index = row*Cols + col
}

// NewTileMap creates a tile map with all cells open floor.
func NewTileMap(cols, rows int) *TileMap {
	return &TileMap{Cols: cols, Rows: rows, Tiles: make([]Tile, cols*rows)}
}

// InBounds returns true if p is within the map.
func (tm *TileMap) InBounds(p Position) bool {
	return p.X >= 0 && p.X < tm.Cols && p.Y >= 0 && p.Y < tm.Rows
}

// At returns a pointer to the tile at p, or nil if out of bounds.
// Callers routinely probe beyond the edges during pattern generation, so
// out-of-bounds is a normal query, not an error.
func (tm *TileMap) At(p Position) *Tile {
	if !tm.InBounds(p) {
		return nil
	}
	return &tm.Tiles[p.Y*tm.Cols+p.X]
}

// IsWalkable returns true if an entity can stand on p.
func (tm *TileMap) IsWalkable(p Position) bool {
	if !tm.InBounds(p) {
		return false
	}
	return !terrainBlocksMovement(tm.Tiles[p.Y*tm.Cols+p.X].Terrain)
}

// BlocksSight returns true if the cell at p obstructs line of sight.
// Out-of-bounds cells block.
func (tm *TileMap) BlocksSight(p Position) bool {
	if !tm.InBounds(p) {
		return true
	}
	return terrainBlocksSight(tm.Tiles[p.Y*tm.Cols+p.X].Terrain)
}

// IsExit returns true if p is an exit cell.
func (tm *TileMap) IsExit(p Position) bool {
	if !tm.InBounds(p) {
		return false
	}
	return tm.Tiles[p.Y*tm.Cols+p.X].Terrain == TerrainExit
}

// IsHazard returns true if p defeats an enemy that ends its move there.
func (tm *TileMap) IsHazard(p Position) bool {
	if !tm.InBounds(p) {
		return false
	}
	return terrainIsHazard(tm.Tiles[p.Y*tm.Cols+p.X].Terrain)
}

// SetTerrain sets the terrain at p. Out-of-bounds writes are ignored.
func (tm *TileMap) SetTerrain(p Position, t Terrain) {
	if !tm.InBounds(p) {
		return
	}
	tm.Tiles[p.Y*tm.Cols+p.X].Terrain = t
}

// FillRect sets terrain over an inclusive rectangle, clipped to the map.
func (tm *TileMap) FillRect(x0, y0, x1, y1 int, t Terrain) {
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			tm.SetTerrain(Position{X: x, Y: y}, t)
		}
	}
}

// PlantBomb places a bomb with the given fuse on p.
func (tm *TileMap) PlantBomb(p Position, fuse int8) {
	if !tm.InBounds(p) || fuse <= 0 {
		return
	}
	tm.Tiles[p.Y*tm.Cols+p.X].BombFuse = fuse
}

// TickBombs decrements all fuses and returns the cells whose bombs detonated
// this turn. Detonation clears rubble on the blast cell and its king-adjacent
// neighbours back to floor.
func (tm *TileMap) TickBombs() []Position {
	var exploded []Position
	for y := 0; y < tm.Rows; y++ {
		for x := 0; x < tm.Cols; x++ {
			tile := &tm.Tiles[y*tm.Cols+x]
			if tile.BombFuse <= 0 {
				continue
			}
			tile.BombFuse--
			if tile.BombFuse == 0 {
				exploded = append(exploded, Position{X: x, Y: y})
			}
		}
	}
	for _, p := range exploded {
		for _, c := range BlastCells(p) {
			t := tm.At(c)
			if t != nil && t.Terrain == TerrainRubble {
				t.Terrain = TerrainFloor
			}
		}
	}
	return exploded
}

// BlastCells returns the blast footprint of a bomb at p: the cell itself
// plus its eight neighbours.
func BlastCells(p Position) []Position {
	cells := make([]Position, 0, 9)
	cells = append(cells, p)
	for _, d := range kingDirs {
		cells = append(cells, p.Add(d))
	}
	return cells
}
