package tactics

import (
	"math/rand"
)

// TestSim is a headless simulation harness used by tests and the headless
// report command. It wires a coordinator to a grid and roster, plays the
// external combat-manager role (applying signalled damage, knockback, and
// defeats), and records every turn report.
type TestSim struct {
	Cols, Rows int
	Grid       *TileMap
	Player     *PlayerState
	Coord      *Coordinator
	SimLog     *SimLog
	Reports    []*TurnReport

	zone   string
	depth  int
	roster Roster
	rng    *rand.Rand
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra   simOptionKind = iota // grid size, seed, verbose, zone — applied first
	simOptTerrain                      // walls, exits, hazards, bombs — applied once the grid exists
	simOptActor                        // player and enemies — applied last
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithGridSize sets the zone dimensions.
func WithGridSize(cols, rows int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.Cols = cols
		ts.Rows = rows
	}}
}

// WithSeed sets the RNG seed used by the random placement options.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}}
}

// WithVerbose enables per-turn verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithZone names the zone and its depth.
func WithZone(name string, depth int) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.zone = name
		ts.depth = depth
	}}
}

// WithWall places a single wall cell.
func WithWall(x, y int) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.Grid.SetTerrain(Position{X: x, Y: y}, TerrainWall)
	}}
}

// WithWallRect fills an inclusive rectangle with wall.
func WithWallRect(x0, y0, x1, y1 int) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.Grid.FillRect(x0, y0, x1, y1, TerrainWall)
	}}
}

// WithTerrain sets an arbitrary terrain cell.
func WithTerrain(x, y int, t Terrain) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.Grid.SetTerrain(Position{X: x, Y: y}, t)
	}}
}

// WithExit places the zone exit.
func WithExit(x, y int) SimOption {
	return WithTerrain(x, y, TerrainExit)
}

// WithSpikes places a spike hazard.
func WithSpikes(x, y int) SimOption {
	return WithTerrain(x, y, TerrainSpikes)
}

// WithBomb plants a bomb with the given fuse.
func WithBomb(x, y int, fuse int8) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		ts.Grid.PlantBomb(Position{X: x, Y: y}, fuse)
	}}
}

// WithRandomWalls scatters n wall cells using the harness RNG, skipping
// cells that are already special.
func WithRandomWalls(n int) SimOption {
	return SimOption{simOptTerrain, func(ts *TestSim) {
		for placed := 0; placed < n; {
			p := Position{X: ts.rng.Intn(ts.Cols), Y: ts.rng.Intn(ts.Rows)}
			if t := ts.Grid.At(p); t != nil && t.Terrain == TerrainFloor {
				t.Terrain = TerrainWall
				placed++
			}
		}
	}}
}

// WithPlayer places the player.
func WithPlayer(x, y int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.Player.Pos = Position{X: x, Y: y}
	}}
}

// WithEnemy spawns an enemy with archetype-default health and facing.
func WithEnemy(id int, arch Archetype, x, y int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.roster = append(ts.roster, NewEnemy(id, arch, Position{X: x, Y: y}, Position{}))
	}}
}

// WithFacingEnemy spawns an enemy with an explicit facing (pawns).
func WithFacingEnemy(id int, arch Archetype, x, y, fx, fy int) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		ts.roster = append(ts.roster, NewEnemy(id, arch, Position{X: x, Y: y}, Position{X: fx, Y: fy}))
	}}
}

// WithScatteredEnemies spawns n enemies of cycling archetypes on random free
// cells using the harness RNG.
func WithScatteredEnemies(n int, archs ...Archetype) SimOption {
	return SimOption{simOptActor, func(ts *TestSim) {
		if len(archs) == 0 {
			archs = []Archetype{ArchetypeKing, ArchetypeRook, ArchetypeBishop, ArchetypeQueen, ArchetypeKnight, ArchetypePawn}
		}
		nextID := len(ts.roster)
		for placed := 0; placed < n; {
			p := Position{X: ts.rng.Intn(ts.Cols), Y: ts.rng.Intn(ts.Rows)}
			if !ts.Grid.IsWalkable(p) || p == ts.Player.Pos || ts.roster.OccupiedBy(p) != nil {
				continue
			}
			arch := archs[placed%len(archs)]
			ts.roster = append(ts.roster, NewEnemy(nextID, arch, p, Position{}))
			nextID++
			placed++
		}
	}}
}

// NewTestSim constructs a TestSim from the given options in three ordered
// passes: infrastructure, then terrain, then actors.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		Cols:   12,
		Rows:   12,
		zone:   "test-zone",
		depth:  1,
		SimLog: NewSimLog(false),
		rng:    rand.New(rand.NewSource(1)), // #nosec G404 -- test harness default
		Player: &PlayerState{Pos: Position{X: 6, Y: 6}, Health: 10},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}
	ts.Grid = NewTileMap(ts.Cols, ts.Rows)
	for _, o := range opts {
		if o.kind == simOptTerrain {
			o.fn(ts)
		}
	}
	for _, o := range opts {
		if o.kind == simOptActor {
			o.fn(ts)
		}
	}
	session := NewSession(ts.zone, ts.depth, ts.Grid)
	ts.Coord = NewCoordinator(session, ts.roster, ts.Player, ts.SimLog)
	return ts
}

// RunTurn advances one turn with the given player step and applies the
// signalled outcomes the way the external combat manager would: damage to
// player health, knockback to player position, defeats to enemy lifecycle.
func (ts *TestSim) RunTurn(dx, dy int) *TurnReport {
	report := ts.Coord.RunTurn(Position{X: dx, Y: dy})
	ts.applyOutcomes(report)
	ts.Coord.SweepRoster()
	ts.Reports = append(ts.Reports, report)
	return report
}

// RunTurns advances n turns with the player holding position.
func (ts *TestSim) RunTurns(n int) {
	for i := 0; i < n; i++ {
		ts.RunTurn(0, 0)
	}
}

// RunUntil advances up to maxTurns, stopping early when the predicate is
// satisfied. Returns the turn at which it was, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTurns int) int {
	for i := 0; i < maxTurns; i++ {
		ts.RunTurn(0, 0)
		if predicate(ts) {
			return ts.Coord.Session().Turn
		}
	}
	return -1
}

// EnemyByID returns the enemy with the given ID, or nil once removed.
func (ts *TestSim) EnemyByID(id int) *Enemy {
	return ts.Coord.Roster().ByID(id)
}

// applyOutcomes plays the combat-manager role for the harness.
func (ts *TestSim) applyOutcomes(report *TurnReport) {
	apply := func(o Outcome) {
		switch o.Kind {
		case OutcomePlayerDamaged:
			ts.Player.Health -= o.Amount
		case OutcomeKnockback:
			ts.Player.Pos = o.Landing
		case OutcomeEnemyDefeated:
			if e := ts.Coord.Roster().ByID(o.EnemyID); e != nil && e.Anim != AnimDead {
				e.Health = 0
				e.Anim = AnimDying
			}
		}
	}
	for _, o := range report.Hazards {
		apply(o)
	}
	for _, en := range report.Entries {
		for _, o := range en.Outcomes {
			apply(o)
		}
	}
}
