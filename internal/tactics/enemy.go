package tactics

// Archetype is one of the six fixed enemy movement profiles, each modelled
// after a chess piece. The enum is closed: CandidateMoves switches over it
// exhaustively, and any out-of-range value planes down to the King pattern
// with a data-integrity warning rather than halting the turn.
type Archetype uint8

const (
	ArchetypeKing Archetype = iota
	ArchetypeRook
	ArchetypeBishop
	ArchetypeQueen
	ArchetypeKnight
	ArchetypePawn
	archetypeCount // sentinel
)

func (a Archetype) String() string {
	switch a {
	case ArchetypeKing:
		return "king"
	case ArchetypeRook:
		return "rook"
	case ArchetypeBishop:
		return "bishop"
	case ArchetypeQueen:
		return "queen"
	case ArchetypeKnight:
		return "knight"
	case ArchetypePawn:
		return "pawn"
	default:
		return "unknown"
	}
}

// Valid reports whether a is inside the closed enum.
func (a Archetype) Valid() bool {
	return a < archetypeCount
}

// stepDirs returns the unit offsets the archetype may use for single-cell
// stepping, which is also the neighbour order its pathfinding uses.
func (a Archetype) stepDirs() []Position {
	switch a {
	case ArchetypeRook:
		return orthoDirs[:]
	case ArchetypeBishop:
		return diagDirs[:]
	case ArchetypeKnight:
		return knightOffsets[:]
	default:
		return kingDirs[:]
	}
}

// baseHealth returns the starting health for an archetype.
func (a Archetype) baseHealth() int {
	switch a {
	case ArchetypeQueen:
		return 3
	case ArchetypeRook, ArchetypeBishop:
		return 2
	default:
		return 1
	}
}

// attackDamage returns the damage a direct attack by this archetype deals.
func (a Archetype) attackDamage() int {
	switch a {
	case ArchetypeQueen:
		return 2
	default:
		return 1
	}
}

// AnimState tracks presentation-facing lifecycle so roster removal can be
// deferred until a death animation has played out.
type AnimState uint8

const (
	AnimIdle AnimState = iota
	AnimMoving
	AnimDying
	AnimDead
)

func (s AnimState) String() string {
	switch s {
	case AnimIdle:
		return "idle"
	case AnimMoving:
		return "moving"
	case AnimDying:
		return "dying"
	case AnimDead:
		return "dead"
	default:
		return "unknown"
	}
}

// PlanState is the per-turn planner state machine for one enemy.
type PlanState uint8

const (
	PlanIdle PlanState = iota
	PlanEvaluating
	PlanCommitted
)

// Enemy is one hostile piece on the board. Position is mutated only by the
// turn coordinator applying a committed move; health only by the combat
// manager applying resolver outcomes.
type Enemy struct {
	ID        int
	Archetype Archetype
	Pos       Position
	Health    int
	Facing    Position // pawn forward direction; fixed at spawn
	Frozen    bool
	Anim      AnimState

	plan PlanState
}

// NewEnemy creates an enemy with archetype-default health. facing only
// matters for pawns; a zero facing defaults to south.
func NewEnemy(id int, arch Archetype, pos Position, facing Position) *Enemy {
	if facing.IsZero() {
		facing = Position{X: 0, Y: 1}
	}
	return &Enemy{
		ID:        id,
		Archetype: arch,
		Pos:       pos,
		Health:    arch.baseHealth(),
		Facing:    facing.Sign(),
	}
}

// Alive reports whether the enemy is still an active combatant.
func (e *Enemy) Alive() bool {
	return e.Health > 0 && e.Anim != AnimDying && e.Anim != AnimDead
}

// Label is the short identifier used in logs and UI panels, e.g. "R3".
func (e *Enemy) Label() string {
	return enemyLabel(e)
}

// Roster is the active enemy list for a zone, kept in stable spawn/ID order.
type Roster []*Enemy

// ByID returns the enemy with the given ID, or nil.
func (r Roster) ByID(id int) *Enemy {
	for _, e := range r {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// Alive returns the enemies still participating in turns.
func (r Roster) Alive() []*Enemy {
	var out []*Enemy
	for _, e := range r {
		if e.Alive() {
			out = append(out, e)
		}
	}
	return out
}

// OccupiedBy returns the living enemy standing on p, or nil.
func (r Roster) OccupiedBy(p Position) *Enemy {
	for _, e := range r {
		if e.Alive() && e.Pos == p {
			return e
		}
	}
	return nil
}

// Sweep advances death animations and removes fully dead enemies. Enemies
// defeated this turn stay on the roster as AnimDying for one sweep so the
// renderer can play the death animation, then drop off.
func (r Roster) Sweep() Roster {
	out := r[:0]
	for _, e := range r {
		switch e.Anim {
		case AnimDying:
			e.Anim = AnimDead
			out = append(out, e)
		case AnimDead:
			// removed
		default:
			out = append(out, e)
		}
	}
	return out
}
