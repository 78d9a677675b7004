package tactics

// playerReservation marks the occupied-set entry seeded for the player.
const playerReservation = -1

// TacticalContext is the ephemeral per-turn planning state. It is rebuilt at
// the start of every enemy iteration, owned exclusively by the coordinator
// for that turn, and discarded wholesale when the turn ends or is abandoned —
// partial commits are never applied across turns.
type TacticalContext struct {
	Grid     *TileMap
	Player   Position
	EnemyPos map[int]Position // enemy positions snapshotted at turn start
	Reserved map[Position]int // committed destinations → enemy ID
	Turn     int
	Log      *SimLog
}

// NewTacticalContext snapshots the world for one turn of enemy planning.
// The reserved set is seeded with the player's post-move position and every
// living enemy's current cell, so two enemies can never swap into each other
// mid-iteration.
func NewTacticalContext(grid *TileMap, player Position, roster Roster, turn int, log *SimLog) *TacticalContext {
	ctx := &TacticalContext{
		Grid:     grid,
		Player:   player,
		EnemyPos: make(map[int]Position),
		Reserved: make(map[Position]int),
		Turn:     turn,
		Log:      log,
	}
	ctx.Reserved[player] = playerReservation
	for _, e := range roster {
		if !e.Alive() {
			continue
		}
		ctx.EnemyPos[e.ID] = e.Pos
		ctx.Reserved[e.Pos] = e.ID
	}
	return ctx
}

// IsReserved reports whether p is already claimed this turn.
func (ctx *TacticalContext) IsReserved(p Position) bool {
	_, ok := ctx.Reserved[p]
	return ok
}

// Reserve commits p to the given enemy for the remainder of the turn.
func (ctx *TacticalContext) Reserve(p Position, enemyID int) {
	ctx.Reserved[p] = enemyID
}

// EnemyOccupied reports whether an enemy stood on p at turn start, excluding
// the enemy with id self.
func (ctx *TacticalContext) EnemyOccupied(p Position, self int) bool {
	for id, pos := range ctx.EnemyPos {
		if id != self && pos == p {
			return true
		}
	}
	return false
}

// BlockedSet returns the reserved cells as a pathfinder blocked set.
func (ctx *TacticalContext) BlockedSet() BlockedSet {
	bs := make(BlockedSet, len(ctx.Reserved))
	for p := range ctx.Reserved {
		bs[p] = struct{}{}
	}
	return bs
}
