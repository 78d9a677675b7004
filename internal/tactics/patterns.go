package tactics

import "strconv"

// CandidateMoves generates the archetype's legal move proposals for one turn.
// Generators enforce the movement pattern itself — reach, blocking, capture
// targets — but not this turn's destination reservations; that filtering
// belongs to the planner. The switch is exhaustive over the closed enum: a
// corrupt archetype tag falls back to the King pattern and is reported as a
// data-integrity warning, never a halted turn.
func CandidateMoves(e *Enemy, ctx *TacticalContext) []Move {
	switch e.Archetype {
	case ArchetypeKing:
		return kingMoves(e, ctx)
	case ArchetypeRook:
		return rayMoves(e, ctx, orthoDirs[:])
	case ArchetypeBishop:
		return rayMoves(e, ctx, diagDirs[:])
	case ArchetypeQueen:
		return append(rayMoves(e, ctx, orthoDirs[:]), rayMoves(e, ctx, diagDirs[:])...)
	case ArchetypeKnight:
		return knightMoves(e, ctx)
	case ArchetypePawn:
		return pawnMoves(e, ctx)
	default:
		ctx.Log.Add(ctx.Turn, enemyLabel(e), "plan", "data_integrity",
			"corrupt archetype tag, treating as king", float64(e.Archetype))
		return kingMoves(e, ctx)
	}
}

// kingMoves proposes one step to each of the eight adjacent cells, or an
// attack when the player stands on one of them.
func kingMoves(e *Enemy, ctx *TacticalContext) []Move {
	var out []Move
	for _, d := range kingDirs {
		dest := e.Pos.Add(d)
		switch {
		case dest == ctx.Player:
			out = append(out, AttackMove(dest, Position{}))
		case ctx.Grid.IsWalkable(dest) && !ctx.EnemyOccupied(dest, e.ID):
			out = append(out, StepMove(dest))
		}
	}
	return out
}

// rayMoves proposes sliding moves along each direction, stopping at the
// first obstacle. Reaching the player adjacent yields an attack; reaching it
// across a clear lane longer than one cell yields a charge ending on the
// cell before the player, carrying the lane direction as knockback.
func rayMoves(e *Enemy, ctx *TacticalContext, dirs []Position) []Move {
	var out []Move
	for _, d := range dirs {
		dist := 0
		for p := e.Pos.Add(d); ; p = p.Add(d) {
			dist++
			if p == ctx.Player {
				if dist == 1 {
					out = append(out, AttackMove(p, Position{}))
				} else if mv, ok := chargeAlong(e, ctx, d, dist); ok {
					out = append(out, mv)
				}
				break
			}
			if !ctx.Grid.IsWalkable(p) || ctx.EnemyOccupied(p, e.ID) {
				break
			}
			out = append(out, StepMove(p))
		}
	}
	return out
}

// chargeAlong builds the charge move toward the player along dir. dist is
// the step count from the enemy to the player's cell. The lane was already
// slid through empty cells, but the full line of sight is still required:
// partially transparent blockers deny a charge just as walls do.
func chargeAlong(e *Enemy, ctx *TacticalContext, dir Position, dist int) (Move, bool) {
	if !HasLineOfSight(ctx.Grid, e.Pos, ctx.Player) {
		return Move{}, false
	}
	occupied := func(p Position) bool { return ctx.EnemyOccupied(p, e.ID) }
	if !LaneClear(ctx.Grid, e.Pos, ctx.Player, dir, occupied) {
		return Move{}, false
	}
	path := make([]Position, 0, dist-1)
	for p := e.Pos.Add(dir); p != ctx.Player; p = p.Add(dir) {
		path = append(path, p)
	}
	final := path[len(path)-1]
	return ChargeMove(path, final, dir), true
}

// knightMoves proposes the eight fixed L-shaped jumps. Intermediate cells
// are ignored; only the destination matters. Landing on the player is a bump
// attack whose knockback follows the travel direction.
func knightMoves(e *Enemy, ctx *TacticalContext) []Move {
	var out []Move
	for _, off := range knightOffsets {
		dest := e.Pos.Add(off)
		switch {
		case dest == ctx.Player:
			out = append(out, AttackMove(dest, off.Sign()))
		case ctx.Grid.IsWalkable(dest) && !ctx.EnemyOccupied(dest, e.ID):
			out = append(out, StepMove(dest))
		}
	}
	return out
}

// pawnMoves proposes a single forward step onto an empty cell, or a
// diagonal-forward capture onto the player's cell. Facing is fixed at spawn;
// pawns never move backward or sideways.
func pawnMoves(e *Enemy, ctx *TacticalContext) []Move {
	var out []Move
	f := e.Facing

	forward := e.Pos.Add(f)
	if forward != ctx.Player && ctx.Grid.IsWalkable(forward) && !ctx.EnemyOccupied(forward, e.ID) {
		out = append(out, StepMove(forward))
	}

	for _, diag := range pawnCaptureDirs(f) {
		dest := e.Pos.Add(diag)
		if dest == ctx.Player {
			out = append(out, AttackMove(dest, Position{}))
		}
	}
	return out
}

// pawnCaptureDirs returns the two diagonal-forward offsets for a facing.
func pawnCaptureDirs(f Position) [2]Position {
	if f.X == 0 {
		return [2]Position{{-1, f.Y}, {1, f.Y}}
	}
	return [2]Position{{f.X, -1}, {f.X, 1}}
}

// enemyLabel returns the short log label for an enemy, e.g. "K3" for a
// knight with ID 3.
func enemyLabel(e *Enemy) string {
	tag := "?"
	switch e.Archetype {
	case ArchetypeKing:
		tag = "G" // G for general; K is the knight
	case ArchetypeRook:
		tag = "R"
	case ArchetypeBishop:
		tag = "B"
	case ArchetypeQueen:
		tag = "Q"
	case ArchetypeKnight:
		tag = "K"
	case ArchetypePawn:
		tag = "P"
	}
	return tag + strconv.Itoa(e.ID)
}
