package tactics

import "fmt"

// threatRadius is the Chebyshev distance at or below which an enemy with no
// attack available retreats instead of closing in.
const threatRadius = 2

// Planner picks one move per enemy per turn. Each stage of the pipeline is a
// pure function over a candidate list: generate, filter, choose. The planner
// never touches the occupied set other than to commit the final choice.
type Planner struct {
	Log *SimLog
}

// PlanMove runs the Idle → Evaluating → Committed state machine for one
// enemy and returns its committed move. The result is total: an enemy that
// is fully boxed in commits a Pass, which keeps its current cell reserved
// for the remainder of the turn.
func (pl *Planner) PlanMove(e *Enemy, ctx *TacticalContext) Move {
	e.plan = PlanEvaluating

	candidates := CandidateMoves(e, ctx)
	legal := pl.filterCandidates(e, ctx, candidates)

	mv, ok := pl.chooseMove(e, ctx, legal)
	if !ok {
		mv = PassMove(e.Pos)
		ctx.Log.Add(ctx.Turn, enemyLabel(e), "plan", "no_legal_move", "boxed in, passing", 0)
	}

	ctx.Reserve(mv.Destination(e.Pos), e.ID)
	e.plan = PlanCommitted
	ctx.Log.AddVerbose(ctx.Turn, enemyLabel(e), "plan", "commit",
		fmt.Sprintf("%s to (%d,%d)", mv.Kind, mv.Destination(e.Pos).X, mv.Destination(e.Pos).Y), 0)
	return mv
}

// filterCandidates drops moves whose destination is already reserved by
// another enemy this turn, and re-checks walkability for relocations.
// Invalid candidates are discarded silently apart from a verbose log line;
// the planner simply continues with the survivors.
func (pl *Planner) filterCandidates(e *Enemy, ctx *TacticalContext, in []Move) []Move {
	out := make([]Move, 0, len(in))
	for _, mv := range in {
		dest := mv.Destination(e.Pos)
		if owner, taken := ctx.Reserved[dest]; taken && owner != e.ID {
			ctx.Log.AddVerbose(ctx.Turn, enemyLabel(e), "plan", "invalid_move",
				fmt.Sprintf("%s to (%d,%d) reserved by %d", mv.Kind, dest.X, dest.Y, owner), 0)
			continue
		}
		if mv.Relocates() && !ctx.Grid.IsWalkable(dest) {
			ctx.Log.AddVerbose(ctx.Turn, enemyLabel(e), "plan", "invalid_move",
				fmt.Sprintf("%s to (%d,%d) not walkable", mv.Kind, dest.X, dest.Y), 0)
			continue
		}
		out = append(out, mv)
	}
	return out
}

// chooseMove scores the surviving candidates:
//
//  1. Any attack-class move (attack or charge) wins immediately.
//  2. Inside threatRadius with no attack available, retreat: maximise
//     distance from the player, ties broken by anti-clustering diversity.
//  3. Otherwise path toward the player and take the first step; if no path
//     exists within the search radius, fall back to the retreat scoring so
//     the enemy never freezes in place indefinitely.
func (pl *Planner) chooseMove(e *Enemy, ctx *TacticalContext, legal []Move) (Move, bool) {
	if len(legal) == 0 {
		return Move{}, false
	}

	for _, mv := range legal {
		if mv.Kind == MoveAttack || mv.Kind == MoveCharge {
			return mv, true
		}
	}

	if Chebyshev(e.Pos, ctx.Player) <= threatRadius {
		ctx.Log.AddVerbose(ctx.Turn, enemyLabel(e), "plan", "retreat", "inside threat radius", 0)
		return bestByRetreat(e, ctx, legal)
	}

	if mv, ok := pl.stepAlongPath(e, ctx, legal); ok {
		return mv, true
	}
	ctx.Log.AddVerbose(ctx.Turn, enemyLabel(e), "plan", "path_not_found", "using diversity fallback", 0)
	return bestByRetreat(e, ctx, legal)
}

// stepAlongPath asks the pathfinder for a route to the player honouring the
// current reservations and returns the legal candidate matching its first
// step. The first step may have no matching candidate (e.g. the path's first
// cell is legal for stepping but was generated as part of a longer ray that
// another rule pruned); that is treated as path-not-found.
func (pl *Planner) stepAlongPath(e *Enemy, ctx *TacticalContext, legal []Move) (Move, bool) {
	path, ok := FindPath(ctx.Grid, e.Pos, ctx.Player, ctx.BlockedSet(), e.Archetype.stepDirs(), DefaultSearchRadius)
	if !ok || len(path) == 0 {
		return Move{}, false
	}
	first := path[0]
	for _, mv := range legal {
		if mv.Kind == MoveStep && mv.To == first {
			return mv, true
		}
	}
	return Move{}, false
}

// bestByRetreat picks the candidate maximising Chebyshev distance from the
// player, ties broken by maximising the summed distance to the two nearest
// other enemies. Strict improvement wins, so candidate order (which is
// fixed) decides exact ties deterministically.
func bestByRetreat(e *Enemy, ctx *TacticalContext, legal []Move) (Move, bool) {
	best := -1
	var bestMv Move
	bestPlayer, bestDiv := -1, -1
	for i, mv := range legal {
		if mv.Kind != MoveStep {
			continue
		}
		pd := Chebyshev(mv.To, ctx.Player)
		dv := diversityScore(mv.To, ctx, e.ID)
		if best == -1 || pd > bestPlayer || (pd == bestPlayer && dv > bestDiv) {
			best = i
			bestMv = mv
			bestPlayer = pd
			bestDiv = dv
		}
	}
	if best == -1 {
		return Move{}, false
	}
	return bestMv, true
}

// diversityScore sums the Chebyshev distances from p to the two nearest
// other enemies. Higher is better: it spreads enemies out instead of letting
// them pile into a cluster.
func diversityScore(p Position, ctx *TacticalContext, self int) int {
	first, second := -1, -1
	for id, pos := range ctx.EnemyPos {
		if id == self {
			continue
		}
		d := Chebyshev(p, pos)
		switch {
		case first == -1 || d < first:
			first, second = d, first
		case second == -1 || d < second:
			second = d
		}
	}
	score := 0
	if first >= 0 {
		score += first
	}
	if second >= 0 {
		score += second
	}
	return score
}
