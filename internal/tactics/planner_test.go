package tactics

import "testing"

func TestPlanner_AttackPriority(t *testing.T) {
	tm := NewTileMap(7, 7)
	log := NewSimLog(false)
	e := NewEnemy(0, ArchetypeKing, Position{3, 3}, Position{})
	ctx := NewTacticalContext(tm, Position{4, 3}, Roster{e}, 1, log)

	pl := &Planner{Log: log}
	mv := pl.PlanMove(e, ctx)
	if mv.Kind != MoveAttack || mv.To != (Position{4, 3}) {
		t.Fatalf("adjacent attack must win immediately, got %s to (%d,%d)", mv.Kind, mv.To.X, mv.To.Y)
	}
	if e.plan != PlanCommitted {
		t.Error("enemy should be committed after planning")
	}
}

func TestPlanner_DefensiveRetreatInsideThreatRadius(t *testing.T) {
	tm := NewTileMap(7, 7)
	log := NewSimLog(false)
	e := NewEnemy(0, ArchetypeKing, Position{1, 3}, Position{})
	player := Position{3, 3}
	ctx := NewTacticalContext(tm, player, Roster{e}, 1, log)

	pl := &Planner{Log: log}
	mv := pl.PlanMove(e, ctx)
	if mv.Kind != MoveStep {
		t.Fatalf("expected a retreat step, got %s", mv.Kind)
	}
	if Chebyshev(mv.To, player) <= Chebyshev(e.Pos, player) {
		t.Errorf("retreat to (%d,%d) does not increase distance from the player", mv.To.X, mv.To.Y)
	}
	if mv.To.X != 0 {
		t.Errorf("retreat should back into the west edge, got (%d,%d)", mv.To.X, mv.To.Y)
	}
}

func TestPlanner_PathsTowardDistantPlayer(t *testing.T) {
	tm := NewTileMap(8, 8)
	log := NewSimLog(false)
	e := NewEnemy(0, ArchetypeKing, Position{0, 0}, Position{})
	player := Position{5, 5}
	ctx := NewTacticalContext(tm, player, Roster{e}, 1, log)

	pl := &Planner{Log: log}
	mv := pl.PlanMove(e, ctx)
	// Every shortest king path from (0,0) to (5,5) starts diagonally.
	if mv.Kind != MoveStep || mv.To != (Position{1, 1}) {
		t.Fatalf("expected first step of the shortest path (1,1), got %s to (%d,%d)",
			mv.Kind, mv.To.X, mv.To.Y)
	}
}

func TestPlanner_PathNotFoundFallsBackToDiversity(t *testing.T) {
	tm := NewTileMap(10, 10)
	// Seal the player behind a full wall column.
	tm.FillRect(6, 0, 6, 9, TerrainWall)
	log := NewSimLog(true)
	e := NewEnemy(0, ArchetypeKing, Position{1, 4}, Position{})
	ctx := NewTacticalContext(tm, Position{8, 4}, Roster{e}, 1, log)

	pl := &Planner{Log: log}
	mv := pl.PlanMove(e, ctx)
	if mv.Kind != MoveStep {
		t.Fatalf("unreachable player should still produce a step, got %s", mv.Kind)
	}
	if !log.HasEntry("plan", "path_not_found", "") {
		t.Error("expected a path_not_found log entry")
	}
}

func TestPlanner_BoxedInPasses(t *testing.T) {
	tm := NewTileMap(6, 6)
	tm.SetTerrain(Position{1, 0}, TerrainWall)
	tm.SetTerrain(Position{0, 1}, TerrainWall)
	tm.SetTerrain(Position{1, 1}, TerrainWall)
	log := NewSimLog(false)
	e := NewEnemy(0, ArchetypeKing, Position{0, 0}, Position{})
	ctx := NewTacticalContext(tm, Position{4, 4}, Roster{e}, 1, log)

	pl := &Planner{Log: log}
	mv := pl.PlanMove(e, ctx)
	if mv.Kind != MovePass {
		t.Fatalf("boxed-in enemy must pass, got %s", mv.Kind)
	}
	if mv.To != e.Pos {
		t.Error("a pass should hold the current cell")
	}
	if owner, ok := ctx.Reserved[e.Pos]; !ok || owner != e.ID {
		t.Error("a pass must keep the current cell reserved")
	}
	if !log.HasEntry("plan", "no_legal_move", "") {
		t.Error("expected a no_legal_move log entry")
	}
}

func TestPlanner_ReservedDestinationFiltered(t *testing.T) {
	tm := NewTileMap(8, 8)
	log := NewSimLog(false)
	e := NewEnemy(0, ArchetypeKing, Position{3, 3}, Position{})
	ctx := NewTacticalContext(tm, Position{7, 7}, Roster{e}, 1, log)
	// Another enemy already claimed the cell on the shortest path.
	ctx.Reserve(Position{4, 4}, 99)

	pl := &Planner{Log: log}
	mv := pl.PlanMove(e, ctx)
	if mv.To == (Position{4, 4}) {
		t.Fatal("planner committed to a cell reserved by another enemy")
	}
	if mv.Kind != MoveStep {
		t.Fatalf("expected a fallback step, got %s", mv.Kind)
	}
}

func TestPlanner_FrozenEnemyNotScoredForAttack(t *testing.T) {
	// The coordinator never requests a move for a frozen enemy; the planner
	// is only ever invoked for active ones. This guards the contract at the
	// coordinator level.
	ts := NewTestSim(
		WithGridSize(7, 7),
		WithExit(3, 3),
		WithPlayer(3, 3),
		WithEnemy(0, ArchetypeKing, 3, 4),
	)
	report := ts.RunTurn(0, 0)
	if !report.Frozen {
		t.Fatal("player on exit should freeze the board")
	}
	entry := report.Entries[0]
	if entry.Move.Kind != MovePass || !entry.Frozen {
		t.Errorf("frozen adjacent enemy must not attack, got %s", entry.Move.Kind)
	}
	if ts.Player.Health != 10 {
		t.Error("frozen enemy dealt damage")
	}
}
