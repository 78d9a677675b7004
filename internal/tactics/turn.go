package tactics

import (
	"fmt"
	"sort"
)

// Phase is the turn coordinator's state machine.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlayerMoving
	PhaseEnemyIterating
	PhaseResolving
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlayerMoving:
		return "player_moving"
	case PhaseEnemyIterating:
		return "enemy_iterating"
	case PhaseResolving:
		return "resolving"
	default:
		return "unknown"
	}
}

// Session carries per-zone state the coordinator needs across turns: the
// grid, the depth, the turn counter, and the exit-grace counter. Keeping the
// grace counter here instead of in package state lets freeze behaviour be
// unit-tested in isolation.
type Session struct {
	Zone  string
	Depth int
	Grid  *TileMap
	Turn  int

	graceTurns int
}

// NewSession creates a session for one zone.
func NewSession(zone string, depth int, grid *TileMap) *Session {
	return &Session{Zone: zone, Depth: depth, Grid: grid}
}

// PlayerState is the engine's view of the player: position and health.
// Input handling and ability state live with the caller.
type PlayerState struct {
	Pos    Position `json:"pos"`
	Health int      `json:"health"`
}

// Coordinator sequences one game turn: the player's move, then every enemy
// in stable ID order, then combat resolution. It owns the occupied-tile set
// for the duration of the turn; planners only see it through the context.
type Coordinator struct {
	session  *Session
	roster   Roster
	player   *PlayerState
	planner  *Planner
	resolver *Resolver
	log      *SimLog

	phase Phase
	ctx   *TacticalContext
}

// NewCoordinator wires a coordinator for one zone session. The roster comes
// from the external spawner; log may be nil.
func NewCoordinator(session *Session, roster Roster, player *PlayerState, log *SimLog) *Coordinator {
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return &Coordinator{
		session:  session,
		roster:   roster,
		player:   player,
		planner:  &Planner{Log: log},
		resolver: &Resolver{Log: log},
		log:      log,
	}
}

// Phase returns the coordinator's current phase. Outside RunTurn it is
// always PhaseIdle.
func (c *Coordinator) Phase() Phase { return c.phase }

// Session returns the zone session.
func (c *Coordinator) Session() *Session { return c.session }

// Roster returns the live enemy roster.
func (c *Coordinator) Roster() Roster { return c.roster }

// Player returns the player state.
func (c *Coordinator) Player() *PlayerState { return c.player }

// RunTurn executes one full turn. playerStep is the player's movement delta
// for this turn (zero to hold position); validation of the player's own
// move legality beyond basic walkability belongs to the input layer. The
// returned report is complete when RunTurn returns: all tactical computation
// finishes before any animation playback starts.
func (c *Coordinator) RunTurn(playerStep Position) *TurnReport {
	c.session.Turn++
	turn := c.session.Turn
	report := &TurnReport{Turn: turn}

	// --- Player move ---
	c.phase = PhasePlayerMoving
	c.applyPlayerStep(playerStep)
	report.Player = c.player.Pos

	// --- Bomb fuses ---
	report.Blasts = c.session.Grid.TickBombs()
	report.Hazards = c.blastOutcomes(report.Blasts, turn)

	// --- Freeze / grace ---
	frozen := c.updateFreeze(turn)
	report.Frozen = frozen

	// --- Enemy iteration ---
	c.phase = PhaseEnemyIterating
	c.ctx = NewTacticalContext(c.session.Grid, c.player.Pos, c.roster, turn, c.log)
	type planned struct {
		enemy *Enemy
		move  Move
	}
	var commits []planned
	for _, e := range c.roster {
		if !e.Alive() {
			continue
		}
		e.Frozen = frozen
		if frozen {
			// No move is requested; the enemy stays Idle and its seeded
			// cell reservation stands.
			e.plan = PlanIdle
			report.Entries = append(report.Entries, TurnEntry{
				EnemyID: e.ID, Archetype: e.Archetype, Move: PassMove(e.Pos), Frozen: true,
			})
			continue
		}
		mv := c.planner.PlanMove(e, c.ctx)
		if mv.Relocates() {
			e.Pos = mv.To
			e.Anim = AnimMoving
			c.log.AddVerbose(turn, enemyLabel(e), "move", "apply",
				fmt.Sprintf("(%d,%d)", e.Pos.X, e.Pos.Y), 0)
		} else {
			e.Anim = AnimIdle
		}
		commits = append(commits, planned{enemy: e, move: mv})
		report.Entries = append(report.Entries, TurnEntry{
			EnemyID: e.ID, Archetype: e.Archetype, Move: mv,
		})
	}

	// --- Combat resolution ---
	c.phase = PhaseResolving
	snap := WorldSnapshot{
		Grid:     c.session.Grid,
		Player:   c.player.Pos,
		EnemyPos: c.ctx.EnemyPos,
		Turn:     turn,
	}
	for _, pc := range commits {
		outcomes := c.resolver.Resolve(pc.move, pc.enemy, snap)
		for j := range report.Entries {
			if report.Entries[j].EnemyID == pc.enemy.ID {
				report.Entries[j].Outcomes = outcomes
				break
			}
		}
	}

	c.ctx = nil
	c.phase = PhaseIdle
	return report
}

// Abandon discards an in-progress turn wholesale, e.g. on zone transition.
// Partial commits are never applied: the context and every reservation made
// this turn are void. Positions already applied before the abandon are the
// caller's responsibility to discard along with the zone.
func (c *Coordinator) Abandon() {
	if c.ctx != nil {
		c.log.Add(c.session.Turn, "--", "turn", "abandoned", c.phase.String(), 0)
	}
	c.ctx = nil
	c.phase = PhaseIdle
}

// SweepRoster advances death animations and drops fully dead enemies. The
// caller (combat manager) invokes this after applying defeat outcomes so
// removal stays deferred behind the death animation.
func (c *Coordinator) SweepRoster() {
	c.roster = c.roster.Sweep()
}

// applyPlayerStep moves the player if the destination is walkable and not
// held by a living enemy.
func (c *Coordinator) applyPlayerStep(step Position) {
	if step.IsZero() {
		return
	}
	dest := c.player.Pos.Add(step)
	if !c.session.Grid.IsWalkable(dest) || c.roster.OccupiedBy(dest) != nil {
		return
	}
	c.player.Pos = dest
}

// updateFreeze applies the exit freeze rule. While the player stands on an
// exit tile every enemy is frozen, and a one-turn grace period keeps them
// frozen on the turn the player steps off, preventing an instant ambush.
func (c *Coordinator) updateFreeze(turn int) bool {
	onExit := c.session.Grid.IsExit(c.player.Pos)
	switch {
	case onExit:
		c.session.graceTurns = 1
		c.log.Add(turn, "--", "freeze", "exit", "player on exit tile", 0)
		return true
	case c.session.graceTurns > 0:
		c.session.graceTurns--
		c.log.Add(turn, "--", "freeze", "grace", "grace turn after leaving exit", 0)
		return true
	default:
		return false
	}
}

// blastOutcomes signals defeat for every living enemy caught in a bomb
// blast this turn.
func (c *Coordinator) blastOutcomes(blasts []Position, turn int) []Outcome {
	if len(blasts) == 0 {
		return nil
	}
	var out []Outcome
	for _, b := range blasts {
		for _, cell := range BlastCells(b) {
			if e := c.roster.OccupiedBy(cell); e != nil {
				c.log.Add(turn, enemyLabel(e), "combat", "bomb",
					fmt.Sprintf("caught in blast at (%d,%d)", b.X, b.Y), 0)
				out = append(out, Outcome{Kind: OutcomeEnemyDefeated, EnemyID: e.ID, Cause: "bomb"})
			}
		}
	}
	return out
}
