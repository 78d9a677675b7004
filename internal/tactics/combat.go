package tactics

import "fmt"

// knockbackMagnitude is the number of cells a knockback pushes its target
// along the impact direction before clamping against terrain.
const knockbackMagnitude = 2

// chargeDamage is dealt by a charge impact on top of the knockback.
const chargeDamage = 1

// OutcomeKind tags the combat outcome variant.
type OutcomeKind uint8

const (
	OutcomeNoContact OutcomeKind = iota
	OutcomePlayerDamaged
	OutcomeEnemyDefeated
	OutcomeKnockback
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNoContact:
		return "no_contact"
	case OutcomePlayerDamaged:
		return "player_damaged"
	case OutcomeEnemyDefeated:
		return "enemy_defeated"
	case OutcomeKnockback:
		return "knockback"
	default:
		return "unknown"
	}
}

// Outcome is one combat event produced by the resolver. Defeat and damage
// are signalled, never applied here: health mutation, removal, and score are
// owned by the combat manager consuming these events.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	EnemyID int         `json:"enemy_id"`           // acting enemy
	Amount  int         `json:"amount,omitempty"`   // damage for PlayerDamaged
	Cause   string      `json:"cause,omitempty"`    // defeat cause for EnemyDefeated
	Vector  Position    `json:"vector,omitempty"`   // unit knockback direction
	Landing Position    `json:"landing,omitempty"`  // clamped knockback landing cell
}

// WorldSnapshot is the read-only world view the resolver works against.
type WorldSnapshot struct {
	Grid     *TileMap
	Player   Position
	EnemyPos map[int]Position
	Turn     int
}

// Resolver turns a committed move into combat outcomes once positions have
// been applied. It has no mutable state beyond its log.
type Resolver struct {
	Log *SimLog
}

// Resolve inspects one enemy's committed move against the post-move world
// and returns the resulting combat events. The result is total: a move that
// touches nothing yields a single NoContact outcome.
func (r *Resolver) Resolve(mv Move, e *Enemy, snap WorldSnapshot) []Outcome {
	switch mv.Kind {
	case MoveAttack:
		return r.resolveStrike(e, snap, mv.Knock, e.Archetype.attackDamage(), "attack")
	case MoveCharge:
		return r.resolveStrike(e, snap, mv.Knock, chargeDamage, "charge")
	case MoveStep:
		if snap.Grid.IsHazard(e.Pos) {
			r.Log.Add(snap.Turn, enemyLabel(e), "combat", "hazard",
				fmt.Sprintf("defeated by %s at (%d,%d)", snap.Grid.At(e.Pos).Terrain, e.Pos.X, e.Pos.Y), 0)
			return []Outcome{{Kind: OutcomeEnemyDefeated, EnemyID: e.ID, Cause: snap.Grid.At(e.Pos).Terrain.String()}}
		}
		return []Outcome{{Kind: OutcomeNoContact, EnemyID: e.ID}}
	default:
		return []Outcome{{Kind: OutcomeNoContact, EnemyID: e.ID}}
	}
}

// resolveStrike emits player damage plus, when the move carries a knockback
// vector, the clamped knockback event.
func (r *Resolver) resolveStrike(e *Enemy, snap WorldSnapshot, knock Position, damage int, cause string) []Outcome {
	out := []Outcome{{Kind: OutcomePlayerDamaged, EnemyID: e.ID, Amount: damage, Cause: cause}}
	if !knock.IsZero() {
		landing := ClampKnockback(snap.Grid, snap.Player, knock, knockbackMagnitude)
		if landing != snap.Player {
			out = append(out, Outcome{Kind: OutcomeKnockback, EnemyID: e.ID, Vector: knock, Landing: landing})
		}
	}
	return out
}

// ClampKnockback walks up to magnitude cells from `from` along the unit
// direction dir, stopping before the first non-walkable cell, and returns
// the landing cell. The target never passes through an obstacle.
func ClampKnockback(tm *TileMap, from, dir Position, magnitude int) Position {
	landing := from
	for i := 0; i < magnitude; i++ {
		next := landing.Add(dir)
		if !tm.IsWalkable(next) {
			break
		}
		landing = next
	}
	return landing
}
