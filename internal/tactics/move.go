package tactics

// MoveKind is the tag of the Move variant.
type MoveKind uint8

const (
	MovePass   MoveKind = iota // committed no-op, still occupies the current cell
	MoveStep                   // single relocation to To
	MoveCharge                 // multi-cell traversal ending in a knockback impact
	MoveAttack                 // strike on the target cell without relocating
)

func (k MoveKind) String() string {
	switch k {
	case MovePass:
		return "pass"
	case MoveStep:
		return "step"
	case MoveCharge:
		return "charge"
	case MoveAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Move is one enemy's committed action for a turn.
//
//	Pass:   To = the enemy's current cell
//	Step:   To = destination
//	Charge: Path = traversed cells in order (final cell last), To = final
//	        cell, Knock = unit lane direction carried into the impact
//	Attack: To = target cell (the player's), Knock = unit knockback
//	        direction, zero for plain bump attacks without knockback
type Move struct {
	Kind  MoveKind   `json:"kind"`
	To    Position   `json:"to"`
	Path  []Position `json:"path,omitempty"`
	Knock Position   `json:"knock,omitempty"`
}

// PassMove returns a committed no-op holding the cell at.
func PassMove(at Position) Move {
	return Move{Kind: MovePass, To: at}
}

// StepMove returns a single-cell relocation.
func StepMove(to Position) Move {
	return Move{Kind: MoveStep, To: to}
}

// ChargeMove returns a multi-cell traversal along path ending at to, with
// knockback direction knock delivered on impact.
func ChargeMove(path []Position, to, knock Position) Move {
	return Move{Kind: MoveCharge, To: to, Path: path, Knock: knock}
}

// AttackMove returns a strike on target. knock may be zero.
func AttackMove(target, knock Position) Move {
	return Move{Kind: MoveAttack, To: target, Knock: knock}
}

// Destination returns the cell this move reserves in the occupied-tile set:
// the landing cell for relocations, the enemy's own cell otherwise. Attacks
// do not relocate — the attacker strikes from where it stands.
func (m Move) Destination(current Position) Position {
	switch m.Kind {
	case MoveStep, MoveCharge:
		return m.To
	default:
		return current
	}
}

// Relocates reports whether the move changes the enemy's position.
func (m Move) Relocates() bool {
	return m.Kind == MoveStep || m.Kind == MoveCharge
}
