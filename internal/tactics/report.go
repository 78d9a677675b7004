package tactics

// TurnEntry is one enemy's committed move and its combat outcomes for a
// turn. The renderer consumes these to drive animation; the spectator hub
// serialises them as-is.
type TurnEntry struct {
	EnemyID   int       `json:"enemy_id"`
	Archetype Archetype `json:"archetype"`
	Move      Move      `json:"move"`
	Outcomes  []Outcome `json:"outcomes,omitempty"`
	Frozen    bool      `json:"frozen,omitempty"`
}

// TurnReport is the full record of one completed turn.
type TurnReport struct {
	Turn    int         `json:"turn"`
	Player  Position    `json:"player"`
	Frozen  bool        `json:"frozen,omitempty"` // board-wide freeze this turn
	Blasts  []Position  `json:"blasts,omitempty"` // bomb cells that detonated
	Hazards []Outcome   `json:"hazards,omitempty"`
	Entries []TurnEntry `json:"entries"`
}

// PlayerDamage sums the damage signalled against the player this turn.
func (tr *TurnReport) PlayerDamage() int {
	total := 0
	for _, en := range tr.Entries {
		for _, o := range en.Outcomes {
			if o.Kind == OutcomePlayerDamaged {
				total += o.Amount
			}
		}
	}
	return total
}

// DefeatedEnemies returns the IDs of enemies whose defeat was signalled this
// turn, from both move outcomes and bomb blasts.
func (tr *TurnReport) DefeatedEnemies() []int {
	var ids []int
	seen := map[int]bool{}
	collect := func(o Outcome) {
		if o.Kind == OutcomeEnemyDefeated && !seen[o.EnemyID] {
			seen[o.EnemyID] = true
			ids = append(ids, o.EnemyID)
		}
	}
	for _, o := range tr.Hazards {
		collect(o)
	}
	for _, en := range tr.Entries {
		for _, o := range en.Outcomes {
			collect(o)
		}
	}
	return ids
}

// PlayerKnockback returns the final knockback landing applied to the player
// this turn, if any. Later impacts supersede earlier ones.
func (tr *TurnReport) PlayerKnockback() (Position, bool) {
	var landing Position
	found := false
	for _, en := range tr.Entries {
		for _, o := range en.Outcomes {
			if o.Kind == OutcomeKnockback {
				landing = o.Landing
				found = true
			}
		}
	}
	return landing, found
}
