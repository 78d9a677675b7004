package tactics

// EnemySnapshot is the persistable state of one enemy. The engine holds no
// persisted state beyond the roster, so this plus the zone header is the
// whole save surface.
type EnemySnapshot struct {
	ID        int       `json:"id"`
	Archetype Archetype `json:"archetype"`
	Pos       Position  `json:"pos"`
	Health    int       `json:"health"`
	Facing    Position  `json:"facing"`
}

// RosterSnapshot is a serializable capture of a zone's tactical state:
// roster, player, and turn counter.
type RosterSnapshot struct {
	Zone    string          `json:"zone"`
	Depth   int             `json:"depth"`
	Turn    int             `json:"turn"`
	Player  PlayerState     `json:"player"`
	Enemies []EnemySnapshot `json:"enemies"`
}

// Snapshot captures the coordinator's current roster for persistence.
// Dying and dead enemies are excluded: a reloaded zone starts with only the
// live combatants.
func (c *Coordinator) Snapshot() RosterSnapshot {
	snap := RosterSnapshot{
		Zone:   c.session.Zone,
		Depth:  c.session.Depth,
		Turn:   c.session.Turn,
		Player: *c.player,
	}
	for _, e := range c.roster {
		if !e.Alive() {
			continue
		}
		snap.Enemies = append(snap.Enemies, EnemySnapshot{
			ID:        e.ID,
			Archetype: e.Archetype,
			Pos:       e.Pos,
			Health:    e.Health,
			Facing:    e.Facing,
		})
	}
	return snap
}

// RestoreRoster rebuilds a live roster from a snapshot.
func RestoreRoster(snap RosterSnapshot) Roster {
	roster := make(Roster, 0, len(snap.Enemies))
	for _, es := range snap.Enemies {
		e := NewEnemy(es.ID, es.Archetype, es.Pos, es.Facing)
		e.Health = es.Health
		roster = append(roster, e)
	}
	return roster
}
