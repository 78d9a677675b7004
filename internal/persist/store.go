package persist

import "github.com/seolfor/cryptward/internal/tactics"

// Store persists per-zone tactical snapshots so a crypt can be left and
// re-entered without losing its roster.
type Store interface {
	// SaveSnapshot stores the snapshot under its zone name, replacing any
	// previous capture of the same zone.
	SaveSnapshot(snap tactics.RosterSnapshot) error

	// LoadSnapshot returns the stored snapshot for the zone, or an error
	// when none exists.
	LoadSnapshot(zone string) (tactics.RosterSnapshot, error)

	// DeleteSnapshot removes a zone's snapshot, e.g. once it is cleared.
	DeleteSnapshot(zone string) error

	// Close releases any underlying resources.
	Close() error
}
