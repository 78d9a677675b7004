package persist

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/seolfor/cryptward/internal/tactics"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore persists snapshots in PostgreSQL, one row per zone with the
// roster held as JSONB. Used when several clients share a server.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to the database and ensures the schema exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %v", err)
	}

	store := &PostgresStore{db: db}

	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %v", err)
	}

	return store, nil
}

func (ps *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS zone_snapshots (
		zone TEXT PRIMARY KEY,
		depth INTEGER NOT NULL,
		turn INTEGER NOT NULL,
		player JSONB NOT NULL,
		enemies JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := ps.db.Exec(schema)
	return err
}

// SaveSnapshot upserts the zone's snapshot row.
func (ps *PostgresStore) SaveSnapshot(snap tactics.RosterSnapshot) error {
	playerJSON, err := json.Marshal(snap.Player)
	if err != nil {
		return fmt.Errorf("failed to marshal player state: %v", err)
	}
	enemiesJSON, err := json.Marshal(snap.Enemies)
	if err != nil {
		return fmt.Errorf("failed to marshal enemies: %v", err)
	}

	query := `
	INSERT INTO zone_snapshots (zone, depth, turn, player, enemies)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (zone)
	DO UPDATE SET
		depth = $2, turn = $3, player = $4, enemies = $5,
		updated_at = NOW()
	`

	_, err = ps.db.Exec(query,
		snap.Zone, snap.Depth, snap.Turn,
		string(playerJSON), string(enemiesJSON))

	if err != nil {
		return fmt.Errorf("failed to save snapshot: %v", err)
	}

	return nil
}

// LoadSnapshot reads one zone's snapshot row.
func (ps *PostgresStore) LoadSnapshot(zone string) (tactics.RosterSnapshot, error) {
	query := `SELECT zone, depth, turn, player, enemies FROM zone_snapshots WHERE zone = $1`

	var snap tactics.RosterSnapshot
	var playerJSON, enemiesJSON string

	err := ps.db.QueryRow(query, zone).Scan(
		&snap.Zone, &snap.Depth, &snap.Turn, &playerJSON, &enemiesJSON,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return tactics.RosterSnapshot{}, fmt.Errorf("zone %s not found", zone)
		}
		return tactics.RosterSnapshot{}, fmt.Errorf("failed to load snapshot: %v", err)
	}

	if err := json.Unmarshal([]byte(playerJSON), &snap.Player); err != nil {
		return tactics.RosterSnapshot{}, fmt.Errorf("failed to unmarshal player state: %v", err)
	}
	if err := json.Unmarshal([]byte(enemiesJSON), &snap.Enemies); err != nil {
		return tactics.RosterSnapshot{}, fmt.Errorf("failed to unmarshal enemies: %v", err)
	}

	return snap, nil
}

// DeleteSnapshot removes a zone's snapshot row.
func (ps *PostgresStore) DeleteSnapshot(zone string) error {
	_, err := ps.db.Exec(`DELETE FROM zone_snapshots WHERE zone = $1`, zone)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %v", err)
	}
	return nil
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
