package persist

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/seolfor/cryptward/internal/tactics"
)

// JSONStore persists snapshots in a local JSON file. It is the default
// backend for single-player runs and for the test suite.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *jsonData
}

type jsonData struct {
	Zones map[string]tactics.RosterSnapshot `json:"zones"`
}

// NewJSONStore opens or creates the store file at filePath.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &jsonData{
			Zones: make(map[string]tactics.RosterSnapshot),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %v", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %v", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}

	return json.Unmarshal(file, js.data)
}

func (js *JSONStore) saveToFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	data, err := json.MarshalIndent(js.data, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(js.filePath, data, 0644)
}

// SaveSnapshot stores the snapshot under its zone name.
func (js *JSONStore) SaveSnapshot(snap tactics.RosterSnapshot) error {
	js.mutex.Lock()
	js.data.Zones[snap.Zone] = snap
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadSnapshot returns the snapshot stored for the zone.
func (js *JSONStore) LoadSnapshot(zone string) (tactics.RosterSnapshot, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	snap, exists := js.data.Zones[zone]
	if !exists {
		return tactics.RosterSnapshot{}, fmt.Errorf("zone %s not found", zone)
	}

	return snap, nil
}

// DeleteSnapshot removes a zone's snapshot.
func (js *JSONStore) DeleteSnapshot(zone string) error {
	js.mutex.Lock()
	delete(js.data.Zones, zone)
	js.mutex.Unlock()

	return js.saveToFile()
}

// Close closes the store (no-op for JSON store).
func (js *JSONStore) Close() error {
	return nil
}
