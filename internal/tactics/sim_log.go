package tactics

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a turn cycle.
type SimLogEntry struct {
	Turn     int
	Enemy    string  // label e.g. "R0", "K3", or "--" for global events
	Category string  // plan, move, freeze, combat, turn
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] R0   plan    commit          step to (3,4)
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-4s %-7s %-16s %s",
		e.Turn, e.Enemy, e.Category, e.Key, e.Value)
}

// SimLog collects structured events across turns. It is unbounded and
// machine-readable; tests assert on it instead of scraping stdout, and the
// inspector formats slices of it for the clipboard report.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-turn candidate and
// score entries are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry. A nil SimLog drops everything, so callers never
// need to guard their logging.
func (sl *SimLog) Add(turn int, enemy, category, key, value string, numVal float64) {
	if sl == nil {
		return
	}
	sl.entries = append(sl.entries, SimLogEntry{
		Turn:     turn,
		Enemy:    enemy,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(turn int, enemy, category, key, value string, numVal float64) {
	if sl == nil || !sl.verbose {
		return
	}
	sl.Add(turn, enemy, category, key, value, numVal)
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	if sl == nil {
		return nil
	}
	return sl.entries
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterEnemy returns entries for a specific enemy label.
func (sl *SimLog) FilterEnemy(label string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if e.Enemy == label {
			out = append(out, e)
		}
	}
	return out
}

// FilterTurnRange returns entries within [fromTurn, toTurn] inclusive.
func (sl *SimLog) FilterTurnRange(fromTurn, toTurn int) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.Entries() {
		if e.Turn >= fromTurn && e.Turn <= toTurn {
			out = append(out, e)
		}
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (sl *SimLog) CountCategory(category, key string) int {
	return len(sl.Filter(category, key))
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.Entries() {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (sl *SimLog) Format() string {
	var sb strings.Builder
	for _, e := range sl.Entries() {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRange returns a log string filtered to a turn range.
func (sl *SimLog) FormatRange(fromTurn, toTurn int) string {
	var sb strings.Builder
	for _, e := range sl.FilterTurnRange(fromTurn, toTurn) {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
