package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/hweilin/vocabook/internal/vocab"
)

// ExportVersion is written into snapshot files produced by Export.
const ExportVersion = "2.0"

// Snapshot is the vocabulary export file format. Import also accepts the
// legacy format where the file is a bare array of entries.
type Snapshot struct {
	Version     string        `json:"version"`
	ExportDate  time.Time     `json:"exportDate"`
	StorageType string        `json:"storageType"`
	Vocabulary  []vocab.Entry `json:"vocabulary"`
}

// Status describes the coordinator's engine situation for display.
type Status struct {
	Active    EngineKind
	Supported map[EngineKind]bool
	Entries   int
}

// Coordinator owns which engine is active and keeps the durable copy of
// the book consistent across engine switches, imports and exports. It
// implements vocab.Store and vocab.Switchable.
type Coordinator struct {
	mu       sync.Mutex
	settings *Settings
	engines  map[EngineKind]Engine
	active   EngineKind
	breaker  *gobreaker.CircuitBreaker
}

// Open builds a coordinator over dir. The engine choice saved in settings
// wins; with no saved choice the SQLite engine is preferred and the JSON
// engine is the fallback when SQLite cannot be opened. The resolved
// choice is persisted so it will not silently change later.
func Open(dir string) (*Coordinator, error) {
	c := &Coordinator{
		settings: NewSettings(dir),
		engines: map[EngineKind]Engine{
			EngineJSON:   NewBlobEngine(dir),
			EngineSQLite: NewSQLiteEngine(dir),
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "vocabulary-writes",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}

	saved := c.settings.GetString(SettingStorageEngine, "")
	kind, hasSaved := ParseEngineKind(saved)
	if !hasSaved {
		kind = EngineSQLite
	}

	if err := c.engines[kind].Open(); err != nil {
		if kind != EngineJSON {
			fmt.Fprintf(os.Stderr, "Warning: %s engine unavailable, falling back to %s: %v\n",
				kind, EngineJSON, err)
			kind = EngineJSON
			if err := c.engines[kind].Open(); err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	c.active = kind

	if !hasSaved {
		if err := c.settings.SetString(SettingStorageEngine, string(kind)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save engine choice: %v\n", err)
		}
	}
	return c, nil
}

// Settings exposes the shared settings store.
func (c *Coordinator) Settings() *Settings { return c.settings }

// ActiveKind returns the currently active engine kind.
func (c *Coordinator) ActiveKind() EngineKind {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Status reports the active engine, per-engine availability and the
// current entry count.
func (c *Coordinator) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	supported := make(map[EngineKind]bool, len(c.engines))
	for kind, engine := range c.engines {
		supported[kind] = engine.Open() == nil
	}
	return Status{
		Active:    c.active,
		Supported: supported,
		Entries:   len(c.engines[c.active].LoadAll()),
	}
}

// Load returns the active engine's contents.
func (c *Coordinator) Load() ([]vocab.Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engines[c.active].LoadAll(), nil
}

// Save replaces the active engine's contents with the given set, which
// the caller has already sorted and deduplicated. Writes run through a
// circuit breaker: after repeated failures further saves fail fast until
// the cooldown elapses.
func (c *Coordinator) Save(entries []vocab.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveLocked(entries)
}

func (c *Coordinator) saveLocked(entries []vocab.Entry) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.engines[c.active].ReplaceAll(entries)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		return fmt.Errorf("%w: too many recent failures, retry shortly", ErrPersist)
	}
	return err
}

// Switch migrates the book to the target engine: read everything from
// the current engine, open and fill the target, and only then clear the
// source and persist the new choice. A failure before the target is
// written leaves the original engine active and untouched, so no step
// can strand the book with both engines empty.
func (c *Coordinator) Switch(target string) error {
	kind, ok := ParseEngineKind(target)
	if !ok {
		return fmt.Errorf("unknown storage engine %q", target)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if kind == c.active {
		return nil
	}

	source := c.engines[c.active]
	dest := c.engines[kind]

	entries := source.LoadAll()

	if err := dest.Open(); err != nil {
		return fmt.Errorf("switch to %s: %w", kind, err)
	}
	if err := dest.ReplaceAll(entries); err != nil {
		return fmt.Errorf("switch to %s: %w", kind, err)
	}

	// Target holds the data; from here the switch is committed.
	c.active = kind
	if err := source.Clear(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not clear %s engine: %v\n", source.Kind(), err)
	}
	if err := c.settings.SetString(SettingStorageEngine, string(kind)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save engine choice: %v\n", err)
	}
	return nil
}

// Export snapshots the active engine's contents. It never mutates.
func (c *Coordinator) Export() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries := c.engines[c.active].LoadAll()
	vocab.SortEntries(entries)
	if entries == nil {
		entries = []vocab.Entry{}
	}
	return Snapshot{
		Version:     ExportVersion,
		ExportDate:  time.Now(),
		StorageType: string(c.active),
		Vocabulary:  entries,
	}
}

// Import validates the payload and replaces the active engine's contents
// with it. This is a destructive full replace by design, matching the
// explicit JSON-editing workflow: merge behavior is what Upsert is for.
// Validation failures reject the whole import before anything is written.
func (c *Coordinator) Import(data []byte) ([]vocab.Entry, error) {
	entries, err := ParseSnapshot(data)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	vocab.SortEntries(entries)
	if err := c.saveLocked(entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// ParseSnapshot decodes and validates an export payload, accepting both
// the wrapper object format and the legacy bare-array format.
func ParseSnapshot(data []byte) ([]vocab.Entry, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err == nil && snap.Vocabulary != nil {
		return validateEntries(snap.Vocabulary)
	}

	var legacy []vocab.Entry
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: not a snapshot object or entry array", ErrInvalidImport)
	}
	return validateEntries(legacy)
}

func validateEntries(entries []vocab.Entry) ([]vocab.Entry, error) {
	for i := range entries {
		e := &entries[i]
		if e.Word == "" {
			return nil, fmt.Errorf("%w: entry %d has no word", ErrInvalidImport, i)
		}
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d (%q) has no id", ErrInvalidImport, i, e.Word)
		}
		if !e.Level.Valid() {
			return nil, fmt.Errorf("%w: entry %d (%q) has invalid level %d",
				ErrInvalidImport, i, e.Word, e.Level)
		}
	}
	return entries, nil
}

// Close closes every engine.
func (c *Coordinator) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var firstErr error
	for _, engine := range c.engines {
		if err := engine.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
