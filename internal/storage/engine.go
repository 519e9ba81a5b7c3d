package storage

import "github.com/hweilin/vocabook/internal/vocab"

// EngineKind names one of the two persistence engines.
type EngineKind string

const (
	// EngineJSON is the simple blob engine: the whole book in one JSON
	// file, rewritten on every save.
	EngineJSON EngineKind = "json"
	// EngineSQLite is the indexed, transactional record store.
	EngineSQLite EngineKind = "sqlite"
)

// ParseEngineKind maps an engine name to its kind. It also accepts the
// legacy browser-era names so old settings and snapshot files keep
// working.
func ParseEngineKind(name string) (EngineKind, bool) {
	switch name {
	case "json", "localstorage", "localStorage":
		return EngineJSON, true
	case "sqlite", "indexeddb", "indexedDB":
		return EngineSQLite, true
	}
	return "", false
}

// Engine is the contract both persistence engines satisfy. Read failures
// never escape an engine: LoadAll reports missing or corrupt state as an
// empty book, which is a valid recoverable state. Write failures are
// returned loudly so the coordinator can classify them for the user.
type Engine interface {
	// Kind identifies the engine.
	Kind() EngineKind
	// Open prepares the engine, creating schema or directories as
	// needed. It returns ErrUnavailable when the environment cannot
	// support the engine.
	Open() error
	// LoadAll returns every stored entry, or an empty slice when the
	// store is missing, empty or corrupt.
	LoadAll() []vocab.Entry
	// ReplaceAll atomically swaps the stored set for the given one.
	ReplaceAll(entries []vocab.Entry) error
	// Clear empties this engine's storage without touching the other
	// engine.
	Clear() error
	// Close releases any held resources.
	Close() error
}
