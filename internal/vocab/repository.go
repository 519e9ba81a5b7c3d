package vocab

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/hweilin/vocabook/internal"
)

// Store is the persistence contract the repository saves through. The
// concrete implementation lives in the storage package; the repository
// only ever sees the full entry set.
type Store interface {
	Load() ([]Entry, error)
	Save(entries []Entry) error
}

// Switchable is implemented by stores that can migrate their contents to
// another backend engine.
type Switchable interface {
	Switch(target string) error
}

// ErrNotSwitchable is returned by SwitchBackend when the underlying store
// has a single fixed engine.
var ErrNotSwitchable = errors.New("storage backend cannot be switched")

// Repository owns the canonical in-memory entry list. Every mutation is
// persisted through the store before it becomes visible to callers, and
// mutations are serialized by a mutex so two captures of the same new word
// cannot race into duplicate rows.
type Repository struct {
	mu        sync.Mutex
	store     Store
	entries   []Entry
	listeners map[int]func([]Entry)
	nextID    int
}

// NewRepository creates a repository over the given store. Call Load to
// populate it before use.
func NewRepository(store Store) *Repository {
	return &Repository{
		store:     store,
		listeners: make(map[int]func([]Entry)),
	}
}

// Load replaces the in-memory list with the store's current contents.
// Read failures surface as an empty book, not an error; a missing or
// corrupt store is a valid recoverable state.
func (r *Repository) Load() error {
	r.mu.Lock()
	entries, err := r.store.Load()
	if err != nil {
		entries = nil
	}
	SortEntries(entries)
	r.entries = entries
	listeners, snap := r.listenersLocked(), r.snapshotLocked()
	r.mu.Unlock()

	notify(listeners, snap)
	return nil
}

// Upsert inserts or updates an entry. Resolution order:
//
//  1. An entry with the same ID is updated in place, keeping its CreatedAt.
//     If the update renames the word onto another existing entry, the two
//     are merged into the older entry and the renamed one is dropped.
//  2. An entry with the same word (case-insensitive) absorbs the incoming
//     values, keeping its ID and CreatedAt and unioning the source lists.
//  3. Otherwise the entry is inserted as new, generating an ID if absent.
//
// The merged set is persisted before the in-memory list changes; on a
// persist failure the repository still reflects the last-known-good list.
func (r *Repository) Upsert(e Entry) (Entry, error) {
	r.mu.Lock()

	now := time.Now()
	next := r.snapshotLocked()
	e.UpdatedAt = now

	byID := indexByID(next, e.ID)
	byWord := indexByWord(next, e.Word)

	var result Entry
	switch {
	case byID >= 0 && byWord >= 0 && byID != byWord:
		// Renamed onto an existing word: fold into the older entry and
		// drop the renamed one.
		existing := next[byWord]
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
		e.Sources = MergeSources(existing.Sources, e.Sources)
		next[byWord] = e
		next = append(next[:byID], next[byID+1:]...)
		result = e
	case byID >= 0:
		e.CreatedAt = next[byID].CreatedAt
		next[byID] = e
		result = e
	case byWord >= 0:
		existing := next[byWord]
		e.ID = existing.ID
		e.CreatedAt = existing.CreatedAt
		e.Sources = MergeSources(existing.Sources, e.Sources)
		next[byWord] = e
		result = e
	default:
		if e.ID == "" {
			e.ID = internal.GenerateEntryID(e.Word)
		}
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		next = append(next, e)
		result = e
	}

	SortEntries(next)
	if err := r.store.Save(next); err != nil {
		r.mu.Unlock()
		return Entry{}, fmt.Errorf("persist vocabulary: %w", err)
	}
	r.entries = next

	listeners, snap := r.listenersLocked(), r.snapshotLocked()
	r.mu.Unlock()

	notify(listeners, snap)
	return result.Clone(), nil
}

// Remove deletes the entry with the given ID. Removing an absent ID is a
// no-op, not an error.
func (r *Repository) Remove(id string) error {
	r.mu.Lock()

	next := r.snapshotLocked()
	kept := next[:0]
	for _, e := range next {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	next = kept

	if err := r.store.Save(next); err != nil {
		r.mu.Unlock()
		return fmt.Errorf("persist vocabulary: %w", err)
	}
	r.entries = next

	listeners, snap := r.listenersLocked(), r.snapshotLocked()
	r.mu.Unlock()

	notify(listeners, snap)
	return nil
}

// FindByWord returns the entry whose word matches text case-insensitively.
func (r *Repository) FindByWord(text string) (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := indexByWord(r.entries, text); i >= 0 {
		return r.entries[i].Clone(), true
	}
	return Entry{}, false
}

// List returns the entries matching the filter in canonical display order.
func (r *Repository) List(f Filter) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Entry
	for _, e := range r.entries {
		if f.Matches(e) {
			out = append(out, e.Clone())
		}
	}
	SortEntries(out)
	return out
}

// All returns a snapshot of every entry in canonical order.
func (r *Repository) All() []Entry {
	return r.List(Filter{})
}

// Count returns the number of entries in the book.
func (r *Repository) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// CountByLevels returns how many entries fall in any of the given levels,
// so callers can show the quiz pool size before starting.
func (r *Repository) CountByLevels(levels []Level) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, e := range r.entries {
		for _, l := range levels {
			if e.Level == l {
				n++
				break
			}
		}
	}
	return n
}

// SwitchBackend migrates the store to the target engine and reloads the
// in-memory list from it, so repository and backend cannot drift apart.
// The repository mutex makes the multi-step migration exclusive with
// respect to Upsert and Remove.
func (r *Repository) SwitchBackend(target string) error {
	sw, ok := r.store.(Switchable)
	if !ok {
		return ErrNotSwitchable
	}

	r.mu.Lock()
	if err := sw.Switch(target); err != nil {
		r.mu.Unlock()
		return err
	}
	entries, err := r.store.Load()
	if err != nil {
		entries = nil
	}
	SortEntries(entries)
	r.entries = entries

	listeners, snap := r.listenersLocked(), r.snapshotLocked()
	r.mu.Unlock()

	notify(listeners, snap)
	return nil
}

// Subscribe registers a listener called with a fresh snapshot after every
// committed mutation. The returned function unregisters it.
func (r *Repository) Subscribe(fn func([]Entry)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		delete(r.listeners, id)
	}
}

func (r *Repository) snapshotLocked() []Entry {
	out := make([]Entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Clone())
	}
	return out
}

func (r *Repository) listenersLocked() []func([]Entry) {
	out := make([]func([]Entry), 0, len(r.listeners))
	for _, fn := range r.listeners {
		out = append(out, fn)
	}
	return out
}

func notify(listeners []func([]Entry), snap []Entry) {
	for _, fn := range listeners {
		fn(snap)
	}
}

func indexByID(entries []Entry, id string) int {
	if id == "" {
		return -1
	}
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func indexByWord(entries []Entry, word string) int {
	for i, e := range entries {
		if e.SameWord(word) {
			return i
		}
	}
	return -1
}
