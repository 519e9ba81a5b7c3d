package storage

import (
	"testing"

	"github.com/hweilin/vocabook/internal/testutil"
	"github.com/hweilin/vocabook/internal/vocab"
)

func openSQLite(t *testing.T, dir string) *SQLiteEngine {
	t.Helper()
	engine := NewSQLiteEngine(dir)
	if err := engine.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { engine.Close() })
	return engine
}

func TestSQLiteEngineRoundTrip(t *testing.T) {
	engine := openSQLite(t, t.TempDir())

	entries := []vocab.Entry{
		testutil.EntryWithSource("e1", "apple", vocab.LevelUnfamiliar, "t1", "Topic One"),
		testutil.Entry("e2", "banana", vocab.LevelMastered),
	}
	if err := engine.ReplaceAll(entries); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	got := engine.LoadAll()
	if len(got) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(got))
	}

	byID := make(map[string]vocab.Entry, len(got))
	for _, e := range got {
		byID[e.ID] = e
	}
	apple, ok := byID["e1"]
	if !ok {
		t.Fatal("Expected entry e1 to be present")
	}
	if apple.Word != "apple" || apple.Translation != "translation of apple" {
		t.Errorf("Expected apple's fields to survive, got %+v", apple)
	}
	if len(apple.Sources) != 1 || apple.Sources[0].Title != "Topic One" {
		t.Errorf("Expected the serialized sources to survive, got %+v", apple.Sources)
	}
	if !apple.CreatedAt.Equal(entries[0].CreatedAt) {
		t.Errorf("Expected CreatedAt to round trip, got %v", apple.CreatedAt)
	}
}

func TestSQLiteEngineReplaceIsFullReplace(t *testing.T) {
	engine := openSQLite(t, t.TempDir())

	if err := engine.ReplaceAll([]vocab.Entry{
		testutil.Entry("e1", "apple", vocab.LevelUnfamiliar),
		testutil.Entry("e2", "banana", vocab.LevelUnfamiliar),
	}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	if err := engine.ReplaceAll([]vocab.Entry{
		testutil.Entry("e3", "cherry", vocab.LevelFair),
	}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}

	got := engine.LoadAll()
	if len(got) != 1 || got[0].ID != "e3" {
		t.Errorf("Expected only the new set to remain, got %+v", got)
	}
}

func TestSQLiteEnginePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	engine := openSQLite(t, dir)
	if err := engine.ReplaceAll([]vocab.Entry{testutil.Entry("e1", "apple", vocab.LevelFair)}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	if err := engine.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened := openSQLite(t, dir)
	got := reopened.LoadAll()
	if len(got) != 1 || got[0].Word != "apple" {
		t.Errorf("Expected the entry to survive a reopen, got %+v", got)
	}
}

func TestSQLiteEngineClear(t *testing.T) {
	engine := openSQLite(t, t.TempDir())

	if err := engine.ReplaceAll([]vocab.Entry{testutil.Entry("e1", "apple", vocab.LevelFair)}); err != nil {
		t.Fatalf("ReplaceAll failed: %v", err)
	}
	if err := engine.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if got := engine.LoadAll(); len(got) != 0 {
		t.Errorf("Expected an empty table after Clear, got %d entries", len(got))
	}
}
