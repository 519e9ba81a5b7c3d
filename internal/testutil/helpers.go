// Package testutil provides shared helpers for the package tests:
// canned vocabulary entries and fake stores with failure injection.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hweilin/vocabook/internal/vocab"
)

// Entry builds a vocabulary entry with sensible defaults for tests.
func Entry(id, word string, level vocab.Level) vocab.Entry {
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	return vocab.Entry{
		ID:          id,
		Word:        word,
		Translation: "translation of " + word,
		Level:       level,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// EntryWithSource builds an entry carrying one source citation.
func EntryWithSource(id, word string, level vocab.Level, topicID, title string) vocab.Entry {
	e := Entry(id, word, level)
	e.Sources = []vocab.Source{{TopicID: topicID, Title: title, Section: "content"}}
	return e
}

// WriteFile creates a file with content, making parent directories.
func WriteFile(t *testing.T, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}
