package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hweilin/vocabook/internal/vocab"
)

const blobFileName = "vocabulary_book.json"

// BlobEngine keeps the whole vocabulary book in a single JSON file,
// rewritten on every save. It is the always-available fallback engine.
type BlobEngine struct {
	path string
}

// NewBlobEngine creates a blob engine storing its file under dir.
func NewBlobEngine(dir string) *BlobEngine {
	return &BlobEngine{path: filepath.Join(dir, blobFileName)}
}

// Kind returns EngineJSON.
func (e *BlobEngine) Kind() EngineKind { return EngineJSON }

// Open is a no-op; the file is created lazily on first save.
func (e *BlobEngine) Open() error { return nil }

// LoadAll reads the whole file. A missing or unparseable file is an
// empty book.
func (e *BlobEngine) LoadAll() []vocab.Entry {
	data, err := os.ReadFile(e.path)
	if err != nil {
		return nil
	}

	var entries []vocab.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring corrupt vocabulary file %s: %v\n", e.path, err)
		return nil
	}
	return entries
}

// ReplaceAll overwrites the file with the given set.
func (e *BlobEngine) ReplaceAll(entries []vocab.Entry) error {
	if entries == nil {
		entries = []vocab.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode vocabulary: %v", ErrPersist, err)
	}

	if err := os.MkdirAll(filepath.Dir(e.path), 0755); err != nil {
		return fmt.Errorf("%w: create data directory: %v", ErrPersist, err)
	}
	if err := os.WriteFile(e.path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrPersist, e.path, err)
	}
	return nil
}

// Clear removes the file.
func (e *BlobEngine) Clear() error {
	if err := os.Remove(e.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op.
func (e *BlobEngine) Close() error { return nil }
