// Package archive keeps timestamped snapshot backups of the vocabulary
// book. A backup is written before any destructive operation so a bad
// import can always be undone by re-importing the latest backup.
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// BackupSnapshot writes the snapshot as pretty-printed JSON into an
// archive directory next to the book and returns the backup path.
func BackupSnapshot(dataDir string, snapshot any) (string, error) {
	archiveDir := filepath.Join(dataDir, "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	name := fmt.Sprintf("vocabulary-%s.json", timestamp)
	path := filepath.Join(archiveDir, name)

	// Two backups within the same second are unlikely but possible.
	if _, err := os.Stat(path); err == nil {
		timestamp = time.Now().Format("20060102-150405.000000")
		name = fmt.Sprintf("vocabulary-%s.json", timestamp)
		path = filepath.Join(archiveDir, name)
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode backup: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return path, nil
}

// Backups lists existing backup files, newest first.
func Backups(dataDir string) ([]string, error) {
	pattern := filepath.Join(dataDir, "archive", "vocabulary-*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	// Timestamped names sort chronologically; reverse for newest first.
	for i, j := 0, len(matches)-1; i < j; i, j = i+1, j-1 {
		matches[i], matches[j] = matches[j], matches[i]
	}
	return matches, nil
}
