package archive

import (
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestBackupSnapshot(t *testing.T) {
	dir := t.TempDir()

	snapshot := map[string]any{"version": "2.0", "vocabulary": []string{}}
	path, err := BackupSnapshot(dir, snapshot)
	if err != nil {
		t.Fatalf("BackupSnapshot failed: %v", err)
	}
	if !strings.Contains(path, "archive") {
		t.Errorf("Expected the backup under the archive directory, got %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Reading the backup failed: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Expected valid JSON in the backup: %v", err)
	}
	if decoded["version"] != "2.0" {
		t.Errorf("Expected version '2.0' in the backup, got %v", decoded["version"])
	}
}

func TestBackupSnapshotCollision(t *testing.T) {
	dir := t.TempDir()

	first, err := BackupSnapshot(dir, map[string]string{"n": "1"})
	if err != nil {
		t.Fatalf("BackupSnapshot failed: %v", err)
	}
	second, err := BackupSnapshot(dir, map[string]string{"n": "2"})
	if err != nil {
		t.Fatalf("BackupSnapshot failed: %v", err)
	}
	if first == second {
		t.Error("Expected two backups in the same second to get distinct names")
	}

	backups, err := Backups(dir)
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Errorf("Expected 2 backups listed, got %d", len(backups))
	}
}

func TestBackupsEmpty(t *testing.T) {
	backups, err := Backups(t.TempDir())
	if err != nil {
		t.Fatalf("Backups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("Expected no backups, got %d", len(backups))
	}
}
