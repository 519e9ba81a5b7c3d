package batch

import (
	"path/filepath"
	"testing"

	"github.com/hweilin/vocabook/internal/testutil"
)

func TestReadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	testutil.WriteFile(t, path, []byte(`# starter words
serendipity = 意外的收穫
give up

well-known
12345
one two three four five
`))

	entries, err := ReadWordFile(path)
	if err != nil {
		t.Fatalf("ReadWordFile failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Word != "serendipity" || entries[0].Translation != "意外的收穫" {
		t.Errorf("Expected the translation format parsed, got %+v", entries[0])
	}
	if entries[1].Word != "give up" || entries[1].Translation != "" {
		t.Errorf("Expected the bare-word format parsed, got %+v", entries[1])
	}
	if entries[2].Word != "well-known" {
		t.Errorf("Expected 'well-known', got %+v", entries[2])
	}
}

func TestReadWordFileMissing(t *testing.T) {
	if _, err := ReadWordFile(filepath.Join(t.TempDir(), "absent.txt")); err == nil {
		t.Error("Expected an error for a missing file")
	}
}

func TestReadWordFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	testutil.WriteFile(t, path, []byte("\n# only a comment\n"))

	entries, err := ReadWordFile(path)
	if err != nil {
		t.Fatalf("ReadWordFile failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}
