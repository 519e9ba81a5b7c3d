package internal

import (
	"strings"
	"testing"
)

func TestGenerateEntryID(t *testing.T) {
	id := GenerateEntryID("serendipity")

	parts := strings.SplitN(id, "_", 2)
	if len(parts) != 2 {
		t.Fatalf("Expected 'millis_hash' format, got %q", id)
	}
	if len(parts[1]) != 8 {
		t.Errorf("Expected an 8 character hash suffix, got %q", parts[1])
	}

	// The hash half is stable for the same word.
	other := GenerateEntryID("serendipity")
	if strings.SplitN(other, "_", 2)[1] != parts[1] {
		t.Error("Expected the same word to produce the same hash suffix")
	}

	different := GenerateEntryID("different")
	if strings.SplitN(different, "_", 2)[1] == parts[1] {
		t.Error("Expected different words to produce different hash suffixes")
	}
}
