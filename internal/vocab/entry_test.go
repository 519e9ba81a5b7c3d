package vocab

import (
	"testing"
)

func TestSameWord(t *testing.T) {
	e := Entry{Word: "Serendipity"}

	if !e.SameWord("serendipity") {
		t.Error("Expected case-insensitive match for 'serendipity'")
	}
	if !e.SameWord("SERENDIPITY") {
		t.Error("Expected case-insensitive match for 'SERENDIPITY'")
	}
	if e.SameWord("serendipitous") {
		t.Error("Did not expect match for a different word")
	}
}

func TestMergeSources(t *testing.T) {
	a := []Source{
		{TopicID: "2025070101", Title: "Morning Talk", Section: "content"},
		{TopicID: "2025070102", Title: "Evening News", Section: "content"},
	}
	b := []Source{
		{TopicID: "2025070101", Title: "Morning Talk", Section: "vocabulary"},
		{TopicID: "2025070103", Title: "Weather", Section: "content"},
	}

	merged := MergeSources(a, b)
	if len(merged) != 3 {
		t.Fatalf("Expected 3 merged sources, got %d", len(merged))
	}

	// Same topic and title is the same citation even when the section
	// differs; the first occurrence wins.
	if merged[0].Section != "content" {
		t.Errorf("Expected first occurrence to win, got section '%s'", merged[0].Section)
	}
}

func TestMergeSourcesIdempotent(t *testing.T) {
	sources := []Source{{TopicID: "2025070101", Title: "Morning Talk"}}

	merged := MergeSources(sources, sources)
	if len(merged) != 1 {
		t.Errorf("Expected merging a list with itself to keep 1 source, got %d", len(merged))
	}

	again := MergeSources(merged, sources)
	if len(again) != 1 {
		t.Errorf("Expected repeated merge to stay at 1 source, got %d", len(again))
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := Entry{
		ID:      "e1",
		Word:    "apple",
		Sources: []Source{{TopicID: "t1", Title: "A"}},
	}

	clone := original.Clone()
	clone.Sources[0].Title = "B"

	if original.Sources[0].Title != "A" {
		t.Error("Mutating a clone's sources must not affect the original")
	}
}

func TestSortEntries(t *testing.T) {
	entries := []Entry{
		{Word: "banana", Level: LevelMastered},
		{Word: "Cherry", Level: LevelUnfamiliar},
		{Word: "apple", Level: LevelUnfamiliar},
	}

	SortEntries(entries)

	if entries[0].Word != "apple" || entries[1].Word != "Cherry" {
		t.Errorf("Expected unfamiliar words alphabetically first, got %q then %q",
			entries[0].Word, entries[1].Word)
	}
	if entries[2].Word != "banana" {
		t.Errorf("Expected mastered word last, got %q", entries[2].Word)
	}
}

func TestFilterMatches(t *testing.T) {
	e := Entry{Word: "Serendipity", Translation: "意外的收穫", Level: LevelFair}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"level match", Filter{Level: LevelFair}, true},
		{"level mismatch", Filter{Level: LevelMastered}, false},
		{"word search", Filter{Search: "seren"}, true},
		{"translation search", Filter{Search: "收穫"}, true},
		{"search mismatch", Filter{Search: "xyz"}, false},
		{"level and search", Filter{Level: LevelFair, Search: "SEREN"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(e); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelKeysAndLabels(t *testing.T) {
	if LevelUnfamiliar.Key() != "unknown" {
		t.Errorf("Expected key 'unknown', got '%s'", LevelUnfamiliar.Key())
	}
	if LevelFair.Key() != "fair" {
		t.Errorf("Expected key 'fair', got '%s'", LevelFair.Key())
	}
	if LevelMastered.Key() != "known" {
		t.Errorf("Expected key 'known', got '%s'", LevelMastered.Key())
	}

	for _, l := range AllLevels() {
		if !l.Valid() {
			t.Errorf("Expected level %d to be valid", l)
		}
		if back := LevelFromKey(l.Key()); back != l {
			t.Errorf("Expected round trip through key for level %d, got %d", l, back)
		}
	}

	if Level(0).Valid() || Level(4).Valid() {
		t.Error("Expected levels outside 1..3 to be invalid")
	}
}
