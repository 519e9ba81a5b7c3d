package vocab

import (
	"sort"
	"strings"
	"time"
)

// Source is a citation linking an entry to the topic it was captured from.
// Two sources are considered the same citation when both TopicID and Title
// match.
type Source struct {
	TopicID string `json:"topicId"`
	Title   string `json:"title"`
	Section string `json:"section,omitempty"`
}

// Entry is one row of the vocabulary book. The word text is unique across
// the book, compared case-insensitively.
type Entry struct {
	ID           string    `json:"id"`
	Word         string    `json:"word"`
	Phonetic     string    `json:"phonetic,omitempty"`
	Translation  string    `json:"translation"`
	PartOfSpeech string    `json:"partOfSpeech,omitempty"`
	Level        Level     `json:"level"`
	Sources      []Source  `json:"sources"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SameWord reports whether the entry's word matches text, ignoring case.
func (e Entry) SameWord(text string) bool {
	return strings.EqualFold(e.Word, text)
}

// Clone returns a deep copy of the entry so callers cannot mutate the
// repository's sources slice through a returned snapshot.
func (e Entry) Clone() Entry {
	c := e
	c.Sources = append([]Source(nil), e.Sources...)
	return c
}

// MergeSources unions extra into existing, skipping citations already
// present by (TopicID, Title). Order of existing citations is preserved;
// new ones append in their given order.
func MergeSources(existing, extra []Source) []Source {
	merged := append([]Source(nil), existing...)
	for _, s := range extra {
		found := false
		for _, have := range merged {
			if have.TopicID == s.TopicID && have.Title == s.Title {
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, s)
		}
	}
	return merged
}

// SortEntries orders entries for display: level ascending (unfamiliar
// words first), then word alphabetically ignoring case. The order is
// recomputed on every load and save rather than stored.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Level != entries[j].Level {
			return entries[i].Level < entries[j].Level
		}
		return strings.ToLower(entries[i].Word) < strings.ToLower(entries[j].Word)
	})
}

// Filter selects a subset of entries. The zero value matches everything.
type Filter struct {
	// Level restricts results to a single level when non-zero.
	Level Level
	// Search matches case-insensitive substrings of the word or its
	// translation.
	Search string
}

// Matches reports whether the entry passes the filter.
func (f Filter) Matches(e Entry) bool {
	if f.Level != 0 && e.Level != f.Level {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(e.Word), needle) &&
			!strings.Contains(strings.ToLower(e.Translation), needle) {
			return false
		}
	}
	return true
}
