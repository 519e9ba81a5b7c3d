package topic

import (
	"fmt"
	"os"
	"strings"

	"github.com/hweilin/vocabook/internal/storage"
)

// Filters are the last-used browse filters, remembered across runs.
type Filters struct {
	Month  string
	Search string
	Type   string
	Tag    string
}

// LoadFilters reads the saved filters, defaulting the month to the
// current one on a fresh profile.
func LoadFilters(s *storage.Settings) Filters {
	f := Filters{
		Month: s.GetString(storage.SettingLastMonth, CurrentMonth()),
	}
	f.Search = s.GetString(storage.SettingLastSearch, "")
	f.Type = s.GetString(storage.SettingLastType, "")
	f.Tag = s.GetString(storage.SettingLastTag, "")
	return f
}

// SaveFilters persists the filters for the next run.
func SaveFilters(s *storage.Settings, f Filters) {
	pairs := map[string]string{
		storage.SettingLastMonth:  f.Month,
		storage.SettingLastSearch: f.Search,
		storage.SettingLastType:   f.Type,
		storage.SettingLastTag:    f.Tag,
	}
	for key, value := range pairs {
		if err := s.SetString(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not save setting %s: %v\n", key, err)
		}
	}
}

// Matches reports whether a topic passes the type, tag and search
// filters (month selection happens at load time).
func (f Filters) Matches(t Topic) bool {
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, tag := range t.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), needle) &&
			!strings.Contains(strings.ToLower(t.ID), needle) {
			return false
		}
	}
	return true
}
