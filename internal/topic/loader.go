package topic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Loader reads topic data files from a directory, keeping parsed month
// files in an in-process cache so repeated lookups do not re-read disk.
type Loader struct {
	dir   string
	cache *gocache.Cache
}

// NewLoader creates a loader over the given data directory.
func NewLoader(dir string) *Loader {
	return &Loader{
		dir:   dir,
		cache: gocache.New(10*time.Minute, 30*time.Minute),
	}
}

// Months returns the available months, newest first. Missing or broken
// files yield an empty list.
func (l *Loader) Months() []string {
	var months []string
	l.readJSON("months.json", &months)
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// Tags returns the known topic tags.
func (l *Loader) Tags() []string {
	var tags []string
	l.readJSON("tag.json", &tags)
	return tags
}

// Month returns the topics for a month like "2025-07" or "202507",
// sorted by topic id descending (newest first).
func (l *Loader) Month(month string) []Topic {
	file := strings.ReplaceAll(month, "-", "") + ".json"
	if cached, found := l.cache.Get(file); found {
		return cached.([]Topic)
	}

	var topics []Topic
	l.readJSON(file, &topics)
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].ID > topics[j].ID
	})

	l.cache.Set(file, topics, gocache.DefaultExpiration)
	return topics
}

// Find returns the topic with the given id within a month.
func (l *Loader) Find(month, id string) (Topic, bool) {
	for _, t := range l.Month(month) {
		if t.ID == id {
			return t, true
		}
	}
	return Topic{}, false
}

func (l *Loader) readJSON(name string, v any) {
	data, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ignoring broken data file %s: %v\n", name, err)
	}
}

// CurrentMonth returns the current month in YYYYMM form, the default
// month filter for a fresh profile.
func CurrentMonth() string {
	return time.Now().Format("200601")
}
