package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const settingsFileName = "settings.json"

// Settings keys used across the application.
const (
	SettingStorageEngine = "storage_engine"
	SettingLastMonth     = "last_month"
	SettingLastSearch    = "last_search"
	SettingLastType      = "last_type"
	SettingLastTag       = "last_tag"
	SettingQuiz          = "quiz_settings"
)

// Settings is a small durable key-value store for scalar and JSON
// settings, kept in its own file so it works regardless of which data
// engine is active. A missing or corrupt file behaves as empty.
type Settings struct {
	mu   sync.Mutex
	path string
}

// NewSettings creates a settings store under dir.
func NewSettings(dir string) *Settings {
	return &Settings{path: filepath.Join(dir, settingsFileName)}
}

// GetString returns the value for key, or def when absent.
func (s *Settings) GetString(key, def string) string {
	var v string
	if !s.Get(key, &v) || v == "" {
		return def
	}
	return v
}

// SetString stores a string value for key.
func (s *Settings) SetString(key, value string) error {
	return s.Set(key, value)
}

// Get decodes the value for key into v, reporting whether it was present.
func (s *Settings) Get(key string, v any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.readAll()[key]
	if !ok {
		return false
	}
	return json.Unmarshal(raw, v) == nil
}

// Set encodes v and stores it under key.
func (s *Settings) Set(key string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.readAll()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	all[key] = raw

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func (s *Settings) readAll() map[string]json.RawMessage {
	all := make(map[string]json.RawMessage)
	data, err := os.ReadFile(s.path)
	if err != nil {
		return all
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return make(map[string]json.RawMessage)
	}
	return all
}
