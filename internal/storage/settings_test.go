package storage

import (
	"path/filepath"
	"testing"

	"github.com/hweilin/vocabook/internal/testutil"
)

func TestSettingsRoundTrip(t *testing.T) {
	dir := t.TempDir()
	settings := NewSettings(dir)

	if got := settings.GetString(SettingLastMonth, "202507"); got != "202507" {
		t.Errorf("Expected the default for a missing key, got %q", got)
	}

	if err := settings.SetString(SettingLastMonth, "202508"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if got := settings.GetString(SettingLastMonth, ""); got != "202508" {
		t.Errorf("Expected '202508', got %q", got)
	}

	// A fresh instance reads the same file.
	if got := NewSettings(dir).GetString(SettingLastMonth, ""); got != "202508" {
		t.Errorf("Expected the value to persist, got %q", got)
	}
}

func TestSettingsStructuredValues(t *testing.T) {
	settings := NewSettings(t.TempDir())

	type prefs struct {
		Count int `json:"count"`
	}

	var got prefs
	if settings.Get(SettingQuiz, &got) {
		t.Error("Expected Get to report a missing key")
	}

	if err := settings.Set(SettingQuiz, prefs{Count: 7}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !settings.Get(SettingQuiz, &got) || got.Count != 7 {
		t.Errorf("Expected count 7 back, got %+v", got)
	}
}

func TestSettingsKeysAreIndependent(t *testing.T) {
	settings := NewSettings(t.TempDir())

	if err := settings.SetString(SettingLastSearch, "apple"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if err := settings.SetString(SettingLastTag, "news"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}

	if got := settings.GetString(SettingLastSearch, ""); got != "apple" {
		t.Errorf("Expected 'apple', got %q", got)
	}
	if got := settings.GetString(SettingLastTag, ""); got != "news" {
		t.Errorf("Expected 'news', got %q", got)
	}
}

func TestSettingsCorruptFileActsEmpty(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, filepath.Join(dir, "settings.json"), []byte("{{{"))

	settings := NewSettings(dir)
	if got := settings.GetString(SettingLastMonth, "fallback"); got != "fallback" {
		t.Errorf("Expected the default for a corrupt file, got %q", got)
	}

	// Writes still work and replace the corrupt file.
	if err := settings.SetString(SettingLastMonth, "202501"); err != nil {
		t.Fatalf("SetString failed: %v", err)
	}
	if got := settings.GetString(SettingLastMonth, ""); got != "202501" {
		t.Errorf("Expected '202501', got %q", got)
	}
}
