package testutil

import (
	"errors"

	"github.com/hweilin/vocabook/internal/vocab"
)

// FakeStore is an in-memory vocab.Store with failure injection for
// exercising the repository's persist-before-commit behavior.
type FakeStore struct {
	Entries   []vocab.Entry
	SaveCalls int
	LoadErr   error
	SaveErr   error
}

// Load returns a copy of the stored entries, or the injected error.
func (s *FakeStore) Load() ([]vocab.Entry, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	out := make([]vocab.Entry, len(s.Entries))
	for i, e := range s.Entries {
		out[i] = e.Clone()
	}
	return out, nil
}

// Save replaces the stored entries, or fails with the injected error.
func (s *FakeStore) Save(entries []vocab.Entry) error {
	s.SaveCalls++
	if s.SaveErr != nil {
		return s.SaveErr
	}
	out := make([]vocab.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	s.Entries = out
	return nil
}

// FakeSwitchableStore also implements vocab.Switchable, recording the
// requested target.
type FakeSwitchableStore struct {
	FakeStore
	SwitchedTo string
	SwitchErr  error
	// AfterSwitch, when set, becomes the store contents once Switch
	// succeeds, simulating a reload from the new backend.
	AfterSwitch []vocab.Entry
}

// Switch records the target and swaps in the post-switch contents.
func (s *FakeSwitchableStore) Switch(target string) error {
	if s.SwitchErr != nil {
		return s.SwitchErr
	}
	s.SwitchedTo = target
	if s.AfterSwitch != nil {
		s.Entries = s.AfterSwitch
	}
	return nil
}

// ErrInjected is a distinguishable failure for injection tests.
var ErrInjected = errors.New("injected failure")
