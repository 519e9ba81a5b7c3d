package storage

import "errors"

var (
	// ErrUnavailable means the requested engine cannot be used in this
	// environment. The coordinator recovers by falling back to the JSON
	// engine.
	ErrUnavailable = errors.New("storage engine unavailable")

	// ErrPersist classifies a failed write to the active engine. The
	// in-memory list is left unchanged so the caller can retry.
	ErrPersist = errors.New("persist failed")

	// ErrInvalidImport rejects a malformed import payload before any
	// destructive write happens.
	ErrInvalidImport = errors.New("invalid import format")
)
