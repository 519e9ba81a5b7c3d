// Package storage persists the vocabulary book through one of two
// interchangeable engines: a plain JSON file read and written whole, and
// an indexed, transactional SQLite database. The Coordinator owns which
// engine is active, migrates data between them without loss, and handles
// snapshot export/import. Durable scalar settings (engine choice,
// last-used filters) live in a small JSON key-value store next to the
// data files.
package storage
