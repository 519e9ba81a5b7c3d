// Package vocab holds the vocabulary book domain model: entries with
// per-topic source citations and familiarity levels, plus the in-memory
// repository that enforces the one-entry-per-word rule and keeps the
// durable copy in sync through a storage backend.
package vocab
