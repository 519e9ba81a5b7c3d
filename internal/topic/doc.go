// Package topic reads the externally supplied radio-program data files:
// the month list, the tag list and the per-month arrays of transcript
// topics with their glossaries and quizzes. The files are consumed
// read-only; load problems surface as empty results, never errors.
package topic
