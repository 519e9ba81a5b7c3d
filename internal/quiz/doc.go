// Package quiz runs self-test sessions over the vocabulary book: it
// samples entries by familiarity level, checks typed answers, scores the
// session and writes opted-in level changes back through the repository.
package quiz
