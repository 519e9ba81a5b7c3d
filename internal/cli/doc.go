// Package cli wires the vocabulary book into a command-line surface:
// capturing and listing words, import/export, storage engine management,
// topic browsing and interactive quizzes. Flags and configuration are
// handled with cobra and viper.
package cli
