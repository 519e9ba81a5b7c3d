// Package gesture turns raw pointer and touch events into a single
// normalized "candidate word selected" signal. Thin platform adapters
// produce tagged Event values; one modality-agnostic state machine
// consumes them, validates the selected text, positions the floating
// action menu, and emits a Candidate when the user confirms the capture.
package gesture
