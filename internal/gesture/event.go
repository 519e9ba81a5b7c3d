package gesture

// Kind tags a normalized input event.
type Kind int

const (
	// KindPointerUp is a mouse button release after a possible drag
	// selection.
	KindPointerUp Kind = iota
	// KindContextAction is a right click (or platform context gesture).
	KindContextAction
	// KindDoubleTap is a double click on a text run.
	KindDoubleTap
	// KindTouchStart begins a touch sequence.
	KindTouchStart
	// KindTouchMove is finger movement during a touch sequence.
	KindTouchMove
	// KindTouchEnd lifts the finger.
	KindTouchEnd
	// KindCancel aborts the current touch sequence.
	KindCancel
	// KindOutsideTap is a click or tap outside the text region and menu.
	KindOutsideTap
)

// Modality records which input device produced an event.
type Modality int

const (
	ModalityMouse Modality = iota
	ModalityTouch
)

// Point is a page coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is the bounding box of the current text selection, in page
// coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Event is one normalized input event produced by a platform adapter.
type Event struct {
	Kind     Kind
	Modality Modality
	Pos      Point

	// InTextRegion is true when the event happened inside a designated
	// capturable text area.
	InTextRegion bool

	// SourceType and SourceIndex identify which text run of the topic
	// the event targets ("content" or "vocabulary" plus its index).
	SourceType  string
	SourceIndex int

	// Text and CharIndex are set for KindDoubleTap: the full text run
	// under the pointer and the estimated character hit by the click,
	// used for word-boundary expansion.
	Text      string
	CharIndex int
}

// Viewport describes the visible scrolled area used for menu clamping.
type Viewport struct {
	Width      float64
	Height     float64
	ScrollLeft float64
	ScrollTop  float64
}

// SelectionReader reports the platform's current text selection. It is
// the adapter-side analog of window.getSelection.
type SelectionReader interface {
	// Selection returns the selected text and its bounding box; ok is
	// false when nothing is selected.
	Selection() (text string, rect Rect, ok bool)
}

// Candidate is the captured text handed to the add-word flow once the
// user confirms. It is ephemeral: consumed by the edit form and
// discarded after save or cancel.
type Candidate struct {
	Text        string
	SourceType  string
	SourceIndex int
	Pos         Point
}
