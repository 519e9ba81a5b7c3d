package gesture

import (
	"sync"
	"time"
)

// State is the capture session's current phase.
type State int

const (
	// StateIdle means no selection is in flight.
	StateIdle State = iota
	// StateSelecting means input ended and the engine is waiting for
	// the platform selection to settle.
	StateSelecting
	// StateCandidateReady means a valid selection exists and the
	// floating hint is showing.
	StateCandidateReady
	// StateMenuShown means the action menu is open, waiting for the
	// user to confirm or dismiss.
	StateMenuShown
)

// Config tunes the engine's timers and UI hooks. Durations of zero take
// the defaults; the hooks may be nil.
type Config struct {
	// SettleDelay is the debounce after mouse-up/touch-end before the
	// selection is read, letting the platform finalize it.
	SettleDelay time.Duration
	// LongPressDelay is how long a touch must hold still to open the
	// menu.
	LongPressDelay time.Duration
	// MenuTimeout auto-dismisses an untouched menu.
	MenuTimeout time.Duration

	// Viewport supplies the visible scrolled area for popup clamping.
	Viewport func() Viewport

	// OnHint fires when a valid selection settles, with the clamped
	// hint position.
	OnHint func(Point)
	// OnMenu fires when the action menu opens, with its clamped
	// position.
	OnMenu func(Point)
	// OnDismiss fires when the hint or menu goes away without a
	// capture.
	OnDismiss func()
}

const (
	defaultSettleDelay    = 50 * time.Millisecond
	defaultLongPressDelay = 800 * time.Millisecond
	defaultMenuTimeout    = 5 * time.Second
)

// Engine is the per-session selection state machine. It tracks a single
// pointer or touch sequence at a time; on multi-touch devices only the
// first active touch is followed. Timer callbacks run on their own
// goroutines, so all state is mutex-guarded, and a generation counter
// keeps a timer that lost the race to Stop from acting on stale state.
type Engine struct {
	mu  sync.Mutex
	cfg Config
	sel SelectionReader

	state     State
	candidate Candidate
	menuPos   Point
	hintPos   Point

	settleTimer *time.Timer
	pressTimer  *time.Timer
	menuTimer   *time.Timer
	gen         uint64

	touchActive  bool
	lastTouchPos Point
}

// NewEngine creates a gesture engine over the given selection reader.
func NewEngine(sel SelectionReader, cfg Config) *Engine {
	if cfg.SettleDelay <= 0 {
		cfg.SettleDelay = defaultSettleDelay
	}
	if cfg.LongPressDelay <= 0 {
		cfg.LongPressDelay = defaultLongPressDelay
	}
	if cfg.MenuTimeout <= 0 {
		cfg.MenuTimeout = defaultMenuTimeout
	}
	if cfg.Viewport == nil {
		cfg.Viewport = func() Viewport { return Viewport{Width: 1024, Height: 768} }
	}
	return &Engine{cfg: cfg, sel: sel}
}

// State returns the current phase.
func (g *Engine) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// MenuPosition returns where the action menu is anchored.
func (g *Engine) MenuPosition() Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.menuPos
}

// HintPosition returns where the capture hint is anchored.
func (g *Engine) HintPosition() Point {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.hintPos
}

// Handle feeds one normalized event into the state machine. It reports
// whether the engine consumed the event, in which case the adapter
// should suppress the platform's native behavior (such as the native
// context menu).
func (g *Engine) Handle(ev Event) bool {
	g.mu.Lock()
	var after func()
	handled := false

	switch ev.Kind {
	case KindPointerUp:
		if ev.InTextRegion {
			g.beginSettleLocked(ev)
			handled = true
		}

	case KindTouchStart:
		if ev.InTextRegion && !g.touchActive {
			g.touchActive = true
			g.lastTouchPos = ev.Pos
			g.beginLongPressLocked(ev)
			handled = true
		}

	case KindTouchMove:
		g.stopTimerLocked(&g.pressTimer)

	case KindTouchEnd:
		g.stopTimerLocked(&g.pressTimer)
		g.touchActive = false
		// Lifting the finger after a long press leaves the menu up.
		if ev.InTextRegion && g.state != StateMenuShown {
			g.beginSettleLocked(ev)
			handled = true
		}

	case KindCancel:
		g.stopTimerLocked(&g.pressTimer)
		g.stopTimerLocked(&g.settleTimer)
		g.touchActive = false
		if g.state != StateMenuShown {
			after = g.resetLocked()
		}

	case KindContextAction:
		handled, after = g.contextActionLocked(ev)

	case KindDoubleTap:
		if ev.InTextRegion {
			word := ExpandWordAt(ev.Text, ev.CharIndex)
			if IsValidWord(word) {
				after = g.showMenuLocked(Candidate{
					Text:        CleanText(word),
					SourceType:  ev.SourceType,
					SourceIndex: ev.SourceIndex,
					Pos:         ev.Pos,
				}, ev.Pos)
				handled = true
			}
		}

	case KindOutsideTap:
		if g.state != StateIdle {
			after = g.resetLocked()
		}
	}

	g.mu.Unlock()
	if after != nil {
		after()
	}
	return handled
}

// Resolve confirms the "add to vocabulary" action from the open menu,
// returning the candidate and resetting the session. ok is false when no
// menu is open.
func (g *Engine) Resolve() (Candidate, bool) {
	g.mu.Lock()
	if g.state != StateMenuShown {
		g.mu.Unlock()
		return Candidate{}, false
	}
	cand := g.candidate
	g.stopAllTimersLocked()
	g.state = StateIdle
	g.candidate = Candidate{}
	g.mu.Unlock()
	return cand, true
}

// Dismiss closes the menu or hint without capturing.
func (g *Engine) Dismiss() {
	g.mu.Lock()
	after := g.resetLocked()
	g.mu.Unlock()
	if after != nil {
		after()
	}
}

// beginSettleLocked waits out the selection debounce, then reads and
// validates the platform selection.
func (g *Engine) beginSettleLocked(ev Event) {
	g.stopTimerLocked(&g.settleTimer)
	g.state = StateSelecting
	gen := g.bumpLocked()
	g.settleTimer = time.AfterFunc(g.cfg.SettleDelay, func() {
		g.settle(gen, ev)
	})
}

func (g *Engine) settle(gen uint64, ev Event) {
	g.mu.Lock()
	if gen != g.gen || g.settleTimer == nil || g.state != StateSelecting {
		g.mu.Unlock()
		return
	}

	var after func()
	text, rect, ok := g.sel.Selection()
	if ok && IsValidWord(text) {
		g.state = StateCandidateReady
		g.candidate = Candidate{
			Text:        CleanText(text),
			SourceType:  ev.SourceType,
			SourceIndex: ev.SourceIndex,
			Pos:         ev.Pos,
		}
		g.hintPos = HintPosition(rect, g.cfg.Viewport())
		if g.cfg.OnHint != nil {
			pos := g.hintPos
			hook := g.cfg.OnHint
			after = func() { hook(pos) }
		}
	} else {
		after = g.resetLocked()
	}
	g.mu.Unlock()
	if after != nil {
		after()
	}
}

// beginLongPressLocked arms the touch-and-hold timer; firing opens the
// menu as if the user had right-clicked.
func (g *Engine) beginLongPressLocked(ev Event) {
	g.stopTimerLocked(&g.pressTimer)
	gen := g.bumpLocked()
	g.pressTimer = time.AfterFunc(g.cfg.LongPressDelay, func() {
		g.longPress(gen, ev)
	})
}

func (g *Engine) longPress(gen uint64, ev Event) {
	g.mu.Lock()
	if gen != g.gen || g.pressTimer == nil || !g.touchActive {
		g.mu.Unlock()
		return
	}

	var after func()
	text, rect, ok := g.sel.Selection()
	if ok && IsValidWord(text) {
		pos := g.lastTouchPos
		if pos == (Point{}) {
			pos = Point{X: rect.Left, Y: rect.Bottom}
		}
		after = g.showMenuLocked(Candidate{
			Text:        CleanText(text),
			SourceType:  ev.SourceType,
			SourceIndex: ev.SourceIndex,
			Pos:         pos,
		}, pos)
	}
	g.mu.Unlock()
	if after != nil {
		after()
	}
}

func (g *Engine) contextActionLocked(ev Event) (bool, func()) {
	if !ev.InTextRegion {
		if g.state == StateMenuShown {
			return false, g.resetLocked()
		}
		return false, nil
	}

	text, rect, ok := g.sel.Selection()
	if !ok || !IsValidWord(text) {
		return false, g.resetLocked()
	}

	pos := ev.Pos
	if pos == (Point{}) {
		// Coordinates can be missing for keyboard-driven context
		// gestures; fall back to the selection rectangle.
		pos = Point{X: rect.Left, Y: rect.Bottom}
	}
	after := g.showMenuLocked(Candidate{
		Text:        CleanText(text),
		SourceType:  ev.SourceType,
		SourceIndex: ev.SourceIndex,
		Pos:         pos,
	}, pos)
	return true, after
}

// showMenuLocked opens the action menu and arms the auto-expiry timer.
func (g *Engine) showMenuLocked(cand Candidate, pos Point) func() {
	g.stopAllTimersLocked()
	g.state = StateMenuShown
	g.candidate = cand
	g.menuPos = ClampMenuPosition(pos, g.cfg.Viewport())

	gen := g.bumpLocked()
	g.menuTimer = time.AfterFunc(g.cfg.MenuTimeout, func() {
		g.expireMenu(gen)
	})

	if g.cfg.OnMenu != nil {
		pos := g.menuPos
		hook := g.cfg.OnMenu
		return func() { hook(pos) }
	}
	return nil
}

func (g *Engine) expireMenu(gen uint64) {
	g.mu.Lock()
	if gen != g.gen || g.state != StateMenuShown {
		g.mu.Unlock()
		return
	}
	after := g.resetLocked()
	g.mu.Unlock()
	if after != nil {
		after()
	}
}

// resetLocked drops back to Idle and returns the dismiss hook to invoke
// once the lock is released.
func (g *Engine) resetLocked() func() {
	wasActive := g.state != StateIdle
	g.stopAllTimersLocked()
	g.state = StateIdle
	g.candidate = Candidate{}
	if wasActive && g.cfg.OnDismiss != nil {
		return g.cfg.OnDismiss
	}
	return nil
}

// bumpLocked invalidates every outstanding timer callback.
func (g *Engine) bumpLocked() uint64 {
	g.gen++
	return g.gen
}

func (g *Engine) stopAllTimersLocked() {
	g.bumpLocked()
	g.stopTimerLocked(&g.settleTimer)
	g.stopTimerLocked(&g.pressTimer)
	g.stopTimerLocked(&g.menuTimer)
}

func (g *Engine) stopTimerLocked(t **time.Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
