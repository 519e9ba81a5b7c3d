package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/hweilin/vocabook/internal/storage"
	"github.com/hweilin/vocabook/internal/vocab"
)

// ErrNoCandidateWords means no entry matches the selected levels, so a
// quiz cannot start. The engine stays in Setup.
var ErrNoCandidateWords = errors.New("no words match the selected levels")

// Settings selects the question pool and session length.
type Settings struct {
	SelectedLevels []vocab.Level `json:"selectedLevels"`
	QuestionCount  int           `json:"questionCount"`
}

// DefaultSettings quizzes every level, ten questions at a time.
func DefaultSettings() Settings {
	return Settings{
		SelectedLevels: vocab.AllLevels(),
		QuestionCount:  10,
	}
}

// Question is one quiz item. Word is a snapshot of the entry at quiz
// start; OriginalLevel preserves the level at that moment so a proposed
// regrade can be compared against it.
type Question struct {
	ID            string
	Word          vocab.Entry
	UserAnswer    string
	IsCorrect     bool
	OriginalLevel vocab.Level
	NewLevel      vocab.Level
}

// Result summarizes a completed session.
type Result struct {
	TotalQuestions int
	CorrectAnswers int
	Score          int
	Questions      []Question
	CompletedAt    time.Time
	Duration       time.Duration
	Settings       Settings
}

// State is the session phase.
type State int

const (
	StateSetup State = iota
	StateInProgress
	StateCompleted
)

// Engine drives one quiz session at a time over the repository.
type Engine struct {
	mu       sync.Mutex
	repo     *vocab.Repository
	settings *storage.Settings

	state     State
	questions []Question
	index     int
	startedAt time.Time
	result    *Result
}

// NewEngine creates a quiz engine over the repository. The settings
// store persists the user's last quiz configuration.
func NewEngine(repo *vocab.Repository, settings *storage.Settings) *Engine {
	return &Engine{repo: repo, settings: settings}
}

// LoadSettings returns the saved quiz settings, or the defaults.
func (q *Engine) LoadSettings() Settings {
	var s Settings
	if !q.settings.Get(storage.SettingQuiz, &s) || len(s.SelectedLevels) == 0 || s.QuestionCount <= 0 {
		return DefaultSettings()
	}
	return s
}

// SaveSettings persists the quiz settings for the next session.
func (q *Engine) SaveSettings(s Settings) {
	if err := q.settings.Set(storage.SettingQuiz, s); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save quiz settings: %v\n", err)
	}
}

// AvailableCount reports how many entries the given levels would offer,
// so callers can show the pool size before starting.
func (q *Engine) AvailableCount(levels []vocab.Level) int {
	return q.repo.CountByLevels(levels)
}

// State returns the session phase.
func (q *Engine) State() State {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.state
}

// Start samples the question set and begins a session. It returns
// ErrNoCandidateWords, without leaving Setup, when no entry matches the
// selected levels.
func (q *Engine) Start(s Settings) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	pool := filterByLevels(q.repo.All(), s.SelectedLevels)
	if len(pool) == 0 {
		return ErrNoCandidateWords
	}
	q.SaveSettings(s)

	// Fisher-Yates shuffle, then take the head.
	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	count := s.QuestionCount
	if count > len(pool) {
		count = len(pool)
	}

	now := time.Now()
	questions := make([]Question, 0, count)
	for _, entry := range pool[:count] {
		questions = append(questions, Question{
			ID:            fmt.Sprintf("quiz_%s_%d", entry.ID, now.UnixMilli()),
			Word:          entry,
			OriginalLevel: entry.Level,
			NewLevel:      entry.Level,
		})
	}

	q.questions = questions
	q.index = 0
	q.state = StateInProgress
	q.startedAt = now
	q.result = nil
	return nil
}

// SubmitAnswer records the answer for the given question: a trimmed,
// case-insensitive exact match against the word counts as correct. It
// does not advance the cursor; out-of-range indexes are ignored.
func (q *Engine) SubmitAnswer(index int, answer string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index < 0 || index >= len(q.questions) {
		return
	}
	trimmed := strings.TrimSpace(answer)
	q.questions[index].UserAnswer = trimmed
	q.questions[index].IsCorrect = strings.EqualFold(trimmed, q.questions[index].Word.Word)
}

// Next moves the cursor forward, reporting whether it moved.
func (q *Engine) Next() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index < len(q.questions)-1 {
		q.index++
		return true
	}
	return false
}

// Previous moves the cursor back, reporting whether it moved.
func (q *Engine) Previous() bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.index > 0 {
		q.index--
		return true
	}
	return false
}

// GoTo jumps to a question; out-of-range requests are no-ops.
func (q *Engine) GoTo(index int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if index >= 0 && index < len(q.questions) {
		q.index = index
		return true
	}
	return false
}

// CurrentIndex returns the cursor position.
func (q *Engine) CurrentIndex() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.index
}

// Questions returns a snapshot of the question list.
func (q *Engine) Questions() []Question {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]Question(nil), q.questions...)
}

// SetQuestionLevel records a proposed regrade for a question. The change
// only reaches the book when ApplyLevelChanges runs.
func (q *Engine) SetQuestionLevel(questionID string, level vocab.Level) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for i := range q.questions {
		if q.questions[i].ID == questionID {
			q.questions[i].NewLevel = level
			return
		}
	}
}

// Complete scores the session and transitions to Completed. Level
// regrades are not written here; that is ApplyLevelChanges.
func (q *Engine) Complete() Result {
	q.mu.Lock()
	defer q.mu.Unlock()

	correct := 0
	for _, question := range q.questions {
		if question.IsCorrect {
			correct++
		}
	}
	score := 0
	if len(q.questions) > 0 {
		score = int(math.Round(float64(correct) / float64(len(q.questions)) * 100))
	}

	completedAt := time.Now()
	result := Result{
		TotalQuestions: len(q.questions),
		CorrectAnswers: correct,
		Score:          score,
		Questions:      append([]Question(nil), q.questions...),
		CompletedAt:    completedAt,
		Duration:       completedAt.Sub(q.startedAt),
		Settings:       q.LoadSettings(),
	}
	q.result = &result
	q.state = StateCompleted
	return result
}

// Result returns the completed session's result, if any.
func (q *Engine) Result() (Result, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.result == nil {
		return Result{}, false
	}
	return *q.result, true
}

// ApplyLevelChanges writes every proposed regrade whose level differs
// from the original back through the repository. Per-item failures are
// logged and do not stop the remaining updates; the number of applied
// changes is returned.
func (q *Engine) ApplyLevelChanges() int {
	q.mu.Lock()
	changed := make([]Question, 0, len(q.questions))
	for _, question := range q.questions {
		if question.NewLevel.Valid() && question.NewLevel != question.OriginalLevel {
			changed = append(changed, question)
		}
	}
	q.mu.Unlock()

	applied := 0
	for _, question := range changed {
		entry := question.Word
		entry.Level = question.NewLevel
		if _, err := q.repo.Upsert(entry); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not regrade %q: %v\n", entry.Word, err)
			continue
		}
		applied++
	}
	return applied
}

// Reset abandons the session and returns to Setup from any state.
func (q *Engine) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.state = StateSetup
	q.questions = nil
	q.index = 0
	q.result = nil
	q.startedAt = time.Time{}
}

func filterByLevels(entries []vocab.Entry, levels []vocab.Level) []vocab.Entry {
	var out []vocab.Entry
	for _, e := range entries {
		for _, l := range levels {
			if e.Level == l {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
