package quiz

import (
	"errors"
	"testing"

	"github.com/hweilin/vocabook/internal/storage"
	"github.com/hweilin/vocabook/internal/testutil"
	"github.com/hweilin/vocabook/internal/vocab"
)

func newTestEngine(t *testing.T, entries ...vocab.Entry) (*Engine, *vocab.Repository) {
	t.Helper()

	store := &testutil.FakeStore{Entries: entries}
	repo := vocab.NewRepository(store)
	if err := repo.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	settings := storage.NewSettings(t.TempDir())
	return NewEngine(repo, settings), repo
}

func TestStartSamplesOnlySelectedLevels(t *testing.T) {
	engine, _ := newTestEngine(t,
		testutil.Entry("e1", "alpha", vocab.LevelUnfamiliar),
		testutil.Entry("e2", "bravo", vocab.LevelUnfamiliar),
		testutil.Entry("e3", "charlie", vocab.LevelUnfamiliar),
		testutil.Entry("e4", "delta", vocab.LevelUnfamiliar),
		testutil.Entry("e5", "echo", vocab.LevelUnfamiliar),
		testutil.Entry("e6", "foxtrot", vocab.LevelMastered),
		testutil.Entry("e7", "golf", vocab.LevelMastered),
	)

	settings := Settings{SelectedLevels: []vocab.Level{vocab.LevelMastered}, QuestionCount: 10}
	if n := engine.AvailableCount(settings.SelectedLevels); n != 2 {
		t.Errorf("Expected 2 available words, got %d", n)
	}

	if err := engine.Start(settings); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	questions := engine.Questions()
	if len(questions) != 2 {
		t.Fatalf("Expected the question count capped at the pool size 2, got %d", len(questions))
	}
	for _, q := range questions {
		if q.Word.Level != vocab.LevelMastered {
			t.Errorf("Expected only mastered words, got %q at level %d", q.Word.Word, q.Word.Level)
		}
		if q.OriginalLevel != vocab.LevelMastered || q.NewLevel != vocab.LevelMastered {
			t.Errorf("Expected original and new level seeded from the entry, got %d/%d",
				q.OriginalLevel, q.NewLevel)
		}
	}
	if engine.State() != StateInProgress {
		t.Errorf("Expected StateInProgress, got %d", engine.State())
	}
}

func TestStartWithNoCandidates(t *testing.T) {
	engine, _ := newTestEngine(t,
		testutil.Entry("e1", "alpha", vocab.LevelUnfamiliar),
	)

	err := engine.Start(Settings{SelectedLevels: []vocab.Level{vocab.LevelFair}, QuestionCount: 5})
	if !errors.Is(err, ErrNoCandidateWords) {
		t.Fatalf("Expected ErrNoCandidateWords, got %v", err)
	}
	if engine.State() != StateSetup {
		t.Errorf("Expected the session to stay in Setup, got %d", engine.State())
	}
}

func TestSubmitAnswerScoring(t *testing.T) {
	engine, _ := newTestEngine(t,
		testutil.Entry("e1", "alpha", vocab.LevelUnfamiliar),
		testutil.Entry("e2", "bravo", vocab.LevelUnfamiliar),
	)
	if err := engine.Start(Settings{SelectedLevels: vocab.AllLevels(), QuestionCount: 2}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	questions := engine.Questions()
	engine.SubmitAnswer(0, "  "+questions[0].Word.Word+"  ") // whitespace is forgiven
	engine.SubmitAnswer(1, "wrong")
	engine.SubmitAnswer(5, "ignored") // out of range

	result := engine.Complete()
	if result.TotalQuestions != 2 {
		t.Errorf("Expected 2 questions, got %d", result.TotalQuestions)
	}
	if result.CorrectAnswers != 1 {
		t.Errorf("Expected 1 correct answer, got %d", result.CorrectAnswers)
	}
	if result.Score != 50 {
		t.Errorf("Expected score 50, got %d", result.Score)
	}
	if engine.State() != StateCompleted {
		t.Errorf("Expected StateCompleted, got %d", engine.State())
	}

	if got, ok := engine.Result(); !ok || got.Score != 50 {
		t.Errorf("Expected Result to return the stored result, got %+v ok=%v", got, ok)
	}
}

func TestAnswerMatchingIsCaseInsensitive(t *testing.T) {
	engine, _ := newTestEngine(t, testutil.Entry("e1", "Alpha", vocab.LevelUnfamiliar))
	if err := engine.Start(Settings{SelectedLevels: vocab.AllLevels(), QuestionCount: 1}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	engine.SubmitAnswer(0, "ALPHA")
	if q := engine.Questions()[0]; !q.IsCorrect {
		t.Error("Expected a case-insensitive match to count as correct")
	}
}

func TestNavigation(t *testing.T) {
	engine, _ := newTestEngine(t,
		testutil.Entry("e1", "alpha", vocab.LevelUnfamiliar),
		testutil.Entry("e2", "bravo", vocab.LevelUnfamiliar),
		testutil.Entry("e3", "charlie", vocab.LevelUnfamiliar),
	)
	if err := engine.Start(Settings{SelectedLevels: vocab.AllLevels(), QuestionCount: 3}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !engine.Next() || engine.CurrentIndex() != 1 {
		t.Errorf("Expected Next to move to 1, at %d", engine.CurrentIndex())
	}
	if !engine.Previous() || engine.CurrentIndex() != 0 {
		t.Errorf("Expected Previous to move back to 0, at %d", engine.CurrentIndex())
	}
	if engine.Previous() {
		t.Error("Expected Previous at the first question to report no move")
	}
	if !engine.GoTo(2) || engine.CurrentIndex() != 2 {
		t.Errorf("Expected GoTo(2) to land on 2, at %d", engine.CurrentIndex())
	}
	if engine.Next() {
		t.Error("Expected Next at the last question to report no move")
	}
	if engine.GoTo(7) {
		t.Error("Expected an out-of-range GoTo to report no move")
	}
}

func TestApplyLevelChanges(t *testing.T) {
	engine, repo := newTestEngine(t,
		testutil.Entry("e1", "alpha", vocab.LevelUnfamiliar),
		testutil.Entry("e2", "bravo", vocab.LevelUnfamiliar),
	)
	if err := engine.Start(Settings{SelectedLevels: vocab.AllLevels(), QuestionCount: 2}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	questions := engine.Questions()
	engine.SetQuestionLevel(questions[0].ID, vocab.LevelFair)
	engine.SetQuestionLevel("no-such-question", vocab.LevelMastered)
	engine.Complete()

	if applied := engine.ApplyLevelChanges(); applied != 1 {
		t.Fatalf("Expected 1 applied regrade, got %d", applied)
	}

	regraded, ok := repo.FindByWord(questions[0].Word.Word)
	if !ok {
		t.Fatal("Expected the regraded word to still exist")
	}
	if regraded.Level != vocab.LevelFair {
		t.Errorf("Expected level %d after the regrade, got %d", vocab.LevelFair, regraded.Level)
	}

	untouched, _ := repo.FindByWord(questions[1].Word.Word)
	if untouched.Level != vocab.LevelUnfamiliar {
		t.Errorf("Expected the other word to keep its level, got %d", untouched.Level)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	engine, _ := newTestEngine(t)

	if got := engine.LoadSettings(); got.QuestionCount != 10 || len(got.SelectedLevels) != 3 {
		t.Errorf("Expected defaults when nothing is saved, got %+v", got)
	}

	saved := Settings{SelectedLevels: []vocab.Level{vocab.LevelMastered}, QuestionCount: 5}
	engine.SaveSettings(saved)

	got := engine.LoadSettings()
	if got.QuestionCount != 5 {
		t.Errorf("Expected question count 5, got %d", got.QuestionCount)
	}
	if len(got.SelectedLevels) != 1 || got.SelectedLevels[0] != vocab.LevelMastered {
		t.Errorf("Expected only the mastered level, got %v", got.SelectedLevels)
	}
}

func TestReset(t *testing.T) {
	engine, _ := newTestEngine(t, testutil.Entry("e1", "alpha", vocab.LevelUnfamiliar))
	if err := engine.Start(Settings{SelectedLevels: vocab.AllLevels(), QuestionCount: 1}); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	engine.Reset()
	if engine.State() != StateSetup {
		t.Errorf("Expected StateSetup after Reset, got %d", engine.State())
	}
	if len(engine.Questions()) != 0 {
		t.Errorf("Expected no questions after Reset, got %d", len(engine.Questions()))
	}
	if _, ok := engine.Result(); ok {
		t.Error("Expected no result after Reset")
	}
}
