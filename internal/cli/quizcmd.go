package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hweilin/vocabook/internal/quiz"
	"github.com/hweilin/vocabook/internal/vocab"
)

var (
	quizLevels []string
	quizCount  int
)

// quizCmd runs an interactive spelling quiz session.
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a spelling quiz over the vocabulary book",
	Long: `Quiz samples a random set of entries from the selected familiarity
levels and asks for each word given its translation. After the session
it shows the score and offers to regrade each word's level based on how
you did; accepted regrades are written back to the book.

The level selection and question count are remembered for the next
session.`,
	Args: cobra.NoArgs,
	RunE: runQuiz,
}

func init() {
	rootCmd.AddCommand(quizCmd)

	quizCmd.Flags().StringSliceVarP(&quizLevels, "levels", "l", nil, "levels to draw from (default: last session's)")
	quizCmd.Flags().IntVarP(&quizCount, "count", "n", 0, "number of questions (default: last session's)")
}

func runQuiz(cmd *cobra.Command, args []string) error {
	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	engine := quiz.NewEngine(repo, coord.Settings())
	settings := engine.LoadSettings()

	if cmd.Flags().Changed("levels") {
		levels := make([]vocab.Level, 0, len(quizLevels))
		for _, s := range quizLevels {
			level, err := parseLevel(s)
			if err != nil {
				return err
			}
			levels = append(levels, level)
		}
		settings.SelectedLevels = levels
	}
	if cmd.Flags().Changed("count") {
		if quizCount <= 0 {
			return fmt.Errorf("question count must be positive, got %d", quizCount)
		}
		settings.QuestionCount = quizCount
	}

	available := engine.AvailableCount(settings.SelectedLevels)
	fmt.Printf("%d words available at the selected levels\n", available)

	if err := engine.Start(settings); err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	questions := engine.Questions()
	for i, question := range questions {
		fmt.Printf("\nQuestion %d/%d\n", i+1, len(questions))
		fmt.Printf("Translation: %s\n", question.Word.Translation)
		if question.Word.Phonetic != "" {
			fmt.Printf("Phonetic:    /%s/\n", question.Word.Phonetic)
		}
		fmt.Print("Your answer: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: input closed, finishing quiz early\n")
			break
		}
		engine.SubmitAnswer(i, strings.TrimSpace(line))
		engine.Next()
	}

	result := engine.Complete()
	fmt.Printf("\nScore: %d%% (%d/%d correct, %s)\n",
		result.Score, result.CorrectAnswers, result.TotalQuestions,
		result.Duration.Round(time.Second))

	for _, question := range result.Questions {
		mark := "✓"
		if !question.IsCorrect {
			mark = "✗"
		}
		fmt.Printf("  %s %s", mark, question.Word.Word)
		if !question.IsCorrect {
			fmt.Printf(" (answered %q)", question.UserAnswer)
		}
		fmt.Println()

		suggested := suggestLevel(question)
		if suggested == question.OriginalLevel {
			continue
		}
		prompt := fmt.Sprintf("    Regrade %q from %s to %s?",
			question.Word.Word, question.OriginalLevel.Label(), suggested.Label())
		if confirm(prompt) {
			engine.SetQuestionLevel(question.ID, suggested)
		}
	}

	if applied := engine.ApplyLevelChanges(); applied > 0 {
		fmt.Printf("Updated %d levels\n", applied)
	}
	return nil
}

// suggestLevel proposes a regrade: a correct answer nudges the word one
// level toward mastered, a miss drops it back to unfamiliar.
func suggestLevel(q quiz.Question) vocab.Level {
	if !q.IsCorrect {
		return vocab.LevelUnfamiliar
	}
	if q.OriginalLevel < vocab.LevelMastered {
		return q.OriginalLevel + 1
	}
	return q.OriginalLevel
}
