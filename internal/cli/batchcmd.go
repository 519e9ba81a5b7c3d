package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hweilin/vocabook/internal/batch"
	"github.com/hweilin/vocabook/internal/vocab"
)

var batchLevel string

// batchCmd captures a whole word-list file in one pass.
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Add words from a word-list file",
	Long: `Batch reads a word-list file and captures every line into the book.
Each line is either a bare word or "word = translation"; lines starting
with '#' are comments. Words already in the book are merged, not
duplicated.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchLevel, "level", "l", "1", "familiarity level for new words")
}

func runBatch(cmd *cobra.Command, args []string) error {
	level, err := parseLevel(batchLevel)
	if err != nil {
		return err
	}

	words, err := batch.ReadWordFile(args[0])
	if err != nil {
		return err
	}
	if len(words) == 0 {
		fmt.Println("No capturable words in the file.")
		return nil
	}

	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	added, merged := 0, 0
	for _, w := range words {
		entry := vocab.Entry{Word: w.Word, Translation: w.Translation, Level: level}
		if existing, ok := repo.FindByWord(w.Word); ok {
			entry.Level = existing.Level
			if w.Translation == "" {
				entry.Translation = existing.Translation
			}
			merged++
		} else {
			added++
		}
		if _, err := repo.Upsert(entry); err != nil {
			return fmt.Errorf("failed at %q: %w", w.Word, err)
		}
	}
	fmt.Printf("Added %d words, merged %d existing\n", added, merged)
	return nil
}
