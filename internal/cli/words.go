package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hweilin/vocabook/internal/gesture"
	"github.com/hweilin/vocabook/internal/vocab"
)

var (
	addTranslation  string
	addPhonetic     string
	addPartOfSpeech string
	addLevel        string
	addTopicID      string
	addTopicTitle   string
	addSection      string

	listLevel  string
	listSearch string

	editWord        string
	editTranslation string
	editPhonetic    string
	editLevel       string
)

// addCmd captures a word into the vocabulary book.
var addCmd = &cobra.Command{
	Use:   "add <word>",
	Short: "Add a word to the vocabulary book",
	Long: `Add captures a word or short phrase into the vocabulary book.

The text goes through the same validity check as an on-page selection:
at most three words, fifty characters, and at least one Latin letter.
Capturing a word that already exists merges the new source citation into
the existing entry instead of creating a duplicate row.

Examples:
  vocabook add serendipity --translation "意外的收穫" --level 1
  vocabook add "give up" --topic 2025070101 --title "Morning Talk"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

// listCmd prints the book.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List vocabulary entries",
	Long: `List prints the vocabulary book in display order: unfamiliar words
first, then alphabetically. A level or search filter narrows the output;
search matches words and translations case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

// removeCmd deletes an entry.
var removeCmd = &cobra.Command{
	Use:   "remove <word>",
	Short: "Remove a word from the vocabulary book",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

// editCmd updates an existing entry.
var editCmd = &cobra.Command{
	Use:   "edit <word>",
	Short: "Edit an existing entry",
	Long: `Edit changes an entry's fields. Renaming a word onto another existing
entry prompts before merging the two, since the merged entry keeps the
older entry's identity and the union of both source lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, removeCmd, editCmd)

	addCmd.Flags().StringVarP(&addTranslation, "translation", "t", "", "translation text")
	addCmd.Flags().StringVarP(&addPhonetic, "phonetic", "p", "", "phonetic transcription")
	addCmd.Flags().StringVar(&addPartOfSpeech, "pos", "", "part of speech")
	addCmd.Flags().StringVarP(&addLevel, "level", "l", "1", "familiarity level (1=unfamiliar, 2=fair, 3=mastered)")
	addCmd.Flags().StringVar(&addTopicID, "topic", "", "topic id the word was captured from")
	addCmd.Flags().StringVar(&addTopicTitle, "title", "", "topic title for the source citation")
	addCmd.Flags().StringVar(&addSection, "section", "", "topic section (content or vocabulary)")

	listCmd.Flags().StringVarP(&listLevel, "level", "l", "", "only this level")
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search words and translations")

	editCmd.Flags().StringVar(&editWord, "word", "", "new word text")
	editCmd.Flags().StringVar(&editTranslation, "translation", "", "new translation")
	editCmd.Flags().StringVar(&editPhonetic, "phonetic", "", "new phonetic transcription")
	editCmd.Flags().StringVar(&editLevel, "level", "", "new familiarity level")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := gesture.CleanText(args[0])
	if !gesture.IsValidWord(args[0]) {
		return fmt.Errorf("%q is not a capturable word or short phrase", args[0])
	}

	level, err := parseLevel(addLevel)
	if err != nil {
		return err
	}

	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	entry := vocab.Entry{
		Word:         text,
		Phonetic:     addPhonetic,
		Translation:  addTranslation,
		PartOfSpeech: addPartOfSpeech,
		Level:        level,
	}
	if addTopicID != "" || addTopicTitle != "" {
		entry.Sources = []vocab.Source{{
			TopicID: addTopicID,
			Title:   addTopicTitle,
			Section: addSection,
		}}
	}

	// Pre-fill from an existing entry so a re-capture without flags
	// does not blank out earlier annotations.
	if existing, ok := repo.FindByWord(text); ok {
		if addTranslation == "" {
			entry.Translation = existing.Translation
		}
		if addPhonetic == "" {
			entry.Phonetic = existing.Phonetic
		}
		if addPartOfSpeech == "" {
			entry.PartOfSpeech = existing.PartOfSpeech
		}
		if !cmd.Flags().Changed("level") {
			entry.Level = existing.Level
		}
	}

	saved, err := repo.Upsert(entry)
	if err != nil {
		return err
	}
	fmt.Printf("Added %q (level %d, %d sources)\n", saved.Word, saved.Level, len(saved.Sources))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	var filter vocab.Filter
	if listLevel != "" {
		level, err := parseLevel(listLevel)
		if err != nil {
			return err
		}
		filter.Level = level
	}
	filter.Search = listSearch

	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	entries := repo.List(filter)
	if len(entries) == 0 {
		fmt.Println("No entries.")
		return nil
	}

	for _, e := range entries {
		line := fmt.Sprintf("[%s] %s", e.Level.Label(), e.Word)
		if e.Phonetic != "" {
			line += " /" + e.Phonetic + "/"
		}
		if e.Translation != "" {
			line += "  " + e.Translation
		}
		fmt.Println(line)
		for _, s := range e.Sources {
			fmt.Printf("      from %s (%s)\n", s.Title, s.TopicID)
		}
	}
	fmt.Printf("%d entries\n", len(entries))
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	entry, ok := repo.FindByWord(args[0])
	if !ok {
		fmt.Printf("No entry for %q\n", args[0])
		return nil
	}
	if err := repo.Remove(entry.ID); err != nil {
		return err
	}
	fmt.Printf("Removed %q\n", entry.Word)
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	entry, ok := repo.FindByWord(args[0])
	if !ok {
		return fmt.Errorf("no entry for %q", args[0])
	}

	if cmd.Flags().Changed("word") {
		if !gesture.IsValidWord(editWord) {
			return fmt.Errorf("%q is not a valid word text", editWord)
		}
		newText := gesture.CleanText(editWord)
		if other, exists := repo.FindByWord(newText); exists && other.ID != entry.ID {
			// Explicit user arbitration: merging folds this entry
			// into the existing one and there is no automatic
			// winner for the annotations.
			if !confirm(fmt.Sprintf("%q already exists; merge sources into it?", newText)) {
				fmt.Println("Aborted.")
				return nil
			}
		}
		entry.Word = newText
	}
	if cmd.Flags().Changed("translation") {
		entry.Translation = editTranslation
	}
	if cmd.Flags().Changed("phonetic") {
		entry.Phonetic = editPhonetic
	}
	if cmd.Flags().Changed("level") {
		level, err := parseLevel(editLevel)
		if err != nil {
			return err
		}
		entry.Level = level
	}

	saved, err := repo.Upsert(entry)
	if err != nil {
		return err
	}
	fmt.Printf("Updated %q\n", saved.Word)
	return nil
}

// parseLevel accepts both numeric levels and their string keys.
func parseLevel(s string) (vocab.Level, error) {
	if n, err := strconv.Atoi(s); err == nil {
		level := vocab.Level(n)
		if !level.Valid() {
			return 0, fmt.Errorf("level must be 1, 2 or 3, got %d", n)
		}
		return level, nil
	}
	for _, l := range vocab.AllLevels() {
		if s == l.Key() || s == l.Label() {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
