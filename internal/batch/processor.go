// Package batch reads word-list files for bulk capture into the
// vocabulary book.
package batch

import (
	"fmt"
	"os"
	"strings"

	"github.com/hweilin/vocabook/internal/gesture"
)

// WordEntry is one parsed line of a word-list file.
type WordEntry struct {
	Word        string
	Translation string
}

// ReadWordFile reads a word-list file and returns the capturable
// entries. Supported line formats:
//   - word only: "serendipity"
//   - with translation: "serendipity = 意外的收穫"
//
// Blank lines and lines starting with '#' are skipped. Lines whose word
// part fails the capture validity check are reported on stderr and
// skipped rather than failing the whole file.
func ReadWordFile(filename string) ([]WordEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read word file: %w", err)
	}

	var entries []WordEntry
	for i, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		word, translation := line, ""
		if strings.Contains(line, "=") {
			parts := strings.SplitN(line, "=", 2)
			word = strings.TrimSpace(parts[0])
			translation = strings.TrimSpace(parts[1])
		}

		if !gesture.IsValidWord(word) {
			fmt.Fprintf(os.Stderr, "Warning: line %d: %q is not a capturable word, skipping\n", i+1, word)
			continue
		}

		entries = append(entries, WordEntry{
			Word:        gesture.CleanText(word),
			Translation: translation,
		})
	}

	return entries, nil
}
