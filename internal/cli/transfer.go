package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hweilin/vocabook/internal/archive"
	"github.com/hweilin/vocabook/internal/storage"
)

var (
	exportOutput string
	importYes    bool
	importDryRun bool
)

// exportCmd writes the book to a snapshot file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the vocabulary book to a snapshot file",
	Long: `Export writes the whole book as a versioned JSON snapshot. The
snapshot records the active storage engine and an export timestamp and
can be imported on any machine regardless of which engine it runs.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// importCmd replaces the book from a snapshot file.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a snapshot, replacing the current book",
	Long: `Import reads a snapshot file and replaces the entire vocabulary book
with its contents. This is destructive: current entries not present in
the snapshot are lost. A timestamped backup of the current book is
written first, and nothing is touched if the snapshot fails validation.

Both the versioned snapshot format and the legacy bare-array export are
accepted.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "skip the confirmation prompt")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "validate the snapshot without importing")
}

func runExport(cmd *cobra.Command, args []string) error {
	_, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	snapshot := coord.Export()
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	data = append(data, '\n')

	if exportOutput == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", exportOutput, err)
	}
	fmt.Printf("Exported %d entries to %s\n", len(snapshot.Vocabulary), exportOutput)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	if importDryRun {
		entries, err := storage.ParseSnapshot(data)
		if err != nil {
			return err
		}
		fmt.Printf("Snapshot is valid: %d entries\n", len(entries))
		return nil
	}

	_, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	current := coord.Export()
	if n := len(current.Vocabulary); n > 0 {
		if !importYes && !confirm(fmt.Sprintf("Replace the current book (%d entries) with the snapshot?", n)) {
			fmt.Println("Aborted.")
			return nil
		}
		backup, err := archive.BackupSnapshot(resolveDataDir(), current)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not back up current book: %v\n", err)
		} else {
			fmt.Printf("Current book backed up to: %s\n", backup)
		}
	}

	entries, err := coord.Import(data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d entries\n", len(entries))
	return nil
}
