package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hweilin/vocabook/internal/storage"
)

// storageCmd groups the backend management subcommands.
var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Inspect and switch the persistence backend",
}

var storageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the active engine and entry count",
	Args:  cobra.NoArgs,
	RunE:  runStorageStatus,
}

var storageSwitchCmd = &cobra.Command{
	Use:   "switch <engine>",
	Short: "Migrate the book to another engine",
	Long: `Switch moves every entry to the named engine (json or sqlite) and
makes it the active one. The data is copied before the old engine is
cleared, so a failed migration leaves the book where it was.`,
	Args: cobra.ExactArgs(1),
	RunE: runStorageSwitch,
}

func init() {
	rootCmd.AddCommand(storageCmd)
	storageCmd.AddCommand(storageStatusCmd, storageSwitchCmd)
}

func runStorageStatus(cmd *cobra.Command, args []string) error {
	_, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	status := coord.Status()
	fmt.Printf("Active engine: %s\n", status.Active)
	fmt.Printf("Entries:       %d\n", status.Entries)
	fmt.Print("Supported:    ")
	for _, kind := range []storage.EngineKind{storage.EngineJSON, storage.EngineSQLite} {
		if status.Supported[kind] {
			fmt.Printf(" %s", kind)
		}
	}
	fmt.Println()
	return nil
}

func runStorageSwitch(cmd *cobra.Command, args []string) error {
	repo, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	before := coord.ActiveKind()
	if err := repo.SwitchBackend(args[0]); err != nil {
		return err
	}
	after := coord.ActiveKind()
	if before == after {
		fmt.Printf("Already using %s\n", after)
		return nil
	}
	fmt.Printf("Migrated %d entries from %s to %s\n", repo.Count(), before, after)
	return nil
}
