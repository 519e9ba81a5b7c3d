package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hweilin/vocabook/internal"
	"github.com/hweilin/vocabook/internal/storage"
	"github.com/hweilin/vocabook/internal/vocab"
)

var (
	cfgFile string
	dataDir string
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "vocabook",
	Short: "Personal vocabulary notebook for English learners",
	Long: `vocabook keeps a personal vocabulary book built while reading
radio-program transcripts: captured words with translations, phonetics,
familiarity levels and per-topic source citations.

The book persists locally through one of two interchangeable engines
(a plain JSON file or an indexed SQLite database) and can be migrated
between them, exported to a snapshot file and quizzed interactively.`,
	Version:       internal.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vocabook.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the vocabulary book (default is ~/.local/state/vocabook)")

	// Accept underscore spellings like --data_dir.
	rootCmd.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	_ = viper.BindPFlag("data.directory", rootCmd.PersistentFlags().Lookup("data-dir"))
}

// initConfig initializes viper configuration.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vocabook")
	}

	viper.SetEnvPrefix("VOCABOOK")
	viper.AutomaticEnv()

	_ = viper.ReadInConfig()
}

// resolveDataDir picks the book's directory: flag, then config, then
// the default state directory.
func resolveDataDir() string {
	if dir := viper.GetString("data.directory"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "vocabook")
}

// openBook builds the storage coordinator and a loaded repository over
// it. Callers must Close the coordinator when done.
func openBook() (*vocab.Repository, *storage.Coordinator, error) {
	coord, err := storage.Open(resolveDataDir())
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}

	repo := vocab.NewRepository(coord)
	if err := repo.Load(); err != nil {
		coord.Close()
		return nil, nil, err
	}
	return repo, coord, nil
}

// confirm asks a yes/no question on the terminal, defaulting to no.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
