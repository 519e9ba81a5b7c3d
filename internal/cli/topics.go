package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hweilin/vocabook/internal/topic"
)

var (
	topicsMonth  string
	topicsSearch string
	topicsType   string
	topicsTag    string
)

// topicsCmd groups the transcript browsing subcommands.
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Browse the radio-program transcript library",
}

var topicsMonthsCmd = &cobra.Command{
	Use:   "months",
	Short: "List the available months",
	Args:  cobra.NoArgs,
	RunE:  runTopicsMonths,
}

var topicsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the topics of a month",
	Long: `List shows one month's topics, newest first. Filters given as flags
are remembered for the next invocation; an omitted month falls back to
the last one used, then to the current month.`,
	Args: cobra.NoArgs,
	RunE: runTopicsList,
}

var topicsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one topic's transcript and glossary",
	Args:  cobra.ExactArgs(1),
	RunE:  runTopicsShow,
}

func init() {
	rootCmd.AddCommand(topicsCmd)
	topicsCmd.AddCommand(topicsMonthsCmd, topicsListCmd, topicsShowCmd)

	topicsCmd.PersistentFlags().StringVarP(&topicsMonth, "month", "m", "", "month in YYYYMM form")
	topicsListCmd.Flags().StringVarP(&topicsSearch, "search", "s", "", "search titles and ids")
	topicsListCmd.Flags().StringVarP(&topicsType, "type", "t", "", "only this topic type")
	topicsListCmd.Flags().StringVar(&topicsTag, "tag", "", "only topics carrying this tag")
}

// topicLoader builds a loader over the configured transcript directory.
func topicLoader() (*topic.Loader, error) {
	dir := viper.GetString("topics.directory")
	if dir == "" {
		return nil, fmt.Errorf("no transcript library configured; set topics.directory in the config file")
	}
	return topic.NewLoader(dir), nil
}

func runTopicsMonths(cmd *cobra.Command, args []string) error {
	loader, err := topicLoader()
	if err != nil {
		return err
	}
	months := loader.Months()
	if len(months) == 0 {
		fmt.Println("No months available.")
		return nil
	}
	for _, m := range months {
		fmt.Println(m)
	}
	return nil
}

func runTopicsList(cmd *cobra.Command, args []string) error {
	loader, err := topicLoader()
	if err != nil {
		return err
	}
	_, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	filters := topic.LoadFilters(coord.Settings())
	if cmd.Flags().Changed("month") || topicsMonth != "" {
		filters.Month = topicsMonth
	}
	if cmd.Flags().Changed("search") {
		filters.Search = topicsSearch
	}
	if cmd.Flags().Changed("type") {
		filters.Type = topicsType
	}
	if cmd.Flags().Changed("tag") {
		filters.Tag = topicsTag
	}
	topic.SaveFilters(coord.Settings(), filters)

	shown := 0
	for _, t := range loader.Month(filters.Month) {
		if !filters.Matches(t) {
			continue
		}
		line := fmt.Sprintf("%s  %s", t.ID, t.Title)
		if len(t.Tags) > 0 {
			line += "  [" + strings.Join(t.Tags, ", ") + "]"
		}
		fmt.Println(line)
		shown++
	}
	if shown == 0 {
		fmt.Printf("No topics in %s match the filters.\n", filters.Month)
	}
	return nil
}

func runTopicsShow(cmd *cobra.Command, args []string) error {
	loader, err := topicLoader()
	if err != nil {
		return err
	}
	_, coord, err := openBook()
	if err != nil {
		return err
	}
	defer coord.Close()

	filters := topic.LoadFilters(coord.Settings())
	month := filters.Month
	if topicsMonth != "" {
		month = topicsMonth
	}

	t, ok := loader.Find(month, args[0])
	if !ok {
		return fmt.Errorf("no topic %s in %s", args[0], month)
	}

	fmt.Printf("%s  %s\n", t.ID, t.Title)
	if len(t.Tags) > 0 {
		fmt.Printf("Tags: %s\n", strings.Join(t.Tags, ", "))
	}
	fmt.Println()
	for _, item := range t.Content {
		fmt.Printf("%s\n", item.EN)
		if item.TW != "" {
			fmt.Printf("  %s\n", item.TW)
		}
	}
	if t.Vocabulary != nil && len(t.Vocabulary.Content) > 0 {
		fmt.Println("\nGlossary:")
		for _, g := range t.Vocabulary.Content {
			fmt.Printf("  %s\n", g.Text)
		}
	}
	return nil
}
