package cli

import (
	"fmt"

	"github.com/coronawarn/grenrc/internal/grenrc"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [labels...]",
	Short: "Show the changelog section an item with the given labels lands in",
	Long: `Classify an item by its labels the way gren groups it: items carrying an
ignored label are dropped, otherwise the first group in declared order that
owns one of the labels wins, and unmatched items go to the noLabel section.

Without labels, prints every grouped label with its section.

Examples:
  grenrc classify fix                       # Bug Fixes
  grenrc classify --variant extended duplicate
  grenrc classify                           # label table`,
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		for _, group := range cfg.GroupBy {
			for _, label := range group.Labels {
				fmt.Fprintf(out, "%-16s %s\n", label, group.Name)
			}
		}
		for _, label := range cfg.IgnoreIssuesWith {
			fmt.Fprintf(out, "%-16s (ignored)\n", label)
		}
		return nil
	}

	fmt.Fprintln(out, classification(cfg, args))
	return nil
}

func classification(cfg *grenrc.Config, labels []string) string {
	category, kept := cfg.Classify(labels)
	if !kept {
		return "(ignored)"
	}
	return category
}
