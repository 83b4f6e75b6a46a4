package cli

import (
	"fmt"

	clierrors "github.com/coronawarn/grenrc/internal/errors"
	"github.com/coronawarn/grenrc/internal/grenrc"
	"github.com/spf13/cobra"
)

var (
	commitMessageFlag string
	commitURLFlag     string
	commitAuthorFlag  string
	commitNameFlag    string
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Render a commit line with the configured commit formatter",
	Long: `Render one commit the way the configured template.commit formatter does.

Examples:
  grenrc commit --message "Fix login" --url https://github.com/o/r/pull/1 --author octocat
  grenrc commit --message "Fix login" --url https://github.com/o/r/pull/1 --name "Mona Lisa"`,
	Args: cobra.NoArgs,
	RunE: runCommit,
}

func init() {
	rootCmd.AddCommand(commitCmd)
	commitCmd.Flags().StringVar(&commitMessageFlag, "message", "", "Commit message (required)")
	commitCmd.Flags().StringVar(&commitURLFlag, "url", "", "Commit or pull request URL (required)")
	commitCmd.Flags().StringVar(&commitAuthorFlag, "author", "", "Author login")
	commitCmd.Flags().StringVar(&commitNameFlag, "name", "", "Author name, used when --author is empty")
}

func runCommit(cmd *cobra.Command, args []string) error {
	if commitMessageFlag == "" || commitURLFlag == "" {
		return clierrors.NewArgumentErrorWithUsage(
			"--message and --url are required",
			cmd.UseLine(),
			"Pass both flags, e.g. grenrc commit --message \"Fix login\" --url https://github.com/o/r/pull/1",
		)
	}

	cfg, _, err := resolveConfig()
	if err != nil {
		return err
	}

	line, err := cfg.Template.FormatCommit(grenrc.CommitRecord{
		Message: commitMessageFlag,
		URL:     commitURLFlag,
		Author:  commitAuthorFlag,
		Name:    commitNameFlag,
	})
	if err != nil {
		return clierrors.Wrap(err, clierrors.Validation)
	}

	fmt.Fprintln(cmd.OutOrStdout(), line)
	return nil
}
