package cli

import (
	"fmt"
	"runtime"

	"github.com/coronawarn/grenrc/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		if version.IsDevBuild() {
			fmt.Fprintf(out, "grenrc %s (development build)\n", version.Version)
		} else {
			fmt.Fprintf(out, "grenrc %s\n", version.Version)
		}
		fmt.Fprintf(out, "  commit:     %s\n", version.Commit)
		fmt.Fprintf(out, "  built:      %s\n", version.BuildDate)
		fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
