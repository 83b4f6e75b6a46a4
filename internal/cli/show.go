package cli

import (
	clierrors "github.com/coronawarn/grenrc/internal/errors"
	"github.com/coronawarn/grenrc/internal/grenrc"
	"github.com/spf13/cobra"
)

var showFormatFlag string

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a configuration",
	Long: `Print the configuration named by --config, or the built-in --variant.

Examples:
  grenrc show                               # baseline variant as JSON
  grenrc show --variant extended --format yaml
  grenrc show --config .grenrc.yml          # normalized view of a file`,
	Args: cobra.NoArgs,
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().StringVarP(&showFormatFlag, "format", "f", "json", "Output format (json, yaml)")
}

func runShow(cmd *cobra.Command, args []string) error {
	format, err := grenrc.ParseFormat(showFormatFlag)
	if err != nil {
		return clierrors.NewArgumentError(err.Error())
	}

	cfg, _, err := resolveConfig()
	if err != nil {
		return err
	}

	if err := grenrc.Encode(cmd.OutOrStdout(), cfg, format); err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	return nil
}
