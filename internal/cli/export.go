package cli

import (
	"fmt"
	"os"
	"path/filepath"

	clierrors "github.com/coronawarn/grenrc/internal/errors"
	"github.com/coronawarn/grenrc/internal/git"
	"github.com/coronawarn/grenrc/internal/grenrc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportFormatFlag string
	exportOutputFlag string
	exportForceFlag  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a configuration file gren can read",
	Long: `Write the selected configuration to disk.

Without --output the file is written to the repository root (or the current
directory outside a repository) as .grenrc.json or .grenrc.yml.

Examples:
  grenrc export                             # baseline to .grenrc.json
  grenrc export --variant extended -f yaml  # extended to .grenrc.yml
  grenrc export -o config/gren.json --force`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormatFlag, "format", "f", "json", "Output format (json, yaml)")
	exportCmd.Flags().StringVarP(&exportOutputFlag, "output", "o", "", "Output path (default: .grenrc.<ext> at the repository root)")
	exportCmd.Flags().BoolVar(&exportForceFlag, "force", false, "Overwrite an existing file")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := grenrc.ParseFormat(exportFormatFlag)
	if err != nil {
		return clierrors.NewArgumentError(err.Error())
	}

	cfg, source, err := resolveConfig()
	if err != nil {
		return err
	}

	out, err := exportPath(exportOutputFlag, format)
	if err != nil {
		return err
	}

	if _, err := os.Stat(out); err == nil && !exportForceFlag {
		return clierrors.NewArgumentError(
			fmt.Sprintf("%s already exists", out),
			"Pass --force to overwrite it",
			"Or choose another path with --output",
		)
	}

	data, err := grenrc.EncodeString(cfg, format)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "creating output directory")
	}
	if err := os.WriteFile(out, []byte(data), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "writing "+out)
	}

	logger.Debug("exported config", zap.String("source", source), zap.String("path", out))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", out, source)
	return nil
}

// exportPath returns the explicit output path, or the default file name at
// the repository root.
func exportPath(explicit string, format grenrc.Format) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	name := ".grenrc.json"
	if format == grenrc.FormatYAML {
		name = ".grenrc.yml"
	}

	dir, err := git.RepositoryRoot("")
	if err != nil {
		dir, err = os.Getwd()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "getting current directory")
		}
	}
	return filepath.Join(dir, name), nil
}
