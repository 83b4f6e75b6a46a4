package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	clierrors "github.com/coronawarn/grenrc/internal/errors"
	"github.com/coronawarn/grenrc/internal/grenrc"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// maxParallelValidations bounds concurrent file validations.
const maxParallelValidations = 4

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate gren configuration files",
	Long: `Validate one or more gren configuration files.

Without arguments, validates the file named by --config or the first
.grenrc, .grenrc.json, .grenrc.yml or .grenrc.yaml found in the current
directory or at the repository root.

Exit codes:
  0  all files are valid
  1  at least one file failed validation
  4  no configuration file was found

Examples:
  grenrc validate
  grenrc validate .grenrc.json docs/.grenrc.yml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// validationResult is the outcome for one file.
type validationResult struct {
	path string
	err  error
}

func runValidate(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		path, err := defaultConfigPath()
		if err != nil {
			return err
		}
		paths = []string{path}
	}

	results := validateFiles(commandContext(cmd), paths)
	if !reportResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results) {
		return NewExitError(ExitValidationFailed)
	}
	return nil
}

// validateFiles loads every path concurrently. Results keep argument order.
func validateFiles(ctx context.Context, paths []string) []validationResult {
	results := make([]validationResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelValidations)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = validationResult{path: path, err: err}
				return nil
			}
			_, err := grenrc.Load(path)
			logger.Debug("validated", zap.String("path", path), zap.Error(err))
			results[i] = validationResult{path: path, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// reportResults prints one line per file and full errors for failures.
// Returns true when every file is valid.
func reportResults(out, errOut io.Writer, results []validationResult) bool {
	allValid := true
	for _, r := range results {
		if r.err == nil {
			fmt.Fprintf(out, "%s %s\n", okMark("✓"), r.path)
			continue
		}
		allValid = false
		fmt.Fprintf(out, "%s %s\n", failMark("✗"), r.path)
		clierrors.FprintError(errOut, clierrors.FromLoadError(r.path, r.err))
	}
	return allValid
}

// defaultConfigPath returns --config/GRENRC_CONFIG or the discovered config.
func defaultConfigPath() (string, error) {
	if path := configFlagPath(); path != "" {
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", clierrors.WrapWithMessage(err, clierrors.Runtime, "getting current directory")
	}

	path, err := grenrc.Discover(cwd)
	if errors.Is(err, grenrc.ErrNotFound) {
		return "", clierrors.ConfigNotFound(cwd)
	}
	if err != nil {
		return "", clierrors.Wrap(err, clierrors.Configuration)
	}
	return path, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
