// Package cli implements the grenrc command line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	clierrors "github.com/coronawarn/grenrc/internal/errors"
	"github.com/coronawarn/grenrc/internal/git"
	"github.com/coronawarn/grenrc/internal/grenrc"
	"github.com/coronawarn/grenrc/internal/logging"
	"github.com/coronawarn/grenrc/internal/watch"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ConfigEnvVar names a config file when --config is not given.
const ConfigEnvVar = "GRENRC_CONFIG"

var (
	configPath  string
	variantFlag string
	debugFlag   bool
	noColorFlag bool

	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "grenrc",
	Short: "Inspect, export and validate gren changelog configuration",
	Long: `grenrc manages the configuration file read by the gren changelog generator.

It ships two built-in variants (baseline and extended), validates existing
.grenrc files, and shows how labelled pull requests and commits would be
grouped and rendered.`,
	Example: `  grenrc show --variant extended --format yaml
  grenrc export -o .grenrc.json
  grenrc validate .grenrc.json
  grenrc classify fix bug`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupGlobals,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a .grenrc file (env: "+ConfigEnvVar+")")
	rootCmd.PersistentFlags().StringVar(&variantFlag, "variant", grenrc.PresetBaseline, "Built-in variant used when no config file is given")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Write debug logs to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine())
	})
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		reportError(rootCmd.ErrOrStderr(), err)
	}
	_ = logger.Sync()
	return err
}

func setupGlobals(cmd *cobra.Command, args []string) error {
	color.NoColor = noColorFlag || !term.IsTerminal(int(os.Stdout.Fd()))

	l, err := logging.New(debugFlag)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Runtime, "initializing logger")
	}
	logger = l

	debugf := logging.Printf(logger)
	grenrc.SetDebugLogger(debugf)
	git.SetDebugLogger(debugf)
	watch.SetDebugLogger(debugf)
	return nil
}

func reportError(w io.Writer, err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprint(w, clierrors.FormatSimpleError(err, clierrors.Runtime))
}

// configFlagPath returns the config path from --config or the environment.
func configFlagPath() string {
	if configPath != "" {
		return configPath
	}
	return os.Getenv(ConfigEnvVar)
}

// resolveConfig returns the config named by --config/GRENRC_CONFIG, or the
// --variant preset. The second value describes the source for messages.
func resolveConfig() (*grenrc.Config, string, error) {
	if path := configFlagPath(); path != "" {
		cfg, err := grenrc.Load(path)
		if err != nil {
			return nil, path, clierrors.FromLoadError(path, err)
		}
		logger.Debug("loaded config", zap.String("path", path))
		return cfg, path, nil
	}

	cfg, err := grenrc.Preset(variantFlag)
	if err != nil {
		return nil, "", clierrors.UnknownVariant(variantFlag)
	}
	return &cfg, "variant " + variantFlag, nil
}
