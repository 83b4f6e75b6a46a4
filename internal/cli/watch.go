package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/coronawarn/grenrc/internal/errors"
	"github.com/coronawarn/grenrc/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Revalidate a configuration file on every change",
	Long: `Validate a configuration file, then validate it again each time it is
written, until interrupted with Ctrl+C.

Examples:
  grenrc watch                 # discovered config
  grenrc watch .grenrc.yml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		p, err := defaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	w, err := watch.New(path, watch.DefaultDebounce)
	if err != nil {
		return clierrors.Wrap(err, clierrors.Runtime)
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	reportResults(out, errOut, validateFiles(ctx, []string{path}))
	fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", w.Path())

	for changed := range w.Changes(ctx) {
		logger.Debug("config changed", zap.String("path", changed))
		reportResults(out, errOut, validateFiles(ctx, []string{path}))
	}
	return nil
}
