package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/logger"
	"github.com/ksyq12/inicfg/internal/output"
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-check a file whenever it changes",
	Long: `Run check once, then again each time the file is saved. Stop with Ctrl-C.

Examples:
  inicfg watch app.ini
  inicfg watch app.ini --json`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	run := func() {
		report, err := checkFile(path)
		if err != nil {
			output.Error("%v", err)
			return
		}
		if jsonOutput {
			if err := output.JSON(report); err != nil {
				logger.LogError(err, "failed to write report")
			}
			return
		}
		displayCheckReport(report)
	}

	run()
	if !jsonOutput {
		output.Info("Watching %s for changes", path)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return deps.Watcher.Watch(ctx, path, run)
}
