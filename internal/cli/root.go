package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/logger"
)

var (
	jsonOutput bool
	verbose    bool
	logLevel   string
	varFlags   []string
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "inicfg",
	Short: "Inspect and edit INI configuration files",
	Long: `inicfg reads, queries and edits INI-style configuration files.

Values may reference other options with %(name). A reference resolves against
the option's own section, then --var values, then the defaults in
~/.config/inicfg/config.yaml, then the [DEFAULT] section.

Include directives (<file> and <?file>) are expanded when enabled in the
settings; include paths may use {{NAME}} variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return configureLogging(verbose, logLevel)
	},
}

// configureLogging applies --verbose, then --log-level when given.
func configureLogging(verbose bool, level string) error {
	logger.Init(verbose)
	if level == "" {
		return nil
	}
	l, ok := logger.ParseLevel(level)
	if !ok {
		return errors.Validation("unknown log level: " + level)
	}
	logger.SetLevel(l)
	return nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringArrayVar(&varFlags, "var", nil, "Set a variable (name=value), repeatable")
}
