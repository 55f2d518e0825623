package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/output"
)

var optionsCmd = &cobra.Command{
	Use:   "options <file> <section>",
	Short: "List the option names of a section",
	Long: `List the option names of a section in file order.

Examples:
  inicfg options app.ini server
  inicfg options app.ini DEFAULT --json`,
	Args: cobra.ExactArgs(2),
	RunE: runOptions,
}

func init() {
	rootCmd.AddCommand(optionsCmd)
}

func runOptions(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}

	names, err := s.parser.Options(args[1])
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(names)
	}
	for _, name := range names {
		output.Print("%s", name)
	}
	return nil
}
