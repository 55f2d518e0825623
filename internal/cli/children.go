package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/output"
)

var childrenCmd = &cobra.Command{
	Use:   "children <file> <section>",
	Short: "List the direct child sections of a section",
	Long: `Treat section names as paths and list the direct children of a section.
The separator is "/" unless path_separator is set in the settings.

Examples:
  inicfg children app.ini app        # [app/db], [app/cache] -> db, cache
  inicfg children app.ini app/db --json`,
	Args: cobra.ExactArgs(2),
	RunE: runChildren,
}

func init() {
	rootCmd.AddCommand(childrenCmd)
}

func runChildren(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}

	sec, ok := s.parser.Section(args[1])
	if !ok {
		return errors.NoSection(args[1])
	}
	names := sec.ChildrenNames()

	if jsonOutput {
		if names == nil {
			names = []string{}
		}
		return output.JSON(names)
	}
	for _, name := range names {
		output.Print("%s", name)
	}
	return nil
}
