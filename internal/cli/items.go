package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/output"
	"github.com/ksyq12/inicfg/internal/pyini"
)

var itemsRaw bool

var itemsCmd = &cobra.Command{
	Use:   "items <file> <section>",
	Short: "Show the options and values of a section",
	Long: `Show every option of a section with its value, interpolated unless --raw.

Examples:
  inicfg items app.ini server
  inicfg items app.ini server --raw --json`,
	Args: cobra.ExactArgs(2),
	RunE: runItems,
}

func init() {
	itemsCmd.Flags().BoolVar(&itemsRaw, "raw", false, "Show stored values without interpolation")

	rootCmd.AddCommand(itemsCmd)
}

func runItems(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}
	vars, err := callerVars()
	if err != nil {
		return err
	}

	items, err := s.parser.Items(args[1], itemsRaw, vars)
	if err != nil {
		return err
	}

	if jsonOutput {
		if items == nil {
			items = []pyini.Item{}
		}
		return output.JSON(items)
	}
	if len(items) == 0 {
		output.Info("Section %s has no options", args[1])
		return nil
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item.Name, item.Value})
	}
	output.Table([]string{"OPTION", "VALUE"}, rows)
	return nil
}
