package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/output"
)

var getRaw bool

var getCmd = &cobra.Command{
	Use:   "get <file> <section> <option>",
	Short: "Print the value of an option",
	Long: `Print the value of an option with every %(name) reference resolved.

Examples:
  inicfg get app.ini server url
  inicfg get app.ini server url --var host=localhost
  inicfg get app.ini server url --raw`,
	Args: cobra.ExactArgs(3),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "Print the stored value without interpolation")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	file, section, option := args[0], args[1], args[2]

	s, err := openFile(file)
	if err != nil {
		return err
	}

	var value string
	if getRaw {
		value, err = s.parser.GetRaw(section, option)
	} else {
		var vars map[string]string
		if vars, err = callerVars(); err != nil {
			return err
		}
		value, err = s.parser.GetWithVars(section, option, vars)
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		result := newSuccessResult(file, "get")
		result.Section = section
		result.Option = option
		result.Value = value
		return output.JSON(result)
	}
	output.Print("%s", value)
	return nil
}
