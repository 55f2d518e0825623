package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/output"
)

var (
	forceRemove bool
)

var removeCmd = &cobra.Command{
	Use:     "remove <file> <section> [option]",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a section or an option",
	Long: `Remove an option, or a whole section when no option is given.

Examples:
  inicfg remove app.ini server port
  inicfg rm app.ini legacy --force`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "Force removal without confirmation")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	file, section := args[0], args[1]
	option := ""
	if len(args) == 3 {
		option = args[2]
	}

	s, err := openFile(file)
	if err != nil {
		return err
	}
	if err := requireWritable(s, file); err != nil {
		return err
	}

	if !s.parser.HasSection(section) {
		return errors.NoSection(section)
	}
	if option != "" && !s.parser.HasOption(section, option) {
		return errors.NoOption(section, option)
	}

	if !forceRemove {
		target := "section '" + section + "'"
		if option != "" {
			target = "option '" + option + "' from section '" + section + "'"
		}
		if !confirm("Are you sure you want to remove %s?", target) {
			output.Info("Removal cancelled")
			return nil
		}
	}

	if option != "" {
		if _, err := s.parser.RemoveOption(section, option); err != nil {
			return err
		}
	} else {
		s.parser.RemoveSection(section)
	}

	if err := deps.FileStore.Save(file, s.parser); err != nil {
		return err
	}

	result := newSuccessResult(file, "remove")
	result.Section = section
	result.Option = option
	if option != "" {
		return outputResult(result, "Option %s removed from %s", option, section)
	}
	return outputResult(result, "Section %s removed", section)
}
