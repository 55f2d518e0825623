package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/logger"
	"github.com/ksyq12/inicfg/internal/output"
	"github.com/ksyq12/inicfg/internal/pyini"
)

var (
	setCreate bool
	dryRun    bool
)

var setCmd = &cobra.Command{
	Use:   "set <file> <section> <option> <value>",
	Short: "Set the value of an option",
	Long: `Set an option and write the file back atomically. Values are stored as
given, so %(name) references are kept for later resolution.

Examples:
  inicfg set app.ini server port 8080
  inicfg set app.ini server url 'http://%(host):%(port)'
  inicfg set new.ini server host example.com --create`,
	Args: cobra.ExactArgs(4),
	RunE: runSet,
}

func init() {
	setCmd.Flags().BoolVar(&setCreate, "create", false, "Create the file or section if it does not exist")
	setCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the result without writing it")

	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	file, section, option, value := args[0], args[1], args[2], args[3]

	if err := validateName("section", section); err != nil {
		return err
	}
	if err := validateName("option", option); err != nil {
		return err
	}

	var s *session
	var err error
	if setCreate {
		s, err = openOrCreate(file)
	} else {
		s, err = openFile(file)
	}
	if err != nil {
		return err
	}

	if !s.parser.HasSection(section) {
		if !setCreate {
			return errors.NoSection(section)
		}
		if s.parser.Store().IsDefaultName(section) {
			s.parser.Store().AddSection(pyini.DefaultSectionName)
		} else if err := s.parser.AddSection(section); err != nil {
			return err
		}
		logger.Debug("created section %s", section)
	}
	if err := s.parser.Set(section, option, value); err != nil {
		return err
	}

	if dryRun {
		return s.parser.Write(output.Writer())
	}
	if err := requireWritable(s, file); err != nil {
		return err
	}
	if err := deps.FileStore.Save(file, s.parser); err != nil {
		return err
	}

	result := newSuccessResult(file, "set")
	result.Section = section
	result.Option = option
	result.Value = value
	return outputResult(result, "%s.%s set in %s", section, option, file)
}
