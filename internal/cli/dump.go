package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/output"
	"github.com/ksyq12/inicfg/internal/pyini"
)

var (
	dumpFormat  string
	dumpResolve bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file>",
	Short: "Print a whole file",
	Long: `Print the parsed file, with includes expanded, as INI, JSON or YAML.
With --resolve every %(name) reference is replaced by its value.

Examples:
  inicfg dump app.ini
  inicfg dump app.ini --resolve
  inicfg dump app.ini --format yaml --var env=prod`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringVarP(&dumpFormat, "format", "f", "ini", "Output format (ini, json, yaml)")
	dumpCmd.Flags().BoolVar(&dumpResolve, "resolve", false, "Resolve %(name) references")

	rootCmd.AddCommand(dumpCmd)
}

type dumpSection struct {
	Name    string       `json:"name" yaml:"name"`
	Options []pyini.Item `json:"options" yaml:"options"`
}

func runDump(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(dumpFormat)
	if err != nil {
		return err
	}
	if jsonOutput {
		format = output.FormatJSON
	}

	s, err := openFile(args[0])
	if err != nil {
		return err
	}
	vars, err := callerVars()
	if err != nil {
		return err
	}

	sections, err := collectSections(s.parser, !dumpResolve, vars)
	if err != nil {
		return err
	}

	switch format {
	case output.FormatJSON:
		return output.JSON(sections)
	case output.FormatYAML:
		return output.YAML(sections)
	}

	if !dumpResolve {
		return s.parser.Write(output.Writer())
	}
	resolved := pyini.New(nil, s.opts)
	resolved.Store().SetHeader(s.parser.Store().Header())
	resolved.Store().SetFooter(s.parser.Store().Footer())
	for _, sec := range sections {
		target := resolved.Store().AddSection(sec.Name)
		for _, item := range sec.Options {
			target.Put(item.Name, item.Value)
		}
	}
	return resolved.Write(output.Writer())
}

// collectSections lists the DEFAULT section first, then the others in order.
func collectSections(p *pyini.ConfigParser, raw bool, vars map[string]string) ([]dumpSection, error) {
	names := p.Sections()
	if p.Store().DefaultSection() != nil {
		names = append([]string{pyini.DefaultSectionName}, names...)
	}

	sections := make([]dumpSection, 0, len(names))
	for _, name := range names {
		items, err := p.Items(name, raw, vars)
		if err != nil {
			return nil, err
		}
		sections = append(sections, dumpSection{Name: name, Options: items})
	}
	return sections, nil
}
