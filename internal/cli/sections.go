package cli

import (
	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/output"
)

var sectionsCmd = &cobra.Command{
	Use:     "sections <file>",
	Aliases: []string{"ls"},
	Short:   "List the sections of a file",
	Long: `List section names in file order. The DEFAULT section is not listed.

Examples:
  inicfg sections app.ini
  inicfg ls app.ini --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSections,
}

func init() {
	rootCmd.AddCommand(sectionsCmd)
}

type sectionListItem struct {
	Name    string `json:"name"`
	Options int    `json:"options"`
}

func runSections(cmd *cobra.Command, args []string) error {
	s, err := openFile(args[0])
	if err != nil {
		return err
	}

	items := make([]sectionListItem, 0)
	for _, name := range s.parser.Sections() {
		sec, _ := s.parser.Section(name)
		items = append(items, sectionListItem{Name: name, Options: sec.Size()})
	}

	if jsonOutput {
		return output.JSON(items)
	}
	if len(items) == 0 {
		output.Info("No sections in %s", args[0])
		return nil
	}
	for _, item := range items {
		output.Print("%s", item.Name)
	}
	return nil
}
