package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/output"
	"github.com/ksyq12/inicfg/internal/pyini"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a file and every interpolation in it",
	Long: `Parse a file and resolve every option, reporting each reference that
cannot be resolved or never terminates. Exits non-zero on any problem.

Examples:
  inicfg check app.ini
  inicfg check app.ini --var host=localhost --json`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

// CheckProblem is one option that failed to resolve.
type CheckProblem struct {
	Section string `json:"section"`
	Option  string `json:"option"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// CheckReport summarizes a check run.
type CheckReport struct {
	File     string         `json:"file"`
	Sections int            `json:"sections"`
	Options  int            `json:"options"`
	Problems []CheckProblem `json:"problems"`
}

var errCheckFailed = errors.Validation("check failed")

func runCheck(cmd *cobra.Command, args []string) error {
	report, err := checkFile(args[0])
	if err != nil {
		return err
	}

	if jsonOutput {
		if err := output.JSON(report); err != nil {
			return err
		}
	} else {
		displayCheckReport(report)
	}
	if len(report.Problems) > 0 {
		return errCheckFailed
	}
	return nil
}

// checkFile loads path and resolves every option. Load failures are
// returned as errors; resolution failures are collected in the report.
func checkFile(path string) (*CheckReport, error) {
	s, err := openFile(path)
	if err != nil {
		return nil, err
	}
	vars, err := callerVars()
	if err != nil {
		return nil, err
	}

	report := &CheckReport{File: path, Problems: []CheckProblem{}}
	names := s.parser.Sections()
	report.Sections = len(names)
	if s.parser.Store().DefaultSection() != nil {
		names = append([]string{pyini.DefaultSectionName}, names...)
	}

	for _, name := range names {
		options, err := s.parser.Options(name)
		if err != nil {
			return nil, err
		}
		for _, option := range options {
			report.Options++
			if _, err := s.parser.GetWithVars(name, option, vars); err != nil {
				report.Problems = append(report.Problems, newCheckProblem(name, option, err))
			}
		}
	}
	return report, nil
}

func newCheckProblem(section, option string, err error) CheckProblem {
	p := CheckProblem{Section: section, Option: option, Message: err.Error()}
	var iniErr *errors.IniError
	if errors.As(err, &iniErr) {
		p.Code = string(iniErr.Code)
	}
	return p
}

func displayCheckReport(report *CheckReport) {
	if len(report.Problems) == 0 {
		output.Success("%s: %d sections, %d options OK", report.File, report.Sections, report.Options)
		return
	}

	rows := make([][]string, 0, len(report.Problems))
	for _, p := range report.Problems {
		rows = append(rows, []string{p.Section, p.Option, p.Code})
	}
	output.Table([]string{"SECTION", "OPTION", "PROBLEM"}, rows)
	output.Error("%s: %s", report.File, pluralize(len(report.Problems), "problem"))
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
