package cli

import (
	"fmt"
	"strings"

	"github.com/ksyq12/inicfg/internal/config"
	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/ini"
	"github.com/ksyq12/inicfg/internal/input"
	"github.com/ksyq12/inicfg/internal/output"
	"github.com/ksyq12/inicfg/internal/pyini"
	"github.com/ksyq12/inicfg/internal/variables"
)

// session is everything a command needs to work on one file.
type session struct {
	cfg    *config.Config
	opts   ini.Options
	parser *pyini.ConfigParser
}

// loadSettings reads the settings file and builds the parser options:
// library defaults, then config.yaml, then INICFG_* variables. Include
// paths are expanded with the configured variables plus --var.
func loadSettings() (*config.Config, ini.Options, error) {
	cfg, err := deps.ConfigLoader.Load()
	if err != nil {
		return nil, ini.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	vars := variables.New(cfg.Variables)
	extra, err := variables.Parse(varFlags)
	if err != nil {
		return nil, ini.Options{}, errors.Wrap(errors.ErrCodeValidation, "invalid --var", err)
	}
	vars.Merge(extra)
	if err := vars.ResolveAll(); err != nil {
		return nil, ini.Options{}, errors.Wrap(errors.ErrCodeConfig, "failed to resolve variables", err)
	}

	opts := cfg.Options().ApplyEnv(deps.LookupEnv)
	opts.Substituter = vars
	return cfg, opts, nil
}

// openFile loads path with the current settings.
func openFile(path string) (*session, error) {
	cfg, opts, err := loadSettings()
	if err != nil {
		return nil, err
	}
	p, err := deps.FileStore.Load(path, cfg.Defaults, opts)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, opts: opts, parser: p}, nil
}

// openOrCreate is openFile for commands that may start a new file.
func openOrCreate(path string) (*session, error) {
	if deps.FileStore.Exists(path) {
		return openFile(path)
	}
	cfg, opts, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, opts: opts, parser: pyini.New(cfg.Defaults, opts)}, nil
}

// requireWritable refuses to write back a file whose includes were expanded,
// since the included content would be inlined.
func requireWritable(s *session, file string) error {
	if s.parser.Store().Included() {
		return errors.Validation("refusing to rewrite " + file + ": it was loaded with includes expanded")
	}
	return nil
}

// callerVars returns the --var values used for %(name) lookups.
func callerVars() (map[string]string, error) {
	d, err := variables.Parse(varFlags)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, "invalid --var", err)
	}
	return d.Map(), nil
}

// outputResult handles JSON or human-readable output
func outputResult(data interface{}, successMsg string, args ...interface{}) error {
	if jsonOutput {
		return output.JSON(data)
	}
	output.Success(successMsg, args...)
	return nil
}

// validateName rejects names the INI grammar cannot represent.
func validateName(kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Validation(kind + " name cannot be empty")
	}
	if strings.ContainsAny(name, "\r\n") {
		return errors.Validation(kind + " name cannot contain line breaks")
	}
	if kind == "section" && strings.ContainsAny(name, "[]") {
		return errors.Validation("section name cannot contain brackets")
	}
	return nil
}

// confirm asks a yes/no question on stdin; anything but y/yes is no.
func confirm(format string, args ...interface{}) bool {
	output.Print(format+" [y/N]: ", args...)
	return input.Confirm(deps.StdinReader)
}

// CommandResult represents a common result structure for CLI commands
type CommandResult struct {
	Success bool   `json:"success"`
	File    string `json:"file"`
	Action  string `json:"action,omitempty"`
	Section string `json:"section,omitempty"`
	Option  string `json:"option,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// newSuccessResult creates a success result
func newSuccessResult(file, action string) CommandResult {
	return CommandResult{
		Success: true,
		File:    file,
		Action:  action,
	}
}
