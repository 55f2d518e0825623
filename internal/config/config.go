package config

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/ini"
)

// Config represents the inicfg settings file.
type Config struct {
	Parser    Parser            `yaml:"parser"`
	Defaults  map[string]string `yaml:"defaults,omitempty"`
	Variables map[string]string `yaml:"variables,omitempty"`
}

// Parser holds overrides of ini.Options. Unset fields keep the library default.
type Parser struct {
	Include         *bool  `yaml:"include,omitempty"`
	EscapeNewline   *bool  `yaml:"escape_newline,omitempty"`
	StrictOperator  *bool  `yaml:"strict_operator,omitempty"`
	EmptyOption     *bool  `yaml:"empty_option,omitempty"`
	GlobalSection   *bool  `yaml:"global_section,omitempty"`
	UnnamedSection  *bool  `yaml:"unnamed_section,omitempty"`
	AutoNumbering   *bool  `yaml:"auto_numbering,omitempty"`
	Comment         *bool  `yaml:"comment,omitempty"`
	Operator        string `yaml:"operator,omitempty"`
	CommentChars    string `yaml:"comment_chars,omitempty"`
	FileEncoding    string `yaml:"file_encoding,omitempty"`
	LineSeparator   string `yaml:"line_separator,omitempty"`
	PathSeparator   string `yaml:"path_separator,omitempty"`
	MaxIncludeDepth int    `yaml:"max_include_depth,omitempty"`
	MaxAutoIndex    int    `yaml:"max_auto_index,omitempty"`
}

// configDir is the default config directory
const configDir = ".config/inicfg"
const configFile = "config.yaml"

// New creates a new Config with default values
func New() *Config {
	return &Config{
		Defaults:  make(map[string]string),
		Variables: make(map[string]string),
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// ConfigPath returns the config file path
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	// A missing file means defaults
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to read config", err)
	}

	cfg := New()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfig, "failed to parse config", err)
	}
	if cfg.Defaults == nil {
		cfg.Defaults = make(map[string]string)
	}
	if cfg.Variables == nil {
		cfg.Variables = make(map[string]string)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks the parser overrides.
func (c *Config) Validate() error {
	p := c.Parser
	if p.PathSeparator != "" && utf8.RuneCountInString(p.PathSeparator) != 1 {
		return &errors.IniError{
			Code:    errors.ErrCodeConfig,
			Message: fmt.Sprintf("path_separator must be a single character, got %q", p.PathSeparator),
		}
	}
	if p.MaxIncludeDepth < 0 {
		return &errors.IniError{
			Code:    errors.ErrCodeConfig,
			Message: "max_include_depth must not be negative",
		}
	}
	if p.MaxAutoIndex < 0 {
		return &errors.IniError{
			Code:    errors.ErrCodeConfig,
			Message: "max_auto_index must not be negative",
		}
	}
	return nil
}

// Options returns ini.DefaultOptions with the file's overrides applied.
func (c *Config) Options() ini.Options {
	opts := ini.DefaultOptions()
	p := c.Parser

	set := func(dst *bool, v *bool) {
		if v != nil {
			*dst = *v
		}
	}
	set(&opts.Include, p.Include)
	set(&opts.EscapeNewline, p.EscapeNewline)
	set(&opts.StrictOperator, p.StrictOperator)
	set(&opts.EmptyOption, p.EmptyOption)
	set(&opts.GlobalSection, p.GlobalSection)
	set(&opts.UnnamedSection, p.UnnamedSection)
	set(&opts.AutoNumbering, p.AutoNumbering)
	set(&opts.Comment, p.Comment)

	if p.Operator != "" {
		opts.Operator = p.Operator
	}
	if p.CommentChars != "" {
		opts.CommentChars = p.CommentChars
	}
	if p.FileEncoding != "" {
		opts.FileEncoding = p.FileEncoding
	}
	if p.LineSeparator != "" {
		opts.LineSeparator = p.LineSeparator
	}
	if r, _ := utf8.DecodeRuneInString(p.PathSeparator); p.PathSeparator != "" {
		opts.PathSeparator = r
	}
	if p.MaxIncludeDepth > 0 {
		opts.MaxIncludeDepth = p.MaxIncludeDepth
	}
	if p.MaxAutoIndex > 0 {
		opts.MaxAutoIndex = p.MaxAutoIndex
	}
	return opts
}
