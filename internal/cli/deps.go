package cli

import (
	"context"
	"os"

	"github.com/ksyq12/inicfg/internal/config"
	"github.com/ksyq12/inicfg/internal/ini"
	"github.com/ksyq12/inicfg/internal/input"
	"github.com/ksyq12/inicfg/internal/pyini"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader ConfigLoader
	FileStore    FileStore
	StdinReader  StdinReader
	Watcher      Watcher
	LookupEnv    func(string) (string, bool)
}

// ConfigLoader handles settings loading and saving
type ConfigLoader interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
}

// FileStore reads and writes INI files
type FileStore interface {
	Exists(path string) bool
	Load(path string, defaults map[string]string, opts ini.Options) (*pyini.ConfigParser, error)
	Save(path string, p *pyini.ConfigParser) error
}

// Watcher calls onChange whenever path changes, until ctx is done
type Watcher interface {
	Watch(ctx context.Context, path string, onChange func()) error
}

// StdinReader reads from stdin
type StdinReader = input.Reader

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader: &realConfigLoader{},
	FileStore:    &realFileStore{},
	StdinReader:  input.NewStdinReader(),
	Watcher:      &fileWatcher{},
	LookupEnv:    os.LookupEnv,
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

type realConfigLoader struct{}

func (r *realConfigLoader) Load() (*config.Config, error) {
	return config.Load()
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realFileStore struct{}

func (r *realFileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (r *realFileStore) Load(path string, defaults map[string]string, opts ini.Options) (*pyini.ConfigParser, error) {
	p := pyini.New(defaults, opts)
	if err := p.Read(path); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *realFileStore) Save(path string, p *pyini.ConfigParser) error {
	return p.WriteFile(path)
}
