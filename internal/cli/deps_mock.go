package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/ksyq12/inicfg/internal/config"
	inierrors "github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/ini"
	"github.com/ksyq12/inicfg/internal/input"
	"github.com/ksyq12/inicfg/internal/pyini"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockFileStore keeps files in memory. Includes are not expanded.
type MockFileStore struct {
	Files     map[string]string
	LoadCalls []string
	SaveCalls []string
	LoadErr   error
	SaveErr   error
	Opts      ini.Options
}

// NewMockFileStore creates a store holding files.
func NewMockFileStore(files map[string]string) *MockFileStore {
	if files == nil {
		files = make(map[string]string)
	}
	return &MockFileStore{Files: files}
}

func (m *MockFileStore) Exists(path string) bool {
	_, ok := m.Files[path]
	return ok
}

func (m *MockFileStore) Load(path string, defaults map[string]string, opts ini.Options) (*pyini.ConfigParser, error) {
	m.LoadCalls = append(m.LoadCalls, path)
	m.Opts = opts
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	content, ok := m.Files[path]
	if !ok {
		return nil, inierrors.Wrap(inierrors.ErrCodeIO, "cannot open "+path, errors.New("file does not exist"))
	}
	p := pyini.New(defaults, opts)
	if err := p.ReadFrom(strings.NewReader(content), path); err != nil {
		return nil, err
	}
	return p, nil
}

func (m *MockFileStore) Save(path string, p *pyini.ConfigParser) error {
	m.SaveCalls = append(m.SaveCalls, path)
	if m.SaveErr != nil {
		return m.SaveErr
	}
	var b strings.Builder
	if err := p.Write(&b); err != nil {
		return err
	}
	m.Files[path] = b.String()
	return nil
}

// MockWatcher reports Changes change notifications, then returns Err.
type MockWatcher struct {
	Changes int
	Err     error
	Paths   []string
}

func (m *MockWatcher) Watch(ctx context.Context, path string, onChange func()) error {
	m.Paths = append(m.Paths, path)
	for i := 0; i < m.Changes; i++ {
		if ctx.Err() != nil {
			return nil
		}
		onChange()
	}
	return m.Err
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader: &MockConfigLoader{Cfg: config.New()},
			FileStore:    NewMockFileStore(nil),
			StdinReader:  input.NewStringReader("y\n"),
			Watcher:      &MockWatcher{},
			LookupEnv:    func(string) (string, bool) { return "", false },
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithConfigLoader sets a custom config loader
func (b *MockDependenciesBuilder) WithConfigLoader(loader ConfigLoader) *MockDependenciesBuilder {
	b.deps.ConfigLoader = loader
	return b
}

// WithFileStore sets a custom file store
func (b *MockDependenciesBuilder) WithFileStore(store FileStore) *MockDependenciesBuilder {
	b.deps.FileStore = store
	return b
}

// WithFiles stores files in an in-memory file store
func (b *MockDependenciesBuilder) WithFiles(files map[string]string) *MockDependenciesBuilder {
	b.deps.FileStore = NewMockFileStore(files)
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(answer string) *MockDependenciesBuilder {
	b.deps.StdinReader = input.NewStringReader(answer)
	return b
}

// WithWatcher sets a custom watcher
func (b *MockDependenciesBuilder) WithWatcher(w Watcher) *MockDependenciesBuilder {
	b.deps.Watcher = w
	return b
}

// WithEnv sets the environment seen by option overrides
func (b *MockDependenciesBuilder) WithEnv(env map[string]string) *MockDependenciesBuilder {
	b.deps.LookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// TestHelper provides utilities for CLI tests
type TestHelper struct {
	T interface {
		Helper()
		Cleanup(func())
	}
	OldDeps    *Dependencies
	Files      *MockFileStore
	MockConfig *MockConfigLoader
}

// NewTestHelper installs mock dependencies holding files and restores the
// previous ones on cleanup. Command flags are reset as well.
func NewTestHelper(t interface {
	Helper()
	Cleanup(func())
}, files map[string]string) *TestHelper {
	t.Helper()

	helper := &TestHelper{
		T:          t,
		OldDeps:    deps,
		Files:      NewMockFileStore(files),
		MockConfig: &MockConfigLoader{Cfg: config.New()},
	}

	deps = NewMockDeps().
		WithFileStore(helper.Files).
		WithConfigLoader(helper.MockConfig).
		Build()
	resetFlags()

	t.Cleanup(func() {
		deps = helper.OldDeps
		resetFlags()
	})

	return helper
}

// SetStdinInput sets the stdin input
func (h *TestHelper) SetStdinInput(answer string) {
	deps.StdinReader = input.NewStringReader(answer)
}

// GetConfig returns the current mock config
func (h *TestHelper) GetConfig() *config.Config {
	return h.MockConfig.Cfg
}

// resetFlags restores every command flag variable to its default.
func resetFlags() {
	jsonOutput = false
	verbose = false
	logLevel = ""
	varFlags = nil
	getRaw = false
	itemsRaw = false
	setCreate = false
	dryRun = false
	forceRemove = false
	dumpFormat = "ini"
	dumpResolve = false
}
