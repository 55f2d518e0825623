// Package pyini implements a ConfigParser in the style of Python's
// configparser on top of package ini.
//
// Option and section names are case-insensitive, each option holds a single
// value, and values may reference other options with %(name):
//
//	[DEFAULT]
//	prefix = /opt
//
//	[app]
//	home = %(prefix)/app
//	bin  = %(home)/bin
//
//	p := pyini.New(nil, ini.DefaultOptions())
//	_ = p.Read("app.ini")
//	bin, _ := p.Get("app", "bin") // "/opt/app/bin"
//
// A token resolves against, in order: the option's own section, the
// variables passed to GetWithVars or Items, the defaults given to New, and
// the DEFAULT section. An unresolvable token fails the whole lookup with an
// INTERPOLATION_MISSING error; a self-referencing chain fails with
// INTERPOLATION_CYCLE. Write "\%(" to keep a literal token.
//
// A ConfigParser is not safe for concurrent use.
package pyini

import (
	"io"
	"strconv"
	"strings"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/ini"
)

// DefaultSectionName is the reserved fallback section.
const DefaultSectionName = "DEFAULT"

// ConfigParser reads, queries and writes configuration with interpolation.
type ConfigParser struct {
	store    *ini.Store
	defaults map[string]string
}

// Item is one option of a section.
type Item struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
}

// New returns an empty parser. defaults may be nil. The parser takes a copy
// of base and forces single-valued, case-insensitive options and sections,
// no escape processing, and the DEFAULT section.
func New(defaults map[string]string, base ini.Options) *ConfigParser {
	opts := base
	opts.Escape = false
	opts.MultiOption = false
	opts.MultiSection = false
	opts.LowerCaseOption = true
	opts.LowerCaseSection = true
	opts.DefaultSectionName = DefaultSectionName

	if defaults == nil {
		defaults = make(map[string]string)
	}
	return &ConfigParser{store: ini.New(opts), defaults: defaults}
}

// Store exposes the underlying store, e.g. for profile navigation.
func (p *ConfigParser) Store() *ini.Store {
	return p.store
}

// Defaults returns the defaults map given to New. It is live: changes are
// seen by later lookups.
func (p *ConfigParser) Defaults() map[string]string {
	return p.defaults
}

// AddSection creates section name. It fails if the section exists or name
// is the reserved DEFAULT.
func (p *ConfigParser) AddSection(name string) error {
	if p.store.IsDefaultName(name) || strings.ContainsAny(name, "\r\n") {
		return errors.Validation("invalid section name: " + name)
	}
	if p.store.HasSection(name) {
		return errors.DuplicateSection(name)
	}
	p.store.AddSection(name)
	return nil
}

// HasSection reports whether section name exists.
func (p *ConfigParser) HasSection(name string) bool {
	return p.store.HasSection(name)
}

// HasOption reports whether option exists in section.
func (p *ConfigParser) HasOption(section, option string) bool {
	sec, ok := p.store.Section(section)
	return ok && sec.ContainsKey(option)
}

// Sections returns the section names in file order, DEFAULT excluded.
func (p *ConfigParser) Sections() []string {
	return p.store.Sections()
}

// Section returns the named section for direct or tree access.
func (p *ConfigParser) Section(name string) (*ini.Section, bool) {
	return p.store.Section(name)
}

// Options returns the option names of section.
func (p *ConfigParser) Options(section string) ([]string, error) {
	sec, err := p.requireSection(section)
	if err != nil {
		return nil, err
	}
	return sec.Keys(), nil
}

// Get returns the interpolated value of option in section.
func (p *ConfigParser) Get(section, option string) (string, error) {
	return p.GetWithVars(section, option, nil)
}

// GetRaw returns the stored value without interpolation.
func (p *ConfigParser) GetRaw(section, option string) (string, error) {
	sec, err := p.requireSection(section)
	if err != nil {
		return "", err
	}
	v, ok := sec.Get(option)
	if !ok {
		return "", errors.NoOption(section, option)
	}
	return v, nil
}

// GetWithVars is Get with extra variables consulted after the section itself.
func (p *ConfigParser) GetWithVars(section, option string, vars map[string]string) (string, error) {
	sec, err := p.requireSection(section)
	if err != nil {
		return "", err
	}
	return p.fetch(sec, option, vars)
}

// GetBool accepts 1/yes/true/on and 0/no/false/off, in any case.
func (p *ConfigParser) GetBool(section, option string) (bool, error) {
	v, err := p.Get(section, option)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(v) {
	case "1", "yes", "true", "on":
		return true, nil
	case "0", "no", "false", "off":
		return false, nil
	}
	return false, errors.Validation("not a boolean: " + v)
}

// GetInt parses the value as a base-10 int.
func (p *ConfigParser) GetInt(section, option string) (int, error) {
	v, err := p.Get(section, option)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeValidation, "not an integer", err)
	}
	return n, nil
}

// GetInt64 parses the value as a base-10 int64.
func (p *ConfigParser) GetInt64(section, option string) (int64, error) {
	v, err := p.Get(section, option)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeValidation, "not an integer", err)
	}
	return n, nil
}

// GetFloat parses the value as a float64.
func (p *ConfigParser) GetFloat(section, option string) (float64, error) {
	v, err := p.Get(section, option)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeValidation, "not a number", err)
	}
	return f, nil
}

// Items returns the options of section in order, interpolated unless raw.
// Only the section's own options are listed.
func (p *ConfigParser) Items(section string, raw bool, vars map[string]string) ([]Item, error) {
	sec, err := p.requireSection(section)
	if err != nil {
		return nil, err
	}
	items := make([]Item, 0, sec.Size())
	for _, key := range sec.Keys() {
		var v string
		if raw {
			v, _ = sec.Get(key)
		} else if v, err = p.fetch(sec, key, vars); err != nil {
			return nil, err
		}
		items = append(items, Item{Name: key, Value: v})
	}
	return items, nil
}

// Set stores value for option in an existing section. Values are written
// back verbatim, so line breaks are refused, as is a trailing backslash when
// the file format joins such lines.
func (p *ConfigParser) Set(section, option, value string) error {
	sec, err := p.requireSection(section)
	if err != nil {
		return err
	}
	err = p.store.CheckRaw(option, true)
	if err == nil {
		err = p.store.CheckRaw(value, false)
	}
	if err != nil {
		return &errors.IniError{
			Code:    errors.ErrCodeValidation,
			Message: "cannot set option: " + err.Error(),
			Section: section,
			Option:  option,
		}
	}
	sec.Put(option, value)
	return nil
}

// RemoveOption deletes option from section and reports whether it existed.
func (p *ConfigParser) RemoveOption(section, option string) (bool, error) {
	sec, err := p.requireSection(section)
	if err != nil {
		return false, err
	}
	return sec.Remove(option), nil
}

// RemoveSection deletes section and reports whether it existed.
func (p *ConfigParser) RemoveSection(section string) bool {
	return p.store.RemoveSection(section)
}

// Read parses each file in turn. Later files add to and override earlier ones.
func (p *ConfigParser) Read(paths ...string) error {
	for _, path := range paths {
		if err := p.store.LoadFile(path); err != nil {
			return err
		}
	}
	return nil
}

// ReadFrom parses r; name appears in error messages.
func (p *ConfigParser) ReadFrom(r io.Reader, name string) error {
	return p.store.Load(r, name)
}

// Write writes the configuration, DEFAULT section first.
func (p *ConfigParser) Write(w io.Writer) error {
	_, err := p.store.WriteTo(w)
	return err
}

// WriteFile atomically replaces path with the configuration.
func (p *ConfigParser) WriteFile(path string) error {
	return p.store.WriteFile(path)
}

func (p *ConfigParser) requireSection(name string) (*ini.Section, error) {
	sec, ok := p.store.Section(name)
	if !ok {
		return nil, errors.NoSection(name)
	}
	return sec, nil
}
