package ini

import (
	"io"
	"strings"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/logger"
	"github.com/ksyq12/inicfg/internal/multimap"
)

// Store is an ordered collection of sections. Section names may repeat when
// Options.MultiSection is set. A Store is not safe for concurrent mutation.
type Store struct {
	opts           Options
	sections       *multimap.MultiMap[string, *Section]
	defaultSection *Section
	header         string
	footer         string
	included       bool
}

// New returns an empty store that parses and writes with opts.
func New(opts Options) *Store {
	return &Store{
		opts:     opts,
		sections: multimap.New[string, *Section](),
	}
}

// Options returns the store's options.
func (s *Store) Options() Options {
	return s.opts
}

func (s *Store) sectionKey(name string) string {
	if s.opts.LowerCaseSection {
		return strings.ToLower(name)
	}
	return name
}

// IsDefaultName reports whether name is the reserved default section name.
func (s *Store) IsDefaultName(name string) bool {
	return s.opts.DefaultSectionName != "" && strings.EqualFold(name, s.opts.DefaultSectionName)
}

// AddSection returns a section named name. In multi-section mode a new
// section is always appended; otherwise an existing one is reused. The
// reserved default section exists at most once in either mode.
func (s *Store) AddSection(name string) *Section {
	if s.IsDefaultName(name) {
		if s.defaultSection == nil {
			s.defaultSection = newSection(s, s.opts.DefaultSectionName)
		}
		return s.defaultSection
	}
	key := s.sectionKey(name)
	if !s.opts.MultiSection {
		if sec, ok := s.sections.Get(key); ok {
			return sec
		}
	}
	sec := newSection(s, key)
	s.sections.Add(key, sec)
	log.DebugFields("section added", logger.Fields{"name": key, "instances": s.sections.Len(key)})
	return sec
}

// Section returns the last section named name. The default section is
// returned for the reserved name.
func (s *Store) Section(name string) (*Section, bool) {
	if s.IsDefaultName(name) {
		return s.defaultSection, s.defaultSection != nil
	}
	return s.sections.Get(s.sectionKey(name))
}

// SectionAt returns the index-th section named name.
func (s *Store) SectionAt(name string, index int) (*Section, bool) {
	return s.sections.GetAt(s.sectionKey(name), index)
}

// SectionsNamed returns every section named name in document order.
func (s *Store) SectionsNamed(name string) []*Section {
	return s.sections.GetAll(s.sectionKey(name))
}

// HasSection reports whether a section named name exists.
func (s *Store) HasSection(name string) bool {
	_, ok := s.Section(name)
	return ok
}

// RemoveSection removes every section named name.
func (s *Store) RemoveSection(name string) bool {
	if s.IsDefaultName(name) {
		had := s.defaultSection != nil
		s.defaultSection = nil
		return had
	}
	_, ok := s.sections.Remove(s.sectionKey(name))
	return ok
}

// RemoveSectionAt removes the index-th section named name.
func (s *Store) RemoveSectionAt(name string, index int) bool {
	_, ok := s.sections.RemoveAt(s.sectionKey(name), index)
	return ok
}

// Sections returns the distinct section names in document order. The
// default section is not listed.
func (s *Store) Sections() []string {
	return s.sections.Keys()
}

// All returns every section, repeated names included, default section excluded.
func (s *Store) All() []*Section {
	return s.sections.Values()
}

// Len returns the number of distinct section names.
func (s *Store) Len() int {
	return s.sections.Size()
}

// DefaultSection returns the reserved default section, or nil.
func (s *Store) DefaultSection() *Section {
	return s.defaultSection
}

// Header returns the comment written before the first section.
func (s *Store) Header() string { return s.header }

// SetHeader sets the comment written before the first section.
func (s *Store) SetHeader(c string) { s.header = c }

// Footer returns the comment written after the last section.
func (s *Store) Footer() string { return s.footer }

// SetFooter sets the comment written after the last section.
func (s *Store) SetFooter(c string) { s.footer = c }

// Load parses r into the store. name identifies r in error messages.
func (s *Store) Load(r io.Reader, name string) error {
	src, err := NewSource(r, name, s.opts)
	if err != nil {
		return err
	}
	defer src.Close()
	return s.parse(src)
}

// LoadFile parses the file at path into the store.
func (s *Store) LoadFile(path string) error {
	src, err := OpenSource(path, s.opts)
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, "cannot open "+path, err)
	}
	defer src.Close()
	log.Debugf("loading %s", path)
	return s.parse(src)
}

func (s *Store) parse(src *Source) error {
	err := Parse(src, newBuilder(s), s.opts)
	if src.Included() {
		s.included = true
	}
	return err
}

// Included reports whether content from include directives was merged into
// the store. Writing such a store inlines that content and drops the
// directives.
func (s *Store) Included() bool {
	return s.included
}
