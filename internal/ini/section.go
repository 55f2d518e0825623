package ini

import (
	"regexp"
	"strings"

	"github.com/ksyq12/inicfg/internal/multimap"
)

// Section is an ordered multi-map of options plus the comments that
// accompany them. Sections belong to exactly one Store.
type Section struct {
	store    *Store
	name     string
	comment  string
	options  *multimap.MultiMap[string, string]
	comments map[string]string

	childPattern *regexp.Regexp
}

func newSection(store *Store, name string) *Section {
	return &Section{
		store:    store,
		name:     name,
		options:  multimap.New[string, string](),
		comments: make(map[string]string),
	}
}

func (s *Section) key(name string) string {
	if s.store.opts.LowerCaseOption {
		return strings.ToLower(name)
	}
	return name
}

// Name returns the full section name.
func (s *Section) Name() string { return s.name }

// Comment returns the comment written above the section header.
func (s *Section) Comment() string { return s.comment }

// SetComment sets the comment written above the section header.
func (s *Section) SetComment(c string) { s.comment = c }

// OptionComment returns the comment written above option name.
func (s *Section) OptionComment(name string) string { return s.comments[s.key(name)] }

// SetOptionComment sets the comment written above option name.
func (s *Section) SetOptionComment(name, c string) {
	if c == "" {
		delete(s.comments, s.key(name))
		return
	}
	s.comments[s.key(name)] = c
}

// Get returns the last value of option name.
func (s *Section) Get(name string) (string, bool) { return s.options.Get(s.key(name)) }

// GetAt returns the index-th value of option name.
func (s *Section) GetAt(name string, index int) (string, bool) {
	return s.options.GetAt(s.key(name), index)
}

// GetAll returns every value of option name in order.
func (s *Section) GetAll(name string) []string { return s.options.GetAll(s.key(name)) }

// Len returns the number of values of option name.
func (s *Section) Len(name string) int { return s.options.Len(s.key(name)) }

// ContainsKey reports whether option name is present.
func (s *Section) ContainsKey(name string) bool { return s.options.ContainsKey(s.key(name)) }

// Keys returns the option names in order.
func (s *Section) Keys() []string { return s.options.Keys() }

// Size returns the number of distinct option names.
func (s *Section) Size() int { return s.options.Size() }

// Put replaces the last value of option name, adding it when absent.
func (s *Section) Put(name, value string) { s.options.Put(s.key(name), value) }

// Add appends a value to option name.
func (s *Section) Add(name, value string) { s.options.Add(s.key(name), value) }

// PutAll replaces every value of option name.
func (s *Section) PutAll(name string, values []string) { s.options.PutAll(s.key(name), values) }

// PutAt replaces the index-th value of option name. It reports false when
// there is no such value.
func (s *Section) PutAt(name, value string, index int) bool {
	k := s.key(name)
	if index < 0 || index >= s.options.Len(k) {
		return false
	}
	s.options.PutAt(k, value, index)
	return true
}

// Remove deletes option name with all its values and its comment.
func (s *Section) Remove(name string) bool {
	k := s.key(name)
	delete(s.comments, k)
	_, ok := s.options.Remove(k)
	return ok
}

// RemoveAt deletes the index-th value of option name.
func (s *Section) RemoveAt(name string, index int) bool {
	k := s.key(name)
	_, ok := s.options.RemoveAt(k, index)
	if ok && !s.options.ContainsKey(k) {
		delete(s.comments, k)
	}
	return ok
}

// SimpleName returns the last path component of the section name.
func (s *Section) SimpleName() string {
	sep := s.store.opts.pathSeparator()
	if i := strings.LastIndex(s.name, sep); i >= 0 {
		return s.name[i+len(sep):]
	}
	return s.name
}

func (s *Section) childName(name string) string {
	return s.name + s.store.opts.pathSeparator() + name
}

// Child returns the direct child section called name.
func (s *Section) Child(name string) (*Section, bool) {
	return s.store.Section(s.childName(name))
}

// Parent returns the section one path level up. Root-level sections have none.
func (s *Section) Parent() (*Section, bool) {
	i := strings.LastIndex(s.name, s.store.opts.pathSeparator())
	if i < 0 {
		return nil, false
	}
	return s.store.Section(s.name[:i])
}

// ChildrenNames returns the simple names of direct children, in document
// order. The store is scanned on every call.
func (s *Section) ChildrenNames() []string {
	if s.childPattern == nil {
		sep := regexp.QuoteMeta(s.store.opts.pathSeparator())
		s.childPattern = regexp.MustCompile("^" + regexp.QuoteMeta(s.name) + sep + "[^" + sep + "]+$")
	}
	var names []string
	for _, full := range s.store.Sections() {
		if s.childPattern.MatchString(full) {
			names = append(names, full[len(s.name)+len(s.store.opts.pathSeparator()):])
		}
	}
	return names
}

// AddChild adds the direct child section called name.
func (s *Section) AddChild(name string) *Section {
	return s.store.AddSection(s.childName(name))
}

// RemoveChild removes the direct child section called name.
func (s *Section) RemoveChild(name string) bool {
	return s.store.RemoveSection(s.childName(name))
}

// Lookup joins parts with the path separator and returns that descendant.
func (s *Section) Lookup(parts ...string) (*Section, bool) {
	return s.Child(strings.Join(parts, s.store.opts.pathSeparator()))
}
