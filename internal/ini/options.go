package ini

import (
	"strconv"
	"strings"
)

// Substituter rewrites an include target before it is opened, typically
// expanding installer variables such as {{CONF_DIR}}.
type Substituter interface {
	Substitute(s string) (string, error)
}

// SubstituterFunc adapts a plain function to Substituter.
type SubstituterFunc func(s string) (string, error)

// Substitute calls f(s).
func (f SubstituterFunc) Substitute(s string) (string, error) {
	return f(s)
}

// Options controls parsing and writing. It is a plain value: copying it is
// cloning it, and a Store or Source never shares its copy with anyone else.
type Options struct {
	EmptyOption       bool   // accept option lines without an operator
	EmptySection      bool   // accept "[]"
	GlobalSection     bool   // collect options before the first header
	GlobalSectionName string // name of that section
	Include           bool   // honour <file> and <?file> lines
	LowerCaseOption   bool
	LowerCaseSection  bool
	MultiOption       bool // repeated option names append instead of replace
	MultiSection      bool // repeated headers create new sections
	StrictOperator    bool // only Operator separates name and value
	Operator          string
	UnnamedSection    bool
	Escape            bool
	EscapeNewline     bool // odd trailing backslashes join the next line
	PathSeparator     rune
	Tree              bool
	FileEncoding      string
	LineSeparator     string
	Comment           bool // keep comments for the writer
	HeaderComment     bool
	CommentChars      string
	AutoNumbering     bool // "a.2.b" is element 2 of "a.b"

	// DefaultSectionName names the reserved fallback section. Empty disables it.
	DefaultSectionName string

	// MaxIncludeDepth bounds nested includes; zero means DefaultMaxIncludeDepth.
	MaxIncludeDepth int

	// MaxAutoIndex bounds auto-numbered indices; zero means DefaultMaxAutoIndex.
	MaxAutoIndex int

	Substituter Substituter
}

// DefaultMaxIncludeDepth is the include nesting limit used when Options leaves it unset.
const DefaultMaxIncludeDepth = 32

// DefaultMaxAutoIndex is the highest auto-numbered index accepted when Options leaves it unset.
const DefaultMaxAutoIndex = 10000

// DefaultOptions returns the library defaults.
func DefaultOptions() Options {
	return Options{
		GlobalSectionName: "?",
		MultiOption:       true,
		Operator:          "=",
		Escape:            true,
		EscapeNewline:     true,
		PathSeparator:     '/',
		Tree:              true,
		FileEncoding:      "utf-8",
		LineSeparator:     "\n",
		Comment:           true,
		HeaderComment:     true,
		CommentChars:      ";#",
		MaxIncludeDepth:   DefaultMaxIncludeDepth,
		MaxAutoIndex:      DefaultMaxAutoIndex,
	}
}

// EnvPrefix prefixes the environment variables read by ApplyEnv.
const EnvPrefix = "INICFG_"

// ApplyEnv returns a copy of o with overrides from the environment, e.g.
// INICFG_MULTI_SECTION=true or INICFG_PATH_SEPARATOR=. . Values that cannot be
// read or parsed are ignored.
func (o Options) ApplyEnv(lookup func(string) (string, bool)) Options {
	bools := map[string]*bool{
		"EMPTY_OPTION":       &o.EmptyOption,
		"EMPTY_SECTION":      &o.EmptySection,
		"GLOBAL_SECTION":     &o.GlobalSection,
		"INCLUDE":            &o.Include,
		"LOWER_CASE_OPTION":  &o.LowerCaseOption,
		"LOWER_CASE_SECTION": &o.LowerCaseSection,
		"MULTI_OPTION":       &o.MultiOption,
		"MULTI_SECTION":      &o.MultiSection,
		"STRICT_OPERATOR":    &o.StrictOperator,
		"UNNAMED_SECTION":    &o.UnnamedSection,
		"ESCAPE":             &o.Escape,
		"ESCAPE_NEWLINE":     &o.EscapeNewline,
		"TREE":               &o.Tree,
		"COMMENT":            &o.Comment,
		"HEADER_COMMENT":     &o.HeaderComment,
		"AUTO_NUMBERING":     &o.AutoNumbering,
	}
	for key, field := range bools {
		if v, ok := lookup(EnvPrefix + key); ok {
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				*field = b
			}
		}
	}

	strs := map[string]*string{
		"GLOBAL_SECTION_NAME": &o.GlobalSectionName,
		"OPERATOR":            &o.Operator,
		"FILE_ENCODING":       &o.FileEncoding,
		"LINE_SEPARATOR":      &o.LineSeparator,
		"COMMENT_CHARS":       &o.CommentChars,
	}
	for key, field := range strs {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*field = v
		}
	}

	if v, ok := lookup(EnvPrefix + "PATH_SEPARATOR"); ok {
		if r := []rune(v); len(r) > 0 {
			o.PathSeparator = r[0]
		}
	}
	return o
}

func (o Options) includeDepth() int {
	if o.MaxIncludeDepth <= 0 {
		return DefaultMaxIncludeDepth
	}
	return o.MaxIncludeDepth
}

func (o Options) autoIndexLimit() int {
	if o.MaxAutoIndex <= 0 {
		return DefaultMaxAutoIndex
	}
	return o.MaxAutoIndex
}

func (o Options) operator() string {
	if o.Operator == "" {
		return "="
	}
	return o.Operator
}

func (o Options) commentChar() string {
	if o.CommentChars == "" {
		return ";"
	}
	return string([]rune(o.CommentChars)[0])
}

func (o Options) lineSeparator() string {
	if o.LineSeparator == "" {
		return "\n"
	}
	return o.LineSeparator
}

func (o Options) pathSeparator() string {
	if o.PathSeparator == 0 {
		return "/"
	}
	return string(o.PathSeparator)
}
