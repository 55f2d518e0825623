package ini

import (
	"io"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/ksyq12/inicfg/internal/errors"
)

// WriteTo writes the store in INI syntax: header comment, default section,
// the remaining sections in order, footer comment.
func (s *Store) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	nl := s.opts.lineSeparator()
	blank := false

	if s.opts.Comment && s.header != "" {
		s.writeComment(&b, s.header)
		blank = true
	}

	sections := s.sections.Values()
	if s.defaultSection != nil {
		sections = append([]*Section{s.defaultSection}, sections...)
	}
	for _, sec := range sections {
		if blank {
			b.WriteString(nl)
		}
		if err := s.writeSection(&b, sec); err != nil {
			return 0, err
		}
		blank = true
	}

	if s.opts.Comment && s.footer != "" {
		if blank {
			b.WriteString(nl)
		}
		s.writeComment(&b, s.footer)
	}

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (s *Store) writeSection(b *strings.Builder, sec *Section) error {
	nl := s.opts.lineSeparator()
	if s.opts.Comment && sec.comment != "" {
		s.writeComment(b, sec.comment)
	}
	name := sec.name
	if s.opts.Escape {
		name = escapeEdges(Escape(name))
	} else if strings.ContainsAny(name, "\r\n") {
		return s.unwritable(sec.name, "", errors.Validation("line breaks are not allowed"))
	}
	b.WriteString("[")
	b.WriteString(name)
	b.WriteString("]")
	b.WriteString(nl)

	op := s.opts.operator()
	for _, key := range sec.Keys() {
		if c := sec.comments[key]; s.opts.Comment && c != "" {
			s.writeComment(b, c)
		}
		k, err := s.encode(key, true)
		if err != nil {
			return s.unwritable(sec.name, key, err)
		}
		for _, v := range sec.options.GetAll(key) {
			if v, err = s.encode(v, false); err != nil {
				return s.unwritable(sec.name, key, err)
			}
			b.WriteString(k)
			b.WriteString(op)
			b.WriteString(v)
			b.WriteString(nl)
		}
	}
	return nil
}

func (s *Store) unwritable(section, option string, err error) error {
	return &errors.IniError{
		Code:    errors.ErrCodeValidation,
		Message: "cannot write: " + err.Error(),
		Section: section,
		Option:  option,
	}
}

// encode renders a name or value so that the reader returns it unchanged.
// With escaping on, every string can be encoded; without it, text the reader
// would split, join or reinterpret is refused.
func (s *Store) encode(text string, name bool) (string, error) {
	if s.opts.Escape {
		text = escapeEdges(Escape(text))
		if r, _ := firstRune(text); name && s.isMarker(r) {
			text = string(escapeChar) + text
		}
		return text, nil
	}
	return text, s.CheckRaw(text, name)
}

// CheckRaw reports why text cannot be written verbatim as an option name
// (name=true) or value, or nil if it can. It only matters when
// Options.Escape is off.
func (s *Store) CheckRaw(text string, name bool) error {
	if strings.ContainsAny(text, "\r\n") {
		return errors.Validation("line breaks are not allowed")
	}
	if s.opts.EscapeNewline && countEndingEscapes(text)%2 == 1 {
		return errors.Validation("a trailing backslash would join the next line")
	}
	if !name || text == "" {
		return nil
	}
	if r, _ := firstRune(text); s.isMarker(r) {
		return errors.Validation("name cannot start with " + string(r))
	}
	if idx, _ := operatorIndex(text, s.opts); idx >= 0 {
		return errors.Validation("name cannot contain the operator")
	}
	return nil
}

// isMarker reports whether r at the start of a line would make the reader
// see a comment, a section header or an include.
func (s *Store) isMarker(r rune) bool {
	return r == '[' || r == includeBegin || strings.ContainsRune(s.opts.CommentChars, r)
}

// escapeEdges encodes leading and trailing spaces, which the reader trims.
func escapeEdges(s string) string {
	const space = `\u0020`
	trimmed := strings.TrimLeft(s, " ")
	lead := len(s) - len(trimmed)
	core := strings.TrimRight(trimmed, " ")
	trail := len(trimmed) - len(core)
	if lead == 0 && trail == 0 {
		return s
	}
	return strings.Repeat(space, lead) + core + strings.Repeat(space, trail)
}

func (s *Store) writeComment(b *strings.Builder, text string) {
	nl := s.opts.lineSeparator()
	mark := s.opts.commentChar()
	for _, line := range strings.Split(text, nl) {
		b.WriteString(mark)
		b.WriteString(line)
		b.WriteString(nl)
	}
}

// WriteFile atomically replaces path with the store's contents.
func (s *Store) WriteFile(path string) error {
	var b strings.Builder
	if _, err := s.WriteTo(&b); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, "cannot write "+path, err)
	}
	log.Debugf("wrote %s (%d bytes)", path, b.Len())
	return nil
}
