package ini

import (
	"bufio"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/logger"
)

var log = logger.Named("ini")

const (
	includeBegin    = '<'
	includeEnd      = '>'
	includeOptional = '?'
	escapeChar      = '\\'
)

// Comment is one block of consecutive comment lines, markers stripped and
// joined with Options.LineSeparator. Detached blocks were followed by a blank
// line rather than by the line they precede.
type Comment struct {
	Text     string
	Detached bool
}

// frame is one open file (or reader) on the include stack.
type frame struct {
	r      *bufio.Reader
	closer io.Closer
	name   string
	base   string // directory that relative includes resolve against
	line   int
}

func (f *frame) close() error {
	if f.closer == nil {
		return nil
	}
	err := f.closer.Close()
	f.closer = nil
	return err
}

// Source yields logical lines: trimmed, comments removed, continuation lines
// joined and include directives expanded. Included files are drained before
// the including file resumes. A Source is single-use and not safe for
// concurrent use.
type Source struct {
	opts     Options
	stack    []*frame
	comments []Comment
	included bool
}

// NewSource reads from r. Relative includes resolve against the working
// directory. name is used in error messages only.
func NewSource(r io.Reader, name string, opts Options) (*Source, error) {
	dr, err := decode(r, opts.FileEncoding)
	if err != nil {
		return nil, err
	}
	s := &Source{opts: opts}
	s.stack = append(s.stack, &frame{r: bufio.NewReader(dr), name: name})
	return s, nil
}

// OpenSource opens path. Relative includes resolve against path's directory.
func OpenSource(path string, opts Options) (*Source, error) {
	f, err := openFrame(path, opts)
	if err != nil {
		return nil, err
	}
	return &Source{opts: opts, stack: []*frame{f}}, nil
}

func openFrame(path string, opts Options) (*frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	dr, err := decode(file, opts.FileEncoding)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	return &frame{
		r:      bufio.NewReader(dr),
		closer: file,
		name:   path,
		base:   filepath.Dir(path),
	}, nil
}

// decode wraps r with a decoder for the named charset. A byte order mark, if
// present, overrides the configured charset.
func decode(r io.Reader, charset string) (io.Reader, error) {
	if charset == "" {
		charset = "utf-8"
	}
	enc, err := htmlindex.Get(charset)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeValidation, "unsupported file encoding "+charset, err)
	}
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder())), nil
}

// Name returns the name of the innermost open file.
func (s *Source) Name() string {
	if len(s.stack) == 0 {
		return ""
	}
	return s.stack[len(s.stack)-1].name
}

// LineNumber returns the current physical line of the innermost open file.
func (s *Source) LineNumber() int {
	if len(s.stack) == 0 {
		return 0
	}
	return s.stack[len(s.stack)-1].line
}

// Depth returns the number of open files, 1 for a source without active includes.
func (s *Source) Depth() int {
	return len(s.stack)
}

// Included reports whether any include directive has been expanded.
func (s *Source) Included() bool {
	return s.included
}

// TakeComments returns and clears the comment blocks collected so far.
func (s *Source) TakeComments() []Comment {
	c := s.comments
	s.comments = nil
	return c
}

// Close releases every open file.
func (s *Source) Close() error {
	var first error
	for len(s.stack) > 0 {
		if err := s.pop(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (s *Source) pop() error {
	top := s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
	if top.closer != nil {
		log.Debugf("closing %s after line %d", top.name, top.line)
	}
	return top.close()
}

// Next returns the next logical line, or io.EOF once every file is exhausted.
func (s *Source) Next() (string, error) {
	for len(s.stack) > 0 {
		top := s.stack[len(s.stack)-1]
		line, err := s.readLogical(top)
		if err == io.EOF {
			if cerr := s.pop(); cerr != nil {
				return "", errors.Wrap(errors.ErrCodeIO, "failed to close "+top.name, cerr)
			}
			continue
		}
		if err != nil {
			return "", errors.WrapAt(errors.ErrCodeIO, top.name, top.line, "read failed", err)
		}
		if s.opts.Include && isInclude(line) {
			if err := s.include(top, line); err != nil {
				return "", err
			}
			continue
		}
		return line, nil
	}
	return "", io.EOF
}

func isInclude(line string) bool {
	return len(line) > 2 && line[0] == includeBegin && line[len(line)-1] == includeEnd
}

func (s *Source) include(from *frame, line string) error {
	target := strings.TrimSpace(line[1 : len(line)-1])
	optional := strings.HasPrefix(target, string(includeOptional))
	if optional {
		target = strings.TrimSpace(target[1:])
	}
	if target == "" {
		return errors.Parse(from.name, from.line, "empty include directive")
	}

	if s.opts.Substituter != nil {
		expanded, err := s.opts.Substituter.Substitute(target)
		if err != nil {
			return errors.WrapAt(errors.ErrCodeParse, from.name, from.line, "cannot expand include "+target, err)
		}
		target = expanded
	}

	path, err := resolveInclude(from.base, target)
	if err != nil {
		return errors.WrapAt(errors.ErrCodeParse, from.name, from.line, "bad include target "+target, err)
	}

	if len(s.stack) >= s.opts.includeDepth() {
		return &errors.IniError{
			Code:    errors.ErrCodeIncludeDepth,
			Message: "include nesting exceeds limit while including " + path,
			File:    from.name,
			Line:    from.line,
		}
	}

	f, err := openFrame(path, s.opts)
	if err != nil {
		if optional {
			log.Debugf("skipping optional include %s: %v", path, err)
			return nil
		}
		return errors.WrapAt(errors.ErrCodeIO, from.name, from.line, "cannot open include "+path, err)
	}
	s.stack = append(s.stack, f)
	s.included = true
	log.DebugFields("include opened", logger.Fields{"path": path, "depth": len(s.stack)})
	return nil
}

// resolveInclude turns an include target into a filesystem path. file: URLs
// are accepted; relative paths are taken relative to base.
func resolveInclude(base, target string) (string, error) {
	if strings.HasPrefix(target, "file:") {
		u, err := url.Parse(target)
		if err != nil {
			return "", err
		}
		target = u.Path
		if target == "" {
			target = u.Opaque
		}
	}
	target = filepath.FromSlash(target)
	if filepath.IsAbs(target) || base == "" {
		return target, nil
	}
	return filepath.Join(base, target), nil
}

// readPhysical returns the next physical line of f without its line ending.
func readPhysical(f *frame) (string, error) {
	line, err := f.r.ReadString('\n')
	if err == io.EOF && line == "" {
		return "", io.EOF
	}
	if err != nil && err != io.EOF {
		return "", err
	}
	f.line++
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

// readLogical collects comment blocks and joins continuation lines until a
// complete non-comment line is available.
func (s *Source) readLogical(f *frame) (string, error) {
	var comment, buff strings.Builder
	commentLines := 0

	flush := func(detached bool) {
		if commentLines > 0 {
			s.comments = append(s.comments, Comment{Text: comment.String(), Detached: detached})
			comment.Reset()
			commentLines = 0
		}
	}

	for {
		line, err := readPhysical(f)
		if err == io.EOF {
			// a dangling continuation is still a line
			flush(true)
			if buff.Len() > 0 {
				return buff.String(), nil
			}
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "":
			if buff.Len() == 0 {
				flush(true)
			}
		case buff.Len() == 0 && strings.ContainsRune(s.opts.CommentChars, []rune(line)[0]):
			if commentLines > 0 {
				comment.WriteString(s.opts.lineSeparator())
			}
			_, size := firstRune(line)
			comment.WriteString(line[size:])
			commentLines++
		default:
			flush(false)
			if !s.opts.EscapeNewline || countEndingEscapes(line)%2 == 0 {
				buff.WriteString(line)
				return buff.String(), nil
			}
			buff.WriteString(line[:len(line)-1])
		}
	}
}

func firstRune(s string) (rune, int) {
	for _, r := range s {
		return r, len(string(r))
	}
	return 0, 0
}

func countEndingEscapes(line string) int {
	n := 0
	for i := len(line) - 1; i >= 0 && line[i] == escapeChar; i-- {
		n++
	}
	return n
}
