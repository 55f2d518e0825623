package ini

import (
	"fmt"
	"io"
	"strings"

	"github.com/ksyq12/inicfg/internal/errors"
)

// Handler receives parse events in document order.
type Handler interface {
	StartIni()
	EndIni()
	HandleComment(blocks []Comment)
	StartSection(name string)
	EndSection()
	HandleOption(name, value string)
}

// Parse drives h with the lines of src until src is exhausted. It does not
// close src. On error, events already delivered stay delivered.
func Parse(src *Source, h Handler, opts Options) error {
	h.StartIni()
	inSection := false

	for {
		line, err := src.Next()
		if blocks := src.TakeComments(); len(blocks) > 0 {
			h.HandleComment(blocks)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		if line[0] == '[' {
			name, err := parseSectionLine(line, opts)
			if err != nil {
				return errors.Parse(src.Name(), src.LineNumber(), err.Error())
			}
			if inSection {
				h.EndSection()
			}
			h.StartSection(name)
			inSection = true
			continue
		}

		if !inSection {
			if !opts.UnnamedSection && !opts.GlobalSection {
				return errors.Parse(src.Name(), src.LineNumber(), "option outside of a section")
			}
			h.StartSection(opts.GlobalSectionName)
			inSection = true
		}

		name, value, err := parseOptionLine(line, opts)
		if err != nil {
			return errors.Parse(src.Name(), src.LineNumber(), err.Error())
		}
		if opts.AutoNumbering {
			if _, index, ok := splitIndexed(name); ok && index >= opts.autoIndexLimit() {
				return errors.Parse(src.Name(), src.LineNumber(),
					fmt.Sprintf("index of %s exceeds the limit of %d", name, opts.autoIndexLimit()))
			}
		}
		h.HandleOption(name, value)
	}

	if inSection {
		h.EndSection()
	}
	h.EndIni()
	return nil
}

func parseSectionLine(line string, opts Options) (string, error) {
	if line[len(line)-1] != ']' {
		return "", errors.Validation("missing ']' in section header")
	}
	name := strings.TrimSpace(line[1 : len(line)-1])
	if opts.Escape {
		name = Unescape(name)
	}
	if name == "" && !opts.EmptySection {
		return "", errors.Validation("empty section name")
	}
	return name, nil
}

func parseOptionLine(line string, opts Options) (string, string, error) {
	var name, value string
	idx, size := operatorIndex(line, opts)
	if idx < 0 {
		if !opts.EmptyOption {
			return "", "", errors.Validation("missing operator in option line")
		}
		name = line
	} else {
		name = strings.TrimSpace(line[:idx])
		value = strings.TrimSpace(line[idx+size:])
	}
	if opts.Escape {
		name = Unescape(name)
		value = Unescape(value)
	}
	if name == "" {
		return "", "", errors.Validation("empty option name")
	}
	return name, value, nil
}

// operatorIndex finds the first unescaped operator. Strict mode accepts only
// opts.Operator; otherwise '=' and ':' both separate name from value.
func operatorIndex(line string, opts Options) (int, int) {
	if opts.StrictOperator {
		op := strings.TrimSpace(opts.operator())
		for from := 0; from < len(line); {
			i := strings.Index(line[from:], op)
			if i < 0 {
				return -1, 0
			}
			i += from
			if !escaped(line, i) {
				return i, len(op)
			}
			from = i + len(op)
		}
		return -1, 0
	}
	for i := 0; i < len(line); i++ {
		if (line[i] == '=' || line[i] == ':') && !escaped(line, i) {
			return i, 1
		}
	}
	return -1, 0
}

// escaped reports whether line[i] is preceded by an odd number of backslashes.
func escaped(line string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && line[j] == escapeChar; j-- {
		n++
	}
	return n%2 == 1
}
