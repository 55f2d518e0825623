package pyini

import (
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/ksyq12/inicfg/internal/errors"
	"github.com/ksyq12/inicfg/internal/ini"
)

// substChar marks values that may need interpolation.
const substChar = '%'

// MaxExpansion bounds the length of a value being resolved. References that
// fan out without repeating a name can still grow exponentially.
const MaxExpansion = 1 << 20 // runes

// expression matches %(name) unless the % is escaped with a backslash.
var expression = regexp2.MustCompile(`(?<!\\)%\(([^)]+)\)`, regexp2.None)

// fetch returns option of sec with every %(name) token substituted.
func (p *ConfigParser) fetch(sec *ini.Section, option string, vars map[string]string) (string, error) {
	value, ok := sec.Get(option)
	if !ok {
		return "", errors.NoOption(sec.Name(), option)
	}
	if !strings.ContainsRune(value, substChar) {
		return value, nil
	}
	return p.interpolate(sec, option, value, vars)
}

// origin records which reference produced a span of the buffer. Its chain of
// parents is the list of names being expanded at that point.
type origin struct {
	name   string
	parent *origin
}

func (o *origin) has(name string) bool {
	for ; o != nil; o = o.parent {
		if o.name == name {
			return true
		}
	}
	return false
}

func (o *origin) depth() int {
	n := 0
	for ; o != nil; o = o.parent {
		n++
	}
	return n
}

// interpolate replaces the first token, then scans the whole buffer again,
// so substituted text may introduce further tokens. Every rune remembers the
// reference it came from; a token whose name is already among its own
// origins can only repeat itself. Nothing is returned unless every token
// resolves.
func (p *ConfigParser) interpolate(owner *ini.Section, option, value string, vars map[string]string) (string, error) {
	buf := []rune(value)
	from := make([]*origin, len(buf))
	for {
		m, err := expression.FindRunesMatch(buf)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeInterpolationMissing, "interpolation failed", err)
		}
		if m == nil {
			return string(buf), nil
		}

		name := m.GroupByNumber(1).String()
		key := strings.ToLower(name)
		end := m.Index + m.Length
		parent := from[m.Index]
		for _, o := range from[m.Index:end] {
			if o.has(key) {
				return "", errors.Cycle(owner.Name(), option, name, o.depth())
			}
			if o.depth() > parent.depth() {
				parent = o
			}
		}

		replacement, ok := p.lookup(owner, name, vars)
		if !ok {
			return "", errors.MissingOption(owner.Name(), option, name)
		}
		rs := []rune(replacement)
		if len(buf)-m.Length+len(rs) > MaxExpansion {
			return "", errors.Cycle(owner.Name(), option, name, parent.depth())
		}

		child := &origin{name: key, parent: parent}
		next := make([]rune, 0, len(buf)-m.Length+len(rs))
		next = append(next, buf[:m.Index]...)
		next = append(next, rs...)
		next = append(next, buf[end:]...)

		nextFrom := make([]*origin, 0, len(next))
		nextFrom = append(nextFrom, from[:m.Index]...)
		for range rs {
			nextFrom = append(nextFrom, child)
		}
		nextFrom = append(nextFrom, from[end:]...)

		buf, from = next, nextFrom
	}
}

// lookup resolves one token: the owning section first, then the caller's
// variables, then the parser defaults, then the DEFAULT section.
func (p *ConfigParser) lookup(owner *ini.Section, name string, vars map[string]string) (string, bool) {
	if v, ok := owner.Get(name); ok {
		return v, true
	}
	if v, ok := mapLookup(vars, name); ok {
		return v, true
	}
	if v, ok := mapLookup(p.defaults, name); ok {
		return v, true
	}
	if def := p.store.DefaultSection(); def != nil {
		if v, ok := def.Get(name); ok {
			return v, true
		}
	}
	return "", false
}

// mapLookup matches name exactly, then by its lower-case form, since option
// names are folded on load but caller-supplied maps are not.
func mapLookup(m map[string]string, name string) (string, bool) {
	if v, ok := m[name]; ok {
		return v, true
	}
	v, ok := m[strings.ToLower(name)]
	return v, ok
}
