package ini

import (
	"math"
	"strconv"
	"strings"
)

// builder turns parse events into sections of a Store.
type builder struct {
	store   *Store
	current *Section
	pending []string
	started bool // a section or option has been seen
}

func newBuilder(s *Store) *builder {
	return &builder{store: s}
}

func (b *builder) StartIni() {
	b.pending = nil
}

func (b *builder) HandleComment(blocks []Comment) {
	if !b.store.opts.Comment {
		return
	}
	for _, c := range blocks {
		if !b.started && c.Detached && b.store.opts.HeaderComment && b.store.header == "" && len(b.pending) == 0 {
			b.store.header = c.Text
			continue
		}
		b.pending = append(b.pending, c.Text)
	}
}

func (b *builder) takeComment() string {
	c := strings.Join(b.pending, b.store.opts.lineSeparator())
	b.pending = nil
	return c
}

func (b *builder) StartSection(name string) {
	b.started = true
	b.current = b.store.AddSection(name)
	if c := b.takeComment(); c != "" {
		b.current.comment = c
	}
}

func (b *builder) EndSection() {
	b.current = nil
}

func (b *builder) HandleOption(name, value string) {
	b.started = true
	sec := b.current
	key := name

	if b.store.opts.AutoNumbering {
		if base, index, ok := splitIndexed(name); ok {
			key = base
			for sec.Len(key) <= index {
				sec.Add(key, "")
			}
			sec.PutAt(key, value, index)
			b.attach(sec, key)
			return
		}
	}

	if b.store.opts.MultiOption {
		sec.Add(key, value)
	} else {
		sec.Put(key, value)
	}
	b.attach(sec, key)
}

// attach moves pending comments onto key. With multi-options the latest
// comment for a key wins.
func (b *builder) attach(sec *Section, key string) {
	if c := b.takeComment(); c != "" {
		sec.SetOptionComment(key, c)
	}
}

func (b *builder) EndIni() {
	if c := b.takeComment(); c != "" {
		b.store.footer = c
	}
}

// splitIndexed recognises auto-numbered option names. In "item.2.name" the
// first purely numeric segment is an ordinal: the value lands at index 1 of
// "item.name". Every segment before it must be non-empty and non-numeric;
// later numeric segments stay part of the name. Ordinal 0 is treated as 1;
// an ordinal too large for an int saturates.
func splitIndexed(name string) (string, int, bool) {
	parts := strings.Split(name, ".")
	if len(parts) < 2 {
		return "", 0, false
	}
	for i, p := range parts {
		if p == "" {
			return "", 0, false
		}
		if !isDigits(p) {
			continue
		}
		if i == 0 {
			return "", 0, false
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			n = math.MaxInt
		}
		rest := append(append([]string(nil), parts[:i]...), parts[i+1:]...)
		index := n - 1
		if index < 0 {
			index = 0
		}
		return strings.Join(rest, "."), index, true
	}
	return "", 0, false
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}
