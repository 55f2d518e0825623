// Package variables holds the named values available to include directives
// and to %(name) lookups from the command line.
package variables

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aymerick/raymond"
)

// Dictionary maps variable names to values. Include paths reference them
// with Handlebars syntax, e.g. <{{ENV}}/db.ini>.
type Dictionary map[string]string

// New returns a dictionary seeded with vars. vars may be nil.
func New(vars map[string]string) Dictionary {
	d := make(Dictionary, len(vars))
	for k, v := range vars {
		d[k] = v
	}
	return d
}

// Parse builds a dictionary from name=value pairs as given on the command line.
func Parse(pairs []string) (Dictionary, error) {
	d := make(Dictionary, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid variable %q, expected name=value", pair)
		}
		d[name] = value
	}
	return d, nil
}

// Get returns the value for a variable, or empty string if not found.
func (d Dictionary) Get(name string) string {
	return d[name]
}

// Set sets a variable value.
func (d Dictionary) Set(name, value string) {
	d[name] = value
}

// Has returns true if the variable exists in the dictionary.
func (d Dictionary) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Merge copies every entry of other into d, overriding existing names.
func (d Dictionary) Merge(other map[string]string) {
	for k, v := range other {
		d[k] = v
	}
}

// Names returns the variable names in sorted order.
func (d Dictionary) Names() []string {
	names := make([]string, 0, len(d))
	for k := range d {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the dictionary as a plain map.
func (d Dictionary) Map() map[string]string {
	m := make(map[string]string, len(d))
	for k, v := range d {
		m[k] = v
	}
	return m
}

// Resolve applies Handlebars template resolution to a string.
// Values are inserted verbatim; paths are not HTML.
func (d Dictionary) Resolve(s string) (string, error) {
	if !containsTemplate(s) {
		return s, nil
	}
	tpl, err := raymond.Parse(s)
	if err != nil {
		return "", err
	}
	ctx := make(map[string]raymond.SafeString, len(d))
	for k, v := range d {
		ctx[k] = raymond.SafeString(v)
	}
	return tpl.Exec(ctx)
}

// Substitute makes a Dictionary usable as an include path substituter.
func (d Dictionary) Substitute(s string) (string, error) {
	return d.Resolve(s)
}

// ResolveAll resolves variable references within the dictionary itself,
// e.g. ROOT = "{{HOME}}/conf". References may chain: values are resolved in
// name order, pass after pass, until a pass changes nothing.
func (d Dictionary) ResolveAll() error {
	names := d.Names()
	for pass := 0; pass <= len(names); pass++ {
		changed := false
		for _, key := range names {
			value := d[key]
			if !containsTemplate(value) {
				continue
			}
			resolved, err := d.Resolve(value)
			if err != nil {
				return fmt.Errorf("variable %s: %w", key, err)
			}
			if resolved != value {
				d[key] = resolved
				changed = true
			}
		}
		if !changed {
			return nil
		}
	}
	return fmt.Errorf("variables do not settle: %s", strings.Join(names, ", "))
}

func containsTemplate(s string) bool {
	return strings.Contains(s, "{{")
}
