// Package multimap provides an insertion-ordered map from a key to a list of values.
//
// Get returns the last value stored for a key, GetAll the whole list. A key that
// is present always has at least one value: removing the last value of a key
// removes the key.
//
// MultiMap is not safe for concurrent use.
package multimap

// MultiMap is an ordered multi-valued map. The zero value is not usable; call New.
type MultiMap[K comparable, V any] struct {
	keys   []K
	values map[K][]V
}

// New returns an empty MultiMap.
func New[K comparable, V any]() *MultiMap[K, V] {
	return &MultiMap[K, V]{values: make(map[K][]V)}
}

func (m *MultiMap[K, V]) list(key K, create bool) []V {
	vs, ok := m.values[key]
	if !ok && create {
		m.keys = append(m.keys, key)
		m.values[key] = nil
	}
	return vs
}

// Add appends value to the list of key.
func (m *MultiMap[K, V]) Add(key K, value V) {
	vs := m.list(key, true)
	m.values[key] = append(vs, value)
}

// Insert places value at position index of key's list, shifting later values.
// It panics if index is out of range, like a slice insert would.
func (m *MultiMap[K, V]) Insert(key K, value V, index int) {
	if index < 0 || index > len(m.values[key]) {
		panic("multimap: insert index out of range")
	}
	vs := m.list(key, true)
	vs = append(vs, value)
	copy(vs[index+1:], vs[index:])
	vs[index] = value
	m.values[key] = vs
}

// Put replaces the last value of key, or adds it when key is absent.
// The previous value and true are returned when one was replaced.
func (m *MultiMap[K, V]) Put(key K, value V) (V, bool) {
	var prev V
	vs := m.list(key, true)
	if len(vs) == 0 {
		m.values[key] = append(vs, value)
		return prev, false
	}
	prev = vs[len(vs)-1]
	vs[len(vs)-1] = value
	return prev, true
}

// PutAt replaces the value at index of key's list and returns the previous one.
// It panics if key is absent or index is out of range.
func (m *MultiMap[K, V]) PutAt(key K, value V, index int) V {
	vs := m.values[key]
	prev := vs[index]
	vs[index] = value
	return prev
}

// PutAll replaces key's whole list with a copy of values and returns the old list.
// An empty values list removes the key.
func (m *MultiMap[K, V]) PutAll(key K, values []V) []V {
	prev := m.values[key]
	if len(values) == 0 {
		m.Remove(key)
		return prev
	}
	m.list(key, true)
	m.values[key] = append([]V(nil), values...)
	return prev
}

// Get returns the last value stored for key.
func (m *MultiMap[K, V]) Get(key K) (V, bool) {
	vs := m.values[key]
	if len(vs) == 0 {
		var zero V
		return zero, false
	}
	return vs[len(vs)-1], true
}

// GetAt returns the value at index of key's list.
func (m *MultiMap[K, V]) GetAt(key K, index int) (V, bool) {
	vs := m.values[key]
	if index < 0 || index >= len(vs) {
		var zero V
		return zero, false
	}
	return vs[index], true
}

// GetAll returns a copy of key's values in insertion order, or nil.
func (m *MultiMap[K, V]) GetAll(key K) []V {
	vs := m.values[key]
	if len(vs) == 0 {
		return nil
	}
	return append([]V(nil), vs...)
}

// Len returns the number of values stored for key.
func (m *MultiMap[K, V]) Len(key K) int {
	return len(m.values[key])
}

// ContainsKey reports whether key has at least one value.
func (m *MultiMap[K, V]) ContainsKey(key K) bool {
	_, ok := m.values[key]
	return ok
}

// Remove deletes key and all its values, returning the first value.
func (m *MultiMap[K, V]) Remove(key K) (V, bool) {
	var first V
	vs, ok := m.values[key]
	if !ok {
		return first, false
	}
	delete(m.values, key)
	m.dropKey(key)
	if len(vs) > 0 {
		first = vs[0]
	}
	return first, true
}

// RemoveAt deletes the value at index of key's list. The key disappears with
// its last value.
func (m *MultiMap[K, V]) RemoveAt(key K, index int) (V, bool) {
	var removed V
	vs := m.values[key]
	if index < 0 || index >= len(vs) {
		return removed, false
	}
	removed = vs[index]
	vs = append(vs[:index], vs[index+1:]...)
	if len(vs) == 0 {
		delete(m.values, key)
		m.dropKey(key)
	} else {
		m.values[key] = vs
	}
	return removed, true
}

func (m *MultiMap[K, V]) dropKey(key K) {
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			return
		}
	}
}

// Keys returns the keys in first-insertion order.
func (m *MultiMap[K, V]) Keys() []K {
	return append([]K(nil), m.keys...)
}

// Values returns every value of every key, grouped by key in key order.
func (m *MultiMap[K, V]) Values() []V {
	var all []V
	for _, k := range m.keys {
		all = append(all, m.values[k]...)
	}
	return all
}

// Size returns the number of keys.
func (m *MultiMap[K, V]) Size() int {
	return len(m.keys)
}

// IsEmpty reports whether the map has no keys.
func (m *MultiMap[K, V]) IsEmpty() bool {
	return len(m.keys) == 0
}

// Clear removes every key.
func (m *MultiMap[K, V]) Clear() {
	m.keys = nil
	m.values = make(map[K][]V)
}
