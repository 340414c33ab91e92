// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Entry is a single named member of a [Map].
type Entry struct {
	Name  string
	Value Value
}

// Map is an ordered collection of uniquely named values. Iteration follows
// insertion order; replacing an existing name keeps its position.
//
// The zero Map is not usable; create maps with [NewMap].
type Map struct {
	entries []Entry
	index   map[string]int
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// NewMapFrom builds a Map from entries in order. A repeated name replaces the
// earlier value in place.
func NewMapFrom(entries ...Entry) *Map {
	m := NewMap()
	for _, e := range entries {
		m.Set(e.Name, e.Value)
	}
	return m
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.entries)
}

// Get returns the value stored under name.
func (m *Map) Get(name string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[name]
	if !ok {
		return Value{}, false
	}
	return m.entries[i].Value, true
}

// Has reports whether name is present.
func (m *Map) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Set stores v under name. New names are appended; existing names keep
// their position.
func (m *Map) Set(name string, v Value) {
	if m.index == nil {
		m.index = make(map[string]int)
	}
	if i, ok := m.index[name]; ok {
		m.entries[i].Value = v
		return
	}
	m.index[name] = len(m.entries)
	m.entries = append(m.entries, Entry{Name: name, Value: v})
}

// Delete removes name and reports whether it was present.
func (m *Map) Delete(name string) bool {
	i, ok := m.index[name]
	if !ok {
		return false
	}
	m.entries = append(m.entries[:i], m.entries[i+1:]...)
	delete(m.index, name)
	for j := i; j < len(m.entries); j++ {
		m.index[m.entries[j].Name] = j
	}
	return true
}

// Keys returns the entry names in order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Name
	}
	return keys
}

// Entries returns the entries in order. The slice is a copy; the values are
// not.
func (m *Map) Entries() []Entry {
	if m == nil {
		return nil
	}
	out := make([]Entry, len(m.entries))
	copy(out, m.entries)
	return out
}

// Clone returns a deep copy of m.
func (m *Map) Clone() *Map {
	out := NewMap()
	if m == nil {
		return out
	}
	out.entries = make([]Entry, 0, len(m.entries))
	for _, e := range m.entries {
		out.Set(e.Name, e.Value.Clone())
	}
	return out
}

// Equal reports whether both maps hold the same names with equal values,
// regardless of order.
func (m *Map) Equal(other *Map) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, e := range m.Entries() {
		ov, ok := other.Get(e.Name)
		if !ok || !e.Value.Equal(ov) {
			return false
		}
	}
	return true
}
