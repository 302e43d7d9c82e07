package scene

import "strings"

// Links maps deep-link fragments to scene ordinals
type Links struct {
	reg   *Registry
	table map[string]string
}

// NewLinks builds a fragment table over reg
// Table keys are fragments without the leading '#', values are scene ids
func NewLinks(reg *Registry, table map[string]string) *Links {
	t := make(map[string]string, len(table))
	for k, v := range table {
		t[normalizeFragment(k)] = v
	}
	return &Links{reg: reg, table: t}
}

// Resolve returns the scene index for fragment
// Explicit table entries win over scene ids; anything unknown resolves to 0
func (l *Links) Resolve(fragment string) int {
	idx, _ := l.Lookup(fragment)
	return idx
}

// Lookup resolves fragment and reports whether it matched
func (l *Links) Lookup(fragment string) (int, bool) {
	if l == nil || l.reg == nil {
		return 0, false
	}

	f := normalizeFragment(fragment)
	if f == "" {
		return 0, false
	}

	if id, ok := l.table[f]; ok {
		if i, ok := l.reg.IndexOf(id); ok {
			return i, true
		}
		return 0, false
	}

	if i, ok := l.reg.IndexOf(f); ok {
		return i, true
	}
	return 0, false
}

// Fragments returns the configured fragment table
func (l *Links) Fragments() map[string]string {
	if l == nil {
		return nil
	}
	out := make(map[string]string, len(l.table))
	for k, v := range l.table {
		out[k] = v
	}
	return out
}

func normalizeFragment(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
