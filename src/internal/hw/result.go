package hw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/turris-cz/turrishw/src/internal/utils"
)

// SortInterfaces orders ifaces by name in natural order.
func SortInterfaces(ifaces []Interface) {
	slices.SortStableFunc(ifaces, func(a, b Interface) int {
		return utils.NaturalCompare(a.Name, b.Name)
	})
}

// Result is a name-keyed collection of interfaces in natural name order.
type Result struct {
	items []Interface
}

// NewResult builds a result from ifaces. The slice is copied and sorted.
func NewResult(ifaces []Interface) *Result {
	items := slices.Clone(ifaces)
	SortInterfaces(items)
	return &Result{items: items}
}

// Len returns the number of interfaces.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// Names returns the interface names in order.
func (r *Result) Names() []string {
	names := make([]string, 0, r.Len())
	if r == nil {
		return names
	}
	for _, iface := range r.items {
		names = append(names, iface.Name)
	}
	return names
}

// Interfaces returns a copy of the interfaces in order.
func (r *Result) Interfaces() []Interface {
	if r == nil {
		return []Interface{}
	}
	return slices.Clone(r.items)
}

// Get returns the interface called name.
func (r *Result) Get(name string) (Interface, bool) {
	if r == nil {
		return Interface{}, false
	}
	for _, iface := range r.items {
		if iface.Name == name {
			return iface, true
		}
	}
	return Interface{}, false
}

// Filter returns the interfaces whose type passes f. A nil filter keeps
// everything.
func (r *Result) Filter(f *TypeFilter) *Result {
	out := &Result{items: []Interface{}}
	if r == nil {
		return out
	}
	for _, iface := range r.items {
		if f.Match(iface.Type) {
			out.items = append(out.items, iface)
		}
	}
	return out
}

// MarshalJSON encodes the result as an object keyed by interface name,
// keeping the natural order of the keys.
func (r *Result) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, iface := range r.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(iface.Name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(iface)
			if err != nil {
				return nil, fmt.Errorf("failed to encode interface %s: %w", iface.Name, err)
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// TypeFilter selects interfaces by type. A nil *TypeFilter matches every
// type; a non-nil filter without types matches nothing.
type TypeFilter struct {
	types map[string]struct{}
}

// NewTypeFilter creates a filter accepting the given types.
func NewTypeFilter(types ...string) *TypeFilter {
	f := &TypeFilter{types: make(map[string]struct{}, len(types))}
	for _, t := range types {
		if t = strings.TrimSpace(t); t != "" {
			f.types[t] = struct{}{}
		}
	}
	return f
}

// ParseTypeFilter parses a comma separated list of types. An empty string
// yields an empty (match nothing) filter.
func ParseTypeFilter(s string) *TypeFilter {
	return NewTypeFilter(strings.Split(s, ",")...)
}

// Match reports whether an interface of type t passes the filter.
func (f *TypeFilter) Match(t string) bool {
	if f == nil {
		return true
	}
	_, ok := f.types[t]
	return ok
}

// Types returns the accepted types, sorted.
func (f *TypeFilter) Types() []string {
	if f == nil {
		return nil
	}
	types := make([]string, 0, len(f.types))
	for t := range f.types {
		types = append(types, t)
	}
	slices.Sort(types)
	return types
}

func (f *TypeFilter) String() string {
	if f == nil {
		return "*"
	}
	return strings.Join(f.Types(), ",")
}
