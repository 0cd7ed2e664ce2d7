// Package symbol maps Go types to compact grammar symbols.
//
// Symbol identity is derived from a type name (see TypeName) and checked against the recorded
// reflect.Type, so the same type always yields the same symbol and distinct types yield distinct symbols.
package symbol

import (
	"reflect"
	"strconv"
)

// Symbol is a compact grammar symbol identifier, symbols are numbered from 0 in order of creation.
type Symbol int

// None is never returned by Table.
const None Symbol = -1

// Code returns alphabetic code of the symbol: decimal digits of its number mapped to letters a..j.
func (s Symbol) Code() string {
	digits := []byte(strconv.Itoa(int(s)))
	for i, d := range digits {
		if d >= '0' && d <= '9' {
			digits[i] = d - '0' + 'a'
		}
	}
	return string(digits)
}

// Table is an append-only bidirectional map between type names and symbols.
// Table is not safe for concurrent modification, but concurrent lookups are safe once nothing adds symbols.
type Table struct {
	symbols map[string]Symbol
	byType  map[reflect.Type]Symbol
	names   []string
	types   []reflect.Type
}

func NewTable() *Table {
	return &Table{symbols: make(map[string]Symbol), byType: make(map[reflect.Type]Symbol)}
}

// Get returns the symbol for type name, creating it on first request.
func (t *Table) Get(name string) Symbol {
	s, found := t.symbols[name]
	if !found {
		s = Symbol(len(t.names))
		t.symbols[name] = s
		t.names = append(t.names, name)
		t.types = append(t.types, nil)
	}
	return s
}

// Of returns the symbol for Go type, creating it on first request.
// Distinct types sharing the same name (e.g. types declared inside different functions)
// get distinct symbols: the second one is named "<name>#2", the third "<name>#3" and so on.
func (t *Table) Of(rt reflect.Type) Symbol {
	if s, found := t.byType[rt]; found {
		return s
	}

	base := TypeName(rt)
	name := base
	for n := 2; ; n++ {
		s := t.Get(name)
		if t.types[s] == nil {
			t.types[s] = rt
			t.byType[rt] = s
			return s
		}
		name = base + "#" + strconv.Itoa(n)
	}
}

// Find returns the symbol for Go type if it exists.
func (t *Table) Find(rt reflect.Type) (Symbol, bool) {
	s, found := t.byType[rt]
	return s, found
}

// Lookup returns the symbol for type name if it exists.
func (t *Table) Lookup(name string) (Symbol, bool) {
	s, found := t.symbols[name]
	return s, found
}

// Denormalize returns the type name the symbol was created for or empty string for unknown symbol.
func (t *Table) Denormalize(s Symbol) string {
	if s < 0 || int(s) >= len(t.names) {
		return ""
	}
	return t.names[s]
}

// Type returns the Go type the symbol was created for or nil if it was created by name only.
func (t *Table) Type(s Symbol) reflect.Type {
	if s < 0 || int(s) >= len(t.types) {
		return nil
	}
	return t.types[s]
}

// Len returns the number of symbols created so far.
func (t *Table) Len() int {
	return len(t.names)
}

// Names returns type names indexed by symbol.
func (t *Table) Names() []string {
	result := make([]string, len(t.names))
	copy(result, t.names)
	return result
}
