// This file is part of Snesprobe.
//
// Snesprobe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Snesprobe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Snesprobe.  If not, see <https://www.gnu.org/licenses/>.

package schema

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
)

// GlobalVariables is the name of the struct that holds the top level
// variables of a schema.
const GlobalVariables = "@GLOBAL"

// ErrUnknownType is returned when a name is not the name of a type in the
// schema.
var ErrUnknownType = errors.New("unknown type")

// Schema is a collection of named types.
type Schema struct {
	crit  sync.RWMutex
	types map[string]Type
}

// NewSchema is the preferred method of initialisation for the Schema type.
func NewSchema() *Schema {
	return &Schema{
		types: make(map[string]Type),
	}
}

// Add a named type to the schema. An existing type with the same name is
// replaced.
func (s *Schema) Add(name string, t Type) {
	s.crit.Lock()
	defer s.crit.Unlock()
	s.types[name] = t
}

// Get returns the named type.
func (s *Schema) Get(name string) (Type, bool) {
	s.crit.RLock()
	defer s.crit.RUnlock()
	t, ok := s.types[name]
	return t, ok
}

// Has returns true if the schema contains the named type.
func (s *Schema) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the names of every type in the schema in alphabetical order.
func (s *Schema) Names() []string {
	s.crit.RLock()
	defer s.crit.RUnlock()
	n := make([]string, 0, len(s.types))
	for k := range s.types {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Len returns the number of types in the schema.
func (s *Schema) Len() int {
	s.crit.RLock()
	defer s.crit.RUnlock()
	return len(s.types)
}

// Reset removes all types from the schema.
func (s *Schema) Reset() {
	s.crit.Lock()
	defer s.crit.Unlock()
	clear(s.types)
}

// Reference returns a new Reference to the named type. The name does not need
// to exist in the schema yet.
func (s *Schema) Reference(name string) *Reference {
	return NewReference(name, s)
}

// Resolve the named type at the address. Memory is read from the CPU bus.
func (s *Schema) Resolve(name string, mem bus.Memory, address uint32) (*Variable, error) {
	t, ok := s.Get(name)
	if !ok {
		return nil, fmt.Errorf("schema: %w: %s", ErrUnknownType, name)
	}
	v := t.Resolve(name, NewRootContext(mem), address)
	if v == nil {
		return nil, fmt.Errorf("schema: cannot resolve %s", name)
	}
	return v, nil
}

// Globals resolves the global variables of the schema. Returns nil if the
// schema has no global variables.
func (s *Schema) Globals(mem bus.Memory) *Variable {
	v, err := s.Resolve(GlobalVariables, mem, 0)
	if err != nil {
		return nil
	}
	return v
}

// Dereference resolves the target type of a pointer variable at the address
// the pointer points to. Returns nil if the variable is not a pointer, if the
// pointer is null or if the pointer has no target type.
func (s *Schema) Dereference(v *Variable, mem bus.Memory) *Variable {
	if v == nil || v.IsNull() {
		return nil
	}

	p, ok := Underlying(v.Type).(*Pointer)
	if !ok || p.Target == nil {
		return nil
	}

	d := p.Target.Resolve(v.ID, NewRootContext(mem), uint32(v.Value))
	if d == nil {
		return nil
	}
	d.Name = "*" + v.Name
	return d
}
