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
	"sync"

	"github.com/jetsetilly/snesprobe/logger"
)

// primitive types that can be named by a Reference.
var primitives = map[string]Type{
	"boolean": &Number{Bits: 1},
	"uint8":   &Number{Bits: 8},
	"uint16":  &Number{Bits: 16},
	"uint24":  &Number{Bits: 24},
	"uint32":  &Number{Bits: 32},
	"int8":    &Number{Bits: 8, Signed: true},
	"int16":   &Number{Bits: 16, Signed: true},
	"int24":   &Number{Bits: 24, Signed: true},
	"int32":   &Number{Bits: 32, Signed: true},
}

// IsPrimitive returns true if the name is the name of a primitive type.
func IsPrimitive(name string) bool {
	_, ok := primitives[name]
	return ok
}

// Reference is a type referred to by name. The name is either a primitive
// type or a type in the schema. The reference is looked up the first time it
// is needed and the result is kept for the lifetime of the Reference.
type Reference struct {
	Name string

	schema   *Schema
	once     sync.Once
	resolved Type
}

// NewReference is the preferred method of initialisation for the Reference
// type. The schema may be nil in which case only primitive types can be
// referred to.
func NewReference(name string, schema *Schema) *Reference {
	return &Reference{Name: name, schema: schema}
}

func (t *Reference) isType() {}

// Resolved returns the type the reference refers to. Chains of references are
// followed to the end so the result is never another Reference. A name that
// cannot be found, or a chain that loops, refers to the Unknown type.
func (t *Reference) Resolved() Type {
	t.once.Do(func() {
		seen := map[string]bool{}
		name := t.Name
		for !seen[name] {
			seen[name] = true
			if p, ok := primitives[name]; ok {
				t.resolved = p
				return
			}
			if t.schema == nil {
				break
			}
			r, ok := t.schema.Get(name)
			if !ok {
				break
			}
			ref, ok := r.(*Reference)
			if !ok {
				t.resolved = r
				return
			}
			name = ref.Name
		}
		logger.Logf(logger.Allow, "schema", "unknown type: %s", t.Name)
		t.resolved = &Unknown{Name: t.Name}
	})
	return t.resolved
}

func (t *Reference) TypeName() string {
	return t.Resolved().TypeName()
}

func (t *Reference) SizeInBits() uint32 {
	return t.Resolved().SizeInBits()
}

// Resolve implements the Type interface.
func (t *Reference) Resolve(id string, ctx Context, address uint32) *Variable {
	return t.Resolved().Resolve(id, ctx, address)
}

// Unknown is a type that could not be found. It has no size and does not
// resolve.
type Unknown struct {
	Name string
}

func (t *Unknown) isType() {}

func (t *Unknown) TypeName() string {
	return NameUnknown
}

func (t *Unknown) SizeInBits() uint32 {
	return 0
}

// Resolve always returns nil.
func (t *Unknown) Resolve(id string, _ Context, _ uint32) *Variable {
	logger.Logf(logger.Allow, "schema", "%s: cannot resolve unknown type", id)
	return nil
}

// Null is the type of a variable created by a null pointer.
type Null struct{}

func (t *Null) isType() {}

func (t *Null) TypeName() string {
	return NameNull
}

func (t *Null) SizeInBits() uint32 {
	return 0
}

// Resolve implements the Type interface.
func (t *Null) Resolve(id string, _ Context, address uint32) *Variable {
	return &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
	}
}
