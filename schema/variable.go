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
	"fmt"
	"strings"
)

// Variable is the result of resolving a Type at an address. A Variable and
// its children are never changed after resolution.
type Variable struct {
	// the dotted path to the variable from the root of the resolution
	ID string

	// the display name of the variable. for struct members and list elements
	// this is the name of the member or the index of the element
	Name string

	// the type that was resolved to create this variable
	Type Type

	// the address the type was resolved at
	Address uint32

	// the value read from memory. pointers store the address they point to.
	// the value of aggregate types is zero
	Value int64

	// the members of a struct, flags or group; the elements of a list; or
	// the nodes of a linked list
	Children []*Variable
}

func (v *Variable) String() string {
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s (%s) @ %06x = %s", v.ID, v.Type.TypeName(), v.Address, v.Text())
}

// Text returns the value of the variable as it should be displayed. Enums are
// shown by name if the value is known. Pointers are shown as an address or as
// "-" if they are null.
func (v *Variable) Text() string {
	switch t := Underlying(v.Type).(type) {
	case *Null:
		return "-"
	case *Enum:
		if n, ok := t.Name(v.Value); ok {
			return n
		}
		return fmt.Sprintf("%d", v.Value)
	case *Pointer:
		return fmt.Sprintf("%06x", uint32(v.Value))
	case *Struct, *Flags, *List, *LinkedList:
		return fmt.Sprintf("[%d]", len(v.Children))
	}
	return fmt.Sprintf("%d", v.Value)
}

// IsNull returns true if the variable is the result of a null pointer.
func (v *Variable) IsNull() bool {
	if v == nil {
		return true
	}
	_, ok := v.Type.(*Null)
	return ok
}

// Child returns the named child of the variable. Returns nil if there is no
// child with that name.
func (v *Variable) Child(name string) *Variable {
	for _, c := range v.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find descends through the children of the variable using the dotted path.
// For example, "player.position.x". Returns nil if any part of the path is
// missing.
func (v *Variable) Find(path string) *Variable {
	if path == "" {
		return v
	}
	for _, name := range strings.Split(path, ".") {
		if v == nil {
			return nil
		}
		v = v.Child(name)
	}
	return v
}

// Walk calls the function for the variable and then for each of its
// descendents in order. The depth of the root variable is zero.
func (v *Variable) Walk(fn func(v *Variable, depth int)) {
	v.walk(fn, 0)
}

func (v *Variable) walk(fn func(v *Variable, depth int), depth int) {
	if v == nil {
		return
	}
	fn(v, depth)
	for _, c := range v.Children {
		c.walk(fn, depth+1)
	}
}
