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

// Type is implemented by every variant of schema type.
type Type interface {
	// TypeName returns the name of the variant. For example, "struct" or
	// "pointer". A Reference returns the name of the variant it refers to.
	TypeName() string

	// SizeInBits returns the size of the type in memory.
	SizeInBits() uint32

	// Resolve the type at the address. The id is the dotted path to the
	// variable from the root of the resolution. Returns nil if the type
	// cannot be resolved.
	Resolve(id string, ctx Context, address uint32) *Variable

	// types can only be defined in this package
	isType()
}

// SizeInBytes returns the size of the type rounded up to a whole number of
// bytes.
func SizeInBytes(t Type) uint32 {
	if t == nil {
		return 0
	}
	return (t.SizeInBits() + 7) / 8
}

// Underlying returns the type that a Reference refers to. For any other type
// the type itself is returned.
func Underlying(t Type) Type {
	for {
		r, ok := t.(*Reference)
		if !ok {
			return t
		}
		t = r.Resolved()
	}
}

// List of type names.
const (
	NameNumber     = "number"
	NameEnum       = "enum"
	NameFlags      = "flags"
	NameStruct     = "struct"
	NameGroup      = "group"
	NameList       = "list"
	NameLinkedList = "linkedlist"
	NamePointer    = "pointer"
	NameUnknown    = "unknown"
	NameNull       = "null"
)
