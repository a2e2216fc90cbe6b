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
	"sort"
)

// Number is an integer of any width up to 64 bits.
type Number struct {
	Bits   uint32
	Signed bool
}

func (t *Number) isType() {}

func (t *Number) TypeName() string {
	return NameNumber
}

func (t *Number) SizeInBits() uint32 {
	return t.Bits
}

// Resolve implements the Type interface.
func (t *Number) Resolve(id string, ctx Context, address uint32) *Variable {
	return &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
		Value:   ctx.ReadBits(address, t.Bits, t.Signed),
	}
}

// EnumValue is a single named value of an Enum.
type EnumValue struct {
	ID    string
	Name  string
	Value int64
}

// Enum is an unsigned integer where each known value has a name.
type Enum struct {
	Bits uint32

	// values sorted by value
	values []EnumValue
}

func (t *Enum) isType() {}

func (t *Enum) TypeName() string {
	return NameEnum
}

func (t *Enum) SizeInBits() uint32 {
	return t.Bits
}

// Add a named value to the enum. Adding a value that already exists replaces
// the existing name.
func (t *Enum) Add(id string, name string, value int64) {
	i := sort.Search(len(t.values), func(i int) bool {
		return t.values[i].Value >= value
	})
	v := EnumValue{ID: id, Name: name, Value: value}
	if i < len(t.values) && t.values[i].Value == value {
		t.values[i] = v
		return
	}
	t.values = append(t.values, EnumValue{})
	copy(t.values[i+1:], t.values[i:])
	t.values[i] = v
}

// Values returns a copy of the enum values in order of value.
func (t *Enum) Values() []EnumValue {
	return append([]EnumValue(nil), t.values...)
}

// Name returns the display name for a value. The boolean is false if the value
// has no name.
func (t *Enum) Name(value int64) (string, bool) {
	i := sort.Search(len(t.values), func(i int) bool {
		return t.values[i].Value >= value
	})
	if i < len(t.values) && t.values[i].Value == value {
		return t.values[i].Name, true
	}
	return "", false
}

// Lookup returns the value of a named value. The boolean is false if there is
// no value with that id or name.
func (t *Enum) Lookup(name string) (int64, bool) {
	for _, v := range t.values {
		if v.ID == name || v.Name == name {
			return v.Value, true
		}
	}
	return 0, false
}

// Resolve implements the Type interface. Enums are always read unsigned.
func (t *Enum) Resolve(id string, ctx Context, address uint32) *Variable {
	return &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
		Value:   ctx.ReadBits(address, t.Bits, false),
	}
}
