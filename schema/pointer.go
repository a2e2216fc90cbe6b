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

// BankPolicy decides how the bank of a pointer value is completed.
type BankPolicy int

// List of valid BankPolicy values.
const (
	// the value of the pointer is used unchanged
	BankNone BankPolicy = iota

	// the Bank field of the pointer is ORed into the value
	BankFixed

	// the bank of the address of the pointer itself is ORed into the value
	BankInherit
)

func (p BankPolicy) String() string {
	switch p {
	case BankFixed:
		return "fixed"
	case BankInherit:
		return "same"
	}
	return "none"
}

// Pointer is an address stored in memory. The value of a resolved Pointer is
// the address it points to. The Target type is not resolved automatically.
// Use Schema.Dereference for that.
type Pointer struct {
	Bits uint32

	// the integer type the address is stored as. a pointer with no source
	// always resolves to null
	Source Type

	// the type of the data at the address
	Target Type

	// a value equal to NullValue resolves to null if Nullable is true
	Nullable  bool
	NullValue int64

	BankPolicy BankPolicy
	Bank       uint8
}

func (t *Pointer) isType() {}

func (t *Pointer) TypeName() string {
	return NamePointer
}

func (t *Pointer) SizeInBits() uint32 {
	if t.Bits == 0 && t.Source != nil {
		return t.Source.SizeInBits()
	}
	return t.Bits
}

// Resolve implements the Type interface.
func (t *Pointer) Resolve(id string, ctx Context, address uint32) *Variable {
	return t.resolve(id, ctx, address, t)
}

// resolve the pointer value. the type of the variable is typ unless the
// pointer is null.
func (t *Pointer) resolve(id string, ctx Context, address uint32, typ Type) *Variable {
	null := &Variable{
		ID:      id,
		Name:    id,
		Type:    &Null{},
		Address: address,
	}

	if t.Source == nil {
		return null
	}

	src := t.Source.Resolve(id, ctx, address)
	if src == nil {
		return null
	}

	target := src.Value
	if t.Nullable && target == t.NullValue {
		return null
	}

	switch t.BankPolicy {
	case BankInherit:
		target |= int64(address & 0xff0000)
	case BankFixed:
		target |= int64(t.Bank) << 16
	}

	return &Variable{
		ID:      id,
		Name:    id,
		Type:    typ,
		Address: address,
		Value:   target,
	}
}
