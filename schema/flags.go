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

// FlagsMember is a bit field in a Flags type. The offset is in bits from the
// address of the flags.
type FlagsMember struct {
	ID     string
	Name   string
	Offset uint32
	Bits   uint32
	Type   Type
}

// Flags is a word divided into bit fields.
type Flags struct {
	Bits    uint32
	Members []FlagsMember
}

func (t *Flags) isType() {}

func (t *Flags) TypeName() string {
	return NameFlags
}

func (t *Flags) SizeInBits() uint32 {
	return t.Bits
}

// Add a member to the flags.
func (t *Flags) Add(id string, name string, offset uint32, bits uint32, typ Type) {
	t.Members = append(t.Members, FlagsMember{
		ID:     id,
		Name:   name,
		Offset: offset,
		Bits:   bits,
		Type:   typ,
	})
}

// Resolve implements the Type interface. Each member is resolved at the
// address of the flags in a context that reads only the bit field of the
// member.
func (t *Flags) Resolve(id string, ctx Context, address uint32) *Variable {
	v := &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
	}

	for _, m := range t.Members {
		if m.Type == nil {
			continue
		}
		fctx := &flagsContext{
			parent: ctx,
			offset: m.Offset,
			bits:   m.Bits,
		}
		c := m.Type.Resolve(joinID(id, m.ID), fctx, address)
		if c == nil {
			continue
		}
		c.Name = m.Name
		v.Children = append(v.Children, c)
	}

	return v
}

func joinID(parent string, id string) string {
	if parent == "" {
		return id
	}
	return parent + "." + id
}
