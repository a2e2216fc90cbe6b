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
	"strings"

	"github.com/jetsetilly/snesprobe/logger"
)

// StructMember is a member of a Struct. The offset is resolved against the
// address of the struct.
type StructMember struct {
	ID     string
	Name   string
	Offset Offset
	Type   Type
}

// Struct is a collection of members at offsets from the address of the
// struct. A Struct with Group set shares the context of its parent. Offsets
// of type ValueOf in a group refer to the members of the enclosing struct.
type Struct struct {
	Bits    uint32
	Group   bool
	Members []StructMember
}

func (t *Struct) isType() {}

func (t *Struct) TypeName() string {
	if t.Group {
		return NameGroup
	}
	return NameStruct
}

func (t *Struct) SizeInBits() uint32 {
	return t.Bits
}

// Add a member to the struct. A nil offset is the same as Relative(0).
func (t *Struct) Add(id string, name string, offset Offset, typ Type) {
	if offset == nil {
		offset = Relative(0)
	}
	t.Members = append(t.Members, StructMember{
		ID:     id,
		Name:   name,
		Offset: offset,
		Type:   typ,
	})
}

func (t *Struct) context(ctx Context, address uint32) Context {
	if t.Group {
		return &groupContext{Context: ctx, depth: depth(ctx) + 1}
	}
	return &structContext{parent: ctx, st: t, address: address, depth: depth(ctx) + 1}
}

// Resolve implements the Type interface.
func (t *Struct) Resolve(id string, ctx Context, address uint32) *Variable {
	v := &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
	}

	sctx := t.context(ctx, address)
	if depth(sctx) > maxDepth {
		logger.Logf(logger.Allow, "schema", "%s: too deeply nested", id)
		return nil
	}

	for _, m := range t.Members {
		if m.Type == nil {
			continue
		}
		c := m.Type.Resolve(joinID(id, m.ID), sctx, m.Offset.Resolve(sctx, address))
		if c == nil {
			continue
		}
		c.Name = m.Name
		v.Children = append(v.Children, c)
	}

	return v
}

// Member returns the member with the dotted path. Each part of the path
// except the last must name a group.
func (t *Struct) Member(path string) (StructMember, bool) {
	_, m, ok := t.member(nil, path, 0)
	return m, ok
}

// member finds the member with the dotted path and the address of the
// struct or group that directly contains it.
func (t *Struct) member(ctx Context, path string, address uint32) (uint32, StructMember, bool) {
	parts := strings.Split(path, ".")

	st := t
	for i, p := range parts {
		var m StructMember
		var found bool
		for _, sm := range st.Members {
			if sm.ID == p {
				m = sm
				found = true
				break
			}
		}
		if !found {
			return 0, StructMember{}, false
		}

		if i == len(parts)-1 {
			return address, m, true
		}

		g, ok := Underlying(m.Type).(*Struct)
		if !ok || !g.Group {
			return 0, StructMember{}, false
		}
		if ctx != nil {
			address = m.Offset.Resolve(ctx, address)
		}
		st = g
	}

	return 0, StructMember{}, false
}

// ResolveMember resolves a single member of the struct, which is at the
// address. The id is a dotted path through any groups. Returns nil if the
// member does not exist.
func (t *Struct) ResolveMember(id string, ctx Context, address uint32) *Variable {
	sctx := t.context(ctx, address)
	if depth(sctx) > maxDepth {
		logger.Logf(logger.Allow, "schema", "%s: too deeply nested", id)
		return nil
	}

	base, m, ok := t.member(sctx, id, address)
	if !ok || m.Type == nil {
		return nil
	}

	return m.Type.Resolve(m.ID, sctx, m.Offset.Resolve(sctx, base))
}
