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
	"strconv"
)

// DefaultMaxLength is the maximum length of a List or LinkedList that does
// not specify one.
const DefaultMaxLength = 16

// List is a number of consecutive elements of the same type.
type List struct {
	Bits   uint32
	Target Type

	// the number of elements. the offset is resolved with a base of zero so
	// Relative offsets are a fixed length and ValueOf offsets are the value
	// of another member
	Length Offset

	// the length is never more than MaxLength. zero means DefaultMaxLength
	MaxLength uint32
}

func (t *List) isType() {}

func (t *List) TypeName() string {
	return NameList
}

func (t *List) SizeInBits() uint32 {
	return t.Bits
}

func maxLength(m uint32) uint32 {
	if m == 0 {
		return DefaultMaxLength
	}
	return m
}

// Resolve implements the Type interface.
func (t *List) Resolve(id string, ctx Context, address uint32) *Variable {
	v := &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
	}

	if t.Target == nil || t.Length == nil {
		return v
	}

	n := min(t.Length.Resolve(ctx, 0), maxLength(t.MaxLength))
	sz := SizeInBytes(t.Target)

	for i := range n {
		c := t.Target.Resolve(joinID(id, strconv.Itoa(int(i))), ctx, address+i*sz)
		if c == nil {
			continue
		}
		c.Name = fmt.Sprintf("#%d", i)
		v.Children = append(v.Children, c)
	}

	return v
}

// LinkedList is a chain of structs. The linked list is a pointer to the first
// struct and the Next member of each struct points to the one after it.
//
// Each child of the resolved variable is one node of the chain. A node is a
// pointer variable and its value is the address of the struct.
type LinkedList struct {
	Pointer

	// the id of the member of the Target struct that points to the next
	// struct. the member must be a pointer or a linked list
	Next string

	// the maximum number of nodes. zero means DefaultMaxLength
	MaxLength uint32
}

func (t *LinkedList) TypeName() string {
	return NameLinkedList
}

// Resolve implements the Type interface. The chain ends at a null pointer, at
// a next member that doesn't exist or after MaxLength nodes.
func (t *LinkedList) Resolve(id string, ctx Context, address uint32) *Variable {
	v := &Variable{
		ID:      id,
		Name:    id,
		Type:    t,
		Address: address,
	}

	node := t.Pointer.resolve(id, ctx, address, &t.Pointer)

	for i := range maxLength(t.MaxLength) {
		if node == nil || !isPointer(node.Type) {
			break
		}

		node.Name = fmt.Sprintf("#%d", i)
		v.Children = append(v.Children, node)

		st, ok := Underlying(t.Target).(*Struct)
		if !ok || st.Group {
			break
		}

		node = t.next(st, ctx, uint32(node.Value))
	}

	return v
}

// next resolves the Next member of the struct at the address. a member that
// is itself a linked list is resolved as a pointer only.
func (t *LinkedList) next(st *Struct, ctx Context, address uint32) *Variable {
	sctx := st.context(ctx, address)
	base, m, ok := st.member(sctx, t.Next, address)
	if !ok || m.Type == nil {
		return nil
	}

	addr := m.Offset.Resolve(sctx, base)
	if ll, ok := Underlying(m.Type).(*LinkedList); ok {
		return ll.Pointer.resolve(m.ID, sctx, addr, &ll.Pointer)
	}
	return m.Type.Resolve(m.ID, sctx, addr)
}

func isPointer(t Type) bool {
	if t == nil {
		return false
	}
	n := t.TypeName()
	return n == NamePointer || n == NameLinkedList
}
