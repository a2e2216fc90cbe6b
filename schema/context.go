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
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
)

// Context controls how a type reads memory during one resolution. Contexts
// form a chain from the root context down through the structs and flags
// being resolved.
type Context interface {
	// ReadBits reads an integer of the given width at the address.
	ReadBits(address uint32, bits uint32, signed bool) int64

	// ResolveMember resolves the member of the innermost struct being
	// resolved. The id is a dotted path through any groups. Returns nil if
	// the member does not exist.
	ResolveMember(id string) *Variable
}

// RootContext reads directly from the CPU bus.
type RootContext struct {
	mem bus.Memory
}

// NewRootContext is the preferred method of initialisation for the
// RootContext type.
func NewRootContext(mem bus.Memory) *RootContext {
	return &RootContext{mem: mem}
}

// ReadBits implements the Context interface. Bytes are read in little-endian
// order. The result is masked to the requested width and sign extended if
// required.
func (ctx *RootContext) ReadBits(address uint32, bits uint32, signed bool) int64 {
	if bits == 0 {
		return 0
	}
	bits = min(bits, 64)

	var v uint64
	for i := uint32(0); i < (bits+7)/8; i++ {
		v |= uint64(bus.Peek(ctx.mem, bus.CPUBus, address+i)) << (i * 8)
	}

	return extend(v, bits, signed)
}

// ResolveMember implements the Context interface. There are no members at
// the root.
func (ctx *RootContext) ResolveMember(id string) *Variable {
	return nil
}

// extend masks the value to the number of bits and sign extends it if
// required.
func extend(v uint64, bits uint32, signed bool) int64 {
	if bits < 64 {
		v &= (uint64(1) << bits) - 1
		if signed && v&(uint64(1)<<(bits-1)) != 0 {
			v |= ^uint64(0) << bits
		}
	}
	return int64(v)
}

// structContext is the context of the members of a struct.
type structContext struct {
	parent  Context
	st      *Struct
	address uint32
	depth   int
}

// the maximum number of nested struct contexts. recursive types and value_of
// offsets that refer to themselves stop at this depth
const maxDepth = 64

func depth(ctx Context) int {
	switch c := ctx.(type) {
	case *structContext:
		return c.depth
	case *groupContext:
		return c.depth
	case *flagsContext:
		return depth(c.parent)
	}
	return 0
}

func (ctx *structContext) ReadBits(address uint32, bits uint32, signed bool) int64 {
	return ctx.parent.ReadBits(address, bits, signed)
}

func (ctx *structContext) ResolveMember(id string) *Variable {
	return ctx.st.ResolveMember(id, ctx, ctx.address)
}

// groupContext shares the addressing of the enclosing context.
type groupContext struct {
	Context
	depth int
}

// flagsContext is the context of a single member of a flags type. Reads are
// redirected to the bit field of the member.
type flagsContext struct {
	parent Context
	offset uint32
	bits   uint32
}

// ReadBits reads the bit field of the member. The field is extracted
// unsigned and then interpreted at the requested width, so a narrow field is
// only negative if its top bit is also the top bit of the requested width.
// The address is the address of the flags type.
func (ctx *flagsContext) ReadBits(address uint32, bits uint32, signed bool) int64 {
	if ctx.bits == 0 {
		return 0
	}
	width := min(ctx.bits, 64)

	address += ctx.offset / 8
	shift := ctx.offset % 8

	// bytes covering the bit field. the raw read is never more than 64 bits
	span := min((shift+width+7)/8*8, 64)
	raw := ctx.parent.ReadBits(address, span, false)

	field := extend(uint64(raw)>>shift, width, false)

	if bits == 0 {
		bits = width
	}
	return extend(uint64(field), min(bits, 64), signed)
}

func (ctx *flagsContext) ResolveMember(id string) *Variable {
	return ctx.parent.ResolveMember(id)
}
