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

// Package schema decodes raw emulated memory into structured, named values.
//
// A Schema is a collection of named Type definitions. Types describe the
// layout of data in memory:
//
//	Number      integer of any width up to 64 bits, signed or unsigned
//	Enum        unsigned integer with a name for each known value
//	Flags       bit fields within a word
//	Struct      members at offsets from the base of the struct
//	Group       a Struct that shares the addressing of its parent
//	List        consecutive elements of the same type
//	LinkedList  a chain of structs joined by a "next" pointer
//	Pointer     an address stored in memory
//	Reference   the name of a primitive type or of another type in the schema
//
// Resolving a Type at an address produces a tree of Variable values. The tree
// is a snapshot and is never changed after it has been created. Resolution
// always reads from the CPU bus.
//
// Memory is untrusted. The length of a List and the number of nodes in a
// LinkedList are always limited by a maximum, so resolution always terminates
// even when the data is cyclic or corrupt.
//
// Problems during resolution, such as a reference to a type that doesn't
// exist, are logged and the resolution continues with a safe default.
package schema
