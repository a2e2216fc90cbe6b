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

// Package expression implements the small expression language used by
// breakpoint conditions and by the message templates of notify breakpoints.
//
// An expression is either a literal, an identifier or a call:
//
//	$8000              hexadecimal literal
//	128                decimal literal
//	A                  register (A X Y A16 X16 Y16 DB D S PC P)
//	vcounter           counter (vcounter frame clock)
//	add(word($10), 2)  call with nested arguments
//
// Registers are only available when the expression is evaluated for the CPU
// bus or the SA-1 bus. The A, X and Y registers are masked to eight bits when
// the corresponding processor flag is set.
//
// Calls with one argument:
//
//	muteif(cond)  mute the output and cancel the notification if cond is not zero
//	byte(addr)    read a byte from the CPU bus
//	word(addr)    read a little-endian word from the CPU bus
//	put_byte(v)   write the low byte of v to the debug output
//	put_word(v)   write the low two bytes of v to the debug output
//	put_int(v)    write the four bytes of v to the debug output
//
// Calls with two arguments:
//
//	add sub and or equ long
//
// Where long(lo, hi) packs the arguments as lo | hi<<16.
//
// Expressions are parsed every time they are evaluated. There is no
// intermediate representation. Unknown identifiers are logged and evaluate to
// zero.
package expression
