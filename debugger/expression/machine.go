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

package expression

import (
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
)

// Registers of a 65816 type processor.
type Registers struct {
	A  uint16
	X  uint16
	Y  uint16
	D  uint16
	S  uint16
	DB uint8
	P  uint8
	PC uint32
}

// processor status flags that affect the width of the A, X and Y registers.
const (
	flagM = 0x20
	flagX = 0x10
)

// Machine is the part of the emulation needed to evaluate an expression.
type Machine interface {
	bus.Memory

	// Registers returns the registers of the processor attached to the bus.
	// The second return value is false if the bus has no processor.
	Registers(b bus.Bus) (Registers, bool)

	VCounter() uint32
	Frame() uint32
	Clock() uint64
}
