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

package bus

// Memory is the contract between the debugger and the emulation. The address
// arguments to Read() and Write() have been normalised by the time the
// functions are called.
type Memory interface {
	Read(b Bus, address uint32) uint8
	Write(b Bus, address uint32, data uint8)

	// IsMirror returns true if candidate and actual refer to the same
	// storage.
	IsMirror(b Bus, candidate uint32, actual uint32) bool

	// HasPeripheral returns true if the coprocessor or adaptor for the bus is
	// present in the current cartridge.
	HasPeripheral(b Bus) bool

	// Size returns the number of bytes in a cartridge backed bus. The return
	// value for other buses is not used.
	Size(b Bus) uint32
}

// Normalise masks the address to the valid range of the bus. The second
// return value is false if the access cannot be made, either because the
// peripheral is missing or because the address is outside the cartridge
// image.
func Normalise(mem Memory, b Bus, address uint32) (uint32, bool) {
	if mem == nil {
		return 0, false
	}

	if b.Peripheral() && !mem.HasPeripheral(b) {
		return 0, false
	}

	if b.Cartridge() && address >= mem.Size(b) {
		return 0, false
	}

	if !b.Valid() {
		return 0, false
	}

	return b.Mask(address), true
}

// Peek reads a byte from the bus. Returns zero if the access is invalid.
func Peek(mem Memory, b Bus, address uint32) uint8 {
	address, ok := Normalise(mem, b, address)
	if !ok {
		return 0
	}
	return mem.Read(b, address)
}

// Poke writes a byte to the bus. The write is dropped if the access is
// invalid.
//
// Writes to the APU bus are directed to APU RAM.
func Poke(mem Memory, b Bus, address uint32, data uint8) {
	address, ok := Normalise(mem, b, address)
	if !ok {
		return
	}
	if b == APUBus {
		b = APURAM
	}
	mem.Write(b, address, data)
}
