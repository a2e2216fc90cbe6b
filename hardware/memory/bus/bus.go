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

import (
	"errors"
	"fmt"
	"strings"
)

// Bus identifies one addressable memory space.
type Bus int

// List of valid Bus values.
const (
	CPUBus Bus = iota
	APUBus
	APURAM
	DSP
	VRAM
	OAM
	CGRAM
	CartROM
	CartRAM
	SA1Bus
	SFXBus
	SGBBus
	SGBROM
	SGBRAM

	numBuses
)

var names = [numBuses]string{
	"cpu", "apu", "aram", "dsp", "vram", "oam", "cgram",
	"rom", "sram", "sa1", "sfx", "sgb", "sgbrom", "sgbram",
}

// Valid returns true if the value is one of the defined buses.
func (b Bus) Valid() bool {
	return b >= 0 && b < numBuses
}

func (b Bus) String() string {
	if !b.Valid() {
		return fmt.Sprintf("bus(%d)", int(b))
	}
	return names[b]
}

// ErrUnknownBus is returned by Parse() when the name does not match any bus.
var ErrUnknownBus = errors.New("unknown bus")

// Parse returns the Bus for the name. Case insensitive. The name is the same
// as returned by the String() function.
func Parse(name string) (Bus, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for b, s := range names {
		if s == n {
			return Bus(b), nil
		}
	}
	return CPUBus, fmt.Errorf("%w: %s", ErrUnknownBus, name)
}

// All returns every bus in order.
func All() []Bus {
	l := make([]Bus, numBuses)
	for i := range l {
		l[i] = Bus(i)
	}
	return l
}

// Breakable returns true if breakpoints can be set on the bus.
func (b Bus) Breakable() bool {
	switch b {
	case CPUBus, APURAM, DSP, VRAM, OAM, CGRAM, SA1Bus, SFXBus, SGBBus:
		return true
	}
	return false
}

// Mirrored returns true if address comparisons on the bus should consult the
// mirroring predicate of the memory. Other buses compare addresses exactly.
func (b Bus) Mirrored() bool {
	return b == CPUBus || b == SA1Bus || b == SFXBus
}

// Peripheral returns true if the bus only exists when the cartridge contains
// the corresponding coprocessor or adaptor.
func (b Bus) Peripheral() bool {
	switch b {
	case SA1Bus, SFXBus, SGBBus, SGBROM, SGBRAM:
		return true
	}
	return false
}

// Cartridge returns true if the bus is backed by the cartridge image and is
// therefore bounded by the size of the image.
func (b Bus) Cartridge() bool {
	switch b {
	case CartROM, CartRAM, SGBROM, SGBRAM:
		return true
	}
	return false
}

// Mask limits the address to the valid range of the bus. The high table of
// OAM is aliased through bit 0x200.
func (b Bus) Mask(address uint32) uint32 {
	switch b {
	case CPUBus, SA1Bus, SFXBus:
		return address & 0xffffff
	case APUBus, APURAM, SGBBus:
		return address & 0xffff
	case DSP:
		return address & 0x7f
	case VRAM:
		return address & 0x3ffff
	case OAM:
		if address&0x200 == 0x200 {
			return 0x200 + (address & 0x1f)
		}
		return address & 0x1ff
	case CGRAM:
		return address & 0x1ff
	case CartROM, CartRAM, SGBROM, SGBRAM:
		return address & 0xffffff
	}
	return 0
}
