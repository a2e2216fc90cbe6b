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

package bus_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/test"
)

type access struct {
	b       bus.Bus
	address uint32
	data    uint8
}

// mockMemory records the normalised addresses of every access.
type mockMemory struct {
	peripherals bool
	size        uint32
	reads       []access
	writes      []access
}

func (m *mockMemory) Read(b bus.Bus, address uint32) uint8 {
	m.reads = append(m.reads, access{b: b, address: address})
	return 0xaa
}

func (m *mockMemory) Write(b bus.Bus, address uint32, data uint8) {
	m.writes = append(m.writes, access{b: b, address: address, data: data})
}

func (m *mockMemory) IsMirror(b bus.Bus, candidate uint32, actual uint32) bool {
	return candidate == actual
}

func (m *mockMemory) HasPeripheral(b bus.Bus) bool {
	return m.peripherals
}

func (m *mockMemory) Size(b bus.Bus) uint32 {
	return m.size
}

func TestNormalise(t *testing.T) {
	mem := &mockMemory{peripherals: true, size: 0x10000}

	cases := []struct {
		b        bus.Bus
		address  uint32
		expected uint32
	}{
		{bus.CPUBus, 0x12345678, 0x345678},
		{bus.SA1Bus, 0xff808000, 0x808000},
		{bus.APURAM, 0x123456, 0x3456},
		{bus.APUBus, 0x1ffff, 0xffff},
		{bus.DSP, 0xff, 0x7f},
		{bus.VRAM, 0xfffff, 0x3ffff},
		{bus.OAM, 0x1ff, 0x1ff},
		{bus.OAM, 0x200, 0x200},
		{bus.OAM, 0x23f, 0x21f},
		{bus.OAM, 0x3ff, 0x21f},
		{bus.CGRAM, 0x2ff, 0xff},
		{bus.SGBBus, 0x12345, 0x2345},
		{bus.CartROM, 0xffff, 0xffff},
	}

	for _, c := range cases {
		a, ok := bus.Normalise(mem, c.b, c.address)
		test.ExpectSuccess(t, ok, c.b)
		test.ExpectEquality(t, a, c.expected, c.b)
	}
}

func TestMask(t *testing.T) {
	mem := &mockMemory{peripherals: true, size: 0x1000000}
	for _, b := range bus.All() {
		a, ok := bus.Normalise(mem, b, 0xfedcba)
		test.ExpectSuccess(t, ok, b)
		test.ExpectEquality(t, b.Mask(0xfedcba), a, b)
	}

	test.ExpectEquality(t, bus.OAM.Mask(0x3ff), 0x21f)

	invalid := bus.Bus(-1)
	test.ExpectFailure(t, invalid.Valid())
	test.ExpectEquality(t, invalid.Mask(0x8000), 0)
	_, ok := bus.Normalise(mem, invalid, 0x8000)
	test.ExpectFailure(t, ok)
}

func TestCartridgeBounds(t *testing.T) {
	mem := &mockMemory{peripherals: true, size: 0x8000}

	test.ExpectEquality(t, bus.Peek(mem, bus.CartROM, 0x7fff), 0xaa)
	test.ExpectEquality(t, bus.Peek(mem, bus.CartROM, 0x8000), 0)
	test.ExpectEquality(t, len(mem.reads), 1)

	bus.Poke(mem, bus.CartRAM, 0x9000, 0x12)
	test.ExpectEquality(t, len(mem.writes), 0)
}

func TestMissingPeripheral(t *testing.T) {
	mem := &mockMemory{size: 0x8000}

	for _, b := range []bus.Bus{bus.SA1Bus, bus.SFXBus, bus.SGBBus, bus.SGBROM, bus.SGBRAM} {
		test.ExpectEquality(t, bus.Peek(mem, b, 0), 0, b)
		bus.Poke(mem, b, 0, 0x12)
	}
	test.ExpectEquality(t, len(mem.reads), 0)
	test.ExpectEquality(t, len(mem.writes), 0)

	// the main buses do not depend on the peripheral
	test.ExpectEquality(t, bus.Peek(mem, bus.CPUBus, 0), 0xaa)
}

func TestAPUBusWrite(t *testing.T) {
	mem := &mockMemory{}
	bus.Poke(mem, bus.APUBus, 0x1f0, 0x55)
	test.DemandEquality(t, len(mem.writes), 1)
	test.ExpectEquality(t, mem.writes[0], access{b: bus.APURAM, address: 0x1f0, data: 0x55})
}

func TestNilMemory(t *testing.T) {
	test.ExpectEquality(t, bus.Peek(nil, bus.CPUBus, 0), 0)
	bus.Poke(nil, bus.CPUBus, 0, 0)
}

func TestParse(t *testing.T) {
	for _, b := range bus.All() {
		p, err := bus.Parse(b.String())
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p, b)
	}

	b, err := bus.Parse(" VRAM ")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, bus.VRAM)

	_, err = bus.Parse("zram")
	test.ExpectSuccess(t, errors.Is(err, bus.ErrUnknownBus))
}

func TestBreakable(t *testing.T) {
	test.ExpectSuccess(t, bus.CPUBus.Breakable())
	test.ExpectSuccess(t, bus.SGBBus.Breakable())
	test.ExpectFailure(t, bus.CartROM.Breakable())
	test.ExpectFailure(t, bus.APUBus.Breakable())

	test.ExpectSuccess(t, bus.SFXBus.Mirrored())
	test.ExpectFailure(t, bus.VRAM.Mirrored())
}
