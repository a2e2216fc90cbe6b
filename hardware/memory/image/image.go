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

package image

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jetsetilly/snesprobe/debugger/expression"
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/logger"
	"gopkg.in/yaml.v3"
)

// StateFile is the name of the optional state file in an image directory.
const StateFile = "state.yaml"

// Registers as they appear in the state file.
type Registers struct {
	A  uint16 `yaml:"a"`
	X  uint16 `yaml:"x"`
	Y  uint16 `yaml:"y"`
	D  uint16 `yaml:"d"`
	S  uint16 `yaml:"s"`
	DB uint8  `yaml:"db"`
	P  uint8  `yaml:"p"`
	PC uint32 `yaml:"pc"`
}

// State of the machine that is not memory.
type State struct {
	Peripherals []string             `yaml:"peripherals"`
	VCounter    uint32               `yaml:"vcounter"`
	Frame       uint32               `yaml:"frame"`
	Clock       uint64               `yaml:"clock"`
	Registers   map[string]Registers `yaml:"registers"`
}

// Image is a snapshot of every memory space.
type Image struct {
	data        map[bus.Bus][]uint8
	peripherals map[bus.Bus]bool
	registers   map[bus.Bus]expression.Registers
	state       State
}

// NewImage is the preferred method of initialisation for the Image type. All
// buses are empty.
func NewImage() *Image {
	return &Image{
		data:        make(map[bus.Bus][]uint8),
		peripherals: make(map[bus.Bus]bool),
		registers:   make(map[bus.Bus]expression.Registers),
	}
}

// Load the image stored in the directory. Missing bus files are not an error.
func Load(dir string) (*Image, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("image: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image: %s is not a directory", dir)
	}

	img := NewImage()

	for _, b := range bus.All() {
		d, err := os.ReadFile(filepath.Join(dir, fmt.Sprintf("%s.bin", b)))
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("image: %w", err)
		}
		img.SetData(b, d)
	}

	d, err := os.ReadFile(filepath.Join(dir, StateFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return img, nil
		}
		return nil, fmt.Errorf("image: %w", err)
	}

	var st State
	if err := yaml.Unmarshal(d, &st); err != nil {
		return nil, fmt.Errorf("image: %s: %w", StateFile, err)
	}

	if err := img.SetState(st); err != nil {
		return nil, err
	}

	return img, nil
}

// SetData replaces the contents of the bus. Loading data for a peripheral bus
// marks the peripheral as present.
func (img *Image) SetData(b bus.Bus, data []uint8) {
	img.data[b] = data
	if b.Peripheral() {
		img.peripherals[b] = true
	}
}

// SetState replaces the non-memory state of the image.
func (img *Image) SetState(st State) error {
	for _, p := range st.Peripherals {
		b, err := bus.Parse(p)
		if err != nil {
			return fmt.Errorf("image: peripherals: %w", err)
		}
		img.peripherals[b] = true
	}

	for n, r := range st.Registers {
		b, err := bus.Parse(n)
		if err != nil {
			return fmt.Errorf("image: registers: %w", err)
		}
		img.SetRegisters(b, expression.Registers{
			A: r.A, X: r.X, Y: r.Y, D: r.D, S: r.S,
			DB: r.DB, P: r.P, PC: r.PC,
		})
	}

	img.state = st
	return nil
}

// SetRegisters for the processor attached to the bus.
func (img *Image) SetRegisters(b bus.Bus, regs expression.Registers) {
	img.registers[b] = regs
}

// SetPeripheral marks the peripheral for the bus as present or absent.
func (img *Image) SetPeripheral(b bus.Bus, present bool) {
	img.peripherals[b] = present
}

// physical returns the index into the data for the bus.
func physical(b bus.Bus, address uint32) uint32 {
	if !b.Mirrored() {
		return address
	}

	// upper half of the address space is a mirror of the lower half
	address &= 0x7fffff

	// low WRAM
	if address>>16 < 0x40 && address&0xffff < 0x2000 {
		return 0x7e0000 | (address & 0xffff)
	}

	return address
}

// Read implements the bus.Memory interface.
func (img *Image) Read(b bus.Bus, address uint32) uint8 {
	d := img.data[b]
	if b == bus.APUBus && d == nil {
		d = img.data[bus.APURAM]
	}
	a := physical(b, address)
	if a >= uint32(len(d)) {
		return 0
	}
	return d[a]
}

// Write implements the bus.Memory interface.
func (img *Image) Write(b bus.Bus, address uint32, data uint8) {
	d := img.data[b]
	a := physical(b, address)
	if a >= uint32(len(d)) {
		logger.Logf(logger.Allow, "image", "write outside of %s data: %06x", b, address)
		return
	}
	d[a] = data
}

// IsMirror implements the bus.Memory interface.
func (img *Image) IsMirror(b bus.Bus, candidate uint32, actual uint32) bool {
	return physical(b, candidate) == physical(b, actual)
}

// HasPeripheral implements the bus.Memory interface.
func (img *Image) HasPeripheral(b bus.Bus) bool {
	return img.peripherals[b]
}

// Size implements the bus.Memory interface.
func (img *Image) Size(b bus.Bus) uint32 {
	return uint32(len(img.data[b]))
}

// Registers implements the expression.Machine interface.
func (img *Image) Registers(b bus.Bus) (expression.Registers, bool) {
	r, ok := img.registers[b]
	return r, ok
}

// VCounter implements the expression.Machine interface.
func (img *Image) VCounter() uint32 {
	return img.state.VCounter
}

// Frame implements the expression.Machine interface.
func (img *Image) Frame() uint32 {
	return img.state.Frame
}

// Clock implements the expression.Machine interface.
func (img *Image) Clock() uint64 {
	return img.state.Clock
}

// SetCounters changes the vcounter, frame and clock values.
func (img *Image) SetCounters(vcounter uint32, frame uint32, clock uint64) {
	img.state.VCounter = vcounter
	img.state.Frame = frame
	img.state.Clock = clock
}
