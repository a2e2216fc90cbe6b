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

// Package image is an in-memory snapshot of the console's memory spaces. It
// implements the bus.Memory interface and the expression.Machine interface
// and so can stand in for a running emulation.
//
// An image can be loaded from a directory containing one file per bus, named
// after the bus with a .bin extension (eg. cpu.bin, vram.bin). An optional
// state.yaml file in the same directory records the processor registers, the
// counters and the peripherals present in the cartridge:
//
//	peripherals: [sa1]
//	vcounter: 225
//	frame: 1024
//	clock: 21477272
//	registers:
//	  cpu:
//	    a: 0x1234
//	    p: 0x30
//	    pc: 0x008000
//
// The CPU, SA-1 and SuperFX buses mirror the upper half of the address space
// onto the lower half. The first 8KB of banks $00 to $3f is a mirror of
// WRAM in bank $7e.
package image
