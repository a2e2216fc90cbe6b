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

// Package bus enumerates the memory spaces of the emulated console and
// normalises addresses into the valid range of each space.
//
// Access to memory is through the Memory interface, which is implemented by
// the emulation (or by the image package for offline inspection). Users of the
// package should not call the Memory interface directly but should use the
// Peek() and Poke() functions. These functions apply the address mask of the
// bus and check that the bus is available before delegating to the Memory
// implementation.
//
// Invalid accesses never fail. A read returns zero and a write is dropped.
package bus
