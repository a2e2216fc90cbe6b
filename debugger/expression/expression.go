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
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/logger"
)

// Result of an evaluation. The Mute and Cancel flags are set by the muteif()
// call anywhere in the expression.
type Result struct {
	Value uint32

	// the value should not be output
	Mute bool

	// the notification containing the expression should be suppressed
	Cancel bool
}

func (r Result) String() string {
	s := fmt.Sprintf("%#x (%d)", r.Value, r.Value)
	if r.Mute {
		s += " muted"
	}
	if r.Cancel {
		s += " cancelled"
	}
	return s
}

// Evaluator evaluates expressions against a Machine.
type Evaluator struct {
	mem Machine

	// destination of the put_byte(), put_word() and put_int() calls
	output io.Writer
}

// NewEvaluator is the preferred method of initialisation for the Evaluator
// type. The output argument receives the data from the put_*() calls and can
// be nil.
func NewEvaluator(mem Machine, output io.Writer) *Evaluator {
	return &Evaluator{
		mem:    mem,
		output: output,
	}
}

// Evaluate the expression text in the context of the bus. The bus decides
// which processor's registers are visible.
func (ev *Evaluator) Evaluate(b bus.Bus, text string) Result {
	var r Result
	r.Value = ev.evaluate(b, text, &r)
	return r
}

func (ev *Evaluator) evaluate(b bus.Bus, text string, r *Result) uint32 {
	cmd := Parse(text)
	if cmd.Name == "" {
		logger.Logf(logger.Allow, "expression", "empty expression: %q", text)
		return 0
	}

	switch c := cmd.Name[0]; {
	case c == '$':
		return parseHex(cmd.Name[1:])
	case c >= '0' && c <= '9':
		return parseDecimal(cmd.Name)
	}

	if v, ok := ev.register(b, cmd.Name); ok {
		return v
	}

	if ev.mem != nil {
		switch cmd.Name {
		case "vcounter":
			return ev.mem.VCounter()
		case "frame":
			return ev.mem.Frame()
		case "clock":
			return uint32(ev.mem.Clock())
		}
	}

	var left uint32
	if len(cmd.Args) >= 1 {
		left = ev.evaluate(b, cmd.Args[0], r)
	}

	switch cmd.Name {
	case "muteif":
		r.Cancel = left != 0
		r.Mute = true
		return 0
	case "byte":
		return uint32(bus.Peek(ev.mem, bus.CPUBus, left))
	case "word":
		lo := bus.Peek(ev.mem, bus.CPUBus, left)
		hi := bus.Peek(ev.mem, bus.CPUBus, left+1)
		return uint32(lo) | uint32(hi)<<8
	case "put_byte":
		ev.put(left, 1)
		return left
	case "put_word":
		ev.put(left, 2)
		return left
	case "put_int":
		ev.put(left, 4)
		return left
	}

	var right uint32
	if len(cmd.Args) >= 2 {
		right = ev.evaluate(b, cmd.Args[1], r)
	}

	switch cmd.Name {
	case "add":
		return left + right
	case "sub":
		return left - right
	case "and":
		return left & right
	case "or":
		return left | right
	case "equ":
		if left == right {
			return 1
		}
		return 0
	case "long":
		return left | right<<16
	}

	logger.Logf(logger.Allow, "expression", "unknown command: %s", cmd.Name)
	return 0
}

func (ev *Evaluator) register(b bus.Bus, name string) (uint32, bool) {
	if ev.mem == nil || (b != bus.CPUBus && b != bus.SA1Bus) {
		return 0, false
	}

	regs, ok := ev.mem.Registers(b)
	if !ok {
		return 0, false
	}

	switch name {
	case "A":
		if regs.P&flagM == flagM {
			return uint32(regs.A & 0xff), true
		}
		return uint32(regs.A), true
	case "X":
		if regs.P&flagX == flagX {
			return uint32(regs.X & 0xff), true
		}
		return uint32(regs.X), true
	case "Y":
		if regs.P&flagX == flagX {
			return uint32(regs.Y & 0xff), true
		}
		return uint32(regs.Y), true
	case "A16":
		return uint32(regs.A), true
	case "X16":
		return uint32(regs.X), true
	case "Y16":
		return uint32(regs.Y), true
	case "DB":
		return uint32(regs.DB), true
	case "D":
		return uint32(regs.D), true
	case "S":
		return uint32(regs.S), true
	case "PC":
		return regs.PC, true
	case "P":
		return uint32(regs.P), true
	}

	return 0, false
}

// put writes the low n bytes of v to the output, least significant byte
// first.
func (ev *Evaluator) put(v uint32, n int) {
	if ev.output == nil {
		return
	}
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	if _, err := ev.output.Write(b[:n]); err != nil {
		logger.Log(logger.Allow, "expression", err)
	}
}

// parseHex parses leading hexadecimal digits. Parsing stops at the first
// character that is not a hexadecimal digit.
func parseHex(s string) uint32 {
	var v uint32
	for _, c := range []byte(s) {
		switch {
		case c >= '0' && c <= '9':
			v = v<<4 | uint32(c-'0')
		case c >= 'a' && c <= 'f':
			v = v<<4 | uint32(c-'a'+10)
		case c >= 'A' && c <= 'F':
			v = v<<4 | uint32(c-'A'+10)
		default:
			return v
		}
	}
	return v
}

// parseDecimal parses leading decimal digits.
func parseDecimal(s string) uint32 {
	var v uint32
	for _, c := range []byte(s) {
		if c < '0' || c > '9' {
			return v
		}
		v = v*10 + uint32(c-'0')
	}
	return v
}
