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

package debugger

import (
	"errors"
	"fmt"
	"io"

	"github.com/jetsetilly/snesprobe/debugger/expression"
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/logger"
	"github.com/jetsetilly/snesprobe/notifications"
)

// Sentinel errors returned by the debugger package.
var (
	ErrNoBreakpoint = errors.New("breakpoint is not defined")
	ErrDefinition   = errors.New("invalid breakpoint definition")
)

// Debugger is the breakpoint engine. It is not safe for concurrent use. All
// calls should be made from the same goroutine as the emulation.
type Debugger struct {
	mem   expression.Machine
	sched notifications.Notify
	eval  *expression.Evaluator

	// output of notify breakpoints
	output io.Writer

	// destination of the put_*() expression calls
	debugOutput *DebugOutput

	// breakpoints are tested in order
	breaks []Breakpoint

	// index of the most recently hit breakpoint. only valid if breakEvent is
	// true
	hit        int
	breakEvent bool
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type.
//
// The output argument receives the messages of notify breakpoints. The
// debugOutputPath is the file written to by the put_byte(), put_word() and
// put_int() calls in expressions. The file is not created until the first
// write.
//
// The scheduler and output arguments can be nil.
func NewDebugger(mem expression.Machine, sched notifications.Notify, output io.Writer, debugOutputPath string) *Debugger {
	if sched == nil {
		sched = notifications.Discard
	}
	if output == nil {
		output = io.Discard
	}

	dbg := &Debugger{
		mem:         mem,
		sched:       sched,
		output:      output,
		debugOutput: NewDebugOutput(debugOutputPath, sched),
	}
	dbg.eval = expression.NewEvaluator(mem, dbg.debugOutput)

	return dbg
}

// Close releases the resources held by the debugger. Should be called exactly
// once when the debugger is no longer required.
func (dbg *Debugger) Close() error {
	return dbg.debugOutput.Close()
}

// Evaluate the expression text in the context of the bus.
func (dbg *Debugger) Evaluate(b bus.Bus, text string) expression.Result {
	return dbg.eval.Evaluate(b, text)
}

// Add a breakpoint to the end of the list. Returns the index of the new
// breakpoint.
func (dbg *Debugger) Add(bp Breakpoint) (int, error) {
	if err := bp.validate(); err != nil {
		return -1, err
	}
	dbg.breaks = append(dbg.breaks, bp)
	return len(dbg.breaks) - 1, nil
}

// Drop the breakpoint at the index. Breakpoints after the index move down by
// one.
func (dbg *Debugger) Drop(idx int) error {
	if idx < 0 || idx >= len(dbg.breaks) {
		return fmt.Errorf("%w: #%d", ErrNoBreakpoint, idx)
	}
	dbg.breaks = append(dbg.breaks[:idx], dbg.breaks[idx+1:]...)

	// the hit index is no longer meaningful
	dbg.ResetBreakEvent()

	return nil
}

// Clear all breakpoints.
func (dbg *Debugger) Clear() {
	dbg.breaks = dbg.breaks[:0]
	dbg.ResetBreakEvent()
}

// Len returns the number of breakpoints.
func (dbg *Debugger) Len() int {
	return len(dbg.breaks)
}

// Get returns a copy of the breakpoint at the index.
func (dbg *Debugger) Get(idx int) (Breakpoint, error) {
	if idx < 0 || idx >= len(dbg.breaks) {
		return Breakpoint{}, fmt.Errorf("%w: #%d", ErrNoBreakpoint, idx)
	}
	return dbg.breaks[idx], nil
}

// List writes a summary of every breakpoint to the io.Writer.
func (dbg *Debugger) List(w io.Writer) {
	if len(dbg.breaks) == 0 {
		io.WriteString(w, "no breakpoints\n")
		return
	}
	for i, bp := range dbg.breaks {
		io.WriteString(w, fmt.Sprintf("% 2d: %s\n", i, bp))
	}
}

// BreakpointHit returns the index of the breakpoint that most recently
// stopped emulation. The second return value is false if no breakpoint has
// been hit since the last call to ResetBreakEvent().
func (dbg *Debugger) BreakpointHit() (int, bool) {
	return dbg.hit, dbg.breakEvent
}

// ResetBreakEvent forgets the most recent breakpoint hit.
func (dbg *Debugger) ResetBreakEvent() {
	dbg.hit = 0
	dbg.breakEvent = false
}

// Test the memory access against every breakpoint, in order. Returns true if a
// breakpoint has matched and emulation should be suspended.
//
// Notify breakpoints print their message and testing continues with the next
// breakpoint. The first matching breakpoint that is not a notify breakpoint
// ends the test.
func (dbg *Debugger) Test(b bus.Bus, mode Mode, address uint32, data uint8) bool {
	address, ok := dbg.normalise(b, address)
	if !ok {
		return false
	}

	for i := range dbg.breaks {
		bp := &dbg.breaks[i]

		if bp.Mode&mode == 0 || bp.Bus != b || !bp.Data.Accepts(data) {
			continue
		}

		if !dbg.inRange(bp, b, address) {
			continue
		}

		if bp.Condition != "" {
			r := dbg.eval.Evaluate(b, bp.Condition)
			if r.Cancel || r.Value == 0 {
				continue
			}
		}

		if bp.NotifyOnly {
			dbg.notify(b, address, bp.Message)
			continue
		}

		bp.Hits++
		dbg.hit = i
		dbg.breakEvent = true

		if err := dbg.sched.Notify(notifications.NotifyBreakpointHit); err != nil {
			logger.Log(logger.Allow, "breakpoint", err)
		}

		return true
	}

	return false
}

// normalise the address of an access in the same way as the memory sees it.
// An access to a missing peripheral never matches a breakpoint.
func (dbg *Debugger) normalise(b bus.Bus, address uint32) (uint32, bool) {
	if dbg.mem == nil {
		return b.Mask(address), b.Valid()
	}
	return bus.Normalise(dbg.mem, b, address)
}

// inRange checks the address against the address range of the breakpoint.
// Each bank of the range is considered in turn. For mirrored buses the
// address matches if any candidate in the range is a mirror of the address.
func (dbg *Debugger) inRange(bp *Breakpoint, b bus.Bus, address uint32) bool {
	start := uint64(bp.Address&0xff0000) | uint64(address&0xffff)
	if start < uint64(bp.Address) {
		start += 0x10000
	}

	end := uint64(bp.Address)
	if bp.AddressEnd > bp.Address {
		end = uint64(bp.AddressEnd)
	}

	mirrored := b.Mirrored() && dbg.mem != nil

	for ; start <= end; start += 0x10000 {
		if mirrored {
			if dbg.mem.IsMirror(b, uint32(start), address) {
				return true
			}
		} else if uint32(start) == address {
			return true
		}
	}

	return false
}
