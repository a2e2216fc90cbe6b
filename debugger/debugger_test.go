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

package debugger_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/snesprobe/debugger"
	"github.com/jetsetilly/snesprobe/debugger/expression"
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/hardware/memory/image"
	"github.com/jetsetilly/snesprobe/notifications"
	"github.com/jetsetilly/snesprobe/test"
)

// scheduler records the notices sent by the debugger.
type scheduler struct {
	notices []notifications.Notice
}

func (s *scheduler) Notify(notice notifications.Notice) error {
	s.notices = append(s.notices, notice)
	return nil
}

func (s *scheduler) count(notice notifications.Notice) int {
	var n int
	for _, c := range s.notices {
		if c == notice {
			n++
		}
	}
	return n
}

func newMachine() *image.Image {
	img := image.NewImage()
	img.SetData(bus.CPUBus, make([]uint8, 0x800000))
	img.SetData(bus.VRAM, make([]uint8, 0x40000))
	img.SetRegisters(bus.CPUBus, expression.Registers{A: 0x1234, P: 0x20})
	return img
}

func newDebugger(t *testing.T) (*debugger.Debugger, *scheduler, *test.CompareWriter) {
	t.Helper()
	sched := &scheduler{}
	out := &test.CompareWriter{}
	dbg := debugger.NewDebugger(newMachine(), sched, out, filepath.Join(t.TempDir(), "debug.out"))
	t.Cleanup(func() {
		dbg.Close()
	})
	return dbg, sched, out
}

func TestDataFilter(t *testing.T) {
	var f debugger.DataFilter
	for d := range 256 {
		test.ExpectSuccess(t, f.Accepts(uint8(d)), d)
	}

	f = debugger.DataFilter{Active: true, Compare: debugger.Less, Value: 5}
	test.ExpectSuccess(t, f.Accepts(4))
	test.ExpectFailure(t, f.Accepts(5))
	test.ExpectFailure(t, f.Accepts(6))

	cases := []struct {
		cmp      debugger.Compare
		data     uint8
		expected bool
	}{
		{debugger.Equal, 5, true},
		{debugger.Equal, 6, false},
		{debugger.NotEqual, 5, false},
		{debugger.NotEqual, 6, true},
		{debugger.LessEqual, 5, true},
		{debugger.LessEqual, 6, false},
		{debugger.Greater, 5, false},
		{debugger.Greater, 6, true},
		{debugger.GreaterEqual, 4, false},
		{debugger.GreaterEqual, 5, true},
	}
	for _, c := range cases {
		f = debugger.DataFilter{Active: true, Compare: c.cmp, Value: 5}
		test.ExpectEquality(t, f.Accepts(c.data), c.expected, c.cmp, c.data)
	}
}

func TestSimpleBreakpoint(t *testing.T) {
	dbg, sched, _ := newDebugger(t)

	idx, err := dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, idx, 0)

	// wrong mode, bus or address
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x008000, 0))
	test.ExpectFailure(t, dbg.Test(bus.SA1Bus, debugger.ModeExec, 0x008000, 0))
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x008001, 0))
	_, ok := dbg.BreakpointHit()
	test.ExpectFailure(t, ok)

	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x008000, 0))
	idx, ok = dbg.BreakpointHit()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 0)
	test.ExpectEquality(t, sched.count(notifications.NotifyBreakpointHit), 1)

	bp, err := dbg.Get(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, bp.Hits, 1)

	dbg.ResetBreakEvent()
	_, ok = dbg.BreakpointHit()
	test.ExpectFailure(t, ok)
}

func TestMirroring(t *testing.T) {
	dbg, _, _ := newDebugger(t)

	_, err := dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec})
	test.DemandSuccess(t, err)

	// bank $80 mirrors bank $00
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x808000, 0))

	// bank $01 does not
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x018000, 0))

	// buses other than CPU, SA-1 and SuperFX do not use mirroring
	dbg.Clear()
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.VRAM, Address: 0x000100, Mode: debugger.ModeWrite})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dbg.Test(bus.VRAM, debugger.ModeWrite, 0x000100, 0))
	test.ExpectFailure(t, dbg.Test(bus.VRAM, debugger.ModeWrite, 0x010100, 0))

	// accesses are masked to the width of the bus before they are compared
	test.ExpectSuccess(t, dbg.Test(bus.VRAM, debugger.ModeWrite, 0x040100, 0))

	dbg.Clear()
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.OAM, Address: 0x00021f, Mode: debugger.ModeRead})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dbg.Test(bus.OAM, debugger.ModeRead, 0x00023f, 0))
	test.ExpectSuccess(t, dbg.Test(bus.OAM, debugger.ModeRead, 0x0003ff, 0))
	test.ExpectFailure(t, dbg.Test(bus.OAM, debugger.ModeRead, 0x00001f, 0))

	// the SA-1 bus only exists if the cartridge has the coprocessor
	dbg.Clear()
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.SA1Bus, Address: 0x008000, Mode: debugger.ModeExec})
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dbg.Test(bus.SA1Bus, debugger.ModeExec, 0x008000, 0))
}

func TestRange(t *testing.T) {
	dbg, _, _ := newDebugger(t)

	_, err := dbg.Add(debugger.Breakpoint{
		Bus:        bus.CPUBus,
		Address:    0x7e0010,
		AddressEnd: 0x7f0010,
		Mode:       debugger.ModeRead | debugger.ModeWrite,
	})
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x7e0010, 0))
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeWrite, 0x7f0010, 0))
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x7e0010, 0))

	// every address between the start and end of the range matches
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x7e0011, 0))
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x7effff, 0))
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x7f0011, 0))
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x7e000f, 0))

	// low WRAM is a mirror of bank $7e
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeRead, 0x000010, 0))
}

func TestDataBreakpoint(t *testing.T) {
	dbg, _, _ := newDebugger(t)

	_, err := dbg.Add(debugger.Breakpoint{
		Bus:     bus.CPUBus,
		Address: 0x7e0010,
		Mode:    debugger.ModeWrite,
		Data:    debugger.DataFilter{Active: true, Compare: debugger.Less, Value: 5},
	})
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeWrite, 0x7e0010, 4))
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeWrite, 0x7e0010, 5))
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeWrite, 0x7e0010, 6))
}

func TestCondition(t *testing.T) {
	dbg, _, _ := newDebugger(t)

	_, err := dbg.Add(debugger.Breakpoint{
		Bus:       bus.CPUBus,
		Address:   0x008000,
		Mode:      debugger.ModeExec,
		Condition: "equ(A, $34)",
	})
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x008000, 0))

	dbg.Clear()
	_, err = dbg.Add(debugger.Breakpoint{
		Bus:       bus.CPUBus,
		Address:   0x008000,
		Mode:      debugger.ModeExec,
		Condition: "equ(A16, $34)",
	})
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x008000, 0))
}

func TestNotify(t *testing.T) {
	dbg, sched, out := newDebugger(t)

	_, err := dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec, NotifyOnly: true})
	test.DemandSuccess(t, err)
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec, NotifyOnly: true, Message: "A is {A16}!"})
	test.DemandSuccess(t, err)
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec})
	test.DemandSuccess(t, err)

	// notify breakpoints do not stop testing of later breakpoints
	test.ExpectSuccess(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x808000, 0))
	idx, ok := dbg.BreakpointHit()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, idx, 2)
	test.ExpectEquality(t, out.String(), "Breakpoint hit at 808000\nA is 1234!\n")
	test.ExpectEquality(t, sched.count(notifications.NotifyBreakpointMessage), 2)
	test.ExpectEquality(t, sched.count(notifications.NotifyBreakpointHit), 1)

	// hit counts are not incremented for notify breakpoints
	bp, err := dbg.Get(1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, bp.Hits, 0)
}

func TestNotifyTemplate(t *testing.T) {
	cases := []struct {
		template string
		expected string
	}{
		{"plain text", "plain text\n"},
		{"{A16}", "1234\n"},
		{"x{A16}y", "x1234y\n"},
		{"{A16}{A}", "123434\n"},
		{"value is {add($fe, 1)} hex", "value is ff hex\n"},
		{"{muteif(0)}shown", "shown\n"},
		{"before {muteif(1)} after", ""},
		{"{muteif(equ(A16, $1234))}{A16}", ""},
		{"a}b", "a}b\n"},
		{"a{b", "a{b\n"},
		{"x", "x\n"},
	}

	for _, c := range cases {
		dbg, _, out := newDebugger(t)
		_, err := dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec, NotifyOnly: true, Message: c.template})
		test.DemandSuccess(t, err)
		test.ExpectFailure(t, dbg.Test(bus.CPUBus, debugger.ModeExec, 0x008000, 0))
		test.ExpectEquality(t, out.String(), c.expected, c.template)
	}
}

func TestCollection(t *testing.T) {
	dbg, _, _ := newDebugger(t)

	w := &strings.Builder{}
	dbg.List(w)
	test.ExpectEquality(t, w.String(), "no breakpoints\n")

	_, err := dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec})
	test.DemandSuccess(t, err)
	_, err = dbg.Add(debugger.Breakpoint{
		Bus: bus.VRAM, Address: 0x100, AddressEnd: 0x1ff, Mode: debugger.ModeWrite,
		Data: debugger.DataFilter{Active: true, Compare: debugger.GreaterEqual, Value: 0x80},
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dbg.Len(), 2)

	w.Reset()
	dbg.List(w)
	test.ExpectEquality(t, w.String(), " 0: cpu 008000 exec hits=0\n 1: vram 000100-0001ff write data>=80 hits=0\n")

	test.ExpectSuccess(t, dbg.Drop(0))
	test.ExpectEquality(t, dbg.Len(), 1)
	bp, err := dbg.Get(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, bp.Bus, bus.VRAM)

	err = dbg.Drop(5)
	test.ExpectSuccess(t, errors.Is(err, debugger.ErrNoBreakpoint))
	_, err = dbg.Get(-1)
	test.ExpectSuccess(t, errors.Is(err, debugger.ErrNoBreakpoint))

	// invalid breakpoints are refused
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.CartROM, Mode: debugger.ModeRead})
	test.ExpectSuccess(t, errors.Is(err, debugger.ErrDefinition))
	_, err = dbg.Add(debugger.Breakpoint{Bus: bus.CPUBus})
	test.ExpectSuccess(t, errors.Is(err, debugger.ErrDefinition))

	dbg.Clear()
	test.ExpectEquality(t, dbg.Len(), 0)
}
