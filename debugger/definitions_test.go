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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jetsetilly/snesprobe/debugger"
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/notifications"
	"github.com/jetsetilly/snesprobe/test"
)

const definitionsFile = `
breakpoints:
  - address: 0x008000
  - bus: vram
    address: 0x0100
    end: 0x01ff
    mode: [write, r]
    compare: ">="
    data: 0x80
  - bus: cpu
    address: 0x7e0010
    mode: [write]
    notify: true
    message: "frame {frame}"
    condition: "equ(DB, $7e)"
`

func TestLoadDefinitions(t *testing.T) {
	dbg, _, _ := newDebugger(t)

	n, err := dbg.LoadDefinitions(strings.NewReader(definitionsFile))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, n, 3)
	test.DemandEquality(t, dbg.Len(), 3)

	expected := []debugger.Breakpoint{
		{Bus: bus.CPUBus, Address: 0x008000, Mode: debugger.ModeExec},
		{
			Bus: bus.VRAM, Address: 0x0100, AddressEnd: 0x01ff,
			Mode: debugger.ModeWrite | debugger.ModeRead,
			Data: debugger.DataFilter{Active: true, Compare: debugger.GreaterEqual, Value: 0x80},
		},
		{
			Bus: bus.CPUBus, Address: 0x7e0010, Mode: debugger.ModeWrite,
			NotifyOnly: true, Message: "frame {frame}", Condition: "equ(DB, $7e)",
		},
	}

	for i, e := range expected {
		bp, err := dbg.Get(i)
		test.DemandSuccess(t, err)
		if d := cmp.Diff(e, bp); d != "" {
			t.Errorf("breakpoint %d: %s", i, d)
		}
	}
}

func TestLoadDefinitionsErrors(t *testing.T) {
	cases := []string{
		"breakpoints:\n  - bus: zram\n",
		"breakpoints:\n  - mode: [jump]\n",
		"breakpoints:\n  - compare: \"<\"\n",
		"breakpoints:\n  - compare: \"~\"\n    data: 1\n",
		"breakpoints:\n  - bus: rom\n",
		"breakpoints:\n  - colour: red\n",
		"breakpoints: [\n",
	}

	for _, c := range cases {
		dbg, _, _ := newDebugger(t)

		// a valid breakpoint before the invalid one must not be added
		_, err := dbg.LoadDefinitions(strings.NewReader(c + "  - address: 0x8000\n"))
		test.ExpectSuccess(t, errors.Is(err, debugger.ErrDefinition), c)
		test.ExpectEquality(t, dbg.Len(), 0, c)
	}

	// an empty file is not an error
	dbg, _, _ := newDebugger(t)
	n, err := dbg.LoadDefinitions(strings.NewReader(""))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)
}

func TestReplay(t *testing.T) {
	dbg, _, out := newDebugger(t)

	n, err := dbg.LoadDefinitions(strings.NewReader(`
breakpoints:
  - address: 0x008000
  - bus: vram
    address: 0x0100
    mode: [write]
    notify: true
    message: "vram {byte($7e0000)}"
`))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, n, 2)

	trace := `# bus mode address data
cpu exec 008000 ea
cpu exec 008001 ea

vram write 0100 ff
cpu exec 808000 ea
this line is malformed
cpu exec $018000 ea
`
	var seen int
	hits, err := dbg.Replay(strings.NewReader(trace), func(debugger.Hit) {
		seen++
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, seen, 2)
	test.DemandEquality(t, len(hits), 2)

	if d := cmp.Diff(debugger.Hit{Line: 2, Breakpoint: 0, Bus: bus.CPUBus, Mode: debugger.ModeExec, Address: 0x008000, Data: 0xea}, hits[0]); d != "" {
		t.Error(d)
	}
	test.ExpectEquality(t, hits[1].Line, 6)
	test.ExpectEquality(t, hits[1].Address, 0x808000)
	test.ExpectEquality(t, hits[1].String(), "line 6: breakpoint #0 on cpu exec 808000 (data ea)")

	test.ExpectEquality(t, out.String(), "vram 0\n")

	bp, err := dbg.Get(0)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, bp.Hits, 2)

	_, ok := dbg.BreakpointHit()
	test.ExpectFailure(t, ok)
}

func TestDebugOutput(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "debug.out")
	sched := &scheduler{}
	dbg := debugger.NewDebugger(newMachine(), sched, nil, fn)

	// the file is not created until the first write
	_, err := os.Stat(fn)
	test.ExpectFailure(t, err)

	r := dbg.Evaluate(bus.CPUBus, "put_word($1234)")
	test.ExpectEquality(t, r.Value, 0x1234)
	r = dbg.Evaluate(bus.CPUBus, "put_byte(add(1, 1))")
	test.ExpectEquality(t, r.Value, 2)
	test.ExpectEquality(t, sched.count(notifications.NotifyDebugOutputOpened), 1)

	test.DemandSuccess(t, dbg.Close())
	test.ExpectSuccess(t, dbg.Close())

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	if d := cmp.Diff([]byte{0x34, 0x12, 0x02}, data); d != "" {
		t.Error(d)
	}
}

func TestDebugOutputFailure(t *testing.T) {
	// a directory that doesn't exist
	d := debugger.NewDebugOutput(filepath.Join(t.TempDir(), "missing", "debug.out"), nil)

	n, err := d.Write([]byte{1, 2, 3})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 3)
	test.ExpectFailure(t, d.Opened())

	test.ExpectSuccess(t, d.Close())
	_, err = d.Write([]byte{1})
	test.ExpectFailure(t, err)
}
