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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/logger"
)

// Hit records a breakpoint stopping emulation during a Replay().
type Hit struct {
	// line number in the trace, counting from one
	Line int

	// index of the breakpoint
	Breakpoint int

	Bus     bus.Bus
	Mode    Mode
	Address uint32
	Data    uint8
}

func (h Hit) String() string {
	return fmt.Sprintf("line %d: breakpoint #%d on %s %s %06x (data %02x)", h.Line, h.Breakpoint, h.Bus, h.Mode, h.Address, h.Data)
}

// Replay passes every access in the trace to the Test() function. The trace is
// a text file of one access per line:
//
//	bus mode address data
//
// Where address and data are hexadecimal. Blank lines and lines beginning with
// # are ignored. Malformed lines are logged and skipped.
//
// Emulation is assumed to be resumed immediately after a breakpoint hit, so
// replay continues until the end of the trace. The onHit function is called
// for every hit and can be nil. Returns the list of hits.
func (dbg *Debugger) Replay(r io.Reader, onHit func(Hit)) ([]Hit, error) {
	var hits []Hit

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++

		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		b, mode, address, data, err := parseAccess(s)
		if err != nil {
			logger.Logf(logger.Allow, "breakpoint", "trace line %d: %v", line, err)
			continue
		}

		if dbg.Test(b, mode, address, data) {
			idx, _ := dbg.BreakpointHit()
			h := Hit{Line: line, Breakpoint: idx, Bus: b, Mode: mode, Address: address, Data: data}
			hits = append(hits, h)
			if onHit != nil {
				onHit(h)
			}
			dbg.ResetBreakEvent()
		}
	}

	if err := scanner.Err(); err != nil {
		return hits, fmt.Errorf("trace: %w", err)
	}

	return hits, nil
}

func parseAccess(s string) (bus.Bus, Mode, uint32, uint8, error) {
	f := strings.Fields(s)
	if len(f) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected four fields, found %d", len(f))
	}

	b, err := bus.Parse(f[0])
	if err != nil {
		return 0, 0, 0, 0, err
	}

	mode, err := ParseMode(f[1])
	if err != nil {
		return 0, 0, 0, 0, err
	}

	address, err := strconv.ParseUint(strings.TrimPrefix(f[2], "$"), 16, 32)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("address: %w", err)
	}

	data, err := strconv.ParseUint(strings.TrimPrefix(f[3], "$"), 16, 8)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("data: %w", err)
	}

	return b, mode, uint32(address), uint8(data), nil
}
