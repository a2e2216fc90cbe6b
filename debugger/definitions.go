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
	"fmt"
	"io"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"gopkg.in/yaml.v3"
)

// Definition is a breakpoint as it appears in a definitions file. The file is
// a YAML document with a single "breakpoints" list:
//
//	breakpoints:
//	  - bus: cpu
//	    address: 0x008000
//	    mode: [exec]
//	  - bus: cpu
//	    address: 0x7e0010
//	    end: 0x7e001f
//	    mode: [write]
//	    compare: "<"
//	    data: 5
//	    notify: true
//	    message: "low value {byte($7e0010)} at frame {frame}"
//	    condition: "equ(DB, $7e)"
//
// The bus defaults to the CPU bus and the mode defaults to exec.
type Definition struct {
	Bus       string   `yaml:"bus"`
	Address   uint32   `yaml:"address"`
	End       uint32   `yaml:"end"`
	Mode      []string `yaml:"mode"`
	Compare   string   `yaml:"compare"`
	Data      *uint8   `yaml:"data"`
	Notify    bool     `yaml:"notify"`
	Message   string   `yaml:"message"`
	Condition string   `yaml:"condition"`
}

type definitions struct {
	Breakpoints []Definition `yaml:"breakpoints"`
}

// Breakpoint converts the definition to a Breakpoint.
func (def Definition) Breakpoint() (Breakpoint, error) {
	bp := Breakpoint{
		Bus:        bus.CPUBus,
		Address:    def.Address,
		AddressEnd: def.End,
		NotifyOnly: def.Notify,
		Message:    def.Message,
		Condition:  def.Condition,
	}

	if def.Bus != "" {
		var err error
		bp.Bus, err = bus.Parse(def.Bus)
		if err != nil {
			return Breakpoint{}, fmt.Errorf("%w: %w", ErrDefinition, err)
		}
	}

	if len(def.Mode) == 0 {
		bp.Mode = ModeExec
	}
	for _, m := range def.Mode {
		md, err := ParseMode(m)
		if err != nil {
			return Breakpoint{}, err
		}
		bp.Mode |= md
	}

	if def.Data != nil {
		cmp, err := ParseCompare(def.Compare)
		if err != nil {
			return Breakpoint{}, err
		}
		bp.Data = DataFilter{Active: true, Compare: cmp, Value: *def.Data}
	} else if def.Compare != "" {
		return Breakpoint{}, fmt.Errorf("%w: comparison without data value", ErrDefinition)
	}

	if err := bp.validate(); err != nil {
		return Breakpoint{}, err
	}

	return bp, nil
}

// LoadDefinitions reads breakpoint definitions from the io.Reader and adds
// them to the debugger. No breakpoints are added if any definition is
// invalid. Returns the number of breakpoints added.
func (dbg *Debugger) LoadDefinitions(r io.Reader) (int, error) {
	var defs definitions

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %w", ErrDefinition, err)
	}

	bps := make([]Breakpoint, 0, len(defs.Breakpoints))
	for i, def := range defs.Breakpoints {
		bp, err := def.Breakpoint()
		if err != nil {
			return 0, fmt.Errorf("breakpoint %d: %w", i, err)
		}
		bps = append(bps, bp)
	}

	for _, bp := range bps {
		if _, err := dbg.Add(bp); err != nil {
			return 0, err
		}
	}

	return len(bps), nil
}
