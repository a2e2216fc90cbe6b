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
	"strings"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
)

// Mode is the type of memory access. The Mode field of a breakpoint is a
// combination of one or more Mode values.
type Mode uint8

// List of valid Mode values.
const (
	ModeExec  Mode = 0x01
	ModeRead  Mode = 0x02
	ModeWrite Mode = 0x04
)

func (m Mode) String() string {
	var s []string
	if m&ModeExec == ModeExec {
		s = append(s, "exec")
	}
	if m&ModeRead == ModeRead {
		s = append(s, "read")
	}
	if m&ModeWrite == ModeWrite {
		s = append(s, "write")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "|")
}

// ParseMode returns the Mode for the name. The name can be the full name as
// returned by the String() function or the first letter of the name.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "exec", "x", "e":
		return ModeExec, nil
	case "read", "r":
		return ModeRead, nil
	case "write", "w":
		return ModeWrite, nil
	}
	return 0, fmt.Errorf("%w: unknown mode (%s)", ErrDefinition, name)
}

// Compare is the relational operator of a data filter.
type Compare int

// List of valid Compare values.
const (
	Equal Compare = iota
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

var compareSymbols = [...]string{"==", "!=", "<", "<=", ">", ">="}

func (c Compare) String() string {
	if c < 0 || int(c) >= len(compareSymbols) {
		return "?"
	}
	return compareSymbols[c]
}

// ParseCompare returns the Compare for the symbol. Accepted forms are the
// symbol as returned by String() or a two letter mnemonic (eq ne lt le gt ge).
func ParseCompare(s string) (Compare, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "==", "=", "eq", "":
		return Equal, nil
	case "!=", "ne":
		return NotEqual, nil
	case "<", "lt":
		return Less, nil
	case "<=", "le":
		return LessEqual, nil
	case ">", "gt":
		return Greater, nil
	case ">=", "ge":
		return GreaterEqual, nil
	}
	return Equal, fmt.Errorf("%w: unknown comparison (%s)", ErrDefinition, s)
}

// DataFilter restricts a breakpoint to accesses of particular data values.
// The zero value of the type accepts all data.
type DataFilter struct {
	Active  bool
	Compare Compare
	Value   uint8
}

// Accepts returns true if the data passes the filter.
func (f DataFilter) Accepts(data uint8) bool {
	if !f.Active {
		return true
	}
	switch f.Compare {
	case Equal:
		return data == f.Value
	case NotEqual:
		return data != f.Value
	case Less:
		return data < f.Value
	case LessEqual:
		return data <= f.Value
	case Greater:
		return data > f.Value
	case GreaterEqual:
		return data >= f.Value
	}
	return false
}

func (f DataFilter) String() string {
	if !f.Active {
		return ""
	}
	return fmt.Sprintf("data%s%02x", f.Compare, f.Value)
}

// Breakpoint is a single breakpoint definition.
type Breakpoint struct {
	Bus     bus.Bus
	Address uint32

	// end of the address range. a value less than or equal to Address means
	// the breakpoint is for a single address
	AddressEnd uint32

	Mode Mode
	Data DataFilter

	// notify breakpoints print the message and do not stop emulation
	NotifyOnly bool
	Message    string

	// optional expression. the breakpoint only matches if the expression
	// evaluates to a non-zero value
	Condition string

	// number of times the breakpoint has stopped emulation
	Hits uint64
}

func (bp Breakpoint) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s %06x", bp.Bus, bp.Address))
	if bp.AddressEnd > bp.Address {
		s.WriteString(fmt.Sprintf("-%06x", bp.AddressEnd))
	}
	s.WriteString(fmt.Sprintf(" %s", bp.Mode))
	if bp.Data.Active {
		s.WriteString(fmt.Sprintf(" %s", bp.Data))
	}
	if bp.Condition != "" {
		s.WriteString(fmt.Sprintf(" if %s", bp.Condition))
	}
	if bp.NotifyOnly {
		s.WriteString(fmt.Sprintf(" notify %q", bp.Message))
	} else {
		s.WriteString(fmt.Sprintf(" hits=%d", bp.Hits))
	}
	return s.String()
}

// validate returns an error if the breakpoint can never match.
func (bp Breakpoint) validate() error {
	if !bp.Bus.Breakable() {
		return fmt.Errorf("%w: breakpoints not supported on %s bus", ErrDefinition, bp.Bus)
	}
	if bp.Mode&(ModeExec|ModeRead|ModeWrite) == 0 {
		return fmt.Errorf("%w: no access mode", ErrDefinition)
	}
	if bp.Data.Compare < Equal || bp.Data.Compare > GreaterEqual {
		return fmt.Errorf("%w: unknown comparison", ErrDefinition)
	}
	return nil
}
