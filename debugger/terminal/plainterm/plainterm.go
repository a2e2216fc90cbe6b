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

// Package plainterm implements the Terminal interface for the debugger. It
// does not use any ANSI control sequences.
package plainterm

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/snesprobe/debugger/terminal"
	"golang.org/x/term"
)

// PlainTerminal is the default, most basic terminal interface.
type PlainTerminal struct {
	output     io.Writer
	realOutput bool
	silenced   bool
}

// NewPlainTerminal writes to the supplied io.Writer. A nil writer means
// os.Stdout.
func NewPlainTerminal(output io.Writer) *PlainTerminal {
	return &PlainTerminal{output: output}
}

// Initialise implements the terminal.Terminal interface.
func (pt *PlainTerminal) Initialise() error {
	if pt.output == nil {
		pt.output = os.Stdout
	}
	if f, ok := pt.output.(*os.File); ok {
		pt.realOutput = term.IsTerminal(int(f.Fd()))
	}
	return nil
}

// CleanUp implements the terminal.Terminal interface.
func (pt *PlainTerminal) CleanUp() {
}

// Silence implements the terminal.Terminal interface.
func (pt *PlainTerminal) Silence(silenced bool) {
	pt.silenced = silenced
}

// TermPrintLine implements the terminal.Output interface.
func (pt *PlainTerminal) TermPrintLine(style terminal.Style, s string) {
	if pt.silenced && style != terminal.StyleError {
		return
	}

	switch style {
	case terminal.StyleError:
		s = fmt.Sprintf("* %s", s)
	case terminal.StyleBreakpoint:
		s = fmt.Sprintf("! %s", s)
	}

	io.WriteString(pt.output, s)
	io.WriteString(pt.output, "\n")
}

// IsRealTerminal implements the terminal.Terminal interface.
func (pt *PlainTerminal) IsRealTerminal() bool {
	return pt.realOutput
}
