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

// Package colorterm implements the Terminal interface for the debugger. It
// prints each style of output in a different color using ANSI control
// sequences.
package colorterm

import (
	"io"
	"os"

	"github.com/jetsetilly/snesprobe/debugger/terminal"
	"github.com/jetsetilly/snesprobe/debugger/terminal/ansi"
	"github.com/jetsetilly/snesprobe/debugger/terminal/plainterm"
)

// ColorTerminal wraps a PlainTerminal and adds color to the output.
type ColorTerminal struct {
	*plainterm.PlainTerminal
	output   io.Writer
	silenced bool
}

// NewColorTerminal writes to the supplied io.Writer. A nil writer means
// os.Stdout.
func NewColorTerminal(output io.Writer) *ColorTerminal {
	if output == nil {
		output = os.Stdout
	}
	return &ColorTerminal{
		PlainTerminal: plainterm.NewPlainTerminal(output),
		output:        output,
	}
}

// Silence implements the terminal.Terminal interface.
func (ct *ColorTerminal) Silence(silenced bool) {
	ct.silenced = silenced
	ct.PlainTerminal.Silence(silenced)
}

// TermPrintLine implements the terminal.Output interface.
func (ct *ColorTerminal) TermPrintLine(style terminal.Style, s string) {
	if ct.silenced && style != terminal.StyleError {
		return
	}

	var pen string
	switch style {
	case terminal.StyleNotify:
		pen = ansi.DimPens["cyan"]
	case terminal.StyleBreakpoint:
		pen = ansi.Pens["yellow"] + ansi.PenStyles["bold"]
	case terminal.StyleEvaluation:
		pen = ansi.Pens["green"]
	case terminal.StyleSchema:
		pen = ansi.DimPens["white"]
	case terminal.StyleHelp:
		pen = ansi.DimPens["white"]
	case terminal.StyleError:
		pen = ansi.Pens["red"]
		s = "* " + s
	}

	io.WriteString(ct.output, pen)
	io.WriteString(ct.output, s)
	io.WriteString(ct.output, ansi.NormalPen)
	io.WriteString(ct.output, "\n")
}
