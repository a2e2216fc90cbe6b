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

package terminal

// Style is used to identify the category of text being sent to the
// Terminal.TermPrintLine() function. The terminal implementation can interpret
// this how it sees fit. The most likely treatment is to print different styles
// in different colours.
type Style int

// List of terminal styles.
const (
	// general information from the debugger.
	StyleFeedback Style = iota

	// output of a notify-only breakpoint.
	StyleNotify

	// a breakpoint which has halted execution.
	StyleBreakpoint

	// result of an expression evaluation.
	StyleEvaluation

	// the tree produced by a schema resolution.
	StyleSchema

	// help text.
	StyleHelp

	// errors are always printed, even when the terminal is silenced.
	StyleError
)

// Output defines the operations required by an interface that allows output.
type Output interface {
	TermPrintLine(Style, string)
}

// Terminal defines the operations required by the debugger's terminal.
type Terminal interface {
	Output

	// Initialise the terminal. not all terminal implementations will need to
	// do anything.
	Initialise() error

	// Restore the terminal to it's original state, if possible.
	CleanUp()

	// Silence all output except error messages.
	Silence(silenced bool)

	// IsRealTerminal returns true if the output is connected to a terminal
	// device.
	IsRealTerminal() bool
}

// Writer adapts an Output to the io.Writer interface. Each call to Write() is
// printed as a single line in the given style, without a trailing newline.
type Writer struct {
	Output Output
	Style  Style
}

func (w Writer) Write(p []byte) (int, error) {
	s := string(p)
	for len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	w.Output.TermPrintLine(w.Style, s)
	return len(p), nil
}
