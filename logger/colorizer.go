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

package logger

import (
	"io"
	"strings"

	"github.com/jetsetilly/snesprobe/debugger/terminal/ansi"
)

// Colorizer wraps an io.Writer and highlights the tag of each log entry
// written to it. Suitable for use with SetEcho() when the output is a
// terminal.
type Colorizer struct {
	out io.Writer
	pen string
}

// NewColorizer is the preferred method of initialisation for the Colorizer
// type. The pen argument names a colour in the ansi.DimPens table. An unknown
// pen name means no highlighting.
func NewColorizer(out io.Writer, pen string) Colorizer {
	return Colorizer{out: out, pen: ansi.DimPens[pen]}
}

// Write implements the io.Writer interface.
func (c Colorizer) Write(p []byte) (int, error) {
	if c.pen == "" {
		return c.out.Write(p)
	}

	var s strings.Builder
	for _, l := range strings.SplitAfter(string(p), "\n") {
		if l == "" {
			continue
		}
		tag, detail, ok := strings.Cut(l, ": ")
		if !ok {
			s.WriteString(l)
			continue
		}
		s.WriteString(c.pen)
		s.WriteString(tag)
		s.WriteString(ansi.NormalPen)
		s.WriteString(": ")
		s.WriteString(detail)
	}

	_, err := io.WriteString(c.out, s.String())
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
