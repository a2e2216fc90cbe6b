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
	"strings"

	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/logger"
	"github.com/jetsetilly/snesprobe/notifications"
)

// notify writes the message of a notify breakpoint to the output.
func (dbg *Debugger) notify(b bus.Bus, address uint32, template string) {
	s, ok := dbg.formatMessage(b, address, template)
	if !ok {
		return
	}

	if _, err := io.WriteString(dbg.output, s); err != nil {
		logger.Log(logger.Allow, "breakpoint", err)
	}

	if err := dbg.sched.Notify(notifications.NotifyBreakpointMessage); err != nil {
		logger.Log(logger.Allow, "breakpoint", err)
	}
}

// formatMessage expands the template. Returns false if the message has been
// cancelled by an expression.
//
// An opening brace starts a new expression and any text since the previous
// expression is copied to the output. A closing brace without a preceding
// opening brace is copied as normal text.
func (dbg *Debugger) formatMessage(b bus.Bus, address uint32, template string) (string, bool) {
	if template == "" {
		return fmt.Sprintf("Breakpoint hit at %06x\n", address), true
	}

	s := strings.Builder{}

	left := 0
	for right := 0; right < len(template); right++ {
		switch template[right] {
		case '{':
			s.WriteString(template[left:right])
			left = right
		case '}':
			if template[left] != '{' {
				continue
			}

			r := dbg.eval.Evaluate(b, template[left+1:right])
			if r.Cancel {
				return "", false
			}
			if !r.Mute {
				s.WriteString(fmt.Sprintf("%x", r.Value))
			}
			left = right + 1
		}
	}

	if left < len(template) {
		s.WriteString(template[left:])
	}

	s.WriteString("\n")

	return s.String(), true
}
