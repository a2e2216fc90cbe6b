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

package notifications

// Notice describes events that somehow change the presentation of the
// emulation. These notifications can be used to present additional
// information to the user.
type Notice string

// List of defined notifications.
const (
	// a breakpoint has matched and emulation should be suspended after the
	// current instruction
	NotifyBreakpointHit Notice = "NotifyBreakpointHit"

	// a notify only breakpoint has produced a message
	NotifyBreakpointMessage Notice = "NotifyBreakpointMessage"

	// the debug output stream has been opened for the first time
	NotifyDebugOutputOpened Notice = "NotifyDebugOutputOpened"
)

// Notify is used for direct communication between the debugger and the
// scheduler.
type Notify interface {
	Notify(notice Notice) error
}

// Discard is an implementation of the Notify interface that ignores all
// notices.
var Discard Notify = discard{}

type discard struct{}

func (discard) Notify(Notice) error {
	return nil
}
