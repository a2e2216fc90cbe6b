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
	"errors"
	"fmt"
	"os"

	"github.com/jetsetilly/snesprobe/logger"
	"github.com/jetsetilly/snesprobe/notifications"
)

// DebugOutput is the file written to by the put_byte(), put_word() and
// put_int() expression calls. The file is created (or truncated) on the first
// write and stays open until Close() is called.
//
// If the file cannot be created the failure is logged once and all
// subsequent writes are discarded.
type DebugOutput struct {
	path   string
	sched  notifications.Notify
	f      *os.File
	failed bool
	closed bool
}

// NewDebugOutput is the preferred method of initialisation for the
// DebugOutput type. The sched argument can be nil.
func NewDebugOutput(path string, sched notifications.Notify) *DebugOutput {
	if sched == nil {
		sched = notifications.Discard
	}
	return &DebugOutput{
		path:  path,
		sched: sched,
	}
}

// Path returns the filename of the debug output.
func (d *DebugOutput) Path() string {
	return d.path
}

// Opened returns true if the file has been created.
func (d *DebugOutput) Opened() bool {
	return d.f != nil
}

// Write implements the io.Writer interface.
func (d *DebugOutput) Write(p []byte) (int, error) {
	if d.closed {
		return 0, os.ErrClosed
	}
	if d.failed {
		return len(p), nil
	}

	if d.f == nil {
		if d.path == "" {
			d.failed = true
			logger.Log(logger.Allow, "debug output", "no filename for debug output")
			return len(p), nil
		}

		var err error
		d.f, err = os.Create(d.path)
		if err != nil {
			d.failed = true
			logger.Log(logger.Allow, "debug output", err)
			return len(p), nil
		}

		logger.Logf(logger.Allow, "debug output", "opened %s", d.path)
		if err := d.sched.Notify(notifications.NotifyDebugOutputOpened); err != nil {
			logger.Log(logger.Allow, "debug output", err)
		}
	}

	return d.f.Write(p)
}

// Close the file if it has been opened. Subsequent writes will fail. It is
// safe to call Close() more than once.
func (d *DebugOutput) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true

	if d.f == nil {
		return nil
	}

	err := d.f.Close()
	d.f = nil
	if err != nil && !errors.Is(err, os.ErrClosed) {
		return fmt.Errorf("debug output: %w", err)
	}
	return nil
}
