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

package paths

import (
	"fmt"
	"strings"
	"time"
)

// UniqueFilename creates a filename that (assuming a functioning clock)
// should not collide with any existing file. The optional label is inserted
// between the prefix and the timestamp.
//
// Format of returned string is:
//
//	prefix_label_YYYYMMDD_HHMMSS
//
// Where label is omitted if it is empty.
func UniqueFilename(prefix string, label string) string {
	timestamp := time.Now().Format("20060102_150405")

	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Sprintf("%s_%s", prefix, timestamp)
	}
	return fmt.Sprintf("%s_%s_%s", prefix, label, timestamp)
}
