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

package test

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// CompareWriter captures output written to it so that it can be compared
// with the expected output of a test. The zero value is ready to use.
type CompareWriter struct {
	strings.Builder
}

// Clear discards all captured output.
func (tw *CompareWriter) Clear() {
	tw.Reset()
}

// Compare returns true if the captured output is exactly s.
func (tw *CompareWriter) Compare(s string) bool {
	return tw.String() == s
}

// Diff returns a line oriented difference between the expected output and
// the captured output. An empty string means there is no difference.
func (tw *CompareWriter) Diff(expected string) string {
	if tw.Compare(expected) {
		return ""
	}
	return cmp.Diff(strings.SplitAfter(expected, "\n"), strings.SplitAfter(tw.String(), "\n"))
}
