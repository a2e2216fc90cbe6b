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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The Expect*() functions report a test error and allow the test to continue.
// The Demand*() functions are fatal to the test and should be used when the
// outcome of a check is required by the rest of the test. For example, testing
// the length of a slice before indexing it.
//
// Success and failure are judged according to the type of the value:
//
//	bool  -> true is success
//	error -> nil is success
//	nil   -> success
//
// Note that an untyped nil is considered a success. This is because of how
// errors are usually returned: a nil error means that no error occurred.
//
// The CompareWriter type implements the io.Writer interface and should be used
// to capture output for comparison with an expected string. Diff() describes
// the difference line by line, which is more useful than the raw output when
// a multi-line comparison fails.
//
// All functions accept optional tags which are prepended to the failure
// message. Useful when the check is made inside a loop.
package test
