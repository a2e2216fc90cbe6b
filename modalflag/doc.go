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

// Package modalflag wraps the flag package of the standard library and adds
// support for program modes. Each mode can have its own set of flags.
//
// Arguments are given once with NewArgs() and then consumed by calls to
// Parse(). If sub-modes have been added before a call to Parse() then the
// first argument after the flags is checked against the list of sub-modes.
// The first sub-mode in the list is the default sub-mode.
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RESOLVE", "TYPES")
//	logging := md.AddBool("log", false, "echo log to stderr")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
//	switch md.Mode() {
//	case "RESOLVE":
//		md.NewMode()
//		schema := md.AddString("schema", "", "schema document")
//		...
//	}
//
// Sub-mode comparisons are case insensitive. The Path() function returns every
// mode found so far, separated by a slash.
package modalflag
