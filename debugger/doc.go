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

// Package debugger implements the breakpoint engine of Snesprobe. Features
// include:
//
//	- breakpoints on any bus that supports them
//	- address ranges and mirroring aware address matching
//	- data filters with relational comparison
//	- conditional breakpoints using the expression language
//	- notify breakpoints that print a message and do not stop emulation
//	- a debug output stream written to by expressions
//
// Initialisation of the debugger is done with the NewDebugger() function:
//
//	dbg := debugger.NewDebugger(mem, scheduler, output, debugOutputPath)
//	defer dbg.Close()
//
// The mem argument is the emulation, satisfying the expression.Machine
// interface. The scheduler receives a notifications.NotifyBreakpointHit
// notice when a breakpoint matches. It is the responsibility of the scheduler
// to suspend emulation. The debugger itself never blocks.
//
// The emulation must call Test() for every memory access that should be
// considered for a breakpoint. Test() is designed to be called very often and
// does very little work when no breakpoints are defined.
//
// The notification message of a notify breakpoint is a template. Expressions
// in braces are evaluated and replaced with the result, in hexadecimal:
//
//	A is {A} and the word at $7e0010 is {word($7e0010)}
//
// An expression that calls muteif() with a non-zero argument suppresses the
// entire message. A muteif() with a zero argument produces no text but the
// rest of the message is printed.
//
// Breakpoints can be defined in a YAML file and loaded with
// LoadDefinitions(). A recorded trace of bus accesses can be replayed through
// the debugger with Replay().
package debugger
