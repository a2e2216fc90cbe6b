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

// Package prefs facilitates the storage of preferential values in the
// Snesprobe system. It is a key component in the configuration of the
// debugger and of the schema loader.
//
// Values are registered with a Disk instance under a key. The Disk can then be
// saved to and loaded from a file. The file is a simple text file of
// "key :: value" lines, preceded by a warning not to edit the file by hand.
//
// Values can be overridden for the current session from the command line. The
// prefs string given with the -prefs flag is pushed onto the command line
// stack with PushCommandLineStack(). The values are applied when the Disk is
// loaded and take precedence over the values in the file.
//
//	snesprobe -prefs "schema.listmax::32; schema.strict::true" RESOLVE ...
//
// Command line values are not saved to the prefs file unless the value is
// subsequently changed by the program.
package prefs
