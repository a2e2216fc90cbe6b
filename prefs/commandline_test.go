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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/snesprobe/prefs"
	"github.com/jetsetilly/snesprobe/schema/loader"
	"github.com/jetsetilly/snesprobe/test"
)

func TestCommandLineSchemaPrefs(t *testing.T) {
	t.Chdir(t.TempDir())

	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("schema.strict::true; schema.listmax::4; debugger.notifycolor::false")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 1)

	p, err := loader.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Strict.Value())
	test.ExpectEquality(t, p.ListMax.Value(), 4)
	test.ExpectEquality(t, p.LinkedListMax.Value(), 16)

	// the debugger preference was not consumed by the schema loader
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "debugger.notifycolor::false")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	// values on the command line are not saved and do not persist
	p, err = loader.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, p.Strict.Value())
	test.ExpectEquality(t, p.ListMax.Value(), 16)
}

func TestCommandLineGroups(t *testing.T) {
	t.Chdir(t.TempDir())

	prefs.PushCommandLineStack("schema.listmax::4")
	prefs.PushCommandLineStack("schema.listmax::8")

	// only the most recent group is consulted
	p, err := loader.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.ListMax.Value(), 8)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	p, err = loader.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.ListMax.Value(), 4)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineMalformed(t *testing.T) {
	// whitespace is trimmed and malformed pairs are ignored. unused pairs
	// are reported in key order
	prefs.PushCommandLineStack("  schema.strict:: true ;schema_listmax;debugger.debugoutput::a::b; debugger.notifycolor::false")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "debugger.notifycolor::false; schema.strict::true")

	prefs.PushCommandLineStack("schema.listmax")
	ok, _ := prefs.GetCommandLinePref("schema.listmax")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineInvalidValue(t *testing.T) {
	t.Chdir(t.TempDir())

	// a maximum length of zero is rejected by the loader preferences
	prefs.PushCommandLineStack("schema.listmax::0")
	_, err := loader.NewPreferences()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("schema.linkedlistmax::many")
	_, err = loader.NewPreferences()
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}
