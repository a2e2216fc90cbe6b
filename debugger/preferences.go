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
	"github.com/jetsetilly/snesprobe/paths"
	"github.com/jetsetilly/snesprobe/prefs"
)

// Preferences defines and collates all the preference values used by the
// debugger.
type Preferences struct {
	dsk *prefs.Disk

	// filename of the debug output stream. relative filenames are placed in
	// the resource directory
	DebugOutput prefs.String

	// color the output of notify breakpoints when the output is a terminal
	NotifyColor prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("debugger.debugoutput", &p.DebugOutput)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("debugger.notifycolor", &p.NotifyColor)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load()
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	_ = p.DebugOutput.Set("debug.out")
	_ = p.NotifyColor.Set(true)
}

// Load current debugger preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current debugger preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// DebugOutputPath returns the path of the debug output stream. An empty
// preference value results in a unique filename.
func (p *Preferences) DebugOutputPath() (string, error) {
	fn := p.DebugOutput.String()
	if fn == "" {
		fn = paths.UniqueFilename("debug", "out")
	}
	return paths.ResourcePath("", fn)
}
