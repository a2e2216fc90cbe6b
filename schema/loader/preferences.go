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

package loader

import (
	"fmt"

	"github.com/jetsetilly/snesprobe/paths"
	"github.com/jetsetilly/snesprobe/prefs"
)

// Preferences defines and collates all the preference values used by the
// schema loader.
type Preferences struct {
	dsk *prefs.Disk

	// maximum length of lists and linked lists that do not specify one
	ListMax       prefs.Int
	LinkedListMax prefs.Int

	// problems with individual members fail the load rather than being logged
	Strict prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	positive := func(v prefs.Value) error {
		if n, ok := v.(int); ok && n < 1 {
			return fmt.Errorf("maximum length must be at least one")
		}
		return nil
	}
	p.ListMax.SetHookPre(positive)
	p.LinkedListMax.SetHookPre(positive)

	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("schema.listmax", &p.ListMax)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("schema.linkedlistmax", &p.LinkedListMax)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("schema.strict", &p.Strict)
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
	_ = p.ListMax.Set(16)
	_ = p.LinkedListMax.Set(16)
	_ = p.Strict.Set(false)
}

// Load current schema loader preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current schema loader preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
