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

package schema

import (
	"fmt"

	"github.com/jetsetilly/snesprobe/logger"
)

// Offset computes an address relative to a base address in a context. It is
// used for the offsets of struct members and for the length of lists.
type Offset interface {
	Resolve(ctx Context, base uint32) uint32
	String() string
}

// Relative offsets add a fixed value to the base address.
type Relative int64

func (o Relative) Resolve(_ Context, base uint32) uint32 {
	return uint32(int64(base) + int64(o))
}

func (o Relative) String() string {
	return fmt.Sprintf("%+d", int64(o))
}

// Absolute offsets ignore the base address.
type Absolute uint32

func (o Absolute) Resolve(_ Context, _ uint32) uint32 {
	return uint32(o)
}

func (o Absolute) String() string {
	return fmt.Sprintf("@%06x", uint32(o))
}

// ValueOf offsets are the value of another member of the struct being
// resolved. The name can be a dotted path through groups.
type ValueOf string

// Resolve returns zero if the member does not exist.
func (o ValueOf) Resolve(ctx Context, _ uint32) uint32 {
	v := ctx.ResolveMember(string(o))
	if v == nil {
		logger.Logf(logger.Allow, "schema", "value_of: no member named %s", string(o))
		return 0
	}
	return uint32(v.Value)
}

func (o ValueOf) String() string {
	return fmt.Sprintf("value_of(%s)", string(o))
}
