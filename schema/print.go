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
	"io"
	"strings"
)

func isAggregate(t Type) bool {
	switch Underlying(t).(type) {
	case *Struct, *Flags, *List, *LinkedList:
		return true
	}
	return false
}

// Print writes the variable and its children as an indented tree. Numbers are
// printed in decimal, enums by name and pointers in hexadecimal. A null
// pointer is printed as "-".
func Print(w io.Writer, v *Variable) {
	v.Walk(func(c *Variable, depth int) {
		indent := strings.Repeat("  ", depth)
		if isAggregate(c.Type) {
			fmt.Fprintf(w, "%s%s (%s)\n", indent, c.Name, c.Type.TypeName())
			return
		}
		fmt.Fprintf(w, "%s%s = %s\n", indent, c.Name, c.Text())
	})
}

// Describe returns a one line description of a type definition. References
// are described by name only.
func Describe(t Type) string {
	switch t := t.(type) {
	case nil:
		return "<nil>"
	case *Reference:
		return t.Name
	case *Number:
		if t.Signed {
			return fmt.Sprintf("int%d", t.Bits)
		}
		return fmt.Sprintf("uint%d", t.Bits)
	case *Enum:
		var s []string
		for _, v := range t.values {
			s = append(s, fmt.Sprintf("%s=%d", v.ID, v.Value))
		}
		return fmt.Sprintf("enum(%d) {%s}", t.Bits, strings.Join(s, ", "))
	case *Flags:
		var s []string
		for _, m := range t.Members {
			s = append(s, fmt.Sprintf("%s@%d:%d %s", m.ID, m.Offset, m.Bits, Describe(m.Type)))
		}
		return fmt.Sprintf("flags(%d) {%s}", t.Bits, strings.Join(s, ", "))
	case *Struct:
		var s []string
		for _, m := range t.Members {
			s = append(s, fmt.Sprintf("%s%s %s", m.ID, m.Offset, Describe(m.Type)))
		}
		return fmt.Sprintf("%s(%d) {%s}", t.TypeName(), t.Bits, strings.Join(s, ", "))
	case *List:
		length := "<nil>"
		if t.Length != nil {
			length = t.Length.String()
		}
		return fmt.Sprintf("list(%d) of %s length %s max %d", t.Bits, Describe(t.Target), length, maxLength(t.MaxLength))
	case *LinkedList:
		return fmt.Sprintf("linkedlist%s next %s max %d", describePointer(&t.Pointer), t.Next, maxLength(t.MaxLength))
	case *Pointer:
		return fmt.Sprintf("pointer%s", describePointer(t))
	case *Unknown:
		return fmt.Sprintf("unknown(%s)", t.Name)
	}
	return t.TypeName()
}

func describePointer(t *Pointer) string {
	var s strings.Builder
	fmt.Fprintf(&s, "(%d) to %s from %s", t.SizeInBits(), Describe(t.Target), Describe(t.Source))
	switch t.BankPolicy {
	case BankFixed:
		fmt.Fprintf(&s, " bank %02x", t.Bank)
	case BankInherit:
		s.WriteString(" bank same")
	}
	if t.Nullable {
		fmt.Fprintf(&s, " null %d", t.NullValue)
	}
	return s.String()
}

// Definitions writes the description of every type in the schema, in
// alphabetical order of name.
func Definitions(w io.Writer, s *Schema) {
	for _, n := range s.Names() {
		t, _ := s.Get(n)
		fmt.Fprintf(w, "%s: %s\n", n, Describe(t))
	}
}
