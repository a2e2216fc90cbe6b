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

package expression

import "strings"

// Command is a parsed expression. Arguments are unparsed expressions.
type Command struct {
	Name string
	Args []string
}

// Parse splits text into a command name and its arguments. Arguments are
// separated by commas at the outermost level of parentheses. Empty arguments
// are discarded.
//
// A missing closing parenthesis is tolerated. Text after the closing
// parenthesis is ignored.
func Parse(text string) Command {
	open := strings.IndexByte(text, '(')
	if open == -1 {
		return Command{Name: strings.TrimSpace(text)}
	}

	cmd := Command{Name: strings.TrimSpace(text[:open])}

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s != "" {
			cmd.Args = append(cmd.Args, s)
		}
	}

	depth := 1
	left := open + 1
	for right := open + 1; right < len(text); right++ {
		switch text[right] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				add(text[left:right])
				return cmd
			}
		case ',':
			if depth == 1 {
				add(text[left:right])
				left = right + 1
			}
		}
	}

	// unterminated argument list
	add(text[left:])

	return cmd
}
