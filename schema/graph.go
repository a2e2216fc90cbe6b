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

	"github.com/bradleyjkemp/memviz"
)

// node is the form of a variable drawn by Graph. memviz draws every exported
// field so Type is replaced with its name.
type node struct {
	Name     string
	Type     string
	Address  string
	Value    string
	Children []*node
}

func newNode(v *Variable) *node {
	n := &node{
		Name:    v.Name,
		Type:    v.Type.TypeName(),
		Address: fmt.Sprintf("%06x", v.Address),
	}
	if !isAggregate(v.Type) {
		n.Value = v.Text()
	}
	for _, c := range v.Children {
		n.Children = append(n.Children, newNode(c))
	}
	return n
}

// Graph writes the variable tree in the dot language of graphviz.
func Graph(w io.Writer, v *Variable) {
	if v == nil {
		return
	}
	memviz.Map(w, newNode(v))
}
