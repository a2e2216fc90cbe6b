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
	"strconv"
	"strings"
)

type kind int

const (
	kindNull kind = iota
	kindBool
	kindNumber
	kindString
	kindObject
	kindArray
)

func (k kind) String() string {
	switch k {
	case kindBool:
		return "boolean"
	case kindNumber:
		return "number"
	case kindString:
		return "string"
	case kindObject:
		return "object"
	case kindArray:
		return "array"
	}
	return "null"
}

// node is a value in a schema document. JSON and YAML documents are both
// decoded into a tree of nodes. The keys of an object are kept in document
// order.
type node struct {
	kind kind

	b   bool
	num int64
	str string

	// keys and values of an object
	keys []string
	vals []*node

	// elements of an array
	items []*node
}

// get returns the value of the key in an object. Returns nil if the node is
// not an object or if the key is not present.
func (n *node) get(key string) *node {
	if n == nil || n.kind != kindObject {
		return nil
	}
	for i, k := range n.keys {
		if k == key {
			return n.vals[i]
		}
	}
	return nil
}

func (n *node) has(key string) bool {
	return n.get(key) != nil
}

func (n *node) is(k kind) bool {
	return n != nil && n.kind == k
}

// number returns the value of a number node or of a hexadecimal number
// object.
func (n *node) number() (int64, error) {
	switch {
	case n.is(kindNumber):
		return n.num, nil
	case n.is(kindObject):
		h := n.get("$")
		if h.is(kindString) {
			s := strings.TrimPrefix(strings.TrimPrefix(h.str, "0x"), "$")
			v, err := strconv.ParseUint(s, 16, 64)
			if err != nil {
				return 0, fmt.Errorf("hex number: %w", err)
			}
			return int64(v), nil
		}
	}
	return 0, fmt.Errorf(`numbers must be an integer or {"$": "hex"}`)
}

// isNumber returns true if the node is a number or a hexadecimal number
// object.
func (n *node) isNumber() bool {
	if n.is(kindNumber) {
		return true
	}
	return n.is(kindObject) && n.get("$").is(kindString)
}

func (n *node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.kind {
	case kindBool:
		return strconv.FormatBool(n.b)
	case kindNumber:
		return strconv.FormatInt(n.num, 10)
	case kindString:
		return strconv.Quote(n.str)
	case kindObject:
		s := make([]string, len(n.keys))
		for i, k := range n.keys {
			s[i] = fmt.Sprintf("%q: %s", k, n.vals[i])
		}
		return fmt.Sprintf("{%s}", strings.Join(s, ", "))
	case kindArray:
		s := make([]string, len(n.items))
		for i, v := range n.items {
			s[i] = v.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(s, ", "))
	}
	return "null"
}
