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
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// decodeYAML reads a YAML document into a tree of nodes. Mapping keys are kept
// in document order.
func decodeYAML(r io.Reader) (*node, error) {
	var doc yaml.Node
	err := yaml.NewDecoder(r).Decode(&doc)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	return fromYAML(&doc, 0)
}

// the maximum depth of alias expansion
const maxAliasDepth = 32

func fromYAML(y *yaml.Node, aliases int) (*node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return &node{kind: kindNull}, nil
		}
		return fromYAML(y.Content[0], aliases)

	case yaml.AliasNode:
		if aliases >= maxAliasDepth || y.Alias == nil {
			return nil, fmt.Errorf("line %d: too many nested aliases", y.Line)
		}
		return fromYAML(y.Alias, aliases+1)

	case yaml.MappingNode:
		n := &node{kind: kindObject}
		for i := 0; i+1 < len(y.Content); i += 2 {
			k := y.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", k.Line)
			}
			v, err := fromYAML(y.Content[i+1], aliases)
			if err != nil {
				return nil, err
			}
			n.keys = append(n.keys, k.Value)
			n.vals = append(n.vals, v)
		}
		return n, nil

	case yaml.SequenceNode:
		n := &node{kind: kindArray}
		for _, c := range y.Content {
			v, err := fromYAML(c, aliases)
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, v)
		}
		return n, nil

	case yaml.ScalarNode:
		return yamlScalar(y)
	}

	return nil, fmt.Errorf("line %d: unsupported YAML node", y.Line)
}

func yamlScalar(y *yaml.Node) (*node, error) {
	switch y.ShortTag() {
	case "!!null":
		return &node{kind: kindNull}, nil
	case "!!bool":
		var b bool
		if err := y.Decode(&b); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return &node{kind: kindBool, b: b}, nil
	case "!!int":
		var v int64
		if err := y.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", y.Line, err)
		}
		return &node{kind: kindNumber, num: v}, nil
	case "!!float":
		f, err := strconv.ParseFloat(y.Value, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) || f > math.MaxInt64 || f < math.MinInt64 {
			return nil, fmt.Errorf("line %d: number out of range: %s", y.Line, y.Value)
		}
		return &node{kind: kindNumber, num: int64(f)}, nil
	}
	return &node{kind: kindString, str: y.Value}, nil
}
