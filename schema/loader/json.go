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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
)

// decodeJSON reads a JSON document into a tree of nodes. The token stream is
// used rather than unmarshalling into a map so that the order of keys is
// kept.
func decodeJSON(r io.Reader) (*node, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	n, err := decodeJSONValue(dec)
	if err != nil {
		return nil, err
	}

	// nothing but whitespace is allowed after the document
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			return nil, fmt.Errorf("unexpected data after document")
		}
		return nil, err
	}

	return n, nil
}

func decodeJSONValue(dec *json.Decoder) (*node, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case nil:
		return &node{kind: kindNull}, nil
	case bool:
		return &node{kind: kindBool, b: t}, nil
	case string:
		return &node{kind: kindString, str: t}, nil
	case json.Number:
		return jsonNumber(t)
	case json.Delim:
		switch t {
		case '{':
			n := &node{kind: kindObject}
			for dec.More() {
				k, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := k.(string)
				if !ok {
					return nil, fmt.Errorf("object key is not a string: %v", k)
				}
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				n.keys = append(n.keys, key)
				n.vals = append(n.vals, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		case '[':
			n := &node{kind: kindArray}
			for dec.More() {
				v, err := decodeJSONValue(dec)
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return n, nil
		}
	}

	return nil, fmt.Errorf("unexpected token: %v", tok)
}

// jsonNumber converts a JSON number to an integer node. Fractional numbers
// are truncated.
func jsonNumber(t json.Number) (*node, error) {
	if v, err := strconv.ParseInt(string(t), 10, 64); err == nil {
		return &node{kind: kindNumber, num: v}, nil
	}
	f, err := t.Float64()
	if err != nil {
		return nil, err
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("number out of range: %s", t)
	}
	return &node{kind: kindNumber, num: int64(f)}, nil
}
