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
	"os"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/snesprobe/logger"
	"github.com/jetsetilly/snesprobe/schema"
)

// Sentinel errors returned by the loader. Returned errors wrap one of these
// and can be tested with errors.Is().
var (
	// the document cannot be parsed or the top level is not an object
	ErrMalformedDocument = errors.New("malformed schema document")

	// a type definition is not a string, null or an object with a known key
	ErrUnsupportedType = errors.New("unsupported type")

	// a member is missing a required key. only returned in strict mode
	ErrMissingKey = errors.New("missing key")

	// a value that must be an object is not an object
	ErrNotObject = errors.New("not an object")
)

// Format of a schema document.
type Format int

// List of valid Format values.
const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// FormatFromFilename returns the format of a schema document from the
// extension of the filename. Files that are not YAML are assumed to be JSON.
func FormatFromFilename(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Loader adds the types defined by schema documents to a schema.
type Loader struct {
	schema *schema.Schema

	listMax       uint32
	linkedListMax uint32
	strict        bool
}

// NewLoader is the preferred method of initialisation for the Loader type.
// The preferences can be nil in which case the default values are used.
func NewLoader(sch *schema.Schema, prefs *Preferences) *Loader {
	l := &Loader{
		schema:        sch,
		listMax:       schema.DefaultMaxLength,
		linkedListMax: schema.DefaultMaxLength,
	}
	if prefs != nil {
		l.listMax = uint32(prefs.ListMax.Value())
		l.linkedListMax = uint32(prefs.LinkedListMax.Value())
		l.strict = prefs.Strict.Value()
	}
	return l
}

// SetStrict changes whether problems with individual members fail the load.
func (l *Loader) SetStrict(strict bool) {
	l.strict = strict
}

// LoadFile loads the schema document in the named file. The format is
// decided by the file extension.
func (l *Loader) LoadFile(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("schema loader: %w", err)
	}
	defer f.Close()

	err = l.Load(f, FormatFromFilename(filename))
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(filename), err)
	}
	return nil
}

// Load reads a schema document and adds the types it defines to the schema.
//
// Types are added to the schema as they are loaded. If an error is returned
// then the types defined before the error was found will have been added to
// the schema but none of the types after it.
func (l *Loader) Load(r io.Reader, format Format) error {
	var doc *node
	var err error

	switch format {
	case FormatYAML:
		doc, err = decodeYAML(r)
	default:
		doc, err = decodeJSON(r)
	}
	if err != nil {
		return l.fatal(fmt.Errorf("schema loader: %w: %w", ErrMalformedDocument, err))
	}

	if !doc.is(kindObject) {
		return l.fatal(fmt.Errorf("schema loader: %w: top level must be an object", ErrMalformedDocument))
	}

	err = l.loadTypes(doc.get("types"))
	if err != nil {
		return l.fatal(fmt.Errorf("schema loader: %w", err))
	}

	err = l.loadVariables(doc.get("variables"))
	if err != nil {
		return l.fatal(fmt.Errorf("schema loader: %w", err))
	}

	return nil
}

func (l *Loader) fatal(err error) error {
	logger.Log(logger.Allow, "schema loader", err)
	return err
}

// problem is called when part of the document is not correct but the load
// can continue. In strict mode the error is returned. Otherwise it is logged
// and nil is returned.
func (l *Loader) problem(err error) error {
	if l.strict {
		return err
	}
	logger.Log(logger.Allow, "schema loader", err)
	return nil
}

func (l *Loader) loadTypes(n *node) error {
	if n == nil || n.is(kindNull) {
		return nil
	}
	if !n.is(kindObject) {
		return fmt.Errorf("types: %w", ErrNotObject)
	}

	for i, name := range n.keys {
		t, err := l.loadType(n.vals[i], "types."+name)
		if err != nil {
			return err
		}
		l.schema.Add(name, t)
	}

	return nil
}

func (l *Loader) loadVariables(n *node) error {
	if n == nil || n.is(kindNull) {
		return nil
	}
	if !n.is(kindObject) {
		return fmt.Errorf("variables: %w", ErrNotObject)
	}

	st := &schema.Struct{}
	err := l.loadStructMembers(st, n, "variables")
	if err != nil {
		return err
	}
	l.schema.Add(schema.GlobalVariables, st)

	return nil
}

func (l *Loader) loadType(n *node, path string) (schema.Type, error) {
	switch {
	case n == nil || n.is(kindNull):
		return &schema.Unknown{}, nil
	case n.is(kindString):
		return l.schema.Reference(n.str), nil
	case n.is(kindObject):
		return l.loadObjectType(n, path)
	}
	return nil, fmt.Errorf("%s: %w: must be a string or an object: %s", path, ErrUnsupportedType, n)
}

func (l *Loader) loadObjectType(n *node, path string) (schema.Type, error) {
	if len(n.keys) == 0 {
		return nil, fmt.Errorf("%s: %w: type object must have one key", path, ErrUnsupportedType)
	}
	if len(n.keys) > 1 {
		err := l.problem(fmt.Errorf("%s: %w: type object has more than one key", path, ErrUnsupportedType))
		if err != nil {
			return nil, err
		}
	}

	variant := n.keys[0]
	def := n.vals[0]
	path = fmt.Sprintf("%s.%s", path, variant)

	if !def.is(kindObject) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotObject)
	}

	switch variant {
	case schema.NameEnum:
		return l.loadEnum(def, path)
	case schema.NameFlags:
		return l.loadFlags(def, path)
	case schema.NameStruct:
		return l.loadStruct(def, path, false)
	case schema.NameGroup:
		return l.loadStruct(def, path, true)
	case schema.NamePointer:
		p := &schema.Pointer{}
		err := l.loadPointer(p, def, path)
		if err != nil {
			return nil, err
		}
		return p, nil
	case schema.NameList:
		return l.loadList(def, path)
	case schema.NameLinkedList:
		return l.loadLinkedList(def, path)
	}

	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedType)
}

// number returns the value of the key in the object. A key that is present
// but which is not a number is a problem. The boolean is false if the key is
// missing or if there was a problem.
func (l *Loader) number(n *node, key string, path string) (int64, bool, error) {
	v := n.get(key)
	if v == nil {
		return 0, false, nil
	}
	num, err := v.number()
	if err != nil {
		return 0, false, l.problem(fmt.Errorf("%s.%s: %w", path, key, err))
	}
	return num, true, nil
}

// size returns the size in bits of a type definition from the bits or bytes
// key.
func (l *Loader) size(n *node, path string) (uint32, error) {
	if n.get("bits").isNumber() {
		b, _, err := l.number(n, "bits", path)
		return uint32(b), err
	}
	if n.get("bytes").isNumber() {
		b, _, err := l.number(n, "bytes", path)
		return uint32(b * 8), err
	}
	return 0, nil
}

func (l *Loader) offset(n *node, path string) (schema.Offset, error) {
	if n.is(kindObject) {
		if a := n.get("address"); a != nil {
			v, err := a.number()
			if err != nil {
				return schema.Absolute(0), l.problem(fmt.Errorf("%s.address: %w", path, err))
			}
			return schema.Absolute(uint32(v)), nil
		}
		if v := n.get("value_of"); v.is(kindString) {
			return schema.ValueOf(v.str), nil
		}
	}

	v, err := n.number()
	if err != nil {
		return schema.Relative(0), l.problem(fmt.Errorf("%s: %w", path, err))
	}
	return schema.Relative(v), nil
}

// missing is called when a member is missing a required key.
func (l *Loader) missing(path string, key string) error {
	return l.problem(fmt.Errorf("%s: %w: %s", path, ErrMissingKey, key))
}

// notObject is called when a member is not an object.
func (l *Loader) notObject(path string) error {
	return l.problem(fmt.Errorf("%s: %w", path, ErrNotObject))
}

func (l *Loader) loadEnum(n *node, path string) (schema.Type, error) {
	bits, err := l.size(n, path)
	if err != nil {
		return nil, err
	}
	t := &schema.Enum{Bits: bits}

	values := n.get("values")
	if !values.is(kindObject) {
		return t, nil
	}

	for i, id := range values.keys {
		v := values.vals[i]
		vpath := fmt.Sprintf("%s.values.%s", path, id)

		if !v.is(kindObject) {
			if err := l.notObject(vpath); err != nil {
				return nil, err
			}
			continue
		}
		if !v.get("name").is(kindString) {
			if err := l.missing(vpath, "name"); err != nil {
				return nil, err
			}
			continue
		}
		if !v.get("value").isNumber() {
			if err := l.missing(vpath, "value"); err != nil {
				return nil, err
			}
			continue
		}

		val, _, err := l.number(v, "value", vpath)
		if err != nil {
			return nil, err
		}
		t.Add(id, v.get("name").str, val)
	}

	return t, nil
}

func (l *Loader) loadFlags(n *node, path string) (schema.Type, error) {
	bits, err := l.size(n, path)
	if err != nil {
		return nil, err
	}
	t := &schema.Flags{Bits: bits}

	members := n.get("members")
	if !members.is(kindObject) {
		return t, nil
	}

	for i, id := range members.keys {
		m := members.vals[i]
		mpath := fmt.Sprintf("%s.members.%s", path, id)

		if !m.is(kindObject) {
			if err := l.notObject(mpath); err != nil {
				return nil, err
			}
			continue
		}

		var skip bool
		for _, k := range []string{"name", "offset", "bits", "type"} {
			ok := m.has(k)
			switch k {
			case "name":
				ok = m.get(k).is(kindString)
			case "offset", "bits":
				ok = m.get(k).isNumber()
			}
			if !ok {
				if err := l.missing(mpath, k); err != nil {
					return nil, err
				}
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		mt, err := l.loadType(m.get("type"), mpath+".type")
		if err != nil {
			return nil, err
		}

		offset, _, err := l.number(m, "offset", mpath)
		if err != nil {
			return nil, err
		}
		mbits, _, err := l.number(m, "bits", mpath)
		if err != nil {
			return nil, err
		}

		t.Add(id, m.get("name").str, uint32(offset), uint32(mbits), mt)
	}

	return t, nil
}

func (l *Loader) loadStruct(n *node, path string, group bool) (schema.Type, error) {
	bits, err := l.size(n, path)
	if err != nil {
		return nil, err
	}
	t := &schema.Struct{Bits: bits, Group: group}

	members := n.get("members")
	if !members.is(kindObject) {
		return t, nil
	}

	err = l.loadStructMembers(t, members, path+".members")
	if err != nil {
		return nil, err
	}

	return t, nil
}

func (l *Loader) loadStructMembers(t *schema.Struct, members *node, path string) error {
	for i, id := range members.keys {
		m := members.vals[i]
		mpath := fmt.Sprintf("%s.%s", path, id)

		if !m.is(kindObject) {
			if err := l.notObject(mpath); err != nil {
				return err
			}
			continue
		}

		name := id
		if v := m.get("name"); v.is(kindString) {
			name = v.str
		}

		var offset schema.Offset = schema.Relative(0)
		if v := m.get("offset"); v != nil {
			var err error
			offset, err = l.offset(v, mpath+".offset")
			if err != nil {
				return err
			}
		}

		if !m.has("type") {
			if err := l.missing(mpath, "type"); err != nil {
				return err
			}
			continue
		}

		mt, err := l.loadType(m.get("type"), mpath+".type")
		if err != nil {
			return err
		}

		t.Add(id, name, offset, mt)
	}

	return nil
}

func (l *Loader) loadPointer(p *schema.Pointer, n *node, path string) error {
	bits, err := l.size(n, path)
	if err != nil {
		return err
	}
	p.Bits = bits

	if v := n.get("to"); v != nil {
		p.Target, err = l.loadType(v, path+".to")
		if err != nil {
			return err
		}
	}

	if v := n.get("type"); v != nil {
		p.Source, err = l.loadType(v, path+".type")
		if err != nil {
			return err
		}
	}

	if v := n.get("nullable"); v != nil {
		switch {
		case v.is(kindBool):
			p.Nullable = v.b
			p.NullValue = 0
		default:
			nv, ok, err := l.number(n, "nullable", path)
			if err != nil {
				return err
			}
			p.Nullable = ok
			p.NullValue = nv
		}
	}

	if v := n.get("bank"); v != nil {
		switch {
		case v.is(kindString) && v.str == "same":
			p.BankPolicy = schema.BankInherit
		case v.isNumber():
			b, _, err := l.number(n, "bank", path)
			if err != nil {
				return err
			}
			p.BankPolicy = schema.BankFixed
			p.Bank = uint8(b)
		default:
			err := l.problem(fmt.Errorf("%s.bank: unsupported value: %s", path, v))
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (l *Loader) loadList(n *node, path string) (schema.Type, error) {
	bits, err := l.size(n, path)
	if err != nil {
		return nil, err
	}
	t := &schema.List{
		Bits:      bits,
		MaxLength: l.listMax,
	}

	if v := n.get("type"); v != nil {
		t.Target, err = l.loadType(v, path+".type")
		if err != nil {
			return nil, err
		}
	}

	if v := n.get("length"); v != nil {
		t.Length, err = l.offset(v, path+".length")
		if err != nil {
			return nil, err
		}
	}

	if m, ok, err := l.number(n, "max_length", path); err != nil {
		return nil, err
	} else if ok {
		t.MaxLength = uint32(m)
	}

	return t, nil
}

func (l *Loader) loadLinkedList(n *node, path string) (schema.Type, error) {
	t := &schema.LinkedList{
		MaxLength: l.linkedListMax,
	}

	err := l.loadPointer(&t.Pointer, n, path)
	if err != nil {
		return nil, err
	}

	if v := n.get("next"); v.is(kindString) {
		t.Next = v.str
	} else if err := l.missing(path, "next"); err != nil {
		return nil, err
	}

	if m, ok, err := l.number(n, "max_length", path); err != nil {
		return nil, err
	} else if ok {
		t.MaxLength = uint32(m)
	}

	return t, nil
}
