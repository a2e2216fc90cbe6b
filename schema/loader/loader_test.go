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

package loader_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jetsetilly/snesprobe/hardware/memory/bus"
	"github.com/jetsetilly/snesprobe/hardware/memory/image"
	"github.com/jetsetilly/snesprobe/schema"
	"github.com/jetsetilly/snesprobe/schema/loader"
	"github.com/jetsetilly/snesprobe/test"
)

const jsonDocument = `{
  "types": {
    "state": {"enum": {"bits": 8, "values": {
      "idle": {"name": "Idle", "value": 0},
      "walk": {"name": "Walking", "value": {"$": "01"}}
    }}},
    "status": {"flags": {"bits": 8, "members": {
      "alive": {"name": "Alive", "offset": 0, "bits": 1, "type": "boolean"},
      "lives": {"name": "Lives", "offset": 4, "bits": 4, "type": "uint8"}
    }}},
    "actor": {"struct": {"bytes": 6, "members": {
      "x": {"type": "uint16"},
      "state": {"offset": 2, "type": "state"},
      "status": {"offset": 3, "type": "status"},
      "next": {"offset": 4, "type": {"pointer": {"type": "uint16", "to": "actor", "nullable": true, "bank": "same"}}}
    }}},
    "actors": {"linkedlist": {"type": "uint16", "to": "actor", "bank": {"$": "7e"}, "nullable": true, "next": "next"}},
    "table": {"struct": {"members": {
      "count": {"type": "uint8"},
      "entries": {"offset": 1, "type": {"list": {"type": "uint8", "length": {"value_of": "count"}, "max_length": 8}}}
    }}}
  },
  "variables": {
    "player": {"offset": {"address": {"$": "7e0100"}}, "type": "actor"},
    "first": {"offset": {"address": {"$": "7e0200"}}, "type": "actors"}
  }
}`

const yamlDocument = `
types:
  state:
    enum:
      bits: 8
      values:
        idle: {name: Idle, value: 0}
        walk: {name: Walking, value: {"$": "01"}}
  status:
    flags:
      bits: 8
      members:
        alive: {name: Alive, offset: 0, bits: 1, type: boolean}
        lives: {name: Lives, offset: 4, bits: 4, type: uint8}
  actor:
    struct:
      bytes: 6
      members:
        x: {type: uint16}
        state: {offset: 2, type: state}
        status: {offset: 3, type: status}
        next:
          offset: 4
          type:
            pointer: {type: uint16, to: actor, nullable: true, bank: same}
  actors:
    linkedlist: {type: uint16, to: actor, bank: 0x7e, nullable: true, next: next}
  table:
    struct:
      members:
        count: {type: uint8}
        entries:
          offset: 1
          type:
            list:
              type: uint8
              length: {value_of: count}
              max_length: 8
variables:
  player: {offset: {address: 0x7e0100}, type: actor}
  first: {offset: {address: {"$": "7e0200"}}, type: actors}
`

func definitions(sch *schema.Schema) []string {
	w := &strings.Builder{}
	schema.Definitions(w, sch)
	return strings.Split(strings.TrimSpace(w.String()), "\n")
}

func load(t *testing.T, doc string, format loader.Format) *schema.Schema {
	t.Helper()
	sch := schema.NewSchema()
	err := loader.NewLoader(sch, nil).Load(strings.NewReader(doc), format)
	test.DemandSuccess(t, err)
	return sch
}

func TestLoad(t *testing.T) {
	sch := load(t, jsonDocument, loader.FormatJSON)

	expected := []string{
		"@GLOBAL: struct(0) {player@7e0100 actor, first@7e0200 actors}",
		"actor: struct(48) {x+0 uint16, state+2 state, status+3 status, next+4 pointer(16) to actor from uint16 bank same null 0}",
		"actors: linkedlist(16) to actor from uint16 bank 7e null 0 next next max 16",
		"state: enum(8) {idle=0, walk=1}",
		"status: flags(8) {alive@0:1 boolean, lives@4:4 uint8}",
		"table: struct(0) {count+0 uint8, entries+1 list(0) of uint8 length value_of(count) max 8}",
	}

	if diff := cmp.Diff(expected, definitions(sch)); diff != "" {
		t.Errorf("unexpected definitions (-want +got):\n%s", diff)
	}
}

// types returns every type of the schema by name.
func types(sch *schema.Schema) map[string]schema.Type {
	m := make(map[string]schema.Type)
	for _, n := range sch.Names() {
		m[n], _ = sch.Get(n)
	}
	return m
}

// references are compared by name and enums by their values. neither is
// followed any further because the types are self-referential.
var typeOptions = cmp.Options{
	cmp.Comparer(func(x, y *schema.Reference) bool {
		return x.Name == y.Name
	}),
	cmp.Comparer(func(x, y *schema.Enum) bool {
		return x.Bits == y.Bits && cmp.Equal(x.Values(), y.Values())
	}),
}

func TestIdempotence(t *testing.T) {
	a := load(t, jsonDocument, loader.FormatJSON)
	b := load(t, jsonDocument, loader.FormatJSON)
	if diff := cmp.Diff(types(a), types(b), typeOptions); diff != "" {
		t.Errorf("loading twice produced different schemas (-first +second):\n%s", diff)
	}

	// the same schema written as YAML
	y := load(t, yamlDocument, loader.FormatYAML)
	if diff := cmp.Diff(types(a), types(y), typeOptions); diff != "" {
		t.Errorf("JSON and YAML documents produced different schemas (-json +yaml):\n%s", diff)
	}

	// display names are part of the comparison
	typ, ok := b.Get("status")
	test.DemandSuccess(t, ok)
	typ.(*schema.Flags).Members[1].Name = "Hearts"
	test.ExpectInequality(t, cmp.Diff(types(a), types(b), typeOptions), "")

	c := load(t, jsonDocument, loader.FormatJSON)
	typ, ok = c.Get("state")
	test.DemandSuccess(t, ok)
	typ.(*schema.Enum).Add("walk", "Running", 1)
	test.ExpectInequality(t, cmp.Diff(types(a), types(c), typeOptions), "")
}

func TestMemberOrder(t *testing.T) {
	sch := load(t, `{"types": {"s": {"struct": {"members": {
		"z": {"type": "uint8"},
		"a": {"type": "uint8"},
		"m": {"type": "uint8"}
	}}}}}`, loader.FormatJSON)

	typ, ok := sch.Get("s")
	test.DemandSuccess(t, ok)
	st, ok := typ.(*schema.Struct)
	test.DemandSuccess(t, ok)
	test.DemandEquality(t, len(st.Members), 3)
	test.ExpectEquality(t, st.Members[0].ID, "z")
	test.ExpectEquality(t, st.Members[1].ID, "a")
	test.ExpectEquality(t, st.Members[2].ID, "m")
}

func TestResolveLoaded(t *testing.T) {
	sch := load(t, jsonDocument, loader.FormatJSON)

	img := image.NewImage()
	img.SetData(bus.CPUBus, make([]uint8, 0x800000))
	for i, d := range []uint8{0x34, 0x12, 0x01, 0x31, 0x10, 0x01} {
		bus.Poke(img, bus.CPUBus, 0x7e0100+uint32(i), d)
	}
	bus.Poke(img, bus.CPUBus, 0x7e0200, 0x00)
	bus.Poke(img, bus.CPUBus, 0x7e0201, 0x01)

	g := sch.Globals(img)
	test.DemandSuccess(t, g != nil)

	test.ExpectEquality(t, g.Find("player.x").Value, int64(0x1234))
	test.ExpectEquality(t, g.Find("player.state").Text(), "Walking")
	test.ExpectEquality(t, g.Find("player.status.Alive").Value, int64(1))
	test.ExpectEquality(t, g.Find("player.status.Lives").Value, int64(3))
	test.ExpectEquality(t, g.Find("player.next").Value, int64(0x7e0110))

	first := g.Find("first")
	test.DemandSuccess(t, first != nil)
	test.DemandEquality(t, len(first.Children), 2)
	test.ExpectEquality(t, first.Children[0].Value, int64(0x7e0100))
	test.ExpectEquality(t, first.Children[1].Value, int64(0x7e0110))

	// the pointer's target type is resolved on request
	d := sch.Dereference(g.Find("player.next"), img)
	test.DemandSuccess(t, d != nil)
	test.ExpectEquality(t, d.Address, uint32(0x7e0110))
}

func TestLoadErrors(t *testing.T) {
	var tests = []struct {
		doc string
		err error
	}{
		{doc: ``, err: loader.ErrMalformedDocument},
		{doc: `{`, err: loader.ErrMalformedDocument},
		{doc: `[]`, err: loader.ErrMalformedDocument},
		{doc: `{} {}`, err: loader.ErrMalformedDocument},
		{doc: `{"types": 5}`, err: loader.ErrNotObject},
		{doc: `{"variables": "x"}`, err: loader.ErrNotObject},
		{doc: `{"types": {"a": {"union": {}}}}`, err: loader.ErrUnsupportedType},
		{doc: `{"types": {"a": {}}}`, err: loader.ErrUnsupportedType},
		{doc: `{"types": {"a": 5}}`, err: loader.ErrUnsupportedType},
		{doc: `{"types": {"a": {"struct": 5}}}`, err: loader.ErrNotObject},
		{doc: `{"types": {"a": {"struct": {"members": {"b": {"type": true}}}}}}`, err: loader.ErrUnsupportedType},
	}

	for _, tc := range tests {
		sch := schema.NewSchema()
		err := loader.NewLoader(sch, nil).Load(strings.NewReader(tc.doc), loader.FormatJSON)
		test.ExpectSuccess(t, errors.Is(err, tc.err), tc.doc, err)
	}
}

func TestEmptyDocument(t *testing.T) {
	sch := load(t, `{}`, loader.FormatJSON)
	test.ExpectEquality(t, sch.Len(), 0)

	sch = load(t, `{"types": null, "variables": null}`, loader.FormatJSON)
	test.ExpectEquality(t, sch.Len(), 0)
}

func TestProgressiveRegistration(t *testing.T) {
	sch := schema.NewSchema()
	err := loader.NewLoader(sch, nil).Load(strings.NewReader(`{"types": {
		"a": "uint8",
		"b": {"union": {}},
		"c": "uint8"
	}}`), loader.FormatJSON)
	test.ExpectFailure(t, err)

	// types before the failure are added but none after it
	test.ExpectSuccess(t, sch.Has("a"))
	test.ExpectFailure(t, sch.Has("b"))
	test.ExpectFailure(t, sch.Has("c"))
}

func TestStrict(t *testing.T) {
	const doc = `{"types": {"s": {"struct": {"members": {
		"a": {"type": "uint8"},
		"b": {"offset": 1}
	}}}}}`

	// members with missing keys are skipped
	sch := load(t, doc, loader.FormatJSON)
	typ, ok := sch.Get("s")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, len(typ.(*schema.Struct).Members), 1)

	// or fail the load in strict mode
	sch = schema.NewSchema()
	l := loader.NewLoader(sch, nil)
	l.SetStrict(true)
	err := l.Load(strings.NewReader(doc), loader.FormatJSON)
	test.ExpectSuccess(t, errors.Is(err, loader.ErrMissingKey))

	// enum values and flags members
	const enumDoc = `{"types": {"e": {"enum": {"values": {
		"a": {"name": "A"},
		"b": {"name": "B", "value": 1}
	}}}}}`
	sch = load(t, enumDoc, loader.FormatJSON)
	typ, _ = sch.Get("e")
	test.ExpectEquality(t, len(typ.(*schema.Enum).Values()), 1)

	err = l.Load(strings.NewReader(enumDoc), loader.FormatJSON)
	test.ExpectSuccess(t, errors.Is(err, loader.ErrMissingKey))

	const flagsDoc = `{"types": {"f": {"flags": {"members": {
		"a": {"name": "A", "offset": 0, "type": "boolean"}
	}}}}}`
	sch = load(t, flagsDoc, loader.FormatJSON)
	typ, _ = sch.Get("f")
	test.ExpectEquality(t, len(typ.(*schema.Flags).Members), 0)

	err = l.Load(strings.NewReader(flagsDoc), loader.FormatJSON)
	test.ExpectSuccess(t, errors.Is(err, loader.ErrMissingKey))
}

func TestNullableAndBank(t *testing.T) {
	sch := load(t, `{"types": {
		"a": {"pointer": {"type": "uint16", "nullable": {"$": "ffff"}}},
		"b": {"pointer": {"type": "uint16", "nullable": false, "bank": 126}},
		"c": {"pointer": {"type": "uint16", "bank": "other"}},
		"d": null
	}}`, loader.FormatJSON)

	typ, _ := sch.Get("a")
	p := typ.(*schema.Pointer)
	test.ExpectSuccess(t, p.Nullable)
	test.ExpectEquality(t, p.NullValue, int64(0xffff))
	test.ExpectEquality(t, p.BankPolicy, schema.BankNone)

	typ, _ = sch.Get("b")
	p = typ.(*schema.Pointer)
	test.ExpectFailure(t, p.Nullable)
	test.ExpectEquality(t, p.BankPolicy, schema.BankFixed)
	test.ExpectEquality(t, p.Bank, uint8(0x7e))

	// unsupported bank values are ignored
	typ, _ = sch.Get("c")
	test.ExpectEquality(t, typ.(*schema.Pointer).BankPolicy, schema.BankNone)

	typ, _ = sch.Get("d")
	test.ExpectEquality(t, typ.TypeName(), schema.NameUnknown)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	fn := filepath.Join(dir, "game.yaml")
	test.DemandSuccess(t, os.WriteFile(fn, []byte(yamlDocument), 0644))
	test.ExpectEquality(t, loader.FormatFromFilename(fn), loader.FormatYAML)
	test.ExpectEquality(t, loader.FormatFromFilename("game.JSON"), loader.FormatJSON)
	test.ExpectEquality(t, loader.FormatFromFilename("game.yml"), loader.FormatYAML)

	sch := schema.NewSchema()
	test.ExpectSuccess(t, loader.NewLoader(sch, nil).LoadFile(fn))
	test.ExpectSuccess(t, sch.Has("actor"))

	err := loader.NewLoader(sch, nil).LoadFile(filepath.Join(dir, "missing.json"))
	test.ExpectSuccess(t, errors.Is(err, os.ErrNotExist))
}

func TestPreferences(t *testing.T) {
	t.Chdir(t.TempDir())

	p, err := loader.NewPreferences()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.ListMax.Value(), 16)
	test.ExpectEquality(t, p.LinkedListMax.Value(), 16)
	test.ExpectFailure(t, p.Strict.Value())

	test.ExpectFailure(t, p.ListMax.Set(0))
	test.ExpectSuccess(t, p.ListMax.Set(4))
	test.ExpectSuccess(t, p.Strict.Set(true))

	sch := schema.NewSchema()
	err = loader.NewLoader(sch, p).Load(strings.NewReader(`{"types": {
		"l": {"list": {"type": "uint8", "length": 10}},
		"s": {"struct": {"members": {"a": {}}}}
	}}`), loader.FormatJSON)
	test.ExpectSuccess(t, errors.Is(err, loader.ErrMissingKey))

	typ, ok := sch.Get("l")
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, typ.(*schema.List).MaxLength, uint32(4))
}
