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

// Package loader creates the types of a schema.Schema from a schema document.
//
// A schema document is written in JSON or YAML. The top level is an object
// with two optional keys:
//
//	types      an object of named type definitions
//	variables  an object of struct members, added to the schema as the
//	           global variables struct
//
// A type definition is one of: a string, which names a primitive type or
// another type in the schema; null, which is the unknown type; or an object
// with a single key naming the variant of the type. For example:
//
//	{
//	  "types": {
//	    "state": {"enum": {"bits": 8, "values": {
//	      "idle": {"name": "Idle", "value": 0},
//	      "walk": {"name": "Walking", "value": 1}
//	    }}},
//	    "actor": {"struct": {"bytes": 4, "members": {
//	      "x": {"type": "uint16"},
//	      "state": {"offset": 2, "type": "state"},
//	      "next": {"offset": 3, "type": {"pointer": {"type": "uint8", "bank": "same"}}}
//	    }}}
//	  },
//	  "variables": {
//	    "player": {"offset": {"address": {"$": "7e0100"}}, "type": "actor"}
//	  }
//	}
//
// Numbers are either integers or an object with a single "$" key holding a
// hexadecimal string. The order of keys in the document is preserved. The
// members of a struct are resolved in the order they are written.
package loader
