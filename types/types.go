/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package types

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// Type is the SQL type of a schema field.
type Type int

const (
	// Unknown is the zero value and never appears in a valid schema
	Unknown Type = iota
	Boolean
	Integer
	BigInt
	Double
	Decimal
	String
	Bytes
	Timestamp
	Array
	Map
	Struct
)

var typeNames = map[Type]string{
	Unknown:   "UNKNOWN",
	Boolean:   "BOOLEAN",
	Integer:   "INTEGER",
	BigInt:    "BIGINT",
	Double:    "DOUBLE",
	Decimal:   "DECIMAL",
	String:    "STRING",
	Bytes:     "BYTES",
	Timestamp: "TIMESTAMP",
	Array:     "ARRAY",
	Map:       "MAP",
	Struct:    "STRUCT",
}

// aliases, matched upper case
var typeAliases = map[string]Type{
	"BOOL":      Boolean,
	"BOOLEAN":   Boolean,
	"INT":       Integer,
	"INTEGER":   Integer,
	"BIGINT":    BigInt,
	"LONG":      BigInt,
	"DOUBLE":    Double,
	"FLOAT":     Double,
	"REAL":      Double,
	"DECIMAL":   Decimal,
	"NUMERIC":   Decimal,
	"STRING":    String,
	"VARCHAR":   String,
	"CHAR":      String,
	"TEXT":      String,
	"BYTES":     Bytes,
	"VARBINARY": Bytes,
	"BINARY":    Bytes,
	"TIMESTAMP": Timestamp,
	"ARRAY":     Array,
	"MAP":       Map,
	"STRUCT":    Struct,
}

// String returns the canonical SQL name of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// NativeType returns the Go type that rows carry for a field of this type.
func (t Type) NativeType() reflect.Type {
	switch t {
	case Boolean:
		return reflect.TypeOf(false)
	case Integer:
		return reflect.TypeOf(int(0))
	case BigInt:
		return reflect.TypeOf(int64(0))
	case Double, Decimal:
		return reflect.TypeOf(float64(0))
	case String:
		return reflect.TypeOf("")
	case Bytes:
		return reflect.TypeOf([]byte(nil))
	case Timestamp:
		return reflect.TypeOf(time.Time{})
	case Array:
		return reflect.TypeOf([]any(nil))
	case Map, Struct:
		return reflect.TypeOf(map[string]any(nil))
	default:
		return nil
	}
}

// Zero returns a zero value of the native type. The compiler uses it to
// declare the static type of a parameter.
func (t Type) Zero() any {
	switch t {
	case Boolean:
		return false
	case Integer:
		return 0
	case BigInt:
		return int64(0)
	case Double, Decimal:
		return float64(0)
	case String:
		return ""
	case Bytes:
		return []byte{}
	case Timestamp:
		return time.Time{}
	case Array:
		return []any{}
	case Map, Struct:
		return map[string]any{}
	default:
		return nil
	}
}

// ParseType parses a SQL type name. Parameters and element types
// (`DECIMAL(10, 2)`, `ARRAY<INT>`) are accepted and ignored.
func ParseType(name string) (Type, error) {
	base := strings.ToUpper(strings.TrimSpace(name))
	if i := strings.IndexAny(base, "(<"); i >= 0 {
		base = strings.TrimSpace(base[:i])
	}
	if t, ok := typeAliases[base]; ok {
		return t, nil
	}
	return Unknown, fmt.Errorf("unknown type: %s", name)
}

// MarshalText encodes the type by its SQL name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText accepts any name ParseType accepts.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
