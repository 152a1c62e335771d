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

	"github.com/spf13/cast"
)

// Row is one record of a stream, addressed by schema position.
type Row interface {
	// Value returns the value at the schema index i. A SQL NULL is nil.
	Value(i int) any
	// Len returns the number of values in the row.
	Len() int
}

// Values is the plain slice implementation of Row.
type Values []any

func (v Values) Value(i int) any {
	return v[i]
}

func (v Values) Len() int {
	return len(v)
}

// Coerce converts a loosely typed value (decoded JSON, CLI input) into the
// native Go type of t. nil stays nil.
func Coerce(t Type, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	var (
		out any
		err error
	)
	switch t {
	case Boolean:
		out, err = cast.ToBoolE(v)
	case Integer:
		out, err = cast.ToIntE(v)
	case BigInt:
		out, err = cast.ToInt64E(v)
	case Double, Decimal:
		out, err = cast.ToFloat64E(v)
	case String:
		out, err = cast.ToStringE(v)
	case Bytes:
		switch b := v.(type) {
		case []byte:
			out = b
		default:
			var s string
			s, err = cast.ToStringE(v)
			out = []byte(s)
		}
	case Timestamp:
		out, err = cast.ToTimeE(v)
	case Array:
		out, err = cast.ToSliceE(v)
	case Map, Struct:
		out, err = cast.ToStringMapE(v)
	default:
		return nil, fmt.Errorf("cannot coerce to %s", t)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot coerce %v (%T) to %s: %w", v, v, t, err)
	}
	return out, nil
}

// CoerceRow converts raw values positionally against the schema.
func CoerceRow(schema *Schema, raw []any) (Values, error) {
	if len(raw) != schema.Len() {
		return nil, fmt.Errorf("row has %d values, schema has %d fields", len(raw), schema.Len())
	}
	row := make(Values, len(raw))
	for i, v := range raw {
		f := schema.Field(i)
		c, err := Coerce(f.Type, v)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		row[i] = c
	}
	return row, nil
}
