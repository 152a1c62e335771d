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
	"strings"
)

// Field is one named, typed column of a schema.
type Field struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
}

func (f Field) String() string {
	return f.Name + " " + f.Type.String()
}

// Schema is an ordered, read-only list of fields with positional lookup.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema. Field names must be non-empty and unique.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("schema field %d has no name", i)
		}
		if f.Type == Unknown {
			return nil, fmt.Errorf("schema field %s has no type", f.Name)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("duplicate schema field: %s", f.Name)
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseSchema parses a compact schema description such as
// "a INT, b STRING" or "a:INT,b:STRING".
func ParseSchema(text string) (*Schema, error) {
	var fields []Field
	for _, part := range splitTopLevel(text) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var name, typ string
		if i := strings.Index(part, ":"); i >= 0 {
			name, typ = part[:i], part[i+1:]
		} else if i := strings.IndexAny(part, " \t"); i >= 0 {
			name, typ = part[:i], part[i+1:]
		} else {
			return nil, fmt.Errorf("invalid schema field: %q", part)
		}
		t, err := ParseType(typ)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: strings.TrimSpace(name), Type: t})
	}
	return NewSchema(fields...)
}

// splitTopLevel splits on commas that are not inside () or <>.
func splitTopLevel(text string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(', '<':
			depth++
		case ')', '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, text[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, text[start:])
}

// Len returns the number of fields.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Field returns the field at position i.
func (s *Schema) Field(i int) Field {
	return s.fields[i]
}

// Fields returns a copy of the field list.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// FieldIndex returns the position of the named field.
func (s *Schema) FieldIndex(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// String renders the schema as "name TYPE, ..." and is stable for a given
// field list.
func (s *Schema) String() string {
	var b strings.Builder
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.String())
	}
	return b.String()
}
