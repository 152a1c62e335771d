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

/*
Package types defines the schema, row and configuration types shared by
the formatter, the compiler and the query logger.

# Schema

A Schema is an ordered list of named, typed fields. Predicates address
row values by schema position, so the field order of a schema must match
the order of the values in every row evaluated against it.

	schema, err := types.ParseSchema("deviceId STRING, temperature DOUBLE, ts TIMESTAMP")
	i, ok := schema.FieldIndex("temperature") // 1, true

# Rows

Row is the read-only view used at evaluation time. Values is the slice
implementation. Rows carry the native Go type of each field type:

	BOOLEAN   bool
	INTEGER   int
	BIGINT    int64
	DOUBLE    float64 (DECIMAL too)
	STRING    string
	BYTES     []byte
	TIMESTAMP time.Time
	ARRAY     []any
	MAP       map[string]any (STRUCT too)

Coerce and CoerceRow convert loosely typed input such as decoded JSON.

# Configuration

Config groups the formatter, compiler and query log settings. NewConfig
returns the defaults; ParseConfig and LoadConfig decode YAML or JSON on
top of them.

	cfg, err := types.LoadConfig("sqlexpr.yaml")
*/
package types
