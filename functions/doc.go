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
Package functions provides the scalar function registry used by compiled
predicates.

A Function carries its name, argument count bounds, optional aliases and
the static signatures the predicate compiler type-checks calls against.
Names are case-insensitive.

# Function Types

	TypeMath        - ABS, SQRT, CEIL/CEILING, FLOOR, ROUND
	TypeString      - UPPER/UCASE, LOWER/LCASE, LENGTH/LEN, TRIM, CONCAT, SUBSTRING/SUBSTR
	TypePredicate   - LIKE matching with and without an ESCAPE character
	TypeConversion  - CAST_<TYPE> and TRY_CAST_<TYPE> for BOOLEAN, INTEGER, BIGINT,
	                  DOUBLE, STRING and TIMESTAMP
	TypeCustom      - user-defined functions

A NULL argument makes every builtin return an error; TRY_CAST returns NULL
when the conversion fails.

# Custom Function Registration

	err := functions.RegisterCustomFunction(
		"fahrenheit_to_celsius",
		functions.TypeCustom,
		"conversion",
		"Convert Fahrenheit to Celsius",
		1, 1,
		func(args []any) (any, error) {
			f, err := cast.ToFloat64E(args[0])
			if err != nil {
				return nil, err
			}
			return (f - 32) * 5 / 9, nil
		},
		new(func(float64) float64),
	)

The global registry returned by Default holds the builtins. NewBuiltinRegistry
creates an isolated copy for callers that register their own functions, and
ExprOptions exposes a registry to the expression compiler.
*/
package functions
