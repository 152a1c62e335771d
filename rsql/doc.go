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
Package rsql provides the SQL expression tree of sqlexpr together with its
two renderings: canonical SQL text and executable expr-lang source.

# Expression Tree

Expression is a closed set of node types. Every node can print itself and
list its children, and every node has an execution rendering, so adding a
node type without both renderings does not compile.

	// Literals
	BooleanLiteral, StringLiteral, LongLiteral, DoubleLiteral, DecimalLiteral,
	BinaryLiteral, NullLiteral, TimeLiteral, TimestampLiteral,
	IntervalLiteral, GenericLiteral

	// References and operators
	QualifiedNameReference, FieldReference, ArithmeticUnary, ArithmeticBinary,
	Comparison, LogicalBinary, Not, Like, Between, InPredicate, InList,
	IsNull, IsNotNull, Dereference, Subscript

	// Structural forms
	Row, ArrayConstructor, SearchedCase, SimpleCase, Coalesce, NullIf, If,
	Try, Cast, Lambda, FunctionCall, AtTimeZone, CurrentTime, Extract,
	Subquery, Exists, AllColumns

# Canonical Text

The Printer renders fully parenthesized, re-parseable SQL:

	e, _ := rsql.ParseExpression("a > 3 AND b LIKE 'x%'")
	rsql.FormatExpression(e) // ((a > 3) AND (b LIKE 'x%'))

Identifiers are quoted only when needed (reserved words, special
characters). An Anonymizer plugged into the Printer rewrites identifiers
and literals during printing; the querylog package uses it.

# Execution Rendering

Codegen renders an expression as expr-lang source, using a Resolver to
name column references and FunctionSymbol to name SQL functions:

	src, err := rsql.Codegen(e, resolve) // ((p_a > 3) && sql_like(p_b, "x%"))

Constructs without an executable form return an *UnsupportedError.

# Parsing

ParseExpression accepts the canonical text plus ordinary SQL operator
precedence. Errors are *ParseError values with line and column.
*/
package rsql
