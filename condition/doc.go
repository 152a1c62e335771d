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
Package condition compiles boolean SQL expressions into predicates that are
evaluated once per record.

# Compilation

Compile runs in three stages at query-build time:

	1. AnalyzeReferences resolves every column the expression reads against
	   the schema and returns them deduplicated in first-occurrence order.
	2. The expression is rendered as expr-lang source in which each column
	   is a typed variable and each SQL function is a registry function.
	3. The source is syntax-checked, type-checked against the schema and
	   compiled with a boolean result type.

Every failure is a *CompileError whose Kind is UnsupportedConstruct,
UnresolvedReference, TypeMismatch or CodegenFailure:

	p, err := condition.Compile(e, schema)
	if errors.Is(err, condition.ErrUnresolvedReference) {
		...
	}

# Evaluation

A CompiledPredicate is immutable and may be shared by any number of
goroutines. Evaluate reads the referenced values from a row by position:

	ok, err := p.Evaluate(types.Values{5, "x"})

A failure while evaluating, including a NULL reaching an operator, returns
an *EvaluationError that carries the argument vector. It is never reported
as false.

# Caching

A Compiler created with WithCache reuses predicates for identical
(canonical expression, schema) pairs.
*/
package condition
