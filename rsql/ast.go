/*
 * Copyright 2024 The RuleGo Authors.
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

// ast.go defines the expression tree and its traversal.

package rsql

import "strings"

// Node is implemented by every tree node.
type Node interface {
	// Format writes the canonical SQL text of the node.
	Format(p *Printer)
}

// Expression is the closed set of SQL expression variants. The unexported
// codegen method seals the set: a variant without a display rendering or an
// execution rendering does not compile.
type Expression interface {
	Node
	// Children returns the direct sub-expressions in source order.
	Children() []Expression
	codegen(w *codeWriter) error
}

// Statement is a full SQL statement embedded by a subquery or EXISTS. The
// statement collaborator implements it and renders itself through the same
// Printer, so identifier policy and anonymization apply inside subqueries.
type Statement interface {
	Node
	statementNode()
}

// RawStatement is a statement kept as verbatim SQL text. The expression
// parser produces it for embedded subqueries.
type RawStatement struct {
	SQL string
}

// Format writes the text verbatim. An Anonymizer sees the whole text as
// one LiteralStatement.
func (s *RawStatement) Format(p *Printer) {
	p.literal(LiteralStatement, s.SQL)
}

func (s *RawStatement) statementNode() {}

// QualifiedName is a dotted name such as `t.col` or `db.fn`.
type QualifiedName []string

// NewQualifiedName splits nothing; each argument is one part.
func NewQualifiedName(parts ...string) QualifiedName {
	return QualifiedName(parts)
}

// Suffix returns the last part.
func (n QualifiedName) Suffix() string {
	if len(n) == 0 {
		return ""
	}
	return n[len(n)-1]
}

// String joins the parts with dots, without quoting.
func (n QualifiedName) String() string {
	return strings.Join(n, ".")
}

func children(es ...Expression) []Expression {
	out := make([]Expression, 0, len(es))
	for _, e := range es {
		if e != nil {
			out = append(out, e)
		}
	}
	return out
}

// Walk visits e and its descendants depth-first in pre-order. Returning
// false from fn skips the children of that node.
func Walk(e Expression, fn func(Expression) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range e.Children() {
		Walk(c, fn)
	}
}
