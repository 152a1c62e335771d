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

package rsql

import (
	"bytes"
	"strings"
)

// Anonymizer rewrites identifiers and literals while a tree is printed.
// Function names and keywords are never passed to it.
type Anonymizer interface {
	Identifier(name string) string
	Literal(kind LiteralKind, text string) string
}

// Printer accumulates canonical SQL text.
type Printer struct {
	buf bytes.Buffer
	// Unmangle quotes identifiers that would not re-parse as bare names.
	Unmangle bool
	// Anonymizer, when set, rewrites identifiers and literals.
	Anonymizer Anonymizer
}

// NewPrinter creates a printer with the given identifier policy.
func NewPrinter(unmangle bool) *Printer {
	return &Printer{Unmangle: unmangle}
}

// FormatExpression renders e with identifier quoting enabled.
func FormatExpression(e Expression) string {
	return FormatExpressionWith(e, true)
}

// FormatExpressionWith renders e with the given identifier policy.
func FormatExpressionWith(e Expression, unmangle bool) string {
	p := NewPrinter(unmangle)
	p.Expression(e)
	return p.String()
}

// FormatNode renders any node (expression, window, sort item, statement).
func FormatNode(n Node) string {
	p := NewPrinter(true)
	n.Format(p)
	return p.String()
}

// FormatSortItems renders a comma separated ORDER BY list.
func FormatSortItems(items []*SortItem, unmangle bool) string {
	p := NewPrinter(unmangle)
	p.sortItems(items)
	return p.String()
}

// FormatGroupBy renders a comma separated GROUP BY element list.
func FormatGroupBy(elements []GroupingElement) string {
	p := NewPrinter(true)
	for i, g := range elements {
		if i > 0 {
			p.WriteString(", ")
		}
		g.Format(p)
	}
	return p.String()
}

// String returns the text printed so far.
func (p *Printer) String() string {
	return p.buf.String()
}

// WriteString appends raw text. Statement implementations use it.
func (p *Printer) WriteString(s string) {
	p.buf.WriteString(s)
}

// Expression prints a sub-expression.
func (p *Printer) Expression(e Expression) {
	if e == nil {
		panic(&UnsupportedError{Construct: "<nil>", Reason: "missing expression"})
	}
	e.Format(p)
}

// Identifier prints one identifier under the printer's quoting policy.
func (p *Printer) Identifier(name string) {
	p.identifier(name)
}

// sub renders e with the same settings into a separate string.
func (p *Printer) sub(e Expression) string {
	s := &Printer{Unmangle: p.Unmangle, Anonymizer: p.Anonymizer}
	s.Expression(e)
	return s.String()
}

func (p *Printer) literal(kind LiteralKind, text string) {
	if p.Anonymizer != nil {
		text = p.Anonymizer.Literal(kind, text)
	}
	p.buf.WriteString(text)
}

func (p *Printer) identifier(name string) {
	if p.Anonymizer != nil {
		name = p.Anonymizer.Identifier(name)
	}
	p.buf.WriteString(p.quote(name))
}

// qualifiedName prints a dotted name. Column names go through the
// anonymizer as a whole; function names never do.
func (p *Printer) qualifiedName(name QualifiedName, column bool) {
	if column && p.Anonymizer != nil {
		p.buf.WriteString(p.quote(p.Anonymizer.Identifier(name.String())))
		return
	}
	for i, part := range name {
		if i > 0 {
			p.buf.WriteByte('.')
		}
		p.buf.WriteString(p.quote(part))
	}
}

func (p *Printer) quote(name string) string {
	if !p.Unmangle || !needsQuotes(name) {
		return name
	}
	return QuoteIdentifier(name)
}

func (p *Printer) binary(op string, left, right Expression) {
	p.WriteString("(")
	p.Expression(left)
	p.WriteString(" " + op + " ")
	p.Expression(right)
	p.WriteString(")")
}

func (p *Printer) join(es []Expression, sep string) {
	for i, e := range es {
		if i > 0 {
			p.WriteString(sep)
		}
		p.Expression(e)
	}
}

func (p *Printer) sortItems(items []*SortItem) {
	for i, s := range items {
		if i > 0 {
			p.WriteString(", ")
		}
		s.Format(p)
	}
}

func (p *Printer) caseTail(whens []*WhenClause, def Expression) {
	for _, w := range whens {
		p.WriteString(" ")
		w.Format(p)
	}
	if def != nil {
		p.WriteString(" ELSE ")
		p.Expression(def)
	}
	p.WriteString(" END)")
}

// postfixBase prints the operand of `.field` or `[i]`, parenthesized when
// the bare text would bind differently on re-parse.
func (p *Printer) postfixBase(base Expression, wrapNames bool) {
	wrap := false
	switch base.(type) {
	case *ArithmeticUnary, *AtTimeZone, *Lambda, *LongLiteral, *DoubleLiteral, *IntervalLiteral:
		wrap = true
	case *QualifiedNameReference:
		wrap = wrapNames
	}
	if wrap {
		p.WriteString("(")
		p.Expression(base)
		p.WriteString(")")
		return
	}
	p.Expression(base)
}

// distinct renders columns and drops textual duplicates, keeping order.
func (p *Printer) distinct(columns []Expression) []string {
	seen := make(map[string]bool, len(columns))
	out := make([]string, 0, len(columns))
	for _, c := range columns {
		s := p.sub(c)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func (p *Printer) groupingSet(columns []string) {
	p.WriteString("(" + strings.Join(columns, ", ") + ")")
}

// QuoteIdentifier double-quotes an identifier, doubling embedded quotes.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func needsQuotes(name string) bool {
	if name == "" {
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if isLetter(c) || (i > 0 && isDigit(c)) {
			continue
		}
		return true
	}
	return IsReserved(name)
}

// reserved words are the keywords the expression grammar gives meaning to;
// an identifier spelled like one must be quoted to survive a re-parse.
var reserved = map[string]bool{
	"ALL": true, "AND": true, "ARRAY": true, "AS": true, "ASC": true, "AT": true,
	"BETWEEN": true, "BY": true, "CASE": true, "CAST": true, "COALESCE": true,
	"CUBE": true, "CURRENT": true, "CURRENT_DATE": true, "CURRENT_TIME": true,
	"CURRENT_TIMESTAMP": true, "DECIMAL": true, "DESC": true, "DISTINCT": true,
	"ELSE": true, "END": true, "ESCAPE": true, "EXISTS": true, "EXTRACT": true,
	"FALSE": true, "FIRST": true, "FOLLOWING": true, "FROM": true, "GROUP": true,
	"GROUPING": true, "IF": true, "IN": true, "INTERVAL": true, "IS": true,
	"LAST": true, "LIKE": true, "LOCALTIME": true, "LOCALTIMESTAMP": true,
	"NOT": true, "NULL": true, "NULLIF": true, "NULLS": true, "OR": true,
	"ORDER": true, "OVER": true, "PARTITION": true, "PRECEDING": true,
	"RANGE": true, "ROLLUP": true, "ROW": true, "ROWS": true, "SELECT": true,
	"SETS": true, "THEN": true, "TIME": true, "TIMESTAMP": true, "TO": true,
	"TRUE": true, "TRY": true, "TRY_CAST": true, "UNBOUNDED": true,
	"WHEN": true, "WHERE": true, "WITH": true, "ZONE": true,
}

// IsReserved reports whether name is a keyword of the expression grammar.
func IsReserved(name string) bool {
	return reserved[strings.ToUpper(name)]
}
