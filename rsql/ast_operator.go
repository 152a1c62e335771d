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
	"strconv"
	"strings"
)

// QualifiedNameReference is a column reference such as `a` or `t.a`.
type QualifiedNameReference struct {
	Name QualifiedName
}

func (r *QualifiedNameReference) Format(p *Printer) {
	p.qualifiedName(r.Name, true)
}

func (r *QualifiedNameReference) Children() []Expression { return nil }

// FieldReference addresses an input column by position. It is produced by
// planners, never by the parser.
type FieldReference struct {
	Index int
}

// Format writes `:input(n)`; the colon keeps the text from parsing as SQL.
func (r *FieldReference) Format(p *Printer) {
	p.WriteString(":input(" + strconv.Itoa(r.Index) + ")")
}

func (r *FieldReference) Children() []Expression { return nil }

// Sign of a unary arithmetic expression.
type Sign int

const (
	SignPlus Sign = iota
	SignMinus
)

// ArithmeticUnary is +x or -x.
type ArithmeticUnary struct {
	Sign  Sign
	Value Expression
}

func (e *ArithmeticUnary) Format(p *Printer) {
	value := p.sub(e.Value)
	switch e.Sign {
	case SignMinus:
		// "--" would start a line comment
		if strings.HasPrefix(value, "-") {
			p.WriteString("- ")
		} else {
			p.WriteString("-")
		}
	default:
		p.WriteString("+")
	}
	p.WriteString(value)
}

func (e *ArithmeticUnary) Children() []Expression { return children(e.Value) }

// ArithmeticOperator is a binary arithmetic operator.
type ArithmeticOperator string

const (
	OpAdd      ArithmeticOperator = "+"
	OpSubtract ArithmeticOperator = "-"
	OpMultiply ArithmeticOperator = "*"
	OpDivide   ArithmeticOperator = "/"
	OpModulus  ArithmeticOperator = "%"
)

// ArithmeticBinary is (l op r).
type ArithmeticBinary struct {
	Operator ArithmeticOperator
	Left     Expression
	Right    Expression
}

func (e *ArithmeticBinary) Format(p *Printer) {
	p.binary(string(e.Operator), e.Left, e.Right)
}

func (e *ArithmeticBinary) Children() []Expression { return children(e.Left, e.Right) }

// ComparisonOperator is a comparison operator.
type ComparisonOperator string

const (
	OpEqual              ComparisonOperator = "="
	OpNotEqual           ComparisonOperator = "<>"
	OpLessThan           ComparisonOperator = "<"
	OpLessThanOrEqual    ComparisonOperator = "<="
	OpGreaterThan        ComparisonOperator = ">"
	OpGreaterThanOrEqual ComparisonOperator = ">="
	OpIsDistinctFrom     ComparisonOperator = "IS DISTINCT FROM"
)

// Comparison is (l op r) for a comparison operator.
type Comparison struct {
	Operator ComparisonOperator
	Left     Expression
	Right    Expression
}

func (e *Comparison) Format(p *Printer) {
	p.binary(string(e.Operator), e.Left, e.Right)
}

func (e *Comparison) Children() []Expression { return children(e.Left, e.Right) }

// LogicalOperator is AND or OR.
type LogicalOperator string

const (
	OpAnd LogicalOperator = "AND"
	OpOr  LogicalOperator = "OR"
)

// LogicalBinary is (l AND r) or (l OR r).
type LogicalBinary struct {
	Operator LogicalOperator
	Left     Expression
	Right    Expression
}

func (e *LogicalBinary) Format(p *Printer) {
	p.binary(string(e.Operator), e.Left, e.Right)
}

func (e *LogicalBinary) Children() []Expression { return children(e.Left, e.Right) }

// Not is (NOT x).
type Not struct {
	Value Expression
}

func (e *Not) Format(p *Printer) {
	p.WriteString("(NOT ")
	p.Expression(e.Value)
	p.WriteString(")")
}

func (e *Not) Children() []Expression { return children(e.Value) }

// Like is (v LIKE pattern [ESCAPE e]). Escape is nil when absent.
type Like struct {
	Value   Expression
	Pattern Expression
	Escape  Expression
}

func (e *Like) Format(p *Printer) {
	p.WriteString("(")
	p.Expression(e.Value)
	p.WriteString(" LIKE ")
	p.Expression(e.Pattern)
	if e.Escape != nil {
		p.WriteString(" ESCAPE ")
		p.Expression(e.Escape)
	}
	p.WriteString(")")
}

func (e *Like) Children() []Expression { return children(e.Value, e.Pattern, e.Escape) }

// Between is (v BETWEEN min AND max).
type Between struct {
	Value Expression
	Min   Expression
	Max   Expression
}

func (e *Between) Format(p *Printer) {
	p.WriteString("(")
	p.Expression(e.Value)
	p.WriteString(" BETWEEN ")
	p.Expression(e.Min)
	p.WriteString(" AND ")
	p.Expression(e.Max)
	p.WriteString(")")
}

func (e *Between) Children() []Expression { return children(e.Value, e.Min, e.Max) }

// InPredicate is (v IN list). ValueList is an *InList or a *Subquery.
type InPredicate struct {
	Value     Expression
	ValueList Expression
}

func (e *InPredicate) Format(p *Printer) {
	p.WriteString("(")
	p.Expression(e.Value)
	p.WriteString(" IN ")
	p.Expression(e.ValueList)
	p.WriteString(")")
}

func (e *InPredicate) Children() []Expression { return children(e.Value, e.ValueList) }

// InList is the parenthesized value list of an IN predicate.
type InList struct {
	Values []Expression
}

func (e *InList) Format(p *Printer) {
	p.WriteString("(")
	p.join(e.Values, ", ")
	p.WriteString(")")
}

func (e *InList) Children() []Expression { return children(e.Values...) }

// IsNull is (v IS NULL).
type IsNull struct {
	Value Expression
}

func (e *IsNull) Format(p *Printer) {
	p.WriteString("(")
	p.Expression(e.Value)
	p.WriteString(" IS NULL)")
}

func (e *IsNull) Children() []Expression { return children(e.Value) }

// IsNotNull is (v IS NOT NULL).
type IsNotNull struct {
	Value Expression
}

func (e *IsNotNull) Format(p *Printer) {
	p.WriteString("(")
	p.Expression(e.Value)
	p.WriteString(" IS NOT NULL)")
}

func (e *IsNotNull) Children() []Expression { return children(e.Value) }

// Dereference is field access, base.field.
type Dereference struct {
	Base  Expression
	Field string
}

func (e *Dereference) Format(p *Printer) {
	p.postfixBase(e.Base, true)
	p.WriteString(".")
	p.identifier(e.Field)
}

func (e *Dereference) Children() []Expression { return children(e.Base) }

// Subscript is base[index].
type Subscript struct {
	Base  Expression
	Index Expression
}

func (e *Subscript) Format(p *Printer) {
	p.postfixBase(e.Base, false)
	p.WriteString("[")
	p.Expression(e.Index)
	p.WriteString("]")
}

func (e *Subscript) Children() []Expression { return children(e.Base, e.Index) }
