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

// Row is the ROW (a, b) constructor.
type Row struct {
	Items []Expression
}

func (e *Row) Format(p *Printer) {
	p.WriteString("ROW (")
	p.join(e.Items, ", ")
	p.WriteString(")")
}

func (e *Row) Children() []Expression { return children(e.Items...) }

// ArrayConstructor is ARRAY[a,b].
type ArrayConstructor struct {
	Values []Expression
}

func (e *ArrayConstructor) Format(p *Printer) {
	p.WriteString("ARRAY[")
	p.join(e.Values, ",")
	p.WriteString("]")
}

func (e *ArrayConstructor) Children() []Expression { return children(e.Values...) }

// WhenClause is one WHEN ... THEN ... arm of a CASE.
type WhenClause struct {
	Operand Expression
	Result  Expression
}

func (w *WhenClause) Format(p *Printer) {
	p.WriteString("WHEN ")
	p.Expression(w.Operand)
	p.WriteString(" THEN ")
	p.Expression(w.Result)
}

// SearchedCase is CASE WHEN cond THEN r ... [ELSE d] END. Default is nil
// when there is no ELSE.
type SearchedCase struct {
	WhenClauses []*WhenClause
	Default     Expression
}

func (e *SearchedCase) Format(p *Printer) {
	p.WriteString("(CASE")
	p.caseTail(e.WhenClauses, e.Default)
}

func (e *SearchedCase) Children() []Expression {
	return caseChildren(nil, e.WhenClauses, e.Default)
}

// SimpleCase is CASE operand WHEN v THEN r ... [ELSE d] END.
type SimpleCase struct {
	Operand     Expression
	WhenClauses []*WhenClause
	Default     Expression
}

func (e *SimpleCase) Format(p *Printer) {
	p.WriteString("(CASE ")
	p.Expression(e.Operand)
	p.caseTail(e.WhenClauses, e.Default)
}

func (e *SimpleCase) Children() []Expression {
	return caseChildren(e.Operand, e.WhenClauses, e.Default)
}

func caseChildren(operand Expression, whens []*WhenClause, def Expression) []Expression {
	out := children(operand)
	for _, w := range whens {
		out = append(out, children(w.Operand, w.Result)...)
	}
	return append(out, children(def)...)
}

// Coalesce is COALESCE(a, b, ...).
type Coalesce struct {
	Operands []Expression
}

func (e *Coalesce) Format(p *Printer) {
	p.WriteString("COALESCE(")
	p.join(e.Operands, ", ")
	p.WriteString(")")
}

func (e *Coalesce) Children() []Expression { return children(e.Operands...) }

// NullIf is NULLIF(a, b).
type NullIf struct {
	First  Expression
	Second Expression
}

func (e *NullIf) Format(p *Printer) {
	p.WriteString("NULLIF(")
	p.Expression(e.First)
	p.WriteString(", ")
	p.Expression(e.Second)
	p.WriteString(")")
}

func (e *NullIf) Children() []Expression { return children(e.First, e.Second) }

// If is IF(cond, t[, f]). FalseValue is nil when omitted.
type If struct {
	Condition  Expression
	TrueValue  Expression
	FalseValue Expression
}

func (e *If) Format(p *Printer) {
	p.WriteString("IF(")
	p.Expression(e.Condition)
	p.WriteString(", ")
	p.Expression(e.TrueValue)
	if e.FalseValue != nil {
		p.WriteString(", ")
		p.Expression(e.FalseValue)
	}
	p.WriteString(")")
}

func (e *If) Children() []Expression { return children(e.Condition, e.TrueValue, e.FalseValue) }

// Try is TRY(x).
type Try struct {
	Inner Expression
}

func (e *Try) Format(p *Printer) {
	p.WriteString("TRY(")
	p.Expression(e.Inner)
	p.WriteString(")")
}

func (e *Try) Children() []Expression { return children(e.Inner) }

// Cast is CAST(x AS T), or TRY_CAST when Safe is set. Type is the SQL type
// text as written.
type Cast struct {
	Expression Expression
	Type       string
	Safe       bool
}

func (e *Cast) Format(p *Printer) {
	if e.Safe {
		p.WriteString("TRY_CAST(")
	} else {
		p.WriteString("CAST(")
	}
	p.Expression(e.Expression)
	p.WriteString(" AS ")
	p.WriteString(e.Type)
	p.WriteString(")")
}

func (e *Cast) Children() []Expression { return children(e.Expression) }

// Lambda is (x, y) -> body.
type Lambda struct {
	Arguments []string
	Body      Expression
}

func (e *Lambda) Format(p *Printer) {
	p.WriteString("(")
	for i, arg := range e.Arguments {
		if i > 0 {
			p.WriteString(", ")
		}
		p.identifier(arg)
	}
	p.WriteString(") -> ")
	p.Expression(e.Body)
}

func (e *Lambda) Children() []Expression { return children(e.Body) }

// FunctionCall is name([DISTINCT] args) [OVER (window)].
type FunctionCall struct {
	Name      QualifiedName
	Arguments []Expression
	Distinct  bool
	Window    *Window
}

func (e *FunctionCall) Format(p *Printer) {
	p.qualifiedName(e.Name, false)
	p.WriteString("(")
	if e.Distinct {
		p.WriteString("DISTINCT ")
	}
	if len(e.Arguments) == 0 && strings.EqualFold(e.Name.Suffix(), "count") {
		p.WriteString("*")
	} else {
		p.join(e.Arguments, ", ")
	}
	p.WriteString(")")
	if e.Window != nil {
		p.WriteString(" OVER ")
		e.Window.Format(p)
	}
}

func (e *FunctionCall) Children() []Expression {
	out := children(e.Arguments...)
	if e.Window != nil {
		out = append(out, e.Window.expressions()...)
	}
	return out
}

// AtTimeZone is v AT TIME ZONE tz.
type AtTimeZone struct {
	Value    Expression
	TimeZone Expression
}

func (e *AtTimeZone) Format(p *Printer) {
	p.postfixBase(e.Value, false)
	p.WriteString(" AT TIME ZONE ")
	p.postfixBase(e.TimeZone, false)
}

func (e *AtTimeZone) Children() []Expression { return children(e.Value, e.TimeZone) }

// CurrentTimeType names the CURRENT_* / LOCAL* niladic functions.
type CurrentTimeType string

const (
	CurrentDate      CurrentTimeType = "CURRENT_DATE"
	CurrentTimeOfDay CurrentTimeType = "CURRENT_TIME"
	CurrentTimestamp CurrentTimeType = "CURRENT_TIMESTAMP"
	LocalTime        CurrentTimeType = "LOCALTIME"
	LocalTimestamp   CurrentTimeType = "LOCALTIMESTAMP"
)

// CurrentTime is CURRENT_TIMESTAMP[(precision)] and friends.
type CurrentTime struct {
	Type      CurrentTimeType
	Precision *int
}

func (e *CurrentTime) Format(p *Printer) {
	p.WriteString(string(e.Type))
	if e.Precision != nil {
		p.WriteString("(" + strconv.Itoa(*e.Precision) + ")")
	}
}

func (e *CurrentTime) Children() []Expression { return nil }

// Extract is EXTRACT(field FROM x).
type Extract struct {
	Field      string
	Expression Expression
}

func (e *Extract) Format(p *Printer) {
	p.WriteString("EXTRACT(" + e.Field + " FROM ")
	p.Expression(e.Expression)
	p.WriteString(")")
}

func (e *Extract) Children() []Expression { return children(e.Expression) }

// Subquery embeds a statement as a value: (SELECT ...).
type Subquery struct {
	Query Statement
}

func (e *Subquery) Format(p *Printer) {
	p.WriteString("(")
	e.Query.Format(p)
	p.WriteString(")")
}

// Children is empty: the embedded statement is opaque to expression walks.
func (e *Subquery) Children() []Expression { return nil }

// Exists is (EXISTS (SELECT ...)).
type Exists struct {
	Query Statement
}

func (e *Exists) Format(p *Printer) {
	p.WriteString("(EXISTS (")
	e.Query.Format(p)
	p.WriteString("))")
}

func (e *Exists) Children() []Expression { return nil }

// AllColumns is `*` or `prefix.*`. It only appears as a function argument,
// as in count(t.*).
type AllColumns struct {
	Prefix QualifiedName
}

func (e *AllColumns) Format(p *Printer) {
	if len(e.Prefix) > 0 {
		p.qualifiedName(e.Prefix, true)
		p.WriteString(".")
	}
	p.WriteString("*")
}

func (e *AllColumns) Children() []Expression { return nil }
