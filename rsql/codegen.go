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
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rulego/sqlexpr/types"
)

// Resolver maps a column reference to the identifier bound to it in the
// generated code. It is consulted for QualifiedNameReference,
// FieldReference and Dereference nodes.
type Resolver func(e Expression) (string, bool)

// Codegen renders e as expr-lang source. This is the execution rendering;
// it shares nothing with the display text produced by the Printer.
func Codegen(e Expression, resolve Resolver) (string, error) {
	w := &codeWriter{resolve: resolve}
	if err := w.expr(e); err != nil {
		return "", err
	}
	return w.buf.String(), nil
}

// Operator helpers called by generated code. They are not registry
// functions; the compiler installs them for every predicate, and registry
// names may not start with `_`, so the symbols cannot collide.
const (
	DivideSymbol    = "sql__divide"
	ModuloSymbol    = "sql__modulo"
	SubscriptSymbol = "sql__subscript"
)

// FunctionSymbol is the name under which a SQL function is exposed to
// generated code: `sql_` plus the lower-cased name parts joined by `_`.
func FunctionSymbol(name QualifiedName) string {
	return "sql_" + strings.ToLower(strings.Join(name, "_"))
}

type codeWriter struct {
	buf     strings.Builder
	resolve Resolver
}

func (w *codeWriter) write(parts ...string) {
	for _, s := range parts {
		w.buf.WriteString(s)
	}
}

func (w *codeWriter) expr(e Expression) error {
	if e == nil {
		return unsupported("<nil>", "missing expression")
	}
	return e.codegen(w)
}

func (w *codeWriter) list(es []Expression) error {
	for i, e := range es {
		if i > 0 {
			w.write(", ")
		}
		if err := w.expr(e); err != nil {
			return err
		}
	}
	return nil
}

func (w *codeWriter) call(symbol string, args ...Expression) error {
	w.write(symbol, "(")
	if err := w.list(args); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (w *codeWriter) infix(op string, left, right Expression) error {
	w.write("(")
	if err := w.expr(left); err != nil {
		return err
	}
	w.write(" ", op, " ")
	if err := w.expr(right); err != nil {
		return err
	}
	w.write(")")
	return nil
}

// nullable reports whether e can evaluate to NULL. Only non-null literals
// are known not to.
func nullable(e Expression) bool {
	switch e.(type) {
	case *BooleanLiteral, *StringLiteral, *LongLiteral, *DoubleLiteral, *DecimalLiteral,
		*TimestampLiteral, *IntervalLiteral, *GenericLiteral:
		return false
	}
	return true
}

func isNullLiteral(e Expression) bool {
	_, ok := e.(*NullLiteral)
	return ok
}

// compare writes `l op r` behind a nil check of every nullable operand:
// a comparison with a NULL operand is false.
func (w *codeWriter) compare(op string, left, right Expression) error {
	if isNullLiteral(left) || isNullLiteral(right) {
		w.write("false")
		return nil
	}
	var guards []Expression
	for _, e := range []Expression{left, right} {
		if nullable(e) {
			guards = append(guards, e)
		}
	}
	if len(guards) == 0 {
		return w.infix(op, left, right)
	}
	w.write("(")
	if err := w.notNil(guards...); err != nil {
		return err
	}
	if err := w.bare(op, left, right); err != nil {
		return err
	}
	w.write(")")
	return nil
}

// notNil writes `e != nil && ` for each operand.
func (w *codeWriter) notNil(es ...Expression) error {
	for _, e := range es {
		if err := w.expr(e); err != nil {
			return err
		}
		w.write(" != nil && ")
	}
	return nil
}

// bare writes `l op r` without enclosing parentheses.
func (w *codeWriter) bare(op string, left, right Expression) error {
	if err := w.expr(left); err != nil {
		return err
	}
	w.write(" ", op, " ")
	return w.expr(right)
}

// distinctFrom writes the NULL-safe inequality: two NULLs are not distinct,
// one NULL is distinct from any value.
func (w *codeWriter) distinctFrom(left, right Expression) error {
	ln, rn := nullable(left), nullable(right)
	switch {
	case isNullLiteral(left) && isNullLiteral(right):
		w.write("false")
		return nil
	case isNullLiteral(right):
		return w.infix("!=", left, right)
	case isNullLiteral(left):
		return w.infix("!=", right, left)
	case !ln && !rn:
		return w.infix("!=", left, right)
	case ln != rn:
		// only one side can be NULL
		n := left
		if rn {
			n = right
		}
		w.write("(")
		if err := w.expr(n); err != nil {
			return err
		}
		w.write(" == nil || ")
		if err := w.bare("!=", left, right); err != nil {
			return err
		}
		w.write(")")
		return nil
	}
	w.write("((")
	if err := w.expr(left); err != nil {
		return err
	}
	w.write(" == nil || ")
	if err := w.expr(right); err != nil {
		return err
	}
	w.write(" == nil) ? ((")
	if err := w.expr(left); err != nil {
		return err
	}
	w.write(" == nil) != (")
	if err := w.expr(right); err != nil {
		return err
	}
	w.write(" == nil)) : ")
	if err := w.infix("!=", left, right); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (w *codeWriter) reference(e Expression) error {
	if w.resolve != nil {
		if name, ok := w.resolve(e); ok {
			w.write(name)
			return nil
		}
	}
	return fmt.Errorf("unresolved reference %s", FormatExpression(e))
}

// ternary writes (c1 ? r1 : (c2 ? r2 : ... def)); a nil default is nil.
func (w *codeWriter) ternary(conds, results []func() error, def Expression) error {
	if len(conds) == 0 {
		if def == nil {
			w.write("nil")
			return nil
		}
		return w.expr(def)
	}
	w.write("(")
	if err := conds[0](); err != nil {
		return err
	}
	w.write(" ? ")
	if err := results[0](); err != nil {
		return err
	}
	w.write(" : ")
	if err := w.ternary(conds[1:], results[1:], def); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (l *BooleanLiteral) codegen(w *codeWriter) error {
	w.write(strconv.FormatBool(l.Value))
	return nil
}

func (l *StringLiteral) codegen(w *codeWriter) error {
	w.write(strconv.Quote(l.Value))
	return nil
}

func (l *LongLiteral) codegen(w *codeWriter) error {
	if l.Value == math.MinInt64 {
		// the positive operand of a negated literal would overflow
		w.write("(-9223372036854775807 - 1)")
		return nil
	}
	w.write(strconv.FormatInt(l.Value, 10))
	return nil
}

func (l *DoubleLiteral) codegen(w *codeWriter) error {
	s, err := codeFloat(l.Value)
	if err != nil {
		return err
	}
	w.write(s)
	return nil
}

func (l *DecimalLiteral) codegen(w *codeWriter) error {
	v, err := strconv.ParseFloat(l.Value, 64)
	if err != nil {
		return fmt.Errorf("invalid decimal literal %q: %w", l.Value, err)
	}
	s, err := codeFloat(v)
	if err != nil {
		return err
	}
	w.write(s)
	return nil
}

func codeFloat(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", unsupported("DoubleLiteral", "non-finite value")
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	if v < 0 {
		s = "(" + s + ")"
	}
	return s, nil
}

func (l *BinaryLiteral) codegen(*codeWriter) error {
	return unsupported("BinaryLiteral", "binary values are not comparable in predicates")
}

func (l *NullLiteral) codegen(w *codeWriter) error {
	w.write("nil")
	return nil
}

func (l *TimeLiteral) codegen(*codeWriter) error {
	return unsupported("TimeLiteral", "time of day values have no executable form")
}

func (l *TimestampLiteral) codegen(w *codeWriter) error {
	w.write("date(", strconv.Quote(l.Value), ")")
	return nil
}

// codegen supports single-field day-time intervals with an integral value.
func (l *IntervalLiteral) codegen(w *codeWriter) error {
	if l.EndField != "" {
		return unsupported("IntervalLiteral", "interval ranges have no executable form")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(l.Value), 10, 64)
	if err != nil {
		return unsupported("IntervalLiteral", "interval value must be an integer")
	}
	if l.Sign == IntervalNegative {
		n = -n
	}
	var unit string
	switch l.StartField {
	case IntervalDay:
		n, unit = n*24, "h"
	case IntervalHour:
		unit = "h"
	case IntervalMinute:
		unit = "m"
	case IntervalSecond:
		unit = "s"
	default:
		return unsupported("IntervalLiteral", "year-month intervals have no executable form")
	}
	w.write("duration(", strconv.Quote(strconv.FormatInt(n, 10)+unit), ")")
	return nil
}

func (l *GenericLiteral) codegen(w *codeWriter) error {
	switch strings.ToUpper(l.Type) {
	case "DATE", "TIMESTAMP":
		w.write("date(", strconv.Quote(l.Value), ")")
		return nil
	}
	target, err := castTarget(l.Type)
	if err != nil {
		return err
	}
	w.write(FunctionSymbol(QualifiedName{"cast", target}), "(", strconv.Quote(l.Value), ")")
	return nil
}

func (r *QualifiedNameReference) codegen(w *codeWriter) error {
	return w.reference(r)
}

func (r *FieldReference) codegen(w *codeWriter) error {
	return w.reference(r)
}

func (e *ArithmeticUnary) codegen(w *codeWriter) error {
	if e.Sign == SignMinus {
		w.write("(-")
	} else {
		w.write("(+")
	}
	if err := w.expr(e.Value); err != nil {
		return err
	}
	w.write(")")
	return nil
}

// codegen keeps SQL numeric semantics: integer operands divide as integers
// and `%` also accepts floating point operands.
func (e *ArithmeticBinary) codegen(w *codeWriter) error {
	switch e.Operator {
	case OpDivide:
		return w.call(DivideSymbol, e.Left, e.Right)
	case OpModulus:
		return w.call(ModuloSymbol, e.Left, e.Right)
	}
	return w.infix(string(e.Operator), e.Left, e.Right)
}

var codeComparison = map[ComparisonOperator]string{
	OpEqual:              "==",
	OpNotEqual:           "!=",
	OpLessThan:           "<",
	OpLessThanOrEqual:    "<=",
	OpGreaterThan:        ">",
	OpGreaterThanOrEqual: ">=",
}

func (e *Comparison) codegen(w *codeWriter) error {
	if e.Operator == OpIsDistinctFrom {
		return w.distinctFrom(e.Left, e.Right)
	}
	op, ok := codeComparison[e.Operator]
	if !ok {
		return unsupported("Comparison", "operator "+string(e.Operator))
	}
	return w.compare(op, e.Left, e.Right)
}

func (e *LogicalBinary) codegen(w *codeWriter) error {
	switch e.Operator {
	case OpAnd:
		return w.infix("&&", e.Left, e.Right)
	case OpOr:
		return w.infix("||", e.Left, e.Right)
	}
	return unsupported("LogicalBinary", "operator "+string(e.Operator))
}

func (e *Not) codegen(w *codeWriter) error {
	w.write("(!")
	if err := w.expr(e.Value); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (e *Like) codegen(w *codeWriter) error {
	if e.Escape != nil {
		return w.call(FunctionSymbol(QualifiedName{"like_escape"}), e.Value, e.Pattern, e.Escape)
	}
	return w.call(FunctionSymbol(QualifiedName{"like"}), e.Value, e.Pattern)
}

func (e *Between) codegen(w *codeWriter) error {
	if isNullLiteral(e.Value) || isNullLiteral(e.Min) || isNullLiteral(e.Max) {
		w.write("false")
		return nil
	}
	var guards []Expression
	for _, o := range []Expression{e.Value, e.Min, e.Max} {
		if nullable(o) {
			guards = append(guards, o)
		}
	}
	w.write("(")
	if err := w.notNil(guards...); err != nil {
		return err
	}
	if err := w.infix(">=", e.Value, e.Min); err != nil {
		return err
	}
	w.write(" && ")
	if err := w.infix("<=", e.Value, e.Max); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (e *InPredicate) codegen(w *codeWriter) error {
	if _, ok := e.ValueList.(*InList); !ok {
		return unsupported("InPredicate", "IN over a subquery")
	}
	if isNullLiteral(e.Value) {
		w.write("false")
		return nil
	}
	if !nullable(e.Value) {
		return w.infix("in", e.Value, e.ValueList)
	}
	w.write("(")
	if err := w.notNil(e.Value); err != nil {
		return err
	}
	if err := w.bare("in", e.Value, e.ValueList); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (e *InList) codegen(w *codeWriter) error {
	w.write("[")
	if err := w.list(e.Values); err != nil {
		return err
	}
	w.write("]")
	return nil
}

func (e *IsNull) codegen(w *codeWriter) error {
	return w.infix("==", e.Value, &NullLiteral{})
}

func (e *IsNotNull) codegen(w *codeWriter) error {
	return w.infix("!=", e.Value, &NullLiteral{})
}

func (e *Dereference) codegen(w *codeWriter) error {
	if w.resolve != nil {
		if name, ok := w.resolve(e); ok {
			w.write(name)
			return nil
		}
	}
	if err := w.expr(e.Base); err != nil {
		return err
	}
	w.write("[", strconv.Quote(e.Field), "]")
	return nil
}

// codegen keeps SQL's 1-based array positions; the helper returns NULL
// for positions outside the array.
func (e *Subscript) codegen(w *codeWriter) error {
	return w.call(SubscriptSymbol, e.Base, e.Index)
}

func (e *Row) codegen(*codeWriter) error {
	return unsupported("Row", "row constructors have no executable form")
}

func (e *ArrayConstructor) codegen(w *codeWriter) error {
	w.write("[")
	if err := w.list(e.Values); err != nil {
		return err
	}
	w.write("]")
	return nil
}

func (e *SearchedCase) codegen(w *codeWriter) error {
	conds := make([]func() error, len(e.WhenClauses))
	results := make([]func() error, len(e.WhenClauses))
	for i, when := range e.WhenClauses {
		when := when
		conds[i] = func() error { return w.expr(when.Operand) }
		results[i] = func() error { return w.expr(when.Result) }
	}
	return w.ternary(conds, results, e.Default)
}

func (e *SimpleCase) codegen(w *codeWriter) error {
	conds := make([]func() error, len(e.WhenClauses))
	results := make([]func() error, len(e.WhenClauses))
	for i, when := range e.WhenClauses {
		when := when
		conds[i] = func() error { return w.compare("==", e.Operand, when.Operand) }
		results[i] = func() error { return w.expr(when.Result) }
	}
	return w.ternary(conds, results, e.Default)
}

func (e *Coalesce) codegen(w *codeWriter) error {
	if len(e.Operands) == 0 {
		return unsupported("Coalesce", "no operands")
	}
	last := len(e.Operands) - 1
	conds := make([]func() error, last)
	results := make([]func() error, last)
	for i, operand := range e.Operands[:last] {
		operand := operand
		conds[i] = func() error { return w.infix("!=", operand, &NullLiteral{}) }
		results[i] = func() error { return w.expr(operand) }
	}
	return w.ternary(conds, results, e.Operands[last])
}

func (e *NullIf) codegen(w *codeWriter) error {
	w.write("(")
	if err := w.compare("==", e.First, e.Second); err != nil {
		return err
	}
	w.write(" ? nil : ")
	if err := w.expr(e.First); err != nil {
		return err
	}
	w.write(")")
	return nil
}

func (e *If) codegen(w *codeWriter) error {
	return w.ternary(
		[]func() error{func() error { return w.expr(e.Condition) }},
		[]func() error{func() error { return w.expr(e.TrueValue) }},
		e.FalseValue)
}

func (e *Try) codegen(*codeWriter) error {
	return unsupported("Try", "TRY has no executable form")
}

func (e *Cast) codegen(w *codeWriter) error {
	target, err := castTarget(e.Type)
	if err != nil {
		return err
	}
	name := QualifiedName{"cast", target}
	if e.Safe {
		name = QualifiedName{"try_cast", target}
	}
	return w.call(FunctionSymbol(name), e.Expression)
}

// castTarget maps a SQL type spelling to the cast function suffix.
func castTarget(sqlType string) (string, error) {
	t, err := types.ParseType(sqlType)
	if err != nil {
		return "", unsupported("Cast", err.Error())
	}
	switch t {
	case types.Boolean:
		return "boolean", nil
	case types.Integer:
		return "integer", nil
	case types.BigInt:
		return "bigint", nil
	case types.Double, types.Decimal:
		return "double", nil
	case types.String:
		return "string", nil
	case types.Timestamp:
		return "timestamp", nil
	}
	return "", unsupported("Cast", "no conversion to "+t.String())
}

func (e *Lambda) codegen(*codeWriter) error {
	return unsupported("Lambda", "lambdas are only valid as arguments of higher-order functions")
}

func (e *FunctionCall) codegen(w *codeWriter) error {
	if e.Distinct {
		return unsupported("FunctionCall", "DISTINCT is only valid in aggregations")
	}
	if e.Window != nil {
		return unsupported("FunctionCall", "window functions are not scalar")
	}
	return w.call(FunctionSymbol(e.Name), e.Arguments...)
}

func (e *AllColumns) codegen(*codeWriter) error {
	return unsupported("AllColumns", "* has no scalar value")
}

func (e *AtTimeZone) codegen(*codeWriter) error {
	return unsupported("AtTimeZone", "time zone conversion has no executable form")
}

func (e *CurrentTime) codegen(w *codeWriter) error {
	switch e.Type {
	case CurrentTimestamp, LocalTimestamp:
		w.write("now()")
		return nil
	}
	return unsupported("CurrentTime", string(e.Type)+" has no executable form")
}

func (e *Extract) codegen(*codeWriter) error {
	return unsupported("Extract", "EXTRACT has no executable form")
}

func (e *Subquery) codegen(*codeWriter) error {
	return unsupported("Subquery", "subqueries cannot be evaluated per record")
}

func (e *Exists) codegen(*codeWriter) error {
	return unsupported("Exists", "subqueries cannot be evaluated per record")
}
