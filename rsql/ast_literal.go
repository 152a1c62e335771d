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
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// LiteralKind tells an Anonymizer what kind of literal it is rewriting.
type LiteralKind int

const (
	LiteralBoolean LiteralKind = iota
	LiteralString
	LiteralLong
	LiteralDouble
	LiteralDecimal
	LiteralBinary
	LiteralNull
	LiteralTime
	LiteralTimestamp
	LiteralInterval
	LiteralGeneric
	// LiteralStatement is the verbatim text of an embedded statement
	LiteralStatement
)

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Value bool
}

func (l *BooleanLiteral) Format(p *Printer) {
	p.literal(LiteralBoolean, strconv.FormatBool(l.Value))
}

func (l *BooleanLiteral) Children() []Expression { return nil }

// StringLiteral is a single-quoted string.
type StringLiteral struct {
	Value string
}

func (l *StringLiteral) Format(p *Printer) {
	p.literal(LiteralString, QuoteString(l.Value))
}

func (l *StringLiteral) Children() []Expression { return nil }

// LongLiteral is an integer literal. The parser only produces non-negative
// values; -5 parses as ArithmeticUnary{SignMinus, LongLiteral{5}}. A
// constructed negative value prints with its sign and reparses as that
// unary form.
type LongLiteral struct {
	Value int64
}

func (l *LongLiteral) Format(p *Printer) {
	p.literal(LiteralLong, strconv.FormatInt(l.Value, 10))
}

func (l *LongLiteral) Children() []Expression { return nil }

// DoubleLiteral is a floating point literal. Like LongLiteral it is
// non-negative when parsed.
type DoubleLiteral struct {
	Value float64
}

func (l *DoubleLiteral) Format(p *Printer) {
	p.literal(LiteralDouble, formatDouble(l.Value))
}

func (l *DoubleLiteral) Children() []Expression { return nil }

// DecimalLiteral keeps the exact decimal text.
type DecimalLiteral struct {
	Value string
}

func (l *DecimalLiteral) Format(p *Printer) {
	p.literal(LiteralDecimal, "DECIMAL '"+l.Value+"'")
}

func (l *DecimalLiteral) Children() []Expression { return nil }

// BinaryLiteral is a hex blob, X'CAFE'.
type BinaryLiteral struct {
	Value []byte
}

func (l *BinaryLiteral) Format(p *Printer) {
	p.literal(LiteralBinary, "X'"+strings.ToUpper(hex.EncodeToString(l.Value))+"'")
}

func (l *BinaryLiteral) Children() []Expression { return nil }

// NullLiteral is SQL NULL.
type NullLiteral struct{}

func (l *NullLiteral) Format(p *Printer) {
	p.literal(LiteralNull, "null")
}

func (l *NullLiteral) Children() []Expression { return nil }

// TimeLiteral is TIME '12:00:00'.
type TimeLiteral struct {
	Value string
}

func (l *TimeLiteral) Format(p *Printer) {
	p.literal(LiteralTime, "TIME "+QuoteString(l.Value))
}

func (l *TimeLiteral) Children() []Expression { return nil }

// TimestampLiteral is TIMESTAMP '2024-01-01 00:00:00'.
type TimestampLiteral struct {
	Value string
}

func (l *TimestampLiteral) Format(p *Printer) {
	p.literal(LiteralTimestamp, "TIMESTAMP "+QuoteString(l.Value))
}

func (l *TimestampLiteral) Children() []Expression { return nil }

// IntervalSign is the optional sign of an interval literal.
type IntervalSign int

const (
	IntervalPositive IntervalSign = iota
	IntervalNegative
)

// IntervalField is one of YEAR, MONTH, DAY, HOUR, MINUTE, SECOND.
type IntervalField string

const (
	IntervalYear   IntervalField = "YEAR"
	IntervalMonth  IntervalField = "MONTH"
	IntervalDay    IntervalField = "DAY"
	IntervalHour   IntervalField = "HOUR"
	IntervalMinute IntervalField = "MINUTE"
	IntervalSecond IntervalField = "SECOND"
)

// IntervalLiteral is INTERVAL [-] '<v>' <start> [TO <end>]. EndField is
// empty when there is no TO clause.
type IntervalLiteral struct {
	Value      string
	Sign       IntervalSign
	StartField IntervalField
	EndField   IntervalField
}

func (l *IntervalLiteral) Format(p *Printer) {
	var b strings.Builder
	b.WriteString("INTERVAL ")
	if l.Sign == IntervalNegative {
		b.WriteString("- ")
	}
	b.WriteString(QuoteString(l.Value))
	b.WriteByte(' ')
	b.WriteString(string(l.StartField))
	if l.EndField != "" {
		b.WriteString(" TO ")
		b.WriteString(string(l.EndField))
	}
	p.literal(LiteralInterval, b.String())
}

func (l *IntervalLiteral) Children() []Expression { return nil }

// GenericLiteral is `<TYPE> '<value>'`, e.g. BIGINT '5' or DATE '2024-01-01'.
type GenericLiteral struct {
	Type  string
	Value string
}

func (l *GenericLiteral) Format(p *Printer) {
	p.literal(LiteralGeneric, l.Type+" "+QuoteString(l.Value))
}

func (l *GenericLiteral) Children() []Expression { return nil }

// QuoteString renders a SQL string literal, doubling embedded quotes.
func QuoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// formatDouble always yields text that re-parses as a double, never as an
// integer: plain notation in [1e-3, 1e7), otherwise 1.5E-5 style.
func formatDouble(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	abs := math.Abs(v)
	if abs == 0 || (abs >= 1e-3 && abs < 1e7) {
		s := strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(s, ".") {
			s += ".0"
		}
		return s
	}
	s := strconv.FormatFloat(v, 'E', -1, 64)
	mant, exp, _ := strings.Cut(s, "E")
	if !strings.Contains(mant, ".") {
		mant += ".0"
	}
	exp = strings.TrimPrefix(exp, "+")
	neg := strings.HasPrefix(exp, "-")
	exp = strings.TrimLeft(strings.TrimPrefix(exp, "-"), "0")
	if neg {
		exp = "-" + exp
	}
	return mant + "E" + exp
}
