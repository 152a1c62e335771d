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

package rsql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// maxDepth bounds expression nesting.
const maxDepth = 500

// Parser is a recursive descent parser for SQL scalar expressions.
type Parser struct {
	input  string
	tokens []Token
	pos    int
	depth  int
}

func NewParser(input string) (*Parser, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	return &Parser{input: input, tokens: tokens}, nil
}

// ParseExpression parses one complete expression.
func ParseExpression(text string) (Expression, error) {
	p, err := NewParser(text)
	if err != nil {
		return nil, err
	}
	return p.Parse()
}

// Parse parses the whole input as one expression.
func (p *Parser) Parse() (Expression, error) {
	if p.peek().Type == TokenEOF {
		return nil, newParseError(p.input, ErrorTypeMissingToken, 0, "", "empty expression", "expression")
	}
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.unexpected(tok, "end of input")
	}
	return e, nil
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

// accept consumes the next token when it is the given symbol or keyword.
func (p *Parser) accept(s string) bool {
	if p.peek().is(s) {
		p.pos++
		return true
	}
	return false
}

func (p *Parser) expect(s string) (Token, error) {
	tok := p.peek()
	if !tok.is(s) {
		return tok, p.unexpected(tok, s)
	}
	p.pos++
	return tok, nil
}

func (p *Parser) unexpected(tok Token, expected ...string) error {
	if tok.Type == TokenEOF {
		return newParseError(p.input, ErrorTypeMissingToken, tok.Pos, "", "unexpected end of input", expected...)
	}
	return newParseError(p.input, ErrorTypeUnexpectedToken, tok.Pos, tok.String(),
		fmt.Sprintf("unexpected token '%s'", tok.String()), expected...)
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return newParseError(p.input, ErrorTypeSyntax, p.peek().Pos, p.peek().String(), "expression nesting too deep")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) parseExpression() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept("OR") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &LogicalBinary{Operator: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAnd() (Expression, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.accept("AND") {
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &LogicalBinary{Operator: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseNot() (Expression, error) {
	if p.accept("NOT") {
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		v, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Not{Value: v}, nil
	}
	return p.parsePredicate()
}

var comparisonOperators = map[string]ComparisonOperator{
	"=":  OpEqual,
	"<>": OpNotEqual,
	"!=": OpNotEqual,
	"<":  OpLessThan,
	"<=": OpLessThanOrEqual,
	">":  OpGreaterThan,
	">=": OpGreaterThanOrEqual,
}

// parsePredicate parses comparisons and the IS/BETWEEN/LIKE/IN suffixes.
func (p *Parser) parsePredicate() (Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if op, ok := comparisonOperators[tok.Value]; ok && tok.Type == TokenSymbol {
			p.next()
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = &Comparison{Operator: op, Left: left, Right: right}
			continue
		}
		if tok.is("IS") {
			p.next()
			negate := p.accept("NOT")
			if p.accept("NULL") {
				if negate {
					left = &IsNotNull{Value: left}
				} else {
					left = &IsNull{Value: left}
				}
				continue
			}
			if !p.accept("DISTINCT") {
				return nil, p.unexpected(p.peek(), "NULL", "DISTINCT FROM")
			}
			if _, err := p.expect("FROM"); err != nil {
				return nil, err
			}
			right, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = negated(negate, &Comparison{Operator: OpIsDistinctFrom, Left: left, Right: right})
			continue
		}
		negate := false
		if tok.is("NOT") && (p.peekN(1).is("BETWEEN") || p.peekN(1).is("LIKE") || p.peekN(1).is("IN")) {
			p.next()
			negate = true
		}
		switch {
		case p.accept("BETWEEN"):
			min, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect("AND"); err != nil {
				return nil, err
			}
			max, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			left = negated(negate, &Between{Value: left, Min: min, Max: max})
		case p.accept("LIKE"):
			pattern, err := p.parseAdditive()
			if err != nil {
				return nil, err
			}
			like := &Like{Value: left, Pattern: pattern}
			if p.accept("ESCAPE") {
				if like.Escape, err = p.parseAdditive(); err != nil {
					return nil, err
				}
			}
			left = negated(negate, like)
		case p.accept("IN"):
			list, err := p.parseInList()
			if err != nil {
				return nil, err
			}
			left = negated(negate, &InPredicate{Value: left, ValueList: list})
		default:
			return left, nil
		}
	}
}

func negated(negate bool, e Expression) Expression {
	if negate {
		return &Not{Value: e}
	}
	return e
}

func (p *Parser) parseInList() (Expression, error) {
	open, err := p.expect("(")
	if err != nil {
		return nil, err
	}
	if p.isQueryStart(p.peek()) {
		p.pos--
		return p.parseSubquery(open)
	}
	values, err := p.parseExpressionList(")")
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, newParseError(p.input, ErrorTypeSyntax, open.Pos, "()", "IN list cannot be empty")
	}
	return &InList{Values: values}, nil
}

// parseExpressionList parses `a, b, ...` up to and including the closing
// symbol.
func (p *Parser) parseExpressionList(closing string) ([]Expression, error) {
	var out []Expression
	if p.accept(closing) {
		return out, nil
	}
	for {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		if p.accept(",") {
			continue
		}
		if _, err := p.expect(closing); err != nil {
			return nil, err
		}
		return out, nil
	}
}

func (p *Parser) parseAdditive() (Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithmeticOperator
		switch {
		case p.accept("+"):
			op = OpAdd
		case p.accept("-"):
			op = OpSubtract
		default:
			return left, nil
		}
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ArithmeticBinary{Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		var op ArithmeticOperator
		switch {
		case p.accept("*"):
			op = OpMultiply
		case p.accept("/"):
			op = OpDivide
		case p.accept("%"):
			op = OpModulus
		default:
			return left, nil
		}
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ArithmeticBinary{Operator: op, Left: left, Right: right}
	}
}

func (p *Parser) parseUnary() (Expression, error) {
	var sign Sign
	switch {
	case p.accept("-"):
		sign = SignMinus
	case p.accept("+"):
		sign = SignPlus
	default:
		return p.parsePostfix(true)
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	v, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return &ArithmeticUnary{Sign: sign, Value: v}, nil
}

// parsePostfix parses a primary followed by `.field`, `[index]` and, when
// allowed, `AT TIME ZONE tz`.
func (p *Parser) parsePostfix(allowAtTimeZone bool) (Expression, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.accept("."):
			tok := p.next()
			if tok.is("*") {
				ref, ok := e.(*QualifiedNameReference)
				if !ok {
					return nil, p.unexpected(tok, "field name")
				}
				return &AllColumns{Prefix: ref.Name}, nil
			}
			if tok.Type != TokenIdent && tok.Type != TokenQuotedIdent {
				return nil, p.unexpected(tok, "field name")
			}
			e = &Dereference{Base: e, Field: tok.Value}
		case p.accept("["):
			idx, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect("]"); err != nil {
				return nil, err
			}
			e = &Subscript{Base: e, Index: idx}
		case allowAtTimeZone && p.peek().is("AT") && p.peekN(1).is("TIME") && p.peekN(2).is("ZONE"):
			p.pos += 3
			var tz Expression
			if p.peek().is("-") || p.peek().is("+") {
				tz, err = p.parseUnary()
			} else {
				tz, err = p.parsePostfix(false)
			}
			if err != nil {
				return nil, err
			}
			e = &AtTimeZone{Value: e, TimeZone: tz}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimary() (Expression, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()
	switch tok.Type {
	case TokenNumber:
		p.next()
		return p.parseNumber(tok)
	case TokenString:
		p.next()
		return &StringLiteral{Value: tok.Value}, nil
	case TokenBinary:
		p.next()
		b := make([]byte, len(tok.Value)/2)
		if len(tok.Value)%2 != 0 {
			return nil, newParseError(p.input, ErrorTypeLexical, tok.Pos, tok.String(), "binary literal must contain an even number of hex digits")
		}
		for i := range b {
			v, _ := strconv.ParseUint(tok.Value[2*i:2*i+2], 16, 8)
			b[i] = byte(v)
		}
		return &BinaryLiteral{Value: b}, nil
	case TokenQuotedIdent:
		return p.parseNameOrCall()
	case TokenSymbol:
		switch tok.Value {
		case "(":
			return p.parseParenthesized()
		case "*":
			p.next()
			return &AllColumns{}, nil
		}
		return nil, p.unexpected(tok, "expression")
	case TokenIdent:
		return p.parseKeywordOrName(tok)
	}
	return nil, p.unexpected(tok, "expression")
}

func (p *Parser) parseNumber(tok Token) (Expression, error) {
	if strings.ContainsAny(tok.Value, ".eE") {
		v, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, newParseError(p.input, ErrorTypeInvalidNumber, tok.Pos, tok.Value, "invalid floating point literal")
		}
		return &DoubleLiteral{Value: v}, nil
	}
	v, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, newParseError(p.input, ErrorTypeInvalidNumber, tok.Pos, tok.Value, "integer literal out of range")
	}
	return &LongLiteral{Value: v}, nil
}

func (p *Parser) parseParenthesized() (Expression, error) {
	open := p.peek()
	if p.isQueryStart(p.peekN(1)) {
		return p.parseSubquery(open)
	}
	if args, n, ok := p.lambdaArguments(); ok {
		p.pos += n
		return p.parseLambdaBody(args)
	}
	p.next()
	e, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *Parser) isQueryStart(tok Token) bool {
	return tok.is("SELECT") || tok.is("WITH") || tok.is("VALUES")
}

// parseSubquery captures the balanced text after open as a raw statement.
func (p *Parser) parseSubquery(open Token) (Expression, error) {
	stmt, err := p.captureStatement(open)
	if err != nil {
		return nil, err
	}
	return &Subquery{Query: stmt}, nil
}

func (p *Parser) captureStatement(open Token) (*RawStatement, error) {
	p.next() // (
	start := p.peek().Pos
	depth := 1
	for {
		tok := p.next()
		switch {
		case tok.Type == TokenEOF:
			return nil, newParseError(p.input, ErrorTypeMissingToken, open.Pos, "(", "unbalanced parenthesis", ")")
		case tok.is("("):
			depth++
		case tok.is(")"):
			depth--
			if depth == 0 {
				return &RawStatement{SQL: strings.TrimSpace(p.input[start:tok.Pos])}, nil
			}
		}
	}
}

// lambdaArguments looks ahead for `(a, b) ->` at the current position and
// returns the argument names and the number of tokens they span.
func (p *Parser) lambdaArguments() ([]string, int, bool) {
	var args []string
	i := 1
	if p.peekN(i).is(")") {
		if p.peekN(i + 1).is("->") {
			return args, i + 2, true
		}
		return nil, 0, false
	}
	for {
		name, ok := p.identifierAt(i)
		if !ok {
			return nil, 0, false
		}
		args = append(args, name)
		i++
		switch {
		case p.peekN(i).is(","):
			i++
		case p.peekN(i).is(")") && p.peekN(i+1).is("->"):
			return args, i + 2, true
		default:
			return nil, 0, false
		}
	}
}

func (p *Parser) identifierAt(n int) (string, bool) {
	tok := p.peekN(n)
	switch {
	case tok.Type == TokenQuotedIdent:
		return tok.Value, true
	case tok.Type == TokenIdent && !IsReserved(tok.Value):
		return tok.Value, true
	}
	return "", false
}

func (p *Parser) parseLambdaBody(args []string) (Expression, error) {
	body, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Lambda{Arguments: args, Body: body}, nil
}

func (p *Parser) parseKeywordOrName(tok Token) (Expression, error) {
	following := p.peekN(1)
	switch strings.ToUpper(tok.Value) {
	case "TRUE", "FALSE":
		p.next()
		return &BooleanLiteral{Value: strings.EqualFold(tok.Value, "TRUE")}, nil
	case "NULL":
		p.next()
		return &NullLiteral{}, nil
	case "CASE":
		return p.parseCase()
	case "CAST", "TRY_CAST":
		return p.parseCast()
	case "INTERVAL":
		return p.parseInterval()
	case "DECIMAL":
		if following.Type == TokenString {
			p.pos += 2
			if _, err := strconv.ParseFloat(following.Value, 64); err != nil {
				return nil, newParseError(p.input, ErrorTypeInvalidNumber, following.Pos, following.String(), "invalid decimal literal")
			}
			return &DecimalLiteral{Value: following.Value}, nil
		}
	case "TIME":
		if following.Type == TokenString {
			p.pos += 2
			return &TimeLiteral{Value: following.Value}, nil
		}
	case "TIMESTAMP":
		if following.Type == TokenString {
			p.pos += 2
			return &TimestampLiteral{Value: following.Value}, nil
		}
	case "ARRAY":
		if following.is("[") {
			p.pos += 2
			values, err := p.parseExpressionList("]")
			if err != nil {
				return nil, err
			}
			return &ArrayConstructor{Values: values}, nil
		}
	case "ROW":
		if following.is("(") {
			p.pos += 2
			items, err := p.parseExpressionList(")")
			if err != nil {
				return nil, err
			}
			return &Row{Items: items}, nil
		}
	case "COALESCE":
		if following.is("(") {
			p.pos += 2
			operands, err := p.parseExpressionList(")")
			if err != nil {
				return nil, err
			}
			if len(operands) == 0 {
				return nil, newParseError(p.input, ErrorTypeSyntax, tok.Pos, tok.Value, "COALESCE requires at least one argument")
			}
			return &Coalesce{Operands: operands}, nil
		}
	case "NULLIF":
		if following.is("(") {
			args, err := p.parseFixedCall(tok, 2, 2)
			if err != nil {
				return nil, err
			}
			return &NullIf{First: args[0], Second: args[1]}, nil
		}
	case "IF":
		if following.is("(") {
			args, err := p.parseFixedCall(tok, 2, 3)
			if err != nil {
				return nil, err
			}
			e := &If{Condition: args[0], TrueValue: args[1]}
			if len(args) == 3 {
				e.FalseValue = args[2]
			}
			return e, nil
		}
	case "TRY":
		if following.is("(") {
			args, err := p.parseFixedCall(tok, 1, 1)
			if err != nil {
				return nil, err
			}
			return &Try{Inner: args[0]}, nil
		}
	case "EXISTS":
		if following.is("(") && p.isQueryStart(p.peekN(2)) {
			p.next()
			stmt, err := p.captureStatement(following)
			if err != nil {
				return nil, err
			}
			return &Exists{Query: stmt}, nil
		}
	case "EXTRACT":
		if following.is("(") {
			return p.parseExtract()
		}
	case string(CurrentDate), string(CurrentTimeOfDay), string(CurrentTimestamp), string(LocalTime), string(LocalTimestamp):
		return p.parseCurrentTime(tok)
	}

	if IsReserved(tok.Value) {
		return nil, p.unexpected(tok, "expression")
	}
	if following.Type == TokenString {
		p.pos += 2
		return &GenericLiteral{Type: tok.Value, Value: following.Value}, nil
	}
	if following.is("->") {
		p.pos += 2
		return p.parseLambdaBody([]string{tok.Value})
	}
	return p.parseNameOrCall()
}

// parseFixedCall parses `(a, b, ...)` after a keyword with an arity check.
func (p *Parser) parseFixedCall(name Token, min, max int) ([]Expression, error) {
	p.pos += 2
	args, err := p.parseExpressionList(")")
	if err != nil {
		return nil, err
	}
	if len(args) < min || len(args) > max {
		return nil, newParseError(p.input, ErrorTypeSyntax, name.Pos, name.Value,
			fmt.Sprintf("%s expects %d to %d arguments, got %d", strings.ToUpper(name.Value), min, max, len(args)))
	}
	return args, nil
}

func (p *Parser) parseNameOrCall() (Expression, error) {
	var name QualifiedName
	for {
		part, ok := p.identifierAt(0)
		if !ok {
			return nil, p.unexpected(p.peek(), "identifier")
		}
		p.next()
		name = append(name, part)
		if _, ok := p.identifierAt(1); !ok || !p.peek().is(".") {
			break
		}
		p.next()
	}
	if !p.peek().is("(") {
		return &QualifiedNameReference{Name: name}, nil
	}
	return p.parseCall(name)
}

func (p *Parser) parseCall(name QualifiedName) (Expression, error) {
	p.next() // (
	call := &FunctionCall{Name: name}
	call.Distinct = p.accept("DISTINCT")
	if p.peek().is("*") && p.peekN(1).is(")") {
		p.pos += 2
	} else {
		args, err := p.parseExpressionList(")")
		if err != nil {
			return nil, err
		}
		call.Arguments = args
	}
	if p.accept("OVER") {
		w, err := p.parseWindow()
		if err != nil {
			return nil, err
		}
		call.Window = w
	}
	return call, nil
}

func (p *Parser) parseWindow() (*Window, error) {
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	w := &Window{}
	if p.accept("PARTITION") {
		if _, err := p.expect("BY"); err != nil {
			return nil, err
		}
		for {
			e, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			w.PartitionBy = append(w.PartitionBy, e)
			if !p.accept(",") {
				break
			}
		}
	}
	if p.accept("ORDER") {
		if _, err := p.expect("BY"); err != nil {
			return nil, err
		}
		items, err := p.parseSortItems()
		if err != nil {
			return nil, err
		}
		w.OrderBy = items
	}
	if p.peek().is("RANGE") || p.peek().is("ROWS") {
		frame, err := p.parseFrame()
		if err != nil {
			return nil, err
		}
		w.Frame = frame
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return w, nil
}

func (p *Parser) parseSortItems() ([]*SortItem, error) {
	var items []*SortItem
	for {
		key, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		item := &SortItem{SortKey: key}
		if p.accept("DESC") {
			item.Ordering = Descending
		} else {
			p.accept("ASC")
		}
		if p.accept("NULLS") {
			switch {
			case p.accept("FIRST"):
				item.NullOrdering = NullsFirst
			case p.accept("LAST"):
				item.NullOrdering = NullsLast
			default:
				return nil, p.unexpected(p.peek(), "FIRST", "LAST")
			}
		}
		items = append(items, item)
		if !p.accept(",") {
			return items, nil
		}
	}
}

func (p *Parser) parseFrame() (*WindowFrame, error) {
	frame := &WindowFrame{Type: FrameType(strings.ToUpper(p.next().Value))}
	if !p.accept("BETWEEN") {
		start, err := p.parseFrameBound()
		if err != nil {
			return nil, err
		}
		frame.Start = start
		return frame, nil
	}
	start, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("AND"); err != nil {
		return nil, err
	}
	end, err := p.parseFrameBound()
	if err != nil {
		return nil, err
	}
	frame.Start, frame.End = start, end
	return frame, nil
}

func (p *Parser) parseFrameBound() (*FrameBound, error) {
	switch {
	case p.accept("UNBOUNDED"):
		switch {
		case p.accept("PRECEDING"):
			return &FrameBound{Type: UnboundedPreceding}, nil
		case p.accept("FOLLOWING"):
			return &FrameBound{Type: UnboundedFollowing}, nil
		}
		return nil, p.unexpected(p.peek(), "PRECEDING", "FOLLOWING")
	case p.accept("CURRENT"):
		if _, err := p.expect("ROW"); err != nil {
			return nil, err
		}
		return &FrameBound{Type: CurrentRow}, nil
	}
	v, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	switch {
	case p.accept("PRECEDING"):
		return &FrameBound{Type: Preceding, Value: v}, nil
	case p.accept("FOLLOWING"):
		return &FrameBound{Type: Following, Value: v}, nil
	}
	return nil, p.unexpected(p.peek(), "PRECEDING", "FOLLOWING")
}

func (p *Parser) parseCase() (Expression, error) {
	p.next() // CASE
	var operand Expression
	if !p.peek().is("WHEN") {
		var err error
		if operand, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	var whens []*WhenClause
	for p.accept("WHEN") {
		cond, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect("THEN"); err != nil {
			return nil, err
		}
		result, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		whens = append(whens, &WhenClause{Operand: cond, Result: result})
	}
	if len(whens) == 0 {
		return nil, p.unexpected(p.peek(), "WHEN")
	}
	var def Expression
	if p.accept("ELSE") {
		var err error
		if def, err = p.parseExpression(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect("END"); err != nil {
		return nil, err
	}
	if operand != nil {
		return &SimpleCase{Operand: operand, WhenClauses: whens, Default: def}, nil
	}
	return &SearchedCase{WhenClauses: whens, Default: def}, nil
}

// parseCast keeps the target type text exactly as written.
func (p *Parser) parseCast() (Expression, error) {
	kw := p.next()
	if _, err := p.expect("("); err != nil {
		return nil, err
	}
	v, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect("AS"); err != nil {
		return nil, err
	}
	start := p.peek()
	depth := 0
	for {
		tok := p.peek()
		if tok.Type == TokenEOF {
			return nil, p.unexpected(tok, ")")
		}
		if tok.is("(") {
			depth++
		}
		if tok.is(")") {
			if depth == 0 {
				break
			}
			depth--
		}
		p.next()
	}
	typ := strings.TrimSpace(p.input[start.Pos:p.peek().Pos])
	if typ == "" {
		return nil, p.unexpected(p.peek(), "type")
	}
	p.next() // )
	return &Cast{Expression: v, Type: typ, Safe: strings.EqualFold(kw.Value, "TRY_CAST")}, nil
}

func (p *Parser) parseInterval() (Expression, error) {
	p.next() // INTERVAL
	lit := &IntervalLiteral{}
	if p.accept("-") {
		lit.Sign = IntervalNegative
	} else {
		p.accept("+")
	}
	tok := p.next()
	if tok.Type != TokenString {
		return nil, p.unexpected(tok, "interval string")
	}
	lit.Value = tok.Value
	start, err := p.parseIntervalField()
	if err != nil {
		return nil, err
	}
	lit.StartField = start
	if p.accept("TO") {
		if lit.EndField, err = p.parseIntervalField(); err != nil {
			return nil, err
		}
	}
	return lit, nil
}

func (p *Parser) parseIntervalField() (IntervalField, error) {
	tok := p.next()
	switch f := IntervalField(strings.ToUpper(tok.Value)); f {
	case IntervalYear, IntervalMonth, IntervalDay, IntervalHour, IntervalMinute, IntervalSecond:
		if tok.Type == TokenIdent {
			return f, nil
		}
	}
	return "", p.unexpected(tok, "YEAR", "MONTH", "DAY", "HOUR", "MINUTE", "SECOND")
}

func (p *Parser) parseExtract() (Expression, error) {
	p.pos += 2
	field := p.next()
	if field.Type != TokenIdent {
		return nil, p.unexpected(field, "field")
	}
	if _, err := p.expect("FROM"); err != nil {
		return nil, err
	}
	v, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	return &Extract{Field: strings.ToUpper(field.Value), Expression: v}, nil
}

func (p *Parser) parseCurrentTime(tok Token) (Expression, error) {
	p.next()
	e := &CurrentTime{Type: CurrentTimeType(strings.ToUpper(tok.Value))}
	if !p.accept("(") {
		return e, nil
	}
	n := p.next()
	precision, err := strconv.Atoi(n.Value)
	if n.Type != TokenNumber || err != nil {
		return nil, p.unexpected(n, "precision")
	}
	if _, err := p.expect(")"); err != nil {
		return nil, err
	}
	e.Precision = &precision
	return e, nil
}

// IsParseError reports whether err is, or wraps, a *ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
