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

import "strings"

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	// TokenQuotedIdent is a "double quoted" identifier; Value is unescaped.
	TokenQuotedIdent
	TokenNumber
	// TokenString is a 'single quoted' string; Value is unescaped.
	TokenString
	// TokenBinary is X'..'; Value is the hex digits.
	TokenBinary
	TokenSymbol
)

// Token is one lexical unit. Pos and End are byte offsets into the input.
type Token struct {
	Type  TokenType
	Value string
	Pos   int
	End   int
}

// is reports whether the token is the given symbol or keyword.
func (t Token) is(s string) bool {
	switch t.Type {
	case TokenSymbol:
		return t.Value == s
	case TokenIdent:
		return strings.EqualFold(t.Value, s)
	}
	return false
}

func (t Token) String() string {
	switch t.Type {
	case TokenEOF:
		return "EOF"
	case TokenString:
		return QuoteString(t.Value)
	case TokenQuotedIdent:
		return QuoteIdentifier(t.Value)
	case TokenBinary:
		return "X'" + t.Value + "'"
	}
	return t.Value
}

type Lexer struct {
	input   string
	pos     int
	readPos int
	ch      byte
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize splits the whole input, ending with a TokenEOF.
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	start := l.pos

	switch {
	case l.ch == 0:
		return Token{Type: TokenEOF, Pos: start, End: start}, nil
	case (l.ch == 'X' || l.ch == 'x') && l.peekChar() == '\'':
		l.readChar()
		s, err := l.readQuoted('\'')
		if err != nil {
			return Token{}, err
		}
		for i := 0; i < len(s); i++ {
			if !isHexDigit(s[i]) {
				return Token{}, newParseError(l.input, ErrorTypeLexical, start, s, "invalid hex digit in binary literal")
			}
		}
		return l.token(TokenBinary, s, start), nil
	case isLetter(l.ch):
		return l.token(TokenIdent, l.readIdentifier(), start), nil
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		num, err := l.readNumber()
		if err != nil {
			return Token{}, err
		}
		return l.token(TokenNumber, num, start), nil
	case l.ch == '\'':
		s, err := l.readQuoted('\'')
		if err != nil {
			return Token{}, err
		}
		return l.token(TokenString, s, start), nil
	case l.ch == '"':
		s, err := l.readQuoted('"')
		if err != nil {
			return Token{}, err
		}
		if s == "" {
			return Token{}, newParseError(l.input, ErrorTypeLexical, start, `""`, "zero-length delimited identifier")
		}
		return l.token(TokenQuotedIdent, s, start), nil
	}

	two := ""
	if l.readPos < len(l.input) {
		two = l.input[l.pos : l.readPos+1]
	}
	switch two {
	case "<=", ">=", "<>", "!=", "->", "||":
		l.readChar()
		l.readChar()
		return l.token(TokenSymbol, two, start), nil
	}
	switch l.ch {
	case ',', '(', ')', '[', ']', '.', '+', '-', '*', '/', '%', '=', '<', '>', ':', ';':
		sym := string(l.ch)
		l.readChar()
		return l.token(TokenSymbol, sym, start), nil
	}
	return Token{}, newParseError(l.input, ErrorTypeLexical, start, string(l.ch), "unexpected character")
}

func (l *Lexer) token(typ TokenType, value string, start int) Token {
	return Token{Type: typ, Value: value, Pos: start, End: l.pos}
}

func (l *Lexer) readChar() {
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber reads digits with an optional fraction and exponent.
func (l *Lexer) readNumber() (string, error) {
	pos := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if !isDigit(l.ch) {
			return "", newParseError(l.input, ErrorTypeInvalidNumber, pos, l.input[pos:l.pos], "malformed exponent")
		}
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if isLetter(l.ch) {
		return "", newParseError(l.input, ErrorTypeInvalidNumber, pos, l.input[pos:l.readPos], "identifier cannot start with a digit")
	}
	return l.input[pos:l.pos], nil
}

// readQuoted reads a quote-delimited run; a doubled quote is one literal
// quote character.
func (l *Lexer) readQuoted(quote byte) (string, error) {
	start := l.pos
	l.readChar() // opening quote
	var b strings.Builder
	for {
		switch l.ch {
		case 0:
			if l.pos >= len(l.input) {
				return "", newParseError(l.input, ErrorTypeUnterminatedString, start, l.input[start:], "unterminated quoted text")
			}
		case quote:
			if l.peekChar() != quote {
				l.readChar() // closing quote
				return b.String(), nil
			}
			l.readChar()
		}
		b.WriteByte(l.ch)
		l.readChar()
	}
}

// skipWhitespace also skips `--` line comments.
func (l *Lexer) skipWhitespace() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '-' && l.peekChar() == '-':
			for l.ch != '\n' && l.pos < len(l.input) {
				l.readChar()
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
