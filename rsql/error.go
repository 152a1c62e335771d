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
	"strings"
)

// ErrorType classifies parse errors.
type ErrorType int

const (
	ErrorTypeSyntax ErrorType = iota
	ErrorTypeLexical
	ErrorTypeUnexpectedToken
	ErrorTypeMissingToken
	ErrorTypeInvalidNumber
	ErrorTypeUnterminatedString
)

// ParseError is a parse failure with its exact position in the input.
type ParseError struct {
	Type     ErrorType
	Message  string
	Position int
	Line     int
	Column   int
	Token    string
	Expected []string
	Context  string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("[%s] %s", e.typeName(), e.Message))

	if e.Line > 0 && e.Column > 0 {
		builder.WriteString(fmt.Sprintf(" at line %d, column %d", e.Line, e.Column))
	} else if e.Position >= 0 {
		builder.WriteString(fmt.Sprintf(" at position %d", e.Position))
	}

	if e.Token != "" {
		builder.WriteString(fmt.Sprintf(" (found '%s')", e.Token))
	}

	if len(e.Expected) > 0 {
		builder.WriteString(fmt.Sprintf(", expected: %s", strings.Join(e.Expected, ", ")))
	}

	if e.Context != "" {
		builder.WriteString(fmt.Sprintf("\nContext: %s", e.Context))
	}

	return builder.String()
}

func (e *ParseError) typeName() string {
	switch e.Type {
	case ErrorTypeSyntax:
		return "SYNTAX_ERROR"
	case ErrorTypeLexical:
		return "LEXICAL_ERROR"
	case ErrorTypeUnexpectedToken:
		return "UNEXPECTED_TOKEN"
	case ErrorTypeMissingToken:
		return "MISSING_TOKEN"
	case ErrorTypeInvalidNumber:
		return "INVALID_NUMBER"
	case ErrorTypeUnterminatedString:
		return "UNTERMINATED_STRING"
	default:
		return "UNKNOWN_ERROR"
	}
}

// newParseError computes line and column from the input text.
func newParseError(input string, typ ErrorType, position int, token string, message string, expected ...string) *ParseError {
	line, column := lineColumn(input, position)
	return &ParseError{
		Type:     typ,
		Message:  message,
		Position: position,
		Line:     line,
		Column:   column,
		Token:    token,
		Expected: expected,
		Context:  FormatErrorContext(input, position, 20),
	}
}

// lineColumn returns the 1-based line and column of pos.
func lineColumn(input string, position int) (int, int) {
	if position > len(input) {
		position = len(input)
	}
	line, column := 1, 1
	for i := 0; i < position; i++ {
		if input[i] == '\n' {
			line++
			column = 1
			continue
		}
		column++
	}
	return line, column
}

// FormatErrorContext renders up to contextLength bytes around position with
// a caret under it.
func FormatErrorContext(input string, position int, contextLength int) string {
	if position < 0 || position >= len(input) {
		return ""
	}

	start := position - contextLength
	if start < 0 {
		start = 0
	}

	end := position + contextLength
	if end > len(input) {
		end = len(input)
	}

	context := input[start:end]
	pointer := strings.Repeat(" ", position-start) + "^"

	return fmt.Sprintf("%s\n%s", context, pointer)
}

// ErrUnsupportedConstruct matches every UnsupportedError via errors.Is.
var ErrUnsupportedConstruct = errors.New("unsupported construct")

// UnsupportedError reports an expression variant that a rendering or the
// executable form cannot express.
type UnsupportedError struct {
	Construct string
	Reason    string
}

func (e *UnsupportedError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("unsupported construct %s", e.Construct)
	}
	return fmt.Sprintf("unsupported construct %s: %s", e.Construct, e.Reason)
}

func (e *UnsupportedError) Is(target error) bool {
	return target == ErrUnsupportedConstruct
}

func unsupported(construct, reason string) error {
	return &UnsupportedError{Construct: construct, Reason: reason}
}
