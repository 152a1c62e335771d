package rsql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func name(parts ...string) *QualifiedNameReference {
	return &QualifiedNameReference{Name: NewQualifiedName(parts...)}
}

func TestParseExpression(t *testing.T) {
	three := 3
	tests := []struct {
		input    string
		expected Expression
	}{
		{
			input: "a > 3 AND b = 'x'",
			expected: &LogicalBinary{Operator: OpAnd,
				Left:  &Comparison{Operator: OpGreaterThan, Left: name("a"), Right: &LongLiteral{Value: 3}},
				Right: &Comparison{Operator: OpEqual, Left: name("b"), Right: &StringLiteral{Value: "x"}},
			},
		},
		{
			input: "a OR b AND NOT c",
			expected: &LogicalBinary{Operator: OpOr,
				Left:  name("a"),
				Right: &LogicalBinary{Operator: OpAnd, Left: name("b"), Right: &Not{Value: name("c")}},
			},
		},
		{
			input: "1 + 2 * 3 - 4",
			expected: &ArithmeticBinary{Operator: OpSubtract,
				Left: &ArithmeticBinary{Operator: OpAdd,
					Left:  &LongLiteral{Value: 1},
					Right: &ArithmeticBinary{Operator: OpMultiply, Left: &LongLiteral{Value: 2}, Right: &LongLiteral{Value: 3}},
				},
				Right: &LongLiteral{Value: 4},
			},
		},
		{
			input:    "- -x",
			expected: &ArithmeticUnary{Sign: SignMinus, Value: &ArithmeticUnary{Sign: SignMinus, Value: name("x")}},
		},
		{
			input:    "t.col",
			expected: name("t", "col"),
		},
		{
			input:    "(t).col",
			expected: &Dereference{Base: name("t"), Field: "col"},
		},
		{
			input:    `"select"."from"`,
			expected: name("select", "from"),
		},
		{
			input:    "arr[1].f",
			expected: &Dereference{Base: &Subscript{Base: name("arr"), Index: &LongLiteral{Value: 1}}, Field: "f"},
		},
		{
			input:    "x NOT LIKE 'a%' ESCAPE '!'",
			expected: &Not{Value: &Like{Value: name("x"), Pattern: &StringLiteral{Value: "a%"}, Escape: &StringLiteral{Value: "!"}}},
		},
		{
			input:    "x BETWEEN 1 AND 2 AND y",
			expected: &LogicalBinary{Operator: OpAnd, Left: &Between{Value: name("x"), Min: &LongLiteral{Value: 1}, Max: &LongLiteral{Value: 2}}, Right: name("y")},
		},
		{
			input:    "x IN (1, 2)",
			expected: &InPredicate{Value: name("x"), ValueList: &InList{Values: []Expression{&LongLiteral{Value: 1}, &LongLiteral{Value: 2}}}},
		},
		{
			input:    "x IN (SELECT id FROM t)",
			expected: &InPredicate{Value: name("x"), ValueList: &Subquery{Query: &RawStatement{SQL: "SELECT id FROM t"}}},
		},
		{
			input:    "x IS NOT DISTINCT FROM y",
			expected: &Not{Value: &Comparison{Operator: OpIsDistinctFrom, Left: name("x"), Right: name("y")}},
		},
		{
			input:    "count(*)",
			expected: &FunctionCall{Name: NewQualifiedName("count")},
		},
		{
			input:    "sum(DISTINCT x)",
			expected: &FunctionCall{Name: NewQualifiedName("sum"), Distinct: true, Arguments: []Expression{name("x")}},
		},
		{
			input: "transform(xs, x -> x * 2)",
			expected: &FunctionCall{Name: NewQualifiedName("transform"), Arguments: []Expression{
				name("xs"),
				&Lambda{Arguments: []string{"x"}, Body: &ArithmeticBinary{Operator: OpMultiply, Left: name("x"), Right: &LongLiteral{Value: 2}}},
			}},
		},
		{
			input: "reduce(xs, 0, (s, x) -> s + x)",
			expected: &FunctionCall{Name: NewQualifiedName("reduce"), Arguments: []Expression{
				name("xs"),
				&LongLiteral{Value: 0},
				&Lambda{Arguments: []string{"s", "x"}, Body: &ArithmeticBinary{Operator: OpAdd, Left: name("s"), Right: name("x")}},
			}},
		},
		{
			input: "row_number() OVER (PARTITION BY a ORDER BY b DESC NULLS FIRST ROWS BETWEEN 2 PRECEDING AND CURRENT ROW)",
			expected: &FunctionCall{Name: NewQualifiedName("row_number"), Window: &Window{
				PartitionBy: []Expression{name("a")},
				OrderBy:     []*SortItem{{SortKey: name("b"), Ordering: Descending, NullOrdering: NullsFirst}},
				Frame: &WindowFrame{Type: FrameRows,
					Start: &FrameBound{Type: Preceding, Value: &LongLiteral{Value: 2}},
					End:   &FrameBound{Type: CurrentRow},
				},
			}},
		},
		{
			input: "CASE WHEN a THEN 1 ELSE 2 END",
			expected: &SearchedCase{
				WhenClauses: []*WhenClause{{Operand: name("a"), Result: &LongLiteral{Value: 1}}},
				Default:     &LongLiteral{Value: 2},
			},
		},
		{
			input: "CASE a WHEN 1 THEN 'one' END",
			expected: &SimpleCase{Operand: name("a"),
				WhenClauses: []*WhenClause{{Operand: &LongLiteral{Value: 1}, Result: &StringLiteral{Value: "one"}}},
			},
		},
		{
			input:    "CAST(a AS DECIMAL(10, 2))",
			expected: &Cast{Expression: name("a"), Type: "DECIMAL(10, 2)"},
		},
		{
			input:    "try_cast(a AS map<string, int>)",
			expected: &Cast{Expression: name("a"), Type: "map<string, int>", Safe: true},
		},
		{
			input:    "INTERVAL - '3' HOUR TO MINUTE",
			expected: &IntervalLiteral{Value: "3", Sign: IntervalNegative, StartField: IntervalHour, EndField: IntervalMinute},
		},
		{
			input:    "DATE '2024-01-01'",
			expected: &GenericLiteral{Type: "DATE", Value: "2024-01-01"},
		},
		{
			input:    "DECIMAL '1.50'",
			expected: &DecimalLiteral{Value: "1.50"},
		},
		{
			input:    "X'cafe'",
			expected: &BinaryLiteral{Value: []byte{0xca, 0xfe}},
		},
		{
			input:    "ts AT TIME ZONE 'UTC'",
			expected: &AtTimeZone{Value: name("ts"), TimeZone: &StringLiteral{Value: "UTC"}},
		},
		{
			input:    "current_timestamp(3)",
			expected: &CurrentTime{Type: CurrentTimestamp, Precision: &three},
		},
		{
			input:    "EXTRACT(year FROM ts)",
			expected: &Extract{Field: "YEAR", Expression: name("ts")},
		},
		{
			input:    "EXISTS (SELECT 1 FROM t WHERE (a = 1))",
			expected: &Exists{Query: &RawStatement{SQL: "SELECT 1 FROM t WHERE (a = 1)"}},
		},
		{
			input:    "IF(a, 1)",
			expected: &If{Condition: name("a"), TrueValue: &LongLiteral{Value: 1}},
		},
		{
			input:    "ROW (1, ARRAY[2])",
			expected: &Row{Items: []Expression{&LongLiteral{Value: 1}, &ArrayConstructor{Values: []Expression{&LongLiteral{Value: 2}}}}},
		},
		{
			input:    "1.5e3",
			expected: &DoubleLiteral{Value: 1500},
		},
		{
			input:    "NULL IS NULL",
			expected: &IsNull{Value: &NullLiteral{}},
		},
		{
			input:    "-5",
			expected: &ArithmeticUnary{Sign: SignMinus, Value: &LongLiteral{Value: 5}},
		},
		{
			input:    "-2.5",
			expected: &ArithmeticUnary{Sign: SignMinus, Value: &DoubleLiteral{Value: 2.5}},
		},
		{
			input:    "count(DISTINCT *)",
			expected: &FunctionCall{Name: NewQualifiedName("count"), Distinct: true},
		},
		{
			input:    "count(t.*)",
			expected: &FunctionCall{Name: NewQualifiedName("count"), Arguments: []Expression{&AllColumns{Prefix: NewQualifiedName("t")}}},
		},
		{
			input:    "f(*, a)",
			expected: &FunctionCall{Name: NewQualifiedName("f"), Arguments: []Expression{&AllColumns{}, name("a")}},
		},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			e, err := ParseExpression(test.input)
			require.NoError(t, err)
			assert.Equal(t, test.expected, e)
		})
	}
}

// TestParseErrors checks error kinds and positions.
func TestParseErrors(t *testing.T) {
	tests := []struct {
		input    string
		errType  ErrorType
		position int
		line     int
		column   int
	}{
		{"a >", ErrorTypeMissingToken, 3, 1, 4},
		{"a b", ErrorTypeUnexpectedToken, 2, 1, 3},
		{"a\n  AND )", ErrorTypeUnexpectedToken, 8, 2, 7},
		{"99999999999999999999", ErrorTypeInvalidNumber, 0, 1, 1},
		{"x IN ()", ErrorTypeSyntax, 5, 1, 6},
		{"CASE END", ErrorTypeUnexpectedToken, 5, 1, 6},
		{"NULLIF(a)", ErrorTypeSyntax, 0, 1, 1},
		{"INTERVAL '1' WEEK", ErrorTypeUnexpectedToken, 13, 1, 14},
		{"", ErrorTypeMissingToken, 0, 1, 1},
		{"(SELECT 1", ErrorTypeMissingToken, 0, 1, 1},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			_, err := ParseExpression(test.input)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, test.errType, pe.Type, pe.Error())
			assert.Equal(t, test.position, pe.Position)
			assert.Equal(t, test.line, pe.Line)
			assert.Equal(t, test.column, pe.Column)
		})
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseExpression("a = = b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[UNEXPECTED_TOKEN] unexpected token '='")
	assert.Contains(t, err.Error(), "at line 1, column 5")
	assert.Contains(t, err.Error(), "expected: expression")
}

func TestParseDepthLimit(t *testing.T) {
	input := ""
	for i := 0; i < maxDepth; i++ {
		input += "("
	}
	input += "1"
	for i := 0; i < maxDepth; i++ {
		input += ")"
	}
	_, err := ParseExpression(input)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, pe.Message, "too deep")
}
