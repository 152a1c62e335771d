package rsql

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// columnResolver binds every name reference to p_<dotted name with _>.
func columnResolver(e Expression) (string, bool) {
	switch r := e.(type) {
	case *QualifiedNameReference:
		return "p_" + strings.Join(r.Name, "_"), true
	case *FieldReference:
		return "f" + string(rune('0'+r.Index)), true
	}
	return "", false
}

func TestCodegen(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a > 3 AND b = 'x'", `((p_a != nil && p_a > 3) && (p_b != nil && p_b == "x"))`},
		{"a <> 1 OR a IS DISTINCT FROM b", `((p_a != nil && p_a != 1) || ((p_a == nil || p_b == nil) ? ((p_a == nil) != (p_b == nil)) : (p_a != p_b)))`},
		{"a IS DISTINCT FROM 3", `(p_a == nil || p_a != 3)`},
		{"3 IS DISTINCT FROM a", `(p_a == nil || 3 != p_a)`},
		{"a IS NOT DISTINCT FROM NULL", `(!(p_a != nil))`},
		{"NULL IS DISTINCT FROM NULL", `false`},
		{"a = NULL", `false`},
		{"1 < 2", `(1 < 2)`},
		{"NOT (a IS NULL)", `(!(p_a == nil))`},
		{"a IS NOT NULL", `(p_a != nil)`},
		{"a BETWEEN 1 AND 5", `(p_a != nil && (p_a >= 1) && (p_a <= 5))`},
		{"a NOT BETWEEN b AND 5", `(!(p_a != nil && p_b != nil && (p_a >= p_b) && (p_a <= 5)))`},
		{"a IN (1, 2)", `(p_a != nil && p_a in [1, 2])`},
		{"1 IN (1, 2)", `(1 in [1, 2])`},
		{"b LIKE 'x%'", `sql_like(p_b, "x%")`},
		{"b LIKE 'x!%' ESCAPE '!'", `sql_like_escape(p_b, "x!%", "!")`},
		{"CASE WHEN a > 1 THEN 'hi' ELSE 'lo' END", `((p_a != nil && p_a > 1) ? "hi" : "lo")`},
		{"CASE a WHEN 1 THEN 'one' WHEN 2 THEN 'two' END", `((p_a != nil && p_a == 1) ? "one" : ((p_a != nil && p_a == 2) ? "two" : nil))`},
		{"COALESCE(a, b, 0) > 1", `(((p_a != nil) ? p_a : ((p_b != nil) ? p_b : 0)) != nil && ((p_a != nil) ? p_a : ((p_b != nil) ? p_b : 0)) > 1)`},
		{"NULLIF(a, 0)", `((p_a != nil && p_a == 0) ? nil : p_a)`},
		{"IF(a > 1, 1)", `((p_a != nil && p_a > 1) ? 1 : nil)`},
		{"CAST(a AS VARCHAR)", `sql_cast_string(p_a)`},
		{"TRY_CAST(b AS INT)", `sql_try_cast_integer(p_b)`},
		{"CAST(a AS DECIMAL(10, 2))", `sql_cast_double(p_a)`},
		{"-a + 1.5", `((-p_a) + 1.5)`},
		{"+a", `(+p_a)`},
		{"a * 2 % 3 / 4 - 1", `(sql__divide(sql__modulo((p_a * 2), 3), 4) - 1)`},
		{"upper(b) = 'X'", `(sql_upper(p_b) != nil && sql_upper(p_b) == "X")`},
		{"db.fn(a)", `sql_db_fn(p_a)`},
		{"arr[1]", `sql__subscript(p_arr, 1)`},
		{"arr[i + 1]", `sql__subscript(p_arr, (p_i + 1))`},
		{"s.f", `p_s_f`},
		{"(s).f", `p_s["f"]`},
		{"ts > TIMESTAMP '2024-01-01 00:00:00'", `(p_ts != nil && p_ts > date("2024-01-01 00:00:00"))`},
		{"d = DATE '2024-01-01'", `(p_d != nil && p_d == date("2024-01-01"))`},
		{"BIGINT '5' = a", `(p_a != nil && sql_cast_bigint("5") == p_a)`},
		{"DECIMAL '1.50'", `1.5`},
		{"-2.5", `(-2.5)`},
		{"INTERVAL '2' DAY", `duration("48h")`},
		{"INTERVAL - '30' MINUTE", `duration("-30m")`},
		{"ARRAY[1, 2]", `[1, 2]`},
		{"CURRENT_TIMESTAMP", `now()`},
		{"true AND NULL IS NULL", `(true && (nil == nil))`},
		{"'say \"hi\"'", `"say \"hi\""`},
	}
	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			e, err := ParseExpression(test.input)
			require.NoError(t, err)
			code, err := Codegen(e, columnResolver)
			require.NoError(t, err)
			assert.Equal(t, test.expected, code)
		})
	}
}

func TestCodegenConstructed(t *testing.T) {
	code, err := Codegen(&Comparison{Operator: OpGreaterThan, Left: &FieldReference{Index: 1}, Right: &LongLiteral{Value: math.MinInt64}}, columnResolver)
	require.NoError(t, err)
	assert.Equal(t, "(f1 != nil && f1 > (-9223372036854775807 - 1))", code)

	code, err = Codegen(&DoubleLiteral{Value: 1e21}, nil)
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000000.0", code)

	_, err = Codegen(&DoubleLiteral{Value: math.NaN()}, nil)
	assert.ErrorIs(t, err, ErrUnsupportedConstruct)
}

func TestCodegenUnsupported(t *testing.T) {
	tests := []string{
		"transform(a, x -> x)",
		"ROW (1)",
		"TRY(a)",
		"X'00' = a",
		"sum(DISTINCT a)",
		"rank() OVER (ORDER BY a)",
		"a IN (SELECT 1)",
		"EXISTS (SELECT 1)",
		"ts AT TIME ZONE 'UTC'",
		"EXTRACT(YEAR FROM ts)",
		"CURRENT_DATE",
		"TIME '12:00:00'",
		"CAST(a AS ARRAY<INT>)",
		"CAST(a AS GEOMETRY)",
		"INTERVAL '1' YEAR",
		"INTERVAL '1' DAY TO HOUR",
		"INTERVAL '1.5' HOUR",
		"count(t.*)",
		"f(*, 1)",
	}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			e, err := ParseExpression(input)
			require.NoError(t, err)
			_, err = Codegen(e, columnResolver)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUnsupportedConstruct)
			var ue *UnsupportedError
			assert.True(t, errors.As(err, &ue))
			assert.NotEmpty(t, ue.Construct)
		})
	}
}

func TestCodegenUnresolved(t *testing.T) {
	e, err := ParseExpression("a > 1")
	require.NoError(t, err)
	_, err = Codegen(e, func(Expression) (string, bool) { return "", false })
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnsupportedConstruct)
	assert.Contains(t, err.Error(), "unresolved reference a")
}

func TestFunctionSymbol(t *testing.T) {
	assert.Equal(t, "sql_len", FunctionSymbol(NewQualifiedName("LEN")))
	assert.Equal(t, "sql_udf_my_fn", FunctionSymbol(NewQualifiedName("udf", "My_Fn")))
}

func TestFunctionValidator(t *testing.T) {
	known := map[string]bool{"upper": true}
	fv := NewFunctionValidator(func(n string) bool { return known[strings.ToLower(n)] })

	e, err := ParseExpression("UPPER(a) = lower(b) AND lower(c) = nope(d)")
	require.NoError(t, err)
	err = fv.Validate(e)
	var ue *UnknownFunctionError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, []string{"lower", "nope"}, ue.Names)
	assert.Equal(t, "unknown functions 'lower', 'nope'", err.Error())

	e, err = ParseExpression("upper(a) = 'X'")
	require.NoError(t, err)
	assert.NoError(t, fv.Validate(e))
}
