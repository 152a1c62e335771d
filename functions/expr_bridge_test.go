package functions

import (
	"strings"
	"testing"

	"github.com/expr-lang/expr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqlSymbol(name string) string {
	return "sql_" + strings.ReplaceAll(name, ".", "_")
}

func TestExprOptions(t *testing.T) {
	reg := NewBuiltinRegistry()
	require.NoError(t, reg.Register(mustCustom(t, "udf.count_args")))
	options := reg.ExprOptions(sqlSymbol)

	tests := []struct {
		code     string
		env      map[string]any
		expected any
	}{
		{`sql_upper(s) == "AB"`, map[string]any{"s": "ab"}, true},
		{`sql_lcase("AB")`, nil, "ab"},
		{`sql_like(s, "a%")`, map[string]any{"s": "abc"}, true},
		{`sql_like_escape("100%", "100!%", "!")`, nil, true},
		{`sql_abs(n) + 1`, map[string]any{"n": -2}, 3},
		{`sql_round(2.5)`, nil, float64(3)},
		{`sql_cast_integer("5") * 2`, nil, 10},
		{`sql_try_cast_integer("x") == nil`, nil, true},
		{`sql_udf_count_args(1, 2, 3)`, nil, 3},
		{`sql_substring("hello", 2, 3)`, nil, "ell"},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			opts := append([]expr.Option{expr.Env(tt.env)}, options...)
			program, err := expr.Compile(tt.code, opts...)
			require.NoError(t, err)
			out, err := expr.Run(program, tt.env)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestExprOptionsTypeCheck(t *testing.T) {
	options := NewBuiltinRegistry().ExprOptions(sqlSymbol)
	env := map[string]any{"n": 0}

	_, err := expr.Compile(`sql_upper(n)`, append([]expr.Option{expr.Env(env)}, options...)...)
	assert.Error(t, err)

	_, err = expr.Compile(`sql_like("a", "b", "c")`, append([]expr.Option{expr.Env(env)}, options...)...)
	assert.Error(t, err)
}

func TestExprOptionsRuntimeError(t *testing.T) {
	options := NewBuiltinRegistry().ExprOptions(sqlSymbol)
	env := map[string]any{"s": ""}
	program, err := expr.Compile(`sql_cast_integer(s) > 1`, append([]expr.Option{expr.Env(env)}, options...)...)
	require.NoError(t, err)
	_, err = expr.Run(program, map[string]any{"s": "x"})
	assert.Error(t, err)
}
