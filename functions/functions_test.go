package functions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuiltinFunctions 测试内置函数的基本功能
func TestBuiltinFunctions(t *testing.T) {
	reg := NewBuiltinRegistry()
	tests := []struct {
		name     string
		funcName string
		args     []any
		expected any
		wantErr  bool
	}{
		// 数学函数
		{name: "abs int", funcName: "abs", args: []any{-5}, expected: 5},
		{name: "abs bigint", funcName: "abs", args: []any{int64(-3)}, expected: int64(3)},
		{name: "abs double", funcName: "abs", args: []any{-2.5}, expected: 2.5},
		{name: "abs string", funcName: "abs", args: []any{"x"}, wantErr: true},
		{name: "abs null", funcName: "abs", args: []any{nil}, wantErr: true},
		{name: "abs arity", funcName: "abs", args: []any{1, 2}, wantErr: true},
		{name: "sqrt", funcName: "sqrt", args: []any{9}, expected: float64(3)},
		{name: "sqrt negative", funcName: "sqrt", args: []any{-1}, wantErr: true},
		{name: "ceil", funcName: "ceil", args: []any{1.2}, expected: float64(2)},
		{name: "ceiling alias", funcName: "CEILING", args: []any{1.2}, expected: float64(2)},
		{name: "floor", funcName: "floor", args: []any{-1.5}, expected: float64(-2)},
		{name: "round", funcName: "round", args: []any{2.5}, expected: float64(3)},
		{name: "round precision", funcName: "round", args: []any{3.14159, 2}, expected: 3.14},

		// 字符串函数
		{name: "upper", funcName: "upper", args: []any{"abc"}, expected: "ABC"},
		{name: "ucase alias", funcName: "ucase", args: []any{"abc"}, expected: "ABC"},
		{name: "lower", funcName: "lower", args: []any{"AbC"}, expected: "abc"},
		{name: "lcase alias", funcName: "lcase", args: []any{"AbC"}, expected: "abc"},
		{name: "length runes", funcName: "length", args: []any{"héllo"}, expected: 5},
		{name: "len alias", funcName: "len", args: []any{""}, expected: 0},
		{name: "trim", funcName: "trim", args: []any{"  x \t"}, expected: "x"},
		{name: "concat", funcName: "concat", args: []any{"a", 1, true}, expected: "a1true"},
		{name: "concat null", funcName: "concat", args: []any{"a", nil}, wantErr: true},
		{name: "substring from", funcName: "substring", args: []any{"hello", 2}, expected: "ello"},
		{name: "substring len", funcName: "substring", args: []any{"hello", 2, 3}, expected: "ell"},
		{name: "substring before start", funcName: "substring", args: []any{"hello", 0, 2}, expected: "h"},
		{name: "substring past end", funcName: "substring", args: []any{"hello", 10}, expected: ""},
		{name: "substring negative len", funcName: "substring", args: []any{"hello", 2, -1}, expected: ""},
		{name: "substr runes", funcName: "substr", args: []any{"日本語", 2, 1}, expected: "本"},
		{name: "substring arity", funcName: "substring", args: []any{"hello"}, wantErr: true},

		// 转换函数
		{name: "cast integer", funcName: "cast_integer", args: []any{"42"}, expected: 42},
		{name: "cast integer invalid", funcName: "cast_integer", args: []any{"x"}, wantErr: true},
		{name: "try cast integer invalid", funcName: "try_cast_integer", args: []any{"x"}, expected: nil},
		{name: "try cast integer", funcName: "try_cast_integer", args: []any{"7"}, expected: 7},
		{name: "cast bigint", funcName: "cast_bigint", args: []any{7}, expected: int64(7)},
		{name: "cast double", funcName: "cast_double", args: []any{"1.5"}, expected: 1.5},
		{name: "cast string", funcName: "cast_string", args: []any{12}, expected: "12"},
		{name: "cast boolean", funcName: "cast_boolean", args: []any{"true"}, expected: true},
		{name: "cast null", funcName: "cast_integer", args: []any{nil}, expected: nil},
		{name: "try cast boolean invalid", funcName: "try_cast_boolean", args: []any{"maybe"}, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := reg.Execute(tt.funcName, tt.args)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestCastTimestamp(t *testing.T) {
	reg := NewBuiltinRegistry()
	out, err := reg.Execute("cast_timestamp", []any{"2024-01-02"})
	require.NoError(t, err)
	ts, ok := out.(time.Time)
	require.True(t, ok)
	assert.True(t, ts.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))

	_, err = reg.Execute("cast_timestamp", []any{"not a time"})
	assert.Error(t, err)
}

func TestCastFunctionName(t *testing.T) {
	fn := NewCastFunction(CastTargets[1])
	assert.Equal(t, "cast_integer", fn.GetName())
	assert.Equal(t, TypeConversion, fn.GetType())
	assert.Len(t, fn.Signatures(), 1)
	assert.Equal(t, "try_cast_integer", NewTryCastFunction(CastTargets[1]).GetName())
}
