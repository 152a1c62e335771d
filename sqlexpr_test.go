package sqlexpr

import (
	"bytes"
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqlexpr/condition"
	"github.com/rulego/sqlexpr/functions"
	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/types"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	engine, err := New(append([]Option{WithDiscardLog()}, opts...)...)
	require.NoError(t, err)
	return engine
}

func TestEngineCompileText(t *testing.T) {
	engine := newTestEngine(t)
	schema, err := types.ParseSchema("deviceId STRING, temperature DOUBLE")
	require.NoError(t, err)

	pred, err := engine.CompileText("temperature > 30 AND deviceId LIKE 'sensor%'", schema)
	require.NoError(t, err)
	assert.Equal(t, "((temperature > 30) AND (deviceId LIKE 'sensor%'))", pred.Expression())

	ok, err := pred.Evaluate(types.Values{"sensor001", 35.5})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = pred.Evaluate(types.Values{"probe7", 35.5})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngineFormat(t *testing.T) {
	e, err := newTestEngine(t).Parse(`"select" + 1 > 2`)
	require.NoError(t, err)
	assert.Equal(t, `(("select" + 1) > 2)`, newTestEngine(t).Format(e))

	cfg := types.NewConfig()
	cfg.Format.Unmangle = false
	assert.Equal(t, `((select + 1) > 2)`, newTestEngine(t, WithConfig(cfg)).Format(e))
}

func TestEngineErrors(t *testing.T) {
	engine := newTestEngine(t)
	schema := types.MustSchema(types.Field{Name: "a", Type: types.Integer})

	_, err := engine.CompileText("a >", schema)
	assert.Error(t, err)

	_, err = engine.CompileText("missing > 1", schema)
	assert.True(t, condition.IsCompileError(err, condition.UnresolvedReference))

	_, err = engine.CompileText("a > 'x'", schema)
	assert.True(t, condition.IsCompileError(err, condition.TypeMismatch))
}

func TestEngineCompileLogsAnonymized(t *testing.T) {
	var buf bytes.Buffer
	engine := newTestEngine(t, WithLogOutput(&buf, logger.INFO))
	schema := types.MustSchema(types.Field{Name: "a", Type: types.Integer})

	_, err := engine.CompileText("a > 'secret'", schema)
	require.Error(t, err)
	out := buf.String()
	assert.Contains(t, out, "predicate compilation failed: TYPE_MISMATCH")
	assert.Contains(t, out, `query="(column1 > '[string]')"`)
	assert.NotContains(t, out, "secret")

	buf.Reset()
	_, err = engine.CompileText("a = 1", schema)
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestEngineCache(t *testing.T) {
	schema := types.MustSchema(types.Field{Name: "a", Type: types.Integer})

	cached := newTestEngine(t, WithCompileCache(8))
	p1, err := cached.CompileText("a > 1", schema)
	require.NoError(t, err)
	p2, err := cached.CompileText("(a > 1)", schema)
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	uncached := newTestEngine(t, WithoutCompileCache())
	p1, err = uncached.CompileText("a > 1", schema)
	require.NoError(t, err)
	p2, err = uncached.CompileText("a > 1", schema)
	require.NoError(t, err)
	assert.NotSame(t, p1, p2)
}

func TestEngineFunctions(t *testing.T) {
	registry := functions.NewBuiltinRegistry()
	fn, err := functions.NewCustomFunction("double_it", functions.TypeCustom, "custom", "double",
		1, 1, func(args []any) (any, error) {
			return args[0].(float64) * 2, nil
		}, new(func(float64) float64))
	require.NoError(t, err)
	require.NoError(t, registry.Register(fn))

	engine := newTestEngine(t, WithFunctions(registry))
	assert.Same(t, registry, engine.Functions())

	schema := types.MustSchema(types.Field{Name: "x", Type: types.Double})
	pred, err := engine.CompileText("double_it(x) = 5.0", schema)
	require.NoError(t, err)
	ok, err := pred.Evaluate(types.Values{2.5})
	require.NoError(t, err)
	assert.True(t, ok)

	// 全局注册器中没有该函数
	_, err = newTestEngine(t).CompileText("double_it(x) = 5.0", schema)
	assert.True(t, condition.IsCompileError(err, condition.CodegenFailure))
}

func TestEngineFilter(t *testing.T) {
	engine := newTestEngine(t)
	schema := types.MustSchema(
		types.Field{Name: "id", Type: types.BigInt},
		types.Field{Name: "name", Type: types.String},
	)
	pred, err := engine.CompileText("id >= 2 AND name <> 'c'", schema)
	require.NoError(t, err)

	rows := []types.Row{
		types.Values{int64(1), "a"},
		types.Values{int64(2), "b"},
		types.Values{int64(3), "c"},
		types.Values{int64(4), "d"},
	}
	out, err := engine.Filter(pred, rows)
	require.NoError(t, err)
	assert.Equal(t, []types.Row{rows[1], rows[3]}, out)

	// 含 NULL 的比较不成立
	out, err = engine.Filter(pred, []types.Row{types.Values{nil, "b"}, types.Values{int64(5), nil}})
	require.NoError(t, err)
	assert.Empty(t, out)

	// NULL 参与算术运算时求值失败
	pred, err = engine.CompileText("id + 1 > 2", schema)
	require.NoError(t, err)
	_, err = engine.Filter(pred, []types.Row{types.Values{int64(1), "a"}, types.Values{nil, "b"}})
	assert.ErrorContains(t, err, "row 1")

	_, err = engine.Filter(nil, rows)
	assert.Error(t, err)
}

func TestEngineFilterRecord(t *testing.T) {
	engine := newTestEngine(t)
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "v", Type: arrow.PrimitiveTypes.Int64},
	}, nil)
	builder := array.NewRecordBuilder(memory.DefaultAllocator, schema)
	defer builder.Release()
	builder.Field(0).(*array.Int64Builder).AppendValues([]int64{3, 8, 1, 9}, nil)
	rec := builder.NewRecordBatch()
	defer rec.Release()

	pred, err := engine.CompileText("v > 5", types.MustSchema(types.Field{Name: "v", Type: types.BigInt}))
	require.NoError(t, err)
	selected, err := engine.FilterRecord(pred, rec)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, selected)
}

func TestEngineOptions(t *testing.T) {
	cfg := types.NewConfig()
	cfg.QueryLog.Redact = "scramble"
	_, err := New(WithDiscardLog(), WithConfig(cfg))
	assert.Error(t, err)

	engine := newTestEngine(t, WithQueryLog(false, logger.ERROR), WithRedactMode(types.RedactHash))
	assert.False(t, engine.Config().QueryLog.Enabled)
	assert.Equal(t, "ERROR", engine.Config().QueryLog.Level)
	assert.Equal(t, types.RedactHash, engine.Config().QueryLog.Redact)

	var buf bytes.Buffer
	l := logger.NewLogger(logger.DEBUG, &buf)
	newTestEngine(t, WithLogger(l), WithLogLevel(logger.ERROR))
	l.Warn("hidden")
	assert.Empty(t, buf.String())
}

// TestEngineLogLevelKeepsDefault 只指定日志级别时不修改全局日志器
func TestEngineLogLevelKeepsDefault(t *testing.T) {
	original := logger.GetDefault()
	defer logger.SetDefault(original)

	var buf bytes.Buffer
	global := logger.NewLogger(logger.INFO, &buf)
	logger.SetDefault(global)

	engine, err := New(WithLogLevel(logger.OFF))
	require.NoError(t, err)
	assert.NotSame(t, global, engine.logger)

	logger.GetDefault().Info("still visible")
	assert.Contains(t, buf.String(), "still visible")

	// 编译失败的告警被私有日志器丢弃
	buf.Reset()
	_, err = engine.CompileText("a > 'x'", types.MustSchema(types.Field{Name: "a", Type: types.Integer}))
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestEngineAnonymize(t *testing.T) {
	engine := newTestEngine(t)
	e, err := engine.Parse("a > 3 AND b = 'x'")
	require.NoError(t, err)
	assert.Equal(t, "((column1 > 0) AND (column2 = '[string]'))", engine.Anonymize(e))
	assert.NotNil(t, engine.QueryLogger())
}

func TestEngineConcurrentEvaluate(t *testing.T) {
	engine := newTestEngine(t)
	schema := types.MustSchema(types.Field{Name: "n", Type: types.Integer})
	pred, err := engine.CompileText("n % 2 = 0", schema)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				ok, err := pred.Evaluate(types.Values{n + offset})
				assert.NoError(t, err)
				assert.Equal(t, (n+offset)%2 == 0, ok)
			}
		}(i)
	}
	wg.Wait()
}
