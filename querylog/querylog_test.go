package querylog

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"testing"

	"github.com/dchest/siphash"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/rsql"
	"github.com/rulego/sqlexpr/types"
)

func testConfig() types.QueryLogConfig {
	return types.NewConfig().QueryLog
}

func mustParse(t *testing.T, text string) rsql.Expression {
	t.Helper()
	e, err := rsql.ParseExpression(text)
	require.NoError(t, err)
	return e
}

func TestAnonymize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a > 3 AND b = 'x'", "((column1 > 0) AND (column2 = '[string]'))"},
		{"a = 1 OR a = b", "((column1 = 0) OR (column1 = column2))"},
		{"x = true AND y = 1.5", "((column1 = false) AND (column2 = 0.0))"},
		{"z IS NULL OR w = null", "((column1 IS NULL) OR (column2 = null))"},
		{"d = DATE '2024-01-01'", "(column1 = DATE '[value]')"},
		{"upper(name) LIKE 'A%'", "(upper(column1) LIKE '[string]')"},
		{"amount BETWEEN 1 AND DECIMAL '9.99'", "(column1 BETWEEN 0 AND DECIMAL '0')"},
		{`"select" IN (1, 2)`, "(column1 IN (0, 0))"},
		{"x IN (SELECT id FROM t WHERE secret = 1)", "(column1 IN (SELECT '[query]'))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Anonymize(testConfig(), mustParse(t, tt.input)))
		})
	}
}

func TestAnonymizeHash(t *testing.T) {
	cfg := testConfig()
	cfg.Redact = types.RedactHash
	cfg.HashKey0, cfg.HashKey1 = 1, 2

	digest := func(text string) string {
		var sum [8]byte
		binary.BigEndian.PutUint64(sum[:], siphash.Hash(1, 2, []byte(text)))
		return "'#" + hex.EncodeToString(sum[:]) + "'"
	}

	got := Anonymize(cfg, mustParse(t, "b = 'x' OR c = 'x' OR n = 5 OR m IS NULL"))
	assert.Equal(t, "((((column1 = "+digest("'x'")+") OR (column2 = "+digest("'x'")+")) OR (column3 = "+digest("5")+")) OR (column4 IS NULL))", got)

	cfg.HashKey1 = 3
	assert.NotEqual(t, got, Anonymize(cfg, mustParse(t, "b = 'x' OR c = 'x' OR n = 5 OR m IS NULL")))
}

func newTestLogger(t *testing.T, cfg types.QueryLogConfig) (*QueryLogger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	q, err := New(cfg, logger.NewLogger(logger.DEBUG, &buf))
	require.NoError(t, err)
	return q, &buf
}

func TestLog(t *testing.T) {
	q, buf := newTestLogger(t, testConfig())

	q.Info("query started", "a > 3 AND b = 'secret'")
	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, `message="query started"`)
	assert.Contains(t, out, `query="((column1 > 0) AND (column2 = '[string]'))"`)
	assert.Contains(t, out, `namespace="sqlexpr"`)
	assert.NotContains(t, out, "secret")

	buf.Reset()
	q.Error("query failed", "a > 3")
	assert.Contains(t, buf.String(), "[ERROR]")
}

func TestLogLevels(t *testing.T) {
	cfg := testConfig()
	cfg.Level = "WARN"
	q, buf := newTestLogger(t, cfg)

	q.Debug("debug", "a > 1")
	q.Info("info", "a > 1")
	assert.Empty(t, buf.String())

	q.Warn("warn", "a > 1")
	assert.Contains(t, buf.String(), "[WARN]")

	buf.Reset()
	q.Log(logger.OFF, "off", "a > 1")
	assert.Empty(t, buf.String())

	cfg.Enabled = false
	q, buf = newTestLogger(t, cfg)
	q.Error("disabled", "a > 1")
	assert.Empty(t, buf.String())
}

func TestLogParseFailure(t *testing.T) {
	q, buf := newTestLogger(t, testConfig())
	q.Info("bad query", "a > 'unterminated")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] failed to parse a query in query logger, message: bad query")
	assert.NotContains(t, out, "unterminated")
	assert.NotContains(t, out, "query=")
}

func TestLogExpression(t *testing.T) {
	q, buf := newTestLogger(t, testConfig())
	q.LogExpression(logger.INFO, "compiled", mustParse(t, "price * 2 > 10"))
	assert.Contains(t, buf.String(), `query="((column1 * 0) > 0)"`)

	// 不完整的节点只在 DEBUG 级别提示
	buf.Reset()
	q.LogExpression(logger.INFO, "broken", &rsql.Comparison{Operator: rsql.OpEqual, Left: &rsql.LongLiteral{Value: 1}})
	assert.Contains(t, buf.String(), "[DEBUG] failed to format a query in query logger, message: broken")
}

func TestBuildGuids(t *testing.T) {
	q, _ := newTestLogger(t, testConfig())

	m1, err := q.Build("m", mustParse(t, "a > 3 AND b = 'x'"))
	require.NoError(t, err)
	m2, err := q.Build("m", mustParse(t, "c > 7 AND d = 'y'"))
	require.NoError(t, err)

	assert.Equal(t, m1.Query, m2.Query)
	assert.Equal(t, m1.Guid.StructuralGUID, m2.Guid.StructuralGUID)
	assert.NotEqual(t, m1.Guid.QueryGUID, m2.Guid.QueryGUID)

	ns := uuid.NewSHA1(uuid.NameSpaceOID, []byte("sqlexpr"))
	assert.Equal(t, uuid.NewSHA1(ns, []byte("((a > 3) AND (b = 'x'))")).String(), m1.Guid.QueryGUID)
	assert.Equal(t, uuid.NewSHA1(ns, []byte(m1.Query)).String(), m1.Guid.StructuralGUID)

	cfg := testConfig()
	cfg.Namespace = "other"
	other, _ := newTestLogger(t, cfg)
	m3, err := other.Build("m", mustParse(t, "a > 3 AND b = 'x'"))
	require.NoError(t, err)
	assert.Equal(t, "other", m3.Guid.Namespace)
	assert.NotEqual(t, m1.Guid.QueryGUID, m3.Guid.QueryGUID)
}

func TestNewInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Level = "loud"
	_, err := New(cfg, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Redact = "scramble"
	_, err = New(cfg, nil)
	assert.Error(t, err)
}
