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

package sqlexpr

import (
	"errors"
	"fmt"
	"os"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/rulego/sqlexpr/condition"
	"github.com/rulego/sqlexpr/dataset"
	"github.com/rulego/sqlexpr/functions"
	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/querylog"
	"github.com/rulego/sqlexpr/rsql"
	"github.com/rulego/sqlexpr/types"
)

// Engine 把表达式的格式化、解析、编译和过滤组合在一起。
// Engine 创建后只读，可以被多个 goroutine 共享。
//
// 使用示例:
//
//	engine, err := sqlexpr.New()
//	schema := types.MustSchema(types.Field{Name: "temperature", Type: types.Double})
//	pred, err := engine.CompileText("temperature > 30", schema)
//	ok, err := pred.Evaluate(types.Values{35.5})
type Engine struct {
	cfg       types.Config
	logger    logger.Logger
	level     *logger.Level
	functions *functions.FunctionRegistry
	compiler  *condition.Compiler
	queryLog  *querylog.QueryLogger
}

// New 创建 Engine。
//
// 示例:
//
//	// 默认配置
//	engine, err := sqlexpr.New()
//
//	// 调试日志，不使用编译缓存
//	engine, err := sqlexpr.New(sqlexpr.WithLogLevel(logger.DEBUG), sqlexpr.WithoutCompileCache())
func New(options ...Option) (*Engine, error) {
	e := &Engine{cfg: types.NewConfig()}
	for _, option := range options {
		option(e)
	}
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case e.logger == nil && e.level != nil:
		// 只指定级别时使用私有的日志器，全局日志器保持不变
		e.logger = logger.NewLogger(*e.level, os.Stderr)
	case e.logger == nil:
		e.logger = logger.GetDefault()
	case e.level != nil:
		e.logger.SetLevel(*e.level)
	}
	if e.functions == nil {
		e.functions = functions.Default()
	}

	compilerOpts := []condition.Option{
		condition.WithFunctions(e.functions),
		condition.WithLogger(e.logger),
	}
	if e.cfg.Compiler.EnableCache {
		compilerOpts = append(compilerOpts, condition.WithCache(e.cfg.Compiler.MaxCacheEntries))
	}
	e.compiler = condition.NewCompiler(compilerOpts...)

	ql, err := querylog.New(e.cfg.QueryLog, e.logger)
	if err != nil {
		return nil, fmt.Errorf("create query logger: %w", err)
	}
	e.queryLog = ql
	return e, nil
}

// Config 返回生效的配置
func (e *Engine) Config() types.Config {
	return e.cfg
}

// Functions 返回 Engine 使用的函数注册器
func (e *Engine) Functions() *functions.FunctionRegistry {
	return e.functions
}

// QueryLogger 返回 Engine 的查询日志器
func (e *Engine) QueryLogger() *querylog.QueryLogger {
	return e.queryLog
}

// Format 按配置的标识符引用策略输出规范文本
func (e *Engine) Format(expr rsql.Expression) string {
	return rsql.FormatExpressionWith(expr, e.cfg.Format.Unmangle)
}

// Anonymize 输出隐藏了列名和字面量的文本
func (e *Engine) Anonymize(node rsql.Node) string {
	return e.queryLog.Anonymize(node)
}

// Parse 解析单个表达式
func (e *Engine) Parse(text string) (rsql.Expression, error) {
	return rsql.ParseExpression(text)
}

// Compile 编译谓词。编译失败会写入查询日志，日志中只出现匿名化的文本
func (e *Engine) Compile(expr rsql.Expression, schema *types.Schema) (*condition.CompiledPredicate, error) {
	pred, err := e.compiler.Compile(expr, schema)
	if err != nil {
		if expr != nil {
			e.queryLog.LogExpression(logger.WARN, "predicate compilation failed: "+compileErrorKind(err), expr)
		}
		return nil, err
	}
	e.queryLog.LogExpression(logger.DEBUG, "predicate compiled", expr)
	return pred, nil
}

// compileErrorKind 错误信息可能包含字面量，日志只记录错误类别
func compileErrorKind(err error) string {
	var ce *condition.CompileError
	if errors.As(err, &ce) {
		return ce.Kind.String()
	}
	return "UNKNOWN"
}

// CompileText 解析并编译谓词
func (e *Engine) CompileText(text string, schema *types.Schema) (*condition.CompiledPredicate, error) {
	expr, err := e.Parse(text)
	if err != nil {
		e.queryLog.Debug("predicate parse failed", text)
		return nil, err
	}
	return e.Compile(expr, schema)
}

// Filter 返回谓词为 true 的行，任意一行求值失败时返回错误
func (e *Engine) Filter(pred *condition.CompiledPredicate, rows []types.Row) ([]types.Row, error) {
	if pred == nil {
		return nil, fmt.Errorf("predicate is nil")
	}
	var out []types.Row
	for i, row := range rows {
		ok, err := pred.Evaluate(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

// FilterRecord 对 Arrow 批次求值，返回选中的行号
func (e *Engine) FilterRecord(pred *condition.CompiledPredicate, rec arrow.RecordBatch) ([]int, error) {
	return dataset.FilterRecord(pred, rec)
}
