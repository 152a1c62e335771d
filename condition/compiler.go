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

package condition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/parser"

	"github.com/rulego/sqlexpr/functions"
	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/rsql"
	"github.com/rulego/sqlexpr/types"
)

// Compiler 把布尔表达式编译为可执行谓词。编译在查询构建阶段进行，
// 任何错误都会使查询无法启动
type Compiler struct {
	functions *functions.FunctionRegistry
	logger    logger.Logger
	cache     *predicateCache
}

// Option 编译器选项
type Option func(*Compiler)

// WithFunctions 指定函数注册器，默认使用全局注册器
func WithFunctions(r *functions.FunctionRegistry) Option {
	return func(c *Compiler) {
		c.functions = r
	}
}

// WithLogger 指定日志器，默认使用全局日志器
func WithLogger(l logger.Logger) Option {
	return func(c *Compiler) {
		c.logger = l
	}
}

// WithCache 启用编译缓存，maxEntries 为 0 表示不限容量
func WithCache(maxEntries int) Option {
	return func(c *Compiler) {
		c.cache = newPredicateCache(maxEntries)
	}
}

// NewCompiler 创建编译器
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		opt(c)
	}
	if c.functions == nil {
		c.functions = functions.Default()
	}
	return c
}

// log 未指定日志器时使用当前的全局日志器
func (c *Compiler) log() logger.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logger.GetDefault()
}

var defaultCompiler = NewCompiler()

// Compile 使用默认编译器编译谓词
func Compile(e rsql.Expression, schema *types.Schema) (*CompiledPredicate, error) {
	return defaultCompiler.Compile(e, schema)
}

// Compile 编译谓词：引用分析、生成执行代码、语法检查、按 schema 类型检查并编译
func (c *Compiler) Compile(e rsql.Expression, schema *types.Schema) (*CompiledPredicate, error) {
	if e == nil {
		return nil, &CompileError{Kind: CodegenFailure, Err: errors.New("expression is nil")}
	}
	if schema == nil {
		return nil, &CompileError{Kind: CodegenFailure, Err: errors.New("schema is nil")}
	}

	text := rsql.FormatExpression(e)
	schemaText := schema.String()
	if c.cache != nil {
		if p, ok := c.cache.get(text, schemaText); ok {
			c.log().Debug("predicate cache hit: %s", text)
			return p, nil
		}
	}

	p, err := c.compile(e, text, schema)
	if err != nil {
		c.log().Debug("compile %s failed: %v", text, err)
		return nil, err
	}
	c.log().Debug("compiled predicate %s as %s", text, p.source)

	if c.cache != nil {
		p = c.cache.put(text, schemaText, p)
	}
	return p, nil
}

func (c *Compiler) compile(e rsql.Expression, text string, schema *types.Schema) (*CompiledPredicate, error) {
	a, err := analyze(e, schema)
	if err != nil {
		var ce *CompileError
		if errors.As(err, &ce) {
			ce.Expression = text
		}
		return nil, err
	}

	names := make([]string, len(a.params))
	for i, param := range a.params {
		names[i] = parameterName(i, param.Name)
	}
	resolve := func(n rsql.Expression) (string, bool) {
		ordinal, ok := a.bindings[n]
		if !ok {
			return "", false
		}
		return names[ordinal], true
	}

	source, err := rsql.Codegen(e, resolve)
	if err != nil {
		if errors.Is(err, rsql.ErrUnsupportedConstruct) {
			return nil, &CompileError{Kind: UnsupportedConstruct, Expression: text, Err: err}
		}
		return nil, &CompileError{Kind: CodegenFailure, Expression: text, Err: err}
	}

	// 编译后的谓词持有函数注册器的快照
	registry := c.functions.Clone()
	if err := rsql.NewFunctionValidator(registry.Exists).Validate(e); err != nil {
		return nil, &CompileError{Kind: CodegenFailure, Expression: text, Source: source, Err: err}
	}

	if _, err := parser.Parse(source); err != nil {
		return nil, &CompileError{Kind: CodegenFailure, Expression: text, Source: source, Err: err}
	}

	env := make(map[string]any, len(a.params))
	for i, param := range a.params {
		env[names[i]] = param.Type.Zero()
	}
	options := append([]expr.Option{expr.Env(env), expr.AsBool()}, operatorOptions()...)
	options = append(options, registry.ExprOptions(functionSymbol)...)
	program, err := expr.Compile(source, options...)
	if err != nil {
		return nil, &CompileError{Kind: TypeMismatch, Expression: text, Source: source, Err: err}
	}

	indexes := make([]int, len(a.params))
	for i, param := range a.params {
		indexes[i] = param.Index
	}
	return &CompiledPredicate{
		params:     a.params,
		names:      names,
		indexes:    indexes,
		expression: text,
		source:     source,
		program:    program,
	}, nil
}

// functionSymbol 注册名到执行代码中调用名的映射，与代码生成一致
func functionSymbol(name string) string {
	return rsql.FunctionSymbol(rsql.NewQualifiedName(strings.Split(name, ".")...))
}

// parameterName 生成参数在执行代码中的变量名，序号保证唯一
func parameterName(ordinal int, column string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "p%d_", ordinal)
	for _, r := range column {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('_')
		}
	}
	return sb.String()
}
