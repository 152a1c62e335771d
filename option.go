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
	"io"

	"github.com/rulego/sqlexpr/functions"
	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/types"
)

// Option 表示对 Engine 默认行为的修改配置。
// 选项按传入顺序依次应用，后面的选项覆盖前面的设置。
type Option func(*Engine)

// WithLogger 设置自定义日志记录器。
// 编译器和查询日志都写入该记录器，不影响全局日志器。
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	engine, err := sqlexpr.New(sqlexpr.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		e.logger = log
	}
}

// WithLogLevel 设置日志级别，在全部选项应用之后生效。
// 通过选项提供了日志记录器时调整该记录器的级别；
// 否则 Engine 使用写入 stderr 的私有记录器，全局日志器不受影响。
//
// 参数:
//   - level: 日志级别，可选值：DEBUG, INFO, WARN, ERROR, OFF
func WithLogLevel(level logger.Level) Option {
	return func(e *Engine) {
		e.level = &level
	}
}

// WithLogOutput 设置日志输出目标和级别。
//
// 示例:
//
//	logFile, _ := os.OpenFile("sqlexpr.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
//	engine, err := sqlexpr.New(sqlexpr.WithLogOutput(logFile, logger.INFO))
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(e *Engine) {
		e.logger = logger.NewLogger(level, output)
	}
}

// WithDiscardLog 禁用日志输出
func WithDiscardLog() Option {
	return func(e *Engine) {
		e.logger = logger.NewDiscardLogger()
	}
}

// WithConfig 使用完整配置替换默认配置。
// 配置在 New 中校验，无效配置使 New 返回错误。
func WithConfig(cfg types.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithFunctions 指定函数注册器，默认使用全局注册器。
// 编译后的谓词持有注册器的副本，之后的注册不影响已编译的谓词。
//
// 示例:
//
//	registry := functions.NewBuiltinRegistry()
//	_ = registry.Register(myFunction)
//	engine, err := sqlexpr.New(sqlexpr.WithFunctions(registry))
func WithFunctions(r *functions.FunctionRegistry) Option {
	return func(e *Engine) {
		e.functions = r
	}
}

// WithCompileCache 启用编译缓存并设置容量，0 表示不限容量
func WithCompileCache(maxEntries int) Option {
	return func(e *Engine) {
		e.cfg.Compiler.EnableCache = true
		e.cfg.Compiler.MaxCacheEntries = maxEntries
	}
}

// WithoutCompileCache 关闭编译缓存，每次编译都重新生成谓词
func WithoutCompileCache() Option {
	return func(e *Engine) {
		e.cfg.Compiler.EnableCache = false
	}
}

// WithQueryLog 设置查询日志的开关和最低级别
func WithQueryLog(enabled bool, level logger.Level) Option {
	return func(e *Engine) {
		e.cfg.QueryLog.Enabled = enabled
		e.cfg.QueryLog.Level = level.String()
	}
}

// WithRedactMode 设置查询日志隐藏字面量的方式
func WithRedactMode(mode types.RedactMode) Option {
	return func(e *Engine) {
		e.cfg.QueryLog.Redact = mode
	}
}
