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

/*
Package sqlexpr 是流式 SQL 引擎的表达式核心。

它把解析后的 SQL 标量表达式格式化为规范文本，分析表达式引用的列，
并把布尔表达式编译为可以在每一行上快速执行的谓词。

# 核心特性

• 规范格式化 - 完全加括号的确定性文本，可再次解析得到相同的树
• 引用分析 - 找出表达式依赖的列，按首次出现顺序排列
• 谓词编译 - 在查询构建阶段完成类型检查，运行期只做求值
• 查询日志 - 列名和字面量匿名化，同构查询得到相同的结构标识
• Arrow 集成 - 直接在 Arrow 批次上过滤

# 入门示例

	engine, err := sqlexpr.New()
	if err != nil {
		panic(err)
	}
	schema, _ := types.ParseSchema("deviceId STRING, temperature DOUBLE")
	pred, err := engine.CompileText("temperature > 30 AND deviceId LIKE 'sensor%'", schema)
	if err != nil {
		panic(err)
	}
	ok, err := pred.Evaluate(types.Values{"sensor001", 35.5})

# 错误处理

编译错误为 *condition.CompileError，通过 Kind 区分不支持的构造、
未解析的列、类型不匹配和代码生成失败。求值错误为 *condition.EvaluationError，
携带表达式文本和参数，NULL 参与运算也会报错而不是静默返回 false。

# 自定义函数

	registry := functions.NewBuiltinRegistry()
	fn, _ := functions.NewCustomFunction("double_it", functions.TypeCustom, "custom", "乘以 2",
		1, 1, func(args []any) (any, error) {
			return cast.ToFloat64(args[0]) * 2, nil
		}, new(func(float64) float64))
	_ = registry.Register(fn)
	engine, _ := sqlexpr.New(sqlexpr.WithFunctions(registry))
*/
package sqlexpr
