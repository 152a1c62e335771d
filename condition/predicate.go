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
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/rulego/sqlexpr/types"
)

// CompiledPredicate 编译后的谓词，不可变，可以在多个 goroutine 中并发求值
type CompiledPredicate struct {
	params     []Parameter
	names      []string
	indexes    []int
	expression string
	source     string
	program    *vm.Program
}

// Parameters 返回依赖的列，顺序即 Invoke 参数顺序
func (p *CompiledPredicate) Parameters() []Parameter {
	return append([]Parameter(nil), p.params...)
}

// Indexes 返回各参数在行中的位置
func (p *CompiledPredicate) Indexes() []int {
	return append([]int(nil), p.indexes...)
}

// Expression 返回规范化的 SQL 文本
func (p *CompiledPredicate) Expression() string {
	return p.expression
}

// Source 返回生成的执行代码
func (p *CompiledPredicate) Source() string {
	return p.source
}

// Evaluate 按预先计算的位置从行中取值并求值
func (p *CompiledPredicate) Evaluate(row types.Row) (bool, error) {
	if row == nil {
		return false, &EvaluationError{Expression: p.expression, Err: fmt.Errorf("row is nil")}
	}
	args := make([]any, len(p.indexes))
	for i, idx := range p.indexes {
		if idx >= row.Len() {
			return false, &EvaluationError{
				Expression: p.expression,
				Args:       args[:i],
				Err:        fmt.Errorf("row has %d values, column %s is at index %d", row.Len(), p.params[i].Name, idx),
			}
		}
		args[i] = row.Value(idx)
	}
	return p.Invoke(args)
}

// Invoke 以参数向量求值，每个参数对应一个依赖列
func (p *CompiledPredicate) Invoke(args []any) (bool, error) {
	if len(args) != len(p.names) {
		return false, &EvaluationError{
			Expression: p.expression,
			Args:       args,
			Err:        fmt.Errorf("expected %d arguments, got %d", len(p.names), len(args)),
		}
	}
	env := make(map[string]any, len(args))
	for i, name := range p.names {
		env[name] = args[i]
	}
	out, err := expr.Run(p.program, env)
	if err != nil {
		return false, &EvaluationError{Expression: p.expression, Args: args, Err: err}
	}
	b, ok := out.(bool)
	if !ok {
		return false, &EvaluationError{
			Expression: p.expression,
			Args:       args,
			Err:        fmt.Errorf("result %v (%T) is not a boolean", out, out),
		}
	}
	return b, nil
}

func (p *CompiledPredicate) String() string {
	return p.expression
}
