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
	"math"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/spf13/cast"

	"github.com/rulego/sqlexpr/rsql"
)

var errDivisionByZero = errors.New("division by zero")

// operatorOptions 生成代码中除法、取模和下标访问调用的辅助函数。
// 不声明参数类型，结果类型由运行时的操作数决定
func operatorOptions() []expr.Option {
	return []expr.Option{
		expr.Function(rsql.DivideSymbol, func(args ...any) (any, error) {
			return arithmetic("/", args[0], args[1])
		}),
		expr.Function(rsql.ModuloSymbol, func(args ...any) (any, error) {
			return arithmetic("%", args[0], args[1])
		}),
		expr.Function(rsql.SubscriptSymbol, func(args ...any) (any, error) {
			return subscript(args[0], args[1])
		}),
	}
}

// arithmetic 按操作数的运行时类型计算 / 和 %。
// 两个整数时做整数运算，int 与 int64 混合时结果为 int64
func arithmetic(op string, l, r any) (any, error) {
	if l == nil || r == nil {
		return nil, fmt.Errorf("operator %s: NULL operand", op)
	}
	li, lok := integer(l)
	ri, rok := integer(r)
	if lok && rok {
		if ri == 0 {
			return nil, errDivisionByZero
		}
		var v int64
		if op == "/" {
			v = li / ri
		} else {
			v = li % ri
		}
		_, lint := l.(int)
		_, rint := r.(int)
		if lint && rint {
			return int(v), nil
		}
		return v, nil
	}

	lf, err := cast.ToFloat64E(l)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", op, err)
	}
	rf, err := cast.ToFloat64E(r)
	if err != nil {
		return nil, fmt.Errorf("operator %s: %w", op, err)
	}
	if op == "/" {
		return lf / rf, nil
	}
	return math.Mod(lf, rf), nil
}

func integer(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	}
	return 0, false
}

// subscript 按 1 起始的位置取数组元素，位置不在数组范围内时为 NULL。
// MAP 按键取值，键不存在时为 NULL
func subscript(base, index any) (any, error) {
	if base == nil || index == nil {
		return nil, nil
	}
	if m, ok := base.(map[string]any); ok {
		key, err := cast.ToStringE(index)
		if err != nil {
			return nil, fmt.Errorf("subscript: %w", err)
		}
		return m[key], nil
	}

	v := reflect.ValueOf(base)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, fmt.Errorf("subscript: %T is not an array", base)
	}
	pos, err := cast.ToInt64E(index)
	if err != nil {
		return nil, fmt.Errorf("subscript: %w", err)
	}
	if pos < 1 || pos > int64(v.Len()) {
		return nil, nil
	}
	return v.Index(int(pos - 1)).Interface(), nil
}
