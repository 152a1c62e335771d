package functions

import (
	"fmt"
	"math"

	"github.com/spf13/cast"
)

// 数值函数的编译期类型声明，整数参数保持整数结果
var (
	numericIdentity = []any{
		new(func(int) int),
		new(func(int64) int64),
		new(func(float64) float64),
	}
	numericToFloat = []any{
		new(func(float64) float64),
		new(func(int) float64),
		new(func(int64) float64),
	}
	numericRound = []any{
		new(func(float64) float64),
		new(func(int) float64),
		new(func(int64) float64),
		new(func(float64, int) float64),
		new(func(int, int) float64),
		new(func(int64, int) float64),
	}
)

// AbsFunction 绝对值函数
type AbsFunction struct {
	*BaseFunction
}

func NewAbsFunction() *AbsFunction {
	return &AbsFunction{
		BaseFunction: NewBaseFunction("abs", TypeMath, "math", "Calculate absolute value", 1, 1, numericIdentity...),
	}
}

func (f *AbsFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *AbsFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	switch v := args[0].(type) {
	case int:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	case int64:
		if v < 0 {
			return -v, nil
		}
		return v, nil
	}
	val, err := cast.ToFloat64E(args[0])
	if err != nil {
		return nil, err
	}
	return math.Abs(val), nil
}

// SqrtFunction 平方根函数
type SqrtFunction struct {
	*BaseFunction
}

func NewSqrtFunction() *SqrtFunction {
	return &SqrtFunction{
		BaseFunction: NewBaseFunction("sqrt", TypeMath, "math", "Calculate square root", 1, 1, numericToFloat...),
	}
}

func (f *SqrtFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *SqrtFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	val, err := cast.ToFloat64E(args[0])
	if err != nil {
		return nil, err
	}
	if val < 0 {
		return nil, fmt.Errorf("sqrt of negative number")
	}
	return math.Sqrt(val), nil
}

// CeilingFunction 向上取整函数
type CeilingFunction struct {
	*BaseFunction
}

func NewCeilingFunction() *CeilingFunction {
	return &CeilingFunction{
		BaseFunction: NewBaseFunctionWithAliases("ceil", TypeMath, "数学函数", "向上取整", 1, 1, []string{"ceiling"}, numericToFloat...),
	}
}

func (f *CeilingFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *CeilingFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	val, err := cast.ToFloat64E(args[0])
	if err != nil {
		return nil, err
	}
	return math.Ceil(val), nil
}

// FloorFunction 向下取整函数
type FloorFunction struct {
	*BaseFunction
}

func NewFloorFunction() *FloorFunction {
	return &FloorFunction{
		BaseFunction: NewBaseFunction("floor", TypeMath, "数学函数", "向下取整", 1, 1, numericToFloat...),
	}
}

func (f *FloorFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *FloorFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	val, err := cast.ToFloat64E(args[0])
	if err != nil {
		return nil, err
	}
	return math.Floor(val), nil
}

// RoundFunction 四舍五入函数，可选第二个参数指定保留的小数位数
type RoundFunction struct {
	*BaseFunction
}

func NewRoundFunction() *RoundFunction {
	return &RoundFunction{
		BaseFunction: NewBaseFunction("round", TypeMath, "数学函数", "四舍五入", 1, 2, numericRound...),
	}
}

func (f *RoundFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *RoundFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	val, err := cast.ToFloat64E(args[0])
	if err != nil {
		return nil, err
	}

	if len(args) == 1 {
		return math.Round(val), nil
	}

	precision, err := cast.ToIntE(args[1])
	if err != nil {
		return nil, err
	}
	shift := math.Pow(10, float64(precision))
	return math.Round(val*shift) / shift, nil
}
