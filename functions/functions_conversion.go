package functions

import (
	"strings"
	"time"

	"github.com/rulego/sqlexpr/types"
)

// CastFunction 类型转换函数，每个目标类型注册为独立函数 cast_<type> 与 try_cast_<type>。
// 严格转换失败时返回错误，TRY 转换失败时返回 NULL。NULL 输入始终得到 NULL
type CastFunction struct {
	*BaseFunction
	target types.Type
	safe   bool
}

// 严格转换的返回值声明。TRY 转换可能产生 NULL，声明为 any
var castSignatures = map[types.Type]any{
	types.Boolean:   new(func(any) bool),
	types.Integer:   new(func(any) int),
	types.BigInt:    new(func(any) int64),
	types.Double:    new(func(any) float64),
	types.String:    new(func(any) string),
	types.Timestamp: new(func(any) time.Time),
}

// CastTargets 可以作为 CAST 目标的类型，顺序固定
var CastTargets = []types.Type{
	types.Boolean,
	types.Integer,
	types.BigInt,
	types.Double,
	types.String,
	types.Timestamp,
}

// CastFunctionName 返回目标类型的转换函数名
func CastFunctionName(target types.Type, safe bool) string {
	name := "cast_" + strings.ToLower(target.String())
	if safe {
		return "try_" + name
	}
	return name
}

func NewCastFunction(target types.Type) *CastFunction {
	return &CastFunction{
		BaseFunction: NewBaseFunction(CastFunctionName(target, false), TypeConversion, "转换函数",
			"转换为 "+target.String(), 1, 1, castSignatures[target]),
		target: target,
	}
}

func NewTryCastFunction(target types.Type) *CastFunction {
	return &CastFunction{
		BaseFunction: NewBaseFunction(CastFunctionName(target, true), TypeConversion, "转换函数",
			"转换为 "+target.String()+"，失败时返回 NULL", 1, 1, new(func(any) any)),
		target: target,
		safe:   true,
	}
}

func (f *CastFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *CastFunction) Execute(args []any) (any, error) {
	v, err := types.Coerce(f.target, args[0])
	if err != nil {
		if f.safe {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}
