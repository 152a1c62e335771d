package functions

import (
	"fmt"
)

// BaseFunction 基础函数实现，提供通用功能
type BaseFunction struct {
	name        string
	fnType      FunctionType
	category    string
	description string
	minArgs     int
	maxArgs     int // -1 表示无限制
	signatures  []any
	aliases     []string
}

// NewBaseFunction 创建基础函数
func NewBaseFunction(name string, fnType FunctionType, category, description string, minArgs, maxArgs int, signatures ...any) *BaseFunction {
	return &BaseFunction{
		name:        name,
		fnType:      fnType,
		category:    category,
		description: description,
		minArgs:     minArgs,
		maxArgs:     maxArgs,
		signatures:  signatures,
	}
}

// NewBaseFunctionWithAliases 创建带别名的基础函数
func NewBaseFunctionWithAliases(name string, fnType FunctionType, category, description string, minArgs, maxArgs int, aliases []string, signatures ...any) *BaseFunction {
	bf := NewBaseFunction(name, fnType, category, description, minArgs, maxArgs, signatures...)
	bf.aliases = aliases
	return bf
}

func (bf *BaseFunction) GetName() string {
	return bf.name
}

func (bf *BaseFunction) GetType() FunctionType {
	return bf.fnType
}

func (bf *BaseFunction) GetCategory() string {
	return bf.category
}

func (bf *BaseFunction) GetDescription() string {
	return bf.description
}

// GetAliases 获取函数别名
func (bf *BaseFunction) GetAliases() []string {
	return bf.aliases
}

func (bf *BaseFunction) Signatures() []any {
	return bf.signatures
}

// ValidateArgCount 验证参数数量
func (bf *BaseFunction) ValidateArgCount(args []any) error {
	argCount := len(args)

	if argCount < bf.minArgs {
		return fmt.Errorf("function %s requires at least %d arguments, got %d", bf.name, bf.minArgs, argCount)
	}

	if bf.maxArgs != -1 && argCount > bf.maxArgs {
		return fmt.Errorf("function %s accepts at most %d arguments, got %d", bf.name, bf.maxArgs, argCount)
	}

	return nil
}

// requireNotNull SQL NULL 参数没有确定结果，由调用方报告为求值错误
func requireNotNull(name string, args []any) error {
	for i, arg := range args {
		if arg == nil {
			return fmt.Errorf("function %s: argument %d is NULL", name, i+1)
		}
	}
	return nil
}
