package functions

import (
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// ConcatFunction 字符串连接函数
type ConcatFunction struct {
	*BaseFunction
}

func NewConcatFunction() *ConcatFunction {
	return &ConcatFunction{
		BaseFunction: NewBaseFunction("concat", TypeString, "字符串函数", "连接多个字符串", 1, -1,
			new(func(...any) string)),
	}
}

func (f *ConcatFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *ConcatFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	var result strings.Builder
	for _, arg := range args {
		str, err := cast.ToStringE(arg)
		if err != nil {
			return nil, err
		}
		result.WriteString(str)
	}
	return result.String(), nil
}

// LengthFunction 字符串长度函数，按字符计数
type LengthFunction struct {
	*BaseFunction
}

func NewLengthFunction() *LengthFunction {
	return &LengthFunction{
		BaseFunction: NewBaseFunctionWithAliases("length", TypeString, "字符串函数", "获取字符串长度", 1, 1,
			[]string{"len"}, new(func(string) int)),
	}
}

func (f *LengthFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *LengthFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	str, err := cast.ToStringE(args[0])
	if err != nil {
		return nil, err
	}
	return utf8.RuneCountInString(str), nil
}

// UpperFunction 转大写函数
type UpperFunction struct {
	*BaseFunction
}

func NewUpperFunction() *UpperFunction {
	return &UpperFunction{
		BaseFunction: NewBaseFunctionWithAliases("upper", TypeString, "字符串函数", "转换为大写", 1, 1,
			[]string{"ucase"}, new(func(string) string)),
	}
}

func (f *UpperFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *UpperFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	str, err := cast.ToStringE(args[0])
	if err != nil {
		return nil, err
	}
	return strings.ToUpper(str), nil
}

// LowerFunction 转小写函数
type LowerFunction struct {
	*BaseFunction
}

func NewLowerFunction() *LowerFunction {
	return &LowerFunction{
		BaseFunction: NewBaseFunctionWithAliases("lower", TypeString, "字符串函数", "转换为小写", 1, 1,
			[]string{"lcase"}, new(func(string) string)),
	}
}

func (f *LowerFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *LowerFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	str, err := cast.ToStringE(args[0])
	if err != nil {
		return nil, err
	}
	return strings.ToLower(str), nil
}

// TrimFunction 去除首尾空白
type TrimFunction struct {
	*BaseFunction
}

func NewTrimFunction() *TrimFunction {
	return &TrimFunction{
		BaseFunction: NewBaseFunction("trim", TypeString, "字符串函数", "去除首尾空白", 1, 1,
			new(func(string) string)),
	}
}

func (f *TrimFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *TrimFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	str, err := cast.ToStringE(args[0])
	if err != nil {
		return nil, err
	}
	return strings.TrimSpace(str), nil
}

// SubstringFunction 子串函数，起始位置从 1 开始计数
type SubstringFunction struct {
	*BaseFunction
}

func NewSubstringFunction() *SubstringFunction {
	return &SubstringFunction{
		BaseFunction: NewBaseFunctionWithAliases("substring", TypeString, "字符串函数", "提取子字符串", 2, 3,
			[]string{"substr"},
			new(func(string, any) string),
			new(func(string, any, any) string)),
	}
}

func (f *SubstringFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *SubstringFunction) Execute(args []any) (any, error) {
	if err := requireNotNull(f.name, args); err != nil {
		return nil, err
	}
	str, err := cast.ToStringE(args[0])
	if err != nil {
		return nil, err
	}
	start, err := cast.ToInt64E(args[1])
	if err != nil {
		return nil, err
	}

	runes := []rune(str)
	strLen := int64(len(runes))
	end := strLen
	if len(args) == 3 {
		length, err := cast.ToInt64E(args[2])
		if err != nil {
			return nil, err
		}
		if length < 0 {
			return "", nil
		}
		end = start - 1 + length
	}

	// 起始位置小于 1 时，超出部分占用长度但不产生字符
	begin := start - 1
	if begin < 0 {
		begin = 0
	}
	if end > strLen {
		end = strLen
	}
	if begin >= end {
		return "", nil
	}
	return string(runes[begin:end]), nil
}
