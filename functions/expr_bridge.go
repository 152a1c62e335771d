package functions

import (
	"github.com/expr-lang/expr"
)

// ExprOptions 将注册表中的函数（含别名）转换为 expr 编译选项。
// symbol 把注册名映射为表达式源码中的调用名，按名称排序保证结果稳定
func (r *FunctionRegistry) ExprOptions(symbol func(name string) string) []expr.Option {
	names := r.Names()
	options := make([]expr.Option, 0, len(names))
	for _, name := range names {
		fn, ok := r.Get(name)
		if !ok {
			continue
		}
		options = append(options, expr.Function(symbol(name), wrap(fn), fn.Signatures()...))
	}
	return options
}

// wrap 把函数包装成 expr 的调用形式，执行前校验参数
func wrap(fn Function) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		return call(fn, params)
	}
}
