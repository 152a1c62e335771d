package functions

// 初始化全局注册器的内置函数
func init() {
	registerBuiltinFunctions(globalRegistry)
}

// registerBuiltinFunctions 内置函数名互不冲突，注册不会失败
func registerBuiltinFunctions(r *FunctionRegistry) {
	builtins := []Function{
		// 数学函数
		NewAbsFunction(),
		NewSqrtFunction(),
		NewCeilingFunction(),
		NewFloorFunction(),
		NewRoundFunction(),

		// 字符串函数
		NewUpperFunction(),
		NewLowerFunction(),
		NewLengthFunction(),
		NewTrimFunction(),
		NewConcatFunction(),
		NewSubstringFunction(),

		// 谓词函数
		NewLikeFunction(),
		NewLikeEscapeFunction(),
	}
	// 转换函数
	for _, target := range CastTargets {
		builtins = append(builtins, NewCastFunction(target), NewTryCastFunction(target))
	}

	for _, fn := range builtins {
		if err := r.Register(fn); err != nil {
			panic(err)
		}
	}
}
