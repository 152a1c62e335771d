package functions

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// FunctionType 函数类型枚举
type FunctionType string

const (
	// 数学函数
	TypeMath FunctionType = "math"
	// 字符串函数
	TypeString FunctionType = "string"
	// 转换函数
	TypeConversion FunctionType = "conversion"
	// 谓词函数，例如 LIKE 匹配
	TypePredicate FunctionType = "predicate"
	// 用户自定义函数
	TypeCustom FunctionType = "custom"
)

// Function 标量函数接口定义
type Function interface {
	// GetName 获取函数名称
	GetName() string
	// GetType 获取函数类型
	GetType() FunctionType
	// GetCategory 获取函数分类
	GetCategory() string
	// GetDescription 获取函数描述
	GetDescription() string
	// Signatures 返回编译期类型声明，形如 new(func(string) string)。
	// 为空时参数和返回值不做静态检查
	Signatures() []any
	// Validate 验证参数
	Validate(args []any) error
	// Execute 执行函数
	Execute(args []any) (any, error)
}

// FunctionRegistry 函数注册器
type FunctionRegistry struct {
	mu         sync.RWMutex
	functions  map[string]Function
	categories map[FunctionType][]Function
}

// 全局函数注册器实例，init 中注册全部内置函数
var globalRegistry = NewFunctionRegistry()

// NewFunctionRegistry 创建空的函数注册器
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{
		functions:  make(map[string]Function),
		categories: make(map[FunctionType][]Function),
	}
}

// NewBuiltinRegistry 创建只包含内置函数的注册器，与全局注册器互不影响
func NewBuiltinRegistry() *FunctionRegistry {
	r := NewFunctionRegistry()
	registerBuiltinFunctions(r)
	return r
}

// aliased 由带别名的函数实现
type aliased interface {
	GetAliases() []string
}

// Register 注册函数及其别名，名称不区分大小写
func (r *FunctionRegistry) Register(fn Function) error {
	if fn == nil {
		return fmt.Errorf("function is nil")
	}
	names := []string{strings.ToLower(fn.GetName())}
	if a, ok := fn.(aliased); ok {
		for _, alias := range a.GetAliases() {
			names = append(names, strings.ToLower(alias))
		}
	}
	for _, name := range names {
		if err := validateName(name); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// 检查函数是否已存在
	for _, name := range names {
		if _, exists := r.functions[name]; exists {
			return fmt.Errorf("function %s already registered", name)
		}
	}

	for _, name := range names {
		r.functions[name] = fn
	}
	r.categories[fn.GetType()] = append(r.categories[fn.GetType()], fn)
	return nil
}

// validateName 函数名会出现在编译后的表达式中，只允许标识符字符和点号分隔的限定名
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("function name is empty")
	}
	// 以下划线开头的调用名留给运算符辅助函数
	if strings.HasPrefix(name, "_") {
		return fmt.Errorf("function name %q must not start with '_'", name)
	}
	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return fmt.Errorf("invalid function name %q", name)
		}
		for i, ch := range part {
			if ch == '_' || (ch >= 'a' && ch <= 'z') || (i > 0 && ch >= '0' && ch <= '9') {
				continue
			}
			return fmt.Errorf("invalid function name %q", name)
		}
	}
	return nil
}

// Get 获取函数
func (r *FunctionRegistry) Get(name string) (Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, exists := r.functions[strings.ToLower(name)]
	return fn, exists
}

// Exists 判断函数是否已注册
func (r *FunctionRegistry) Exists(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// GetByType 按类型获取函数列表
func (r *FunctionRegistry) GetByType(fnType FunctionType) []Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Function, len(r.categories[fnType]))
	copy(result, r.categories[fnType])
	return result
}

// ListAll 列出所有注册的函数
func (r *FunctionRegistry) ListAll() map[string]Function {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]Function, len(r.functions))
	for name, fn := range r.functions {
		result[name] = fn
	}
	return result
}

// Names 返回排序后的函数名
func (r *FunctionRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.functions))
	for name := range r.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone 复制注册器。编译后的谓词持有副本，之后的注册和注销不会影响它
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c := NewFunctionRegistry()
	for name, fn := range r.functions {
		c.functions[name] = fn
	}
	for t, fns := range r.categories {
		c.categories[t] = append([]Function(nil), fns...)
	}
	return c
}

// Unregister 注销函数。注销主名称时一并移除别名，注销别名只移除该别名
func (r *FunctionRegistry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	name = strings.ToLower(name)
	fn, exists := r.functions[name]
	if !exists {
		return false
	}

	delete(r.functions, name)
	if strings.ToLower(fn.GetName()) != name {
		return true
	}
	if a, ok := fn.(aliased); ok {
		for _, alias := range a.GetAliases() {
			if r.functions[strings.ToLower(alias)] == fn {
				delete(r.functions, strings.ToLower(alias))
			}
		}
	}

	// 从分类中移除
	fnType := fn.GetType()
	if funcs, ok := r.categories[fnType]; ok {
		for i, f := range funcs {
			if f == fn {
				r.categories[fnType] = append(funcs[:i:i], funcs[i+1:]...)
				break
			}
		}
	}

	return true
}

// Execute 校验参数后执行函数
func (r *FunctionRegistry) Execute(name string, args []any) (any, error) {
	fn, exists := r.Get(name)
	if !exists {
		return nil, fmt.Errorf("function %s not found", name)
	}
	return call(fn, args)
}

func call(fn Function, args []any) (any, error) {
	if err := fn.Validate(args); err != nil {
		return nil, fmt.Errorf("function %s validation failed: %w", fn.GetName(), err)
	}
	return fn.Execute(args)
}

// Default 返回全局函数注册器
func Default() *FunctionRegistry {
	return globalRegistry
}

// 全局函数注册和获取方法
func Register(fn Function) error {
	return globalRegistry.Register(fn)
}

func Get(name string) (Function, bool) {
	return globalRegistry.Get(name)
}

func Exists(name string) bool {
	return globalRegistry.Exists(name)
}

func GetByType(fnType FunctionType) []Function {
	return globalRegistry.GetByType(fnType)
}

func ListAll() map[string]Function {
	return globalRegistry.ListAll()
}

func Unregister(name string) bool {
	return globalRegistry.Unregister(name)
}

// Execute 执行全局注册器中的函数
func Execute(name string, args []any) (any, error) {
	return globalRegistry.Execute(name, args)
}

// RegisterCustomFunction 注册自定义函数到全局注册器。
// signatures 为可选的编译期类型声明
func RegisterCustomFunction(name string, fnType FunctionType, category, description string,
	minArgs, maxArgs int, executor func(args []any) (any, error), signatures ...any) error {
	fn, err := NewCustomFunction(name, fnType, category, description, minArgs, maxArgs, executor, signatures...)
	if err != nil {
		return err
	}
	return Register(fn)
}

// CustomFunction 自定义函数实现
type CustomFunction struct {
	*BaseFunction
	executor func(args []any) (any, error)
}

// NewCustomFunction 创建自定义函数
func NewCustomFunction(name string, fnType FunctionType, category, description string,
	minArgs, maxArgs int, executor func(args []any) (any, error), signatures ...any) (*CustomFunction, error) {
	if executor == nil {
		return nil, fmt.Errorf("function %s has no executor", name)
	}
	return &CustomFunction{
		BaseFunction: NewBaseFunction(name, fnType, category, description, minArgs, maxArgs, signatures...),
		executor:     executor,
	}, nil
}

func (f *CustomFunction) Validate(args []any) error {
	return f.ValidateArgCount(args)
}

func (f *CustomFunction) Execute(args []any) (any, error) {
	return f.executor(args)
}
