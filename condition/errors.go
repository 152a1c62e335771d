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
	"strings"

	"github.com/rulego/sqlexpr/rsql"
)

// ErrorKind 编译错误类型
type ErrorKind int

const (
	// UnsupportedConstruct 表达式包含没有执行形式的结构
	UnsupportedConstruct ErrorKind = iota + 1
	// UnresolvedReference 列引用在 schema 中不存在
	UnresolvedReference
	// TypeMismatch 操作数类型冲突，或结果不是布尔值
	TypeMismatch
	// CodegenFailure 生成的执行代码无效
	CodegenFailure
)

var (
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrTypeMismatch        = errors.New("type mismatch")
	ErrCodegenFailure      = errors.New("codegen failure")
)

func (k ErrorKind) String() string {
	switch k {
	case UnsupportedConstruct:
		return "UNSUPPORTED_CONSTRUCT"
	case UnresolvedReference:
		return "UNRESOLVED_REFERENCE"
	case TypeMismatch:
		return "TYPE_MISMATCH"
	case CodegenFailure:
		return "CODEGEN_FAILURE"
	default:
		return "UNKNOWN"
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case UnsupportedConstruct:
		return rsql.ErrUnsupportedConstruct
	case UnresolvedReference:
		return ErrUnresolvedReference
	case TypeMismatch:
		return ErrTypeMismatch
	case CodegenFailure:
		return ErrCodegenFailure
	default:
		return nil
	}
}

// CompileError 谓词编译错误，编译失败的查询不能启动
type CompileError struct {
	Kind ErrorKind
	// Name 无法解析的列名，仅 UnresolvedReference 使用
	Name string
	// Expression 规范化的 SQL 文本
	Expression string
	// Source 生成的执行代码，生成之前失败时为空
	Source string
	Err    error
}

func (e *CompileError) Error() string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(e.Kind.String())
	sb.WriteString("] ")
	if e.Kind == UnresolvedReference {
		fmt.Fprintf(&sb, "unresolved reference %s", e.Name)
	} else if e.Err != nil {
		sb.WriteString(e.Err.Error())
	}
	if e.Expression != "" {
		fmt.Fprintf(&sb, " in %s", e.Expression)
	}
	return sb.String()
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is 按错误类型匹配哨兵错误
func (e *CompileError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// IsCompileError 判断是否为指定类型的编译错误
func IsCompileError(err error, kind ErrorKind) bool {
	var ce *CompileError
	return errors.As(err, &ce) && ce.Kind == kind
}

// EvaluationError 单条记录求值失败。谓词从不把失败报告为 false
type EvaluationError struct {
	// Expression 规范化的 SQL 文本
	Expression string
	// Args 传入的参数向量
	Args []any
	Err  error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate %s with %v: %v", e.Expression, e.Args, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
