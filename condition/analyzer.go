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
	"strings"

	"github.com/rulego/sqlexpr/rsql"
	"github.com/rulego/sqlexpr/types"
)

// Parameter 谓词依赖的一列
type Parameter struct {
	Name  string     `json:"name"`
	Type  types.Type `json:"type"`
	Index int        `json:"index"`
}

// analysis 引用分析结果。bindings 记录每个已解析的引用节点对应的参数序号
type analysis struct {
	params   []Parameter
	bindings map[rsql.Expression]int
}

// AnalyzeReferences 按深度优先前序收集表达式引用的列，按名称去重，保持首次出现顺序
func AnalyzeReferences(e rsql.Expression, schema *types.Schema) ([]Parameter, error) {
	a, err := analyze(e, schema)
	if err != nil {
		return nil, err
	}
	return a.params, nil
}

func analyze(e rsql.Expression, schema *types.Schema) (*analysis, error) {
	a := &analysis{bindings: make(map[rsql.Expression]int)}
	w := &analyzer{schema: schema, analysis: a, seen: make(map[string]int)}
	if err := w.walk(e, nil); err != nil {
		return nil, err
	}
	return a, nil
}

type analyzer struct {
	*analysis
	schema *types.Schema
	seen   map[string]int
}

// walk 遍历表达式，scope 为当前可见的 lambda 参数
func (w *analyzer) walk(e rsql.Expression, scope map[string]bool) error {
	if e == nil {
		return nil
	}
	switch n := e.(type) {
	case *rsql.QualifiedNameReference:
		if len(n.Name) == 1 && scope[n.Name[0]] {
			return nil
		}
		idx, ok := w.lookup(n.Name)
		if !ok {
			return &CompileError{Kind: UnresolvedReference, Name: n.Name.String()}
		}
		w.bind(n, idx)
		return nil
	case *rsql.FieldReference:
		if n.Index < 0 || n.Index >= w.schema.Len() {
			return &CompileError{Kind: UnresolvedReference, Name: rsql.FormatExpression(n)}
		}
		w.bind(n, n.Index)
		return nil
	case *rsql.Dereference:
		// 只由名称组成的访问链先按点分名称解析
		if parts, ok := nameChain(n); ok && !(len(parts) > 0 && scope[parts[0]]) {
			if idx, ok := w.schema.FieldIndex(strings.Join(parts, ".")); ok {
				w.bind(n, idx)
				return nil
			}
		}
	case *rsql.Lambda:
		inner := make(map[string]bool, len(scope)+len(n.Arguments))
		for k := range scope {
			inner[k] = true
		}
		for _, arg := range n.Arguments {
			inner[arg] = true
		}
		return w.walk(n.Body, inner)
	}
	for _, c := range e.Children() {
		if err := w.walk(c, scope); err != nil {
			return err
		}
	}
	return nil
}

// lookup 先按完整的点分名称查找，限定名再按最后一段查找
func (w *analyzer) lookup(name rsql.QualifiedName) (int, bool) {
	if idx, ok := w.schema.FieldIndex(strings.Join(name, ".")); ok {
		return idx, true
	}
	if len(name) > 1 {
		return w.schema.FieldIndex(name.Suffix())
	}
	return 0, false
}

func (w *analyzer) bind(e rsql.Expression, idx int) {
	f := w.schema.Field(idx)
	ordinal, ok := w.seen[f.Name]
	if !ok {
		ordinal = len(w.params)
		w.seen[f.Name] = ordinal
		w.params = append(w.params, Parameter{Name: f.Name, Type: f.Type, Index: idx})
	}
	w.bindings[e] = ordinal
}

func nameChain(e rsql.Expression) ([]string, bool) {
	switch n := e.(type) {
	case *rsql.QualifiedNameReference:
		return append([]string(nil), n.Name...), true
	case *rsql.Dereference:
		parts, ok := nameChain(n.Base)
		if !ok {
			return nil, false
		}
		return append(parts, n.Field), true
	}
	return nil, false
}
