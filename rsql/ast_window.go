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

package rsql

// Ordering of a sort item.
type Ordering int

const (
	Ascending Ordering = iota
	Descending
)

// NullOrdering of a sort item; NullsUndefined omits the NULLS clause.
type NullOrdering int

const (
	NullsUndefined NullOrdering = iota
	NullsFirst
	NullsLast
)

// SortItem is `<key> ASC|DESC [NULLS FIRST|LAST]`.
type SortItem struct {
	SortKey      Expression
	Ordering     Ordering
	NullOrdering NullOrdering
}

func (s *SortItem) Format(p *Printer) {
	p.Expression(s.SortKey)
	if s.Ordering == Descending {
		p.WriteString(" DESC")
	} else {
		p.WriteString(" ASC")
	}
	switch s.NullOrdering {
	case NullsFirst:
		p.WriteString(" NULLS FIRST")
	case NullsLast:
		p.WriteString(" NULLS LAST")
	}
}

// Window is the OVER clause of a function call.
type Window struct {
	PartitionBy []Expression
	OrderBy     []*SortItem
	Frame       *WindowFrame
}

func (w *Window) Format(p *Printer) {
	p.WriteString("(")
	sep := ""
	if len(w.PartitionBy) > 0 {
		p.WriteString("PARTITION BY ")
		p.join(w.PartitionBy, ", ")
		sep = " "
	}
	if len(w.OrderBy) > 0 {
		p.WriteString(sep + "ORDER BY ")
		p.sortItems(w.OrderBy)
		sep = " "
	}
	if w.Frame != nil {
		p.WriteString(sep)
		w.Frame.Format(p)
	}
	p.WriteString(")")
}

func (w *Window) expressions() []Expression {
	out := children(w.PartitionBy...)
	for _, s := range w.OrderBy {
		out = append(out, children(s.SortKey)...)
	}
	if w.Frame != nil {
		out = append(out, w.Frame.Start.expressions()...)
		if w.Frame.End != nil {
			out = append(out, w.Frame.End.expressions()...)
		}
	}
	return out
}

// FrameType is RANGE or ROWS.
type FrameType string

const (
	FrameRange FrameType = "RANGE"
	FrameRows  FrameType = "ROWS"
)

// WindowFrame is `<type> <start>` or `<type> BETWEEN <start> AND <end>`.
type WindowFrame struct {
	Type  FrameType
	Start *FrameBound
	End   *FrameBound
}

func (f *WindowFrame) Format(p *Printer) {
	p.WriteString(string(f.Type) + " ")
	if f.End != nil {
		p.WriteString("BETWEEN ")
		f.Start.Format(p)
		p.WriteString(" AND ")
		f.End.Format(p)
		return
	}
	f.Start.Format(p)
}

// BoundType of a frame bound.
type BoundType int

const (
	UnboundedPreceding BoundType = iota
	Preceding
	CurrentRow
	Following
	UnboundedFollowing
)

// FrameBound is one end of a window frame. Value is set for Preceding and
// Following only.
type FrameBound struct {
	Type  BoundType
	Value Expression
}

func (b *FrameBound) Format(p *Printer) {
	switch b.Type {
	case UnboundedPreceding:
		p.WriteString("UNBOUNDED PRECEDING")
	case Preceding:
		p.Expression(b.Value)
		p.WriteString(" PRECEDING")
	case CurrentRow:
		p.WriteString("CURRENT ROW")
	case Following:
		p.Expression(b.Value)
		p.WriteString(" FOLLOWING")
	case UnboundedFollowing:
		p.WriteString("UNBOUNDED FOLLOWING")
	default:
		panic(&UnsupportedError{Construct: "FrameBound", Reason: "unknown bound type"})
	}
}

func (b *FrameBound) expressions() []Expression {
	if b == nil {
		return nil
	}
	return children(b.Value)
}

// GroupingElement is one element of a GROUP BY clause.
type GroupingElement interface {
	Node
	groupingElement()
}

// SimpleGroupBy groups by a set of columns. Duplicate columns collapse.
type SimpleGroupBy struct {
	Columns []Expression
}

func (g *SimpleGroupBy) Format(p *Printer) {
	columns := p.distinct(g.Columns)
	if len(columns) == 1 {
		p.WriteString(columns[0])
		return
	}
	p.groupingSet(columns)
}

func (g *SimpleGroupBy) groupingElement() {}

// GroupingSets is GROUPING SETS ((a, b), (a), ()).
type GroupingSets struct {
	Sets [][]Expression
}

func (g *GroupingSets) Format(p *Printer) {
	p.WriteString("GROUPING SETS (")
	for i, set := range g.Sets {
		if i > 0 {
			p.WriteString(", ")
		}
		p.groupingSet(p.distinct(set))
	}
	p.WriteString(")")
}

func (g *GroupingSets) groupingElement() {}

// Cube is CUBE (a, b).
type Cube struct {
	Columns []Expression
}

func (g *Cube) Format(p *Printer) {
	p.WriteString("CUBE ")
	p.groupingSet(p.distinct(g.Columns))
}

func (g *Cube) groupingElement() {}

// Rollup is ROLLUP (a, b).
type Rollup struct {
	Columns []Expression
}

func (g *Rollup) Format(p *Printer) {
	p.WriteString("ROLLUP ")
	p.groupingSet(p.distinct(g.Columns))
}

func (g *Rollup) groupingElement() {}
