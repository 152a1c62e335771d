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

package dataset

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/rulego/sqlexpr/types"
)

// TypeFromArrow maps an arrow data type to the SQL type used by predicates.
func TypeFromArrow(dt arrow.DataType) (types.Type, error) {
	switch dt.ID() {
	case arrow.BOOL:
		return types.Boolean, nil
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.UINT8, arrow.UINT16:
		return types.Integer, nil
	case arrow.INT64, arrow.UINT32:
		return types.BigInt, nil
	case arrow.FLOAT32, arrow.FLOAT64:
		return types.Double, nil
	case arrow.DECIMAL128:
		return types.Decimal, nil
	case arrow.STRING, arrow.LARGE_STRING:
		return types.String, nil
	case arrow.BINARY, arrow.LARGE_BINARY:
		return types.Bytes, nil
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64:
		return types.Timestamp, nil
	default:
		return types.Unknown, fmt.Errorf("unsupported arrow type: %s", dt)
	}
}

// SchemaFromArrow converts an arrow schema field by field.
func SchemaFromArrow(s *arrow.Schema) (*types.Schema, error) {
	if s == nil {
		return nil, fmt.Errorf("arrow schema is nil")
	}
	fields := make([]types.Field, 0, s.NumFields())
	for _, f := range s.Fields() {
		t, err := TypeFromArrow(f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		fields = append(fields, types.Field{Name: f.Name, Type: t})
	}
	return types.NewSchema(fields...)
}

// RecordRow exposes one row of a record batch as types.Row. Values carry the
// native Go type of the mapped SQL type and nulls read as nil.
type RecordRow struct {
	rec arrow.RecordBatch
	row int
}

func NewRecordRow(rec arrow.RecordBatch, row int) *RecordRow {
	return &RecordRow{rec: rec, row: row}
}

// Seek moves to another row of the same batch.
func (r *RecordRow) Seek(row int) {
	r.row = row
}

func (r *RecordRow) Len() int {
	return int(r.rec.NumCols())
}

func (r *RecordRow) Value(i int) any {
	return columnValue(r.rec.Column(i), r.row)
}

func columnValue(col arrow.Array, idx int) any {
	if col.IsNull(idx) {
		return nil
	}
	switch a := col.(type) {
	case *array.Boolean:
		return a.Value(idx)
	case *array.Int8:
		return int(a.Value(idx))
	case *array.Int16:
		return int(a.Value(idx))
	case *array.Int32:
		return int(a.Value(idx))
	case *array.Uint8:
		return int(a.Value(idx))
	case *array.Uint16:
		return int(a.Value(idx))
	case *array.Int64:
		return a.Value(idx)
	case *array.Uint32:
		return int64(a.Value(idx))
	case *array.Float32:
		return float64(a.Value(idx))
	case *array.Float64:
		return a.Value(idx)
	case *array.Decimal128:
		scale := a.DataType().(*arrow.Decimal128Type).Scale
		return a.Value(idx).ToFloat64(scale)
	case *array.String:
		return a.Value(idx)
	case *array.LargeString:
		return a.Value(idx)
	case *array.Binary:
		return a.Value(idx)
	case *array.LargeBinary:
		return a.Value(idx)
	case *array.Timestamp:
		unit := a.DataType().(*arrow.TimestampType).Unit
		return a.Value(idx).ToTime(unit)
	case *array.Date32:
		return a.Value(idx).ToTime()
	case *array.Date64:
		return a.Value(idx).ToTime()
	default:
		return nil
	}
}
