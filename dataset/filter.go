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
	"context"
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/rulego/sqlexpr/condition"
)

// FilterRecord returns the rows for which pred is true. It stops at the
// first row that fails to evaluate.
func FilterRecord(pred *condition.CompiledPredicate, rec arrow.RecordBatch) ([]int, error) {
	if pred == nil || rec == nil {
		return nil, fmt.Errorf("predicate and record are required")
	}
	var selected []int
	row := NewRecordRow(rec, 0)
	for i := 0; i < int(rec.NumRows()); i++ {
		row.Seek(i)
		ok, err := pred.Evaluate(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		if ok {
			selected = append(selected, i)
		}
	}
	return selected, nil
}

// Scan filters each batch of the reader and passes the batch and its
// selected rows to fn. The batch is only valid while fn runs.
func Scan(ctx context.Context, pred *condition.CompiledPredicate, reader array.RecordReader,
	fn func(rec arrow.RecordBatch, selected []int) error) error {
	for reader.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := reader.RecordBatch()
		selected, err := FilterRecord(pred, rec)
		if err != nil {
			return err
		}
		if err := fn(rec, selected); err != nil {
			return err
		}
	}
	return reader.Err()
}
