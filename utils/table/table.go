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

package table

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"
)

// PrintTableFromSlice prints rows as a bordered text table.
// Columns follow fieldOrder; columns missing from it are appended in
// alphabetical order. A nil value prints as NULL.
func PrintTableFromSlice(w io.Writer, data []map[string]interface{}, fieldOrder []string) {
	if len(data) == 0 {
		return
	}

	columns := orderColumns(data, fieldOrder)
	cells := make([][]string, len(data))
	for r, row := range data {
		cells[r] = make([]string, len(columns))
		for i, col := range columns {
			if v, exists := row[col]; exists {
				cells[r][i] = formatCell(v)
			}
		}
	}

	// at least 4 wide
	colWidths := make([]int, len(columns))
	for i, col := range columns {
		colWidths[i] = utf8.RuneCountInString(col)
		for _, row := range cells {
			if n := utf8.RuneCountInString(row[i]); n > colWidths[i] {
				colWidths[i] = n
			}
		}
		if colWidths[i] < 4 {
			colWidths[i] = 4
		}
	}

	PrintTableBorder(w, colWidths)
	printRow(w, columns, colWidths)
	PrintTableBorder(w, colWidths)
	for _, row := range cells {
		printRow(w, row, colWidths)
	}
	PrintTableBorder(w, colWidths)

	fmt.Fprintf(w, "(%d rows)\n", len(data))
}

func orderColumns(data []map[string]interface{}, fieldOrder []string) []string {
	columnSet := make(map[string]bool)
	for _, row := range data {
		for col := range row {
			columnSet[col] = true
		}
	}

	var columns []string
	for _, field := range fieldOrder {
		if columnSet[field] {
			columns = append(columns, field)
			delete(columnSet, field)
		}
	}
	rest := make([]string, 0, len(columnSet))
	for col := range columnSet {
		rest = append(rest, col)
	}
	sort.Strings(rest)
	return append(columns, rest...)
}

func formatCell(v interface{}) string {
	if v == nil {
		return "NULL"
	}
	return fmt.Sprintf("%v", v)
}

func printRow(w io.Writer, values []string, colWidths []int) {
	fmt.Fprint(w, "|")
	for i, v := range values {
		fmt.Fprintf(w, " %s%*s |", v, colWidths[i]-utf8.RuneCountInString(v), "")
	}
	fmt.Fprintln(w)
}

// PrintTableBorder prints a table border line
func PrintTableBorder(w io.Writer, columnWidths []int) {
	fmt.Fprint(w, "+")
	for _, width := range columnWidths {
		for i := 0; i < width+2; i++ {
			fmt.Fprint(w, "-")
		}
		fmt.Fprint(w, "+")
	}
	fmt.Fprintln(w)
}

// FormatTableData prints a slice of rows or a single row as a table and
// anything else as a plain value.
func FormatTableData(w io.Writer, result interface{}, fieldOrder []string) {
	switch v := result.(type) {
	case []map[string]interface{}:
		if len(v) == 0 {
			fmt.Fprintln(w, "(0 rows)")
			return
		}
		PrintTableFromSlice(w, v, fieldOrder)
	case map[string]interface{}:
		if len(v) == 0 {
			fmt.Fprintln(w, "(0 rows)")
			return
		}
		PrintTableFromSlice(w, []map[string]interface{}{v}, fieldOrder)
	default:
		fmt.Fprintf(w, "Result: %v\n", result)
	}
}
