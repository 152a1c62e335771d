package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rulego/sqlexpr/types"
	"github.com/rulego/sqlexpr/utils/table"
)

// EvalResult is the JSON payload of the eval command.
type EvalResult struct {
	Expression string `json:"expression"`
	Source     string `json:"source"`
	Result     bool   `json:"result"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		schemaText string
		rowText    string
		explain    bool
	)

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Compile a predicate and evaluate it on one row",
		Long: `Compile a boolean expression against a schema and evaluate it on a row
given as a JSON object. Fields missing from the row are NULL.

Example:
  sqlexpr eval "a > 3 AND b = 'x'" --schema "a INTEGER, b STRING" --row '{"a": 5, "b": "x"}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			schema, err := types.ParseSchema(schemaText)
			if err != nil {
				return WrapExitError(ExitCommandError, "schema", err)
			}
			row, err := decodeRow(schema, rowText)
			if err != nil {
				return WrapExitError(ExitCommandError, "row", err)
			}
			engine, err := newEngine(rootOpts, cmd)
			if err != nil {
				return err
			}
			pred, err := engine.CompileText(args[0], schema)
			if err != nil {
				return out.Fail(ExitFailure, "compile", err)
			}
			ok, err := pred.Evaluate(row)
			if err != nil {
				return out.Fail(ExitFailure, "evaluate", err)
			}
			if explain && rootOpts.Format != "json" {
				table.FormatTableData(cmd.OutOrStdout(), parameterRows(pred.Parameters(), row), parameterColumns)
			}
			return out.Success(strconv.FormatBool(ok), EvalResult{
				Expression: pred.Expression(),
				Source:     pred.Source(),
				Result:     ok,
			})
		},
	}

	cmd.Flags().StringVarP(&schemaText, "schema", "s", "", `row schema, e.g. "a INTEGER, b STRING"`)
	cmd.Flags().StringVarP(&rowText, "row", "r", "{}", "row values as a JSON object")
	cmd.Flags().BoolVar(&explain, "explain", false, "print the referenced columns and their values")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// decodeRow reads values in schema order and coerces them to the field types.
func decodeRow(schema *types.Schema, text string) (types.Values, error) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		return nil, fmt.Errorf("decode row: %w", err)
	}
	raw := make([]any, schema.Len())
	for i, f := range schema.Fields() {
		raw[i] = obj[f.Name]
	}
	return types.CoerceRow(schema, raw)
}
