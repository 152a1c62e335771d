package cli

import (
	"github.com/spf13/cobra"

	"github.com/rulego/sqlexpr/condition"
	"github.com/rulego/sqlexpr/types"
	"github.com/rulego/sqlexpr/utils/table"
)

// NewRefsCommand creates the refs command.
func NewRefsCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaText string

	cmd := &cobra.Command{
		Use:   "refs <expression>",
		Short: "List the columns an expression depends on",
		Long: `Resolve every column reference of an expression against a schema and
list the distinct columns in order of first appearance.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			schema, err := types.ParseSchema(schemaText)
			if err != nil {
				return WrapExitError(ExitCommandError, "schema", err)
			}
			engine, err := newEngine(rootOpts, cmd)
			if err != nil {
				return err
			}
			e, err := engine.Parse(args[0])
			if err != nil {
				return out.Fail(ExitFailure, "parse", err)
			}
			params, err := condition.AnalyzeReferences(e, schema)
			if err != nil {
				return out.Fail(ExitFailure, "analyze", err)
			}
			if rootOpts.Format == "json" {
				return out.Success("", params)
			}
			table.FormatTableData(cmd.OutOrStdout(), parameterRows(params, nil), parameterColumns)
			return nil
		},
	}

	cmd.Flags().StringVarP(&schemaText, "schema", "s", "", `schema, e.g. "a INTEGER, b STRING"`)
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

var parameterColumns = []string{"name", "type", "index", "value"}

// parameterRows returns one row per referenced column, with its value when
// values is not nil.
func parameterRows(params []condition.Parameter, values []any) []map[string]interface{} {
	rows := make([]map[string]interface{}, len(params))
	for i, p := range params {
		rows[i] = map[string]interface{}{
			"name":  p.Name,
			"type":  p.Type.String(),
			"index": p.Index,
		}
		if values != nil {
			rows[i]["value"] = values[p.Index]
		}
	}
	return rows
}
