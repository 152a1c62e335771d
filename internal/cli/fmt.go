package cli

import (
	"github.com/spf13/cobra"

	"github.com/rulego/sqlexpr/rsql"
)

// FormatResult is the JSON payload of the fmt command.
type FormatResult struct {
	Input     string `json:"input"`
	Canonical string `json:"canonical"`
}

// NewFmtCommand creates the fmt command.
func NewFmtCommand(rootOpts *RootOptions) *cobra.Command {
	var noQuote bool

	cmd := &cobra.Command{
		Use:   "fmt <expression>",
		Short: "Print the canonical text of an expression",
		Long: `Parse an expression and print its canonical, fully parenthesized text.

Identifiers that need quoting are quoted unless --no-quote is given.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			engine, err := newEngine(rootOpts, cmd)
			if err != nil {
				return err
			}
			e, err := engine.Parse(args[0])
			if err != nil {
				return out.Fail(ExitFailure, "parse", err)
			}
			canonical := engine.Format(e)
			if noQuote {
				canonical = rsql.FormatExpressionWith(e, false)
			}
			return out.Success(canonical, FormatResult{Input: args[0], Canonical: canonical})
		},
	}

	cmd.Flags().BoolVar(&noQuote, "no-quote", false, "print identifiers without quoting")
	return cmd
}
