package cli

import (
	"github.com/spf13/cobra"

	"github.com/rulego/sqlexpr"
	"github.com/rulego/sqlexpr/types"
)

// AnonResult is the JSON payload of the anon command.
type AnonResult struct {
	Anonymized     string `json:"anonymized"`
	QueryGUID      string `json:"queryGuid"`
	StructuralGUID string `json:"structuralGuid"`
}

// NewAnonCommand creates the anon command.
func NewAnonCommand(rootOpts *RootOptions) *cobra.Command {
	var redact string

	cmd := &cobra.Command{
		Use:   "anon <expression>",
		Short: "Print the anonymized text of an expression",
		Long: `Replace column names by column1..n and literals by typed placeholders.

With --redact hash literals are replaced by keyed digests instead, so that
equal values stay recognizable without being revealed.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			var extra []sqlexpr.Option
			if redact != "" {
				extra = append(extra, sqlexpr.WithRedactMode(types.RedactMode(redact)))
			}
			engine, err := newEngine(rootOpts, cmd, extra...)
			if err != nil {
				return err
			}
			e, err := engine.Parse(args[0])
			if err != nil {
				return out.Fail(ExitFailure, "parse", err)
			}
			msg, err := engine.QueryLogger().Build("", e)
			if err != nil {
				return out.Fail(ExitFailure, "anonymize", err)
			}
			return out.Success(msg.Query, AnonResult{
				Anonymized:     msg.Query,
				QueryGUID:      msg.Guid.QueryGUID,
				StructuralGUID: msg.Guid.StructuralGUID,
			})
		},
	}

	cmd.Flags().StringVar(&redact, "redact", "", "literal redaction mode (placeholder|hash)")
	return cmd
}
