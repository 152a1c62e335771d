package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rulego/sqlexpr"
	"github.com/rulego/sqlexpr/logger"
	"github.com/rulego/sqlexpr/types"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // optional YAML or JSON config file
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the sqlexpr CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "sqlexpr",
		Short: "Format, anonymize and evaluate SQL expressions",
		Long:  "Inspect the canonical text, anonymized text and compiled predicate of a SQL scalar expression.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Config, "config", "c", "", "config file (yaml or json)")

	cmd.AddCommand(NewFmtCommand(opts))
	cmd.AddCommand(NewAnonCommand(opts))
	cmd.AddCommand(NewEvalCommand(opts))
	cmd.AddCommand(NewRefsCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// newEngine builds an engine from the global flags. Logs go to stderr so
// that JSON output stays parseable.
func newEngine(opts *RootOptions, cmd *cobra.Command, extra ...sqlexpr.Option) (*sqlexpr.Engine, error) {
	cfg := types.NewConfig()
	if opts.Config != "" {
		loaded, err := types.LoadConfig(opts.Config)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	}
	level := logger.WARN
	if opts.Verbose {
		level = logger.DEBUG
	}
	options := append([]sqlexpr.Option{
		sqlexpr.WithConfig(cfg),
		sqlexpr.WithLogOutput(cmd.ErrOrStderr(), level),
	}, extra...)
	engine, err := sqlexpr.New(options...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return engine, nil
}
