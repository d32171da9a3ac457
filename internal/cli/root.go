package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/bzaczynski/microanalyst/internal/model"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Input   string // record file, stdin when empty or "-"

	// IDGenerator allows overriding model identifiers (for testing).
	// If nil, defaults to model.UUIDv7Generator.
	IDGenerator model.IDGenerator
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the microanalyst CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "microanalyst",
		Short: "Microanalyst - microplate experiment toolkit",
		Long: `Inspect and transform microplate experiment records.

A record is a JSON document describing iterations of an experiment, the
spreadsheets exported in each iteration and the 96-well microplates found
in every spreadsheet. Commands read a record from standard input or
--input and write results to standard output.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			configureLogging(cmd, opts.Verbose)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVarP(&opts.Input, "input", "i", "", "record file (default: stdin)")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewQuantizeCommand(opts))
	cmd.AddCommand(NewControlCommand(opts))
	cmd.AddCommand(NewGenesCommand(opts))

	return cmd
}

// configureLogging sends diagnostics to the command's error stream, at
// debug level in verbose mode.
func configureLogging(cmd *cobra.Command, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// modelOptions returns the options used to build every model.
func (o *RootOptions) modelOptions() []model.Option {
	opts := []model.Option{model.WithLogger(slog.Default())}
	if o.IDGenerator != nil {
		opts = append(opts, model.WithIDGenerator(o.IDGenerator))
	}
	return opts
}
