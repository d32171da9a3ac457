package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bzaczynski/microanalyst/internal/record"
)

// readRecord decodes the record named by --input, or standard input.
func readRecord(opts *RootOptions, cmd *cobra.Command) (*record.Record, error) {
	var r io.Reader = cmd.InOrStdin()
	if opts.Input != "" && opts.Input != "-" {
		f, err := os.Open(opts.Input)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer f.Close()
		r = f
	}

	rec, err := record.Decode(r)
	if err != nil {
		return nil, WrapExitError(ExitFailure, "failed to read record", err)
	}
	return rec, nil
}

// writeRecord encodes rec on standard output.
func writeRecord(cmd *cobra.Command, rec *record.Record) error {
	if err := record.Encode(cmd.OutOrStdout(), rec); err != nil {
		return WrapExitError(ExitFailure, "failed to write record", err)
	}
	return nil
}
