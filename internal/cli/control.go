package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bzaczynski/microanalyst/internal/annotate"
)

// NewControlCommand creates the control command.
func NewControlCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "control <file|-> [<file|->...]",
		Short: "Attach control wells to iterations",
		Long: `Attach control wells to every iteration of a record.

Each argument is a YAML or JSON file mapping microplate names to lists of
well addresses, given in iteration order. The number of arguments must
match the number of iterations. Use "-" to leave an iteration without
control wells.

Examples:
  microanalyst control series1/ctrl.json series2/ctrl.json < experiment.json
  microanalyst control - - series3/ctrl.yaml - --input experiment.json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runControl(rootOpts, cmd, args)
		},
	}

	return cmd
}

func runControl(opts *RootOptions, cmd *cobra.Command, paths []string) error {
	controls, err := annotate.LoadControls(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load control wells", err)
	}

	rec, err := readRecord(opts, cmd)
	if err != nil {
		return err
	}

	out, err := annotate.SetControl(rec, controls, slog.Default())
	if err != nil {
		return WrapExitError(ExitFailure, "failed to attach control wells", err)
	}

	return writeRecord(cmd, out)
}
