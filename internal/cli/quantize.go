package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/bzaczynski/microanalyst/internal/quantize"
)

// QuantizeOptions holds flags for the quantize command.
type QuantizeOptions struct {
	*RootOptions
	Config  string
	Control int
	Other   int
	Starved int
}

// NewQuantizeCommand creates the quantize command.
func NewQuantizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuantizeOptions{RootOptions: rootOpts}
	defaults := quantize.DefaultLevels()

	cmd := &cobra.Command{
		Use:   "quantize",
		Short: "Replace readings with discrete levels",
		Long: `Replace every reading with a discrete level.

Control wells get the control level. Other wells get the starved level when
the starvation threshold holds and the other level otherwise. Missing
readings stay missing. Levels given as flags take precedence over the
configuration file.

Examples:
  microanalyst quantize --input experiment.json > quantized.json
  microanalyst quantize --config microanalyst.yaml --starved -1 < experiment.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantize(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "YAML file with thresholds and levels")
	cmd.Flags().IntVar(&opts.Control, "control", defaults.Control, "level of control wells")
	cmd.Flags().IntVar(&opts.Other, "other", defaults.Other, "level of wells that are not starved")
	cmd.Flags().IntVar(&opts.Starved, "starved", defaults.Starved, "level of starved wells")

	return cmd
}

func runQuantize(opts *QuantizeOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	th, err := cfg.CompileThresholds()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid thresholds", err)
	}

	levels := cfg.QuantizeLevels()
	flags := cmd.Flags()
	if flags.Changed("control") {
		levels.Control = opts.Control
	}
	if flags.Changed("other") {
		levels.Other = opts.Other
	}
	if flags.Changed("starved") {
		levels.Starved = opts.Starved
	}

	rec, err := readRecord(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	slog.Debug("quantizing record",
		"control", levels.Control,
		"other", levels.Other,
		"starved", levels.Starved,
		"starvation", th.Starvation.String(),
	)
	out, err := quantize.Record(rec, th, levels, opts.modelOptions()...)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to quantize record", err)
	}

	return writeRecord(cmd, out)
}
