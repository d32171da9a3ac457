package cli

import (
	"github.com/spf13/cobra"

	"github.com/bzaczynski/microanalyst/internal/annotate"
)

// NewGenesCommand creates the genes command.
func NewGenesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genes <file>",
		Short: "Attach gene names to a record",
		Long: `Attach gene names to a record, replacing any existing ones.

The file maps microplate names to objects that map well addresses to gene
names, in YAML or JSON.

Example:
  microanalyst genes genes.yaml < experiment.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenes(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runGenes(opts *RootOptions, cmd *cobra.Command, path string) error {
	genes, err := annotate.LoadGenes(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load genes", err)
	}

	rec, err := readRecord(opts, cmd)
	if err != nil {
		return err
	}

	return writeRecord(cmd, annotate.SetGenes(rec, genes))
}
