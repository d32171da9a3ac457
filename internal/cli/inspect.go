package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bzaczynski/microanalyst/internal/config"
	"github.com/bzaczynski/microanalyst/internal/model"
	"github.com/bzaczynski/microanalyst/internal/thresholds"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Config string
}

// InspectResult summarizes an experiment.
type InspectResult struct {
	Model             string         `json:"model"`
	Iterations        int            `json:"iterations"`
	Spreadsheets      int            `json:"spreadsheets"`
	SpreadsheetCounts []int          `json:"spreadsheet_counts"`
	Filenames         [][]string     `json:"filenames"`
	Microplates       []string       `json:"microplates"`
	GenesDefined      []string       `json:"genes_defined"`
	GenesUsed         []string       `json:"genes_used"`
	Classes           map[string]int `json:"classes"`
}

// classOrder lists classes in report order.
var classOrder = []thresholds.Class{
	thresholds.Missing,
	thresholds.Neutral,
	thresholds.Starved,
	thresholds.Infected,
	thresholds.Control,
	thresholds.Violated,
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize an experiment record",
		Long: `Summarize an experiment record.

Prints the number of iterations and spreadsheets, spreadsheet filenames per
iteration, microplate names, defined and used genes, and how many wells fall
into each threshold class.

Examples:
  microanalyst inspect --input experiment.json
  cat experiment.json | microanalyst inspect --format json
  microanalyst inspect --input experiment.json --config thresholds.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "YAML file with threshold expressions")

	return cmd
}

func runInspect(opts *InspectOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.Config)
	if err != nil {
		return err
	}
	th, err := cfg.CompileThresholds()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid thresholds", err)
	}

	rec, err := readRecord(opts.RootOptions, cmd)
	if err != nil {
		return err
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	m, err := model.New(rec, opts.modelOptions()...)
	if err != nil {
		if opts.Format == "json" {
			_ = formatter.Failure(err)
		}
		return WrapExitError(ExitFailure, "invalid record", err)
	}

	result, err := inspect(m, th)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to inspect record", err)
	}

	return formatter.Success(result, func(w io.Writer) error {
		return outputInspectText(w, result)
	})
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}
	return cfg, nil
}

func inspect(m *model.Model, th *thresholds.Thresholds) (InspectResult, error) {
	result := InspectResult{
		Model:             m.ID(),
		Iterations:        m.NumIterations(),
		Spreadsheets:      m.NumSpreadsheets(),
		SpreadsheetCounts: m.Padding().Counts(),
		Filenames:         [][]string{},
		Classes:           map[string]int{},
	}

	for i := range m.NumIterations() {
		names, err := m.Filenames(true, model.Index(i))
		if err != nil {
			return InspectResult{}, err
		}
		result.Filenames = append(result.Filenames, names)
	}

	var err error
	if result.Microplates, err = m.MicroplateNames(model.Unspecified, model.Unspecified); err != nil {
		return InspectResult{}, err
	}

	defined, err := m.Genes(model.Unspecified, model.Unspecified)
	if err != nil {
		return InspectResult{}, err
	}
	result.GenesDefined = model.GeneNames(defined)
	result.GenesUsed = model.GeneNames(m.GenesUsed())

	for _, class := range classOrder {
		result.Classes[class.String()] = 0
	}
	classes, err := thresholds.ClassifyModel(m, th)
	if err != nil {
		return InspectResult{}, err
	}
	if classes != nil {
		for _, class := range classes.Data() {
			result.Classes[class.String()]++
		}
	}

	return result, nil
}

// outputInspectText renders the summary for humans.
func outputInspectText(w io.Writer, result InspectResult) error {
	fmt.Fprintf(w, "Model: %s\n", result.Model)
	fmt.Fprintf(w, "Iterations: %d\n", result.Iterations)
	fmt.Fprintf(w, "Spreadsheets: %d per iteration (found %s)\n",
		result.Spreadsheets, joinInts(result.SpreadsheetCounts))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Filenames ===")
	if len(result.Filenames) == 0 {
		fmt.Fprintln(w, "  (no iterations)")
	}
	for i, names := range result.Filenames {
		labels := make([]string, len(names))
		for j, name := range names {
			labels[j] = name
			if name == "" {
				labels[j] = "(padding)"
			}
		}
		fmt.Fprintf(w, "  #%d: %s\n", i+1, strings.Join(labels, ", "))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Microplates ===")
	fmt.Fprintf(w, "  %s\n", listOrNone(result.Microplates))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Genes ===")
	fmt.Fprintf(w, "  Defined: %s\n", listOrNone(result.GenesDefined))
	fmt.Fprintf(w, "  Used:    %s\n", listOrNone(result.GenesUsed))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "=== Classes ===")
	for _, class := range classOrder {
		name := class.String()
		fmt.Fprintf(w, "  %-9s %d\n", name+":", result.Classes[name])
	}

	return nil
}

func joinInts(values []int) string {
	if len(values) == 0 {
		return "none"
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ", ")
}

func listOrNone(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
