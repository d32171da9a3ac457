package annotate

import (
	"fmt"
	"log/slog"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/record"
)

// SetControl returns a copy of rec in which iteration i is annotated with
// controls[i]. There must be exactly one entry per iteration. A nil entry
// leaves its iteration untouched. An existing annotation is replaced.
func SetControl(rec *record.Record, controls []record.Control, logger *slog.Logger) (*record.Record, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(controls) != len(rec.Iterations) {
		return nil, modelerr.NewMalformedInput("iterations",
			fmt.Sprintf("record has %d iterations but %d control annotations provided", len(rec.Iterations), len(controls)))
	}

	out := rec.Clone()
	for i, control := range controls {
		if control == nil {
			logger.Warn("control wells not provided", "iteration", i+1)
			continue
		}
		if out.Iterations[i].Control != nil {
			logger.Warn("control property overwritten", "iteration", i+1)
		}
		out.Iterations[i].Control = control.Clone()
	}
	return out, nil
}

// SetGenes returns a copy of rec carrying genes as its gene annotations.
func SetGenes(rec *record.Record, genes record.Genes) *record.Record {
	out := rec.Clone()
	out.Genes = genes.Clone()
	if out.Genes == nil {
		out.Genes = record.Genes{}
	}
	return out
}
