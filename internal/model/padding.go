package model

import (
	"log/slog"
	"slices"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/record"
)

// Padding describes how ragged iterations are squared up: every iteration
// is extended with empty spreadsheets up to the largest spreadsheet count.
type Padding struct {
	counts []int
	max    int
}

// NewPadding creates a Padding from per-iteration spreadsheet counts.
func NewPadding(counts []int) *Padding {
	p := &Padding{counts: slices.Clone(counts)}
	if len(counts) > 0 {
		p.max = slices.Max(counts)
	}
	return p
}

// HasEqualCount reports whether every iteration has the same number of
// spreadsheets. True for zero or one iteration.
func (p *Padding) HasEqualCount() bool {
	for _, n := range p.counts {
		if n != p.max {
			return false
		}
	}
	return true
}

// MissingCount returns how many stubs iteration needs.
func (p *Padding) MissingCount(iteration int) (int, error) {
	if iteration < 0 || iteration >= len(p.counts) {
		return 0, modelerr.NewOutOfRange("iteration", iteration, len(p.counts))
	}
	return p.max - p.counts[iteration], nil
}

// Counts returns the spreadsheet count of every iteration before padding.
func (p *Padding) Counts() []int {
	return slices.Clone(p.counts)
}

// MaxCount returns the spreadsheet count of every iteration after padding.
func (p *Padding) MaxCount() int {
	return p.max
}

// stub is the placeholder appended to short iterations.
func stub() record.Spreadsheet {
	return record.Spreadsheet{Filename: "", Microplates: map[string]record.Microplate{}}
}

// apply appends stubs to rec in place and reports the misalignment once.
func (p *Padding) apply(rec *record.Record, logger *slog.Logger) {
	if p.HasEqualCount() {
		return
	}
	logger.Warn("unequal number of spreadsheets across iterations",
		"counts", p.Counts(),
		"max", p.max,
	)
	for i := range rec.Iterations {
		missing, _ := p.MissingCount(i)
		for range missing {
			rec.Iterations[i].Spreadsheets = append(rec.Iterations[i].Spreadsheets, stub())
		}
	}
}
