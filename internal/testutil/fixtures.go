package testutil

import (
	"fmt"

	"github.com/bzaczynski/microanalyst/internal/record"
)

// Empty returns a record without iterations.
func Empty() *record.Record {
	return &record.Record{Iterations: []record.Iteration{}}
}

// WithFilenames returns a record with one iteration per argument and one
// microplate-less spreadsheet per filename:
//
//	WithFilenames([]string{"foo", "bar"}, []string{"baz"})
func WithFilenames(iterations ...[]string) *record.Record {
	rec := Empty()
	for _, filenames := range iterations {
		it := record.Iteration{Spreadsheets: []record.Spreadsheet{}}
		for _, name := range filenames {
			it.Spreadsheets = append(it.Spreadsheets, record.Spreadsheet{
				Filename:    name,
				Microplates: map[string]record.Microplate{},
			})
		}
		rec.Iterations = append(rec.Iterations, it)
	}
	return rec
}

// WithMicroplates returns a record with one iteration per argument; each
// inner slice lists the microplates of one spreadsheet. Microplates carry
// no readings:
//
//	WithMicroplates(
//		[][]string{{"001", "002"}, {"001", "002"}},
//		[][]string{{"003"}, {"004"}})
func WithMicroplates(iterations ...[][]string) *record.Record {
	return build(iterations, func(int, int) string { return "" }, func() record.Values { return record.Values{} })
}

// WithRandomValues is like WithMicroplates but fills every microplate with
// 96 readings from values and names spreadsheets
// "iteration<i>/spreadsheet<j>.xls", both 1-based.
func WithRandomValues(values *DeterministicValues, iterations ...[][]string) *record.Record {
	filename := func(i, j int) string {
		return fmt.Sprintf("iteration%d/spreadsheet%d.xls", i+1, j+1)
	}
	return build(iterations, filename, values.Plate)
}

// WithGenes returns a record without iterations carrying a genes block:
//
//	WithGenes(record.Genes{"001": {"A1": "foobar"}})
func WithGenes(genes record.Genes) *record.Record {
	rec := Empty()
	rec.Genes = genes
	return rec
}

// WithControlWells returns a record with one iteration per argument. A
// non-nil control block becomes the iteration's control annotation and
// the iteration gets one spreadsheet holding every annotated microplate.
// A nil block yields an iteration without spreadsheets:
//
//	WithControlWells(
//		record.Control{"001": {"A1", "A2"}, "002": {"A4"}},
//		nil,
//		record.Control{"001": {"C1", "C2"}, "002": {"C4"}})
func WithControlWells(iterations ...record.Control) *record.Record {
	rec := Empty()
	for _, control := range iterations {
		if control == nil {
			rec.Iterations = append(rec.Iterations, record.Iteration{Spreadsheets: []record.Spreadsheet{}})
			continue
		}
		plates := make(map[string]record.Microplate, len(control))
		for name := range control {
			plates[name] = record.Microplate{Values: record.Values{}}
		}
		rec.Iterations = append(rec.Iterations, record.Iteration{
			Control:      control,
			Spreadsheets: []record.Spreadsheet{{Filename: "", Microplates: plates}},
		})
	}
	return rec
}

func build(iterations [][][]string, filename func(i, j int) string, values func() record.Values) *record.Record {
	rec := Empty()
	for i, spreadsheets := range iterations {
		it := record.Iteration{Spreadsheets: []record.Spreadsheet{}}
		for j, names := range spreadsheets {
			plates := make(map[string]record.Microplate, len(names))
			for _, name := range names {
				plates[name] = record.Microplate{Values: values()}
			}
			it.Spreadsheets = append(it.Spreadsheets, record.Spreadsheet{
				Filename:    filename(i, j),
				Microplates: plates,
			})
		}
		rec.Iterations = append(rec.Iterations, it)
	}
	return rec
}
