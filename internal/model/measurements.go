package model

import (
	"fmt"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

// shapeOf returns the four-axis shape of a padded record.
func shapeOf(rec *record.Record, microplates []string) []int {
	return []int{
		len(rec.Iterations),
		len(rec.Iterations[0].Spreadsheets),
		len(microplates),
		welladdr.Count,
	}
}

// buildMeasurements lays the padded record out as an
// iteration x spreadsheet x microplate x well array. Microplates absent
// from a spreadsheet contribute missing readings. Returns nil for a
// record without iterations.
func buildMeasurements(rec *record.Record, microplates []string) (*ndarray.Array[float64], error) {
	if len(rec.Iterations) == 0 {
		return nil, nil
	}

	values := ndarray.Full(record.Missing(), shapeOf(rec, microplates)...)
	for i, it := range rec.Iterations {
		for s, sheet := range it.Spreadsheets {
			for p, name := range microplates {
				plate, ok := sheet.Microplates[name]
				if !ok {
					continue
				}
				switch len(plate.Values) {
				case 0:
					// name-only microplate
				case welladdr.Count:
					for w, v := range plate.Values {
						values.Set(v, i, s, p, w)
					}
				default:
					path := fmt.Sprintf("iterations[%d].spreadsheets[%d].microplates[%q].values", i, s, name)
					return nil, modelerr.NewMalformedInput(path,
						fmt.Sprintf("expected %d values, got %d", welladdr.Count, len(plate.Values)))
				}
			}
		}
	}
	return values, nil
}
