package model

import (
	"maps"
	"slices"

	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

// buildControlMask marks control wells in an array shaped like the
// measurements. A well is a control if it is listed for its microplate in
// the iteration's control block or in the spreadsheet's own block; the two
// sources are independent and their marks add up. Returns nil for a record
// without iterations.
func buildControlMask(rec *record.Record, microplates []string) (*ndarray.Array[bool], error) {
	if err := validateControl(rec); err != nil {
		return nil, err
	}
	if len(rec.Iterations) == 0 {
		return nil, nil
	}

	mask := ndarray.New[bool](shapeOf(rec, microplates)...)
	for i, it := range rec.Iterations {
		for s, sheet := range it.Spreadsheets {
			for p, name := range microplates {
				for _, source := range []record.Control{it.Control, sheet.Control} {
					for _, well := range source[name] {
						w, _ := welladdr.ToIndex(well)
						mask.Set(true, i, s, p, w)
					}
				}
			}
		}
	}
	return mask, nil
}

// validateControl checks every control well address, including those of
// microplates that are not measured.
func validateControl(rec *record.Record) error {
	check := func(c record.Control) error {
		for _, name := range slices.Sorted(maps.Keys(c)) {
			for _, well := range c[name] {
				if _, err := welladdr.ToIndex(well); err != nil {
					return err
				}
			}
		}
		return nil
	}
	for _, it := range rec.Iterations {
		if err := check(it.Control); err != nil {
			return err
		}
		for _, sheet := range it.Spreadsheets {
			if err := check(sheet.Control); err != nil {
				return err
			}
		}
	}
	return nil
}
