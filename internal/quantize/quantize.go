package quantize

import (
	"fmt"

	"github.com/bzaczynski/microanalyst/internal/model"
	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/thresholds"
)

// Levels are the values assigned to each category.
type Levels struct {
	Control int
	Other   int
	Starved int
}

// DefaultLevels returns control=2, other=1, starved=0.
func DefaultLevels() Levels {
	return Levels{Control: 2, Other: 1, Starved: 0}
}

// Values computes the quantized measurement array of m. Control wells get
// the control level, other wells the starved level when the starvation
// expression holds and the other level otherwise. Missing readings stay
// missing. Returns nil for a model without iterations.
func Values(m *model.Model, th *thresholds.Thresholds, levels Levels) (*ndarray.Array[float64], error) {
	values, err := m.Values(model.Query{})
	if err != nil || values == nil {
		return nil, err
	}
	mask, err := m.ControlMask(model.Query{})
	if err != nil {
		return nil, err
	}

	var evalErr error
	quantized, err := ndarray.Zip(values, mask, func(x float64, isControl bool) float64 {
		switch {
		case record.IsMissing(x) || evalErr != nil:
			return x
		case isControl:
			return float64(levels.Control)
		}
		starved, err := th.Starvation.Eval(x)
		if err != nil {
			evalErr = err
			return x
		}
		if starved {
			return float64(levels.Starved)
		}
		return float64(levels.Other)
	})
	if err != nil {
		return nil, err
	}
	if evalErr != nil {
		return nil, fmt.Errorf("quantize: %w", evalErr)
	}
	return quantized, nil
}

// Record quantizes rec and returns an updated copy. The model is built
// with opts; rec itself is not modified.
func Record(rec *record.Record, th *thresholds.Thresholds, levels Levels, opts ...model.Option) (*record.Record, error) {
	m, err := model.New(rec, opts...)
	if err != nil {
		return nil, err
	}

	quantized, err := Values(m, th, levels)
	if err != nil {
		return nil, err
	}
	if quantized == nil {
		return rec.Clone(), nil
	}
	if err := m.SetValues(quantized); err != nil {
		return nil, err
	}
	return m.WriteBack(rec)
}
