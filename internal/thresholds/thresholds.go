package thresholds

import (
	"fmt"

	"github.com/bzaczynski/microanalyst/internal/model"
	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/record"
)

// Default expressions.
const (
	DefaultStarvation = "x <= 0.2"
	DefaultInfection  = "x >= 0.8"
	DefaultViolation  = "x > 0.06"
)

// Class is the category a well reading falls into.
type Class uint8

const (
	// Missing marks a cell without a reading.
	Missing Class = iota

	// Neutral is a non-control reading that is neither starved nor infected.
	Neutral

	// Starved is a non-control reading matching the starvation expression.
	Starved

	// Infected is a non-control reading matching the infection expression.
	Infected

	// Control is a control-well reading within bounds.
	Control

	// Violated is a control-well reading matching the violation expression.
	Violated
)

func (c Class) String() string {
	switch c {
	case Missing:
		return "missing"
	case Neutral:
		return "neutral"
	case Starved:
		return "starved"
	case Infected:
		return "infected"
	case Control:
		return "control"
	case Violated:
		return "violated"
	default:
		return fmt.Sprintf("Class(%d)", uint8(c))
	}
}

// Thresholds groups the three predicates used for classification.
type Thresholds struct {
	Starvation *Expression
	Infection  *Expression
	Violation  *Expression
}

// Default returns the default thresholds.
func Default() *Thresholds {
	return &Thresholds{
		Starvation: MustCompile(DefaultStarvation),
		Infection:  MustCompile(DefaultInfection),
		Violation:  MustCompile(DefaultViolation),
	}
}

// New compiles the three expressions. An empty string selects the default.
func New(starvation, infection, violation string) (*Thresholds, error) {
	compile := func(source, fallback string) (*Expression, error) {
		if source == "" {
			source = fallback
		}
		return Compile(source)
	}

	var t Thresholds
	var err error
	if t.Starvation, err = compile(starvation, DefaultStarvation); err != nil {
		return nil, fmt.Errorf("starvation: %w", err)
	}
	if t.Infection, err = compile(infection, DefaultInfection); err != nil {
		return nil, fmt.Errorf("infection: %w", err)
	}
	if t.Violation, err = compile(violation, DefaultViolation); err != nil {
		return nil, fmt.Errorf("violation: %w", err)
	}
	return &t, nil
}

// Classify categorizes a single reading. Control wells are Violated or
// Control; other wells are Starved, Infected or Neutral, checked in that
// order. NaN is Missing.
func (t *Thresholds) Classify(value float64, isControl bool) (Class, error) {
	if record.IsMissing(value) {
		return Missing, nil
	}

	if isControl {
		violated, err := t.Violation.Eval(value)
		if err != nil {
			return Missing, err
		}
		if violated {
			return Violated, nil
		}
		return Control, nil
	}

	starved, err := t.Starvation.Eval(value)
	if err != nil {
		return Missing, err
	}
	if starved {
		return Starved, nil
	}

	infected, err := t.Infection.Eval(value)
	if err != nil {
		return Missing, err
	}
	if infected {
		return Infected, nil
	}
	return Neutral, nil
}

// ClassifyModel classifies every cell of the model. The result has the
// shape of the measurement array, or is nil when the model has no
// iterations.
func ClassifyModel(m *model.Model, t *Thresholds) (*ndarray.Array[Class], error) {
	values, err := m.Values(model.Query{})
	if err != nil || values == nil {
		return nil, err
	}
	mask, err := m.ControlMask(model.Query{})
	if err != nil {
		return nil, err
	}

	readings := values.Data()
	controls := mask.Data()
	classes := make([]Class, len(readings))
	for i, v := range readings {
		if classes[i], err = t.Classify(v, controls[i]); err != nil {
			return nil, err
		}
	}
	return ndarray.FromData(classes, values.Shape()...)
}
