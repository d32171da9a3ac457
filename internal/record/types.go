package record

import (
	"encoding/json"
	"maps"
	"math"
	"slices"
)

// Record is the root of an experiment document.
type Record struct {
	Iterations []Iteration

	// Genes maps microplate name -> well address -> gene name.
	// Nil when the document has no genes block.
	Genes Genes

	Extra Extra
}

// Iteration is one measurement batch.
type Iteration struct {
	// Control lists control wells per microplate for every spreadsheet
	// of the iteration. Nil when absent.
	Control Control

	Spreadsheets []Spreadsheet

	Extra Extra
}

// Spreadsheet is one measurement file within an iteration.
type Spreadsheet struct {
	Filename string

	// Control lists control wells per microplate for this spreadsheet only.
	Control Control

	Microplates map[string]Microplate

	Extra Extra
}

// Microplate holds the 96 well readings of one container.
type Microplate struct {
	Values Values

	// Timestamp is the instrument read time, empty when unknown.
	Timestamp string

	// Temperature is the instrument temperature, nil when unknown.
	Temperature *float64

	Extra Extra
}

// Control maps microplate name to the addresses of its control wells.
type Control map[string][]string

// Genes maps microplate name -> well address -> gene name.
type Genes map[string]map[string]string

// Extra holds properties the codec does not interpret, as raw JSON.
type Extra map[string]json.RawMessage

// Values is a row-major list of well readings. NaN marks a missing reading.
type Values []float64

// Missing returns the sentinel used for absent readings.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v is the missing-reading sentinel.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// MissingValues returns n missing readings.
func MissingValues(n int) Values {
	values := make(Values, n)
	for i := range values {
		values[i] = math.NaN()
	}
	return values
}

// Clone returns a deep copy of the record. Nil maps stay nil.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := &Record{
		Genes: r.Genes.Clone(),
		Extra: r.Extra.Clone(),
	}
	if r.Iterations != nil {
		out.Iterations = make([]Iteration, len(r.Iterations))
		for i := range r.Iterations {
			out.Iterations[i] = r.Iterations[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the iteration.
func (it Iteration) Clone() Iteration {
	out := Iteration{
		Control: it.Control.Clone(),
		Extra:   it.Extra.Clone(),
	}
	if it.Spreadsheets != nil {
		out.Spreadsheets = make([]Spreadsheet, len(it.Spreadsheets))
		for i := range it.Spreadsheets {
			out.Spreadsheets[i] = it.Spreadsheets[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the spreadsheet.
func (s Spreadsheet) Clone() Spreadsheet {
	out := Spreadsheet{
		Filename: s.Filename,
		Control:  s.Control.Clone(),
		Extra:    s.Extra.Clone(),
	}
	if s.Microplates != nil {
		out.Microplates = make(map[string]Microplate, len(s.Microplates))
		for name, plate := range s.Microplates {
			out.Microplates[name] = plate.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the microplate.
func (m Microplate) Clone() Microplate {
	out := Microplate{
		Values:    slices.Clone(m.Values),
		Timestamp: m.Timestamp,
		Extra:     m.Extra.Clone(),
	}
	if m.Temperature != nil {
		t := *m.Temperature
		out.Temperature = &t
	}
	return out
}

// Clone returns a deep copy of the control block.
func (c Control) Clone() Control {
	if c == nil {
		return nil
	}
	out := make(Control, len(c))
	for name, wells := range c {
		out[name] = slices.Clone(wells)
	}
	return out
}

// Clone returns a deep copy of the genes block.
func (g Genes) Clone() Genes {
	if g == nil {
		return nil
	}
	out := make(Genes, len(g))
	for name, wells := range g {
		out[name] = maps.Clone(wells)
	}
	return out
}

// Clone returns a deep copy of the extra properties.
func (e Extra) Clone() Extra {
	if e == nil {
		return nil
	}
	out := make(Extra, len(e))
	for k, v := range e {
		out[k] = slices.Clone(v)
	}
	return out
}

// SpreadsheetCounts returns the number of spreadsheets in each iteration.
func (r *Record) SpreadsheetCounts() []int {
	counts := make([]int, len(r.Iterations))
	for i, it := range r.Iterations {
		counts[i] = len(it.Spreadsheets)
	}
	return counts
}
