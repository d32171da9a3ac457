package model

import (
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/ndarray"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/welladdr"
)

// Model is an experiment laid out on the iteration x spreadsheet x
// microplate x well axes.
//
// Everything is computed in New from a private copy of the record and is
// read-only afterwards, except for the measurement array which SetValues
// replaces wholesale. Queries are safe for concurrent use; SetValues is not
// synchronized and must be serialized by the caller.
type Model struct {
	id     string
	logger *slog.Logger

	rec         *record.Record // padded private copy
	padding     *Padding
	names       *nameIndex
	microplates []string

	values *ndarray.Array[float64]
	mask   *ndarray.Array[bool]
	genes  *geneIndex
}

// Option configures a Model.
type Option func(*options)

type options struct {
	logger *slog.Logger
	ids    IDGenerator
}

// WithLogger sets the logger receiving construction diagnostics.
// Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithIDGenerator sets the source of model identifiers.
// Default: UUIDv7Generator.
func WithIDGenerator(ids IDGenerator) Option {
	return func(o *options) {
		o.ids = ids
	}
}

// New builds a Model from a deep copy of rec. Later changes to rec do
// not affect the model. On error no Model is returned.
func New(rec *record.Record, opts ...Option) (*Model, error) {
	if rec == nil {
		return nil, modelerr.NewMalformedInput("", "nil record")
	}

	o := options{
		logger: slog.Default(),
		ids:    UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Model{
		id:  o.ids.Generate(),
		rec: rec.Clone(),
	}
	m.logger = o.logger.With("model", m.id)

	m.padding = NewPadding(m.rec.SpreadsheetCounts())
	m.padding.apply(m.rec, m.logger)

	m.names = newNameIndex(m.rec)
	m.microplates, _ = m.names.microplateNamesOf(Unspecified, Unspecified)

	var err error
	if m.values, err = buildMeasurements(m.rec, m.microplates); err != nil {
		return nil, err
	}
	if m.mask, err = buildControlMask(m.rec, m.microplates); err != nil {
		return nil, err
	}
	m.genes = newGeneIndex(m, m.rec.Genes, m.microplates, m.logger)

	m.logger.Debug("model built",
		"iterations", len(m.rec.Iterations),
		"spreadsheets", m.padding.MaxCount(),
		"microplates", len(m.microplates),
	)
	return m, nil
}

// Load decodes a record from r and builds a Model from it.
func Load(r io.Reader, opts ...Option) (*Model, error) {
	rec, err := record.Decode(r)
	if err != nil {
		return nil, err
	}
	return New(rec, opts...)
}

// LoadFile decodes the record stored at path and builds a Model from it.
func LoadFile(path string, opts ...Option) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open record: %w", err)
	}
	defer f.Close()

	m, err := Load(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// ID returns the model identifier.
func (m *Model) ID() string {
	return m.id
}

func (m *Model) String() string {
	return fmt.Sprintf("<microanalyst.Model %s>", m.id)
}

// NumIterations returns the length of the iteration axis.
func (m *Model) NumIterations() int {
	return len(m.rec.Iterations)
}

// NumSpreadsheets returns the length of the spreadsheet axis after padding.
func (m *Model) NumSpreadsheets() int {
	return m.padding.MaxCount()
}

// Shape returns the shape of the measurement array, or nil when the
// experiment has no iterations.
func (m *Model) Shape() []int {
	if m.values == nil {
		return nil
	}
	return m.values.Shape()
}

// Padding returns the spreadsheet counts observed before padding.
func (m *Model) Padding() *Padding {
	return m.padding
}

// WellNames yields the 96 well addresses in row-major order.
func (m *Model) WellNames() iter.Seq[string] {
	return welladdr.Names()
}

// MicroplateNames returns the sorted names of microplates measured in the
// selected iteration and spreadsheet.
func (m *Model) MicroplateNames(iteration, spreadsheet Key) ([]string, error) {
	return m.names.microplateNamesOf(iteration, spreadsheet)
}

// Filenames returns spreadsheet filenames in their original order, for a
// single iteration or flattened across all of them. Padding stubs
// contribute empty names so positions line up with the spreadsheet axis.
func (m *Model) Filenames(withPath bool, iteration Key) ([]string, error) {
	return m.names.filenamesOf(withPath, iteration)
}

// Values returns a copy of the selected readings. A fully specified query
// yields a 0-dimensional array. Returns nil without error when the
// experiment has no iterations.
func (m *Model) Values(q Query) (*ndarray.Array[float64], error) {
	if m.values == nil {
		return nil, nil
	}
	sel, err := m.resolve(q)
	if err != nil {
		return nil, err
	}
	return m.values.Select(sel...)
}

// ControlMask returns a copy of the selected control flags, with the same
// selection rules as Values.
func (m *Model) ControlMask(q Query) (*ndarray.Array[bool], error) {
	if m.mask == nil {
		return nil, nil
	}
	sel, err := m.resolve(q)
	if err != nil {
		return nil, err
	}
	return m.mask.Select(sel...)
}

// Value returns a single reading. Every axis of q must be specified.
func (m *Model) Value(q Query) (float64, error) {
	return scalar(m, q, m.Values)
}

// IsControl reports whether a single well is a control well. Every axis
// of q must be specified.
func (m *Model) IsControl(q Query) (bool, error) {
	return scalar(m, q, m.ControlMask)
}

func scalar[T any](m *Model, q Query, get func(Query) (*ndarray.Array[T], error)) (T, error) {
	var zero T
	if !q.Full() {
		return zero, modelerr.NewInvalidKey("query", "every axis must be specified")
	}
	if m.values == nil {
		return zero, modelerr.NewOutOfRange("iteration", q.Iteration.index, 0)
	}
	a, err := get(q)
	if err != nil {
		return zero, err
	}
	v, _ := a.Scalar()
	return v, nil
}

// SetValues replaces the measurement array with a copy of values, which
// must have the same shape. This is the only way to change a Model.
func (m *Model) SetValues(values *ndarray.Array[float64]) error {
	if m.values == nil || values == nil {
		return modelerr.NewShapeMismatch(m.Shape(), shapeOrNil(values))
	}
	if !ndarray.SameShape(m.values, values) {
		return modelerr.NewShapeMismatch(m.values.Shape(), values.Shape())
	}
	m.values = values.Clone()
	return nil
}

func shapeOrNil[T any](a *ndarray.Array[T]) []int {
	if a == nil {
		return nil
	}
	return a.Shape()
}

// Genes returns the genes at the selected coordinates. With both keys
// given the result has at most one element; otherwise it is sorted by
// name without duplicate names. A microplate that is measured but carries
// no annotations yields an empty result; a microplate unknown to both the
// measurements and the annotations is an error.
func (m *Model) Genes(well, microplate Key) ([]Gene, error) {
	return m.genes.lookup(well, microplate)
}

// GeneAt returns the gene annotated at a single well.
func (m *Model) GeneAt(well, microplate Key) (Gene, bool, error) {
	if !well.Specified() || !microplate.Specified() {
		return Gene{}, false, modelerr.NewInvalidKey("gene", "well and microplate must be specified")
	}
	genes, err := m.genes.lookup(well, microplate)
	if err != nil || len(genes) == 0 {
		return Gene{}, false, err
	}
	return genes[0], true, nil
}

// GeneByName finds a gene by case-insensitive name. When a name is
// annotated more than once, the first occurrence in microplate then well
// order is returned.
func (m *Model) GeneByName(name string) (Gene, bool) {
	return m.genes.byFoldedName(name)
}

// GenesUsed returns the genes annotated on microplates that were measured,
// sorted by name without duplicate names.
func (m *Model) GenesUsed() []Gene {
	return m.genes.used()
}

// Record returns a copy of the padded record with the current readings.
func (m *Model) Record() *record.Record {
	rec, _ := m.WriteBack(m.rec)
	return rec
}

// WriteBack returns a copy of rec in which the readings of every
// microplate are replaced by the model's current ones. rec must have the
// model's layout up to padding: the same iterations, no more spreadsheets
// than the padded axis and only known microplates. Name-only microplates
// are left empty.
func (m *Model) WriteBack(rec *record.Record) (*record.Record, error) {
	out := rec.Clone()
	if len(out.Iterations) != m.NumIterations() {
		return nil, modelerr.NewMalformedInput("iterations",
			fmt.Sprintf("expected %d iterations, got %d", m.NumIterations(), len(out.Iterations)))
	}
	for i := range out.Iterations {
		sheets := out.Iterations[i].Spreadsheets
		if len(sheets) > m.NumSpreadsheets() {
			return nil, modelerr.NewMalformedInput(fmt.Sprintf("iterations[%d].spreadsheets", i),
				fmt.Sprintf("expected at most %d spreadsheets, got %d", m.NumSpreadsheets(), len(sheets)))
		}
		for s := range sheets {
			for name, plate := range sheets[s].Microplates {
				if len(plate.Values) == 0 {
					continue
				}
				cells, err := m.Values(Query{Iteration: Index(i), Spreadsheet: Index(s), Microplate: Name(name)})
				if err != nil {
					return nil, err
				}
				plate.Values = record.Values(cells.Data())
				sheets[s].Microplates[name] = plate
			}
		}
	}
	return out, nil
}

func (m *Model) resolve(q Query) ([]int, error) {
	shape := m.values.Shape()

	i, err := resolveIndex("iteration", q.Iteration, shape[0])
	if err != nil {
		return nil, err
	}
	s, err := resolveIndex("spreadsheet", q.Spreadsheet, shape[1])
	if err != nil {
		return nil, err
	}
	p, err := resolveMicroplate(q.Microplate, m.microplates)
	if err != nil {
		return nil, err
	}
	w, err := resolveWell(q.Well)
	if err != nil {
		return nil, err
	}
	return []int{i, s, p, w}, nil
}
