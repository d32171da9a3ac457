package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/testutil"
)

// genesRecord measures microplates 001 and 002; genes are annotated on
// 001 and on 003, which was never measured.
func genesRecord() *record.Record {
	rec := testutil.WithRandomValues(testutil.NewDeterministicValues(3),
		[][]string{{"001", "002"}},
		[][]string{{"001", "002"}},
	)
	rec.Genes = record.Genes{
		"001": {"A1": "foo", "A2": "bar", "h12": "Baz"},
		"003": {"E4": "qux", "A1": "bar"},
	}
	return rec
}

func TestGenes(t *testing.T) {
	m, _ := newTestModel(t, genesRecord())

	tests := []struct {
		name       string
		well       Key
		microplate Key
		want       []string
	}{
		{"everything", Unspecified, Unspecified, []string{"Baz", "bar", "foo", "qux"}},
		{"one microplate", Unspecified, Name("001"), []string{"Baz", "bar", "foo"}},
		{"unmeasured microplate with genes", Unspecified, Name("003"), []string{"bar", "qux"}},
		{"measured microplate without genes", Unspecified, Name("002"), []string{}},
		{"microplate by index", Unspecified, Index(0), []string{"Baz", "bar", "foo"}},
		{"one well everywhere", Name("A1"), Unspecified, []string{"bar", "foo"}},
		{"well by index", Index(0), Unspecified, []string{"bar", "foo"}},
		{"single coordinate", Name("A2"), Name("001"), []string{"bar"}},
		{"canonicalized well", Name("H12"), Name("001"), []string{"Baz"}},
		{"single empty coordinate", Name("B1"), Name("001"), []string{}},
		{"single coordinate on plate without genes", Name("A1"), Name("002"), []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			genes, err := m.Genes(tt.well, tt.microplate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, GeneNames(genes))
		})
	}
}

func TestGenesErrors(t *testing.T) {
	m, _ := newTestModel(t, genesRecord())

	_, err := m.Genes(Unspecified, Name("999"))
	assert.True(t, modelerr.IsUnknownMicroplate(err))

	_, err = m.Genes(Unspecified, Index(2))
	assert.True(t, modelerr.IsOutOfRange(err))

	_, err = m.Genes(Name("Q1"), Unspecified)
	assert.True(t, modelerr.IsInvalidAddress(err))
}

func TestGenesWithoutGenesBlock(t *testing.T) {
	m, _ := newTestModel(t, testutil.WithMicroplates([][]string{{"001"}}))

	genes, err := m.Genes(Unspecified, Unspecified)
	require.NoError(t, err)
	assert.Empty(t, genes)

	genes, err = m.Genes(Name("A1"), Name("999"))
	require.NoError(t, err)
	assert.Empty(t, genes)

	assert.Empty(t, m.GenesUsed())

	_, found := m.GeneByName("foo")
	assert.False(t, found)
}

func TestGenesDeduplicateByName(t *testing.T) {
	m, _ := newTestModel(t, genesRecord())

	genes, err := m.Genes(Unspecified, Unspecified)
	require.NoError(t, err)

	var bar Gene
	for _, g := range genes {
		if g.Name() == "bar" {
			bar = g
		}
	}
	microplate, well := bar.Coordinate()
	assert.Equal(t, "001", microplate)
	assert.Equal(t, "A2", well)
}

func TestGenesReturnCopies(t *testing.T) {
	m, _ := newTestModel(t, testutil.WithGenes(record.Genes{"001": {"A1": "foobar"}}))

	first, err := m.Genes(Unspecified, Unspecified)
	require.NoError(t, err)
	first[0] = Gene{name: "changed"}

	second, err := m.Genes(Unspecified, Unspecified)
	require.NoError(t, err)
	assert.Equal(t, []string{"foobar"}, GeneNames(second))
}

func TestGeneAt(t *testing.T) {
	m, _ := newTestModel(t, genesRecord())

	gene, found, err := m.GeneAt(Name("a1"), Name("001"))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "foo", gene.String())
	assert.Equal(t, "A1", gene.Well())
	assert.Equal(t, "001", gene.Microplate())

	_, found, err = m.GeneAt(Name("B1"), Name("001"))
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = m.GeneAt(Unspecified, Name("001"))
	assert.True(t, modelerr.IsInvalidKey(err))

	_, _, err = m.GeneAt(Name("A1"), Name("999"))
	assert.True(t, modelerr.IsUnknownMicroplate(err))
}

func TestGeneByName(t *testing.T) {
	m, _ := newTestModel(t, genesRecord())

	tests := []struct {
		query      string
		name       string
		microplate string
		well       string
	}{
		{"foo", "foo", "001", "A1"},
		{"FOO", "foo", "001", "A1"},
		{"baz", "Baz", "001", "H12"},
		{"BAR", "bar", "001", "A2"},
		{"qux", "qux", "003", "E4"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			gene, found := m.GeneByName(tt.query)
			require.True(t, found)
			assert.Equal(t, tt.name, gene.Name())
			microplate, well := gene.Coordinate()
			assert.Equal(t, tt.microplate, microplate)
			assert.Equal(t, tt.well, well)
		})
	}

	_, found := m.GeneByName("missing")
	assert.False(t, found)
}

func TestDuplicateGeneReportedOnce(t *testing.T) {
	rec := testutil.WithGenes(record.Genes{
		"001": {"A1": "foo"},
		"003": {"E4": "foo"},
	})
	m, logs := newTestModel(t, rec)

	gene, found := m.GeneByName("foo")
	require.True(t, found)
	microplate, well := gene.Coordinate()
	assert.Equal(t, "001", microplate)
	assert.Equal(t, "A1", well)

	warnings := logs.WithMessage("duplicate gene name")
	require.Len(t, warnings, 1)
	assert.Equal(t, "foo", warnings[0].Attr("gene"))
	assert.Equal(t, []string{"001:A1", "003:E4"}, warnings[0].Attr("occurrences"))
	assert.Equal(t, "test-model", warnings[0].Attr("model"))
}

func TestDuplicateGeneIsCaseInsensitive(t *testing.T) {
	rec := testutil.WithGenes(record.Genes{
		"001": {"B1": "Foo", "A1": "FOO"},
		"002": {"A1": "bar"},
	})
	_, logs := newTestModel(t, rec)

	warnings := logs.WithMessage("duplicate gene name")
	require.Len(t, warnings, 1)
	assert.Equal(t, "FOO", warnings[0].Attr("gene"))
	assert.Equal(t, []string{"001:A1", "001:B1"}, warnings[0].Attr("occurrences"))
}

func TestInvalidGeneWellIgnored(t *testing.T) {
	rec := testutil.WithGenes(record.Genes{"001": {"A1": "foo", "Z1": "bar"}})
	m, logs := newTestModel(t, rec)

	genes, err := m.Genes(Unspecified, Unspecified)
	require.NoError(t, err)
	assert.Equal(t, []string{"foo"}, GeneNames(genes))

	ignored := logs.WithMessage("gene annotation ignored")
	require.Len(t, ignored, 1)
	assert.Equal(t, "001", ignored[0].Attr("microplate"))
	assert.Equal(t, "Z1", ignored[0].Attr("well"))
}

func TestGenesUsed(t *testing.T) {
	m, _ := newTestModel(t, genesRecord())

	assert.Equal(t, []string{"Baz", "bar", "foo"}, GeneNames(m.GenesUsed()))

	all, err := m.Genes(Unspecified, Unspecified)
	require.NoError(t, err)
	assert.Subset(t, GeneNames(all), GeneNames(m.GenesUsed()))
}

func TestGeneValues(t *testing.T) {
	rec := genesRecord()
	m, _ := newTestModel(t, rec)

	gene, found := m.GeneByName("foo")
	require.True(t, found)

	cells, err := gene.Values(Unspecified, Unspecified)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 1}, cells.Shape())
	assert.Equal(t, rec.Iterations[1].Spreadsheets[0].Microplates["001"].Values[0], cells.At(1, 0))

	cells, err = gene.Values(Index(0), Index(0))
	require.NoError(t, err)
	v, ok := cells.Scalar()
	require.True(t, ok)
	assert.Equal(t, rec.Iterations[0].Spreadsheets[0].Microplates["001"].Values[0], v)

	unmeasured, found := m.GeneByName("qux")
	require.True(t, found)
	_, err = unmeasured.Values(Unspecified, Unspecified)
	assert.True(t, modelerr.IsUnknownMicroplate(err))
}
