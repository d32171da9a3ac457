package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/testutil"
)

func TestPadding(t *testing.T) {
	tests := []struct {
		name    string
		counts  []int
		equal   bool
		missing []int
	}{
		{"none", nil, true, nil},
		{"single", []int{4}, true, []int{0}},
		{"equal", []int{2, 2, 2}, true, []int{0, 0, 0}},
		{"ragged", []int{2, 3}, false, []int{1, 0}},
		{"empty iteration", []int{0, 3, 1}, false, []int{3, 0, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPadding(tt.counts)
			assert.Equal(t, tt.equal, p.HasEqualCount())
			for i, want := range tt.missing {
				got, err := p.MissingCount(i)
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestPaddingMissingCountOutOfRange(t *testing.T) {
	p := NewPadding([]int{1, 2})
	_, err := p.MissingCount(2)
	assert.True(t, modelerr.IsOutOfRange(err))
	_, err = p.MissingCount(-1)
	assert.True(t, modelerr.IsOutOfRange(err))
}

func TestPaddingCopiesCounts(t *testing.T) {
	counts := []int{1, 2}
	p := NewPadding(counts)
	counts[0] = 5
	assert.Equal(t, []int{1, 2}, p.Counts())
}

func TestModelPadsRaggedIterations(t *testing.T) {
	rec := testutil.WithRandomValues(testutil.NewDeterministicValues(1),
		[][]string{{"001"}, {"002"}},
		[][]string{{"001"}, {"002"}, {"003"}},
	)
	m, logs := newTestModel(t, rec)

	assert.False(t, m.Padding().HasEqualCount())
	missing, err := m.Padding().MissingCount(0)
	require.NoError(t, err)
	assert.Equal(t, 1, missing)

	assert.Equal(t, 3, m.NumSpreadsheets())
	assert.Equal(t, []int{2, 3, 3, 96}, m.Shape())

	padded := m.Record()
	assert.Len(t, padded.Iterations[0].Spreadsheets, 3)
	assert.Len(t, padded.Iterations[1].Spreadsheets, 3)
	stub := padded.Iterations[0].Spreadsheets[2]
	assert.Equal(t, "", stub.Filename)
	assert.Empty(t, stub.Microplates)

	// The stub contributes only missing readings.
	cells, err := m.Values(Query{Iteration: Index(0), Spreadsheet: Index(2)})
	require.NoError(t, err)
	for _, v := range cells.Data() {
		assert.True(t, record.IsMissing(v))
	}

	// Real data is unaffected by the stub.
	v, err := m.Value(Query{Iteration: Index(1), Spreadsheet: Index(2), Microplate: Name("003"), Well: Name("A1")})
	require.NoError(t, err)
	assert.Equal(t, rec.Iterations[1].Spreadsheets[2].Microplates["003"].Values[0], v)

	// The caller's record is not padded.
	assert.Len(t, rec.Iterations[0].Spreadsheets, 2)

	warnings := logs.WithMessage("unequal number of spreadsheets across iterations")
	require.Len(t, warnings, 1)
	assert.Equal(t, []int{2, 3}, warnings[0].Attr("counts"))
	assert.Equal(t, int64(3), warnings[0].Attr("max"))
	assert.Equal(t, "test-model", warnings[0].Attr("model"))
}

func TestModelDoesNotWarnForEqualIterations(t *testing.T) {
	_, logs := newTestModel(t, testutil.WithFilenames([]string{"a", "b"}, []string{"c", "d"}))
	assert.Empty(t, logs.WithMessage("unequal number of spreadsheets across iterations"))
}
