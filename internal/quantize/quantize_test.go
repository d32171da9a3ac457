package quantize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzaczynski/microanalyst/internal/model"
	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/testutil"
	"github.com/bzaczynski/microanalyst/internal/thresholds"
)

func plate(fill float64, overrides map[int]float64) record.Values {
	values := make(record.Values, 96)
	for i := range values {
		values[i] = fill
	}
	for i, v := range overrides {
		values[i] = v
	}
	return values
}

func quiet() model.Option {
	return model.WithLogger(testutil.NewLogRecorder().Logger())
}

func TestRecord(t *testing.T) {
	rec := &record.Record{
		Iterations: []record.Iteration{
			{
				Control: record.Control{"001": {"A1"}},
				Spreadsheets: []record.Spreadsheet{{
					Filename: "a.xls",
					Microplates: map[string]record.Microplate{
						"001": {Values: plate(0.5, map[int]float64{0: 0.9, 1: 0.1, 2: record.Missing()})},
					},
				}},
				Extra: record.Extra{"name": json.RawMessage(`"first"`)},
			},
			{
				Spreadsheets: []record.Spreadsheet{
					{Filename: "b.xls", Microplates: map[string]record.Microplate{"001": {Values: plate(0.05, nil)}}},
					{Filename: "c.xls", Microplates: map[string]record.Microplate{"002": {Values: plate(0.7, nil)}}},
				},
			},
		},
		Genes: record.Genes{"001": {"A1": "foo"}},
	}

	out, err := Record(rec, thresholds.Default(), DefaultLevels(), quiet())
	require.NoError(t, err)

	first := out.Iterations[0].Spreadsheets[0].Microplates["001"].Values
	assert.Equal(t, 2.0, first[0], "control well")
	assert.Equal(t, 0.0, first[1], "starved")
	assert.True(t, record.IsMissing(first[2]), "missing stays missing")
	assert.Equal(t, 1.0, first[3], "other")

	assert.Equal(t, 0.0, out.Iterations[1].Spreadsheets[0].Microplates["001"].Values[0])
	assert.Equal(t, 1.0, out.Iterations[1].Spreadsheets[1].Microplates["002"].Values[0])

	// Unpadded layout and unknown properties survive.
	assert.Len(t, out.Iterations[0].Spreadsheets, 1)
	assert.JSONEq(t, `"first"`, string(out.Iterations[0].Extra["name"]))
	assert.Equal(t, rec.Genes, out.Genes)

	// The input is untouched.
	assert.Equal(t, 0.9, rec.Iterations[0].Spreadsheets[0].Microplates["001"].Values[0])
}

func TestRecordEncodesIntegers(t *testing.T) {
	rec := testutil.WithRandomValues(testutil.NewDeterministicValues(9), [][]string{{"001"}})

	out, err := Record(rec, thresholds.Default(), DefaultLevels(), quiet())
	require.NoError(t, err)

	data, err := record.Marshal(out)
	require.NoError(t, err)

	decoded, err := record.Unmarshal(data)
	require.NoError(t, err)
	for _, v := range decoded.Iterations[0].Spreadsheets[0].Microplates["001"].Values {
		assert.Contains(t, []float64{0, 1}, v)
	}
}

func TestRecordCustomLevelsAndThresholds(t *testing.T) {
	rec := testutil.WithControlWells(record.Control{"001": {"A1"}})
	rec.Iterations[0].Spreadsheets[0].Microplates["001"] = record.Microplate{Values: plate(0.4, nil)}

	th, err := thresholds.New("x < 0.5", "", "")
	require.NoError(t, err)

	out, err := Record(rec, th, Levels{Control: 7, Other: 5, Starved: 3}, quiet())
	require.NoError(t, err)

	values := out.Iterations[0].Spreadsheets[0].Microplates["001"].Values
	assert.Equal(t, 7.0, values[0])
	assert.Equal(t, 3.0, values[1])
}

func TestRecordEmpty(t *testing.T) {
	out, err := Record(testutil.Empty(), thresholds.Default(), DefaultLevels(), quiet())
	require.NoError(t, err)
	assert.Empty(t, out.Iterations)
}

func TestRecordPropagatesModelErrors(t *testing.T) {
	rec := testutil.WithMicroplates([][]string{{"001"}})
	rec.Iterations[0].Spreadsheets[0].Microplates["001"] = record.Microplate{Values: record.Values{1}}

	_, err := Record(rec, thresholds.Default(), DefaultLevels(), quiet())
	assert.Error(t, err)
}

func TestValuesLeavesModelUntouched(t *testing.T) {
	rec := testutil.WithRandomValues(testutil.NewDeterministicValues(2), [][]string{{"001"}})
	m, err := model.New(rec, quiet())
	require.NoError(t, err)

	before, err := m.Values(model.Query{})
	require.NoError(t, err)

	_, err = Values(m, thresholds.Default(), DefaultLevels())
	require.NoError(t, err)

	after, err := m.Values(model.Query{})
	require.NoError(t, err)
	assert.Equal(t, before.Data(), after.Data())
}
