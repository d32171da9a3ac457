package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bzaczynski/microanalyst/internal/record"
	"github.com/bzaczynski/microanalyst/internal/testutil"
)

// newTestModel builds a model with a fixed ID and a recording logger.
func newTestModel(t *testing.T, rec *record.Record) (*Model, *testutil.LogRecorder) {
	t.Helper()
	logs := testutil.NewLogRecorder()
	m, err := New(rec,
		WithLogger(logs.Logger()),
		WithIDGenerator(testutil.NewFixedIDGenerator("")),
	)
	require.NoError(t, err)
	return m, logs
}

// sequentialPlate returns 96 readings start, start+1, ...
func sequentialPlate(start float64) record.Values {
	values := make(record.Values, 96)
	for i := range values {
		values[i] = start + float64(i)
	}
	return values
}
