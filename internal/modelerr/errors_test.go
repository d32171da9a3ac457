package modelerr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	err := NewOutOfRange("iteration", 3, 2)
	assert.Equal(t, "OUT_OF_RANGE: iteration index 3 out of range [0, 2)", err.Error())
	assert.Equal(t, "3", err.Details["index"])

	err = NewMalformedInput("iterations[0].spreadsheets[1]", `missing "filename"`)
	assert.Equal(t, `MALFORMED_INPUT: iterations[0].spreadsheets[1]: missing "filename"`, err.Error())

	err = NewShapeMismatch([]int{2, 3, 1, 96}, []int{2, 3, 96})
	assert.Equal(t, "SHAPE_MISMATCH: expected shape [2 3 1 96], got [2 3 96]", err.Error())

	err = NewMalformedInput("", "not an object")
	assert.Equal(t, "MALFORMED_INPUT: not an object", err.Error())
}

func TestClassificationSeesThroughWrapping(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"malformed", NewMalformedInput("x", "y"), IsMalformedInput},
		{"out_of_range", NewOutOfRange("well", 96, 96), IsOutOfRange},
		{"unknown_microplate", NewUnknownMicroplate("777"), IsUnknownMicroplate},
		{"invalid_address", NewInvalidAddress("Z1"), IsInvalidAddress},
		{"invalid_key", NewInvalidKey("iteration", "name keys not supported"), IsInvalidKey},
		{"shape_mismatch", NewShapeMismatch([]int{1, 2}, []int{2, 1}), IsShapeMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("query: %w", tt.err)
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(wrapped))
		})
	}
}

func TestClassificationRejectsOtherCodes(t *testing.T) {
	err := NewUnknownMicroplate("777")
	assert.False(t, IsOutOfRange(err))
	assert.False(t, IsMalformedInput(err))
	assert.False(t, IsInvalidAddress(fmt.Errorf("plain error")))
	assert.False(t, IsInvalidKey(nil))
}
