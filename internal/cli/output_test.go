package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bzaczynski/microanalyst/internal/modelerr"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "success"}
	err := formatter.Success(data, func(io.Writer) error {
		t.Fatal("text renderer called in json mode")
		return nil
	})
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	cause := fmt.Errorf("build model: %w", modelerr.NewUnknownMicroplate("009"))
	require.NoError(t, formatter.Failure(cause))

	var resp CLIResponse
	err := json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNKNOWN_MICROPLATE", resp.Error.Code)
	assert.Contains(t, resp.Error.Message, "009")
	assert.NotEmpty(t, resp.Error.Details)
}

func TestOutputFormatter_JSONFailurePlainError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	require.NoError(t, formatter.Failure(errors.New("boom")))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ERROR", resp.Error.Code)
	assert.Equal(t, "boom", resp.Error.Message)
	assert.Empty(t, resp.Error.Details)
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("3 iterations", nil)
	require.NoError(t, err)
	assert.Equal(t, "3 iterations\n", buf.String())

	buf.Reset()
	err = formatter.Success("ignored", func(w io.Writer) error {
		_, err := io.WriteString(w, "rendered\n")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "rendered\n", buf.String())
}

func TestOutputFormatter_TextFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Failure(modelerr.NewInvalidAddress("Z99"))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Error [INVALID_ADDRESS]")
	assert.Contains(t, buf.String(), "Z99")
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"plain", errors.New("boom"), ExitFailure, "boom"},
		{"exit error", NewExitError(ExitCommandError, "bad flag"), ExitCommandError, "bad flag"},
		{"wrapped", WrapExitError(ExitFailure, "failed to read record", errors.New("EOF")), ExitFailure, "failed to read record: EOF"},
		{"nested", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner")), ExitCommandError, "outer: inner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, GetExitCode(tt.err))
			assert.Equal(t, tt.wantMsg, tt.err.Error())
		})
	}
}

func TestWrapExitErrorUnwraps(t *testing.T) {
	cause := modelerr.NewMalformedInput("iterations", "missing")
	err := WrapExitError(ExitFailure, "failed to read record", cause)
	assert.True(t, modelerr.IsMalformedInput(err))
}
