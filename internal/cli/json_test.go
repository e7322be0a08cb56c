package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_SimpleStruct(t *testing.T) {
	t.Parallel()

	type testStruct struct {
		Name  string `json:"name"`
		Value int    `json:"value"`
	}

	var buf bytes.Buffer
	err := writeJSON(&buf, testStruct{Name: "test", Value: 42})
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "\n")
	assert.Contains(t, output, "  ")

	var result testStruct
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "test", result.Name)
	assert.Equal(t, 42, result.Value)
}

func TestWriteJSON_NilValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := writeJSON(&buf, nil)
	require.NoError(t, err)
	assert.Equal(t, "null\n", buf.String())
}

func TestWriteJSON_WriterError(t *testing.T) {
	t.Parallel()

	errWriter := &errorWriter{err: errors.New("write failed")} //nolint:err113 // test error
	err := writeJSON(errWriter, map[string]string{"key": "value"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write failed")
}

func TestWriteJSON_Array(t *testing.T) {
	t.Parallel()

	data := []string{"bitcoin", "ethereum", "solana"}

	var buf bytes.Buffer
	err := writeJSON(&buf, data)
	require.NoError(t, err)

	var result []string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, data, result)
}

type errorWriter struct {
	err error
}

func (w *errorWriter) Write(_ []byte) (int, error) {
	return 0, w.err
}

var _ io.Writer = (*errorWriter)(nil)
