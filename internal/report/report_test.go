package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/typeview/typeview/internal/model"
)

func sampleResults() model.Results {
	return model.Results{
		"b.py": {
			{Line: 4, Column: 2, Message: "bad type", Severity: model.SeverityError, Code: "arg-type"},
		},
		"a.py": {
			{Line: 9, Message: "hint", Severity: model.SeverityNote},
			{Line: 2, Column: 1, Message: "unused", Severity: model.SeverityWarning},
		},
	}
}

func TestFlattenOrdering(t *testing.T) {
	entries := Flatten(sampleResults())
	require.Len(t, entries, 3)
	assert.Equal(t, "a.py", entries[0].File)
	assert.Equal(t, 2, entries[0].Line)
	assert.Equal(t, "a.py", entries[1].File)
	assert.Equal(t, 9, entries[1].Line)
	assert.Equal(t, "b.py", entries[2].File)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, sampleResults()))

	out := buf.String()
	assert.Contains(t, out, "b.py:4:2")
	assert.Contains(t, out, "bad type")
	assert.Contains(t, out, "arg-type")
	assert.Contains(t, out, "1 error(s), 1 warning(s), 1 note(s) in 2 file(s)")
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, model.Results{}))
	assert.Contains(t, buf.String(), "No problems found.")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResults()))

	var entries []Entry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 3)
	assert.Equal(t, "error", entries[2].Severity)
	assert.Equal(t, 4, entries[2].Line)
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, model.Results{}))
	assert.Equal(t, "[]\n", buf.String())
}
