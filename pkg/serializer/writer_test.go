package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type reportFixture struct {
	Name    string         `json:"name" yaml:"name"`
	Units   []unitFixture  `json:"units" yaml:"units"`
	Summary map[string]int `json:"summary" yaml:"summary"`
}

type unitFixture struct {
	Unit   string `json:"unit" yaml:"unit"`
	Active string `json:"active" yaml:"active"`
}

func sampleReport() reportFixture {
	return reportFixture{
		Name: "svc",
		Units: []unitFixture{
			{Unit: "foo.service", Active: "active"},
			{Unit: "bar.timer", Active: "inactive"},
		},
		Summary: map[string]int{"total": 2},
	}
}

func TestSerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)

	require.NoError(t, w.Serialize(context.Background(), sampleReport()))

	var got reportFixture
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
	assert.True(t, strings.Contains(buf.String(), "  \"name\""), "expected indented output")
}

func TestSerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatYAML, &buf)

	require.NoError(t, w.Serialize(context.Background(), sampleReport()))

	var got reportFixture
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, sampleReport(), got)
}

func TestSerializeTable(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), sampleReport()))

	out := buf.String()
	assert.Contains(t, out, "FIELD")
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Units.[0].Unit")
	assert.Contains(t, out, "foo.service")
	assert.Contains(t, out, "Summary.total")
}

func TestSerializeTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatTable, &buf)

	require.NoError(t, w.Serialize(context.Background(), struct{}{}))
	assert.Contains(t, buf.String(), "<empty>")
}

func TestSerializeNilPointerFields(t *testing.T) {
	type record struct {
		Next *string `json:"next"`
	}

	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.Serialize(context.Background(), record{}))
	assert.Contains(t, buf.String(), "null")
}

func TestUnknownFormatDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)

	require.NoError(t, w.Serialize(context.Background(), sampleReport()))

	var got reportFixture
	assert.NoError(t, json.Unmarshal(buf.Bytes(), &got))
}

func TestSupportedFormats(t *testing.T) {
	assert.ElementsMatch(t, []string{"json", "yaml", "table"}, SupportedFormats())
}

func TestFileWriterCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	w, err := NewFileWriter(FormatJSON, path)
	require.NoError(t, err)

	require.NoError(t, w.Serialize(context.Background(), sampleReport()))
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got reportFixture
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, sampleReport(), got)
}

func TestFileWriterEmptyPathFallsBackToStdout(t *testing.T) {
	w, err := NewFileWriter(FormatJSON, "   ")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, os.Stdout, w.output)
}

func TestFileWriterUncreatablePathIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "report.json")
	w, err := NewFileWriter(FormatJSON, path)

	require.Error(t, err)
	assert.Nil(t, w)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestWriteToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.service")
	require.NoError(t, WriteToFile(path, []byte("[Unit]\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[Unit]\n", string(data))
}
