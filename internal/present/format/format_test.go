package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/pkg/models"
)

func sample() []models.Note {
	at := time.Date(2024, 1, 5, 9, 8, 7, 0, time.Local)
	return []models.Note{
		{ID: "6f1c2a4e-1b7d-4c1e-9a53-6c2f0e8d9b01", Title: "tab\there", Content: "**hi**", CreatedAt: at},
		{ID: "6f1c2a4e-1b7d-4c1e-9a53-6c2f0e8d9b02", Title: "", Content: "", CreatedAt: at},
	}
}

func TestWritePlainNotes(t *testing.T) {
	var buf bytes.Buffer
	notes := sample()
	require.NoError(t, WritePlainNotes(&buf, notes, selection.SingleOf(notes[0].ID), true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "sel"))
	assert.True(t, strings.HasPrefix(lines[1], ">"))
	assert.Contains(t, lines[1], `tab\there`)
	assert.Contains(t, lines[1], "2024:01:05-09:08:07")
	assert.Contains(t, lines[2], "(untitled)")
}

func TestMarker(t *testing.T) {
	assert.Equal(t, " ", Marker(selection.State{}, "a"))
	assert.Equal(t, ">", Marker(selection.SingleOf("a"), "a"))
	assert.Equal(t, "*", Marker(selection.MultiOf("a"), "a"))
	assert.Equal(t, " ", Marker(selection.MultiOf("a"), "b"))
}

func TestJSONAndNDJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONNotes(&buf, nil, false))
	assert.Equal(t, "[]\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteNDJSONNotes(&buf, sample()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, "**hi**", got["content"])
	assert.Contains(t, got, "createdAt")
}

func TestYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAMLNote(&buf, sample()[0]))
	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "tab\there", got["title"])
}

func TestHTML(t *testing.T) {
	r := render.New()
	n := models.Note{Title: "<x>", Content: "**b**<script>alert(1)</script>"}
	var buf bytes.Buffer
	require.NoError(t, WriteHTMLNote(&buf, r, n))
	assert.Contains(t, buf.String(), "<strong>b</strong>")
	assert.NotContains(t, buf.String(), "<script")

	page := HTMLPage(n.Title, buf.String())
	assert.Contains(t, page, "<title>&lt;x&gt;</title>")
	assert.Contains(t, page, "<strong>b</strong>")
}

func TestPretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePrettyNote(&buf, sample()[0], "notty", 80))
	assert.Contains(t, buf.String(), "hi")
	assert.Contains(t, buf.String(), "2024:01:05-09:08:07")
}

func TestPrettyKeepsDateOnOneLine(t *testing.T) {
	n := sample()[0]
	n.ID = "3f2a9c1e-0000-4000-8000-000000000001"
	for _, width := range []int{60, 80} {
		var buf bytes.Buffer
		require.NoError(t, WritePrettyNote(&buf, n, "notty", width))
		assert.Contains(t, buf.String(), "2024:01:05-09:08:07", "width %d", width)
		assert.Contains(t, buf.String(), n.ID, "width %d", width)
	}
}
