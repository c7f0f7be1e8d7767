package present

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mithrel/inkleaf/internal/render"
	"github.com/mithrel/inkleaf/internal/selection"
	"github.com/mithrel/inkleaf/pkg/models"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"plain", "pretty", "json", "ndjson", "yaml", "html", "tui"} {
		m, ok := ParseMode(s)
		require.True(t, ok, s)
		assert.Equal(t, s, m.String())
	}
	_, ok := ParseMode("xml")
	assert.False(t, ok)
}

func TestRenderNoteHTML(t *testing.T) {
	var buf bytes.Buffer
	n := models.Note{Content: "# Title"}
	require.NoError(t, RenderNote(context.Background(), &buf, n, render.New(), Options{Mode: ModeHTML}))
	assert.Contains(t, buf.String(), "<h1")
}

func TestUnsupportedModes(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, RenderNotes(context.Background(), &buf, nil, selection.State{}, Options{Mode: ModeTUI}), ErrUnsupportedMode)
	assert.ErrorIs(t, RenderNotes(context.Background(), &buf, nil, selection.State{}, Options{Mode: ModeHTML}), ErrUnsupportedMode)
	assert.ErrorIs(t, RenderNote(context.Background(), &buf, models.Note{}, nil, Options{Mode: ModeTUI}), ErrUnsupportedMode)
}
