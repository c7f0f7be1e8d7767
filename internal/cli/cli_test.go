package cli

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

	"github.com/mithrel/inkleaf/internal/confirm"
	"github.com/mithrel/inkleaf/pkg/models"
)

type testEnv struct {
	dir     string
	dataDir string
	stdin   string
}

// newTestEnv isolates XDG paths and points storage at a file backend so
// state survives between command invocations.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	tmp := t.TempDir()
	for _, d := range []string{"config", "data", "run"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmp, d), 0o700))
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(tmp, "data"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(tmp, "run"))
	t.Setenv("INKLEAF_STORAGE_URL", "file://"+filepath.Join(tmp, "store"))
	t.Setenv("INKLEAF_LOG_LEVEL", "error")
	t.Setenv("PAGER", "cat")
	return &testEnv{dir: tmp, dataDir: filepath.Join(tmp, "data", "inkleaf")}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(e.stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, "inkleaf %s", strings.Join(args, " "))
	return out
}

// addNote runs "note add" and returns the new id.
func (e *testEnv) addNote(t *testing.T, args ...string) string {
	t.Helper()
	out := e.mustRun(t, append([]string{"note", "add"}, args...)...)
	id, _, ok := strings.Cut(strings.TrimSpace(out), "\t")
	require.True(t, ok, out)
	return id
}

func (e *testEnv) listJSON(t *testing.T, args ...string) []models.Note {
	t.Helper()
	out := e.mustRun(t, append([]string{"note", "list", "-o", "json"}, args...)...)
	var list []models.Note
	require.NoError(t, json.Unmarshal([]byte(out), &list), out)
	return list
}

// fakeEditor installs an executable script as $VISUAL.
func fakeEditor(t *testing.T, dir, script string) {
	t.Helper()
	path := filepath.Join(dir, "fake-editor.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o700))
	t.Setenv("VISUAL", path)
}

func TestNoteAddListShow(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote(t, "Groceries", "--content", "**milk**")

	list := env.listJSON(t)
	require.Len(t, list, 1)
	assert.Equal(t, id, list[0].ID)
	assert.Equal(t, "Groceries", list[0].Title)

	html := env.mustRun(t, "note", "show", id, "-o", "html")
	assert.Contains(t, html, "<strong>milk</strong>")

	// The new note is active, so show works without an id.
	plain := env.mustRun(t, "note", "show", "-o", "plain")
	assert.Contains(t, plain, "Groceries")
	assert.Contains(t, plain, "**milk**")
}

func TestNoteListNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	first := env.addNote(t, "first")
	second := env.addNote(t, "second")

	list := env.listJSON(t)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)

	out := env.mustRun(t, "note", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "sel"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], ">"), "active note is marked: %q", lines[1])
}

func TestNoteListFilter(t *testing.T) {
	env := newTestEnv(t)
	env.addNote(t, "shopping list")
	env.addNote(t, "meeting notes")

	list := env.listJSON(t, "--filter", "shop")
	require.Len(t, list, 1)
	assert.Equal(t, "shopping list", list[0].Title)
}

func TestNoteShowHTMLIsSanitized(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote(t, "xss", "--content", "hi<script>alert(1)</script>")
	out := env.mustRun(t, "note", "show", id, "-o", "html")
	assert.NotContains(t, out, "<script")
	assert.Contains(t, out, "hi")
}

func TestNoteEditFlags(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote(t, "old")

	out := env.mustRun(t, "note", "edit", id[:8], "--title", "new")
	assert.Contains(t, out, "new")

	env.stdin = "# from stdin\n"
	env.mustRun(t, "note", "edit", id, "--content-file", "-")
	list := env.listJSON(t)
	require.Len(t, list, 1)
	assert.Equal(t, "new", list[0].Title)
	assert.Equal(t, "# from stdin\n", list[0].Content)
}

func TestNoteEditRejectsLongTitle(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote(t, "keep")

	_, err := env.run(t, "note", "edit", id, "--title", strings.Repeat("x", models.TitleMaxLength+1))
	var ve *models.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("title"))
	assert.Equal(t, "keep", env.listJSON(t)[0].Title)
}

func TestNoteEditUnknownID(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "note", "edit", "nope", "--title", "x")
	assert.Error(t, err)
}

func TestNoteEditorFlow(t *testing.T) {
	env := newTestEnv(t)
	fakeEditor(t, env.dir, `printf 'Title: From editor\n---\nhello *world*\n' > "$1"`)

	out := env.mustRun(t, "note")
	assert.Contains(t, out, "From editor")

	list := env.listJSON(t)
	require.Len(t, list, 1)
	assert.Equal(t, "From editor", list[0].Title)
	assert.Equal(t, "hello *world*", list[0].Content)
}

func TestNoteEditorUnchangedDiscardsBlankNote(t *testing.T) {
	env := newTestEnv(t)
	fakeEditor(t, env.dir, "exit 0")

	out := env.mustRun(t, "note", "add", "--edit")
	assert.Contains(t, out, "discarded")
	assert.Empty(t, env.listJSON(t))
}

func TestNoteEditLivePreview(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote(t, "live")
	fakeEditor(t, env.dir, `printf 'Title: live\n---\n**bold**\n' > "$1"`)

	env.mustRun(t, "note", "edit", id, "--live")

	page, err := os.ReadFile(filepath.Join(env.dataDir, "preview", id+".html"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "<title>live</title>")
	assert.Contains(t, string(page), "<strong>bold</strong>")
}

func TestSelectToggleAndBulkDelete(t *testing.T) {
	env := newTestEnv(t)
	a := env.addNote(t, "a")
	b := env.addNote(t, "b")
	c := env.addNote(t, "c")

	env.mustRun(t, "select", a)
	env.mustRun(t, "select", "--toggle", b)

	var sel struct {
		Mode        string   `json:"mode"`
		SelectedIDs []string `json:"selectedIds"`
	}
	out := env.mustRun(t, "select", "--show", "--json")
	require.NoError(t, json.Unmarshal([]byte(out), &sel))
	assert.Equal(t, "multi", sel.Mode)
	assert.ElementsMatch(t, []string{a, b}, sel.SelectedIDs)

	out = env.mustRun(t, "note", "delete", "--yes")
	assert.Contains(t, out, "Deleted 2 notes.")

	list := env.listJSON(t)
	require.Len(t, list, 1)
	assert.Equal(t, c, list[0].ID)
	assert.Contains(t, env.mustRun(t, "select", "--show"), "Nothing selected.")
}

func TestSelectClear(t *testing.T) {
	env := newTestEnv(t)
	env.addNote(t, "a")
	assert.Contains(t, env.mustRun(t, "select", "--show"), "single selection (1)")
	assert.Contains(t, env.mustRun(t, "select", "--clear"), "Nothing selected.")

	_, err := env.run(t, "select")
	assert.Error(t, err)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	env := newTestEnv(t)
	id := env.addNote(t, "doomed")

	// The prompt reads the process stdin; make sure it is not a terminal.
	f, err := os.CreateTemp(env.dir, "stdin")
	require.NoError(t, err)
	orig := os.Stdin
	os.Stdin = f
	t.Cleanup(func() {
		os.Stdin = orig
		_ = f.Close()
	})

	_, err = env.run(t, "note", "delete", id)
	assert.ErrorIs(t, err, confirm.ErrNoTTY)
	assert.Len(t, env.listJSON(t), 1)

	out := env.mustRun(t, "note", "delete", id, "--yes")
	assert.Contains(t, out, id)
	assert.Empty(t, env.listJSON(t))
}

func TestDeleteNothingSelected(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "note", "delete", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing selected")
}

func TestBrowseNeedsTerminal(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")

	_, err = env.run(t, "note", "list", "-o", "tui")
	assert.Error(t, err)
}

func TestInvalidOutputMode(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "note", "list", "-o", "xml")
	assert.Error(t, err)
	_, err = env.run(t, "note", "list", "-o", "html")
	assert.Error(t, err)
}

func TestVersionJSON(t *testing.T) {
	env := newTestEnv(t)
	out := env.mustRun(t, "version", "--json")
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "version")
	assert.Contains(t, env.mustRun(t, "version"), "inkleaf")
}

func TestConfigGenerate(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "gen", "config.toml")

	out := env.mustRun(t, "config", "generate", "-o", path)
	assert.Contains(t, out, "Wrote")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "storage_url")

	_, err = env.run(t, "config", "generate", "-o", path)
	assert.Error(t, err)

	out = env.mustRun(t, "config", "generate", "-o", path, "--update")
	assert.Contains(t, out, "already up to date")
}

func TestInvalidConfigFails(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("INKLEAF_LOG_LEVEL", "loud")
	_, err := env.run(t, "note", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
}

func TestCompletionNeedsNoStorage(t *testing.T) {
	env := newTestEnv(t)
	t.Setenv("INKLEAF_STORAGE_URL", "bogus://x")
	out := env.mustRun(t, "completion", "bash")
	assert.Contains(t, out, "inkleaf")
}

func TestNoteListSince(t *testing.T) {
	env := newTestEnv(t)
	env.addNote(t, "recent")
	assert.Len(t, env.listJSON(t, "--since", "1h"), 1)
	assert.Empty(t, env.listJSON(t, "--until", "1h"))

	_, err := env.run(t, "note", "list", "--since", "whenever")
	assert.Error(t, err)
}

func TestConfigCheck(t *testing.T) {
	env := newTestEnv(t)
	assert.Contains(t, env.mustRun(t, "config", "check"), "ok")

	t.Setenv("INKLEAF_TUI_WORD_WRAP", "5")
	_, err := env.run(t, "config", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tui.word_wrap must be at least 20")
}
