package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/editor"
	"github.com/mithrel/inkleaf/internal/preview"
	"github.com/mithrel/inkleaf/internal/present/format"
	"github.com/mithrel/inkleaf/internal/storage"
	"github.com/mithrel/inkleaf/internal/wire"
	"github.com/mithrel/inkleaf/pkg/models"
)

func newNoteEditCmd() *cobra.Command {
	var title, content, contentFile string
	var live bool
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing note",
		Long: heredoc.Doc(`
			Edit a note's title or content. With --title, --content or
			--content-file the note is updated directly; otherwise $EDITOR opens
			on a "Title:" header followed by the Markdown body.

			--live keeps <preview.dir>/<id>.html up to date while the editor is
			open.
		`),
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeNoteIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			n, err := app.Session.Get(args[0])
			if err != nil {
				return err
			}
			if content != "" && contentFile != "" {
				return fmt.Errorf("choose either --content or --content-file")
			}

			var in models.UpdateInput
			if cmd.Flags().Changed("title") {
				in.Title = &title
			}
			if cmd.Flags().Changed("content") {
				in.Content = &content
			}
			if contentFile != "" {
				b, err := readContentFile(cmd.InOrStdin(), contentFile)
				if err != nil {
					return err
				}
				s := string(b)
				in.Content = &s
			}
			if in.Title == nil && in.Content == nil {
				return editInEditor(cmd, n, live)
			}
			updated, err := app.Session.Update(cmd.Context(), n.ID, in)
			if err != nil {
				return err
			}
			printNoteLine(cmd, updated)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new Markdown content")
	cmd.Flags().StringVar(&contentFile, "content-file", "", "read content from file (- for stdin)")
	cmd.Flags().BoolVar(&live, "live", false, "write a live HTML preview while editing")
	return cmd
}

func readContentFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// editInEditor opens $EDITOR on n and saves the parsed result. A note left
// blank is discarded when editor.delete_empty is set.
func editInEditor(cmd *cobra.Command, n models.Note, live bool) error {
	app := getApp(cmd)
	ctx := cmd.Context()
	path, err := editor.PathForID(n.ID)
	if err != nil {
		return err
	}
	initial := []byte(editor.ComposeContent(n.Title, n.Content))
	defer func() { _ = os.Remove(path) }()

	var stopLive func()
	if live {
		if err := editor.PrepareAt(path, initial); err != nil {
			return err
		}
		stopLive, err = startLivePreview(ctx, app, n.ID, path)
		if err != nil {
			return err
		}
	}
	out, changed, err := editor.OpenAt(path, initial)
	if stopLive != nil {
		stopLive()
	}
	if err != nil {
		return err
	}

	if !changed {
		if app.Cfg.Editor.DeleteEmpty && app.Session.Discard(ctx, n.ID) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Note discarded: empty content.")
			return nil
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No changes.")
		return nil
	}

	title, body := editor.ParseEditedNote(string(out))
	in := models.UpdateInput{Content: &body}
	if title != "" {
		in.Title = &title
	}
	updated, err := app.Session.Update(ctx, n.ID, in)
	if err != nil {
		var ve *models.ValidationError
		if errors.As(err, &ve) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Edits kept in %s\n", keepEdits(path, out))
		}
		return err
	}
	if app.Cfg.Editor.DeleteEmpty && updated.Content == "" && updated.Title == "" {
		if app.Session.Discard(ctx, n.ID) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Note discarded: empty content.")
			return nil
		}
	}
	printNoteLine(cmd, updated)
	return nil
}

// keepEdits copies rejected editor content next to path so it survives the
// cleanup of the temp file.
func keepEdits(path string, out []byte) string {
	kept := path + ".rejected"
	if err := os.WriteFile(kept, out, 0o600); err != nil {
		return path
	}
	return kept
}

// startLivePreview watches path and rewrites <preview.dir>/<id>.html after
// each settled edit. The returned func stops the watcher and writes a final
// preview.
func startLivePreview(ctx context.Context, app *wire.App, id, path string) (func(), error) {
	dir := app.Cfg.Preview.Dir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	out := filepath.Join(dir, id+".html")
	render := func(src string) string {
		title, body := editor.ParseEditedNote(src)
		return format.HTMLPage(title, app.Renderer.Render(body))
	}
	sink := func(page string) {
		if err := storage.WriteFileAtomic(out, []byte(page), 0o600); err != nil {
			app.Log.Warn("write preview failed", zap.String("path", out), zap.Error(err))
		}
	}
	p := preview.New(render, sink, app.Cfg.Preview.Debounce, preview.WithLogger(app.Log))
	if b, err := os.ReadFile(path); err == nil {
		p.Update(string(b))
		p.Flush()
	}

	wctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := preview.WatchFile(wctx, path, p); err != nil {
			app.Log.Warn("live preview stopped", zap.Error(err))
		}
	}()
	app.Log.Info("live preview", zap.String("path", out))
	return func() {
		cancel()
		<-done
		if b, err := os.ReadFile(path); err == nil {
			p.Update(string(b))
		}
		p.Flush()
		p.Close()
	}, nil
}
