// Package editor round-trips a note through the user's $EDITOR.
package editor

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	TitlePrefix = "Title: "
	separator   = "---"
)

// ComposeContent creates the text presented to the editor.
func ComposeContent(title, body string) string {
	var b bytes.Buffer
	b.WriteString("# inkleaf note\n")
	b.WriteString("# Lines starting with '#' above the '---' line are ignored.\n")
	b.WriteString("# Set the title below. After '---', write the Markdown body.\n")
	b.WriteString(TitlePrefix)
	b.WriteString(title)
	b.WriteString("\n" + separator + "\n")
	b.WriteString(body)
	b.WriteString("\n")
	return b.String()
}

// ParseEditedNote extracts the title and body from editor output. The body
// is kept byte for byte except for the one newline ComposeContent appends.
// Without a separator line the whole text is the body.
func ParseEditedNote(s string) (title, body string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	rest := s
	for rest != "" {
		line, next, found := strings.Cut(rest, "\n")
		trim := strings.TrimSpace(line)
		switch {
		case trim == separator:
			return title, strings.TrimSuffix(next, "\n")
		case strings.HasPrefix(trim, "#"):
		case strings.HasPrefix(line, strings.TrimSpace(TitlePrefix)):
			title = strings.TrimSpace(strings.TrimPrefix(line, strings.TrimSpace(TitlePrefix)))
		}
		if !found {
			break
		}
		rest = next
	}
	return title, strings.TrimSuffix(s, "\n")
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// PathForID returns a temp file path for a note ID.
func PathForID(id string) (string, error) {
	name := id + ".inkleaf.md"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "inkleaf", name), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "inkleaf", "edit", name), nil
}

// PrepareAt writes the initial content to path with 0600 perms.
func PrepareAt(path string, initial []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, initial, fs.FileMode(0o600))
}

// OpenAt opens the editor at path with initial content and returns final bytes and whether it changed.
func OpenAt(path string, initial []byte) (final []byte, changed bool, err error) {
	if err := PrepareAt(path, initial); err != nil {
		return nil, false, err
	}
	cmd, err := editorCommand(path)
	if err != nil {
		return nil, false, err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}

// editorCommand honors VISUAL/EDITOR including flags by running via a shell wrapper.
func editorCommand(path string) (*exec.Cmd, error) {
	ed := os.Getenv("VISUAL")
	if ed == "" {
		ed = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(ed) != "" {
		cmd := exec.Command("sh", "-c", "$EDITORCMD \"$FILEPATH\"")
		cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
		return cmd, nil
	}
	prog, err := PreferredEditor()
	if err != nil {
		return nil, err
	}
	return exec.Command(prog, path), nil
}
