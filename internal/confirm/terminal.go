package confirm

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// Terminal prompts on the controlling terminal with a huh form.
type Terminal struct {
	// Description is shown under the question.
	Description string

	isTTY func() bool
	run   func(ctx context.Context, form *huh.Form) error
}

func NewTerminal(description string) *Terminal {
	return &Terminal{Description: description}
}

func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	isTTY := t.isTTY
	if isTTY == nil {
		isTTY = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	}
	if !isTTY() {
		return false, ErrNoTTY
	}
	ok := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(message).
				Description(t.Description).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	)
	run := t.run
	if run == nil {
		run = func(ctx context.Context, f *huh.Form) error { return f.RunWithContext(ctx) }
	}
	if err := run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}
