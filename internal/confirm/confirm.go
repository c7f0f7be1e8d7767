// Package confirm asks the user a yes/no question before destructive actions.
package confirm

import (
	"context"
	"errors"
	"sync"
)

// Confirmer asks a yes/no question. A declined prompt is (false, nil);
// an error means the question could not be asked at all.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

// ErrNoTTY is returned when a prompt is needed but stdin is not a terminal.
var ErrNoTTY = errors.New("confirmation required; rerun with --yes")

// Func adapts a plain function to Confirmer.
type Func func(ctx context.Context, message string) (bool, error)

func (f Func) Confirm(ctx context.Context, message string) (bool, error) { return f(ctx, message) }

// Static always gives the same answer.
type Static bool

func (s Static) Confirm(context.Context, string) (bool, error) { return bool(s), nil }

// Recorder answers with Answer and remembers every prompt.
type Recorder struct {
	Answer bool

	mu      sync.Mutex
	prompts []string
}

func (r *Recorder) Confirm(_ context.Context, message string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, message)
	return r.Answer, nil
}

// Prompts returns the messages asked so far.
func (r *Recorder) Prompts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.prompts...)
}
