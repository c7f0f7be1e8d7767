package confirm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAndFunc(t *testing.T) {
	ok, err := Static(true).Confirm(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, ok)

	var seen string
	f := Func(func(_ context.Context, msg string) (bool, error) {
		seen = msg
		return false, nil
	})
	ok, err = f.Confirm(context.Background(), "Delete this note?")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "Delete this note?", seen)
}

func TestRecorder(t *testing.T) {
	r := &Recorder{Answer: true}
	_, _ = r.Confirm(context.Background(), "a")
	_, _ = r.Confirm(context.Background(), "b")
	assert.Equal(t, []string{"a", "b"}, r.Prompts())
}

func TestTerminalWithoutTTY(t *testing.T) {
	term := &Terminal{isTTY: func() bool { return false }}
	ok, err := term.Confirm(context.Background(), "Delete this note?")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNoTTY)
	assert.Contains(t, err.Error(), "--yes")
}

func TestTerminalAbortIsDecline(t *testing.T) {
	term := &Terminal{
		isTTY: func() bool { return true },
		run:   func(context.Context, *huh.Form) error { return huh.ErrUserAborted },
	}
	ok, err := term.Confirm(context.Background(), "q")
	require.NoError(t, err)
	assert.False(t, ok)

	term.run = func(context.Context, *huh.Form) error { return errors.New("boom") }
	_, err = term.Confirm(context.Background(), "q")
	assert.EqualError(t, err, "boom")
}

func TestChannelRoundTrip(t *testing.T) {
	c := NewChannel()
	go func() {
		req := <-c.Requests()
		assert.Equal(t, "Delete 2 notes?", req.Message)
		req.Answer(true)
		req.Answer(false)
	}()
	ok, err := c.Confirm(context.Background(), "Delete 2 notes?")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestChannelContextCancel(t *testing.T) {
	c := NewChannel()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	ok, err := c.Confirm(ctx, "nobody listening")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
