package confirm

import "context"

// Request is one pending question handed to an interactive front end.
type Request struct {
	Message string
	reply   chan bool
}

// Answer resolves the request. Only the first answer counts.
func (r Request) Answer(ok bool) {
	select {
	case r.reply <- ok:
	default:
	}
}

// Channel forwards prompts to whoever drains Requests, typically a TUI
// that renders them as an overlay.
type Channel struct {
	requests chan Request
}

func NewChannel() *Channel { return &Channel{requests: make(chan Request)} }

// Requests yields questions waiting for an answer.
func (c *Channel) Requests() <-chan Request { return c.requests }

func (c *Channel) Confirm(ctx context.Context, message string) (bool, error) {
	req := Request{Message: message, reply: make(chan bool, 1)}
	select {
	case c.requests <- req:
	case <-ctx.Done():
		return false, ctx.Err()
	}
	select {
	case ok := <-req.reply:
		return ok, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
