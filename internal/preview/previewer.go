// Package preview recomputes a rendered Markdown preview after content edits
// settle down.
package preview

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mithrel/inkleaf/internal/debounce"
)

// DefaultDebounce is the quiescence window before a preview is recomputed.
const DefaultDebounce = time.Second

// RenderFunc turns Markdown into HTML (or any display form).
type RenderFunc func(markdown string) string

// Sink receives each recomputed preview.
type Sink func(html string)

// Previewer subscribes to content changes and publishes a rendered preview
// once edits have been quiet for the debounce window. Only the latest
// content is rendered; a newer edit cancels the pending recompute.
type Previewer struct {
	render RenderFunc
	sink   Sink
	deb    *debounce.Debouncer
	log    *zap.Logger

	// renderMu keeps a Flush and a timer fire from rendering at once.
	renderMu sync.Mutex

	mu      sync.Mutex
	latest  string
	current string
	renders int
}

// Option configures a Previewer.
type Option func(*Previewer)

// WithClock injects the clock driving the debounce timer.
func WithClock(c debounce.Clock) Option {
	return func(p *Previewer) { p.deb = debounce.New(p.deb.Wait(), c) }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Previewer) {
		if l != nil {
			p.log = l
		}
	}
}

// New builds a Previewer. A non-positive wait uses DefaultDebounce.
func New(render RenderFunc, sink Sink, wait time.Duration, opts ...Option) *Previewer {
	if wait <= 0 {
		wait = DefaultDebounce
	}
	p := &Previewer{
		render: render,
		sink:   sink,
		deb:    debounce.New(wait, nil),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Update records new content and schedules a recompute.
func (p *Previewer) Update(content string) {
	p.mu.Lock()
	p.latest = content
	p.mu.Unlock()
	p.deb.Trigger(p.recompute)
}

// Flush cancels the pending timer and recomputes immediately.
func (p *Previewer) Flush() string {
	p.deb.Cancel()
	p.recompute()
	return p.Current()
}

// Current returns the last published preview.
func (p *Previewer) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Renders counts how many recomputes ran.
func (p *Previewer) Renders() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.renders
}

// Close stops the previewer; pending recomputes are dropped.
func (p *Previewer) Close() { p.deb.Stop() }

func (p *Previewer) recompute() {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()

	p.mu.Lock()
	src := p.latest
	p.mu.Unlock()

	html := p.render(src)

	p.mu.Lock()
	p.current = html
	p.renders++
	p.mu.Unlock()
	p.log.Debug("preview recomputed", zap.Int("bytes", len(src)))
	if p.sink != nil {
		p.sink(html)
	}
}
