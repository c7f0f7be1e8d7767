package render

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.uber.org/zap"
)

// converter is the subset of goldmark.Markdown the renderer needs.
type converter interface {
	Convert(source []byte, w io.Writer, opts ...parser.ParseOption) error
}

// Renderer turns Markdown into sanitized HTML. It is safe for concurrent use.
type Renderer struct {
	md     converter
	policy *bluemonday.Policy
	cache  *cache
	log    *zap.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used to report recovered failures.
func WithLogger(l *zap.Logger) Option {
	return func(r *Renderer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithCacheSize bounds the memo cache; 0 disables caching.
func WithCacheSize(n int) Option {
	return func(r *Renderer) { r.cache = newCache(n) }
}

func withConverter(c converter) Option {
	return func(r *Renderer) { r.md = c }
}

// DefaultCacheSize is the number of rendered documents kept in memory.
const DefaultCacheSize = 128

// New builds a GFM renderer with hard line breaks and a UGC sanitizer.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
				// raw HTML is left for the sanitizer
				html.WithUnsafe(),
			),
		),
		policy: newPolicy(),
		cache:  newCache(DefaultCacheSize),
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	// Links render as plain <a href>; unsafe schemes are still dropped.
	p.RequireNoFollowOnLinks(false)
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[\w+#.-]+$`)).OnElements("code")
	// GFM task list items.
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")
	return p
}

// Render parses markdown and returns sanitized HTML. Failures are logged
// and yield an empty string; Render never panics.
func (r *Renderer) Render(markdown string) (out string) {
	if markdown == "" {
		return ""
	}
	if html, ok := r.cache.get(markdown); ok {
		return html
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("render failed", zap.Error(fmt.Errorf("panic: %v", rec)))
			out = ""
		}
	}()
	html, err := r.render(markdown)
	if err != nil {
		r.log.Error("render failed", zap.Error(err), zap.Int("bytes", len(markdown)))
		return ""
	}
	r.cache.put(markdown, html)
	return html
}

func (r *Renderer) render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return r.policy.Sanitize(buf.String()), nil
}

// Sanitize runs the renderer's HTML policy over arbitrary HTML.
func (r *Renderer) Sanitize(html string) string {
	return r.policy.Sanitize(html)
}

var std = New()

// Markdown renders s with the shared default renderer.
func Markdown(s string) string { return std.Render(s) }
