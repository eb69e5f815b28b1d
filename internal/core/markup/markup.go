// Package markup renders user-authored post content to display-safe HTML.
package markup

import (
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

const extensions = parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock

// Renderer converts markdown to HTML and strips anything unsafe for display.
// It is safe for concurrent use.
type Renderer struct {
	policy *bluemonday.Policy
}

// NewRenderer returns a renderer using the user-generated-content sanitizer policy
func NewRenderer() *Renderer {
	return &Renderer{policy: bluemonday.UGCPolicy()}
}

// Render returns sanitized HTML for the markdown in content
func (r *Renderer) Render(content string) string {
	if content == "" {
		return ""
	}
	// Parsers and renderers hold per-document state
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(content))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank})
	unsafe := markdown.Render(doc, renderer)

	return string(r.policy.SanitizeBytes(unsafe))
}
