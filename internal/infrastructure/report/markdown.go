package report

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// converter turns report markdown into HTML that is safe to embed in a page
// or an email body. Raw HTML in the markdown never survives sanitizing.
type converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newConverter() *converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "div", "table", "td")

	return &converter{md: md, policy: policy}
}

func (c *converter) toHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return c.policy.Sanitize(buf.String()), nil
}
