// Package markdown renders user supplied markdown into sanitized HTML and
// applies the configured link rewrite rules.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"tickettracker/internal/shared/config"
)

// Renderer turns raw markdown into the cached HTML stored next to it.
type Renderer interface {
	Render(markdown string) (string, error)
}

type linkRule struct {
	re          *regexp.Regexp
	replacement string
}

// Service is the goldmark + bluemonday Renderer.
type Service struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
	links  []linkRule
}

// NewService compiles the link patterns case-insensitively. Headings are
// pushed down by demoteHeaders levels so user content never outranks the
// page's own headings.
func NewService(cfg config.MarkdownConfig) (*Service, error) {
	links := make([]linkRule, 0, len(cfg.LinkPatterns))
	for _, lp := range cfg.LinkPatterns {
		re, err := regexp.Compile("(?i)" + lp.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid link pattern %q: %w", lp.Pattern, err)
		}
		links = append(links, linkRule{re: re, replacement: lp.URL})
	}

	parserOpts := []parser.Option{parser.WithAutoHeadingID()}
	if cfg.DemoteHeaders > 0 {
		parserOpts = append(parserOpts, parser.WithASTTransformers(
			util.Prioritized(&headingDemoter{offset: cfg.DemoteHeaders}, 100),
		))
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
		),
		goldmark.WithParserOptions(parserOpts...),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("code", "span", "div", "pre")
	policy.AllowAttrs("id").Matching(bluemonday.SpaceSeparatedTokens).OnElements("h1", "h2", "h3", "h4", "h5", "h6")

	return &Service{md: md, policy: policy, links: links}, nil
}

// Render converts, sanitizes and finally rewrites links. The rewrite runs
// after sanitizing so configured anchors survive the policy.
func (s *Service) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	out := s.policy.Sanitize(buf.String())
	for _, l := range s.links {
		out = l.re.ReplaceAllString(out, l.replacement)
	}
	return out, nil
}

type headingDemoter struct {
	offset int
}

func (d *headingDemoter) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			h.Level = min(h.Level+d.offset, 6)
		}
		return ast.WalkContinue, nil
	})
}
