package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/sulaimaniyah/undangan/internal/content"
	"github.com/sulaimaniyah/undangan/pkg/domain"
	"github.com/sulaimaniyah/undangan/pkg/flow"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed assets
var assetFS embed.FS

// page is the data every template receives.
type page struct {
	View            flow.View
	Content         *content.Content
	MapURL          string
	Message         template.HTML
	RevealThreshold float64
}

// Confirmed reports whether the thank-you page replaces the sections.
func (p page) Confirmed() bool {
	return p.View.State == domain.ViewConfirmed && p.View.Outcome != nil
}

// renderer executes the embedded templates. Generated confirmation text
// is treated as markdown and sanitized before it reaches the page.
type renderer struct {
	tmpl   *template.Template
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func newRenderer() (*renderer, error) {
	funcs := template.FuncMap{
		"visible": func(v flow.View, section string) bool {
			return v.Visible[domain.Section(section)]
		},
	}
	tmpl, err := template.New("undangan").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &renderer{
		tmpl: tmpl,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: messagePolicy(),
	}, nil
}

func messagePolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// message converts outcome text into safe HTML.
func (r *renderer) message(text string) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(r.policy.Sanitize(buf.String()))
}

func (r *renderer) page(v flow.View, c *content.Content, threshold float64) page {
	p := page{
		View:            v,
		Content:         c,
		MapURL:          c.MapLink(),
		RevealThreshold: threshold,
	}
	if v.Outcome != nil {
		p.Message = r.message(v.Outcome.Message)
	}
	return p
}

func (r *renderer) execute(w io.Writer, name string, p page) error {
	return r.tmpl.ExecuteTemplate(w, name, p)
}
