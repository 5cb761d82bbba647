package publish

import (
	"bytes"
	"html/template"

	"ideas-cli/internal/model"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in descriptions is not passed through.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: -apple-system, system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
img { max-width: 100%; }
h2 { border-bottom: 1px solid #ddd; padding-bottom: .2rem; }
</style>
</head>
<body>
{{.Body}}
</body>
</html>
`))

// RenderProjectHTML renders the Markdown form of p into a standalone HTML page.
func RenderProjectHTML(p *model.Project, opt RenderOptions) (string, error) {
	md, err := RenderProjectMarkdown(p, opt)
	if err != nil {
		return "", err
	}
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &body); err != nil {
		return "", err
	}
	var page bytes.Buffer
	err = pageTemplate.Execute(&page, struct {
		Title string
		Body  template.HTML
	}{
		Title: headline(p.Title, "Untitled project"),
		// goldmark output is trusted only because raw HTML is disabled above.
		Body: template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return page.String(), nil
}
