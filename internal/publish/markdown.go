// Package publish renders a project as Markdown and HTML documents.
package publish

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"

	"github.com/dustin/go-humanize"
)

type RenderOptions struct {
	// EmbedImages inlines image items as data URIs; otherwise only their titles
	// and sizes are listed.
	EmbedImages bool
	// IncludeMinimized renders extensions of minimized ideas.
	IncludeMinimized bool
}

// RenderProjectMarkdown returns p as one Markdown document, buckets and ideas in
// position order.
func RenderProjectMarkdown(p *model.Project, opt RenderOptions) (string, error) {
	if p == nil {
		return "", fmt.Errorf("missing project")
	}

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + headline(p.Title, "Untitled project"))
	writeLn("")
	writeLn("- " + p.Summary())
	if names := tagNames(p); len(names) > 0 {
		writeLn("- Tags: " + strings.Join(names, ", "))
	}
	writeLn("- Created: " + p.Timestamp.UTC().Format(time.RFC3339))

	for _, b := range ordered.Sorted(p.Buckets) {
		writeLn("")
		writeLn("## " + headline(b.Title, model.DefaultBucketTitle))
		if len(b.Ideas) == 0 {
			writeLn("")
			writeLn("_No ideas yet._")
			continue
		}
		for _, idea := range ordered.Sorted(b.Ideas) {
			writeLn("")
			writeLn("### " + headline(idea.Title, "Untitled idea"))
			if desc := strings.TrimSpace(idea.Desc); desc != "" {
				writeLn("")
				writeLn(desc)
			}
			if idea.Minimized && !opt.IncludeMinimized {
				continue
			}
			for _, e := range ordered.Sorted(idea.Extensions) {
				writeLn("")
				writeExtension(writeLn, e, opt)
			}
		}
	}
	return buf.String(), nil
}

func writeExtension(writeLn func(string), e *model.IdeaExtension, opt RenderOptions) {
	writeLn("#### " + headline(e.Title, e.Type().DisplayTitle()))
	writeLn("")
	switch c := e.Content.(type) {
	case *model.Checklist:
		for _, it := range ordered.Sorted(c.Items) {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			writeLn("- " + box + " " + strings.TrimSpace(it.Title))
		}
	case *model.ImageCatalogue:
		if len(c.Items) == 0 {
			writeLn("_No images._")
			return
		}
		for _, it := range ordered.Sorted(c.Items) {
			title := headline(it.Title, "image")
			if opt.EmbedImages {
				writeLn(fmt.Sprintf("![%s](%s)", title, dataURI(it.Image)))
				continue
			}
			writeLn(fmt.Sprintf("- %s (%s)", title, humanize.Bytes(uint64(len(it.Image)))))
		}
	}
}

func dataURI(b []byte) string {
	ct := http.DetectContentType(b)
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return "data:" + ct + ";base64," + base64.StdEncoding.EncodeToString(b)
}

func tagNames(p *model.Project) []string {
	out := make([]string, 0, len(p.Tags))
	for _, ref := range ordered.Sorted(p.Tags) {
		if ref.Tag == nil || strings.TrimSpace(ref.Tag.Title) == "" {
			continue
		}
		out = append(out, strings.TrimSpace(ref.Tag.Title))
	}
	return out
}

func headline(s, fallback string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return fallback
	}
	return s
}
