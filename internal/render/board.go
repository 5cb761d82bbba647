package render

import (
	"context"
	"fmt"
	"io"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type Options struct {
	// Width of the terminal; zero means 120.
	Width int
	// Size scales column widths; zero means model.DefaultUISize.
	Size int
	// Descriptions renders idea descriptions as Markdown.
	Descriptions bool
	BatchSize    int
}

func (o Options) width() int {
	if o.Width <= 0 {
		return 120
	}
	return o.Width
}

// columnWidth follows the project's bucket width when it asks for fixed-width
// columns and otherwise shares the terminal width between buckets.
func (o Options) columnWidth(p *model.Project) int {
	size := o.Size
	if size <= 0 {
		size = model.DefaultUISize
	}
	var w int
	if p.Settings != nil && p.Settings.UseScrollViewForBuckets {
		w = p.Settings.ScrollViewBucketWidth / 10
	} else {
		n := max(len(p.Buckets), 1)
		w = o.width()/n - 4
	}
	w = w * size / model.DefaultUISize
	return min(max(w, 16), o.width()-4)
}

// Header renders the project title line with its tags.
func (t *Theme) Header(p *model.Project) string {
	var b strings.Builder
	b.WriteString(t.Project.Render(p.Title))
	b.WriteString("  ")
	b.WriteString(t.Meta.Render(p.Summary()))
	for _, ref := range ordered.Sorted(p.Tags) {
		if ref.Tag == nil {
			continue
		}
		b.WriteString("  ")
		b.WriteString(t.accent(ref.Tag.ColorIdentifier).Render("#" + ref.Tag.Title))
	}
	return b.String()
}

// Board renders every bucket of p as a column. Columns wrap onto further rows when
// they do not fit the terminal width.
func (t *Theme) Board(ctx context.Context, p *model.Project, opt Options) (string, error) {
	colWidth := opt.columnWidth(p)
	var columns []string
	var current *model.Bucket
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		columns = append(columns, t.column(current, body, colWidth))
		body = nil
	}
	err := Walk(ctx, p, opt.BatchSize, func(batch Batch) error {
		if batch.First {
			flush()
			current = batch.Bucket
		}
		for _, idea := range batch.Ideas {
			body = append(body, t.card(idea, colWidth, opt.Descriptions))
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	flush()

	perRow := max(opt.width()/(colWidth+4), 1)
	rows := []string{t.Header(p)}
	for i := 0; i < len(columns); i += perRow {
		end := min(i+perRow, len(columns))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, columns[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...), nil
}

func (t *Theme) column(b *model.Bucket, cards []string, width int) string {
	title := t.accent(b.ColorIdentifier).Render(xansi.Truncate(b.Title, width, "…"))
	count := t.Muted.Render(fmt.Sprintf("%d", len(b.Ideas)))
	lines := []string{title + " " + count}
	if len(cards) == 0 {
		lines = append(lines, t.Muted.Render("no ideas"))
	}
	lines = append(lines, cards...)
	return t.Column.Width(width).Render(strings.Join(lines, "\n"))
}

func (t *Theme) card(idea *model.Idea, width int, descriptions bool) string {
	lines := []string{t.Idea.Render(xansi.Truncate(strings.TrimSpace(idea.Title), width, "…"))}
	if descriptions && !idea.Minimized {
		if md := t.Markdown(idea.Desc, width); md != "" {
			lines = append(lines, md)
		}
	}
	for _, e := range ordered.Sorted(idea.Extensions) {
		lines = append(lines, t.Muted.Render(xansi.Truncate(ExtensionSummary(e), width, "…")))
	}
	return strings.Join(lines, "\n")
}

// ExtensionSummary is a one-line description such as "[2/3] Errands".
func ExtensionSummary(e *model.IdeaExtension) string {
	switch c := e.Content.(type) {
	case *model.Checklist:
		done := 0
		for _, it := range c.Items {
			if it.Checked {
				done++
			}
		}
		return fmt.Sprintf("[%d/%d] %s", done, len(c.Items), e.Title)
	case *model.ImageCatalogue:
		return fmt.Sprintf("[%d img] %s", len(c.Items), e.Title)
	}
	return e.Title
}

// Stream writes p bucket by bucket as a plain outline, one batch at a time.
func (t *Theme) Stream(ctx context.Context, w io.Writer, p *model.Project, opt Options) error {
	if _, err := fmt.Fprintln(w, t.Header(p)); err != nil {
		return err
	}
	return Walk(ctx, p, opt.BatchSize, func(batch Batch) error {
		var b strings.Builder
		if batch.First {
			fmt.Fprintf(&b, "\n%s %s\n", t.accent(batch.Bucket.ColorIdentifier).Render(batch.Bucket.Title), t.Muted.Render(fmt.Sprintf("(%d)", len(batch.Bucket.Ideas))))
		}
		for _, idea := range batch.Ideas {
			fmt.Fprintf(&b, "  %d. %s\n", idea.Position, t.Idea.Render(idea.Title))
			if idea.Minimized {
				continue
			}
			for _, e := range ordered.Sorted(idea.Extensions) {
				fmt.Fprintf(&b, "     %s\n", t.Muted.Render(ExtensionSummary(e)))
				if c := e.Checklist(); c != nil {
					for _, it := range ordered.Sorted(c.Items) {
						line := strings.TrimSpace(it.Title)
						box := "[ ]"
						if it.Checked {
							box = "[x]"
							line = t.Checked.Render(line)
						}
						fmt.Fprintf(&b, "       %s %s\n", box, line)
					}
				}
			}
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
