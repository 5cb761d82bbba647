package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// result pairs a JSON value with its text form.
type result struct {
	value any
	text  string
}

func (r result) MarshalJSON() ([]byte, error) { return json.Marshal(r.value) }
func (r result) Text() string                 { return r.text }

func textf(value any, f string, args ...any) result {
	return result{value: value, text: fmt.Sprintf(f, args...)}
}

type projectRow struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Buckets   int       `json:"buckets"`
	Ideas     int       `json:"ideas"`
	Tags      []string  `json:"tags"`
	Timestamp time.Time `json:"timestamp"`
	Current   bool      `json:"current"`
}

func newProjectRow(p *model.Project, current uuid.UUID) projectRow {
	row := projectRow{
		ID:        p.ID,
		Title:     p.Title,
		Buckets:   len(p.Buckets),
		Ideas:     p.IdeaCount(),
		Tags:      []string{},
		Timestamp: p.Timestamp,
		Current:   p.ID == current,
	}
	for _, ref := range ordered.Sorted(p.Tags) {
		if ref.Tag != nil {
			row.Tags = append(row.Tags, ref.Tag.Title)
		}
	}
	return row
}

func projectList(ps []*model.Project, current uuid.UUID) result {
	rows := make([]projectRow, 0, len(ps))
	var b strings.Builder
	for _, p := range ps {
		row := newProjectRow(p, current)
		rows = append(rows, row)
		mark := " "
		if row.Current {
			mark = "*"
		}
		fmt.Fprintf(&b, "%s %s  %s  (%s, %s)", mark, shortID(p.ID), p.Title, p.Summary(), humanize.Time(p.Timestamp))
		if len(row.Tags) > 0 {
			fmt.Fprintf(&b, "  #%s", strings.Join(row.Tags, " #"))
		}
		b.WriteString("\n")
	}
	if len(ps) == 0 {
		b.WriteString("no projects yet\n")
	}
	return result{value: rows, text: b.String()}
}

func bucketResult(b *model.Bucket) result {
	return textf(b, "%s  %d. %s [%s] (%d ideas)", shortID(b.ID), b.Position, b.Title, model.ColorName(b.ColorIdentifier), len(b.Ideas))
}

func ideaResult(idea *model.Idea, b *model.Bucket) result {
	where := ""
	if b != nil {
		where = " in " + b.Title
	}
	return textf(idea, "%s  %d. %s%s", shortID(idea.ID), idea.Position, idea.Title, where)
}

func extensionResult(e *model.IdeaExtension) result {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %d. %s (%s)", shortID(e.ID), e.Position, e.Title, e.Type())
	switch c := e.Content.(type) {
	case *model.Checklist:
		for _, it := range ordered.Sorted(c.Items) {
			box := "[ ]"
			if it.Checked {
				box = "[x]"
			}
			fmt.Fprintf(&b, "\n  %s  %s %s", shortID(it.ID), box, strings.TrimSpace(it.Title))
		}
	case *model.ImageCatalogue:
		for _, it := range ordered.Sorted(c.Items) {
			fmt.Fprintf(&b, "\n  %s  %d. %s (%s)", shortID(it.ID), it.Position, it.Title, humanize.Bytes(uint64(len(it.Image))))
		}
	}
	return result{value: e, text: b.String()}
}

func tagResult(t *model.Tag) result {
	return textf(t, "%s  %s [%s]", shortID(t.ID), t.Title, model.ColorName(t.ColorIdentifier))
}

func tagList(ts []*model.Tag, usage map[uuid.UUID]int) result {
	type row struct {
		*model.Tag
		Projects int `json:"projects"`
	}
	rows := make([]row, 0, len(ts))
	var b strings.Builder
	for _, t := range ts {
		rows = append(rows, row{Tag: t, Projects: usage[t.ID]})
		fmt.Fprintf(&b, "%s  %s [%s] used by %d\n", shortID(t.ID), t.Title, model.ColorName(t.ColorIdentifier), usage[t.ID])
	}
	if len(ts) == 0 {
		b.WriteString("no tags yet\n")
	}
	return result{value: rows, text: b.String()}
}
