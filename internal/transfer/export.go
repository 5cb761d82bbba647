package transfer

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
	"ideas-cli/internal/store"

	"github.com/dustin/go-humanize"
)

// FromProject flattens p into its document form, every collection in position order.
func FromProject(p *model.Project) ProjectDTO {
	out := ProjectDTO{
		Version:   Version,
		ID:        p.ID,
		Title:     p.Title,
		Timestamp: p.Timestamp,
		Tags:      []TagDTO{},
		Buckets:   []BucketDTO{},
	}
	if s := p.Settings; s != nil {
		out.Settings = &SettingsDTO{
			IdeaDeletionRequiresConfirmation: s.IdeaDeletionRequiresConfirmation,
			UseScrollViewForBuckets:          s.UseScrollViewForBuckets,
			ScrollViewBucketWidth:            s.ScrollViewBucketWidth,
			UseCheckOffIdeaButton:            s.UseCheckOffIdeaButton,
		}
	}
	for _, ref := range ordered.Sorted(p.Tags) {
		if ref.Tag == nil {
			continue
		}
		out.Tags = append(out.Tags, TagDTO{
			Title:               ref.Tag.Title,
			ColorIdentifier:     ref.Tag.ColorIdentifier,
			Timestamp:           ref.Tag.Timestamp,
			IsExpandedInSidebar: ref.Tag.IsExpandedInSidebar,
		})
	}
	for _, b := range ordered.Sorted(p.Buckets) {
		bd := BucketDTO{Title: b.Title, ColorIdentifier: b.ColorIdentifier, Position: b.Position, Ideas: []IdeaDTO{}}
		for _, i := range ordered.Sorted(b.Ideas) {
			bd.Ideas = append(bd.Ideas, ideaDTO(i))
		}
		out.Buckets = append(out.Buckets, bd)
	}
	return out
}

func ideaDTO(i *model.Idea) IdeaDTO {
	out := IdeaDTO{
		Title:      i.Title,
		Desc:       i.Desc,
		Position:   i.Position,
		Timestamp:  i.Timestamp,
		Minimized:  i.Minimized,
		Extensions: []ExtensionDTO{},
	}
	for _, e := range ordered.Sorted(i.Extensions) {
		ed := ExtensionDTO{
			Title:                 e.Title,
			Type:                  string(e.Type()),
			Position:              e.Position,
			Minimized:             e.Minimized,
			ChecklistContent:      []ChecklistItemDTO{},
			ImageCatalogueContent: []ImageItemDTO{},
		}
		switch c := e.Content.(type) {
		case *model.Checklist:
			for _, it := range ordered.Sorted(c.Items) {
				ed.ChecklistContent = append(ed.ChecklistContent, ChecklistItemDTO{Title: it.Title, Checked: it.Checked, Position: it.Position})
			}
		case *model.ImageCatalogue:
			for _, it := range ordered.Sorted(c.Items) {
				ed.ImageCatalogueContent = append(ed.ImageCatalogueContent, ImageItemDTO{
					Title:    it.Title,
					Image:    base64.StdEncoding.EncodeToString(it.Image),
					Position: it.Position,
				})
			}
		}
		out.Extensions = append(out.Extensions, ed)
	}
	return out
}

// Encode returns the pretty-printed document for p.
func Encode(p *model.Project) ([]byte, error) {
	b, err := json.MarshalIndent(FromProject(p), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project %q: %w", p.Title, err)
	}
	return b, nil
}

// ExportFile writes the document for p to path. A path without extension gets ".json".
func ExportFile(p *model.Project, path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".json"
	}
	b, err := Encode(p)
	if err != nil {
		return "", err
	}
	if err := store.WriteFileAtomic(path, b); err != nil {
		return "", err
	}
	return path, nil
}

// FileName suggests a file name for exporting p.
func FileName(p *model.Project) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(p.Title))
	if name == "" {
		name = "project"
	}
	return name + ".json"
}

// SharingContext is the metadata shown to a peer before it accepts a project.
type SharingContext struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

const NoFurtherInformation = "No further information available"

// NewSharingContext describes p and the size of its encoded document.
func NewSharingContext(p *model.Project, size int) SharingContext {
	if size < 0 {
		size = 0
	}
	return SharingContext{
		Primary:   p.Title,
		Secondary: p.Summary(),
		Tertiary:  humanize.Bytes(uint64(size)),
	}
}

// Normalized fills empty fields with a placeholder.
func (c SharingContext) Normalized() SharingContext {
	if strings.TrimSpace(c.Primary) == "" {
		c.Primary = NoFurtherInformation
	}
	if strings.TrimSpace(c.Secondary) == "" {
		c.Secondary = NoFurtherInformation
	}
	if strings.TrimSpace(c.Tertiary) == "" {
		c.Tertiary = NoFurtherInformation
	}
	return c
}
