package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBucketTitle = "new Bucket"
	DefaultTagTitle    = "new Tag"
	DefaultColor       = 1

	// BlankItemTitle is the title of a fresh checklist item. Item titles keep one
	// leading space.
	BlankItemTitle = " "

	DefaultBucketWidth = 350
)

var now = time.Now

func NewProjectSettings() *ProjectSettings {
	return &ProjectSettings{
		ID:                               uuid.New(),
		IdeaDeletionRequiresConfirmation: true,
		ScrollViewBucketWidth:            DefaultBucketWidth,
	}
}

// NewProject returns a project with default settings and one empty bucket.
func NewProject(title string) *Project {
	p := NewEmptyProject(title)
	p.Buckets = []*Bucket{NewBucket(DefaultBucketTitle, 1)}
	return p
}

// NewEmptyProject returns a project without buckets (used when building from a
// document or a copy).
func NewEmptyProject(title string) *Project {
	return &Project{
		ID:        uuid.New(),
		Title:     title,
		Timestamp: now(),
		Settings:  NewProjectSettings(),
	}
}

func NewBucket(title string, pos int) *Bucket {
	return &Bucket{ID: uuid.New(), Title: title, ColorIdentifier: DefaultColor, Position: pos}
}

func NewIdea(title, desc string, pos int) *Idea {
	return &Idea{ID: uuid.New(), Title: title, Desc: desc, Timestamp: now(), Position: pos}
}

// NewChecklist returns a checklist holding one blank item.
func NewChecklist() *Checklist {
	return &Checklist{ID: uuid.New(), Items: []*ChecklistItem{NewChecklistItem(BlankItemTitle, false, 1)}}
}

func NewChecklistItem(title string, checked bool, pos int) *ChecklistItem {
	return &ChecklistItem{ID: uuid.New(), Title: title, Checked: checked, Position: pos}
}

func NewImageCatalogue() *ImageCatalogue {
	return &ImageCatalogue{ID: uuid.New()}
}

func NewImageItem(title string, image []byte, pos int) *ImageItem {
	return &ImageItem{ID: uuid.New(), Title: title, Image: image, Position: pos}
}

// NewContent returns an empty payload for t.
func NewContent(t ExtensionType) ExtensionContent {
	if t == ExtensionImageCatalogue {
		return NewImageCatalogue()
	}
	return NewChecklist()
}

// NewExtension builds an extension of type t titled with the type's display name.
func NewExtension(t ExtensionType, pos int) *IdeaExtension {
	return NewExtensionWith(t.DisplayTitle(), NewContent(t), pos)
}

func NewExtensionWith(title string, content ExtensionContent, pos int) *IdeaExtension {
	return &IdeaExtension{
		ID:       uuid.New(),
		Title:    title,
		Position: pos,
		Content:  content,
		declared: content.ExtensionType(),
	}
}

func NewTag(title string, color int) *Tag {
	return &Tag{ID: uuid.New(), Title: title, ColorIdentifier: color, Timestamp: now(), IsExpandedInSidebar: true}
}

func NewTagReference(t *Tag, pos int) *TagReference {
	return &TagReference{ID: uuid.New(), TagID: t.ID, Tag: t, Position: pos}
}

// CopyIdea deep-copies src with fresh ids. The copy keeps title, description,
// timestamp, minimized state and every extension.
func CopyIdea(src *Idea, pos int) *Idea {
	out := &Idea{
		ID:        uuid.New(),
		Title:     src.Title,
		Desc:      src.Desc,
		Timestamp: src.Timestamp,
		Minimized: src.Minimized,
		Position:  pos,
	}
	for _, e := range src.Extensions {
		out.Extensions = append(out.Extensions, CopyExtension(e, e.Position))
	}
	return out
}

func CopyExtension(src *IdeaExtension, pos int) *IdeaExtension {
	var content ExtensionContent
	switch c := src.Content.(type) {
	case *Checklist:
		cl := &Checklist{ID: uuid.New()}
		for _, it := range c.Items {
			cl.Items = append(cl.Items, CopyChecklistItem(it, it.Position))
		}
		content = cl
	case *ImageCatalogue:
		ic := &ImageCatalogue{ID: uuid.New()}
		for _, it := range c.Items {
			ic.Items = append(ic.Items, CopyImageItem(it, it.Position))
		}
		content = ic
	default:
		content = NewContent(src.Type())
	}
	out := NewExtensionWith(src.Title, content, pos)
	out.Minimized = src.Minimized
	return out
}

func CopyChecklistItem(src *ChecklistItem, pos int) *ChecklistItem {
	return NewChecklistItem(src.Title, src.Checked, pos)
}

func CopyImageItem(src *ImageItem, pos int) *ImageItem {
	return NewImageItem(src.Title, append([]byte(nil), src.Image...), pos)
}

// PresetProject is the sample project shown before anything has been created.
func PresetProject() *Project {
	p := NewEmptyProject("Preset project")
	b1 := NewBucket("Bucket 1", 1)
	b1.Ideas = []*Idea{NewIdea("Idea 1", "", 1), NewIdea("Idea 2", "", 2)}
	b2 := NewBucket("Bucket 2", 2)
	b2.Ideas = []*Idea{NewIdea("Idea 3", "", 1), NewIdea("Idea 4", "", 2)}
	p.Buckets = []*Bucket{b1, b2}
	return p
}
