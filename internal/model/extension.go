package model

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type ExtensionType string

const (
	ExtensionChecklist      ExtensionType = "checklist"
	ExtensionImageCatalogue ExtensionType = "imageCatalogue"
)

// ExtensionTypes lists every known extension type in display order.
var ExtensionTypes = []ExtensionType{ExtensionChecklist, ExtensionImageCatalogue}

func ParseExtensionType(s string) (ExtensionType, error) {
	for _, t := range ExtensionTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown extension type %q (expected checklist|imageCatalogue)", s)
}

// DisplayTitle is the name shown to users for an extension type.
func (t ExtensionType) DisplayTitle() string {
	switch t {
	case ExtensionChecklist:
		return "Checklist"
	case ExtensionImageCatalogue:
		return "Image gallery"
	default:
		return string(t)
	}
}

// ExtensionContent is the payload of an IdeaExtension: *Checklist or *ImageCatalogue.
type ExtensionContent interface {
	ExtensionType() ExtensionType
	isExtensionContent()
}

type Checklist struct {
	ID    uuid.UUID        `json:"id"`
	Items []*ChecklistItem `json:"items"`
}

type ImageCatalogue struct {
	ID    uuid.UUID    `json:"id"`
	Items []*ImageItem `json:"items"`
}

func (*Checklist) ExtensionType() ExtensionType      { return ExtensionChecklist }
func (*ImageCatalogue) ExtensionType() ExtensionType { return ExtensionImageCatalogue }

func (*Checklist) isExtensionContent()      {}
func (*ImageCatalogue) isExtensionContent() {}

func (c *Checklist) EntityID() uuid.UUID      { return c.ID }
func (c *ImageCatalogue) EntityID() uuid.UUID { return c.ID }

// IdeaExtension is a typed attachment to an idea. The type is always derived from
// Content; only records decoded from damaged storage can carry a type without content.
type IdeaExtension struct {
	ID        uuid.UUID
	Title     string
	Position  int
	Minimized bool
	Content   ExtensionContent

	declared ExtensionType
}

func (e *IdeaExtension) EntityID() uuid.UUID { return e.ID }
func (e *IdeaExtension) Pos() int            { return e.Position }
func (e *IdeaExtension) SetPos(p int)        { e.Position = p }

func (e *IdeaExtension) Type() ExtensionType {
	if e.Content != nil {
		return e.Content.ExtensionType()
	}
	return e.declared
}

// Checklist returns the checklist payload, or nil for other types.
func (e *IdeaExtension) Checklist() *Checklist {
	c, _ := e.Content.(*Checklist)
	return c
}

// ImageCatalogue returns the image payload, or nil for other types.
func (e *IdeaExtension) ImageCatalogue() *ImageCatalogue {
	c, _ := e.Content.(*ImageCatalogue)
	return c
}

// RepairContent installs an empty payload of the declared type when the content is
// missing. It reports whether a repair happened.
func (e *IdeaExtension) RepairContent() bool {
	if e.Content != nil {
		return false
	}
	switch e.declared {
	case ExtensionImageCatalogue:
		e.Content = NewImageCatalogue()
	default:
		e.Content = NewChecklist()
	}
	return true
}

type extensionJSON struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Type           ExtensionType   `json:"type"`
	Position       int             `json:"position"`
	Minimized      bool            `json:"minimized"`
	Checklist      *Checklist      `json:"checklist,omitempty"`
	ImageCatalogue *ImageCatalogue `json:"imageCatalogue,omitempty"`
}

func (e *IdeaExtension) MarshalJSON() ([]byte, error) {
	return json.Marshal(extensionJSON{
		ID:             e.ID,
		Title:          e.Title,
		Type:           e.Type(),
		Position:       e.Position,
		Minimized:      e.Minimized,
		Checklist:      e.Checklist(),
		ImageCatalogue: e.ImageCatalogue(),
	})
}

func (e *IdeaExtension) UnmarshalJSON(b []byte) error {
	var raw extensionJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	typ := raw.Type
	if typ == "" {
		typ = ExtensionChecklist
	}
	if _, err := ParseExtensionType(string(typ)); err != nil {
		return err
	}
	*e = IdeaExtension{
		ID:        raw.ID,
		Title:     raw.Title,
		Position:  raw.Position,
		Minimized: raw.Minimized,
		declared:  typ,
	}
	// Only the payload matching the type is read; a stray second payload is dropped.
	switch typ {
	case ExtensionChecklist:
		if raw.Checklist != nil {
			e.Content = raw.Checklist
		}
	case ExtensionImageCatalogue:
		if raw.ImageCatalogue != nil {
			e.Content = raw.ImageCatalogue
		}
	}
	return nil
}
