package mutate

import (
	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

// AddExtension appends a new, empty extension of type t to idea.
func AddExtension(h ordered.Hooks, idea *model.Idea, t model.ExtensionType) *model.IdeaExtension {
	e := model.NewExtension(t, len(idea.Extensions)+1)
	ordered.Insert(h, &idea.Extensions, e)
	return e
}

func RemoveExtension(h ordered.Hooks, idea *model.Idea, e *model.IdeaExtension) error {
	if !ordered.Remove(h, &idea.Extensions, e, true) {
		return NotFoundError{Kind: model.KindExtension, ID: e.ID.String()}
	}
	return nil
}

func MoveExtension(h ordered.Hooks, idea *model.Idea, e *model.IdeaExtension, pos int) bool {
	return ordered.Move(h, idea.Extensions, e, pos)
}

// AddImage appends an image to the catalogue.
func AddImage(h ordered.Hooks, c *model.ImageCatalogue, title string, data []byte) *model.ImageItem {
	it := model.NewImageItem(title, data, len(c.Items)+1)
	ordered.Insert(h, &c.Items, it)
	return it
}

func RemoveImage(h ordered.Hooks, c *model.ImageCatalogue, it *model.ImageItem) error {
	if !ordered.Remove(h, &c.Items, it, true) {
		return NotFoundError{Kind: model.KindImageItem, ID: it.ID.String()}
	}
	return nil
}

// MoveImage moves an image within c, or into another catalogue when to differs.
// Cross-catalogue moves insert a copy into the target before removing the source item.
func MoveImage(h ordered.Hooks, from, to *model.ImageCatalogue, it *model.ImageItem, pos int) *model.ImageItem {
	if to == nil || to == from {
		ordered.Move(h, from.Items, it, pos)
		return it
	}
	cp := model.CopyImageItem(it, pos)
	ordered.Insert(h, &to.Items, cp)
	ordered.Remove(h, &from.Items, it, true)
	return cp
}
