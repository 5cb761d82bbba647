package mutate

import (
	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

// EditChecklistItem applies text typed into an item.
//
// Empty text removes the item; the checklist is re-seeded with a blank item if that
// left it empty. Any other text is stored with the leading space restored.
// It returns the stored title and whether the item was removed.
func EditChecklistItem(h ordered.Hooks, c *model.Checklist, it *model.ChecklistItem, text string) (string, bool) {
	if text == "" {
		RemoveChecklistItem(h, c, it)
		return "", true
	}
	if text[0] != ' ' {
		text = " " + text
	}
	it.Title = text
	hooksChanged(h)
	return text, false
}

// SubmitChecklistItem inserts a blank item right below it, carrying over its checked state.
func SubmitChecklistItem(h ordered.Hooks, c *model.Checklist, it *model.ChecklistItem) *model.ChecklistItem {
	next := model.NewChecklistItem(model.BlankItemTitle, it.Checked, it.Position+1)
	ordered.Insert(h, &c.Items, next)
	return next
}

// AddChecklistItem appends an item with title (leading space added when missing).
func AddChecklistItem(h ordered.Hooks, c *model.Checklist, title string) *model.ChecklistItem {
	if title == "" || title[0] != ' ' {
		title = " " + title
	}
	it := model.NewChecklistItem(title, false, len(c.Items)+1)
	ordered.Insert(h, &c.Items, it)
	return it
}

// SetChecked updates the checked flag. Checking an item moves it to the end.
func SetChecked(h ordered.Hooks, c *model.Checklist, it *model.ChecklistItem, checked bool) {
	it.Checked = checked
	if checked {
		ordered.Move(h, c.Items, it, len(c.Items)+1)
		return
	}
	hooksChanged(h)
}

// RemoveChecklistItem deletes it. A checklist is never left empty.
func RemoveChecklistItem(h ordered.Hooks, c *model.Checklist, it *model.ChecklistItem) bool {
	if !ordered.Remove(h, &c.Items, it, true) {
		return false
	}
	ensureNotEmpty(h, c)
	return true
}

// MoveChecklistItem moves it to slot pos of `to`. Between different checklists a copy
// is added to the target and the original removed from the source.
func MoveChecklistItem(h ordered.Hooks, from, to *model.Checklist, it *model.ChecklistItem, pos int) *model.ChecklistItem {
	if to == nil || to == from {
		ordered.Move(h, from.Items, it, pos)
		return it
	}
	cp := model.CopyChecklistItem(it, pos)
	ordered.Insert(h, &to.Items, cp)
	RemoveChecklistItem(h, from, it)
	return cp
}

func ensureNotEmpty(h ordered.Hooks, c *model.Checklist) {
	if len(c.Items) == 0 {
		ordered.Insert(h, &c.Items, model.NewChecklistItem(model.BlankItemTitle, false, 1))
	}
}
