// Package tags manages the global tag registry and the per-project references into it.
package tags

import (
	"errors"
	"strings"
	"time"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

var ErrAlreadyAttached = errors.New("tag already attached to project")

// Descriptor is a tag as it travels in a document: identity is (Title, ColorIdentifier).
type Descriptor struct {
	Title               string
	ColorIdentifier     int
	Timestamp           time.Time
	IsExpandedInSidebar bool
}

func DescriptorOf(t *model.Tag) Descriptor {
	return Descriptor{
		Title:               t.Title,
		ColorIdentifier:     t.ColorIdentifier,
		Timestamp:           t.Timestamp,
		IsExpandedInSidebar: t.IsExpandedInSidebar,
	}
}

// Create adds a new tag to the registry.
func Create(h ordered.Hooks, s *model.GlobalUserSettings, title string, color int) *model.Tag {
	if strings.TrimSpace(title) == "" {
		title = model.DefaultTagTitle
	}
	if color <= 0 {
		color = model.DefaultColor
	}
	t := model.NewTag(title, color)
	s.TagCollection = append(s.TagCollection, t)
	changed(h)
	return t
}

// Find returns the registry tag with exactly this title and colour.
func Find(s *model.GlobalUserSettings, title string, color int) *model.Tag {
	for _, t := range s.TagCollection {
		if t.Title == title && t.ColorIdentifier == color {
			return t
		}
	}
	return nil
}

// Attach appends a reference to t at the end of the project's tag list.
func Attach(h ordered.Hooks, p *model.Project, t *model.Tag) (*model.TagReference, error) {
	if p.FindTagReference(t.ID) != nil {
		return nil, ErrAlreadyAttached
	}
	ref := model.NewTagReference(t, len(p.Tags)+1)
	ordered.Insert(h, &p.Tags, ref)
	return ref, nil
}

// Detach removes the project's reference to t. The tag itself stays in the registry.
func Detach(h ordered.Hooks, p *model.Project, t *model.Tag) bool {
	ref := p.FindTagReference(t.ID)
	if ref == nil {
		return false
	}
	return ordered.Remove(h, &p.Tags, ref, true)
}

// Reconcile resolves incoming tag descriptors against the registry and attaches them
// to p. A descriptor matching an existing tag (exact title and colour) reuses it;
// otherwise a tag is created. Descriptors resolving to a tag p already references
// are skipped.
func Reconcile(h ordered.Hooks, s *model.GlobalUserSettings, p *model.Project, incoming []Descriptor) []*model.TagReference {
	var out []*model.TagReference
	for _, d := range incoming {
		t := Find(s, d.Title, d.ColorIdentifier)
		if t == nil {
			t = model.NewTag(d.Title, d.ColorIdentifier)
			if !d.Timestamp.IsZero() {
				t.Timestamp = d.Timestamp
			}
			t.IsExpandedInSidebar = d.IsExpandedInSidebar
			s.TagCollection = append(s.TagCollection, t)
		}
		ref, err := Attach(h, p, t)
		if err != nil {
			continue
		}
		out = append(out, ref)
	}
	changed(h)
	return out
}

// SafelyDelete removes every reference to t from every project, then drops t from the
// registry and hands it to h for deletion.
func SafelyDelete(h ordered.Hooks, projects []*model.Project, s *model.GlobalUserSettings, t *model.Tag) int {
	n := 0
	for _, p := range projects {
		for _, ref := range append([]*model.TagReference(nil), p.Tags...) {
			if ref.TagID == t.ID || ref.Tag == t {
				ordered.Remove(h, &p.Tags, ref, true)
				n++
			}
		}
	}
	if s != nil {
		kept := s.TagCollection[:0]
		for _, x := range s.TagCollection {
			if x.ID != t.ID {
				kept = append(kept, x)
			}
		}
		s.TagCollection = kept
	}
	if h != nil {
		h.Discard(t)
	}
	changed(h)
	return n
}

// Rename updates title and colour in place; every project sees the change.
func Rename(h ordered.Hooks, t *model.Tag, title string, color int) {
	if title != "" {
		t.Title = title
	}
	if color > 0 {
		t.ColorIdentifier = color
	}
	changed(h)
}

func changed(h ordered.Hooks) {
	if h != nil {
		h.Changed()
	}
}
