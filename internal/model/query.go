package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Kind names an entity type. It is used in errors, store keys and integrity reports.
type Kind string

const (
	KindProject         Kind = "project"
	KindProjectSettings Kind = "project_settings"
	KindBucket          Kind = "bucket"
	KindIdea            Kind = "idea"
	KindExtension       Kind = "extension"
	KindChecklist       Kind = "checklist"
	KindChecklistItem   Kind = "checklist_item"
	KindImageCatalogue  Kind = "image_catalogue"
	KindImageItem       Kind = "image_item"
	KindTag             Kind = "tag"
	KindTagReference    Kind = "tag_reference"
	KindUserSettings    Kind = "user_settings"
)

// KindOf returns the kind of a model entity, or "" for anything else.
func KindOf(e any) Kind {
	switch e.(type) {
	case *Project:
		return KindProject
	case *ProjectSettings:
		return KindProjectSettings
	case *Bucket:
		return KindBucket
	case *Idea:
		return KindIdea
	case *IdeaExtension:
		return KindExtension
	case *Checklist:
		return KindChecklist
	case *ChecklistItem:
		return KindChecklistItem
	case *ImageCatalogue:
		return KindImageCatalogue
	case *ImageItem:
		return KindImageItem
	case *Tag:
		return KindTag
	case *TagReference:
		return KindTagReference
	case *GlobalUserSettings:
		return KindUserSettings
	default:
		return ""
	}
}

// IdeaCount counts ideas across all buckets.
func (p *Project) IdeaCount() int {
	n := 0
	for _, b := range p.Buckets {
		n += len(b.Ideas)
	}
	return n
}

// Summary is the short description used in listings and sharing invitations.
func (p *Project) Summary() string {
	return fmt.Sprintf("%d Ideas in %d Buckets", p.IdeaCount(), len(p.Buckets))
}

func (p *Project) FindBucket(id uuid.UUID) *Bucket {
	for _, b := range p.Buckets {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// BucketAt returns the bucket at position pos.
func (p *Project) BucketAt(pos int) *Bucket {
	for _, b := range p.Buckets {
		if b.Position == pos {
			return b
		}
	}
	return nil
}

// LastBucket returns the bucket whose position equals the bucket count.
func (p *Project) LastBucket() *Bucket {
	return p.BucketAt(len(p.Buckets))
}

// FindIdea returns the idea with id and the bucket that owns it.
func (p *Project) FindIdea(id uuid.UUID) (*Idea, *Bucket) {
	for _, b := range p.Buckets {
		for _, i := range b.Ideas {
			if i.ID == id {
				return i, b
			}
		}
	}
	return nil, nil
}

// OwnerOf returns the bucket that holds idea, scanning by identity.
func (p *Project) OwnerOf(idea *Idea) *Bucket {
	_, b := p.FindIdea(idea.ID)
	return b
}

// FindExtension returns the extension with id and its idea.
func (p *Project) FindExtension(id uuid.UUID) (*IdeaExtension, *Idea) {
	for _, b := range p.Buckets {
		for _, i := range b.Ideas {
			if e := i.FindExtension(id); e != nil {
				return e, i
			}
		}
	}
	return nil, nil
}

func (i *Idea) FindExtension(id uuid.UUID) *IdeaExtension {
	for _, e := range i.Extensions {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// FindTagReference returns the project's reference to tag id.
func (p *Project) FindTagReference(tagID uuid.UUID) *TagReference {
	for _, r := range p.Tags {
		if r.TagID == tagID {
			return r
		}
	}
	return nil
}

func (c *Checklist) FindItem(id uuid.UUID) *ChecklistItem {
	for _, it := range c.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func (c *ImageCatalogue) FindItem(id uuid.UUID) *ImageItem {
	for _, it := range c.Items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

// Walk visits p and every entity it owns, parents before children.
// Registry tags are not owned by projects and are not visited.
func (p *Project) Walk(fn func(e any)) {
	fn(p)
	if p.Settings != nil {
		fn(p.Settings)
	}
	for _, r := range p.Tags {
		fn(r)
	}
	for _, b := range p.Buckets {
		b.Walk(fn)
	}
}

func (b *Bucket) Walk(fn func(e any)) {
	fn(b)
	for _, i := range b.Ideas {
		i.Walk(fn)
	}
}

func (i *Idea) Walk(fn func(e any)) {
	fn(i)
	for _, e := range i.Extensions {
		e.Walk(fn)
	}
}

func (e *IdeaExtension) Walk(fn func(e any)) {
	fn(e)
	switch c := e.Content.(type) {
	case *Checklist:
		fn(c)
		for _, it := range c.Items {
			fn(it)
		}
	case *ImageCatalogue:
		fn(c)
		for _, it := range c.Items {
			fn(it)
		}
	}
}

// IDOf returns the identity of any model entity.
func IDOf(e any) uuid.UUID {
	if x, ok := e.(interface{ EntityID() uuid.UUID }); ok {
		return x.EntityID()
	}
	return uuid.Nil
}
