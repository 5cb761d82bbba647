package model

import (
	"time"

	"github.com/google/uuid"
)

// Project is the persisted aggregate root: buckets, their ideas and everything below.
type Project struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Timestamp time.Time        `json:"timestamp"`
	Buckets   []*Bucket        `json:"buckets"`
	Tags      []*TagReference  `json:"tags"`
	Settings  *ProjectSettings `json:"settings"`
}

// ProjectSettings is owned 1:1 by a project and deleted with it.
type ProjectSettings struct {
	ID                               uuid.UUID `json:"id"`
	IdeaDeletionRequiresConfirmation bool      `json:"ideaDeletionRequiresConfirmation"`
	UseScrollViewForBuckets          bool      `json:"useScrollViewForBuckets"`
	ScrollViewBucketWidth            int       `json:"scrollViewBucketWidth"`
	UseCheckOffIdeaButton            bool      `json:"useCheckOffIdeaButton"`
}

type Bucket struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	ColorIdentifier int       `json:"colorIdentifier"`
	Position        int       `json:"position"`
	Ideas           []*Idea   `json:"ideas"`
}

type Idea struct {
	ID         uuid.UUID        `json:"id"`
	Title      string           `json:"title"`
	Desc       string           `json:"desc"`
	Timestamp  time.Time        `json:"timestamp"`
	Minimized  bool             `json:"minimized"`
	Position   int              `json:"position"`
	Extensions []*IdeaExtension `json:"extensions"`
}

type ChecklistItem struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Checked  bool      `json:"checked"`
	Position int       `json:"position"`
}

type ImageItem struct {
	ID       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Image    []byte    `json:"image"`
	Position int       `json:"position"`
}

// Tag lives in the global registry. Two tags are "the same" for import purposes when
// title and colour match; the id is only a storage identity.
type Tag struct {
	ID                  uuid.UUID `json:"id"`
	Title               string    `json:"title"`
	ColorIdentifier     int       `json:"colorIdentifier"`
	Timestamp           time.Time `json:"timestamp"`
	IsExpandedInSidebar bool      `json:"isExpandedInSidebar"`
}

// TagReference joins a project to a registry tag and carries the project-local order.
// TagID is what gets persisted; Tag is resolved when the store is opened.
type TagReference struct {
	ID       uuid.UUID `json:"id"`
	TagID    uuid.UUID `json:"tagId"`
	Position int       `json:"position"`
	Tag      *Tag      `json:"-"`
}

func (p *Project) EntityID() uuid.UUID         { return p.ID }
func (s *ProjectSettings) EntityID() uuid.UUID { return s.ID }
func (t *Tag) EntityID() uuid.UUID             { return t.ID }

func (b *Bucket) EntityID() uuid.UUID { return b.ID }
func (b *Bucket) Pos() int            { return b.Position }
func (b *Bucket) SetPos(p int)        { b.Position = p }

func (i *Idea) EntityID() uuid.UUID { return i.ID }
func (i *Idea) Pos() int            { return i.Position }
func (i *Idea) SetPos(p int)        { i.Position = p }

func (c *ChecklistItem) EntityID() uuid.UUID { return c.ID }
func (c *ChecklistItem) Pos() int            { return c.Position }
func (c *ChecklistItem) SetPos(p int)        { c.Position = p }

func (m *ImageItem) EntityID() uuid.UUID { return m.ID }
func (m *ImageItem) Pos() int            { return m.Position }
func (m *ImageItem) SetPos(p int)        { m.Position = p }

func (r *TagReference) EntityID() uuid.UUID { return r.ID }
func (r *TagReference) Pos() int            { return r.Position }
func (r *TagReference) SetPos(p int)        { r.Position = p }
