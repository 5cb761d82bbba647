package model

import (
	"sort"

	"github.com/google/uuid"
)

const (
	DefaultUISize = 20
	MinUISize     = 16
	MaxUISize     = 40
	UISizeStep    = 2
)

// GlobalUserSettings is the per-installation singleton. The store guarantees exactly
// one live instance. The tag registry is persisted separately and linked by id.
type GlobalUserSettings struct {
	ID                uuid.UUID `json:"id"`
	UISize            UISize    `json:"uiSize"`
	LastOpenedProject uuid.UUID `json:"lastOpenedProject"`
	TagCollection     []*Tag    `json:"-"`
	CategoriseByTags  bool      `json:"categoriseByTags"`
}

func NewGlobalUserSettings() *GlobalUserSettings {
	return &GlobalUserSettings{
		ID:     uuid.New(),
		UISize: NewUISize(DefaultUISize),
	}
}

func (s *GlobalUserSettings) EntityID() uuid.UUID { return s.ID }

// SortedTags returns the registry ordered by creation time.
func (s *GlobalUserSettings) SortedTags() []*Tag {
	out := append([]*Tag(nil), s.TagCollection...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out
}

// FindTag returns the registry tag with id.
func (s *GlobalUserSettings) FindTag(id uuid.UUID) *Tag {
	for _, t := range s.TagCollection {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// UISize scales every element of the presentation layer. Derived sizes are
// recomputed whenever the base value changes.
type UISize struct {
	SizeValue  int     `json:"sizeValue"`
	Large      float64 `json:"large"`
	Small      float64 `json:"small"`
	LargeText  float64 `json:"largeText"`
	MediumText float64 `json:"mediumText"`
	SmallText  float64 `json:"smallText"`
}

func NewUISize(v int) UISize {
	var s UISize
	s.Set(v)
	return s
}

// Set clamps v into [MinUISize, MaxUISize] and updates the derived sizes.
func (s *UISize) Set(v int) {
	s.SizeValue = min(max(v, MinUISize), MaxUISize)
	f := float64(s.SizeValue)
	s.Large = f * 1.5
	s.Small = f
	s.LargeText = f * 1.25
	s.MediumText = f * 0.8
	s.SmallText = f * 0.7
}

func (s *UISize) Larger()  { s.Set(s.SizeValue + UISizeStep) }
func (s *UISize) Smaller() { s.Set(s.SizeValue - UISizeStep) }
