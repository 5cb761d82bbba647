package tags

import (
	"testing"
	"time"

	"ideas-cli/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recHooks struct{ discarded []any }

func (r *recHooks) Changed()      {}
func (r *recHooks) Discard(e any) { r.discarded = append(r.discarded, e) }

func TestReconcileReusesMatchingTag(t *testing.T) {
	s := model.NewGlobalUserSettings()
	work := Create(nil, s, "Work", 3)
	p := model.NewProject("p")
	other := Create(nil, s, "Home", 2)
	_, err := Attach(nil, p, other)
	require.NoError(t, err)

	refs := Reconcile(nil, s, p, []Descriptor{{Title: "Work", ColorIdentifier: 3}})
	require.Len(t, refs, 1)
	assert.Len(t, s.TagCollection, 2, "no new tag")
	assert.Same(t, work, refs[0].Tag)
	assert.Equal(t, 2, refs[0].Position)
}

func TestReconcileNewTagKeepsIncomingTimestampAndSidebarState(t *testing.T) {
	s := model.NewGlobalUserSettings()
	p := model.NewProject("p")
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	refs := Reconcile(nil, s, p, []Descriptor{{Title: "Trip", ColorIdentifier: 4, Timestamp: at, IsExpandedInSidebar: true}})
	require.Len(t, refs, 1)
	assert.True(t, refs[0].Tag.Timestamp.Equal(at))
	assert.True(t, refs[0].Tag.IsExpandedInSidebar)

	// Without an incoming timestamp the tag is stamped now.
	refs = Reconcile(nil, s, p, []Descriptor{{Title: "Fresh", ColorIdentifier: 1}})
	require.Len(t, refs, 1)
	assert.False(t, refs[0].Tag.Timestamp.IsZero())
}

func TestReconcileIsExactMatch(t *testing.T) {
	s := model.NewGlobalUserSettings()
	Create(nil, s, "Work", 3)
	p := model.NewProject("p")

	Reconcile(nil, s, p, []Descriptor{
		{Title: "work", ColorIdentifier: 3},
		{Title: "Work", ColorIdentifier: 4},
	})
	assert.Len(t, s.TagCollection, 3)
	assert.Len(t, p.Tags, 2)
}

func TestReconcileNeverDuplicates(t *testing.T) {
	s := model.NewGlobalUserSettings()
	p := model.NewProject("p")
	in := []Descriptor{
		{Title: "A", ColorIdentifier: 1},
		{Title: "B", ColorIdentifier: 2},
		{Title: "A", ColorIdentifier: 1},
	}
	Reconcile(nil, s, p, in)
	Reconcile(nil, s, p, in)

	assert.Len(t, s.TagCollection, 2)
	assert.Len(t, p.Tags, 2)
	type identity struct {
		title string
		color int
	}
	seen := map[identity]bool{}
	for _, tg := range s.TagCollection {
		key := identity{tg.Title, tg.ColorIdentifier}
		assert.False(t, seen[key])
		seen[key] = true
	}
	refs := map[uuid.UUID]bool{}
	for _, r := range p.Tags {
		assert.False(t, refs[r.TagID])
		refs[r.TagID] = true
	}
}

func TestAttachRefusesSecondReference(t *testing.T) {
	s := model.NewGlobalUserSettings()
	tg := Create(nil, s, "", 0)
	assert.Equal(t, "new Tag", tg.Title)
	assert.Equal(t, 1, tg.ColorIdentifier)
	assert.True(t, tg.IsExpandedInSidebar)

	p := model.NewProject("p")
	_, err := Attach(nil, p, tg)
	require.NoError(t, err)
	_, err = Attach(nil, p, tg)
	assert.ErrorIs(t, err, ErrAlreadyAttached)
}

func TestSafelyDeleteRemovesReferencesEverywhere(t *testing.T) {
	s := model.NewGlobalUserSettings()
	doomed := Create(nil, s, "Old", 1)
	keep := Create(nil, s, "Keep", 2)
	p1 := model.NewProject("one")
	p2 := model.NewProject("two")
	for _, p := range []*model.Project{p1, p2} {
		_, _ = Attach(nil, p, doomed)
		_, _ = Attach(nil, p, keep)
	}

	h := &recHooks{}
	n := SafelyDelete(h, []*model.Project{p1, p2}, s, doomed)
	assert.Equal(t, 2, n)
	for _, p := range []*model.Project{p1, p2} {
		require.Len(t, p.Tags, 1)
		assert.Same(t, keep, p.Tags[0].Tag)
		assert.Equal(t, 1, p.Tags[0].Position)
	}
	assert.Equal(t, []*model.Tag{keep}, s.TagCollection)
	require.Len(t, h.discarded, 3)
	assert.Equal(t, doomed, h.discarded[2])
}

func TestDetach(t *testing.T) {
	s := model.NewGlobalUserSettings()
	tg := Create(nil, s, "x", 1)
	p := model.NewProject("p")
	_, _ = Attach(nil, p, tg)
	assert.True(t, Detach(nil, p, tg))
	assert.False(t, Detach(nil, p, tg))
	assert.Len(t, s.TagCollection, 1)
}
