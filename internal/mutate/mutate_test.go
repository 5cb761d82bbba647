package mutate

import (
	"errors"
	"testing"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recHooks struct {
	changed   int
	discarded []any
}

func (r *recHooks) Changed()      { r.changed++ }
func (r *recHooks) Discard(e any) { r.discarded = append(r.discarded, e) }

func ideaTitles(b *model.Bucket) []string {
	var out []string
	for _, i := range ordered.Sorted(b.Ideas) {
		out = append(out, i.Title)
	}
	return out
}

func twoBuckets() (*model.Project, *model.Bucket, *model.Bucket) {
	p := model.NewEmptyProject("p")
	b1 := model.NewBucket("one", 1)
	b2 := model.NewBucket("two", 2)
	p.Buckets = []*model.Bucket{b1, b2}
	return p, b1, b2
}

// ownerCount counts how many buckets of p hold idea.
func ownerCount(p *model.Project, idea *model.Idea) int {
	n := 0
	for _, b := range p.Buckets {
		if ordered.Contains(b.Ideas, idea.ID) {
			n++
		}
	}
	return n
}

func TestMoveIdea_AcrossBuckets(t *testing.T) {
	p, b1, b2 := twoBuckets()
	h := &recHooks{}
	a := AddIdea(h, b1, "A", "", 0)
	AddIdea(h, b2, "Z", "", 0)

	require.True(t, MoveIdea(h, p, a, b2, 1))
	assert.Empty(t, b1.Ideas)
	assert.Equal(t, []string{"A", "Z"}, ideaTitles(b2))
	assert.True(t, ordered.Dense(b2.Ideas))
	assert.Equal(t, 1, ownerCount(p, a))
	assert.Zero(t, len(h.discarded), "re-parenting must not delete")
}

func TestMoveIdea_WithinBucketDelegatesToMove(t *testing.T) {
	p, b1, _ := twoBuckets()
	h := &recHooks{}
	AddIdea(h, b1, "A", "", 0)
	AddIdea(h, b1, "B", "", 0)
	c := AddIdea(h, b1, "C", "", 0)

	require.True(t, MoveIdea(h, p, c, b1, 1))
	assert.Equal(t, []string{"C", "A", "B"}, ideaTitles(b1))
}

func TestMoveIdea_UnknownSourceIsNoop(t *testing.T) {
	p, _, b2 := twoBuckets()
	stray := model.NewIdea("stray", "", 1)
	assert.False(t, MoveIdea(nil, p, stray, b2, 1))
	assert.Empty(t, b2.Ideas)
}

func TestMoveIdea_TargetInOtherProjectIsNoop(t *testing.T) {
	p, b1, _ := twoBuckets()
	q, qb, _ := twoBuckets()
	h := &recHooks{}
	a := AddIdea(h, b1, "a", "", 0)

	assert.False(t, MoveIdea(h, p, a, qb, 1))
	assert.Equal(t, []string{"a"}, ideaTitles(b1))
	assert.Empty(t, qb.Ideas)
	assert.Zero(t, q.IdeaCount())
}

func TestMoveIdea_ExclusiveMembershipUnderRandomMoves(t *testing.T) {
	p, b1, b2 := twoBuckets()
	b3 := model.NewBucket("three", 3)
	p.Buckets = append(p.Buckets, b3)
	var ideas []*model.Idea
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		ideas = append(ideas, AddIdea(nil, b1, title, "", 0))
	}
	targets := []*model.Bucket{b2, b3, b1, b3, b2, b1}
	for step := 0; step < 60; step++ {
		idea := ideas[step%len(ideas)]
		to := targets[step%len(targets)]
		MoveIdea(nil, p, idea, to, step%4+1)
		for _, i := range ideas {
			require.Equal(t, 1, ownerCount(p, i), "step %d idea %s", step, i.Title)
		}
		for _, b := range p.Buckets {
			require.True(t, ordered.Dense(b.Ideas))
		}
	}
	assert.Equal(t, 5, p.IdeaCount())
}

func TestCheckOffIdea(t *testing.T) {
	p, b1, b2 := twoBuckets()
	a := AddIdea(nil, b1, "A", "", 0)
	AddIdea(nil, b2, "Z", "", 0)

	require.True(t, CheckOffIdea(nil, p, a))
	assert.True(t, a.Minimized)
	assert.Equal(t, []string{"Z", "A"}, ideaTitles(b2))
}

func TestCheckOffAll(t *testing.T) {
	p, b1, b2 := twoBuckets()
	AddIdea(nil, b1, "A", "", 0)
	AddIdea(nil, b1, "B", "", 0)
	assert.Equal(t, 2, CheckOffAll(nil, p, b1))
	assert.Empty(t, b1.Ideas)
	assert.Equal(t, []string{"A", "B"}, ideaTitles(b2))
}

func TestSetMinimizedAll(t *testing.T) {
	_, b1, _ := twoBuckets()
	AddIdea(nil, b1, "A", "", 0)
	AddIdea(nil, b1, "B", "", 0)
	SetMinimizedAll(nil, b1, true)
	for _, i := range b1.Ideas {
		assert.True(t, i.Minimized)
	}
}

func TestMoveBucket(t *testing.T) {
	p, b1, b2 := twoBuckets()
	assert.False(t, MoveBucket(nil, p, 1, Left))
	assert.False(t, MoveBucket(nil, p, 2, Right))
	require.True(t, MoveBucket(nil, p, 1, Right))
	assert.Equal(t, 2, b1.Position)
	assert.Equal(t, 1, b2.Position)
	assert.Same(t, b2, p.Buckets[0])
}

func TestRemoveBucketDiscards(t *testing.T) {
	p, b1, _ := twoBuckets()
	h := &recHooks{}
	require.NoError(t, RemoveBucket(h, p, b1))
	assert.Len(t, p.Buckets, 1)
	assert.Equal(t, 1, p.Buckets[0].Position)
	assert.Equal(t, []any{b1}, h.discarded)

	var nf NotFoundError
	assert.True(t, errors.As(RemoveBucket(h, p, b1), &nf))
	assert.Equal(t, model.KindBucket, nf.Kind)
}

func TestDuplicateIdeaLandsBelowSource(t *testing.T) {
	_, b1, _ := twoBuckets()
	a := AddIdea(nil, b1, "A", "", 0)
	AddIdea(nil, b1, "B", "", 0)
	cp := DuplicateIdea(nil, b1, a)
	assert.NotEqual(t, a.ID, cp.ID)
	assert.Equal(t, []string{"A", "A", "B"}, ideaTitles(b1))
	assert.Equal(t, 2, cp.Position)
}

func TestEditChecklistItem_ClearingLastItemReseeds(t *testing.T) {
	c := model.NewChecklist()
	only := c.Items[0]
	h := &recHooks{}

	_, removed := EditChecklistItem(h, c, only, "")
	assert.True(t, removed)
	require.Len(t, c.Items, 1)
	assert.NotEqual(t, only.ID, c.Items[0].ID)
	assert.Equal(t, " ", c.Items[0].Title)
	assert.Equal(t, []any{only}, h.discarded)
}

func TestEditChecklistItem_KeepsLeadingSpace(t *testing.T) {
	c := model.NewChecklist()
	title, removed := EditChecklistItem(nil, c, c.Items[0], "buy seeds")
	assert.False(t, removed)
	assert.Equal(t, " buy seeds", title)
	title, _ = EditChecklistItem(nil, c, c.Items[0], " water")
	assert.Equal(t, " water", title)
}

func TestSubmitChecklistItemInheritsChecked(t *testing.T) {
	c := model.NewChecklist()
	first := c.Items[0]
	AddChecklistItem(nil, c, "last")
	first.Checked = true
	next := SubmitChecklistItem(nil, c, first)
	assert.True(t, next.Checked)
	assert.Equal(t, 2, next.Position)
	assert.Len(t, c.Items, 3)
}

func TestSetCheckedMovesToEnd(t *testing.T) {
	c := model.NewChecklist()
	first := c.Items[0]
	AddChecklistItem(nil, c, "b")
	AddChecklistItem(nil, c, "c")
	SetChecked(nil, c, first, true)
	assert.Equal(t, 3, first.Position)
	assert.True(t, ordered.Dense(c.Items))
}

func TestMoveChecklistItemAcrossLists(t *testing.T) {
	src := model.NewChecklist()
	it := src.Items[0]
	it.Title = " move me"
	dst := model.NewChecklist()

	cp := MoveChecklistItem(nil, src, dst, it, 1)
	assert.Equal(t, " move me", cp.Title)
	require.Len(t, dst.Items, 2)
	assert.Equal(t, 1, cp.Position)
	require.Len(t, src.Items, 1, "source is re-seeded")
	assert.Equal(t, " ", src.Items[0].Title)
}

func TestChecklistNeverEmptyUnderRemovals(t *testing.T) {
	c := model.NewChecklist()
	for range 4 {
		AddChecklistItem(nil, c, "x")
	}
	for range 10 {
		RemoveChecklistItem(nil, c, c.Items[0])
		require.NotEmpty(t, c.Items)
		require.True(t, ordered.Dense(c.Items))
	}
}

func TestExtensionsAndImages(t *testing.T) {
	idea := model.NewIdea("i", "", 1)
	h := &recHooks{}
	cl := AddExtension(h, idea, model.ExtensionChecklist)
	img := AddExtension(h, idea, model.ExtensionImageCatalogue)
	assert.Equal(t, 2, img.Position)

	require.True(t, MoveExtension(h, idea, img, 1))
	assert.Equal(t, 1, img.Position)
	assert.Equal(t, 2, cl.Position)

	cat := img.ImageCatalogue()
	a := AddImage(h, cat, "a", []byte{1})
	b := AddImage(h, cat, "b", []byte{2})
	MoveImage(h, cat, nil, b, 1)
	assert.Equal(t, 1, b.Position)
	require.NoError(t, RemoveImage(h, cat, a))
	assert.Len(t, cat.Items, 1)

	other := model.NewImageCatalogue()
	moved := MoveImage(h, cat, other, b, 1)
	assert.Empty(t, cat.Items)
	assert.Equal(t, []byte{2}, moved.Image)

	require.NoError(t, RemoveExtension(h, idea, cl))
	assert.Len(t, idea.Extensions, 1)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("Left")
	require.NoError(t, err)
	assert.Equal(t, Left, d)
	_, err = ParseDirection("up")
	assert.Error(t, err)
}
