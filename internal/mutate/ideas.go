package mutate

import (
	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

// MoveIdea re-parents idea into bucket `to` at slot pos.
//
// Within one bucket this is a plain move. Across buckets the idea is first inserted
// into the target and only then removed from the source (without deleting it), so it
// always has an owner. An idea that no bucket of p holds, or a target bucket that
// belongs to another project, leaves both sides alone.
func MoveIdea(h ordered.Hooks, p *model.Project, idea *model.Idea, to *model.Bucket, pos int) bool {
	from := p.OwnerOf(idea)
	if from == nil || to == nil || !ordered.Contains(p.Buckets, to.ID) {
		return false
	}
	if from == to {
		return ordered.Move(h, from.Ideas, idea, pos)
	}
	ordered.InsertAt(h, &to.Ideas, idea, pos)
	ordered.Remove(h, &from.Ideas, idea, false)
	return true
}

// CheckOffIdea minimizes idea and moves it to the end of the last bucket.
func CheckOffIdea(h ordered.Hooks, p *model.Project, idea *model.Idea) bool {
	last := p.LastBucket()
	if last == nil {
		return false
	}
	idea.Minimized = true
	return MoveIdea(h, p, idea, last, len(last.Ideas)+1)
}

// CheckOffAll checks off every idea of b in position order.
func CheckOffAll(h ordered.Hooks, p *model.Project, b *model.Bucket) int {
	n := 0
	for _, idea := range ordered.Sorted(b.Ideas) {
		if CheckOffIdea(h, p, idea) {
			n++
		}
	}
	return n
}

// SetMinimizedAll sets the minimized flag on every idea of b.
func SetMinimizedAll(h ordered.Hooks, b *model.Bucket, v bool) {
	for _, idea := range b.Ideas {
		idea.Minimized = v
	}
	hooksChanged(h)
}

// AddIdea inserts a new idea into b at slot pos (0 appends).
func AddIdea(h ordered.Hooks, b *model.Bucket, title, desc string, pos int) *model.Idea {
	idea := model.NewIdea(title, desc, slotOrEnd(pos, len(b.Ideas)))
	ordered.Insert(h, &b.Ideas, idea)
	return idea
}

// DuplicateIdea inserts a deep copy of idea right after it.
func DuplicateIdea(h ordered.Hooks, b *model.Bucket, idea *model.Idea) *model.Idea {
	cp := model.CopyIdea(idea, idea.Position+1)
	ordered.Insert(h, &b.Ideas, cp)
	return cp
}

// RemoveIdea deletes idea and everything it owns.
func RemoveIdea(h ordered.Hooks, p *model.Project, idea *model.Idea) error {
	b := p.OwnerOf(idea)
	if b == nil {
		return NotFoundError{Kind: model.KindIdea, ID: idea.ID.String()}
	}
	ordered.Remove(h, &b.Ideas, idea, true)
	return nil
}

func slotOrEnd(pos, n int) int {
	if pos <= 0 || pos > n+1 {
		return n + 1
	}
	return pos
}

func hooksChanged(h ordered.Hooks) {
	if h != nil {
		h.Changed()
	}
}
