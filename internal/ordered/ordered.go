package ordered

import (
	"sort"

	"github.com/google/uuid"
)

// Positioned is an entity that lives in exactly one sibling collection and carries a
// 1-based position within it. Identity is the id, never the position.
type Positioned interface {
	EntityID() uuid.UUID
	Pos() int
	SetPos(int)
}

// Hooks receives the side effects of structural mutations.
//
// Changed is called after every reindex (the store debounces it into one save).
// Discard is called with an entity that left its collection for good and must be
// deleted from the store.
type Hooks interface {
	Changed()
	Discard(entity any)
}

type nopHooks struct{}

func (nopHooks) Changed()    {}
func (nopHooks) Discard(any) {}

// Nop ignores all side effects. Useful for building detached subtrees.
var Nop Hooks = nopHooks{}

func hooksOrNop(h Hooks) Hooks {
	if h == nil {
		return Nop
	}
	return h
}

// Reindex sorts xs by position (stable: ties keep their current relative order) and
// reassigns positions 1..N. The slice itself ends up in position order.
func Reindex[T Positioned](h Hooks, xs []T) {
	sort.SliceStable(xs, func(i, j int) bool { return xs[i].Pos() < xs[j].Pos() })
	for i, x := range xs {
		x.SetPos(i + 1)
	}
	hooksOrNop(h).Changed()
}

// Insert adds e to the collection at the slot currently stored in e's position.
//
// Every existing member's position is doubled to open integer gaps, e is placed at
// 2*slot-1 (strictly before the member that held slot), and the collection is
// reindexed. Slots below 1 land first, slots past the end land last.
//
// Inserting an entity that is already a member is treated as a move to that slot.
func Insert[T Positioned](h Hooks, xs *[]T, e T) {
	if i := IndexOf(*xs, e.EntityID()); i >= 0 {
		Move(h, *xs, (*xs)[i], e.Pos())
		return
	}
	for _, x := range *xs {
		x.SetPos(x.Pos() * 2)
	}
	e.SetPos(e.Pos()*2 - 1)
	*xs = append(*xs, e)
	Reindex(h, *xs)
}

// InsertAt sets e's position to slot and inserts it.
func InsertAt[T Positioned](h Hooks, xs *[]T, e T, slot int) {
	e.SetPos(slot)
	Insert(h, xs, e)
}

// Append inserts e after the last member.
func Append[T Positioned](h Hooks, xs *[]T, e T) {
	InsertAt(h, xs, e, len(*xs)+1)
}

// Remove drops the member with e's identity and reindexes the rest.
//
// When fromStore is true the removed entity is handed to Hooks.Discard. Re-parenting
// passes false: the entity keeps living under its new owner.
// Removing a non-member is a no-op and returns false.
func Remove[T Positioned](h Hooks, xs *[]T, e T, fromStore bool) bool {
	id := e.EntityID()
	idx := IndexOf(*xs, id)
	if idx < 0 {
		return false
	}
	removed := (*xs)[idx]
	out := make([]T, 0, len(*xs)-1)
	out = append(out, (*xs)[:idx]...)
	out = append(out, (*xs)[idx+1:]...)
	*xs = out
	Reindex(h, *xs)
	if fromStore {
		hooksOrNop(h).Discard(removed)
	}
	return true
}

// Move relocates a member so that it is dropped in front of the member currently at
// slot to (len+1 means "after the last one"). Moving onto its own slot or the slot
// right after it leaves the order unchanged.
// Moving a non-member is a no-op and returns false.
func Move[T Positioned](h Hooks, xs []T, e T, to int) bool {
	idx := IndexOf(xs, e.EntityID())
	if idx < 0 {
		return false
	}
	for _, x := range xs {
		x.SetPos(x.Pos() * 2)
	}
	xs[idx].SetPos(to*2 - 1)
	Reindex(h, xs)
	return true
}

// IndexOf returns the slice index of the member with id, or -1.
func IndexOf[T Positioned](xs []T, id uuid.UUID) int {
	for i, x := range xs {
		if x.EntityID() == id {
			return i
		}
	}
	return -1
}

// Contains reports whether a member with id exists.
func Contains[T Positioned](xs []T, id uuid.UUID) bool {
	return IndexOf(xs, id) >= 0
}

// At returns the member whose position equals pos.
func At[T Positioned](xs []T, pos int) (T, bool) {
	for _, x := range xs {
		if x.Pos() == pos {
			return x, true
		}
	}
	var zero T
	return zero, false
}

// Last returns the member with the highest position.
func Last[T Positioned](xs []T) (T, bool) {
	var best T
	found := false
	for _, x := range xs {
		if !found || x.Pos() > best.Pos() {
			best = x
			found = true
		}
	}
	return best, found
}

// Sorted returns a copy of xs in position order without touching positions.
func Sorted[T Positioned](xs []T) []T {
	out := append([]T(nil), xs...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pos() < out[j].Pos() })
	return out
}

// Dense reports whether the positions of xs are exactly {1..N}.
func Dense[T Positioned](xs []T) bool {
	seen := make([]bool, len(xs)+1)
	for _, x := range xs {
		p := x.Pos()
		if p < 1 || p > len(xs) || seen[p] {
			return false
		}
		seen[p] = true
	}
	return true
}
