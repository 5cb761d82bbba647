package mutate

import (
	"fmt"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

type Direction int

const (
	Left Direction = iota
	Right
)

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	default:
		return 0, fmt.Errorf("invalid direction %q (expected left|right)", s)
	}
}

// MoveBucket swaps the bucket at pos with its neighbour in direction d.
// Moving the first bucket left or the last bucket right does nothing.
func MoveBucket(h ordered.Hooks, p *model.Project, pos int, d Direction) bool {
	other := pos + 1
	if d == Left {
		other = pos - 1
	}
	if other < 1 || other > len(p.Buckets) {
		return false
	}
	a, b := p.BucketAt(pos), p.BucketAt(other)
	if a == nil || b == nil {
		return false
	}
	a.Position, b.Position = other, pos
	ordered.Reindex(h, p.Buckets)
	return true
}

// AddBucket inserts a new bucket at slot pos (0 appends).
func AddBucket(h ordered.Hooks, p *model.Project, title string, pos int) *model.Bucket {
	if strings.TrimSpace(title) == "" {
		title = model.DefaultBucketTitle
	}
	b := model.NewBucket(title, slotOrEnd(pos, len(p.Buckets)))
	ordered.Insert(h, &p.Buckets, b)
	return b
}

// RemoveBucket deletes b with all of its ideas.
func RemoveBucket(h ordered.Hooks, p *model.Project, b *model.Bucket) error {
	if !ordered.Remove(h, &p.Buckets, b, true) {
		return NotFoundError{Kind: model.KindBucket, ID: b.ID.String()}
	}
	return nil
}
