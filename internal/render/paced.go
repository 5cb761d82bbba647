package render

import (
	"context"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

const DefaultBatchSize = 25

// Batch is a run of consecutive ideas from one bucket.
type Batch struct {
	Bucket *model.Bucket
	Ideas  []*model.Idea
	// First is set on the first batch of each bucket, including empty buckets.
	First bool
}

// Walk visits p's buckets and ideas in position order, at most size ideas per
// call to fn. The context is checked between batches.
func Walk(ctx context.Context, p *model.Project, size int, fn func(Batch) error) error {
	if size <= 0 {
		size = DefaultBatchSize
	}
	for _, b := range ordered.Sorted(p.Buckets) {
		ideas := ordered.Sorted(b.Ideas)
		if len(ideas) == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(Batch{Bucket: b, First: true}); err != nil {
				return err
			}
			continue
		}
		for start := 0; start < len(ideas); start += size {
			if err := ctx.Err(); err != nil {
				return err
			}
			end := min(start+size, len(ideas))
			if err := fn(Batch{Bucket: b, Ideas: ideas[start:end], First: start == 0}); err != nil {
				return err
			}
		}
	}
	return nil
}
