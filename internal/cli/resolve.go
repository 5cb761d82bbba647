package cli

import (
	"fmt"
	"strings"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/store"

	"github.com/google/uuid"
)

// Shorter id prefixes are only matched as titles.
const minIDPrefix = 4

// find resolves ref to a live entity of kind k. ref may be a full id, a unique id
// prefix or an exact (case-insensitive) title.
func find(c *store.Context, k model.Kind, ref string) (any, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("missing %s", k)
	}
	if id, err := uuid.Parse(ref); err == nil {
		if e, _, ok := c.Lookup(id); ok && model.KindOf(e) == k {
			return e, nil
		}
		return nil, mutate.NotFoundError{Kind: k, ID: ref}
	}

	all := c.FetchAll(k)
	var matches []any
	if lower := strings.ToLower(ref); len(lower) >= minIDPrefix {
		for _, e := range all {
			if strings.HasPrefix(model.IDOf(e).String(), lower) {
				matches = append(matches, e)
			}
		}
	}
	if len(matches) == 0 {
		for _, e := range all {
			if strings.EqualFold(strings.TrimSpace(titleOf(e)), ref) {
				matches = append(matches, e)
			}
		}
	}
	switch len(matches) {
	case 0:
		return nil, mutate.NotFoundError{Kind: k, ID: ref}
	case 1:
		return matches[0], nil
	default:
		return nil, ambiguousError{kind: k, ref: ref, matches: len(matches)}
	}
}

func titleOf(e any) string {
	switch x := e.(type) {
	case *model.Project:
		return x.Title
	case *model.Bucket:
		return x.Title
	case *model.Idea:
		return x.Title
	case *model.IdeaExtension:
		return x.Title
	case *model.ChecklistItem:
		return x.Title
	case *model.ImageItem:
		return x.Title
	case *model.Tag:
		return x.Title
	}
	return ""
}

func findProject(c *store.Context, ref string) (*model.Project, error) {
	e, err := find(c, model.KindProject, ref)
	if err != nil {
		return nil, err
	}
	return e.(*model.Project), nil
}

// currentProject resolves ref, falling back to the last opened project and then to
// the only project.
func currentProject(c *store.Context, ref string) (*model.Project, error) {
	if strings.TrimSpace(ref) != "" {
		return findProject(c, ref)
	}
	if id := c.Settings().LastOpenedProject; id != uuid.Nil {
		if e, _, ok := c.Lookup(id); ok {
			if p, ok := e.(*model.Project); ok {
				return p, nil
			}
		}
	}
	if ps := c.Projects(); len(ps) == 1 {
		return ps[0], nil
	}
	return nil, errNoProject
}

func findBucket(c *store.Context, ref string) (*model.Bucket, *model.Project, error) {
	e, err := find(c, model.KindBucket, ref)
	if err != nil {
		return nil, nil, err
	}
	b := e.(*model.Bucket)
	_, p, _ := c.Lookup(b.ID)
	return b, p, nil
}

// bucketIn resolves a bucket of p by position ("2"), id or title. Empty ref picks the
// first bucket.
func bucketIn(c *store.Context, p *model.Project, ref string) (*model.Bucket, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		if b := p.BucketAt(1); b != nil {
			return b, nil
		}
		return nil, mutate.NotFoundError{Kind: model.KindBucket, ID: "1"}
	}
	var pos int
	if _, err := fmt.Sscanf(ref, "%d", &pos); err == nil && fmt.Sprint(pos) == ref {
		if b := p.BucketAt(pos); b != nil {
			return b, nil
		}
		return nil, mutate.NotFoundError{Kind: model.KindBucket, ID: ref}
	}
	b, owner, err := findBucket(c, ref)
	if err != nil {
		return nil, err
	}
	if owner != p {
		return nil, fmt.Errorf("bucket %s belongs to project %q", ref, owner.Title)
	}
	return b, nil
}

func findIdea(c *store.Context, ref string) (*model.Idea, *model.Bucket, *model.Project, error) {
	e, err := find(c, model.KindIdea, ref)
	if err != nil {
		return nil, nil, nil, err
	}
	idea := e.(*model.Idea)
	_, p, _ := c.Lookup(idea.ID)
	return idea, p.OwnerOf(idea), p, nil
}

func findExtension(c *store.Context, ref string) (*model.IdeaExtension, *model.Idea, error) {
	e, err := find(c, model.KindExtension, ref)
	if err != nil {
		return nil, nil, err
	}
	ext := e.(*model.IdeaExtension)
	parent, _ := c.Parent(ext.ID)
	idea, _ := parent.(*model.Idea)
	return ext, idea, nil
}

func findChecklist(c *store.Context, ref string) (*model.Checklist, error) {
	ext, _, err := findExtension(c, ref)
	if err != nil {
		return nil, err
	}
	cl := ext.Checklist()
	if cl == nil {
		return nil, errNotChecklist
	}
	return cl, nil
}

func findGallery(c *store.Context, ref string) (*model.ImageCatalogue, error) {
	ext, _, err := findExtension(c, ref)
	if err != nil {
		return nil, err
	}
	g := ext.ImageCatalogue()
	if g == nil {
		return nil, errNotImageGallery
	}
	return g, nil
}

func findChecklistItem(c *store.Context, ref string) (*model.ChecklistItem, *model.Checklist, error) {
	e, err := find(c, model.KindChecklistItem, ref)
	if err != nil {
		return nil, nil, err
	}
	it := e.(*model.ChecklistItem)
	parent, _ := c.Parent(it.ID)
	cl, _ := parent.(*model.Checklist)
	return it, cl, nil
}

func findImage(c *store.Context, ref string) (*model.ImageItem, *model.ImageCatalogue, error) {
	e, err := find(c, model.KindImageItem, ref)
	if err != nil {
		return nil, nil, err
	}
	it := e.(*model.ImageItem)
	parent, _ := c.Parent(it.ID)
	g, _ := parent.(*model.ImageCatalogue)
	return it, g, nil
}

func findTag(c *store.Context, ref string) (*model.Tag, error) {
	e, err := find(c, model.KindTag, ref)
	if err != nil {
		return nil, err
	}
	return e.(*model.Tag), nil
}

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// resolveBucket looks ref up in the current (or --project) project first and then
// across all projects.
func resolveBucket(c *store.Context, project, ref string) (*model.Bucket, *model.Project, error) {
	p, perr := currentProject(c, project)
	if perr == nil {
		if b, err := bucketIn(c, p, ref); err == nil {
			return b, p, nil
		} else if project != "" {
			return nil, nil, err
		}
	}
	if strings.TrimSpace(ref) == "" {
		return nil, nil, perr
	}
	return findBucket(c, ref)
}
