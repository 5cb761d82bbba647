package store

import (
	"fmt"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"

	"github.com/google/uuid"
)

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

const (
	CodeExtensionContentLoss = "extension_content_loss"
	CodePositionsNotDense    = "positions_not_dense"
	CodeDanglingTagReference = "dangling_tag_reference"
	CodeDuplicateTagRef      = "duplicate_tag_reference"
	CodeEmptyChecklist       = "empty_checklist"
	CodeDuplicateTagIdentity = "duplicate_tag_identity"
	CodeMissingSettings      = "missing_project_settings"
)

type DoctorIssue struct {
	Level      DoctorIssueLevel `json:"level"`
	Code       string           `json:"code"`
	Message    string           `json:"message"`
	EntityKind model.Kind       `json:"entityKind,omitempty"`
	EntityID   string           `json:"entityId,omitempty"`
	Title      string           `json:"title,omitempty"`
	Repaired   bool             `json:"repaired,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError && !it.Repaired {
			return true
		}
	}
	return false
}

// Count returns the number of issues with code.
func (r DoctorReport) Count(code string) int {
	n := 0
	for _, it := range r.Issues {
		if it.Code == code {
			n++
		}
	}
	return n
}

// Doctor checks the loaded graph. With repair set, every issue that has a safe fix
// is fixed in place and marked Repaired. Tag references are checked against registry.
func Doctor(h ordered.Hooks, projects []*model.Project, registry []*model.Tag, repair bool) DoctorReport {
	d := doctor{h: h, repair: repair, registry: map[uuid.UUID]*model.Tag{}}
	for _, t := range registry {
		d.registry[t.ID] = t
	}
	for _, p := range projects {
		d.project(p)
	}
	d.tagIdentities(registry)
	if d.issues == nil {
		d.issues = []DoctorIssue{}
	}
	return DoctorReport{Issues: d.issues}
}

type doctor struct {
	h        ordered.Hooks
	repair   bool
	registry map[uuid.UUID]*model.Tag
	issues   []DoctorIssue
}

func (d *doctor) add(level DoctorIssueLevel, code string, e any, title, msg string, repaired bool) {
	d.issues = append(d.issues, DoctorIssue{
		Level:      level,
		Code:       code,
		Message:    msg,
		EntityKind: model.KindOf(e),
		EntityID:   model.IDOf(e).String(),
		Title:      title,
		Repaired:   repaired,
	})
}

func (d *doctor) project(p *model.Project) {
	if p.Settings == nil {
		if d.repair {
			p.Settings = model.NewProjectSettings()
		}
		d.add(DoctorIssueLevelError, CodeMissingSettings, p, p.Title, "project has no settings", d.repair)
	}

	dense(d, p, p.Title, p.Buckets)
	d.tagRefs(p)
	for _, b := range p.Buckets {
		dense(d, b, b.Title, b.Ideas)
		for _, idea := range b.Ideas {
			dense(d, idea, idea.Title, idea.Extensions)
			for _, e := range idea.Extensions {
				d.extension(e)
			}
		}
	}
}

// extension repairs a missing payload. This always runs, repair flag or not: a
// missing payload is never a valid state.
func (d *doctor) extension(e *model.IdeaExtension) {
	if e.RepairContent() {
		d.add(DoctorIssueLevelError, CodeExtensionContentLoss, e, e.Title,
			fmt.Sprintf("Failure on Idea Extension \"%s\": content loss", e.Title), true)
	}
	switch c := e.Content.(type) {
	case *model.Checklist:
		if len(c.Items) == 0 {
			if d.repair {
				ordered.Insert(d.h, &c.Items, model.NewChecklistItem(model.BlankItemTitle, false, 1))
			}
			d.add(DoctorIssueLevelWarn, CodeEmptyChecklist, e, e.Title, "checklist has no items", d.repair)
		}
		dense(d, e, e.Title, c.Items)
	case *model.ImageCatalogue:
		dense(d, e, e.Title, c.Items)
	}
}

func (d *doctor) tagRefs(p *model.Project) {
	seen := map[uuid.UUID]bool{}
	for _, ref := range append([]*model.TagReference(nil), p.Tags...) {
		t := d.registry[ref.TagID]
		switch {
		case t == nil:
			if d.repair {
				ordered.Remove(d.h, &p.Tags, ref, true)
			}
			d.add(DoctorIssueLevelError, CodeDanglingTagReference, ref, p.Title,
				fmt.Sprintf("project %q references missing tag %s", p.Title, ref.TagID), d.repair)
		case seen[ref.TagID]:
			if d.repair {
				ordered.Remove(d.h, &p.Tags, ref, true)
			}
			d.add(DoctorIssueLevelError, CodeDuplicateTagRef, ref, p.Title,
				fmt.Sprintf("project %q references tag %q twice", p.Title, t.Title), d.repair)
		default:
			ref.Tag = t
			seen[ref.TagID] = true
		}
	}
	dense(d, p, p.Title, p.Tags)
}

// tagIdentities reports registry tags sharing (title, colour). They are left alone:
// merging would change what projects show.
func (d *doctor) tagIdentities(registry []*model.Tag) {
	type identity struct {
		title string
		color int
	}
	seen := map[identity]bool{}
	for _, t := range registry {
		k := identity{t.Title, t.ColorIdentifier}
		if seen[k] {
			d.add(DoctorIssueLevelWarn, CodeDuplicateTagIdentity, t, t.Title,
				fmt.Sprintf("more than one tag named %q with colour %d", t.Title, t.ColorIdentifier), false)
		}
		seen[k] = true
	}
}

func dense[T ordered.Positioned](d *doctor, owner any, title string, xs []T) {
	if ordered.Dense(xs) {
		return
	}
	if d.repair {
		ordered.Reindex(d.h, xs)
	}
	d.add(DoctorIssueLevelWarn, CodePositionsNotDense, owner, title,
		fmt.Sprintf("%s %q has %d children with gaps or duplicate positions", model.KindOf(owner), title, len(xs)), d.repair)
}
