package store

import (
	"testing"

	"ideas-cli/internal/model"
	"ideas-cli/internal/ordered"
)

func TestDoctor_ReportsWithoutRepair(t *testing.T) {
	p := model.PresetProject()
	p.Buckets[0].Ideas[1].Position = 5
	dangling := model.NewTagReference(model.NewTag("gone", 1), 1)
	p.Tags = []*model.TagReference{dangling}

	rep := Doctor(ordered.Nop, []*model.Project{p}, nil, false)
	if rep.Count(CodePositionsNotDense) != 1 || rep.Count(CodeDanglingTagReference) != 1 {
		t.Fatalf("unexpected report: %+v", rep.Issues)
	}
	if !rep.HasErrors() {
		t.Fatalf("expected unrepaired errors")
	}
	if p.Buckets[0].Ideas[1].Position != 5 || len(p.Tags) != 1 {
		t.Fatalf("graph changed without repair")
	}
}

func TestDoctor_Repairs(t *testing.T) {
	p := model.PresetProject()
	tg := model.NewTag("Work", 3)
	twin := model.NewTag("Work", 3)
	p.Tags = []*model.TagReference{model.NewTagReference(tg, 1), model.NewTagReference(tg, 2)}
	idea := p.Buckets[0].Ideas[0]
	idea.Extensions = []*model.IdeaExtension{model.NewExtensionWith("empty", &model.Checklist{}, 1)}

	rep := Doctor(ordered.Nop, []*model.Project{p}, []*model.Tag{tg, twin}, true)
	if rep.HasErrors() {
		t.Fatalf("expected everything repaired: %+v", rep.Issues)
	}
	if len(p.Tags) != 1 || p.Tags[0].Tag != tg {
		t.Fatalf("expected duplicate reference removed: %+v", p.Tags)
	}
	if n := len(idea.Extensions[0].Checklist().Items); n != 1 {
		t.Fatalf("expected reseeded checklist, got %d items", n)
	}
	if rep.Count(CodeDuplicateTagIdentity) != 1 {
		t.Fatalf("expected duplicate identity warning: %+v", rep.Issues)
	}
}
