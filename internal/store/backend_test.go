package store

import (
	"context"
	"testing"

	"ideas-cli/internal/model"
	"ideas-cli/internal/mutate"
	"ideas-cli/internal/tags"
)

// populated returns a context holding one project with every entity kind.
func populated(t *testing.T) *Context {
	t.Helper()
	c := openMemory(t, NewMemoryBackend(), nil)
	p := model.PresetProject()
	if err := c.Insert(p); err != nil {
		t.Fatalf("insert: %v", err)
	}
	idea := p.Buckets[0].Ideas[1]
	cl := mutate.AddExtension(c, idea, model.ExtensionChecklist)
	mutate.EditChecklistItem(c, cl.Checklist(), cl.Checklist().Items[0], "water")
	mutate.SetChecked(c, cl.Checklist(), mutate.AddChecklistItem(c, cl.Checklist(), "weed"), true)
	img := mutate.AddExtension(c, idea, model.ExtensionImageCatalogue)
	mutate.AddImage(c, img.ImageCatalogue(), "bed", []byte{0, 1, 2, 254, 255})
	tg := tags.Create(c, c.Settings(), "Work", 3)
	if _, err := tags.Attach(c, p, tg); err != nil {
		t.Fatalf("attach: %v", err)
	}
	p.Settings.UseCheckOffIdeaButton = true
	c.Settings().LastOpenedProject = p.ID
	return c
}

func assertSameGraph(t *testing.T, want, got *Snapshot) {
	t.Helper()
	if len(got.Projects) != len(want.Projects) || len(got.Tags) != len(want.Tags) || len(got.Settings) != 1 {
		t.Fatalf("unexpected shape: projects=%d tags=%d settings=%d", len(got.Projects), len(got.Tags), len(got.Settings))
	}
	wp, gp := want.Projects[0], got.Projects[0]
	if gp.ID != wp.ID || gp.Title != wp.Title || !gp.Settings.UseCheckOffIdeaButton {
		t.Fatalf("project mismatch: %+v", gp)
	}
	for bi, wb := range wp.Buckets {
		gb := gp.Buckets[bi]
		if gb.ID != wb.ID || gb.Position != wb.Position || len(gb.Ideas) != len(wb.Ideas) {
			t.Fatalf("bucket mismatch at %d", bi)
		}
		for ii, wi := range wb.Ideas {
			gi := gb.Ideas[ii]
			if gi.Title != wi.Title || gi.Position != wi.Position || len(gi.Extensions) != len(wi.Extensions) {
				t.Fatalf("idea mismatch %q", wi.Title)
			}
			for ei, we := range wi.Extensions {
				ge := gi.Extensions[ei]
				if ge.Type() != we.Type() || ge.Position != we.Position {
					t.Fatalf("extension mismatch %q", we.Title)
				}
			}
		}
	}
	ext := gp.Buckets[0].Ideas[1].Extensions
	items := ext[0].Checklist().Items
	if items[0].Title != " water" || !items[1].Checked || items[1].Title != " weed" {
		t.Fatalf("checklist mismatch: %+v %+v", items[0], items[1])
	}
	if got := ext[1].ImageCatalogue().Items[0].Image; string(got) != string([]byte{0, 1, 2, 254, 255}) {
		t.Fatalf("image bytes mismatch: %v", got)
	}
	s := got.Settings[0]
	if len(s.TagCollection) != 1 || s.TagCollection[0].Title != "Work" || s.LastOpenedProject != wp.ID {
		t.Fatalf("settings mismatch: %+v", s)
	}
	if len(gp.Tags) != 1 || gp.Tags[0].TagID != s.TagCollection[0].ID {
		t.Fatalf("tag reference mismatch: %+v", gp.Tags)
	}
}

func TestSQLiteBackend_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := populated(t)
	want := src.Snapshot()

	path := Paths{Dir: t.TempDir()}.SQLitePath()
	b, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("save sqlite: %v", err)
	}
	// Saving twice replaces rather than appends.
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("save sqlite again: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b2, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer b2.Close()
	got, err := b2.Load(ctx)
	if err != nil {
		t.Fatalf("load sqlite: %v", err)
	}
	assertSameGraph(t, want, got)
}

func TestSQLiteBackend_RejectsNewerVersion(t *testing.T) {
	ctx := context.Background()
	b, err := OpenSQLite(ctx, Paths{Dir: t.TempDir()}.SQLitePath())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer b.Close()
	if _, err := b.db.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES('version', '99')`); err != nil {
		t.Fatalf("write meta: %v", err)
	}
	if _, err := b.Load(ctx); err == nil {
		t.Fatalf("expected error for newer schema")
	}
}

func TestBadgerBackend_SaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	src := populated(t)
	want := src.Snapshot()

	dir := Paths{Dir: t.TempDir()}.BadgerDir()
	b, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("save badger: %v", err)
	}
	if err := b.Save(ctx, want); err != nil {
		t.Fatalf("save badger again: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	b2, err := OpenBadger(dir)
	if err != nil {
		t.Fatalf("reopen badger: %v", err)
	}
	defer b2.Close()
	got, err := b2.Load(ctx)
	if err != nil {
		t.Fatalf("load badger: %v", err)
	}
	assertSameGraph(t, want, got)
}

func TestOpenBackend_ContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, kind := range []BackendKind{BackendSQLite, BackendBadger} {
		t.Run(string(kind), func(t *testing.T) {
			dir := t.TempDir()
			b, err := OpenBackend(ctx, kind, dir)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			c := NewContext(Options{})
			if err := c.Open(ctx, b); err != nil {
				t.Fatalf("open context: %v", err)
			}
			p := model.NewProject("kept")
			if err := c.Insert(p); err != nil {
				t.Fatalf("insert: %v", err)
			}
			if err := c.Close(ctx); err != nil {
				t.Fatalf("close: %v", err)
			}

			b2, err := OpenBackend(ctx, kind, dir)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			c2 := NewContext(Options{})
			if err := c2.Open(ctx, b2); err != nil {
				t.Fatalf("open context: %v", err)
			}
			defer c2.Close(ctx)
			if ps := c2.Projects(); len(ps) != 1 || ps[0].ID != p.ID {
				t.Fatalf("unexpected projects: %+v", ps)
			}
		})
	}
}

func TestParseBackendKind(t *testing.T) {
	for in, want := range map[string]BackendKind{"": BackendSQLite, "SQLite": BackendSQLite, "badger": BackendBadger, "memory": BackendMemory} {
		got, err := ParseBackendKind(in)
		if err != nil || got != want {
			t.Fatalf("ParseBackendKind(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseBackendKind("postgres"); err == nil {
		t.Fatalf("expected error")
	}
}
