package transfer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ideas-cli/internal/model"
	"ideas-cli/internal/notify"
	"ideas-cli/internal/store"
	"ideas-cli/internal/tags"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openContext(t *testing.T) *store.Context {
	t.Helper()
	c := store.NewContext(store.Options{})
	require.NoError(t, c.Open(context.Background(), store.NewMemoryBackend()))
	return c
}

func richProject(t *testing.T, c *store.Context) *model.Project {
	t.Helper()
	p := model.PresetProject()
	p.Settings.UseCheckOffIdeaButton = true
	p.Settings.ScrollViewBucketWidth = 420

	idea := p.Buckets[0].Ideas[1]
	idea.Desc = "**bold** plan"
	idea.Minimized = true

	cl := model.NewChecklist()
	cl.Items[0].Title = " first"
	cl.Items[0].Checked = true
	cl.Items = append(cl.Items, model.NewChecklistItem(" second", false, 2))
	gallery := model.NewImageCatalogue()
	gallery.Items = []*model.ImageItem{model.NewImageItem("pic", []byte{0x00, 0xff, 0x10, 0x80}, 1)}
	idea.Extensions = []*model.IdeaExtension{
		model.NewExtensionWith("Todo", cl, 1),
		model.NewExtensionWith("Shots", gallery, 2),
	}

	require.NoError(t, c.Insert(p))
	tags.Attach(c, p, tags.Create(c, c.Settings(), "Work", 3))
	tags.Attach(c, p, tags.Create(c, c.Settings(), "Home", 5))
	return p
}

func TestRoundTripPreservesStructureAndValues(t *testing.T) {
	src := openContext(t)
	p := richProject(t, src)

	b, err := Encode(p)
	require.NoError(t, err)

	dst := openContext(t)
	got, err := Import(dst, b, nil)
	require.NoError(t, err)

	assert.NotEqual(t, p.ID, got.ID)
	assert.Equal(t, p.Title, got.Title)
	assert.True(t, p.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, *settingsWithoutID(p.Settings), *settingsWithoutID(got.Settings))

	require.Len(t, got.Buckets, len(p.Buckets))
	for bi, b := range p.Buckets {
		gb := got.Buckets[bi]
		assert.Equal(t, b.Title, gb.Title)
		assert.Equal(t, b.Position, gb.Position)
		require.Len(t, gb.Ideas, len(b.Ideas))
		for ii, idea := range b.Ideas {
			gi := gb.Ideas[ii]
			assert.Equal(t, idea.Title, gi.Title)
			assert.Equal(t, idea.Desc, gi.Desc)
			assert.Equal(t, idea.Position, gi.Position)
			assert.Equal(t, idea.Minimized, gi.Minimized)
			assert.True(t, idea.Timestamp.Equal(gi.Timestamp))
			require.Len(t, gi.Extensions, len(idea.Extensions))
		}
	}

	exts := got.Buckets[0].Ideas[1].Extensions
	require.NotNil(t, exts[0].Checklist())
	items := exts[0].Checklist().Items
	require.Len(t, items, 2)
	assert.Equal(t, " first", items[0].Title)
	assert.True(t, items[0].Checked)
	assert.Equal(t, " second", items[1].Title)
	require.NotNil(t, exts[1].ImageCatalogue())
	assert.Equal(t, []byte{0x00, 0xff, 0x10, 0x80}, exts[1].ImageCatalogue().Items[0].Image)

	require.Len(t, got.Tags, 2)
	assert.Equal(t, "Work", got.Tags[0].Tag.Title)
	assert.Equal(t, 3, got.Tags[0].Tag.ColorIdentifier)
	assert.Equal(t, "Home", got.Tags[1].Tag.Title)
	assert.Len(t, dst.Tags(), 2)
	assert.True(t, dst.Contains(got.ID))
}

func settingsWithoutID(s *model.ProjectSettings) *model.ProjectSettings {
	cp := *s
	cp.ID = uuid.Nil
	return &cp
}

func TestExportImageBytesAreBase64OfRaw(t *testing.T) {
	raw := make([]byte, 1000)
	for i := range raw {
		raw[i] = byte(i * 7)
	}
	p := model.NewProject("pics")
	gallery := model.NewImageCatalogue()
	gallery.Items = []*model.ImageItem{model.NewImageItem("one", raw, 1)}
	idea := model.NewIdea("i", "", 1)
	idea.Extensions = []*model.IdeaExtension{model.NewExtensionWith("g", gallery, 1)}
	p.Buckets[0].Ideas = []*model.Idea{idea}

	b, err := Encode(p)
	require.NoError(t, err)

	var doc ProjectDTO
	require.NoError(t, json.Unmarshal(b, &doc))
	enc := doc.Buckets[0].Ideas[0].Extensions[0].ImageCatalogueContent[0].Image
	got, err := base64.StdEncoding.DecodeString(enc)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
	assert.Equal(t, Version, doc.Version)
	assert.True(t, strings.Contains(string(b), "\n  \"title\": \"pics\""))
}

func TestImportReusesMatchingRegistryTag(t *testing.T) {
	c := openContext(t)
	work := tags.Create(c, c.Settings(), "Work", 3)
	other := model.NewProject("other")
	require.NoError(t, c.Insert(other))
	_, err := tags.Attach(c, other, tags.Create(c, c.Settings(), "Misc", 2))
	require.NoError(t, err)

	doc := `{"version":1,"title":"imported","timestamp":"2024-03-01T10:00:00Z",
		"tags":[{"title":"Work","colorIdentifier":3,"timestamp":"2024-03-01T10:00:00Z","isExpandedInSidebar":true}],
		"buckets":[]}`
	p, err := Import(c, []byte(doc), nil)
	require.NoError(t, err)

	assert.Len(t, c.Tags(), 2)
	require.Len(t, p.Tags, 1)
	assert.Same(t, work, p.Tags[0].Tag)
	assert.Equal(t, 1, p.Tags[0].Position)
}

func TestImportDropsUndecodableImages(t *testing.T) {
	c := openContext(t)
	rec := &notify.Recorder{}
	good := base64.StdEncoding.EncodeToString([]byte("ok"))
	doc := `{"title":"p","buckets":[{"title":"b","position":1,"ideas":[{"title":"i","position":1,"extensions":[
		{"title":"g","type":"imageCatalogue","position":1,"imageCatalogueContent":[
			{"title":"broken","image":"%%%","position":1},
			{"title":"fine","image":"` + good + `","position":2}]}]}]}]}`

	p, err := Import(c, []byte(doc), rec)
	require.NoError(t, err)

	items := p.Buckets[0].Ideas[0].Extensions[0].ImageCatalogue().Items
	require.Len(t, items, 1)
	assert.Equal(t, "fine", items[0].Title)
	assert.Equal(t, 1, items[0].Position)

	notes := rec.Notes()
	require.Len(t, notes, 1)
	assert.Equal(t, `Lost Image "broken" while decoding Base64 String`, notes[0].Message)
	assert.Equal(t, notify.Technical, notes[0].Severity)
	assert.Equal(t, notify.TechnicalDuration, notes[0].Duration)
}

func TestImportSeedsEmptyChecklist(t *testing.T) {
	c := openContext(t)
	doc := `{"title":"p","buckets":[{"title":"b","position":1,"ideas":[{"title":"i","position":1,"extensions":[
		{"title":"c","type":"checklist","position":1,"checklistContent":[]}]}]}]}`
	p, err := Import(c, []byte(doc), nil)
	require.NoError(t, err)
	items := p.Buckets[0].Ideas[0].Extensions[0].Checklist().Items
	require.Len(t, items, 1)
	assert.Equal(t, model.BlankItemTitle, items[0].Title)
}

func TestImportRejectsUnknownExtensionType(t *testing.T) {
	c := openContext(t)
	doc := `{"title":"p","buckets":[{"title":"b","position":1,"ideas":[{"title":"i","position":1,"extensions":[
		{"title":"x","type":"video","position":1}]}]}]}`
	_, err := Import(c, []byte(doc), nil)
	require.Error(t, err)
	assert.Empty(t, c.Projects())
}

func TestDecodeVersions(t *testing.T) {
	_, err := Decode([]byte(`{"version":2,"title":"future"}`))
	assert.True(t, errors.Is(err, ErrUnsupportedVersion))

	dto, err := Decode([]byte(`{"title":"legacy","buckets":[],"useCheckOffIdeaButton":true,"scrollViewBucketWidth":500}`))
	require.NoError(t, err)
	assert.Equal(t, 1, dto.Version)

	p, _, err := Build(dto, nil)
	require.NoError(t, err)
	assert.True(t, p.Settings.UseCheckOffIdeaButton)
	assert.Equal(t, 500, p.Settings.ScrollViewBucketWidth)
	assert.True(t, p.Settings.IdeaDeletionRequiresConfirmation)
}

func TestImportRejectsNonProjectDocument(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"null", `null`},
		{"empty object", `{}`},
		{"unrelated object", `{"foo":1}`},
		{"package manifest", `{"name":"app","version":"1.0.0","dependencies":{}}`},
		{"title without buckets", `{"title":"p"}`},
		{"null buckets", `{"title":"p","buckets":null}`},
		{"array", `[]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := openContext(t)
			before := len(c.Projects())
			p, err := Import(c, []byte(tc.doc), nil)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Len(t, c.Projects(), before)
		})
	}

	_, err := Decode([]byte(`{}`))
	assert.True(t, errors.Is(err, ErrNotProjectDocument))
}

func TestBuildNormalizesSparsePositions(t *testing.T) {
	dto, err := Decode([]byte(`{"title":"p","buckets":[
		{"title":"second","position":7,"ideas":[]},
		{"title":"first","position":3,"ideas":[]}]}`))
	require.NoError(t, err)
	p, _, err := Build(dto, nil)
	require.NoError(t, err)
	require.Len(t, p.Buckets, 2)
	assert.Equal(t, "first", p.Buckets[0].Title)
	assert.Equal(t, 1, p.Buckets[0].Position)
	assert.Equal(t, 2, p.Buckets[1].Position)
}

func TestExportFileAddsExtension(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportFile(model.NewProject("p"), filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out.json"), path)
	_, err = os.Stat(path)
	require.NoError(t, err)

	c := openContext(t)
	p, err := ImportFile(c, path, nil)
	require.NoError(t, err)
	assert.Equal(t, "p", p.Title)
}

func TestSharingContext(t *testing.T) {
	p := model.PresetProject()
	sc := NewSharingContext(p, 1500)
	assert.Equal(t, "Preset project", sc.Primary)
	assert.Equal(t, "4 Ideas in 2 Buckets", sc.Secondary)
	assert.Equal(t, "1.5 kB", sc.Tertiary)

	empty := SharingContext{}.Normalized()
	assert.Equal(t, NoFurtherInformation, empty.Primary)
	assert.Equal(t, NoFurtherInformation, empty.Tertiary)
	assert.Equal(t, "Preset-project.json", FileName(&model.Project{Title: "Preset/project"}))
}
