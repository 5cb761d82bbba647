package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"ideas-cli/internal/mainloop"
	"ideas-cli/internal/model"
	"ideas-cli/internal/notify"
	"ideas-cli/internal/ordered"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
	Closed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var ErrNotReady = errors.New("store not ready")

const MsgMultipleSettings = "Multiple GlobalUserSettings instances found: possible Settings loss"

type Options struct {
	Notifier notify.Notifier
	Logger   *zerolog.Logger

	// SaveDebounce is the quiet period before a save. Debounced saves need Loop;
	// without one, changes are written only by Flush.
	SaveDebounce time.Duration
	Loop         *mainloop.Loop
}

// Context is the live entity graph plus its link to a Backend.
//
// It is not safe for concurrent use: every call except Discard before Ready must
// come from the goroutine that owns the graph (see mainloop).
type Context struct {
	log      zerolog.Logger
	notifier notify.Notifier
	loop     *mainloop.Loop

	mu      sync.Mutex
	state   State
	pending []any

	backend  Backend
	projects []*model.Project
	settings *model.GlobalUserSettings
	report   DoctorReport

	index      map[uuid.UUID]entry
	indexStale bool

	saver *saver
}

type entry struct {
	entity  any
	parent  any
	project *model.Project
}

func NewContext(opts Options) *Context {
	c := &Context{
		log:      zerolog.Nop(),
		notifier: notify.OrDiscard(opts.Notifier),
		loop:     opts.Loop,
	}
	if opts.Logger != nil {
		c.log = *opts.Logger
	}
	debounce := opts.SaveDebounce
	if c.loop == nil {
		debounce = 0
	}
	c.saver = newSaver(debounce, c.onSaveTimer)
	return c
}

func (c *Context) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Open loads the backend, repairs what the integrity check can repair, settles the
// settings singleton and then applies deletions queued while the store was not
// ready, in the order they were requested.
func (c *Context) Open(ctx context.Context, b Backend) error {
	c.mu.Lock()
	if c.state != Uninitialized {
		st := c.state
		c.mu.Unlock()
		return fmt.Errorf("open store: already %s", st)
	}
	c.state = Initializing
	c.mu.Unlock()

	snap, err := b.Load(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = Uninitialized
		c.mu.Unlock()
		return fmt.Errorf("load store: %w", err)
	}
	c.backend = b
	c.projects = snap.Projects
	c.resolveSettings(snap)

	c.report = Doctor(changedOnly{c}, c.projects, c.settings.TagCollection, true)
	for _, is := range c.report.Issues {
		c.log.Warn().Str("code", is.Code).Str("entity", is.EntityID).Bool("repaired", is.Repaired).Msg(is.Message)
		if is.Code == CodeExtensionContentLoss {
			c.notifier.Report(is.Message, notify.Technical, notify.TechnicalDuration)
		}
	}
	c.indexStale = true

	c.mu.Lock()
	queued := c.pending
	c.pending = nil
	c.state = Ready
	c.mu.Unlock()

	for _, e := range queued {
		c.Delete(e)
	}
	c.log.Debug().Int("projects", len(c.projects)).Int("tags", len(c.settings.TagCollection)).Int("queued", len(queued)).Msg("store ready")
	return nil
}

func (c *Context) resolveSettings(snap *Snapshot) {
	if len(snap.Settings) == 0 {
		c.settings = model.NewGlobalUserSettings()
		c.saver.Notify()
	} else {
		c.settings = snap.Settings[0]
		if len(snap.Settings) > 1 {
			c.notifier.Report(MsgMultipleSettings, notify.Technical, notify.TechnicalDuration)
			c.log.Warn().Int("found", len(snap.Settings)).Msg(MsgMultipleSettings)
			c.saver.Notify()
		}
	}

	// Registry tags that the kept settings record does not list (for example the
	// registry of a pruned duplicate) are adopted rather than dropped.
	linked := map[uuid.UUID]bool{}
	for _, t := range c.settings.TagCollection {
		linked[t.ID] = true
	}
	for _, t := range snap.Tags {
		if !linked[t.ID] {
			c.settings.TagCollection = append(c.settings.TagCollection, t)
			linked[t.ID] = true
			c.saver.Notify()
		}
	}
}

// Report is the integrity report produced by Open.
func (c *Context) Report() DoctorReport {
	return c.report
}

// Settings returns the settings singleton.
func (c *Context) Settings() *model.GlobalUserSettings {
	return c.settings
}

// Projects returns the live projects in insertion order.
func (c *Context) Projects() []*model.Project {
	return append([]*model.Project(nil), c.projects...)
}

// Tags returns the registry ordered by creation time.
func (c *Context) Tags() []*model.Tag {
	if c.settings == nil {
		return nil
	}
	return c.settings.SortedTags()
}

// FetchAll returns every live entity of kind k.
func (c *Context) FetchAll(k model.Kind) []any {
	var out []any
	switch k {
	case model.KindProject:
		for _, p := range c.projects {
			out = append(out, p)
		}
	case model.KindTag:
		for _, t := range c.Tags() {
			out = append(out, t)
		}
	case model.KindUserSettings:
		if c.settings != nil {
			out = append(out, c.settings)
		}
	default:
		for _, p := range c.projects {
			p.Walk(func(e any) {
				if model.KindOf(e) == k {
					out = append(out, e)
				}
			})
		}
	}
	return out
}

// Insert attaches a root entity (project or tag) to the store. Entities below a
// project become live by being added to their owner's collection; inserting one of
// them only refreshes the identity map.
func (c *Context) Insert(e any) error {
	if c.State() != Ready {
		return ErrNotReady
	}
	switch x := e.(type) {
	case *model.Project:
		for _, p := range c.projects {
			if p.ID == x.ID {
				return nil
			}
		}
		c.projects = append(c.projects, x)
	case *model.Tag:
		if c.settings.FindTag(x.ID) == nil {
			c.settings.TagCollection = append(c.settings.TagCollection, x)
		}
	case *model.GlobalUserSettings:
		if x.ID != c.settings.ID {
			return errors.New("insert settings: singleton already exists")
		}
	default:
		if model.KindOf(e) == "" {
			return fmt.Errorf("insert: %T is not an entity", e)
		}
	}
	c.Changed()
	return nil
}

// Delete removes e and everything it owns from the store. An entity still held by
// an owner collection is detached from it first. Before the store is ready the
// request is queued.
func (c *Context) Delete(e any) {
	c.mu.Lock()
	if c.state != Ready {
		c.pending = append(c.pending, e)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	id := model.IDOf(e)
	ent, live := c.lookup(id)
	if !live {
		c.log.Debug().Str("kind", string(model.KindOf(e))).Str("id", id.String()).Msg("delete: not live")
		return
	}
	switch x := ent.entity.(type) {
	case *model.Project:
		out := c.projects[:0]
		for _, p := range c.projects {
			if p.ID != x.ID {
				out = append(out, p)
			}
		}
		c.projects = out
		if c.settings.LastOpenedProject == x.ID {
			c.settings.LastOpenedProject = uuid.Nil
		}
	case *model.Tag:
		for _, p := range c.projects {
			for _, ref := range append([]*model.TagReference(nil), p.Tags...) {
				if ref.TagID == x.ID {
					ordered.Remove(changedOnly{c}, &p.Tags, ref, false)
				}
			}
		}
		kept := c.settings.TagCollection[:0]
		for _, t := range c.settings.TagCollection {
			if t.ID != x.ID {
				kept = append(kept, t)
			}
		}
		c.settings.TagCollection = kept
	case *model.GlobalUserSettings:
		// The singleton is recreated empty; it can never be absent.
		c.settings = model.NewGlobalUserSettings()
	default:
		c.detach(ent)
	}
	c.log.Debug().Str("kind", string(model.KindOf(ent.entity))).Str("id", id.String()).Msg("deleted")
	c.Changed()
}

func (c *Context) detach(ent entry) {
	h := changedOnly{c}
	switch p := ent.parent.(type) {
	case *model.Project:
		switch x := ent.entity.(type) {
		case *model.Bucket:
			ordered.Remove(h, &p.Buckets, x, false)
		case *model.TagReference:
			ordered.Remove(h, &p.Tags, x, false)
		case *model.ProjectSettings:
			p.Settings = model.NewProjectSettings()
		}
	case *model.Bucket:
		if x, ok := ent.entity.(*model.Idea); ok {
			ordered.Remove(h, &p.Ideas, x, false)
		}
	case *model.Idea:
		if x, ok := ent.entity.(*model.IdeaExtension); ok {
			ordered.Remove(h, &p.Extensions, x, false)
		}
	case *model.IdeaExtension:
		// Payloads are replaced, never left empty.
		p.Content = model.NewContent(p.Type())
	case *model.Checklist:
		if x, ok := ent.entity.(*model.ChecklistItem); ok {
			ordered.Remove(h, &p.Items, x, false)
			if len(p.Items) == 0 {
				ordered.Insert(h, &p.Items, model.NewChecklistItem(model.BlankItemTitle, false, 1))
			}
		}
	case *model.ImageCatalogue:
		if x, ok := ent.entity.(*model.ImageItem); ok {
			ordered.Remove(h, &p.Items, x, false)
		}
	}
}

// Discard is the deletion side of ordered.Hooks.
func (c *Context) Discard(e any) {
	c.Delete(e)
}

// Changed records a mutation and schedules a save.
func (c *Context) Changed() {
	c.indexStale = true
	c.saver.Notify()
}

// Contains reports whether id is a live entity.
func (c *Context) Contains(id uuid.UUID) bool {
	_, ok := c.lookup(id)
	return ok
}

// Lookup returns the live entity with id and the project that owns it (nil for
// registry tags and settings).
func (c *Context) Lookup(id uuid.UUID) (any, *model.Project, bool) {
	ent, ok := c.lookup(id)
	return ent.entity, ent.project, ok
}

// Parent returns the owner of the live entity with id.
func (c *Context) Parent(id uuid.UUID) (any, bool) {
	ent, ok := c.lookup(id)
	if !ok || ent.parent == nil {
		return nil, false
	}
	return ent.parent, true
}

func (c *Context) lookup(id uuid.UUID) (entry, bool) {
	if c.index == nil || c.indexStale {
		c.rebuildIndex()
	}
	ent, ok := c.index[id]
	return ent, ok
}

func (c *Context) rebuildIndex() {
	idx := map[uuid.UUID]entry{}
	put := func(e, parent any, p *model.Project) {
		idx[model.IDOf(e)] = entry{entity: e, parent: parent, project: p}
	}
	if c.settings != nil {
		put(c.settings, nil, nil)
		for _, t := range c.settings.TagCollection {
			put(t, c.settings, nil)
		}
	}
	for _, p := range c.projects {
		put(p, nil, p)
		if p.Settings != nil {
			put(p.Settings, p, p)
		}
		for _, r := range p.Tags {
			put(r, p, p)
		}
		for _, b := range p.Buckets {
			put(b, p, p)
			for _, i := range b.Ideas {
				put(i, b, p)
				for _, e := range i.Extensions {
					put(e, i, p)
					switch x := e.Content.(type) {
					case *model.Checklist:
						put(x, e, p)
						for _, it := range x.Items {
							put(it, x, p)
						}
					case *model.ImageCatalogue:
						put(x, e, p)
						for _, it := range x.Items {
							put(it, x, p)
						}
					}
				}
			}
		}
	}
	c.index = idx
	c.indexStale = false
}

// Snapshot returns the state as it would be persisted.
func (c *Context) Snapshot() *Snapshot {
	snap := &Snapshot{Projects: c.Projects()}
	if c.settings != nil {
		snap.Tags = append([]*model.Tag(nil), c.settings.TagCollection...)
		snap.Settings = []*model.GlobalUserSettings{c.settings}
	}
	return snap
}

// Save writes the full state now.
func (c *Context) Save(ctx context.Context) error {
	if c.State() != Ready {
		return ErrNotReady
	}
	c.saver.Take()
	if err := c.backend.Save(ctx, c.Snapshot()); err != nil {
		c.saver.Notify()
		return fmt.Errorf("save store: %w", err)
	}
	c.log.Debug().Int("projects", len(c.projects)).Msg("saved")
	return nil
}

// Flush saves when changes are pending.
func (c *Context) Flush(ctx context.Context) error {
	if !c.saver.Pending() {
		return nil
	}
	return c.Save(ctx)
}

// Dirty reports whether unsaved changes exist.
func (c *Context) Dirty() bool {
	return c.saver.Pending()
}

// Close flushes pending changes and closes the backend.
func (c *Context) Close(ctx context.Context) error {
	if c.State() != Ready {
		return nil
	}
	flushErr := c.Flush(ctx)
	c.saver.Stop()
	c.mu.Lock()
	c.state = Closed
	c.mu.Unlock()
	if err := c.backend.Close(); err != nil {
		return err
	}
	return flushErr
}

func (c *Context) onSaveTimer() {
	c.loop.Post(func() {
		if err := c.Flush(context.Background()); err != nil {
			c.log.Error().Err(err).Msg("debounced save failed")
			c.notifier.Report(fmt.Sprintf("Saving failed: %v", err), notify.Destructive, notify.DefaultDuration)
		}
	})
}

// changedOnly forwards saves but not deletions: entities it is handed are already
// unreachable from the graph.
type changedOnly struct{ c *Context }

func (h changedOnly) Changed()    { h.c.Changed() }
func (h changedOnly) Discard(any) {}

func (c *Context) pendingIDs() []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]uuid.UUID, 0, len(c.pending))
	for _, e := range c.pending {
		out = append(out, model.IDOf(e))
	}
	return out
}
