package transfer

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ideas-cli/internal/model"
	"ideas-cli/internal/notify"
	"ideas-cli/internal/ordered"
	"ideas-cli/internal/store"
	"ideas-cli/internal/tags"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedVersion = errors.New("unsupported document version")
	ErrNotProjectDocument = errors.New("not a project document")
)

// Decode parses a project document. A document written by a newer version is
// rejected before anything else is read. title and buckets are required.
func Decode(b []byte) (*ProjectDTO, error) {
	var head struct {
		Version *int            `json:"version"`
		Title   *string         `json:"title"`
		Buckets json.RawMessage `json:"buckets"`
	}
	if err := json.Unmarshal(b, &head); err != nil {
		return nil, fmt.Errorf("decode project document: %w", err)
	}
	if head.Version != nil && (*head.Version < 1 || *head.Version > Version) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, *head.Version)
	}
	if head.Title == nil {
		return nil, fmt.Errorf("decode project document: %w: missing title", ErrNotProjectDocument)
	}
	if len(head.Buckets) == 0 || string(head.Buckets) == "null" {
		return nil, fmt.Errorf("decode project document: %w: missing buckets", ErrNotProjectDocument)
	}
	var dto ProjectDTO
	if err := json.Unmarshal(b, &dto); err != nil {
		return nil, fmt.Errorf("decode project document: %w", err)
	}
	if dto.Version == 0 {
		dto.Version = 1
	}
	return &dto, nil
}

// Build turns dto into a detached project graph with fresh identities. Timestamps
// are kept. Image items whose data is not valid base64 are dropped and reported;
// any other malformed content fails the whole document.
func Build(dto *ProjectDTO, n notify.Notifier) (*model.Project, []tags.Descriptor, error) {
	n = notify.OrDiscard(n)

	p := model.NewEmptyProject(dto.Title)
	if !dto.Timestamp.IsZero() {
		p.Timestamp = dto.Timestamp
	}
	applySettings(p.Settings, dto)

	for _, bd := range dto.Buckets {
		b := model.NewBucket(bd.Title, bd.Position)
		b.ColorIdentifier = bd.ColorIdentifier
		for _, id := range bd.Ideas {
			idea, err := buildIdea(id, n)
			if err != nil {
				return nil, nil, err
			}
			b.Ideas = append(b.Ideas, idea)
		}
		ordered.Reindex(ordered.Nop, b.Ideas)
		p.Buckets = append(p.Buckets, b)
	}
	ordered.Reindex(ordered.Nop, p.Buckets)

	descs := make([]tags.Descriptor, 0, len(dto.Tags))
	for _, t := range dto.Tags {
		descs = append(descs, tags.Descriptor{
			Title:               t.Title,
			ColorIdentifier:     t.ColorIdentifier,
			Timestamp:           t.Timestamp,
			IsExpandedInSidebar: t.IsExpandedInSidebar,
		})
	}
	return p, descs, nil
}

func applySettings(s *model.ProjectSettings, dto *ProjectDTO) {
	if dto.Settings != nil {
		s.IdeaDeletionRequiresConfirmation = dto.Settings.IdeaDeletionRequiresConfirmation
		s.UseScrollViewForBuckets = dto.Settings.UseScrollViewForBuckets
		s.UseCheckOffIdeaButton = dto.Settings.UseCheckOffIdeaButton
		if dto.Settings.ScrollViewBucketWidth > 0 {
			s.ScrollViewBucketWidth = dto.Settings.ScrollViewBucketWidth
		}
		return
	}
	if v := dto.IdeaDeletionRequiresConfirmation; v != nil {
		s.IdeaDeletionRequiresConfirmation = *v
	}
	if v := dto.UseScrollViewForBuckets; v != nil {
		s.UseScrollViewForBuckets = *v
	}
	if v := dto.ScrollViewBucketWidth; v != nil && *v > 0 {
		s.ScrollViewBucketWidth = *v
	}
	if v := dto.UseCheckOffIdeaButton; v != nil {
		s.UseCheckOffIdeaButton = *v
	}
}

func buildIdea(dto IdeaDTO, n notify.Notifier) (*model.Idea, error) {
	idea := model.NewIdea(dto.Title, dto.Desc, dto.Position)
	idea.Minimized = dto.Minimized
	if !dto.Timestamp.IsZero() {
		idea.Timestamp = dto.Timestamp
	}
	for _, ed := range dto.Extensions {
		e, err := buildExtension(ed, n)
		if err != nil {
			return nil, fmt.Errorf("idea %q: %w", dto.Title, err)
		}
		idea.Extensions = append(idea.Extensions, e)
	}
	ordered.Reindex(ordered.Nop, idea.Extensions)
	return idea, nil
}

func buildExtension(dto ExtensionDTO, n notify.Notifier) (*model.IdeaExtension, error) {
	t := model.ExtensionChecklist
	if dto.Type != "" {
		var err error
		if t, err = model.ParseExtensionType(dto.Type); err != nil {
			return nil, fmt.Errorf("extension %q: %w", dto.Title, err)
		}
	}

	var content model.ExtensionContent
	switch t {
	case model.ExtensionChecklist:
		c := &model.Checklist{ID: uuid.New()}
		for _, it := range dto.ChecklistContent {
			c.Items = append(c.Items, model.NewChecklistItem(it.Title, it.Checked, it.Position))
		}
		if len(c.Items) == 0 {
			c.Items = append(c.Items, model.NewChecklistItem(model.BlankItemTitle, false, 1))
		}
		ordered.Reindex(ordered.Nop, c.Items)
		content = c
	case model.ExtensionImageCatalogue:
		c := model.NewImageCatalogue()
		for _, it := range dto.ImageCatalogueContent {
			data, err := base64.StdEncoding.DecodeString(it.Image)
			if err != nil {
				n.Report(fmt.Sprintf("Lost Image \"%s\" while decoding Base64 String", it.Title), notify.Technical, notify.TechnicalDuration)
				continue
			}
			c.Items = append(c.Items, model.NewImageItem(it.Title, data, it.Position))
		}
		ordered.Reindex(ordered.Nop, c.Items)
		content = c
	}

	e := model.NewExtensionWith(dto.Title, content, dto.Position)
	e.Minimized = dto.Minimized
	return e, nil
}

// Import decodes b and attaches the resulting project to c, resolving its tags
// against the registry. On error nothing is attached.
func Import(c *store.Context, b []byte, n notify.Notifier) (*model.Project, error) {
	dto, err := Decode(b)
	if err != nil {
		return nil, err
	}
	p, descs, err := Build(dto, n)
	if err != nil {
		return nil, err
	}
	if err := c.Insert(p); err != nil {
		return nil, err
	}
	tags.Reconcile(c, c.Settings(), p, descs)
	return p, nil
}

// ImportFile reads a document from path and imports it.
func ImportFile(c *store.Context, path string, n notify.Notifier) (*model.Project, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Import(c, b, n)
}
