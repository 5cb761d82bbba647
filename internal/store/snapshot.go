package store

import (
	"encoding/json"
	"fmt"

	"ideas-cli/internal/model"

	"github.com/google/uuid"
)

// SchemaVersion is the layout of persisted rows. Bump it when a row shape changes.
const SchemaVersion = 1

// Snapshot is the full persisted state. Settings can hold more than one record when the
// underlying storage was damaged; Context.Open resolves that.
type Snapshot struct {
	Projects []*model.Project
	Tags     []*model.Tag
	Settings []*model.GlobalUserSettings
}

// settingsRow is how GlobalUserSettings is persisted: the registry is stored as tag ids.
type settingsRow struct {
	*model.GlobalUserSettings
	TagIDs []uuid.UUID `json:"tagIds"`
}

func encodeSettings(s *model.GlobalUserSettings) ([]byte, error) {
	row := settingsRow{GlobalUserSettings: s, TagIDs: make([]uuid.UUID, 0, len(s.TagCollection))}
	for _, t := range s.TagCollection {
		row.TagIDs = append(row.TagIDs, t.ID)
	}
	return json.Marshal(row)
}

// decodeSettings returns the settings and the ids of its registry tags. The caller
// links the ids to loaded tags.
func decodeSettings(b []byte) (*model.GlobalUserSettings, []uuid.UUID, error) {
	row := settingsRow{GlobalUserSettings: &model.GlobalUserSettings{}}
	if err := json.Unmarshal(b, &row); err != nil {
		return nil, nil, fmt.Errorf("decode user settings: %w", err)
	}
	row.GlobalUserSettings.UISize.Set(row.GlobalUserSettings.UISize.SizeValue)
	return row.GlobalUserSettings, row.TagIDs, nil
}

// rawSnapshot is what a backend reads before tag ids are linked to tags.
type rawSnapshot struct {
	projects []*model.Project
	tags     []*model.Tag
	settings []*model.GlobalUserSettings
	tagIDs   [][]uuid.UUID
}

func (r rawSnapshot) link() *Snapshot {
	byID := make(map[uuid.UUID]*model.Tag, len(r.tags))
	for _, t := range r.tags {
		byID[t.ID] = t
	}
	for i, s := range r.settings {
		s.TagCollection = nil
		for _, id := range r.tagIDs[i] {
			if t := byID[id]; t != nil {
				s.TagCollection = append(s.TagCollection, t)
			}
		}
	}
	return &Snapshot{Projects: r.projects, Tags: r.tags, Settings: r.settings}
}
