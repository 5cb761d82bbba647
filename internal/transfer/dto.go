// Package transfer converts projects to and from the portable JSON document used for
// export, import and peer sharing.
package transfer

import (
	"time"

	"github.com/google/uuid"
)

// Version is the document layout written by Encode. Documents without a version
// field are read as version 1.
const Version = 1

type ProjectDTO struct {
	Version   int          `json:"version"`
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Timestamp time.Time    `json:"timestamp"`
	Settings  *SettingsDTO `json:"settings,omitempty"`
	Tags      []TagDTO     `json:"tags"`
	Buckets   []BucketDTO  `json:"buckets"`

	// Older documents carry the settings flat on the project.
	IdeaDeletionRequiresConfirmation *bool `json:"ideaDeletionRequiresConfirmation,omitempty"`
	UseScrollViewForBuckets          *bool `json:"useScrollViewForBuckets,omitempty"`
	ScrollViewBucketWidth            *int  `json:"scrollViewBucketWidth,omitempty"`
	UseCheckOffIdeaButton            *bool `json:"useCheckOffIdeaButton,omitempty"`
}

type SettingsDTO struct {
	IdeaDeletionRequiresConfirmation bool `json:"ideaDeletionRequiresConfirmation"`
	UseScrollViewForBuckets          bool `json:"useScrollViewForBuckets"`
	ScrollViewBucketWidth            int  `json:"scrollViewBucketWidth"`
	UseCheckOffIdeaButton            bool `json:"useCheckOffIdeaButton"`
}

type TagDTO struct {
	Title               string    `json:"title"`
	ColorIdentifier     int       `json:"colorIdentifier"`
	Timestamp           time.Time `json:"timestamp"`
	IsExpandedInSidebar bool      `json:"isExpandedInSidebar"`
}

type BucketDTO struct {
	Title           string    `json:"title"`
	ColorIdentifier int       `json:"colorIdentifier"`
	Position        int       `json:"position"`
	Ideas           []IdeaDTO `json:"ideas"`
}

type IdeaDTO struct {
	Title      string         `json:"title"`
	Desc       string         `json:"desc"`
	Position   int            `json:"position"`
	Timestamp  time.Time      `json:"timestamp"`
	Minimized  bool           `json:"minimized"`
	Extensions []ExtensionDTO `json:"extensions"`
}

// ExtensionDTO always carries both content arrays; only the one named by Type is
// meaningful.
type ExtensionDTO struct {
	Title                 string             `json:"title"`
	Type                  string             `json:"type"`
	Position              int                `json:"position"`
	Minimized             bool               `json:"minimized"`
	ChecklistContent      []ChecklistItemDTO `json:"checklistContent"`
	ImageCatalogueContent []ImageItemDTO     `json:"imageCatalogueContent"`
}

type ChecklistItemDTO struct {
	Title    string `json:"title"`
	Checked  bool   `json:"checked"`
	Position int    `json:"position"`
}

// ImageItemDTO holds the image bytes as standard base64.
type ImageItemDTO struct {
	Title    string `json:"title"`
	Image    string `json:"image"`
	Position int    `json:"position"`
}
