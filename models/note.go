package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Note is a free-form text (meeting notes, journal entry) that action items
// are extracted from.
type Note struct {
	// ID is a unique identifier for the note, stored as a UUID in the database.
	// In Elasticsearch, it's indexed as a keyword for exact matching.
	ID string `gorm:"type:uuid;primaryKey" json:"id" elastic:"type:keyword"`

	// Title is the note's title, indexed as text for full-text search.
	Title string `gorm:"size:200;not null" json:"title" elastic:"type:text,analyzer:standard"`

	// Content is the raw note body the extractor runs over.
	Content string `gorm:"type:text;not null" json:"content" elastic:"type:text,analyzer:standard"`

	// ExtractionSummary is a JSON document with the counts per priority and
	// category from the last extraction run.
	ExtractionSummary datatypes.JSON `json:"extraction_summary,omitempty" elastic:"type:object"`

	// ActionItems are the items extracted from Content. Deleting the note deletes them.
	ActionItems []ActionItem `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE" json:"action_items,omitempty"`

	// CreatedAt and UpdatedAt track when the note was created and last updated, indexed as dates.
	CreatedAt time.Time `json:"created_at" elastic:"type:date"`
	UpdatedAt time.Time `json:"updated_at" elastic:"type:date"`

	// SearchContent is a computed field for full-text search, combining Title and Content.
	// It's not stored in the database (gorm:"-") but is indexed in Elasticsearch.
	SearchContent string `gorm:"-" json:"-" elastic:"type:text,analyzer:standard"`
}

// BeforeCreate is a GORM hook that assigns a UUID when none is set.
func (n *Note) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave is a GORM hook to populate SearchContent before saving to Elasticsearch.
func (n *Note) BeforeSave(tx *gorm.DB) error {
	n.fillSearchContent()
	return nil
}

// AfterFind fills SearchContent on loaded notes so they can be re-indexed.
func (n *Note) AfterFind(tx *gorm.DB) error {
	n.fillSearchContent()
	return nil
}

// fillSearchContent combines Title and Content for full-text search.
func (n *Note) fillSearchContent() {
	n.SearchContent = n.Title + " " + n.Content
}
