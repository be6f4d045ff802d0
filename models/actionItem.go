package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActionItem is a persisted action item, either extracted from a note or
// created by hand.
type ActionItem struct {
	// ID is a unique identifier for the item, stored as a UUID.
	ID string `gorm:"type:uuid;primaryKey" json:"id" elastic:"type:keyword"`

	// NoteID references the note the item was extracted from; nil for items created directly.
	NoteID *string `gorm:"type:uuid;index" json:"note_id" elastic:"type:keyword"`

	// Description is the action text, indexed for full-text search.
	Description string `gorm:"type:text;not null" json:"description" elastic:"type:text,analyzer:standard"`

	Completed bool `gorm:"not null;default:false" json:"completed" elastic:"type:boolean"`

	// Priority is one of high, medium or low.
	Priority string `gorm:"size:20;index" json:"priority" elastic:"type:keyword"`

	// Category is one of task, reminder, decision or general.
	Category string `gorm:"size:50" json:"category" elastic:"type:keyword"`

	Assignee string `gorm:"size:100" json:"assignee" elastic:"type:keyword"`

	// DueDate is kept exactly as written in the note; it is not parsed.
	DueDate string `gorm:"size:50" json:"due_date" elastic:"type:keyword"`

	// Context holds the neighbouring note lines, " | " separated.
	Context string `gorm:"type:text" json:"context"`

	// Position is the item's order among the items extracted from the same note.
	Position int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at" elastic:"type:date"`
	UpdatedAt time.Time `json:"updated_at" elastic:"type:date"`
}

// BeforeCreate is a GORM hook that assigns a UUID when none is set.
func (a *ActionItem) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
