package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Itish41/ActionScribe/extract"
	"github.com/Itish41/ActionScribe/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	maxTitleLen   = 200
	maxContentLen = 10000
	// uploads are read up to this many bytes; a longer file cannot hold a
	// valid note.
	maxUploadBytes = maxContentLen * utf8.UTFMax
)

// now is swapped in tests to pin timestamps.
var now = time.Now

// NoteService handles notes and the action items extracted from them.
type NoteService struct {
	db      *gorm.DB
	index   *NoteIndex
	archive *Archive
	logger  *zap.Logger
}

// NewNoteService builds the service. index and archive may be nil.
func NewNoteService(db *gorm.DB, index *NoteIndex, archive *Archive, logger *zap.Logger) *NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NoteService{db: db, index: index, archive: archive, logger: logger}
}

// NoteInput is the payload for creating or fully replacing a note.
type NoteInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NotePatch updates only the fields that are set.
type NotePatch struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// NoteQuery filters ListNotes. Q matches title or content.
type NoteQuery struct {
	ListQuery
	Q string
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", validationError("title must not be blank")
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", validationError("title must be at most %d characters", maxTitleLen)
	}
	return title, nil
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", validationError("content must not be blank")
	}
	if utf8.RuneCountInString(content) > maxContentLen {
		return "", validationError("content must be at most %d characters", maxContentLen)
	}
	return content, nil
}

// ListNotes returns one page of notes without their action items.
func (s *NoteService) ListNotes(ctx context.Context, q NoteQuery) ([]models.Note, error) {
	db := s.db.WithContext(ctx).Model(&models.Note{})
	if q.Q != "" {
		pattern := likePattern(q.Q)
		db = db.Where("LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(content) LIKE ? ESCAPE '\\'", pattern, pattern)
	}

	notes := []models.Note{}
	if err := q.apply(db, noteSortFields).Find(&notes).Error; err != nil {
		s.logger.Error("[ListNotes] Error fetching notes", zap.Error(err))
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// CreateNote stores the note, extracts its action items and saves them with
// the note in one transaction.
func (s *NoteService) CreateNote(ctx context.Context, in NoteInput) (*models.Note, error) {
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}

	note := models.Note{
		Title:     title,
		Content:   content,
		CreatedAt: now(),
		UpdatedAt: now(),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&note).Error; err != nil {
			return fmt.Errorf("failed to save note: %w", err)
		}
		return s.refreshItems(tx, &note)
	})
	if err != nil {
		s.logger.Error("[CreateNote] Error creating note", zap.Error(err))
		return nil, err
	}

	s.logger.Info("[CreateNote] Note created",
		zap.String("note_id", note.ID),
		zap.Int("action_items", len(note.ActionItems)))
	s.index.Put(ctx, note)
	return &note, nil
}

// GetNote returns the note with its action items in note order.
func (s *NoteService) GetNote(ctx context.Context, id string) (*models.Note, error) {
	id, err := validateID(id, "Note")
	if err != nil {
		return nil, err
	}
	note, err := s.loadNote(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// PatchNote changes the given fields. A content change re-runs extraction.
func (s *NoteService) PatchNote(ctx context.Context, id string, patch NotePatch) (*models.Note, error) {
	id, err := validateID(id, "Note")
	if err != nil {
		return nil, err
	}

	var title, content string
	if patch.Title != nil {
		if title, err = validateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if patch.Content != nil {
		if content, err = validateContent(*patch.Content); err != nil {
			return nil, err
		}
	}

	return s.updateNote(ctx, id, func(note *models.Note) {
		if patch.Title != nil {
			note.Title = title
		}
		if patch.Content != nil {
			note.Content = content
		}
	})
}

// UpdateNote replaces title and content.
func (s *NoteService) UpdateNote(ctx context.Context, id string, in NoteInput) (*models.Note, error) {
	id, err := validateID(id, "Note")
	if err != nil {
		return nil, err
	}
	title, err := validateTitle(in.Title)
	if err != nil {
		return nil, err
	}
	content, err := validateContent(in.Content)
	if err != nil {
		return nil, err
	}

	return s.updateNote(ctx, id, func(note *models.Note) {
		note.Title = title
		note.Content = content
	})
}

func (s *NoteService) updateNote(ctx context.Context, id string, change func(*models.Note)) (*models.Note, error) {
	var updated *models.Note
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var note models.Note
		if err := tx.First(&note, "id = ?", id).Error; err != nil {
			return notFound(err, "note")
		}

		oldContent := note.Content
		change(&note)
		note.UpdatedAt = now()

		if err := tx.Model(&note).Updates(map[string]interface{}{
			"title":      note.Title,
			"content":    note.Content,
			"updated_at": note.UpdatedAt,
		}).Error; err != nil {
			return fmt.Errorf("failed to update note: %w", err)
		}

		if note.Content != oldContent {
			if err := s.refreshItems(tx, &note); err != nil {
				return err
			}
		}

		var err error
		updated, err = s.loadNote(tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("[UpdateNote] Error updating note", zap.String("note_id", id), zap.Error(err))
		}
		return nil, err
	}

	s.index.Put(ctx, *updated)
	return updated, nil
}

// DeleteNote removes the note and every action item linked to it.
func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	id, err := validateID(id, "Note")
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// items go first; sqlite only cascades with foreign keys enabled
		if err := tx.Where("note_id = ?", id).Delete(&models.ActionItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete action items: %w", err)
		}
		res := tx.Delete(&models.Note{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete note: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("note %w", ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("[DeleteNote] Note deleted", zap.String("note_id", id))
	s.index.Remove(ctx, id)
	return nil
}

// ReextractNote drops the note's open extracted items and extracts again.
// Completed items are kept and are not extracted a second time.
func (s *NoteService) ReextractNote(ctx context.Context, id string) (*models.Note, error) {
	id, err := validateID(id, "Note")
	if err != nil {
		return nil, err
	}

	var note *models.Note
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current models.Note
		if err := tx.First(&current, "id = ?", id).Error; err != nil {
			return notFound(err, "note")
		}
		if err := s.refreshItems(tx, &current); err != nil {
			return err
		}
		var err error
		note, err = s.loadNote(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("[ReextractNote] Note re-extracted",
		zap.String("note_id", id),
		zap.Int("action_items", len(note.ActionItems)))
	return note, nil
}

// UploadNote creates a note from an uploaded UTF-8 text file. The raw file is
// archived first when a bucket is configured; the returned URL is empty
// otherwise.
func (s *NoteService) UploadNote(ctx context.Context, file multipart.File, header *multipart.FileHeader) (*models.Note, string, error) {
	s.logger.Info("[UploadNote] Starting upload",
		zap.String("filename", header.Filename),
		zap.Int64("size", header.Size))

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}
	return s.createFromUpload(ctx, header.Filename, header.Header.Get("Content-Type"), data)
}

func (s *NoteService) createFromUpload(ctx context.Context, filename, contentType string, data []byte) (*models.Note, string, error) {
	if len(data) > maxUploadBytes {
		return nil, "", validationError("file is too large")
	}
	if !utf8.Valid(data) {
		return nil, "", validationError("file must be UTF-8 text")
	}
	if _, err := validateContent(string(data)); err != nil {
		return nil, "", err
	}

	url, err := s.archive.Store(ctx, filename, contentType, data)
	if err != nil {
		return nil, "", err
	}

	note, err := s.CreateNote(ctx, NoteInput{Title: titleFromFilename(filename), Content: string(data)})
	if err != nil {
		return nil, "", err
	}
	return note, url, nil
}

func titleFromFilename(filename string) string {
	name := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	title := strings.TrimSpace(strings.TrimSuffix(name, filepath.Ext(name)))
	if title == "" || title == "." || title == "/" {
		return "Untitled upload"
	}
	return truncateRunes(title, maxTitleLen)
}

// refreshItems replaces the note's open items with a fresh extraction of its
// content and stores the new summary on the note.
func (s *NoteService) refreshItems(tx *gorm.DB, note *models.Note) error {
	if err := tx.Where("note_id = ? AND completed = ?", note.ID, false).Delete(&models.ActionItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear extracted items: %w", err)
	}

	var done []models.ActionItem
	if err := tx.Where("note_id = ? AND completed = ?", note.ID, true).Find(&done).Error; err != nil {
		return fmt.Errorf("failed to load completed items: %w", err)
	}
	completed := make(map[string]bool, len(done))
	for _, item := range done {
		completed[strings.ToLower(item.Description)] = true
	}

	extracted := extract.ExtractDetailed(note.Content)
	summary, err := summaryJSON(extracted)
	if err != nil {
		return err
	}

	items := make([]models.ActionItem, 0, len(extracted))
	for i, item := range extracted {
		if completed[strings.ToLower(item.Text)] {
			continue
		}
		items = append(items, toActionItem(note.ID, i, item))
	}
	if len(items) > 0 {
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to save action items: %w", err)
		}
	}

	note.ExtractionSummary = summary
	if err := tx.Model(note).UpdateColumn("extraction_summary", summary).Error; err != nil {
		return fmt.Errorf("failed to save extraction summary: %w", err)
	}
	note.ActionItems = append(done, items...)
	return nil
}

func (s *NoteService) loadNote(db *gorm.DB, id string) (*models.Note, error) {
	var note models.Note
	err := db.Preload("ActionItems", func(db *gorm.DB) *gorm.DB {
		return db.Order("position").Order("created_at")
	}).First(&note, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err, "note")
	}
	return &note, nil
}

func toActionItem(noteID string, position int, item extract.ActionItem) models.ActionItem {
	return models.ActionItem{
		NoteID:      &noteID,
		Description: item.Text,
		Priority:    string(item.Priority),
		Category:    string(item.Category),
		Assignee:    truncateRunes(item.Assignee, maxAssigneeLen),
		DueDate:     truncateRunes(item.DueDate, maxDueDateLen),
		Context:     item.Context,
		Position:    position,
		CreatedAt:   now(),
		UpdatedAt:   now(),
	}
}

func summaryJSON(items []extract.ActionItem) (datatypes.JSON, error) {
	b, err := json.Marshal(extract.Summarize(items))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction summary: %w", err)
	}
	return datatypes.JSON(b), nil
}
