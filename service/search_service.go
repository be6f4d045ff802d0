package services

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Itish41/ActionScribe/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxQueryLen = 100

// SearchService runs case-insensitive substring searches over notes and
// action items. Notes go through Elasticsearch when an index is configured.
type SearchService struct {
	db     *gorm.DB
	index  *NoteIndex
	logger *zap.Logger
}

func NewSearchService(db *gorm.DB, index *NoteIndex, logger *zap.Logger) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SearchService{db: db, index: index, logger: logger}
}

// SearchResult is the combined result of SearchAll.
type SearchResult struct {
	Notes            []models.Note       `json:"notes"`
	ActionItems      []models.ActionItem `json:"action_items"`
	TotalCount       int                 `json:"total_count"`
	NotesCount       int                 `json:"notes_count"`
	ActionItemsCount int                 `json:"action_items_count"`
}

func validateQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", validationError("search query must not be blank")
	}
	if utf8.RuneCountInString(q) > maxQueryLen {
		return "", validationError("search query must be at most %d characters", maxQueryLen)
	}
	return q, nil
}

func searchLimit(limit int) int {
	return ListQuery{Limit: limit}.normalized().Limit
}

// SearchAll searches note titles and contents and action item descriptions.
func (s *SearchService) SearchAll(ctx context.Context, q string, limit int) (*SearchResult, error) {
	q, err := validateQuery(q)
	if err != nil {
		return nil, err
	}
	limit = searchLimit(limit)

	notes, err := s.searchNotes(ctx, q, limit, true, true)
	if err != nil {
		return nil, err
	}
	items, err := s.searchActionItems(ctx, q, limit, nil)
	if err != nil {
		return nil, err
	}

	return &SearchResult{
		Notes:            notes,
		ActionItems:      items,
		TotalCount:       len(notes) + len(items),
		NotesCount:       len(notes),
		ActionItemsCount: len(items),
	}, nil
}

// SearchNotes searches the selected note fields. Selecting neither field
// matches nothing.
func (s *SearchService) SearchNotes(ctx context.Context, q string, limit int, inTitle, inContent bool) ([]models.Note, error) {
	q, err := validateQuery(q)
	if err != nil {
		return nil, err
	}
	return s.searchNotes(ctx, q, searchLimit(limit), inTitle, inContent)
}

// SearchActionItems searches descriptions, optionally only open or only
// completed items.
func (s *SearchService) SearchActionItems(ctx context.Context, q string, limit int, completed *bool) ([]models.ActionItem, error) {
	q, err := validateQuery(q)
	if err != nil {
		return nil, err
	}
	return s.searchActionItems(ctx, q, searchLimit(limit), completed)
}

func (s *SearchService) searchNotes(ctx context.Context, q string, limit int, inTitle, inContent bool) ([]models.Note, error) {
	var fields []string
	if inTitle {
		fields = append(fields, "title")
	}
	if inContent {
		fields = append(fields, "content")
	}
	if len(fields) == 0 {
		return []models.Note{}, nil
	}

	if s.index != nil {
		notes, err := s.searchNotesIndexed(ctx, q, fields, limit)
		if err == nil {
			return notes, nil
		}
		s.logger.Warn("[searchNotes] Elasticsearch search failed, falling back to database", zap.Error(err))
	}

	pattern := likePattern(q)
	conds := make([]string, 0, len(fields))
	args := make([]interface{}, 0, len(fields))
	for _, f := range fields {
		conds = append(conds, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", f))
		args = append(args, pattern)
	}

	notes := []models.Note{}
	err := s.db.WithContext(ctx).
		Where(strings.Join(conds, " OR "), args...).
		Order("created_at DESC").
		Limit(limit).
		Find(&notes).Error
	if err != nil {
		s.logger.Error("[searchNotes] Error searching notes", zap.Error(err))
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return notes, nil
}

// searchNotesIndexed loads the notes Elasticsearch matched, keeping its
// ranking. Hits no longer in the database are skipped.
func (s *SearchService) searchNotesIndexed(ctx context.Context, q string, fields []string, limit int) ([]models.Note, error) {
	ids, err := s.index.Search(ctx, q, fields, limit)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Note{}, nil
	}

	var found []models.Note
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, fmt.Errorf("failed to load indexed notes: %w", err)
	}
	byID := make(map[string]models.Note, len(found))
	for _, n := range found {
		byID[n.ID] = n
	}

	notes := make([]models.Note, 0, len(found))
	for _, id := range ids {
		if n, ok := byID[id]; ok {
			notes = append(notes, n)
		}
	}
	return notes, nil
}

func (s *SearchService) searchActionItems(ctx context.Context, q string, limit int, completed *bool) ([]models.ActionItem, error) {
	db := s.db.WithContext(ctx).Where("LOWER(description) LIKE ? ESCAPE '\\'", likePattern(q))
	if completed != nil {
		db = db.Where("completed = ?", *completed)
	}

	items := []models.ActionItem{}
	if err := db.Order("created_at DESC").Limit(limit).Find(&items).Error; err != nil {
		s.logger.Error("[searchActionItems] Error searching action items", zap.Error(err))
		return nil, fmt.Errorf("failed to search action items: %w", err)
	}
	return items, nil
}
