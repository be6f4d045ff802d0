package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/Itish41/ActionScribe/extract"
	"github.com/Itish41/ActionScribe/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxDescriptionLen = 1000
	// column widths of action_items.assignee and action_items.due_date
	maxAssigneeLen = 100
	maxDueDateLen  = 50
)

// ActionItemService manages action items directly, whether extracted from a
// note or created by hand.
type ActionItemService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewActionItemService(db *gorm.DB, logger *zap.Logger) *ActionItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ActionItemService{db: db, logger: logger}
}

// ActionItemQuery filters List. Empty strings and nil mean no filter.
type ActionItemQuery struct {
	ListQuery
	Completed *bool
	NoteID    string
	Priority  string
	Category  string
	Assignee  string
}

// ActionItemInput creates or fully replaces an action item. Only Description
// is required; priority defaults to medium and category to general.
type ActionItemInput struct {
	Description string  `json:"description"`
	NoteID      *string `json:"note_id"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category"`
	Assignee    string  `json:"assignee"`
	DueDate     string  `json:"due_date"`
}

// ActionItemPatch updates only the fields that are set.
type ActionItemPatch struct {
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority"`
	Category    *string `json:"category"`
	Assignee    *string `json:"assignee"`
	DueDate     *string `json:"due_date"`
}

// BulkResult reports the outcome of a bulk operation.
type BulkResult struct {
	Message        string   `json:"message"`
	UpdatedCount   int      `json:"updated_count,omitempty"`
	DeletedCount   int      `json:"deleted_count,omitempty"`
	DeletedIDs     []string `json:"deleted_ids,omitempty"`
	TotalRequested int      `json:"total_requested"`
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", validationError("description must not be blank")
	}
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", validationError("description must be at most %d characters", maxDescriptionLen)
	}
	return description, nil
}

func validateAssignee(assignee string) (string, error) {
	assignee = strings.TrimSpace(assignee)
	if utf8.RuneCountInString(assignee) > maxAssigneeLen {
		return "", validationError("assignee must be at most %d characters", maxAssigneeLen)
	}
	return assignee, nil
}

func validateDueDate(due string) (string, error) {
	due = strings.TrimSpace(due)
	if utf8.RuneCountInString(due) > maxDueDateLen {
		return "", validationError("due date must be at most %d characters", maxDueDateLen)
	}
	return due, nil
}

func validatePriority(p string) (string, error) {
	if p == "" {
		return string(extract.PriorityMedium), nil
	}
	p = strings.ToLower(strings.TrimSpace(p))
	if !extract.Priority(p).IsValid() {
		return "", validationError("priority must be one of high, medium, low")
	}
	return p, nil
}

func validateCategory(c string) (string, error) {
	if c == "" {
		return string(extract.CategoryGeneral), nil
	}
	c = strings.ToLower(strings.TrimSpace(c))
	if !extract.Category(c).IsValid() {
		return "", validationError("category must be one of task, reminder, decision, general")
	}
	return c, nil
}

func (in ActionItemInput) toModel() (models.ActionItem, error) {
	description, err := validateDescription(in.Description)
	if err != nil {
		return models.ActionItem{}, err
	}
	priority, err := validatePriority(in.Priority)
	if err != nil {
		return models.ActionItem{}, err
	}
	category, err := validateCategory(in.Category)
	if err != nil {
		return models.ActionItem{}, err
	}
	assignee, err := validateAssignee(in.Assignee)
	if err != nil {
		return models.ActionItem{}, err
	}
	dueDate, err := validateDueDate(in.DueDate)
	if err != nil {
		return models.ActionItem{}, err
	}
	var noteID *string
	if in.NoteID != nil {
		id, err := validateID(*in.NoteID, "Note")
		if err != nil {
			return models.ActionItem{}, err
		}
		noteID = &id
	}
	return models.ActionItem{
		NoteID:      noteID,
		Description: description,
		Priority:    priority,
		Category:    category,
		Assignee:    assignee,
		DueDate:     dueDate,
	}, nil
}

// List returns one page of action items matching q.
func (s *ActionItemService) List(ctx context.Context, q ActionItemQuery) ([]models.ActionItem, error) {
	db := s.db.WithContext(ctx).Model(&models.ActionItem{})
	if q.Completed != nil {
		db = db.Where("completed = ?", *q.Completed)
	}
	if q.NoteID != "" {
		db = db.Where("note_id = ?", q.NoteID)
	}
	if q.Priority != "" {
		db = db.Where("priority = ?", strings.ToLower(q.Priority))
	}
	if q.Category != "" {
		db = db.Where("category = ?", strings.ToLower(q.Category))
	}
	if q.Assignee != "" {
		db = db.Where("LOWER(assignee) = ?", strings.ToLower(q.Assignee))
	}

	items := []models.ActionItem{}
	if err := q.apply(db, actionItemSortFields).Find(&items).Error; err != nil {
		s.logger.Error("[List] Error fetching action items", zap.Error(err))
		return nil, fmt.Errorf("failed to list action items: %w", err)
	}
	return items, nil
}

// Create stores a hand-written action item. A NoteID must reference an
// existing note.
func (s *ActionItemService) Create(ctx context.Context, in ActionItemInput) (*models.ActionItem, error) {
	item, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if item.NoteID != nil {
		if err := s.db.WithContext(ctx).First(&models.Note{}, "id = ?", *item.NoteID).Error; err != nil {
			return nil, notFound(err, "note")
		}
	}
	item.CreatedAt = now()
	item.UpdatedAt = now()

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		s.logger.Error("[Create] Error creating action item", zap.Error(err))
		return nil, fmt.Errorf("failed to create action item: %w", err)
	}
	s.logger.Info("[Create] Action item created", zap.String("action_item_id", item.ID))
	return &item, nil
}

func (s *ActionItemService) Get(ctx context.Context, id string) (*models.ActionItem, error) {
	id, err := validateID(id, "Item")
	if err != nil {
		return nil, err
	}
	return s.find(s.db.WithContext(ctx), id)
}

func (s *ActionItemService) find(db *gorm.DB, id string) (*models.ActionItem, error) {
	var item models.ActionItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "action item")
	}
	return &item, nil
}

// Patch changes the given fields.
func (s *ActionItemService) Patch(ctx context.Context, id string, patch ActionItemPatch) (*models.ActionItem, error) {
	id, err := validateID(id, "Item")
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Description != nil {
		description, err := validateDescription(*patch.Description)
		if err != nil {
			return nil, err
		}
		updates["description"] = description
	}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}
	if patch.Priority != nil {
		if *patch.Priority == "" {
			return nil, validationError("priority must be one of high, medium, low")
		}
		priority, err := validatePriority(*patch.Priority)
		if err != nil {
			return nil, err
		}
		updates["priority"] = priority
	}
	if patch.Category != nil {
		if *patch.Category == "" {
			return nil, validationError("category must be one of task, reminder, decision, general")
		}
		category, err := validateCategory(*patch.Category)
		if err != nil {
			return nil, err
		}
		updates["category"] = category
	}
	if patch.Assignee != nil {
		assignee, err := validateAssignee(*patch.Assignee)
		if err != nil {
			return nil, err
		}
		updates["assignee"] = assignee
	}
	if patch.DueDate != nil {
		dueDate, err := validateDueDate(*patch.DueDate)
		if err != nil {
			return nil, err
		}
		updates["due_date"] = dueDate
	}

	return s.update(ctx, id, updates)
}

// Update replaces the item's fields and marks it not completed.
func (s *ActionItemService) Update(ctx context.Context, id string, in ActionItemInput) (*models.ActionItem, error) {
	id, err := validateID(id, "Item")
	if err != nil {
		return nil, err
	}
	item, err := in.toModel()
	if err != nil {
		return nil, err
	}

	return s.update(ctx, id, map[string]interface{}{
		"description": item.Description,
		"priority":    item.Priority,
		"category":    item.Category,
		"assignee":    item.Assignee,
		"due_date":    item.DueDate,
		"completed":   false,
	})
}

func (s *ActionItemService) update(ctx context.Context, id string, updates map[string]interface{}) (*models.ActionItem, error) {
	var updated *models.ActionItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		item, err := s.find(tx, id)
		if err != nil {
			return err
		}
		updates["updated_at"] = now()
		if err := tx.Model(item).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update action item: %w", err)
		}
		updated, err = s.find(tx, id)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("[Update] Error updating action item", zap.String("action_item_id", id), zap.Error(err))
		}
		return nil, err
	}
	return updated, nil
}

// Complete marks an open item as completed.
func (s *ActionItemService) Complete(ctx context.Context, id string) (*models.ActionItem, error) {
	id, err := validateID(id, "Item")
	if err != nil {
		return nil, err
	}

	item, err := s.find(s.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	if item.Completed {
		return nil, ErrAlreadyCompleted
	}

	item, err = s.update(ctx, id, map[string]interface{}{"completed": true})
	if err != nil {
		return nil, err
	}
	s.logger.Info("[Complete] Action item completed", zap.String("action_item_id", id))
	return item, nil
}

func (s *ActionItemService) Delete(ctx context.Context, id string) error {
	id, err := validateID(id, "Item")
	if err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&models.ActionItem{}, "id = ?", id)
	if res.Error != nil {
		s.logger.Error("[Delete] Error deleting action item", zap.String("action_item_id", id), zap.Error(res.Error))
		return fmt.Errorf("failed to delete action item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("action item %w", ErrNotFound)
	}
	return nil
}

// BulkComplete completes every listed item. Nothing changes unless all ids
// exist; already completed items are not counted.
func (s *ActionItemService) BulkComplete(ctx context.Context, ids []string) (*BulkResult, error) {
	ids, err := validateIDs(ids)
	if err != nil {
		return nil, err
	}

	var updated int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, ids); err != nil {
			return err
		}
		res := tx.Model(&models.ActionItem{}).
			Where("id IN ? AND completed = ?", ids, false).
			Updates(map[string]interface{}{"completed": true, "updated_at": now()})
		if res.Error != nil {
			return fmt.Errorf("failed to complete action items: %w", res.Error)
		}
		updated = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &BulkResult{
		Message:        fmt.Sprintf("Successfully updated %d items", updated),
		UpdatedCount:   int(updated),
		TotalRequested: len(ids),
	}, nil
}

// BulkDelete deletes every listed item, or none when any id is missing.
func (s *ActionItemService) BulkDelete(ctx context.Context, ids []string) (*BulkResult, error) {
	ids, err := validateIDs(ids)
	if err != nil {
		return nil, err
	}

	var deleted int64
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireAll(tx, ids); err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.ActionItem{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete action items: %w", res.Error)
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return nil, err
	}

	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)
	return &BulkResult{
		Message:        fmt.Sprintf("Successfully deleted %d items", deleted),
		DeletedCount:   int(deleted),
		DeletedIDs:     sorted,
		TotalRequested: len(ids),
	}, nil
}

// validateIDs rejects an empty list or a malformed id and drops duplicates.
func validateIDs(ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, validationError("no item IDs provided")
	}
	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, raw := range ids {
		parsed, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, validationError("all item IDs must be valid UUIDs")
		}
		id := parsed.String()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	return unique, nil
}

func requireAll(tx *gorm.DB, ids []string) error {
	var found []string
	if err := tx.Model(&models.ActionItem{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return fmt.Errorf("failed to look up action items: %w", err)
	}
	have := make(map[string]bool, len(found))
	for _, id := range found {
		have[strings.ToLower(id)] = true
	}

	var missing []string
	for _, id := range ids {
		if !have[strings.ToLower(id)] {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingIDsError{IDs: missing}
	}
	return nil
}
