package services

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
	defaultSort  = "-created_at"
)

// ListQuery carries the paging and ordering shared by every list endpoint.
type ListQuery struct {
	Skip  int
	Limit int
	// Sort is a column name, prefixed with "-" for descending order.
	Sort string
}

func (q ListQuery) normalized() ListQuery {
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
	return q
}

// apply adds offset, limit and order to db. Sort fields outside allowed fall
// back to newest first.
func (q ListQuery) apply(db *gorm.DB, allowed map[string]bool) *gorm.DB {
	q = q.normalized()
	return db.Order(orderBy(q.Sort, allowed)).Offset(q.Skip).Limit(q.Limit)
}

func orderBy(sort string, allowed map[string]bool) clause.OrderByColumn {
	field := strings.TrimPrefix(sort, "-")
	desc := strings.HasPrefix(sort, "-")
	if !allowed[field] {
		field = strings.TrimPrefix(defaultSort, "-")
		desc = true
	}
	return clause.OrderByColumn{Column: clause.Column{Name: field}, Desc: desc}
}

var noteSortFields = map[string]bool{
	"id": true, "title": true, "content": true, "created_at": true, "updated_at": true,
}

var actionItemSortFields = map[string]bool{
	"id": true, "note_id": true, "description": true, "completed": true,
	"priority": true, "category": true, "assignee": true, "due_date": true,
	"created_at": true, "updated_at": true,
}

// likePattern builds a case-insensitive LIKE argument matching s anywhere.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(s)) + "%"
}

// validateID returns id in canonical form so lookups match stored ids.
func validateID(id, what string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", validationError("%s ID must be a valid UUID", what)
	}
	return parsed.String(), nil
}

// truncateRunes cuts s to at most n runes.
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:n]))
}
