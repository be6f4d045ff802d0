package services

import (
	"context"
	"database/sql"
	"fmt"
	"math"

	"github.com/Itish41/ActionScribe/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StatsService computes counts and averages over notes and action items.
type StatsService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStatsService(db *gorm.DB, logger *zap.Logger) *StatsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatsService{db: db, logger: logger}
}

type Statistics struct {
	Notes       NoteTotals       `json:"notes"`
	ActionItems ActionItemTotals `json:"action_items"`
}

type NoteTotals struct {
	Total int64 `json:"total"`
}

type ActionItemTotals struct {
	Total                int64   `json:"total"`
	Completed            int64   `json:"completed"`
	Pending              int64   `json:"pending"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

type ActionItemStats struct {
	CompletedCount           int64            `json:"completed_count"`
	PendingCount             int64            `json:"pending_count"`
	TotalCount               int64            `json:"total_count"`
	CompletionRate           float64          `json:"completion_rate"`
	AverageDescriptionLength float64          `json:"average_description_length"`
	ByPriority               map[string]int64 `json:"by_priority"`
	ByCategory               map[string]int64 `json:"by_category"`
}

type NoteStats struct {
	TotalCount           int64   `json:"total_count"`
	AverageTitleLength   float64 `json:"average_title_length"`
	AverageContentLength float64 `json:"average_content_length"`
}

// GetStatistics returns the overall totals.
func (s *StatsService) GetStatistics(ctx context.Context) (*Statistics, error) {
	db := s.db.WithContext(ctx)

	var stats Statistics
	if err := db.Model(&models.Note{}).Count(&stats.Notes.Total).Error; err != nil {
		return nil, s.fail("GetStatistics", err)
	}
	if err := db.Model(&models.ActionItem{}).Count(&stats.ActionItems.Total).Error; err != nil {
		return nil, s.fail("GetStatistics", err)
	}
	if err := db.Model(&models.ActionItem{}).Where("completed = ?", true).Count(&stats.ActionItems.Completed).Error; err != nil {
		return nil, s.fail("GetStatistics", err)
	}
	stats.ActionItems.Pending = stats.ActionItems.Total - stats.ActionItems.Completed
	stats.ActionItems.CompletionPercentage = percentage(stats.ActionItems.Completed, stats.ActionItems.Total)
	return &stats, nil
}

// GetActionItemStats returns completion and length figures plus the counts
// per priority and category.
func (s *StatsService) GetActionItemStats(ctx context.Context) (*ActionItemStats, error) {
	db := s.db.WithContext(ctx)

	var stats ActionItemStats
	if err := db.Model(&models.ActionItem{}).Where("completed = ?", true).Count(&stats.CompletedCount).Error; err != nil {
		return nil, s.fail("GetActionItemStats", err)
	}
	if err := db.Model(&models.ActionItem{}).Where("completed = ?", false).Count(&stats.PendingCount).Error; err != nil {
		return nil, s.fail("GetActionItemStats", err)
	}
	stats.TotalCount = stats.CompletedCount + stats.PendingCount
	stats.CompletionRate = percentage(stats.CompletedCount, stats.TotalCount)

	avg, err := averageLength(db.Model(&models.ActionItem{}), "description")
	if err != nil {
		return nil, s.fail("GetActionItemStats", err)
	}
	stats.AverageDescriptionLength = avg

	if stats.ByPriority, err = countBy(db, "priority"); err != nil {
		return nil, s.fail("GetActionItemStats", err)
	}
	if stats.ByCategory, err = countBy(db, "category"); err != nil {
		return nil, s.fail("GetActionItemStats", err)
	}
	return &stats, nil
}

// GetNoteStats returns the note count and average title and content length.
func (s *StatsService) GetNoteStats(ctx context.Context) (*NoteStats, error) {
	db := s.db.WithContext(ctx)

	var stats NoteStats
	if err := db.Model(&models.Note{}).Count(&stats.TotalCount).Error; err != nil {
		return nil, s.fail("GetNoteStats", err)
	}

	var err error
	if stats.AverageTitleLength, err = averageLength(db.Model(&models.Note{}), "title"); err != nil {
		return nil, s.fail("GetNoteStats", err)
	}
	if stats.AverageContentLength, err = averageLength(db.Model(&models.Note{}), "content"); err != nil {
		return nil, s.fail("GetNoteStats", err)
	}
	return &stats, nil
}

func (s *StatsService) fail(op string, err error) error {
	s.logger.Error("["+op+"] Error computing statistics", zap.Error(err))
	return fmt.Errorf("failed to compute statistics: %w", err)
}

func averageLength(db *gorm.DB, column string) (float64, error) {
	var avg sql.NullFloat64
	if err := db.Select(fmt.Sprintf("AVG(LENGTH(%s))", column)).Scan(&avg).Error; err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return round2(avg.Float64), nil
}

// countBy groups action items by column; rows with no value count as "none".
func countBy(db *gorm.DB, column string) (map[string]int64, error) {
	var rows []struct {
		Value sql.NullString
		Count int64
	}
	err := db.Model(&models.ActionItem{}).
		Select(fmt.Sprintf("%s AS value, COUNT(*) AS count", column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		key := r.Value.String
		if !r.Value.Valid || key == "" {
			key = "none"
		}
		counts[key] += r.Count
	}
	return counts, nil
}

func percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
