package services

import (
	"context"

	"github.com/yeremiapane/restaurant-tables/models"
	"gorm.io/gorm"
)

const (
	defaultJournalLimit = 50
	maxJournalLimit     = 500
)

// Journal stores the activity log of floor mutations.
type Journal struct {
	DB *gorm.DB
}

func NewJournal(db *gorm.DB) *Journal {
	return &Journal{DB: db}
}

// ActivityFilter narrows Recent. Zero values mean no filter.
type ActivityFilter struct {
	TableName string
	Action    string
	Limit     int
}

func (j *Journal) Record(ctx context.Context, entry *models.ActivityLog) error {
	return j.DB.WithContext(ctx).Create(entry).Error
}

// Recent returns the newest entries first.
func (j *Journal) Recent(ctx context.Context, f ActivityFilter) ([]models.ActivityLog, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	if limit > maxJournalLimit {
		limit = maxJournalLimit
	}

	q := j.DB.WithContext(ctx).Model(&models.ActivityLog{})
	if f.TableName != "" {
		q = q.Where("table_name = ?", f.TableName)
	}
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}

	var entries []models.ActivityLog
	if err := q.Order("id DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
