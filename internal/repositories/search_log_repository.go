package repositories

import (
	"context"

	"gorm.io/gorm"

	"nearby/internal/models/db_models"
)

type SearchLogRepository interface {
	Record(ctx context.Context, entry *db_models.SearchLog) error
	Recent(ctx context.Context, limit int) ([]db_models.SearchLog, error)
}

func NewSearchLogRepository(db *gorm.DB) SearchLogRepository {
	return &searchLogRepository{db: db}
}

type searchLogRepository struct {
	db *gorm.DB
}

func (r *searchLogRepository) Record(ctx context.Context, entry *db_models.SearchLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *searchLogRepository) Recent(ctx context.Context, limit int) ([]db_models.SearchLog, error) {
	if limit < 1 {
		limit = 20
	}

	var logs []db_models.SearchLog
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

// NewNoopSearchLogRepository is used when no database is configured.
func NewNoopSearchLogRepository() SearchLogRepository {
	return noopSearchLogRepository{}
}

type noopSearchLogRepository struct{}

func (noopSearchLogRepository) Record(context.Context, *db_models.SearchLog) error { return nil }

func (noopSearchLogRepository) Recent(context.Context, int) ([]db_models.SearchLog, error) {
	return []db_models.SearchLog{}, nil
}
