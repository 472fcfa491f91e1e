package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mangareader/internal/http-api/models"
)

// ProgressPostgresRepo is the durable store for reading progress.
type ProgressPostgresRepo struct {
	db *gorm.DB
}

func NewProgressPostgresRepo(db *gorm.DB) *ProgressPostgresRepo {
	return &ProgressPostgresRepo{db: db}
}

// Save upserts on (user_id, manga_id): re-reading a title only moves the
// chapter pointer forward in time.
func (r *ProgressPostgresRepo) Save(ctx context.Context, p *models.ReadingProgress) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "manga_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"chapter_id", "last_read_at"}),
		}).
		Create(p).Error
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (r *ProgressPostgresRepo) Get(ctx context.Context, userID, mangaID string) (*models.ReadingProgress, error) {
	var p models.ReadingProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get progress: %w", err)
	}
	return &p, nil
}

func (r *ProgressPostgresRepo) ListByUser(ctx context.Context, userID string) ([]models.ReadingProgress, error) {
	var list []models.ReadingProgress
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_read_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return list, nil
}
