package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"mangareader/internal/http-api/models"
)

type LibraryRepository interface {
	Add(ctx context.Context, entry *models.LibraryEntry) error
	Remove(ctx context.Context, userID, mangaID string) error
	List(ctx context.Context, userID string) ([]models.LibraryEntry, error)
	UpdateLastRead(ctx context.Context, userID, mangaID string, at time.Time) error
	Exists(ctx context.Context, userID, mangaID string) (bool, error)
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

func (r *libraryRepository) Add(ctx context.Context, entry *models.LibraryEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("add to library: %w", err)
	}
	return nil
}

func (r *libraryRepository) Remove(ctx context.Context, userID, mangaID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		Delete(&models.LibraryEntry{})

	if result.Error != nil {
		return fmt.Errorf("remove from library: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *libraryRepository) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	var entries []models.LibraryEntry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return entries, nil
}

func (r *libraryRepository) UpdateLastRead(ctx context.Context, userID, mangaID string, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		Update("last_read_at", at)
	if result.Error != nil {
		return fmt.Errorf("update last read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *libraryRepository) Exists(ctx context.Context, userID, mangaID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.LibraryEntry{}).
		Where("user_id = ? AND manga_id = ?", userID, mangaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
