package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mangareader/internal/http-api/models"
)

type MetaRepository interface {
	Get(ctx context.Context, source, slug string) (*models.MetaLink, error)
	Save(ctx context.Context, link *models.MetaLink) error
}

type metaRepository struct {
	db *gorm.DB
}

func NewMetaRepository(db *gorm.DB) MetaRepository {
	return &metaRepository{db: db}
}

func (r *metaRepository) Get(ctx context.Context, source, slug string) (*models.MetaLink, error) {
	var link models.MetaLink
	err := r.db.WithContext(ctx).
		Where("source = ? AND slug = ?", source, slug).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get meta link: %w", err)
	}
	return &link, nil
}

func (r *metaRepository) Save(ctx context.Context, link *models.MetaLink) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"mal_id", "ani_list_id", "title"}),
		}).
		Create(link).Error
	if err != nil {
		return fmt.Errorf("save meta link: %w", err)
	}
	return nil
}
