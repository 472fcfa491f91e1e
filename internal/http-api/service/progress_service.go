package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mangareader/internal/http-api/models"
	"mangareader/internal/http-api/repository"
)

type ProgressService interface {
	Record(ctx context.Context, userID, mangaID, chapterID string) error
	Get(ctx context.Context, userID, mangaID string) (*models.ReadingProgress, error)
	History(ctx context.Context, userID string) ([]models.ReadingProgress, error)
}

type progressService struct {
	repo *repository.HybridProgressRepo
}

func NewProgressService(repo *repository.HybridProgressRepo) ProgressService {
	return &progressService{repo: repo}
}

func (s *progressService) Record(ctx context.Context, userID, mangaID, chapterID string) error {
	if strings.TrimSpace(mangaID) == "" || strings.TrimSpace(chapterID) == "" {
		return errors.New("manga id and chapter id are required")
	}
	return s.repo.Save(ctx, &models.ReadingProgress{
		UserID:     userID,
		MangaID:    mangaID,
		ChapterID:  chapterID,
		LastReadAt: time.Now(),
	})
}

func (s *progressService) Get(ctx context.Context, userID, mangaID string) (*models.ReadingProgress, error) {
	return s.repo.Get(ctx, userID, mangaID)
}

func (s *progressService) History(ctx context.Context, userID string) ([]models.ReadingProgress, error) {
	return s.repo.ListByUser(ctx, userID)
}
