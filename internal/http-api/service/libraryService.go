package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"mangareader/internal/http-api/models"
	"mangareader/internal/http-api/repository"
)

type LibraryService interface {
	Add(ctx context.Context, entry *models.LibraryEntry) error
	Remove(ctx context.Context, userID, mangaID string) error
	List(ctx context.Context, userID string) ([]models.LibraryEntry, error)
	MarkRead(ctx context.Context, userID, mangaID string) error
}

type libraryService struct {
	repo repository.LibraryRepository
}

func NewLibraryService(repo repository.LibraryRepository) LibraryService {
	return &libraryService{repo: repo}
}

func (s *libraryService) Add(ctx context.Context, entry *models.LibraryEntry) error {
	if strings.TrimSpace(entry.MangaID) == "" {
		return errors.New("manga id is required")
	}
	if strings.TrimSpace(entry.Title) == "" {
		return errors.New("title is required")
	}
	return s.repo.Add(ctx, entry)
}

func (s *libraryService) Remove(ctx context.Context, userID, mangaID string) error {
	return s.repo.Remove(ctx, userID, mangaID)
}

func (s *libraryService) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	return s.repo.List(ctx, userID)
}

func (s *libraryService) MarkRead(ctx context.Context, userID, mangaID string) error {
	return s.repo.UpdateLastRead(ctx, userID, mangaID, time.Now())
}
