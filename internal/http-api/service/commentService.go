package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"mangareader/internal/http-api/models"
	"mangareader/internal/http-api/repository"
)

var ErrNotCommentOwner = errors.New("comment belongs to another user")

const maxCommentLength = 2000

type CommentService interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByManga(ctx context.Context, mangaID string, limit, offset int) ([]models.Comment, int64, error)
	Delete(ctx context.Context, userID, commentID string) error
}

type commentService struct {
	repo repository.CommentRepository
}

func NewCommentService(repo repository.CommentRepository) CommentService {
	return &commentService{repo: repo}
}

func (s *commentService) Create(ctx context.Context, comment *models.Comment) error {
	comment.Body = strings.TrimSpace(comment.Body)
	if comment.Body == "" {
		return errors.New("comment body is required")
	}
	if len(comment.Body) > maxCommentLength {
		return errors.New("comment body is too long")
	}
	comment.ID = uuid.New().String()
	return s.repo.Create(ctx, comment)
}

func (s *commentService) ListByManga(ctx context.Context, mangaID string, limit, offset int) ([]models.Comment, int64, error) {
	return s.repo.ListByManga(ctx, mangaID, limit, offset)
}

// Delete removes a comment, but only for its author.
func (s *commentService) Delete(ctx context.Context, userID, commentID string) error {
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return ErrNotCommentOwner
	}
	return s.repo.Delete(ctx, commentID)
}
