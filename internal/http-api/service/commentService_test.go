package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mangareader/internal/http-api/models"
	"mangareader/internal/http-api/repository"
)

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepository) ListByManga(ctx context.Context, mangaID string, limit, offset int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, mangaID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id string) (*models.Comment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func TestCommentCreate(t *testing.T) {
	t.Run("AssignsIDAndTrims", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Comment) bool {
			return c.ID != "" && c.Body == "great chapter"
		})).Return(nil)

		svc := NewCommentService(repo)
		comment := models.Comment{MangaID: "alpha", UserID: "user-1", Body: "  great chapter  "}
		require.NoError(t, svc.Create(context.Background(), &comment))
		repo.AssertExpectations(t)
	})

	t.Run("EmptyBody", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		comment := models.Comment{MangaID: "alpha", UserID: "user-1", Body: "   "}
		assert.Error(t, svc.Create(context.Background(), &comment))
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("TooLong", func(t *testing.T) {
		repo := new(MockCommentRepository)
		svc := NewCommentService(repo)

		comment := models.Comment{MangaID: "alpha", UserID: "user-1", Body: strings.Repeat("x", maxCommentLength+1)}
		assert.Error(t, svc.Create(context.Background(), &comment))
		repo.AssertNotCalled(t, "Create")
	})
}

func TestCommentDelete(t *testing.T) {
	t.Run("OwnerCanDelete", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("GetByID", mock.Anything, "c1").
			Return(&models.Comment{ID: "c1", UserID: "user-1"}, nil)
		repo.On("Delete", mock.Anything, "c1").Return(nil)

		svc := NewCommentService(repo)
		assert.NoError(t, svc.Delete(context.Background(), "user-1", "c1"))
		repo.AssertExpectations(t)
	})

	t.Run("NonOwnerForbidden", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("GetByID", mock.Anything, "c1").
			Return(&models.Comment{ID: "c1", UserID: "user-1"}, nil)

		svc := NewCommentService(repo)
		err := svc.Delete(context.Background(), "user-2", "c1")
		assert.ErrorIs(t, err, ErrNotCommentOwner)
		repo.AssertNotCalled(t, "Delete")
	})

	t.Run("Missing", func(t *testing.T) {
		repo := new(MockCommentRepository)
		repo.On("GetByID", mock.Anything, "ghost").Return(nil, repository.ErrNotFound)

		svc := NewCommentService(repo)
		err := svc.Delete(context.Background(), "user-1", "ghost")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
