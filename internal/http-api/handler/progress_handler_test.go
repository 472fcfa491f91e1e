package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mangareader/internal/http-api/middleware"
	"mangareader/internal/http-api/models"
	"mangareader/internal/http-api/repository"
	"mangareader/internal/http-api/service"
)

type MockProgressService struct {
	mock.Mock
}

func (m *MockProgressService) Record(ctx context.Context, userID, mangaID, chapterID string) error {
	return m.Called(ctx, userID, mangaID, chapterID).Error(0)
}

func (m *MockProgressService) Get(ctx context.Context, userID, mangaID string) (*models.ReadingProgress, error) {
	args := m.Called(ctx, userID, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReadingProgress), args.Error(1)
}

func (m *MockProgressService) History(ctx context.Context, userID string) ([]models.ReadingProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ReadingProgress), args.Error(1)
}

func setupProgressRouter(svc service.ProgressService, auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware(auth))
	NewProgressHandler(svc).RegisterRoutes(authed)
	return r
}

func TestProgressRecord(t *testing.T) {
	svc := new(MockProgressService)
	svc.On("Record", mock.Anything, "user-1", "alpha", "chapter-3").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/history",
		bytes.NewBufferString(`{"manga_id":"alpha","chapter_id":"chapter-3"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer good-token")
	setupProgressRouter(svc, validAuth()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestProgressGet(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockProgressService)
		svc.On("Get", mock.Anything, "user-1", "alpha").
			Return(&models.ReadingProgress{MangaID: "alpha", ChapterID: "chapter-3"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/history/alpha", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		setupProgressRouter(svc, validAuth()).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "chapter-3")
	})

	t.Run("NoProgress", func(t *testing.T) {
		svc := new(MockProgressService)
		svc.On("Get", mock.Anything, "user-1", "ghost").Return(nil, repository.ErrNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/history/ghost", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		setupProgressRouter(svc, validAuth()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
