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

type MockLibraryService struct {
	mock.Mock
}

func (m *MockLibraryService) Add(ctx context.Context, entry *models.LibraryEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLibraryService) Remove(ctx context.Context, userID, mangaID string) error {
	return m.Called(ctx, userID, mangaID).Error(0)
}

func (m *MockLibraryService) List(ctx context.Context, userID string) ([]models.LibraryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LibraryEntry), args.Error(1)
}

func (m *MockLibraryService) MarkRead(ctx context.Context, userID, mangaID string) error {
	return m.Called(ctx, userID, mangaID).Error(0)
}

// setupLibraryRouter mirrors the production wiring: library routes sit
// behind the JWT middleware on their own group.
func setupLibraryRouter(svc service.LibraryService, auth service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	authed := r.Group("/api")
	authed.Use(middleware.AuthMiddleware(auth))
	NewLibraryHandler(svc).RegisterRoutes(authed)
	return r
}

func validAuth() *MockAuthService {
	auth := new(MockAuthService)
	auth.On("ValidateToken", "good-token").
		Return(&service.Claims{UserID: "user-1", Username: "reader"}, nil)
	return auth
}

func TestLibraryAdd(t *testing.T) {
	body := `{"manga_id":"alpha","title":"Alpha"}`

	t.Run("Created", func(t *testing.T) {
		svc := new(MockLibraryService)
		svc.On("Add", mock.Anything, mock.MatchedBy(func(e *models.LibraryEntry) bool {
			return e.UserID == "user-1" && e.MangaID == "alpha" && e.Title == "Alpha"
		})).Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/library", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer good-token")
		setupLibraryRouter(svc, validAuth()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("DuplicateIsConflict", func(t *testing.T) {
		svc := new(MockLibraryService)
		svc.On("Add", mock.Anything, mock.Anything).Return(repository.ErrDuplicate)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/library", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer good-token")
		setupLibraryRouter(svc, validAuth()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already in library")
	})

	t.Run("MissingToken", func(t *testing.T) {
		svc := new(MockLibraryService)
		auth := new(MockAuthService)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/library", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		setupLibraryRouter(svc, auth).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		svc.AssertNotCalled(t, "Add")
	})
}

func TestLibraryList(t *testing.T) {
	svc := new(MockLibraryService)
	svc.On("List", mock.Anything, "user-1").
		Return([]models.LibraryEntry{{MangaID: "alpha", Title: "Alpha"}}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/library", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	setupLibraryRouter(svc, validAuth()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Alpha")
	svc.AssertExpectations(t)
}

func TestLibraryRemove(t *testing.T) {
	t.Run("Removed", func(t *testing.T) {
		svc := new(MockLibraryService)
		svc.On("Remove", mock.Anything, "user-1", "alpha").Return(nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/library/alpha", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		setupLibraryRouter(svc, validAuth()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("NotInLibrary", func(t *testing.T) {
		svc := new(MockLibraryService)
		svc.On("Remove", mock.Anything, "user-1", "ghost").Return(repository.ErrNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodDelete, "/api/library/ghost", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		setupLibraryRouter(svc, validAuth()).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
