package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mangareader/internal/http-api/middleware"
	"mangareader/internal/http-api/service"
	"mangareader/internal/scrape"
)

type MockMangaService struct {
	mock.Mock
}

func (m *MockMangaService) Browse(ctx context.Context, page int, genre string) ([]scrape.MangaSummary, error) {
	args := m.Called(ctx, page, genre)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scrape.MangaSummary), args.Error(1)
}

func (m *MockMangaService) Search(ctx context.Context, query string, page int) ([]scrape.MangaSummary, error) {
	args := m.Called(ctx, query, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scrape.MangaSummary), args.Error(1)
}

func (m *MockMangaService) Detail(ctx context.Context, mangaID string) (*scrape.MangaDetail, error) {
	args := m.Called(ctx, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrape.MangaDetail), args.Error(1)
}

func (m *MockMangaService) FirstChapter(ctx context.Context, mangaID string) (*scrape.ChapterRef, error) {
	args := m.Called(ctx, mangaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrape.ChapterRef), args.Error(1)
}

func (m *MockMangaService) Chapter(ctx context.Context, mangaID, chapterID, mirror string) (*scrape.Chapter, string, error) {
	args := m.Called(ctx, mangaID, chapterID, mirror)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*scrape.Chapter), args.String(1), args.Error(2)
}

func (m *MockMangaService) Author(ctx context.Context, slug string, page int) (*scrape.AuthorPage, error) {
	args := m.Called(ctx, slug, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrape.AuthorPage), args.Error(1)
}

func setupMangaRouter(svc service.MangaService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ttls := service.CacheTTLs{
		Search:  time.Minute,
		Browse:  10 * time.Minute,
		Chapter: 24 * time.Hour,
	}
	NewMangaHandler(svc, ttls).RegisterRoutes(r.Group("/api"))
	return r
}

func TestBrowse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Browse", mock.Anything, 2, "action").
			Return([]scrape.MangaSummary{{ID: "alpha", Title: "Alpha"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/browse?page=2&genre=action", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Alpha"`)
		assert.Equal(t, "public, max-age=600, stale-while-revalidate=600", w.Header().Get("Cache-Control"))
		svc.AssertExpectations(t)
	})

	t.Run("DefaultPageIsOne", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Browse", mock.Anything, 1, "").
			Return([]scrape.MangaSummary{}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/browse", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("InvalidPage", func(t *testing.T) {
		svc := new(MockMangaService)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/browse?page=zero", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"result":"error"`)
		svc.AssertNotCalled(t, "Browse")
	})

	t.Run("UpstreamFailure", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Browse", mock.Anything, 1, "").
			Return(nil, errors.New("upstream returned 503"))

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/browse", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), `"result":"error"`)
	})
}

func TestSearch(t *testing.T) {
	t.Run("MissingQuery", func(t *testing.T) {
		svc := new(MockMangaService)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/search", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "Search")
	})

	t.Run("Success", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Search", mock.Anything, "one piece", 1).
			Return([]scrape.MangaSummary{{ID: "one-piece", Title: "One Piece"}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/search?q=one+piece", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "public, max-age=60, stale-while-revalidate=60", w.Header().Get("Cache-Control"))
		svc.AssertExpectations(t)
	})
}

func TestFirstChapter(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("FirstChapter", mock.Anything, "alpha").
			Return(&scrape.ChapterRef{ID: "chapter-1", Name: "Chapter 1"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/manga/alpha/first-chapter", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "chapter-1")
	})

	t.Run("NoChapters", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("FirstChapter", mock.Anything, "empty").
			Return(nil, service.ErrNoChapters)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/manga/empty/first-chapter", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestChapter(t *testing.T) {
	chapter := &scrape.Chapter{
		MangaID: "alpha",
		ID:      "chapter-1",
		Title:   "Alpha Chapter 1",
		Pages:   []string{"https://img.example/1.jpg"},
	}

	t.Run("MirrorCookieSetWithConsent", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Chapter", mock.Anything, "alpha", "chapter-1", "").
			Return(chapter, "server2", nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/chapter/alpha/chapter-1", nil)
		req.AddCookie(&http.Cookie{Name: middleware.ConsentCookie, Value: "essential,functional"})
		setupMangaRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "preferred_mirror", cookies[0].Name)
		assert.Equal(t, "server2", cookies[0].Value)
	})

	t.Run("NoMirrorCookieWithoutConsent", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Chapter", mock.Anything, "alpha", "chapter-1", "").
			Return(chapter, "server2", nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/chapter/alpha/chapter-1", nil)
		setupMangaRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("ExistingAffinityForwarded", func(t *testing.T) {
		svc := new(MockMangaService)
		svc.On("Chapter", mock.Anything, "alpha", "chapter-1", "server3").
			Return(chapter, "", nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/chapter/alpha/chapter-1", nil)
		req.AddCookie(&http.Cookie{Name: "preferred_mirror", Value: "server3"})
		setupMangaRouter(svc).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Result().Cookies())
		svc.AssertExpectations(t)
	})
}

func TestAuthor(t *testing.T) {
	svc := new(MockMangaService)
	svc.On("Author", mock.Anything, "great-author", 1).
		Return(&scrape.AuthorPage{
			Slug:   "great-author",
			Name:   "Great Author",
			Titles: []scrape.MangaSummary{{ID: "one"}},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/author/great-author", nil)
	setupMangaRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Great Author")
	svc.AssertExpectations(t)
}
