package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"mangareader/internal/cache"
	"mangareader/internal/scrape"
	"mangareader/internal/upstream"
)

// ErrNoChapters is returned when a first-chapter redirect is requested for
// a title whose chapter list is empty.
var ErrNoChapters = errors.New("title has no chapters")

// MangaService serves the scraped content views. Every read goes through
// the response cache; a miss fetches upstream HTML and normalizes it.
type MangaService interface {
	Browse(ctx context.Context, page int, genre string) ([]scrape.MangaSummary, error)
	Search(ctx context.Context, query string, page int) ([]scrape.MangaSummary, error)
	Detail(ctx context.Context, mangaID string) (*scrape.MangaDetail, error)
	FirstChapter(ctx context.Context, mangaID string) (*scrape.ChapterRef, error)
	Chapter(ctx context.Context, mangaID, chapterID, mirror string) (*scrape.Chapter, string, error)
	Author(ctx context.Context, slug string, page int) (*scrape.AuthorPage, error)
}

// CacheTTLs carries the per-endpoint freshness windows.
type CacheTTLs struct {
	Search  time.Duration
	Browse  time.Duration
	Chapter time.Duration
}

type mangaService struct {
	source *upstream.SourceClient
	cache  *cache.Store
	ttls   CacheTTLs
}

func NewMangaService(source *upstream.SourceClient, store *cache.Store, ttls CacheTTLs) MangaService {
	return &mangaService{source: source, cache: store, ttls: ttls}
}

func (s *mangaService) Browse(ctx context.Context, page int, genre string) ([]scrape.MangaSummary, error) {
	key := cache.Key("browse", map[string]string{
		"page":  strconv.Itoa(page),
		"genre": genre,
	})
	if cached, hit := s.cache.Get(key); hit {
		return cached.([]scrape.MangaSummary), nil
	}

	resp, err := s.source.ListingHTML(ctx, page, genre)
	if err != nil {
		return nil, err
	}
	result := scrape.ParseListing(string(resp.Body))
	if !result.OK() {
		return nil, errors.New(result.Err)
	}

	s.cache.Set(key, result.Data, s.ttls.Browse)
	return result.Data, nil
}

func (s *mangaService) Search(ctx context.Context, query string, page int) ([]scrape.MangaSummary, error) {
	key := cache.Key("search", map[string]string{
		"q":    query,
		"page": strconv.Itoa(page),
	})
	if cached, hit := s.cache.Get(key); hit {
		return cached.([]scrape.MangaSummary), nil
	}

	resp, err := s.source.SearchHTML(ctx, query, page)
	if err != nil {
		return nil, err
	}
	result := scrape.ParseSearch(string(resp.Body))
	if !result.OK() {
		return nil, errors.New(result.Err)
	}

	s.cache.Set(key, result.Data, s.ttls.Search)
	return result.Data, nil
}

func (s *mangaService) Detail(ctx context.Context, mangaID string) (*scrape.MangaDetail, error) {
	key := cache.Key("detail", map[string]string{"id": mangaID})
	if cached, hit := s.cache.Get(key); hit {
		d := cached.(scrape.MangaDetail)
		return &d, nil
	}

	resp, err := s.source.DetailHTML(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	result := scrape.ParseDetail(string(resp.Body), mangaID)
	if !result.OK() {
		return nil, errors.New(result.Err)
	}

	s.cache.Set(key, result.Data, s.ttls.Browse)
	return &result.Data, nil
}

func (s *mangaService) FirstChapter(ctx context.Context, mangaID string) (*scrape.ChapterRef, error) {
	detail, err := s.Detail(ctx, mangaID)
	if err != nil {
		return nil, err
	}
	first, found := scrape.FirstChapter(detail)
	if !found {
		return nil, ErrNoChapters
	}
	return &first, nil
}

// Chapter returns the chapter plus the mirror-affinity value the upstream
// set, so the route layer can persist it as a cookie. A cache hit returns
// an empty mirror; no new affinity was negotiated.
func (s *mangaService) Chapter(ctx context.Context, mangaID, chapterID, mirror string) (*scrape.Chapter, string, error) {
	key := cache.Key("chapter", map[string]string{
		"manga":   mangaID,
		"chapter": chapterID,
	})
	if cached, hit := s.cache.Get(key); hit {
		c := cached.(scrape.Chapter)
		return &c, "", nil
	}

	resp, err := s.source.ChapterHTML(ctx, mangaID, chapterID, mirror)
	if err != nil {
		return nil, "", err
	}
	result := scrape.ParseChapter(string(resp.Body), mangaID, chapterID)
	if !result.OK() {
		return nil, "", errors.New(result.Err)
	}

	var assignedMirror string
	for _, c := range resp.Cookies {
		if c.Name == "content_server" {
			assignedMirror = c.Value
		}
	}

	s.cache.Set(key, result.Data, s.ttls.Chapter)
	return &result.Data, assignedMirror, nil
}

func (s *mangaService) Author(ctx context.Context, slug string, page int) (*scrape.AuthorPage, error) {
	key := cache.Key("author", map[string]string{
		"slug": slug,
		"page": strconv.Itoa(page),
	})
	if cached, hit := s.cache.Get(key); hit {
		a := cached.(scrape.AuthorPage)
		return &a, nil
	}

	resp, err := s.source.AuthorHTML(ctx, slug, page)
	if err != nil {
		return nil, fmt.Errorf("fetch author page: %w", err)
	}
	result := scrape.ParseAuthor(string(resp.Body), slug)
	if !result.OK() {
		return nil, errors.New(result.Err)
	}

	s.cache.Set(key, result.Data, s.ttls.Browse)
	return &result.Data, nil
}
