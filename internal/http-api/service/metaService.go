package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"mangareader/internal/cache"
	"mangareader/internal/http-api/models"
	"mangareader/internal/http-api/repository"
	"mangareader/internal/upstream"
)

// metaCacheTTL guards AniList lookups; provider metadata changes rarely.
const metaCacheTTL = 24 * time.Hour

// MetaService resolves third-party metadata: AniList records, MAL list
// entries, and source-slug-to-provider-id mappings. Mappings are persisted
// in the relational store so repeat lookups skip the MAL-sync round trip.
type MetaService interface {
	AniListByMAL(ctx context.Context, malID int) (*upstream.AniListMedia, error)
	AniListSearch(ctx context.Context, title string) ([]upstream.AniListMedia, error)
	Mapping(ctx context.Context, source, slug string) (*models.MetaLink, error)
	MALManga(ctx context.Context, token string, id int) (*upstream.MALManga, error)
	UpdateMALStatus(ctx context.Context, token string, id int, status string, chaptersRead int) (*upstream.MALManga, error)
}

type metaService struct {
	anilist *upstream.AniListClient
	mal     *upstream.MALClient
	mapping *upstream.MappingClient
	repo    repository.MetaRepository
	cache   *cache.Store
}

func NewMetaService(
	anilist *upstream.AniListClient,
	mal *upstream.MALClient,
	mapping *upstream.MappingClient,
	repo repository.MetaRepository,
	store *cache.Store,
) MetaService {
	return &metaService{
		anilist: anilist,
		mal:     mal,
		mapping: mapping,
		repo:    repo,
		cache:   store,
	}
}

func (s *metaService) AniListByMAL(ctx context.Context, malID int) (*upstream.AniListMedia, error) {
	key := cache.Key("anilist", map[string]string{"mal_id": strconv.Itoa(malID)})
	if cached, hit := s.cache.Get(key); hit {
		m := cached.(upstream.AniListMedia)
		return &m, nil
	}

	media, err := s.anilist.MediaByMALID(ctx, malID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, *media, metaCacheTTL)
	return media, nil
}

func (s *metaService) AniListSearch(ctx context.Context, title string) ([]upstream.AniListMedia, error) {
	return s.anilist.SearchManga(ctx, title)
}

// Mapping looks the link up in the relational store first and only falls
// back to the MAL-sync API on a miss, persisting the result.
func (s *metaService) Mapping(ctx context.Context, source, slug string) (*models.MetaLink, error) {
	link, err := s.repo.Get(ctx, source, slug)
	if err == nil {
		return link, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	mapping, err := s.mapping.Lookup(ctx, source, slug)
	if err != nil {
		return nil, err
	}

	link = &models.MetaLink{Source: source, Slug: slug}
	if mapping.MALID != 0 {
		link.MALID = &mapping.MALID
	}
	if mapping.AniListID != 0 {
		link.AniListID = &mapping.AniListID
	}
	if mapping.Title != "" {
		link.Title = &mapping.Title
	}
	if err := s.repo.Save(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

func (s *metaService) MALManga(ctx context.Context, token string, id int) (*upstream.MALManga, error) {
	return s.mal.GetManga(ctx, token, id)
}

func (s *metaService) UpdateMALStatus(ctx context.Context, token string, id int, status string, chaptersRead int) (*upstream.MALManga, error) {
	return s.mal.UpdateListStatus(ctx, token, id, status, chaptersRead)
}
