package service

import (
	"context"
	"errors"
	"strings"

	"mangareader/internal/relay"
	"mangareader/internal/upstream"
)

// BookmarkService proxies the upstream bookmarking service. Bookmarks here
// are scoped to the caller's upstream session id, not to a local account;
// the library service owns account-scoped bookmarks.
type BookmarkService interface {
	List(ctx context.Context, userID string, page int) (*upstream.BookmarkPage, error)
	Add(ctx context.Context, userID string, b upstream.Bookmark) error
	Remove(ctx context.Context, userID, mangaID string) error
	UpdateLastRead(ctx context.Context, userID, mangaID, chapterID string) error
	Pager(userID string) relay.Pager
}

type bookmarkService struct {
	client *upstream.BookmarkClient
}

func NewBookmarkService(client *upstream.BookmarkClient) BookmarkService {
	return &bookmarkService{client: client}
}

func (s *bookmarkService) List(ctx context.Context, userID string, page int) (*upstream.BookmarkPage, error) {
	return s.client.List(ctx, userID, page)
}

func (s *bookmarkService) Add(ctx context.Context, userID string, b upstream.Bookmark) error {
	if strings.TrimSpace(b.MangaID) == "" {
		return errors.New("manga id is required")
	}
	return s.client.Add(ctx, userID, b)
}

func (s *bookmarkService) Remove(ctx context.Context, userID, mangaID string) error {
	return s.client.Remove(ctx, userID, mangaID)
}

func (s *bookmarkService) UpdateLastRead(ctx context.Context, userID, mangaID, chapterID string) error {
	return s.client.UpdateLastRead(ctx, userID, mangaID, chapterID)
}

func (s *bookmarkService) Pager(userID string) relay.Pager {
	return &upstream.BookmarkPager{Client: s.client, UserID: userID}
}
