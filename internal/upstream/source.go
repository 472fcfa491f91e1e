package upstream

import (
	"context"
	"fmt"
	"net/url"
)

// Typed fetchers for the pages the normalizer understands. Each returns the
// raw HTML plus upstream Set-Cookie values; parsing lives in internal/scrape.

func (c *SourceClient) ListingHTML(ctx context.Context, page int, genre string) (*Response, error) {
	path := fmt.Sprintf("/genre-all/%d", page)
	if genre != "" {
		path = fmt.Sprintf("/genre/%s/%d", url.PathEscape(genre), page)
	}
	return c.Get(ctx, path, nil)
}

func (c *SourceClient) SearchHTML(ctx context.Context, query string, page int) (*Response, error) {
	return c.Get(ctx, fmt.Sprintf("/search/story/%s?page=%d", url.PathEscape(query), page), nil)
}

func (c *SourceClient) DetailHTML(ctx context.Context, mangaID string) (*Response, error) {
	return c.Get(ctx, "/manga/"+url.PathEscape(mangaID), nil)
}

// ChapterHTML forwards the caller's mirror-affinity cookie when present so
// the upstream keeps serving images from the same mirror.
func (c *SourceClient) ChapterHTML(ctx context.Context, mangaID, chapterID, mirror string) (*Response, error) {
	var cookies map[string]string
	if mirror != "" {
		cookies = map[string]string{"content_server": mirror}
	}
	path := fmt.Sprintf("/manga/%s/%s", url.PathEscape(mangaID), url.PathEscape(chapterID))
	return c.Get(ctx, path, cookies)
}

func (c *SourceClient) AuthorHTML(ctx context.Context, slug string, page int) (*Response, error) {
	return c.Get(ctx, fmt.Sprintf("/author/story/%s?page=%d", url.PathEscape(slug), page), nil)
}
