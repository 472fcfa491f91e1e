package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Bookmark is one entry in the upstream bookmarking service, scoped to a
// session user id rather than a local account.
type Bookmark struct {
	MangaID       string `json:"manga_id"`
	Name          string `json:"name"`
	Image         string `json:"image"`
	LatestChapter string `json:"latest_chapter"`
	LastReadAt    int64  `json:"last_read_at"`
	CreatedAt     int64  `json:"created_at"`
	UpdatedAt     int64  `json:"updated_at"`
}

// BookmarkPage is one page of the paginated list response.
type BookmarkPage struct {
	Bookmarks  []Bookmark `json:"bookmarks"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
}

// BookmarkClient talks to the upstream bookmark service. All writes are
// form-encoded POSTs, matching the service's legacy interface.
type BookmarkClient struct {
	client  *resty.Client
	baseURL string
}

func NewBookmarkClient(baseURL string) *BookmarkClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("User-Agent", defaultUserAgent)
	return &BookmarkClient{client: c, baseURL: baseURL}
}

func (c *BookmarkClient) post(ctx context.Context, path string, form map[string]string, out any) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(path)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return &FetchError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// List fetches one page of a user's bookmarks.
func (c *BookmarkClient) List(ctx context.Context, userID string, page int) (*BookmarkPage, error) {
	var out BookmarkPage
	form := map[string]string{
		"user_data": userID,
		"bm_page":   strconv.Itoa(page),
		"out_type":  "json",
	}
	if err := c.post(ctx, "/notification/get_user_bookmark", form, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Add bookmarks a title for the user.
func (c *BookmarkClient) Add(ctx context.Context, userID string, b Bookmark) error {
	form := map[string]string{
		"user_data":      userID,
		"bm_data":        b.MangaID,
		"bm_name":        b.Name,
		"bm_image":       b.Image,
		"bm_chapter_new": b.LatestChapter,
	}
	return c.post(ctx, "/notification/add_bookmark", form, nil)
}

// Remove deletes a bookmark.
func (c *BookmarkClient) Remove(ctx context.Context, userID, mangaID string) error {
	form := map[string]string{
		"user_data": userID,
		"bm_data":   mangaID,
	}
	return c.post(ctx, "/notification/delete_bookmark", form, nil)
}

// UpdateLastRead records the chapter the user last opened.
func (c *BookmarkClient) UpdateLastRead(ctx context.Context, userID, mangaID, chapterID string) error {
	form := map[string]string{
		"user_data":       userID,
		"bm_data":         mangaID,
		"bm_chapter_read": chapterID,
	}
	return c.post(ctx, "/notification/update_bookmark", form, nil)
}

// BookmarkPager adapts the list endpoint to the relay's page walk.
type BookmarkPager struct {
	Client *BookmarkClient
	UserID string
}

func (p *BookmarkPager) FetchPage(ctx context.Context, page int) ([]any, int, error) {
	resp, err := p.Client.List(ctx, p.UserID, page)
	if err != nil {
		return nil, 0, err
	}
	items := make([]any, 0, len(resp.Bookmarks))
	for _, b := range resp.Bookmarks {
		items = append(items, b)
	}
	return items, resp.TotalPages, nil
}
