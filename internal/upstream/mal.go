package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// MALClient talks to the MyAnimeList v2 REST API with the user's OAuth
// bearer token. Token acquisition and refresh belong to the auth provider;
// this client only consumes tokens it is handed.
type MALClient struct {
	client *resty.Client
}

func NewMALClient(baseURL string) *MALClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &MALClient{client: c}
}

// MALManga is the list-status view of a manga on the user's MAL account.
type MALManga struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	MainPicture struct {
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"main_picture"`
	NumChapters  int `json:"num_chapters"`
	MyListStatus struct {
		Status       string `json:"status"`
		Score        int    `json:"score"`
		ChaptersRead int    `json:"num_chapters_read"`
	} `json:"my_list_status"`
}

// GetManga fetches a manga with its list status for the token's user.
func (c *MALClient) GetManga(ctx context.Context, token string, id int) (*MALManga, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetQueryParam("fields", "id,title,main_picture,num_chapters,my_list_status").
		Get(fmt.Sprintf("/manga/%d", id))
	if err != nil {
		return nil, fmt.Errorf("get mal manga: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, &FetchError{StatusCode: resp.StatusCode(), Body: "mal token rejected"}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var out MALManga
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("decode mal manga: %w", err)
	}
	return &out, nil
}

// UpdateListStatus patches the user's list entry (status and/or chapters
// read). MAL expects a form-encoded PATCH.
func (c *MALClient) UpdateListStatus(ctx context.Context, token string, id int, status string, chaptersRead int) (*MALManga, error) {
	form := url.Values{}
	if status != "" {
		form.Set("status", status)
	}
	if chaptersRead >= 0 {
		form.Set("num_chapters_read", fmt.Sprintf("%d", chaptersRead))
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/x-www-form-urlencoded").
		SetBody(form.Encode()).
		Patch(fmt.Sprintf("/manga/%d/my_list_status", id))
	if err != nil {
		return nil, fmt.Errorf("update mal list status: %w", err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return nil, &FetchError{StatusCode: resp.StatusCode(), Body: "mal token rejected"}
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var out MALManga
	if err := json.Unmarshal(resp.Body(), &out.MyListStatus); err != nil {
		return nil, fmt.Errorf("decode mal list status: %w", err)
	}
	out.ID = id
	return &out, nil
}

// Mapping is a MAL-sync style identifier mapping between the scraped source
// and the metadata providers.
type Mapping struct {
	MALID     int    `json:"mal_id"`
	AniListID int    `json:"anilist_id"`
	Title     string `json:"title"`
}

// MappingClient resolves source slugs to provider ids via the MAL-sync API.
type MappingClient struct {
	client *resty.Client
}

func NewMappingClient(baseURL string) *MappingClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetHeader("Accept", "application/json")
	return &MappingClient{client: c}
}

// Lookup resolves one source page to its provider ids.
func (c *MappingClient) Lookup(ctx context.Context, source, slug string) (*Mapping, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/page/%s/%s", url.PathEscape(source), url.PathEscape(slug)))
	if err != nil {
		return nil, fmt.Errorf("lookup mapping: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	var raw struct {
		Title     string `json:"title"`
		MALID     int    `json:"malId"`
		AniListID int    `json:"aniId"`
	}
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("decode mapping: %w", err)
	}
	return &Mapping{MALID: raw.MALID, AniListID: raw.AniListID, Title: raw.Title}, nil
}
