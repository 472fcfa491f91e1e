package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// AniList allows ~90 requests per minute; one per second with a small burst
// keeps us well clear of that.
const (
	anilistRateLimit = 1
	anilistRateBurst = 5
)

// AniListClient issues GraphQL queries against the AniList API.
type AniListClient struct {
	apiURL      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
}

func NewAniListClient(apiURL string) *AniListClient {
	return &AniListClient{
		apiURL:      apiURL,
		rateLimiter: rate.NewLimiter(rate.Limit(anilistRateLimit), anilistRateBurst),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// AniListMedia is the subset of AniList's Media object the reader uses.
type AniListMedia struct {
	ID    int `json:"id"`
	IDMal int `json:"idMal"`
	Title struct {
		English string `json:"english"`
		Romaji  string `json:"romaji"`
		Native  string `json:"native"`
	} `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Chapters    int    `json:"chapters"`
	CoverImage  struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"coverImage"`
	BannerImage  string   `json:"bannerImage"`
	Genres       []string `json:"genres"`
	AverageScore int      `json:"averageScore"`
	SiteURL      string   `json:"siteUrl"`
}

// MediaByMALID resolves AniList metadata through the shared MyAnimeList id.
func (c *AniListClient) MediaByMALID(ctx context.Context, malID int) (*AniListMedia, error) {
	query := `
    query ($idMal: Int) {
        Media(idMal: $idMal, type: MANGA) {
            id
            idMal
            title { english romaji native }
            description
            status
            chapters
            coverImage { large medium }
            bannerImage
            genres
            averageScore
            siteUrl
        }
    }
    `

	var result struct {
		Media AniListMedia `json:"Media"`
	}
	if err := c.doRequest(ctx, query, map[string]any{"idMal": malID}, &result); err != nil {
		return nil, fmt.Errorf("fetch anilist media by mal id: %w", err)
	}
	return &result.Media, nil
}

// SearchManga runs a title search and returns the first page of matches.
func (c *AniListClient) SearchManga(ctx context.Context, title string) ([]AniListMedia, error) {
	query := `
    query ($search: String) {
        Page(page: 1, perPage: 10) {
            media(search: $search, type: MANGA) {
                id
                idMal
                title { english romaji native }
                description
                status
                chapters
                coverImage { large medium }
                genres
                averageScore
                siteUrl
            }
        }
    }
    `

	var result struct {
		Page struct {
			Media []AniListMedia `json:"media"`
		} `json:"Page"`
	}
	if err := c.doRequest(ctx, query, map[string]any{"search": title}, &result); err != nil {
		return nil, fmt.Errorf("search anilist manga: %w", err)
	}
	return result.Page.Media, nil
}

// doRequest performs one rate-limited GraphQL request. Failures are not
// retried; the caller surfaces them.
func (c *AniListClient) doRequest(ctx context.Context, query string, variables map[string]any, result any) error {
	bodyJSON, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &FetchError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return fmt.Errorf("parse graphql response: %w", err)
	}
	if len(gqlResp.Errors) > 0 {
		msgs := make([]string, len(gqlResp.Errors))
		for i, e := range gqlResp.Errors {
			msgs[i] = e.Message
		}
		return fmt.Errorf("graphql errors: %v", msgs)
	}

	if err := json.Unmarshal(gqlResp.Data, result); err != nil {
		return fmt.Errorf("parse data: %w", err)
	}
	return nil
}
