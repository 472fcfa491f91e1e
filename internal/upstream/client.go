// Package upstream holds the outbound HTTP clients: the scraped content
// source, its bookmarking service, and the metadata providers (AniList,
// MyAnimeList, MAL-sync). None of them retry; a single failure propagates
// to the route layer, which owns error shaping.
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

const defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:133.0) Gecko/20100101 Firefox/133.0"

// FetchError carries the upstream status code and raw body so callers can
// decide between a 500 and a typed error payload.
type FetchError struct {
	StatusCode int
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// Response is a raw upstream response. Cookies carries any Set-Cookie
// values, e.g. the mirror-server affinity cookie the chapter pages set.
type Response struct {
	Body    []byte
	Cookies []*http.Cookie
}

// SourceClient fetches HTML from the primary content source. Requests are
// rate limited to stay polite; the source throttles aggressive scrapers.
type SourceClient struct {
	client  *resty.Client
	baseURL string
	limiter *rate.Limiter
}

func NewSourceClient(baseURL string) *SourceClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Accept-Charset", "utf-8")

	return &SourceClient{
		client:  c,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(4), 8),
	}
}

// Get fetches path with the given request cookies and returns the raw body
// plus any cookies the upstream set.
func (c *SourceClient) Get(ctx context.Context, path string, cookies map[string]string) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req := c.client.R().SetContext(ctx)
	for name, value := range cookies {
		req.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &FetchError{StatusCode: resp.StatusCode(), Body: resp.String()}
	}

	return &Response{Body: resp.Body(), Cookies: resp.Cookies()}, nil
}
