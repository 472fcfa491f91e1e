package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mangareader/internal/upstream"
)

// respondError writes the API's uniform error envelope. Handlers never leak
// stack traces; the message is the diagnostic payload.
func respondError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"result": "error", "data": msg})
}

// respondData writes the success envelope.
func respondData(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"data": data})
}

// statusFromError maps an upstream or scrape failure to an HTTP status. An
// upstream 401 (rejected provider token) passes through; everything else
// from upstream or the normalizer is a 500 to the API consumer.
func statusFromError(err error) int {
	var fetchErr *upstream.FetchError
	if errors.As(err, &fetchErr) && fetchErr.StatusCode == http.StatusUnauthorized {
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// setCacheControl advertises the endpoint's freshness window. Stale data is
// acceptable for every scraped view; the window just bounds how stale.
func setCacheControl(c *gin.Context, ttl time.Duration) {
	maxAge := int(ttl.Seconds())
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d, stale-while-revalidate=%d", maxAge, maxAge))
}
