package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceClientGet(t *testing.T) {
	t.Run("BodyAndSetCookies", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.SetCookie(w, &http.Cookie{Name: "content_server", Value: "server2"})
			w.Write([]byte("<html>chapter</html>"))
		}))
		defer srv.Close()

		c := NewSourceClient(srv.URL)
		resp, err := c.Get(context.Background(), "/manga/alpha/chapter-1", nil)
		require.NoError(t, err)
		assert.Equal(t, "<html>chapter</html>", string(resp.Body))

		var mirror string
		for _, ck := range resp.Cookies {
			if ck.Name == "content_server" {
				mirror = ck.Value
			}
		}
		assert.Equal(t, "server2", mirror)
	})

	t.Run("RequestCookiesForwarded", func(t *testing.T) {
		var got string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ck, err := r.Cookie("content_server"); err == nil {
				got = ck.Value
			}
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		c := NewSourceClient(srv.URL)
		_, err := c.Get(context.Background(), "/", map[string]string{"content_server": "server3"})
		require.NoError(t, err)
		assert.Equal(t, "server3", got)
	})

	t.Run("NonOKIsFetchError", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("maintenance"))
		}))
		defer srv.Close()

		c := NewSourceClient(srv.URL)
		_, err := c.Get(context.Background(), "/genre-all/1", nil)
		require.Error(t, err)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
		assert.Contains(t, fetchErr.Body, "maintenance")
	})

	t.Run("CancelledContext", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := NewSourceClient(srv.URL)
		_, err := c.Get(ctx, "/", nil)
		assert.Error(t, err)
	})
}

func TestBookmarkClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "/notification/get_user_bookmark", r.URL.Path)
		assert.Equal(t, "session-123", r.PostFormValue("user_data"))
		assert.Equal(t, "2", r.PostFormValue("bm_page"))
		assert.Equal(t, "json", r.PostFormValue("out_type"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bookmarks":[{"manga_id":"alpha","name":"Alpha"}],"page":2,"total_pages":3}`))
	}))
	defer srv.Close()

	c := NewBookmarkClient(srv.URL)
	page, err := c.List(context.Background(), "session-123", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Bookmarks, 1)
	assert.Equal(t, "alpha", page.Bookmarks[0].MangaID)
}

func TestBookmarkPagerFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bookmarks":[{"manga_id":"alpha"},{"manga_id":"beta"}],"page":1,"total_pages":4}`))
	}))
	defer srv.Close()

	pager := &BookmarkPager{Client: NewBookmarkClient(srv.URL), UserID: "session-123"}
	items, totalPages, err := pager.FetchPage(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 4, totalPages)
	require.Len(t, items, 2)

	first, isBookmark := items[0].(Bookmark)
	require.True(t, isBookmark)
	assert.Equal(t, "alpha", first.MangaID)
}
