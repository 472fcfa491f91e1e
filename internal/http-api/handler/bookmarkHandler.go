package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"mangareader/internal/http-api/dto"
	"mangareader/internal/http-api/service"
	"mangareader/internal/relay"
)

// sessionCookie is the upstream bookmark service's user id cookie. These
// bookmarks belong to the anonymous upstream session, not a local account.
const sessionCookie = "user_data"

type BookmarkHandler struct {
	svc    service.BookmarkService
	logger *slog.Logger
}

func NewBookmarkHandler(svc service.BookmarkService, logger *slog.Logger) *BookmarkHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookmarkHandler{svc: svc, logger: logger}
}

func (h *BookmarkHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookmarks", h.List)
	rg.POST("/bookmarks", h.Add)
	rg.PUT("/bookmarks/:manga_id", h.UpdateLastRead)
	rg.DELETE("/bookmarks/:manga_id", h.Remove)
	rg.GET("/bookmarks/sync", h.Sync)
}

// sessionUserID extracts the upstream session id from the cookie, falling
// back to an explicit query parameter for clients that manage the id
// themselves.
func sessionUserID(c *gin.Context) (string, bool) {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		return id, true
	}
	if id := c.Query("user_data"); id != "" {
		return id, true
	}
	respondError(c, http.StatusUnauthorized, "missing bookmark session id")
	return "", false
}

func (h *BookmarkHandler) List(c *gin.Context) {
	userID, authorized := sessionUserID(c)
	if !authorized {
		return
	}

	page := 1
	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			respondError(c, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = parsed
	}

	list, err := h.svc.List(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, list)
}

func (h *BookmarkHandler) Add(c *gin.Context) {
	userID, authorized := sessionUserID(c)
	if !authorized {
		return
	}

	var in dto.AddBookmarkDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.svc.Add(c.Request.Context(), userID, in.ToUpstream()); err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, gin.H{"added": in.MangaID})
}

func (h *BookmarkHandler) UpdateLastRead(c *gin.Context) {
	userID, authorized := sessionUserID(c)
	if !authorized {
		return
	}

	var in dto.UpdateBookmarkDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	mangaID := c.Param("manga_id")
	if err := h.svc.UpdateLastRead(c.Request.Context(), userID, mangaID, in.ChapterID); err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, gin.H{"updated": mangaID})
}

func (h *BookmarkHandler) Remove(c *gin.Context) {
	userID, authorized := sessionUserID(c)
	if !authorized {
		return
	}

	mangaID := c.Param("manga_id")
	if err := h.svc.Remove(c.Request.Context(), userID, mangaID); err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, gin.H{"removed": mangaID})
}

// Sync streams the user's entire upstream bookmark list as server-sent
// events: one message per bookmark in page order, then a stop event. The
// request context is the cancellation token — when the client disconnects,
// the relay stops fetching between pages. All exit paths (completion,
// upstream error, cancellation) converge here and the response stream
// closes exactly once when the handler returns.
func (h *BookmarkHandler) Sync(c *gin.Context) {
	userID, authorized := sessionUserID(c)
	if !authorized {
		return
	}

	c.Header("Content-Type", sse.ContentType)
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	r := relay.New(h.svc.Pager(userID), h.logger)
	err := r.Run(c.Request.Context(), func(event sse.Event) error {
		if err := sse.Encode(c.Writer, event); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		h.logger.Error("bookmark sync failed", "user_id", userID, "error", err)
		// Best effort: tell consumers still connected that the stream
		// died rather than ran out of pages.
		_ = sse.Encode(c.Writer, sse.Event{Event: "error", Data: err.Error()})
		c.Writer.Flush()
	}
}
