package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mangareader/internal/http-api/middleware"
	"mangareader/internal/http-api/service"
)

// mirrorCookie carries the upstream's content-server affinity so a reader
// keeps hitting the same mirror across chapters. Functional category: it is
// only written with consent.
const mirrorCookie = "preferred_mirror"

type MangaHandler struct {
	svc  service.MangaService
	ttls service.CacheTTLs
}

func NewMangaHandler(svc service.MangaService, ttls service.CacheTTLs) *MangaHandler {
	return &MangaHandler{svc: svc, ttls: ttls}
}

func (h *MangaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/browse", h.Browse)
	rg.GET("/search", h.Search)
	rg.GET("/manga/:manga_id", h.Detail)
	rg.GET("/manga/:manga_id/first-chapter", h.FirstChapter)
	rg.GET("/chapter/:manga_id/:chapter_id", h.Chapter)
	rg.GET("/author/:slug", h.Author)
}

// pageParam parses ?page=, defaulting to 1. Invalid values are a client
// error, not a silent default.
func pageParam(c *gin.Context) (int, bool) {
	raw := c.Query("page")
	if raw == "" {
		return 1, true
	}
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		respondError(c, http.StatusBadRequest, "page must be a positive integer")
		return 0, false
	}
	return page, true
}

func (h *MangaHandler) Browse(c *gin.Context) {
	page, valid := pageParam(c)
	if !valid {
		return
	}
	genre := strings.TrimSpace(c.Query("genre"))

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	list, err := h.svc.Browse(ctx, page, genre)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	// An empty page past the end of the catalog is a valid response; the
	// client treats it as "last page reached".
	setCacheControl(c, h.ttls.Browse)
	respondData(c, list)
}

func (h *MangaHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "q query parameter is required")
		return
	}
	page, valid := pageParam(c)
	if !valid {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	list, err := h.svc.Search(ctx, query, page)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	setCacheControl(c, h.ttls.Search)
	respondData(c, list)
}

func (h *MangaHandler) Detail(c *gin.Context) {
	mangaID := c.Param("manga_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	detail, err := h.svc.Detail(ctx, mangaID)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	setCacheControl(c, h.ttls.Browse)
	respondData(c, detail)
}

// FirstChapter resolves the lowest-numbered chapter of a title so the
// client can link "start reading" without fetching the whole detail page.
func (h *MangaHandler) FirstChapter(c *gin.Context) {
	mangaID := c.Param("manga_id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	first, err := h.svc.FirstChapter(ctx, mangaID)
	if err != nil {
		if err == service.ErrNoChapters {
			respondError(c, http.StatusNotFound, err.Error())
			return
		}
		respondError(c, statusFromError(err), err.Error())
		return
	}

	setCacheControl(c, h.ttls.Browse)
	respondData(c, first)
}

func (h *MangaHandler) Chapter(c *gin.Context) {
	mangaID := c.Param("manga_id")
	chapterID := c.Param("chapter_id")

	// Forward the reader's existing mirror affinity, if any.
	mirror, _ := c.Cookie(mirrorCookie)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	chapter, assignedMirror, err := h.svc.Chapter(ctx, mangaID, chapterID, mirror)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	if assignedMirror != "" {
		middleware.SetFunctionalCookie(c, mirrorCookie, assignedMirror)
	}
	setCacheControl(c, h.ttls.Chapter)
	respondData(c, chapter)
}

func (h *MangaHandler) Author(c *gin.Context) {
	slug := c.Param("slug")
	page, valid := pageParam(c)
	if !valid {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	author, err := h.svc.Author(ctx, slug, page)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	setCacheControl(c, h.ttls.Browse)
	respondData(c, author)
}
