package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"mangareader/internal/http-api/dto"
	"mangareader/internal/http-api/middleware"
	"mangareader/internal/http-api/service"
)

// metaCacheControl matches the service-side AniList cache window.
const metaCacheControl = 24 * time.Hour

type MetaHandler struct {
	svc  service.MetaService
	auth service.AuthService
}

func NewMetaHandler(svc service.MetaService, auth service.AuthService) *MetaHandler {
	return &MetaHandler{svc: svc, auth: auth}
}

func (h *MetaHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Search is query-driven on the collection path; a literal segment next
	// to :mal_id would conflict in the route tree.
	rg.GET("/meta/anilist", h.AniListSearch)
	rg.GET("/meta/anilist/:mal_id", h.AniListByMAL)
	rg.GET("/meta/mapping/:source/:slug", h.Mapping)

	// MAL list access needs the caller's linked account token.
	rg.GET("/meta/mal/manga/:id", middleware.AuthMiddleware(h.auth), h.MALManga)
	rg.PUT("/meta/mal/manga/:id/status", middleware.AuthMiddleware(h.auth), h.UpdateMALStatus)
}

func (h *MetaHandler) AniListByMAL(c *gin.Context) {
	malID, err := strconv.Atoi(c.Param("mal_id"))
	if err != nil || malID < 1 {
		respondError(c, http.StatusBadRequest, "mal_id must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	media, err := h.svc.AniListByMAL(ctx, malID)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	setCacheControl(c, metaCacheControl)
	respondData(c, media)
}

func (h *MetaHandler) AniListSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		respondError(c, http.StatusBadRequest, "q query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	media, err := h.svc.AniListSearch(ctx, query)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, media)
}

func (h *MetaHandler) Mapping(c *gin.Context) {
	source := c.Param("source")
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	link, err := h.svc.Mapping(ctx, source, slug)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}

	setCacheControl(c, metaCacheControl)
	respondData(c, link)
}

// malToken loads the caller's stored MAL bearer token, failing with 401
// when no account is linked.
func (h *MetaHandler) malToken(ctx context.Context, c *gin.Context) (string, bool) {
	token, err := h.auth.MALToken(ctx, c.GetString("userID"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return "", false
	}
	if token == "" {
		respondError(c, http.StatusUnauthorized, "no linked MyAnimeList account")
		return "", false
	}
	return token, true
}

func (h *MetaHandler) MALManga(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	token, valid := h.malToken(ctx, c)
	if !valid {
		return
	}

	manga, err := h.svc.MALManga(ctx, token, id)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, manga)
}

func (h *MetaHandler) UpdateMALStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		respondError(c, http.StatusBadRequest, "id must be a positive integer")
		return
	}

	var in dto.UpdateMALStatusDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	chaptersRead := -1
	if in.ChaptersRead != nil {
		if *in.ChaptersRead < 0 {
			respondError(c, http.StatusBadRequest, "chapters_read must not be negative")
			return
		}
		chaptersRead = *in.ChaptersRead
	}
	if in.Status == "" && chaptersRead < 0 {
		respondError(c, http.StatusBadRequest, "status or chapters_read is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	token, valid := h.malToken(ctx, c)
	if !valid {
		return
	}

	updated, err := h.svc.UpdateMALStatus(ctx, token, id, in.Status, chaptersRead)
	if err != nil {
		respondError(c, statusFromError(err), err.Error())
		return
	}
	respondData(c, updated)
}
