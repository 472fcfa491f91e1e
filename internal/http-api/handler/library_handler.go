package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"mangareader/internal/http-api/dto"
	"mangareader/internal/http-api/repository"
	"mangareader/internal/http-api/service"
)

// LibraryHandler serves account-scoped bookmarks. All routes sit behind the
// JWT middleware; userID comes from the validated claims.
type LibraryHandler struct {
	svc service.LibraryService
}

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

func (h *LibraryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/library", h.List)
	rg.POST("/library", h.Add)
	rg.DELETE("/library/:manga_id", h.Remove)
	rg.POST("/library/:manga_id/read", h.MarkRead)
}

func (h *LibraryHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entries, err := h.svc.List(ctx, c.GetString("userID"))
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondData(c, entries)
}

func (h *LibraryHandler) Add(c *gin.Context) {
	var in dto.AddLibraryDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry := in.ToModel(c.GetString("userID"))
	if err := h.svc.Add(ctx, &entry); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, http.StatusConflict, "manga already in library")
			return
		}
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": entry})
}

func (h *LibraryHandler) Remove(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.Remove(ctx, c.GetString("userID"), c.Param("manga_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "manga not in library")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LibraryHandler) MarkRead(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.MarkRead(ctx, c.GetString("userID"), c.Param("manga_id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondError(c, http.StatusNotFound, "manga not in library")
			return
		}
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}
	respondData(c, gin.H{"marked": true})
}
