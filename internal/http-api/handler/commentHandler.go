package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"mangareader/internal/http-api/dto"
	"mangareader/internal/http-api/middleware"
	"mangareader/internal/http-api/repository"
	"mangareader/internal/http-api/service"
)

type CommentHandler struct {
	svc  service.CommentService
	auth service.AuthService
}

func NewCommentHandler(svc service.CommentService, auth service.AuthService) *CommentHandler {
	return &CommentHandler{svc: svc, auth: auth}
}

func (h *CommentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Reading comments is public; writing requires an account.
	rg.GET("/manga/:manga_id/comments", h.List)
	rg.POST("/manga/:manga_id/comments", middleware.AuthMiddleware(h.auth), h.Create)
	rg.DELETE("/comments/:comment_id", middleware.AuthMiddleware(h.auth), h.Delete)
}

func (h *CommentHandler) List(c *gin.Context) {
	limit := 20
	offset := 0
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comments, total, err := h.svc.ListByManga(ctx, c.Param("manga_id"), limit, offset)
	if err != nil {
		respondError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  comments,
		"total": total,
	})
}

func (h *CommentHandler) Create(c *gin.Context) {
	var in dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	comment := in.ToModel(c.Param("manga_id"), c.GetString("userID"), c.GetString("username"))
	if err := h.svc.Create(ctx, &comment); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": comment})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	err := h.svc.Delete(ctx, c.GetString("userID"), c.Param("comment_id"))
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			respondError(c, http.StatusNotFound, "comment not found")
		case errors.Is(err, service.ErrNotCommentOwner):
			respondError(c, http.StatusForbidden, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, err.Error())
		}
		return
	}
	c.Status(http.StatusNoContent)
}
