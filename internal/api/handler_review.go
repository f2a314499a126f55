package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wefixit/internal/service"
)

type reviewHandler struct {
	svc    *service.ReviewService
	logger *zap.Logger
}

// reviewRequest has no status or approved field: new reviews are always
// pending, whatever the client sends.
type reviewRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Company     string `json:"company" binding:"max=100"`
	Message     string `json:"message" binding:"required,max=2000"`
	Rating      int    `json:"rating" binding:"required,min=1,max=5"`
	ProjectType string `json:"project_type" binding:"max=100"`
}

func (h *reviewHandler) submit(c *gin.Context) {
	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	r, err := h.svc.Submit(c.Request.Context(), service.ReviewInput{
		Name:        req.Name,
		Email:       req.Email,
		Company:     req.Company,
		Message:     req.Message,
		Rating:      req.Rating,
		ProjectType: req.ProjectType,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, r)
}

func (h *reviewHandler) listApproved(c *gin.Context) {
	limit, offset, err := pageQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	items, err := h.svc.ListApproved(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *reviewHandler) listAll(c *gin.Context) {
	limit, offset, err := pageQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	items, err := h.svc.ListAll(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *reviewHandler) approve(c *gin.Context) {
	id, err := idParam(c, "review")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	r, err := h.svc.Approve(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *reviewHandler) delete(c *gin.Context) {
	id, err := idParam(c, "review")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
