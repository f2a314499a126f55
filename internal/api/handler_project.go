package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/internal/service"
)

type projectHandler struct {
	svc    *service.ProjectService
	images ImageSaver
	logger *zap.Logger
}

type featuredRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

func (h *projectHandler) list(c *gin.Context) {
	limit, offset, err := pageQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	f := model.ProjectFilter{
		Category: c.Query("category"),
		Limit:    limit,
		Offset:   offset,
	}
	if v := c.Query("featured"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, h.logger, apperr.Validation("invalid query", "featured", "must be true or false"))
			return
		}
		f.Featured = &b
	}

	pg, err := h.svc.List(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	pg.Items = nonNil(pg.Items)
	c.JSON(http.StatusOK, pg)
}

func (h *projectHandler) get(c *gin.Context) {
	id, err := idParam(c, "project")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *projectHandler) create(c *gin.Context) {
	in := service.ProjectInput{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Category:     c.PostForm("category"),
		Link:         c.PostForm("link"),
		Technologies: formList(c, "technologies"),
	}
	if v, ok := c.GetPostForm("featured"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, h.logger, apperr.Validation("invalid project", "featured", "must be true or false"))
			return
		}
		in.Featured = b
	}

	ref, err := h.saveImage(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	in.Image = ref

	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.svc.DiscardImage(ref)
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// update applies only the form fields that are present.
func (h *projectHandler) update(c *gin.Context) {
	id, err := idParam(c, "project")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	var patch model.ProjectPatch
	if v, ok := c.GetPostForm("title"); ok {
		patch.Title = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		patch.Description = &v
	}
	if v, ok := c.GetPostForm("category"); ok {
		patch.Category = &v
	}
	if v, ok := c.GetPostForm("link"); ok {
		patch.Link = &v
	}
	if _, ok := c.GetPostFormArray("technologies"); ok {
		tags := formList(c, "technologies")
		patch.Technologies = &tags
	}
	if v, ok := c.GetPostForm("featured"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			respondError(c, h.logger, apperr.Validation("invalid project", "featured", "must be true or false"))
			return
		}
		patch.Featured = &b
	}

	ref, err := h.saveImage(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if ref != "" {
		patch.Image = &ref
	}

	p, err := h.svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.svc.DiscardImage(ref)
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *projectHandler) setFeatured(c *gin.Context) {
	id, err := idParam(c, "project")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	var req featuredRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	p, err := h.svc.SetFeatured(c.Request.Context(), id, *req.Featured)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *projectHandler) delete(c *gin.Context) {
	id, err := idParam(c, "project")
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

// saveImage stores the "image" part if one was sent. No file yields "".
func (h *projectHandler) saveImage(c *gin.Context) (string, error) {
	fh, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", apperr.Validation("invalid upload", "image", "could not be read")
	}
	if h.images == nil {
		return "", errors.New("image storage is not configured")
	}
	return h.images.Save(fh)
}

// formList accepts repeated values as well as one comma separated value.
func formList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.PostFormArray(key) {
		out = append(out, strings.Split(v, ",")...)
	}
	return out
}
