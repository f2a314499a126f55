package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wefixit/internal/model"
	"wefixit/internal/service"
)

type contactHandler struct {
	svc    *service.ContactService
	logger *zap.Logger
}

type contactRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Email     string `json:"email" binding:"required,max=254"`
	Phone     string `json:"phone" binding:"max=50"`
	Subject   string `json:"subject" binding:"required,max=200"`
	Message   string `json:"message" binding:"required,max=5000"`
}

func (h *contactHandler) submit(c *gin.Context) {
	var req contactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	m, err := h.svc.Submit(c.Request.Context(), service.ContactInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

// list serves JSON by default and the full table as CSV with ?format=csv.
func (h *contactHandler) list(c *gin.Context) {
	asCSV, err := wantsCSV(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if asCSV {
		items, err := h.svc.Export(c.Request.Context())
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		rows := make([]contactRow, 0, len(items))
		for _, m := range items {
			rows = append(rows, newContactRow(m))
		}
		writeCSV(c, h.logger, "contact_messages.csv", &rows)
		return
	}

	limit, offset, err := pageQuery(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	items, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(items))
}

func (h *contactHandler) delete(c *gin.Context) {
	id, err := idParam(c, "contact message")
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

type contactRow struct {
	ID        int64  `csv:"id"`
	CreatedAt string `csv:"created_at"`
	FirstName string `csv:"first_name"`
	LastName  string `csv:"last_name"`
	Email     string `csv:"email"`
	Phone     string `csv:"phone"`
	Subject   string `csv:"subject"`
	Message   string `csv:"message"`
}

func newContactRow(m model.ContactMessage) contactRow {
	return contactRow{
		ID:        m.ID,
		CreatedAt: m.CreatedAt.UTC().Format(csvTimeFormat),
		FirstName: csvCell(m.FirstName),
		LastName:  csvCell(m.LastName),
		Email:     csvCell(m.Email),
		Phone:     csvCell(m.Phone),
		Subject:   csvCell(m.Subject),
		Message:   csvCell(m.Message),
	}
}
