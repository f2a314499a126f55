package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wefixit/internal/model"
	"wefixit/internal/quote"
	"wefixit/internal/service"
)

type quoteHandler struct {
	svc    *service.QuoteService
	logger *zap.Logger
}

type estimateRequest struct {
	ServiceType string   `json:"service_type" binding:"max=50"`
	Features    []string `json:"features" binding:"max=20"`
	Timeline    string   `json:"timeline" binding:"max=50"`
}

// quoteRequest mirrors quote.Fields; any client-supplied estimate is dropped.
type quoteRequest struct {
	Name               string   `json:"name" binding:"max=100"`
	Email              string   `json:"email" binding:"max=254"`
	Phone              string   `json:"phone" binding:"max=50"`
	Company            string   `json:"company" binding:"max=100"`
	ServiceType        string   `json:"service_type" binding:"max=50"`
	ProjectTitle       string   `json:"project_title" binding:"max=200"`
	Description        string   `json:"description" binding:"max=5000"`
	Features           []string `json:"features" binding:"max=20"`
	Timeline           string   `json:"timeline" binding:"max=50"`
	Budget             string   `json:"budget" binding:"max=50"`
	HasExistingWebsite string   `json:"has_existing_website" binding:"max=20"`
	PreferredStyle     string   `json:"preferred_style" binding:"max=200"`
	TargetAudience     string   `json:"target_audience" binding:"max=500"`
	AdditionalNotes    string   `json:"additional_notes" binding:"max=5000"`
}

func (r quoteRequest) fields() quote.Fields {
	return quote.Fields{
		Name:               r.Name,
		Email:              r.Email,
		Phone:              r.Phone,
		Company:            r.Company,
		ServiceType:        r.ServiceType,
		ProjectTitle:       r.ProjectTitle,
		Description:        r.Description,
		Features:           r.Features,
		Timeline:           r.Timeline,
		Budget:             r.Budget,
		HasExistingWebsite: r.HasExistingWebsite,
		PreferredStyle:     r.PreferredStyle,
		TargetAudience:     r.TargetAudience,
		AdditionalNotes:    r.AdditionalNotes,
	}
}

func (h *quoteHandler) catalog(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Catalog())
}

func (h *quoteHandler) estimate(c *gin.Context) {
	var req estimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, h.svc.Estimate(req.ServiceType, req.Features, req.Timeline))
}

func (h *quoteHandler) submit(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, h.logger, err)
		return
	}

	q, err := h.svc.Submit(c.Request.Context(), req.fields())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

// list serves JSON by default and the full table as CSV with ?format=csv.
func (h *quoteHandler) list(c *gin.Context) {
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
		rows := make([]quoteRow, 0, len(items))
		for _, q := range items {
			rows = append(rows, newQuoteRow(q))
		}
		writeCSV(c, h.logger, "quotes.csv", &rows)
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

func (h *quoteHandler) get(c *gin.Context) {
	id, err := idParam(c, "quote request")
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	q, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

type quoteRow struct {
	ID           int64   `csv:"id"`
	CreatedAt    string  `csv:"created_at"`
	Name         string  `csv:"name"`
	Email        string  `csv:"email"`
	Phone        string  `csv:"phone"`
	Company      string  `csv:"company"`
	ServiceType  string  `csv:"service_type"`
	ProjectTitle string  `csv:"project_title"`
	Features     string  `csv:"features"`
	Timeline     string  `csv:"timeline"`
	Budget       string  `csv:"budget"`
	Estimate     float64 `csv:"estimate"`
}

func newQuoteRow(q model.QuoteRequest) quoteRow {
	return quoteRow{
		ID:           q.ID,
		CreatedAt:    q.CreatedAt.UTC().Format(csvTimeFormat),
		Name:         csvCell(q.Name),
		Email:        csvCell(q.Email),
		Phone:        csvCell(q.Phone),
		Company:      csvCell(q.Company),
		ServiceType:  q.ServiceType,
		ProjectTitle: csvCell(q.ProjectTitle),
		Features:     strings.Join(q.Features, ";"),
		Timeline:     q.Timeline,
		Budget:       q.Budget,
		Estimate:     q.Estimate,
	}
}
