package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"wefixit/contracts/mq"
	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/internal/quote"
	"wefixit/pkg/logger"
	"wefixit/pkg/metrics"
)

const defaultQuoteLimit = 50

type QuoteService struct {
	store     QuoteStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewQuoteService(store QuoteStore, publisher EventPublisher, logger *zap.Logger) *QuoteService {
	return &QuoteService{store: store, publisher: publisher, logger: logger}
}

func (s *QuoteService) Catalog() quote.Catalog {
	return quote.DefaultCatalog()
}

// Estimate prices a selection without storing anything.
func (s *QuoteService) Estimate(serviceType string, features []string, timeline string) quote.Breakdown {
	metrics.IncrementQuoteEstimate()
	return quote.Explain(serviceType, features, timeline)
}

// Submit validates every form step, computes the estimate and stores the
// request.
func (s *QuoteService) Submit(ctx context.Context, f quote.Fields) (*model.QuoteRequest, error) {
	f = trimFields(f)

	verr := apperr.Validation("invalid quote request")
	for k, v := range quote.ValidateAll(f) {
		verr.Add(k, v)
	}
	if f.ServiceType != "" && !quote.IsService(f.ServiceType) {
		verr.Add("service_type", "unknown service")
	}
	if f.Timeline != "" && !quote.IsTimeline(f.Timeline) {
		verr.Add("timeline", "unknown timeline")
	}
	if f.Budget != "" && !quote.IsBudget(f.Budget) {
		verr.Add("budget", "unknown budget range")
	}
	for _, id := range f.Features {
		if !quote.IsFeature(id) {
			verr.Add("features", "unknown feature "+id)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	q := &model.QuoteRequest{
		Name:               f.Name,
		Email:              f.Email,
		Phone:              f.Phone,
		Company:            f.Company,
		ServiceType:        f.ServiceType,
		ProjectTitle:       f.ProjectTitle,
		Description:        f.Description,
		Features:           f.Features,
		Timeline:           f.Timeline,
		Budget:             f.Budget,
		HasExistingWebsite: f.HasExistingWebsite,
		PreferredStyle:     f.PreferredStyle,
		TargetAudience:     f.TargetAudience,
		AdditionalNotes:    f.AdditionalNotes,
		Estimate:           quote.Estimate(f.ServiceType, f.Features, f.Timeline),
	}
	if err := s.store.Create(ctx, q); err != nil {
		return nil, err
	}

	metrics.IncrementQuoteRequest(q.ServiceType)
	logger.WithTrace(ctx, s.logger).Info("Quote request stored",
		zap.Int64("quote_id", q.ID),
		zap.String("service_type", q.ServiceType),
		zap.Float64("estimate", q.Estimate),
	)
	emit(ctx, s.publisher, s.logger, mq.RoutingQuoteRequested, mq.QuoteRequestedPayload{
		QuoteID:      q.ID,
		Name:         q.Name,
		Email:        q.Email,
		Phone:        q.Phone,
		Company:      q.Company,
		ServiceType:  q.ServiceType,
		ProjectTitle: q.ProjectTitle,
		Features:     q.Features,
		Timeline:     q.Timeline,
		Budget:       q.Budget,
		Estimate:     q.Estimate,
		RequestedAt:  q.CreatedAt,
	})
	return q, nil
}

func (s *QuoteService) List(ctx context.Context, limit, offset int) ([]model.QuoteRequest, error) {
	pg, err := page(limit, offset, defaultQuoteLimit)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, pg)
}

// Export returns every stored request, newest first.
func (s *QuoteService) Export(ctx context.Context) ([]model.QuoteRequest, error) {
	return s.store.List(ctx, model.Page{})
}

func (s *QuoteService) Get(ctx context.Context, id int64) (*model.QuoteRequest, error) {
	return s.store.Get(ctx, id)
}

func trimFields(f quote.Fields) quote.Fields {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Company = strings.TrimSpace(f.Company)
	f.ProjectTitle = strings.TrimSpace(f.ProjectTitle)
	f.Description = strings.TrimSpace(f.Description)
	f.AdditionalNotes = strings.TrimSpace(f.AdditionalNotes)
	f.Features = cleanTags(f.Features)
	return f
}
