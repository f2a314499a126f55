package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"go.uber.org/zap"

	"wefixit/contracts/mq"
	"wefixit/internal/apperr"
	"wefixit/internal/model"
	"wefixit/internal/quote"
	"wefixit/pkg/logger"
	"wefixit/pkg/metrics"
)

const (
	defaultReviewLimit = 50
	reviewDedupScope   = "review_submit"
)

// ReviewInput is what a visitor may send. It has no status field; new
// reviews are always pending.
type ReviewInput struct {
	Name        string
	Email       string
	Company     string
	Message     string
	Rating      int
	ProjectType string
}

type ReviewService struct {
	store     ReviewStore
	dedup     Deduper
	publisher EventPublisher
	logger    *zap.Logger
}

func NewReviewService(store ReviewStore, dedup Deduper, publisher EventPublisher, logger *zap.Logger) *ReviewService {
	return &ReviewService{store: store, dedup: dedup, publisher: publisher, logger: logger}
}

// Submit validates and stores a new pending review.
func (s *ReviewService) Submit(ctx context.Context, in ReviewInput) (*model.Review, error) {
	r := &model.Review{
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Company:     strings.TrimSpace(in.Company),
		Message:     strings.TrimSpace(in.Message),
		Rating:      in.Rating,
		ProjectType: strings.TrimSpace(in.ProjectType),
		Status:      model.ReviewPending,
	}

	verr := apperr.Validation("invalid review")
	if r.Name == "" {
		verr.Add("name", "is required")
	}
	if r.Email == "" {
		verr.Add("email", "is required")
	} else if !quote.ValidEmail(r.Email) {
		verr.Add("email", "is not a valid email")
	}
	if r.Message == "" {
		verr.Add("message", "is required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		verr.Add("rating", "must be between 1 and 5")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	key := reviewFingerprint(r.Email, r.Message)
	if s.dedup != nil && !s.dedup.AcquireOnce(ctx, reviewDedupScope, key) {
		return nil, apperr.Validation("duplicate review", "message", "this review was already submitted")
	}

	if err := s.store.Create(ctx, r); err != nil {
		if s.dedup != nil {
			s.dedup.Release(ctx, reviewDedupScope, key)
		}
		return nil, err
	}

	metrics.IncrementReview("submitted")
	logger.WithTrace(ctx, s.logger).Info("Review submitted",
		zap.Int64("review_id", r.ID),
		zap.Int("rating", r.Rating),
	)
	emit(ctx, s.publisher, s.logger, mq.RoutingReviewSubmitted, mq.ReviewSubmittedPayload{
		ReviewID:    r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Company:     r.Company,
		Rating:      r.Rating,
		Message:     r.Message,
		SubmittedAt: r.CreatedAt,
	})
	return r, nil
}

// ListApproved is the public listing: approved reviews only, newest first.
func (s *ReviewService) ListApproved(ctx context.Context, limit, offset int) ([]model.Review, error) {
	pg, err := page(limit, offset, defaultReviewLimit)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, model.ReviewFilter{Status: model.ReviewApproved, Limit: pg.Limit, Offset: pg.Offset})
}

// ListAll is the admin listing across every status.
func (s *ReviewService) ListAll(ctx context.Context, limit, offset int) ([]model.Review, error) {
	pg, err := page(limit, offset, defaultReviewLimit)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, model.ReviewFilter{Limit: pg.Limit, Offset: pg.Offset})
}

// Approve publishes a review. Approving an approved review is a no-op.
func (s *ReviewService) Approve(ctx context.Context, id int64) (*model.Review, error) {
	r, err := s.store.SetStatus(ctx, id, model.ReviewApproved)
	if err != nil {
		return nil, err
	}
	metrics.IncrementReview("approved")
	logger.WithTrace(ctx, s.logger).Info("Review approved", zap.Int64("review_id", id))
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	metrics.IncrementReview("deleted")
	return nil
}

func reviewFingerprint(email, message string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(email) + "\n" + message))
	return hex.EncodeToString(sum[:])
}
