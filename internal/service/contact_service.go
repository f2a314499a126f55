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
)

const defaultContactLimit = 50

type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Subject   string
	Message   string
}

type ContactService struct {
	store     ContactStore
	publisher EventPublisher
	logger    *zap.Logger
}

func NewContactService(store ContactStore, publisher EventPublisher, logger *zap.Logger) *ContactService {
	return &ContactService{store: store, publisher: publisher, logger: logger}
}

func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*model.ContactMessage, error) {
	m := &model.ContactMessage{
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Subject:   strings.TrimSpace(in.Subject),
		Message:   strings.TrimSpace(in.Message),
	}

	verr := apperr.Validation("invalid contact message")
	required := map[string]string{
		"first_name": m.FirstName,
		"last_name":  m.LastName,
		"subject":    m.Subject,
		"message":    m.Message,
	}
	for field, v := range required {
		if v == "" {
			verr.Add(field, "is required")
		}
	}
	if m.Email == "" {
		verr.Add("email", "is required")
	} else if !quote.ValidEmail(m.Email) {
		verr.Add("email", "is not a valid email")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	if err := s.store.Create(ctx, m); err != nil {
		return nil, err
	}

	logger.WithTrace(ctx, s.logger).Info("Contact message stored", zap.Int64("message_id", m.ID))
	emit(ctx, s.publisher, s.logger, mq.RoutingContactReceived, mq.ContactReceivedPayload{
		MessageID:  m.ID,
		FirstName:  m.FirstName,
		LastName:   m.LastName,
		Email:      m.Email,
		Phone:      m.Phone,
		Subject:    m.Subject,
		Message:    m.Message,
		ReceivedAt: m.CreatedAt,
	})
	return m, nil
}

func (s *ContactService) List(ctx context.Context, limit, offset int) ([]model.ContactMessage, error) {
	pg, err := page(limit, offset, defaultContactLimit)
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, pg)
}

// Export returns every stored message, newest first.
func (s *ContactService) Export(ctx context.Context) ([]model.ContactMessage, error) {
	return s.store.List(ctx, model.Page{})
}

func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
