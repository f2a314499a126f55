// Package mqhandler turns domain events into agency notifications.
package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"wefixit/contracts/mq"
	"wefixit/internal/notify"
	"wefixit/pkg/logger"
	"wefixit/pkg/metrics"
)

// Deduper guards against mailing the same event twice. A nil Deduper
// disables the check.
type Deduper interface {
	AcquireOnce(ctx context.Context, scope, key string) bool
	Release(ctx context.Context, scope, key string)
}

type Notifier struct {
	mailer notify.Mailer
	dedup  Deduper
	logger *zap.Logger
}

func NewNotifier(mailer notify.Mailer, dedup Deduper, logger *zap.Logger) *Notifier {
	return &Notifier{mailer: mailer, dedup: dedup, logger: logger}
}

// Handlers maps each routing key to its handler.
func (n *Notifier) Handlers() map[string]func(context.Context, json.RawMessage) error {
	return map[string]func(context.Context, json.RawMessage) error{
		mq.RoutingReviewSubmitted: n.HandleReviewSubmitted,
		mq.RoutingQuoteRequested:  n.HandleQuoteRequested,
		mq.RoutingContactReceived: n.HandleContactReceived,
	}
}

func (n *Notifier) HandleReviewSubmitted(ctx context.Context, raw json.RawMessage) error {
	var p mq.ReviewSubmittedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		n.logger.Error("Failed to unmarshal review submitted payload", zap.Error(err))
		return err
	}

	subject := fmt.Sprintf("New review from %s (%d/5) awaiting approval", p.Name, p.Rating)
	var b strings.Builder
	fmt.Fprintf(&b, "Name:    %s\n", p.Name)
	fmt.Fprintf(&b, "Email:   %s\n", p.Email)
	if p.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", p.Company)
	}
	fmt.Fprintf(&b, "Rating:  %s\n", stars(p.Rating))
	fmt.Fprintf(&b, "Date:    %s\n\n", p.SubmittedAt.Format("2006-01-02 15:04"))
	b.WriteString(p.Message)
	b.WriteString("\n\nApprove it from the admin dashboard to publish it.\n")

	return n.send(ctx, mq.RoutingReviewSubmitted, p.ReviewID, subject, b.String())
}

func (n *Notifier) HandleQuoteRequested(ctx context.Context, raw json.RawMessage) error {
	var p mq.QuoteRequestedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		n.logger.Error("Failed to unmarshal quote requested payload", zap.Error(err))
		return err
	}

	subject := fmt.Sprintf("Quote request: %s (%s)", p.ProjectTitle, p.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "Name:      %s\n", p.Name)
	fmt.Fprintf(&b, "Email:     %s\n", p.Email)
	if p.Phone != "" {
		fmt.Fprintf(&b, "Phone:     %s\n", p.Phone)
	}
	if p.Company != "" {
		fmt.Fprintf(&b, "Company:   %s\n", p.Company)
	}
	fmt.Fprintf(&b, "Service:   %s\n", p.ServiceType)
	if len(p.Features) > 0 {
		fmt.Fprintf(&b, "Features:  %s\n", strings.Join(p.Features, ", "))
	}
	fmt.Fprintf(&b, "Timeline:  %s\n", p.Timeline)
	if p.Budget != "" {
		fmt.Fprintf(&b, "Budget:    %s\n", p.Budget)
	}
	fmt.Fprintf(&b, "Estimate:  $%.0f\n", p.Estimate)

	return n.send(ctx, mq.RoutingQuoteRequested, p.QuoteID, subject, b.String())
}

func (n *Notifier) HandleContactReceived(ctx context.Context, raw json.RawMessage) error {
	var p mq.ContactReceivedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		n.logger.Error("Failed to unmarshal contact received payload", zap.Error(err))
		return err
	}

	subject := fmt.Sprintf("Contact: %s", p.Subject)
	var b strings.Builder
	fmt.Fprintf(&b, "From:  %s %s <%s>\n", p.FirstName, p.LastName, p.Email)
	if p.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", p.Phone)
	}
	b.WriteString("\n")
	b.WriteString(p.Message)
	b.WriteString("\n")

	return n.send(ctx, mq.RoutingContactReceived, p.MessageID, subject, b.String())
}

// send mails one notification per (routing key, entity id). A failed send
// releases the dedupe key so the redelivery can try again.
func (n *Notifier) send(ctx context.Context, routingKey string, id int64, subject, body string) error {
	scope := "notify." + routingKey
	key := strconv.FormatInt(id, 10)
	log := logger.WithTrace(ctx, n.logger).With(
		zap.String("routing_key", routingKey),
		zap.Int64("entity_id", id),
	)

	if n.dedup != nil && !n.dedup.AcquireOnce(ctx, scope, key) {
		log.Info("Notification already sent, skipping")
		metrics.IncrementNotification(routingKey, "duplicate")
		return nil
	}

	if err := n.mailer.Send(ctx, subject, body); err != nil {
		if n.dedup != nil {
			n.dedup.Release(ctx, scope, key)
		}
		log.Error("Failed to send notification", zap.Error(err))
		metrics.IncrementNotification(routingKey, "failed")
		return err
	}

	log.Info("Notification sent")
	metrics.IncrementNotification(routingKey, "sent")
	return nil
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("*", n) + strings.Repeat("-", 5-n)
}
