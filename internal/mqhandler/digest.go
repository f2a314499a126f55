package mqhandler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"wefixit/internal/model"
	"wefixit/internal/notify"
)

// ReviewLister is the part of the review store the digest needs.
type ReviewLister interface {
	List(ctx context.Context, f model.ReviewFilter) ([]model.Review, error)
}

// ReviewDigest mails a summary of the reviews still waiting for approval.
type ReviewDigest struct {
	reviews ReviewLister
	mailer  notify.Mailer
	logger  *zap.Logger
}

func NewReviewDigest(reviews ReviewLister, mailer notify.Mailer, logger *zap.Logger) *ReviewDigest {
	return &ReviewDigest{reviews: reviews, mailer: mailer, logger: logger}
}

// Run sends the digest. Nothing is sent when no review is pending.
func (d *ReviewDigest) Run(ctx context.Context) error {
	pending, err := d.reviews.List(ctx, model.ReviewFilter{Status: model.ReviewPending})
	if err != nil {
		return fmt.Errorf("list pending reviews: %w", err)
	}
	if len(pending) == 0 {
		d.logger.Debug("No pending reviews, digest skipped")
		return nil
	}

	subject := fmt.Sprintf("%d review(s) awaiting approval", len(pending))
	var b strings.Builder
	for _, r := range pending {
		fmt.Fprintf(&b, "#%d  %s  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02"), stars(r.Rating), r.Name)
		fmt.Fprintf(&b, "    %s\n", excerpt(r.Message, 120))
	}

	if err := d.mailer.Send(ctx, subject, b.String()); err != nil {
		return err
	}
	d.logger.Info("Review digest sent", zap.Int("pending", len(pending)))
	return nil
}

// Schedule registers the digest on a new cron scheduler. The caller starts
// and stops it.
func (d *ReviewDigest) Schedule(spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := d.Run(ctx); err != nil {
			d.logger.Error("Review digest failed", zap.Error(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule review digest %q: %w", spec, err)
	}
	return c, nil
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
