// Package notify sends agency notifications by e-mail.
package notify

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"wefixit/pkg/config"
	"wefixit/pkg/logger"
)

// Mailer delivers a plain-text message to the agency inbox.
type Mailer interface {
	Send(ctx context.Context, subject, body string) error
}

// New returns an SMTP mailer, or a log-only mailer when SMTP is not
// configured.
func New(cfg config.SMTPConfig, l *zap.Logger) Mailer {
	to := splitAddrs(cfg.To)
	if cfg.Host == "" || len(to) == 0 {
		l.Info("SMTP not configured, notifications will only be logged")
		return &LogMailer{logger: l}
	}
	port := cfg.Port
	if port == 0 {
		port = 587
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, port, cfg.Username, cfg.Password),
		from:   from,
		to:     to,
		logger: l,
	}
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	to     []string
	logger *zap.Logger
}

func (m *SMTPMailer) Send(ctx context.Context, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", m.to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	logger.WithTrace(ctx, m.logger).Info("Notification mail sent",
		zap.String("subject", subject),
		zap.Strings("to", m.to),
	)
	return nil
}

// LogMailer writes the notification to the log instead of sending it.
type LogMailer struct {
	logger *zap.Logger
}

func NewLogMailer(l *zap.Logger) *LogMailer {
	return &LogMailer{logger: l}
}

func (m *LogMailer) Send(ctx context.Context, subject, body string) error {
	logger.WithTrace(ctx, m.logger).Info("Notification (mail disabled)",
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}

func splitAddrs(s string) []string {
	var out []string
	for _, a := range strings.Split(s, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}
