package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/eboto-mo/eboto-api/internal/core/ports"
)

// SMTPMailer sends vote receipts through a plain SMTP relay.
type SMTPMailer struct {
	addr   string
	auth   smtp.Auth
	from   string
	logger *slog.Logger
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func NewSMTPMailer(cfg SMTPConfig, logger *slog.Logger) ports.ReceiptMailer {
	if logger == nil {
		logger = slog.Default()
	}
	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return &SMTPMailer{
		addr:   cfg.Host + ":" + cfg.Port,
		auth:   auth,
		from:   cfg.From,
		logger: logger,
	}
}

func (m *SMTPMailer) SendVoteReceipt(ctx context.Context, receipt ports.VoteReceipt) error {
	msg := buildReceiptMessage(m.from, receipt)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, m.from, []string{receipt.Email}, msg)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to send receipt: %w", err)
		}
		m.logger.Info("vote receipt sent", "election", receipt.ElectionSlug)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func buildReceiptMessage(from string, receipt ports.VoteReceipt) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", receipt.Email)
	fmt.Fprintf(&b, "Subject: Vote receipt for %s\r\n", receipt.ElectionName)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")

	fmt.Fprintf(&b, "Your vote for %s has been recorded.\r\n\r\n", receipt.ElectionName)
	for _, position := range receipt.Positions {
		if position.Abstained {
			fmt.Fprintf(&b, "%s: abstained\r\n", position.Name)
			continue
		}
		fmt.Fprintf(&b, "%s: %s\r\n", position.Name, strings.Join(position.Candidates, ", "))
	}
	return []byte(b.String())
}

// LogMailer is a ReceiptMailer for environments without an SMTP relay. It
// records the receipt in the log and reports success.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) ports.ReceiptMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendVoteReceipt(ctx context.Context, receipt ports.VoteReceipt) error {
	m.logger.Info("vote receipt (not mailed)",
		"election", receipt.ElectionSlug,
		"positions", len(receipt.Positions),
	)
	return nil
}
