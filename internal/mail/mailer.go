// Package mail delivers contact form submissions by email through Resend.
package mail

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/camuig/fx-signals/internal/config"
	"github.com/camuig/fx-signals/internal/logger"
)

// ErrNotConfigured is returned by Send when no API key is set.
var ErrNotConfigured = errors.New("mail delivery not configured")

// Message is one contact form submission to forward.
type Message struct {
	Name    string
	Email   string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) (id string, err error)
}

type ResendMailer struct {
	client *resend.Client
	from   string
	to     []string
	logger *logger.Logger
}

func NewResendMailer(cfg *config.Config, log *logger.Logger) *ResendMailer {
	var client *resend.Client
	if key := strings.TrimSpace(cfg.Mail.APIKey); key != "" {
		client = resend.NewClient(key)
	}
	return NewResendMailerWithClient(client, cfg.Mail.From, cfg.Mail.To, log)
}

// NewResendMailerWithClient uses a prepared client; a nil client yields a
// mailer whose Send always returns ErrNotConfigured.
func NewResendMailerWithClient(client *resend.Client, from string, to []string, log *logger.Logger) *ResendMailer {
	return &ResendMailer{client: client, from: from, to: to, logger: log}
}

func (m *ResendMailer) Configured() bool {
	return m.client != nil
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) (string, error) {
	if m.client == nil {
		return "", ErrNotConfigured
	}

	req := &resend.SendEmailRequest{
		From:    m.from,
		To:      m.to,
		Subject: "Contact Form: " + msg.Subject,
		ReplyTo: msg.Email,
		Text:    RenderText(msg),
		Html:    RenderHTML(msg),
	}

	sent, err := m.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return "", fmt.Errorf("send contact email: %w", err)
	}

	m.logger.Info("contact email sent", "id", sent.Id, "reply_to", msg.Email)
	return sent.Id, nil
}

func RenderText(msg Message) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s\n", msg.Name, msg.Email, msg.Body)
}

// RenderHTML escapes every submitted field; line breaks in the body become <br>.
func RenderHTML(msg Message) string {
	body := strings.ReplaceAll(html.EscapeString(msg.Body), "\n", "<br>")

	var b strings.Builder
	b.WriteString("<h3>New Contact Form Submission</h3>\n")
	fmt.Fprintf(&b, "<p><strong>Name:</strong> %s</p>\n", html.EscapeString(msg.Name))
	fmt.Fprintf(&b, "<p><strong>Email:</strong> %s</p>\n", html.EscapeString(msg.Email))
	fmt.Fprintf(&b, "<p><strong>Subject:</strong> %s</p>\n", html.EscapeString(msg.Subject))
	b.WriteString("<p><strong>Message:</strong></p>\n")
	fmt.Fprintf(&b, "<p>%s</p>\n", body)
	return b.String()
}
