package outbox

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/globalyuen/achievepack-sub004/internal/mailer"
)

// EmailSender delivers status notifications through the mail client.
type EmailSender struct {
	Client *mailer.Client
}

func (e *EmailSender) Send(ctx context.Context, m *Message) error {
	p, err := decodePayload(m)
	if err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	if p.CustomerEmail == "" {
		// Nothing to deliver to; treat as published rather than retrying.
		return nil
	}

	subject := fmt.Sprintf("Artwork update: %s is now %s", p.ArtworkName, statusLabel(p.Status))
	_, err = e.Client.SendOne(ctx, mailer.Recipient{Email: p.CustomerEmail, Name: p.CustomerName}, subject, statusEmailHTML(p))
	return err
}

func statusLabel(status string) string {
	return strings.ReplaceAll(status, "_", " ")
}

func statusEmailHTML(p StatusPayload) string {
	var b strings.Builder
	b.WriteString("<p>Hi {{name}},</p>")
	fmt.Fprintf(&b, "<p>Your artwork <strong>%s</strong> has moved to <strong>%s</strong>.</p>",
		html.EscapeString(p.ArtworkName), html.EscapeString(statusLabel(p.Status)))
	if p.Feedback != "" {
		fmt.Fprintf(&b, "<p>Reviewer notes: %s</p>", html.EscapeString(p.Feedback))
	}
	b.WriteString("<p>Log in to your account to see the details.</p>")
	return b.String()
}
