package mailer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mailersend/mailersend-go"
)

type MailerSendClient struct {
	client  *mailersend.Mailersend
	from    mailersend.From
	enabled bool
}

func NewMailerSend(apiKey, fromEmail string) *MailerSendClient {
	m := &MailerSendClient{
		enabled: apiKey != "" && fromEmail != "",
		from: mailersend.From{
			Name:  "Gizmorent",
			Email: fromEmail,
		},
	}

	if m.enabled {
		m.client = mailersend.NewMailersend(apiKey)
	}

	return m
}

func (m *MailerSendClient) SendRenterApprovedEmail(toEmail, toName, renterCode string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your Gizmorent renter application was approved"
	html := fmt.Sprintf(`
		<h2>Welcome aboard, %s!</h2>
		<p>Your renter application has been approved.</p>
		<p>Your renter code is: <strong style="font-size: 20px;">%s</strong></p>
		<p>You can now list gadgets for rent on Gizmorent.</p>
	`, toName, renterCode)

	text := fmt.Sprintf("Your renter application was approved. Your renter code is: %s", renterCode)

	return m.sendEmail(toEmail, toName, subject, text, html)
}

func (m *MailerSendClient) SendRenterRejectedEmail(toEmail string) error {
	if !m.enabled {
		return fmt.Errorf("MailerSend not configured")
	}

	subject := "Your Gizmorent renter application"
	text := "Unfortunately your renter application was not approved this time. You can submit a new request at any point."

	return m.sendEmail(toEmail, "", subject, text, "")
}

func (m *MailerSendClient) sendEmail(toEmail, toName, subject, text, html string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg := m.client.Email.NewMessage()
	msg.SetFrom(m.from)
	msg.SetRecipients([]mailersend.Recipient{{Name: toName, Email: toEmail}})
	msg.SetSubject(subject)

	if strings.TrimSpace(text) != "" {
		msg.SetText(text)
	}
	if strings.TrimSpace(html) != "" {
		msg.SetHTML(html)
	}

	_, err := m.client.Email.Send(ctx, msg)
	return err
}
