package mailer

import (
	"fmt"
	"net/smtp"
)

// SMTPMailer sends through a plain SMTP relay (MailHog in development).
type SMTPMailer struct {
	host string
	port int
	from string
}

func NewSMTP(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{host: host, port: port, from: from}
}

func (s *SMTPMailer) SendRenterApprovedEmail(toEmail, toName, renterCode string) error {
	subject := "Your Gizmorent renter application was approved"
	body := fmt.Sprintf("Hi %s,\r\n\r\nYour renter application was approved. Your renter code is: %s\r\n", toName, renterCode)
	return s.send(toEmail, subject, body)
}

func (s *SMTPMailer) SendRenterRejectedEmail(toEmail string) error {
	subject := "Your Gizmorent renter application"
	body := "Unfortunately your renter application was not approved this time.\r\n"
	return s.send(toEmail, subject, body)
}

func (s *SMTPMailer) send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	msg := "From: " + s.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	return smtp.SendMail(addr, nil, s.from, []string{to}, []byte(msg))
}
