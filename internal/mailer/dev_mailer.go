package mailer

import (
	"github.com/soniabinty/gizmorent-server/pkg/logger"
)

// DevMailer logs emails instead of sending them.
type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendRenterApprovedEmail(toEmail, toName, renterCode string) error {
	logger.Info("[DEV MAIL] Renter approved",
		"to", toEmail,
		"name", toName,
		"renter_code", renterCode,
	)
	return nil
}

func (d *DevMailer) SendRenterRejectedEmail(toEmail string) error {
	logger.Info("[DEV MAIL] Renter rejected", "to", toEmail)
	return nil
}
