package mailer

// Service sends workflow emails. Failures are logged by callers, never
// surfaced to the requester.
type Service interface {
	SendRenterApprovedEmail(toEmail, toName, renterCode string) error
	SendRenterRejectedEmail(toEmail string) error
}
