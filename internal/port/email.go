package port

import "context"

// StatementEmail is a shared plot statement addressed to a customer.
type StatementEmail struct {
	ToEmail     string
	ToName      string
	ProjectName string
	PlotNumber  string
	DownloadURL string
	ExpiryHours int64
}

// EmailSender defines the contract for sending emails.
type EmailSender interface {
	SendStatementLink(ctx context.Context, msg StatementEmail) error
}
