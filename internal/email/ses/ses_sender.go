package ses

import (
	"context"
	"fmt"
	"html"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"plotbook/internal/port"
)

type sesSender struct {
	client      *sesv2.Client
	fromAddress string
	fromName    string
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return &sesSender{
		client:      sesv2.NewFromConfig(cfg),
		fromAddress: fromAddress,
		fromName:    fromName,
	}, nil
}

func (s *sesSender) SendStatementLink(ctx context.Context, msg port.StatementEmail) error {
	subject := StatementSubject(msg)
	htmlBody := BuildStatementHTML(msg)
	textBody := BuildStatementText(msg)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.ToEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: &subject},
				Body: &types.Body{
					Html: &types.Content{Data: &htmlBody},
					Text: &types.Content{Data: &textBody},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("SES SendEmail: %w", err)
	}
	return nil
}

// StatementSubject is the subject line of a statement email.
func StatementSubject(msg port.StatementEmail) string {
	if msg.ProjectName == "" {
		return fmt.Sprintf("Payment statement for plot %s", msg.PlotNumber)
	}
	return fmt.Sprintf("Payment statement for plot %s, %s", msg.PlotNumber, msg.ProjectName)
}

// BuildStatementText renders the plain-text body.
func BuildStatementText(msg port.StatementEmail) string {
	return fmt.Sprintf("Hi %s,\n\nYour payment statement for plot %s is ready:\n%s\n\nThis link expires in %d hours.\n",
		greetingName(msg), msg.PlotNumber, msg.DownloadURL, msg.ExpiryHours)
}

// BuildStatementHTML renders the HTML body.
func BuildStatementHTML(msg port.StatementEmail) string {
	name := html.EscapeString(greetingName(msg))
	plot := html.EscapeString(msg.PlotNumber)
	link := html.EscapeString(msg.DownloadURL)
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <h2 style="color: #333;">Your payment statement</h2>
  <p>Hi %s,</p>
  <p>The payment statement for plot <strong>%s</strong> is ready to download.</p>
  <p style="text-align: center; margin: 30px 0;">
    <a href="%s" style="background-color: #2563EB; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block;">Download Statement</a>
  </p>
  <p>Or copy and paste this link into your browser:</p>
  <p style="word-break: break-all; color: #666;">%s</p>
  <p style="color: #999; font-size: 12px;">This link expires in %d hours.</p>
</body>
</html>`, name, plot, link, link, msg.ExpiryHours)
}

func greetingName(msg port.StatementEmail) string {
	if msg.ToName == "" {
		return "there"
	}
	return msg.ToName
}
