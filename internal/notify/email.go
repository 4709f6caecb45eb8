package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// Email is a single outbound message.
type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// EmailSender defines the interface for the transactional mail relay
type EmailSender interface {
	Send(ctx context.Context, email Email) error
}

// SESEmailSender sends emails using AWS SES
type SESEmailSender struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewSESEmailSender creates a new AWS SES email sender
func NewSESEmailSender(region, fromAddress string, logger *slog.Logger) (*SESEmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &SESEmailSender{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// Send dispatches one email via SES
func (s *SESEmailSender) Send(ctx context.Context, email Email) error {
	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{email.To},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String(email.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(email.HTML),
				},
				Text: &types.Content{
					Data: aws.String(email.Text),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send email via SES",
			slog.String("subject", email.Subject),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("email sent",
		slog.String("subject", email.Subject),
		slog.String("message_id", *result.MessageId))

	return nil
}
