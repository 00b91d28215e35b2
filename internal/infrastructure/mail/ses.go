package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"
)

const signOff = "Best regards,\nZIDIO Connect Team"

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// Sender delivers plain text e-mails through SES. A Sender without a
// client or sender address silently drops messages.
type Sender struct {
	client SESService
	from   string
	log    *zap.Logger
}

func NewSender(client SESService, from string, log *zap.Logger) *Sender {
	return &Sender{client: client, from: strings.TrimSpace(from), log: logger.OrNop(log)}
}

// NewSESSender loads AWS credentials from the default chain. Mail is disabled
// when no sender address is configured.
func NewSESSender(ctx context.Context, cfg config.MailConfig, log *zap.Logger) (*Sender, error) {
	if strings.TrimSpace(cfg.From) == "" {
		logger.OrNop(log).Info("mail disabled, MAIL_FROM not set")
		return NewSender(nil, "", log), nil
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSender(ses.NewFromConfig(awsCfg), cfg.From, log), nil
}

func (s *Sender) Enabled() bool {
	return s != nil && s.client != nil && s.from != ""
}

func (s *Sender) Send(ctx context.Context, to, subject, body string) error {
	if !s.Enabled() {
		return nil
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	text := strings.TrimRight(body, "\n") + "\n\n" + signOff
	_, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(text)},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		s.log.Warn("send email failed", zap.String("to", to), zap.String("subject", subject), zap.Error(err))
		return fmt.Errorf("send email: %w", err)
	}
	s.log.Debug("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
