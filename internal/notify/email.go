package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"ssdcollector/internal/models"
	"ssdcollector/internal/upload"
)

// sesAPI is the subset of the SES v2 client used here
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailNotifier sends a session summary through Amazon SES
type EmailNotifier struct {
	client    sesAPI
	fromEmail string
	fromName  string
	toEmail   string
	enabled   bool
	logger    *zap.Logger
}

// NewEmailNotifier creates the notifier. Without a sender or recipient it is
// returned disabled and every call is a no-op.
func NewEmailNotifier(ctx context.Context, awsRegion, fromEmail, fromName, toEmail string, logger *zap.Logger) (*EmailNotifier, error) {
	if fromEmail == "" || toEmail == "" {
		logger.Info("Email notifications disabled: SES_FROM_EMAIL or NOTIFY_EMAIL not configured")
		return &EmailNotifier{logger: logger}, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(awsRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("Email notifications enabled",
		zap.String("from", fromEmail),
		zap.String("region", awsRegion),
	)
	return newEmailNotifier(sesv2.NewFromConfig(cfg), fromEmail, fromName, toEmail, logger), nil
}

func newEmailNotifier(client sesAPI, fromEmail, fromName, toEmail string, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{
		client:    client,
		fromEmail: fromEmail,
		fromName:  fromName,
		toEmail:   toEmail,
		enabled:   true,
		logger:    logger,
	}
}

// IsEnabled returns whether emails are sent
func (n *EmailNotifier) IsEnabled() bool {
	return n.enabled
}

// SessionSynced sends a summary of the uploaded session
func (n *EmailNotifier) SessionSynced(ctx context.Context, ps *models.PendingSession, res *upload.Result) error {
	if !n.enabled {
		n.logger.Debug("Skipping session email (notifier disabled)", zap.String("pending_id", ps.ID))
		return nil
	}

	subject, textBody, htmlBody := summary(ps, res)

	fromAddress := n.fromEmail
	if n.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", n.fromName, n.fromEmail)
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{n.toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	out, err := n.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", n.toEmail, err)
	}

	fields := []zap.Field{zap.String("to", n.toEmail), zap.String("pending_id", ps.ID)}
	if out != nil && out.MessageId != nil {
		fields = append(fields, zap.String("message_id", *out.MessageId))
	}
	n.logger.Info("Session email sent", fields...)
	return nil
}

func summary(ps *models.PendingSession, res *upload.Result) (subject, text, htmlBody string) {
	name := ps.PatientName
	if name == "" {
		name = fmt.Sprintf("patient #%d", ps.PatientID)
	}
	subject = fmt.Sprintf("Assessment uploaded: %s", name)

	var incorrect []string
	for _, r := range ps.Recordings {
		if !r.IsCorrect {
			incorrect = append(incorrect, fmt.Sprintf("%s (%s)", r.Word, r.ErrorType))
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s\n", name)
	fmt.Fprintf(&b, "Recorded: %s\n", ps.CreatedAt.Format("Jan 2, 2006 15:04"))
	if res != nil {
		fmt.Fprintf(&b, "Backend session: %d\n", res.SessionID)
	}
	fmt.Fprintf(&b, "Recordings: %d\n", len(ps.Recordings))
	fmt.Fprintf(&b, "Marked incorrect: %d\n", len(incorrect))
	for _, w := range incorrect {
		fmt.Fprintf(&b, "  - %s\n", w)
	}
	if ps.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", ps.Notes)
	}
	text = b.String()

	htmlBody = "<html><body><pre style=\"font-family: Arial, sans-serif\">" + html.EscapeString(text) + "</pre></body></html>"
	return subject, text, htmlBody
}
