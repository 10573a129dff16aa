package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ssdcollector/internal/models"
	"ssdcollector/internal/upload"
)

type fakeSES struct {
	inputs []*sesv2.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.inputs = append(f.inputs, params)
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func pendingFixture() *models.PendingSession {
	return &models.PendingSession{
		ID:          "session_1",
		PatientID:   4,
		PatientName: "Ali <script>",
		CreatedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Notes:       "Protocol: Fronting",
		Recordings: []models.UploadRecording{
			{Word: "Bikri", ErrorType: "FRT", IsCorrect: false},
			{Word: "Sher", ErrorType: "None", IsCorrect: true},
		},
	}
}

func TestEmailNotifierDisabled(t *testing.T) {
	n, err := NewEmailNotifier(context.Background(), "us-east-1", "", "", "", zap.NewNop())
	require.NoError(t, err)
	assert.False(t, n.IsEnabled())
	assert.NoError(t, n.SessionSynced(context.Background(), pendingFixture(), nil))
}

func TestEmailNotifierSends(t *testing.T) {
	ses := &fakeSES{}
	n := newEmailNotifier(ses, "noreply@example.com", "SSD Collector", "slp@example.com", zap.NewNop())

	err := n.SessionSynced(context.Background(), pendingFixture(), &upload.Result{SessionID: 77})
	require.NoError(t, err)
	require.Len(t, ses.inputs, 1)

	in := ses.inputs[0]
	assert.Equal(t, "SSD Collector <noreply@example.com>", *in.FromEmailAddress)
	assert.Equal(t, []string{"slp@example.com"}, in.Destination.ToAddresses)
	assert.Equal(t, "Assessment uploaded: Ali <script>", *in.Content.Simple.Subject.Data)

	text := *in.Content.Simple.Body.Text.Data
	assert.Contains(t, text, "Backend session: 77")
	assert.Contains(t, text, "Recordings: 2")
	assert.Contains(t, text, "Bikri (FRT)")
	assert.NotContains(t, *in.Content.Simple.Body.Html.Data, "<script>")
}

func TestEmailNotifierError(t *testing.T) {
	ses := &fakeSES{err: errors.New("throttled")}
	n := newEmailNotifier(ses, "noreply@example.com", "", "slp@example.com", zap.NewNop())

	err := n.SessionSynced(context.Background(), pendingFixture(), nil)
	assert.ErrorContains(t, err, "failed to send email")
}
