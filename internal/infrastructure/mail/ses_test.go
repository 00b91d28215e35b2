package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         int
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls++
	return m.SendEmailFunc(ctx, params, optFns...)
}

func TestSender_Send(t *testing.T) {
	var got *ses.SendEmailInput
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			got = params
			return &ses.SendEmailOutput{}, nil
		},
	}
	s := NewSender(mock, "noreply@zidio.in", nil)

	require.NoError(t, s.Send(context.Background(), "ana@example.com", "Application received", "Hi Ana"))
	require.NotNil(t, got)
	assert.Equal(t, []string{"ana@example.com"}, got.Destination.ToAddresses)
	assert.Equal(t, "noreply@zidio.in", aws.ToString(got.Source))
	assert.Equal(t, "Application received", aws.ToString(got.Message.Subject.Data))
	body := aws.ToString(got.Message.Body.Text.Data)
	assert.True(t, strings.HasPrefix(body, "Hi Ana"))
	assert.True(t, strings.HasSuffix(body, "ZIDIO Connect Team"))
}

func TestSender_DisabledDropsMessages(t *testing.T) {
	mock := &MockSESService{}
	s := NewSender(mock, "", nil)

	assert.False(t, s.Enabled())
	assert.NoError(t, s.Send(context.Background(), "ana@example.com", "x", "y"))
	assert.Equal(t, 0, mock.calls)

	var nilSender *Sender
	assert.NoError(t, nilSender.Send(context.Background(), "ana@example.com", "x", "y"))
}

func TestSender_PropagatesFailure(t *testing.T) {
	mock := &MockSESService{
		SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
			return nil, errors.New("throttled")
		},
	}
	s := NewSender(mock, "noreply@zidio.in", nil)

	err := s.Send(context.Background(), "ana@example.com", "x", "y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSender_RejectsEmptyRecipient(t *testing.T) {
	mock := &MockSESService{}
	s := NewSender(mock, "noreply@zidio.in", nil)
	assert.Error(t, s.Send(context.Background(), "  ", "x", "y"))
	assert.Equal(t, 0, mock.calls)
}
