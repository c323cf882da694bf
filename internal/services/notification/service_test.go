package notification

import (
	"context"
	"testing"
	"time"

	"fluidit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to      string
	subject string
	body    string
}

// recordingMailer pushes every send onto a channel so tests can wait for
// the fire-and-forget goroutines.
type recordingMailer struct {
	sent chan sentMail
}

func newRecordingMailer() *recordingMailer {
	return &recordingMailer{sent: make(chan sentMail, 8)}
}

func (m *recordingMailer) Send(to, subject, htmlBody string) error {
	m.sent <- sentMail{to: to, subject: subject, body: htmlBody}
	return nil
}

func (m *recordingMailer) next(t *testing.T) sentMail {
	t.Helper()
	select {
	case mail := <-m.sent:
		return mail
	case <-time.After(2 * time.Second):
		t.Fatal("expected an email to be sent")
		return sentMail{}
	}
}

func TestService_TransferCompleted(t *testing.T) {
	mailer := newRecordingMailer()
	svc := NewService(mailer, nil)

	sender := &models.User{Name: "Ade", Email: "ade@example.com"}
	recipient := &models.User{Name: "Bisi", Email: "bisi@example.com"}
	tx := &models.Transaction{Reference: "TXN00000001AAAAA", Amount: 500, Fee: 10}

	svc.TransferCompleted(context.Background(), sender, recipient, tx, 490)

	byRecipient := map[string]sentMail{}
	for i := 0; i < 2; i++ {
		mail := mailer.next(t)
		byRecipient[mail.to] = mail
	}

	senderMail, ok := byRecipient["ade@example.com"]
	require.True(t, ok)
	assert.Equal(t, "Payment Sent", senderMail.subject)
	assert.Contains(t, senderMail.body, "NGN 500.00")
	assert.Contains(t, senderMail.body, "Bisi")
	assert.Contains(t, senderMail.body, "TXN00000001AAAAA")
	assert.Contains(t, senderMail.body, "NGN 490.00")

	recipientMail, ok := byRecipient["bisi@example.com"]
	require.True(t, ok)
	assert.Equal(t, "Payment Received", recipientMail.subject)
	assert.Contains(t, recipientMail.body, "Ade")
}

func TestService_TopUpCompleted(t *testing.T) {
	mailer := newRecordingMailer()
	svc := NewService(mailer, nil)

	user := &models.User{Name: "Ade", Email: "ade@example.com"}
	tx := &models.Transaction{Reference: "TOP00000002BBBBB", Amount: 2000}

	svc.TopUpCompleted(context.Background(), user, tx, 3000)

	mail := mailer.next(t)
	assert.Equal(t, "Wallet Top-up", mail.subject)
	assert.Contains(t, mail.body, "NGN 2000.00")
	assert.Contains(t, mail.body, "NGN 3000.00")
}

func TestService_SendVerificationOTP(t *testing.T) {
	t.Run("delivers the code", func(t *testing.T) {
		mailer := newRecordingMailer()
		svc := NewService(mailer, nil)

		require.NoError(t, svc.SendVerificationOTP("ade@example.com", "Ade", "123456"))

		mail := mailer.next(t)
		assert.Equal(t, "Verify your account", mail.subject)
		assert.Contains(t, mail.body, "123456")
	})

	t.Run("nil mailer is a no-op", func(t *testing.T) {
		svc := NewService(nil, nil)
		assert.NoError(t, svc.SendVerificationOTP("ade@example.com", "Ade", "123456"))
	})
}
