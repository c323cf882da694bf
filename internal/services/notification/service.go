// Package notification delivers emails and push messages after money moves.
// Delivery is always best effort: methods return immediately and failures
// are logged, never surfaced to the transaction path.
package notification

import (
	"context"
	"log"
	"strconv"

	"fluidit/internal/models"
)

// Pusher delivers a push notification to a user's devices.
type Pusher interface {
	Push(ctx context.Context, userID uint, title, body string) error
}

// Service fans ledger events out to email and push channels.
type Service struct {
	mailer Mailer
	pusher Pusher
}

// NewService creates the notification service. mailer and pusher may be nil;
// nil channels are skipped.
func NewService(mailer Mailer, pusher Pusher) *Service {
	return &Service{mailer: mailer, pusher: pusher}
}

// TransferCompleted notifies both parties of a finished transfer.
func (s *Service) TransferCompleted(ctx context.Context, sender, recipient *models.User, tx *models.Transaction, senderBalance float64) {
	go func() {
		s.email(sender.Email, "Payment Sent",
			paymentSentBody(sender.Name, recipient.Name, tx.Reference, tx.Amount, tx.Fee, senderBalance))
		s.email(recipient.Email, "Payment Received",
			paymentReceivedBody(recipient.Name, sender.Name, tx.Reference, tx.Amount))
		s.push(recipient.ID, "Payment Received",
			"You received NGN "+formatAmount(tx.Amount)+" from "+sender.Name)
	}()
}

// TopUpCompleted notifies the user of a successful top-up.
func (s *Service) TopUpCompleted(ctx context.Context, user *models.User, tx *models.Transaction, newBalance float64) {
	go func() {
		s.email(user.Email, "Wallet Top-up",
			topUpBody(user.Name, tx.Reference, tx.Amount, newBalance))
	}()
}

// WithdrawalCompleted notifies the user of a successful withdrawal.
func (s *Service) WithdrawalCompleted(ctx context.Context, user *models.User, tx *models.Transaction, newBalance float64) {
	go func() {
		s.email(user.Email, "Withdrawal Completed",
			withdrawalBody(user.Name, tx.Reference, tx.Amount, tx.Fee, newBalance))
	}()
}

// SendVerificationOTP emails a registration verification code. Unlike the
// ledger events this one is synchronous so registration can report delivery
// problems.
func (s *Service) SendVerificationOTP(email, name, otp string) error {
	if s.mailer == nil {
		log.Printf("no mailer configured, OTP for %s not sent", email)
		return nil
	}
	return s.mailer.Send(email, "Verify your account", verificationBody(name, otp))
}

func (s *Service) email(to, subject, body string) {
	if s.mailer == nil || to == "" {
		return
	}
	if err := s.mailer.Send(to, subject, body); err != nil {
		log.Printf("email delivery failed: %v", err)
	}
}

func (s *Service) push(userID uint, title, body string) {
	if s.pusher == nil {
		return
	}
	if err := s.pusher.Push(context.Background(), userID, title, body); err != nil {
		log.Printf("push delivery failed for user %d: %v", userID, err)
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
