// Package payment charges external funding sources. The only provider today
// is Stripe, used when a top-up is funded by card instead of bank transfer.
package payment

import (
	"context"
	"errors"
	"fmt"

	apperr "fluidit/internal/errors"

	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/charge"
)

// StripeCharger charges card tokens through Stripe.
type StripeCharger struct {
	currency stripe.Currency
}

// NewStripeCharger configures the global Stripe key and returns a charger.
func NewStripeCharger(secretKey string) *StripeCharger {
	stripe.Key = secretKey
	return &StripeCharger{currency: stripe.CurrencyNGN}
}

// Charge bills the card token for the given amount. Amounts are naira with
// two decimal places; Stripe wants the minor unit.
func (c *StripeCharger) Charge(ctx context.Context, cardToken string, amount float64, description string) error {
	if cardToken == "" {
		return apperr.ErrValidation.WithMessage("card token is required")
	}

	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(int64(amount * 100)),
		Currency:    stripe.String(string(c.currency)),
		Description: stripe.String(description),
	}
	params.Context = ctx
	if err := params.SetSource(cardToken); err != nil {
		return apperr.ErrValidation.WithMessage("invalid card token")
	}

	if _, err := charge.New(params); err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return apperr.ErrValidation.WithMessage(
				fmt.Sprintf("card declined: %s", stripeErr.Msg))
		}
		return fmt.Errorf("stripe charge failed: %w", err)
	}
	return nil
}
