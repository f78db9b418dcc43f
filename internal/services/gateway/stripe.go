package gateway

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/paymentintent"
)

type stripeGateway struct{}

// NewStripeGateway configures the Stripe client with the given API key.
func NewStripeGateway(apiKey string) DepositGateway {
	stripe.Key = apiKey
	return &stripeGateway{}
}

func (g *stripeGateway) VerifyReference(_ context.Context, reference string, amount decimal.Decimal) error {
	intent, err := paymentintent.Get(reference, nil)
	if err != nil {
		return fmt.Errorf("payment lookup failed: %w", err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return ErrPaymentNotConfirmed
	}
	// Stripe reports amounts in the smallest currency unit.
	paid := decimal.NewFromInt(intent.Amount).Div(decimal.NewFromInt(100))
	if !paid.Equal(amount) {
		return ErrAmountMismatch
	}
	return nil
}
