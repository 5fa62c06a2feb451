package payments

import (
	"context"
	"math"

	"github.com/soniabinty/gizmorent-server/internal/domain"
	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// Intent is the subset of a Stripe payment intent the rest of the system
// cares about.
type Intent struct {
	ID           string
	ClientSecret string
	Amount       int64
}

type StripeClient interface {
	CreateIntent(ctx context.Context, amount float64, email string) (*Intent, error)
}

type stripeClient struct {
	api      *client.API
	currency string
}

func NewStripeClient(secretKey, currency string) StripeClient {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeClient{api: api, currency: currency}
}

// MinorUnits converts a decimal amount to the gateway's integer minor units.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (c *stripeClient) CreateIntent(ctx context.Context, amount float64, email string) (*Intent, error) {
	params := &stripe.PaymentIntentParams{
		Params:       stripe.Params{Context: ctx},
		Amount:       stripe.Int64(MinorUnits(amount)),
		Currency:     stripe.String(c.currency),
		ReceiptEmail: stripe.String(email),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, domain.UpstreamError("Could not create payment intent: %v", err)
	}

	return &Intent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Amount:       pi.Amount,
	}, nil
}
