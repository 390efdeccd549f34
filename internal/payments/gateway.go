// Package payments wraps the external payment processor. The storefront
// only ever asks it for one thing: a client secret authorizing a payment
// of the cart total.
package payments

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"

	"glimmer/internal/config"
)

var (
	// ErrInvalidAmount rejects non-positive charge amounts; a client
	// error, not a processor fault.
	ErrInvalidAmount = errors.New("payments: invalid amount")
	// ErrProcessor wraps any failure reported by the processor.
	ErrProcessor = errors.New("payments: processor error")
)

// IntentCreator is the slice of the processor API the gateway needs.
// *paymentintent.Client satisfies it; tests substitute fakes.
type IntentCreator interface {
	New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

type Gateway struct {
	intents  IntentCreator
	currency stripe.Currency
}

// NewGateway builds a Stripe-backed gateway. With the placeholder key the
// gateway mints local dummy secrets so the rest of the app stays usable
// without processor credentials.
func NewGateway(secretKey string) *Gateway {
	if secretKey == "" || secretKey == config.PlaceholderStripeKey {
		log.Printf("[payments] no processor key configured; issuing placeholder secrets")
		return &Gateway{intents: placeholderCreator{}, currency: stripe.CurrencyUSD}
	}
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &Gateway{intents: sc.PaymentIntents, currency: stripe.CurrencyUSD}
}

// NewGatewayWithCreator wires a custom intent creator, used by tests.
func NewGatewayWithCreator(ic IntentCreator) *Gateway {
	return &Gateway{intents: ic, currency: stripe.CurrencyUSD}
}

// MinorUnits converts a decimal currency amount to the processor's integer
// representation: multiply by 100, round to the nearest cent. Lossy by
// design for sub-cent inputs.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// CreateAuthorization asks the processor for a payment intent sized to
// amount and returns its client secret.
func (g *Gateway) CreateAuthorization(amount decimal.Decimal) (string, error) {
	if !amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(MinorUnits(amount)),
		Currency: stripe.String(string(g.currency)),
	}
	pi, err := g.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrProcessor, err)
	}
	return pi.ClientSecret, nil
}

// placeholderCreator fabricates intents locally when no processor key is
// configured. Secrets look shaped like the real thing but confirm nowhere.
type placeholderCreator struct{}

func (placeholderCreator) New(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
	id := "pi_" + uuid.NewString()
	return &stripe.PaymentIntent{
		ID:           id,
		Amount:       *params.Amount,
		ClientSecret: id + "_secret_" + uuid.NewString(),
	}, nil
}
