package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"loanlink-backend/internal/config"
	"loanlink-backend/internal/usecase/payment"

	stripeapi "github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/checkout/session"
)

const (
	testEnv = "test"
	liveEnv = "live"
)

var (
	errAPIKeyRequired   = errors.New("stripe api key is required")
	errInvalidStripeEnv = fmt.Errorf("stripe environment must be %q or %q", testEnv, liveEnv)
)

var _ payment.Gateway = (*Gateway)(nil)

// Gateway creates Stripe-hosted checkout sessions.
type Gateway struct {
	environment string
	successURL  string
	cancelURL   string
	newSession  func(*stripeapi.CheckoutSessionParams) (*stripeapi.CheckoutSession, error)
}

// NewGateway returns nil, nil when no key is configured.
func NewGateway(cfg config.StripeConfig) (*Gateway, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, nil
	}
	env, err := normalizeEnv(cfg.Environment)
	if err != nil {
		return nil, err
	}
	if err := validateAPIKey(env, apiKey); err != nil {
		return nil, err
	}
	stripeapi.Key = apiKey

	return &Gateway{
		environment: env,
		successURL:  cfg.SuccessURL,
		cancelURL:   cfg.CancelURL,
		newSession:  session.New,
	}, nil
}

func (g *Gateway) Environment() string {
	if g == nil {
		return ""
	}
	return g.environment
}

func (g *Gateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.CheckoutSession, error) {
	if req.AmountMinorUnits <= 0 {
		return nil, errors.New("stripe checkout amount must be positive")
	}
	params := &stripeapi.CheckoutSessionParams{
		Mode:       stripeapi.String(string(stripeapi.CheckoutSessionModePayment)),
		SuccessURL: stripeapi.String(g.successURL),
		CancelURL:  stripeapi.String(g.cancelURL),
		LineItems: []*stripeapi.CheckoutSessionLineItemParams{{
			PriceData: &stripeapi.CheckoutSessionLineItemPriceDataParams{
				Currency: stripeapi.String(req.Currency),
				ProductData: &stripeapi.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripeapi.String(productName(req.Description)),
				},
				UnitAmount: stripeapi.Int64(req.AmountMinorUnits),
			},
			Quantity: stripeapi.Int64(1),
		}},
	}
	if req.PayerEmail != "" {
		params.CustomerEmail = stripeapi.String(req.PayerEmail)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	s, err := g.newSession(params)
	if err != nil {
		return nil, fmt.Errorf("stripe checkout session: %w", err)
	}
	return &payment.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func productName(desc string) string {
	if d := strings.TrimSpace(desc); d != "" {
		return d
	}
	return "LoanLink payment"
}

func normalizeEnv(raw string) (string, error) {
	env := strings.TrimSpace(strings.ToLower(raw))
	if env == "" {
		env = testEnv
	}
	switch env {
	case testEnv, liveEnv:
		return env, nil
	default:
		return "", errInvalidStripeEnv
	}
}

func validateAPIKey(env, key string) error {
	switch env {
	case testEnv:
		if strings.HasPrefix(key, "sk_test") || strings.HasPrefix(key, "rk_test") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a test secret key (sk_test/rk_test)", testEnv)
	case liveEnv:
		if strings.HasPrefix(key, "sk_live") || strings.HasPrefix(key, "rk_live") {
			return nil
		}
		return fmt.Errorf("stripe environment %q requires a live secret key (sk_live/rk_live)", liveEnv)
	default:
		return errInvalidStripeEnv
	}
}
