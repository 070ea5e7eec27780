package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Gateway is the payment provider port. Implementations must not retain req.
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error)
}

type CheckoutRequest struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
	PayerEmail       string
	Metadata         map[string]string
}

type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type CheckoutInput struct {
	LoanID      string          `json:"loan_id" validate:"required,hex32"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency" validate:"required,len=3,alpha"`
	Description string          `json:"description" validate:"max=500"`
}
