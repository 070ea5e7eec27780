package payment

import (
	"context"
	"strings"

	"loanlink-backend/internal/domain/apperror"
	"loanlink-backend/internal/domain/loan"
	"loanlink-backend/internal/domain/user"
	"loanlink-backend/pkg/id"

	"github.com/shopspring/decimal"
)

// zeroDecimal currencies are charged in whole units.
var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

type Usecase struct {
	loans   loan.Repository
	gateway Gateway
}

// NewUsecase accepts a nil gateway; checkout then answers Unavailable.
func NewUsecase(loans loan.Repository, gw Gateway) *Usecase {
	return &Usecase{loans: loans, gateway: gw}
}

// CreateCheckoutSession opens a hosted payment page for a loan. It never
// touches application state.
func (u *Usecase) CreateCheckoutSession(ctx context.Context, actor user.Actor, in CheckoutInput) (*CheckoutSession, error) {
	if !id.Valid(in.LoanID) {
		return nil, apperror.InvalidArgument("malformed loan id %q", in.LoanID)
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if len(currency) != 3 {
		return nil, apperror.InvalidArgument("currency must be a 3-letter code")
	}
	minor, err := ToMinorUnits(in.Amount, currency)
	if err != nil {
		return nil, err
	}
	if u.gateway == nil {
		return nil, apperror.Unavailable(nil, "payments are not configured")
	}

	l, err := u.loans.GetByLoanID(ctx, in.LoanID)
	if err != nil {
		return nil, err
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		desc = l.Title
	}

	sess, err := u.gateway.CreateCheckout(ctx, CheckoutRequest{
		AmountMinorUnits: minor,
		Currency:         currency,
		Description:      desc,
		PayerEmail:       user.NormalizeEmail(actor.Email),
		Metadata:         map[string]string{"loan_id": l.LoanID},
	})
	if err != nil {
		if apperror.As(err) != nil {
			return nil, err
		}
		return nil, apperror.Unavailable(err, "payment gateway unavailable")
	}
	return sess, nil
}

// ToMinorUnits converts a major-unit amount (12.34 USD) to the integer the
// provider charges (1234). Sub-minor precision is rejected, not rounded.
func ToMinorUnits(amount decimal.Decimal, currency string) (int64, error) {
	if !amount.IsPositive() {
		return 0, apperror.InvalidArgument("amount must be greater than zero")
	}
	exp := int32(2)
	if zeroDecimal[strings.ToLower(currency)] {
		exp = 0
	}
	scaled := amount.Shift(exp)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, apperror.InvalidArgument("amount %s has more precision than %s allows", amount.String(), strings.ToUpper(currency))
	}
	if !scaled.BigInt().IsInt64() {
		return 0, apperror.InvalidArgument("amount %s is too large", amount.String())
	}
	return scaled.IntPart(), nil
}
