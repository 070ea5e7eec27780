package http

import (
	"errors"
	"strings"
	"testing"

	"loanlink-backend/internal/usecase/loan"
	"loanlink-backend/internal/usecase/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestHex32Validation(t *testing.T) {
	type P struct {
		LoanID string `json:"loan_id" validate:"hex32"`
	}
	cv := NewValidator()

	require.NoError(t, cv.Validate(P{LoanID: strings.Repeat("a", 32)}))

	for _, s := range []string{
		"",
		strings.Repeat("A", 32),
		"deadbeef",
		strings.Repeat("g", 32),
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x",
	} {
		err := cv.Validate(P{LoanID: s})
		require.Error(t, err, s)
		fe := ToFieldErrors(err)
		assert.True(t, containsFieldMsg(fe, "loan_id", "32-char lowercase hex"), "%q: %+v", s, fe)
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Rate float64 `json:"interest_rate" validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{1.29, 2.00, 0.9, 12, 19.99} {
		assert.NoError(t, cv.Validate(P{Rate: v}), v)
	}
	for _, v := range []float64{1.234, 2.9999} {
		err := cv.Validate(P{Rate: v})
		require.Error(t, err, v)
		fe := ToFieldErrors(err)
		assert.True(t, containsFieldMsg(fe, "interest_rate", "at most 2 decimal places"), "%v: %+v", v, fe)
	}
}

func TestDec2Validation_MoneyInputs(t *testing.T) {
	cv := NewValidator()
	limit := 10.125

	fe := ToFieldErrors(cv.Validate(loan.CreateLoanInput{Title: "A", Category: "B", MaxLimit: 10.125}))
	assert.True(t, containsFieldMsg(fe, "max_limit", "2 decimal places"), "%+v", fe)

	fe = ToFieldErrors(cv.Validate(loan.UpdateLoanInput{MaxLimit: &limit}))
	assert.True(t, containsFieldMsg(fe, "max_limit", "2 decimal places"), "%+v", fe)

	fe = ToFieldErrors(cv.Validate(workflow.SubmitInput{LoanID: strings.Repeat("a", 32), Amount: 99.999}))
	assert.True(t, containsFieldMsg(fe, "amount", "2 decimal places"), "%+v", fe)

	assert.NoError(t, cv.Validate(workflow.SubmitInput{LoanID: strings.Repeat("a", 32), Amount: 1250.50}))
}

func TestMessagesUseJSONNames(t *testing.T) {
	type P struct {
		Name     string  `json:"name" validate:"required"`
		Min      int     `json:"min" validate:"gte=10"`
		Max      int     `json:"max" validate:"lte=5"`
		Title    string  `json:"title" validate:"max=3"`
		Currency string  `json:"currency" validate:"len=3,alpha"`
		Image    string  `json:"image_url" validate:"omitempty,url"`
		Amount   float64 `validate:"gte=0"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Min: 9, Max: 6, Title: "toolong", Currency: "us", Image: "nope", Amount: -1})
	require.Error(t, err)
	fe := ToFieldErrors(err)

	for _, c := range []struct{ field, msg string }{
		{"name", "is required"},
		{"min", "greater than or equal to 10"},
		{"max", "less than or equal to 5"},
		{"title", "at most 3 characters"},
		{"currency", "exactly 3 characters"},
		{"image_url", "valid URL"},
		{"Amount", "greater than or equal to 0"},
	} {
		assert.True(t, containsFieldMsg(fe, c.field, c.msg), "missing %q for %s: %+v", c.msg, c.field, fe)
	}
}

func TestToFieldErrors_NonValidation(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	require.Len(t, fe, 1)
	assert.Equal(t, FieldError{Field: "_", Message: "boom"}, fe[0])
}
