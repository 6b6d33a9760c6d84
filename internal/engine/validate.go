package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// ValidateLoanRequest checks a fixed-payment request before simulation.
// The payment-versus-interest check matters most: a payment at or below
// the first month's interest can never retire the balance, and the
// fixed-payment path has no other guard against that.
func ValidateLoanRequest(req model.LoanRequest) error {
	if req.Principal.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: principal must be positive", ErrInvalidInput)
	}
	if req.APR.IsNegative() || req.APR.GreaterThan(oneHundred) {
		return fmt.Errorf("%w: APR must be between 0 and 100", ErrInvalidInput)
	}
	if req.MonthlyPayment.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: monthly payment must be positive", ErrInvalidInput)
	}

	firstMonthInterest := req.Principal.Mul(MonthlyRate(req.APR))
	if req.MonthlyPayment.LessThanOrEqual(firstMonthInterest) {
		return fmt.Errorf("%w: monthly payment must exceed monthly interest ($%s) to pay off loan",
			ErrInvalidInput, firstMonthInterest.StringFixed(moneyScale))
	}
	return nil
}
