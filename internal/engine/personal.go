package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// resolveTermPayment settles the payment for a term loan: the caller's
// explicit payment wins, otherwise the amortizing formula over the term.
func resolveTermPayment(balance, rate, payment decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if payment.GreaterThan(decimal.Zero) {
		return payment, nil
	}
	return amortizedPayment(balance, rate, termMonths)
}

// termCap bounds a term loan's schedule at the declared term, or the
// global month cap when no usable term is given.
func termCap(termMonths int) int {
	if termMonths > 0 && termMonths < MaxScheduleMonths {
		return termMonths
	}
	return MaxScheduleMonths
}

// simulatePersonal runs the simple-interest, fixed-term model: interest
// accrues on the current balance, the remainder of the level payment
// reduces principal.
func simulatePersonal(loan PersonalLoan) (*model.LoanResult, error) {
	payment, err := resolveTermPayment(loan.Balance, loan.Rate, loan.Payment, loan.TermMonths)
	if err != nil {
		return nil, err
	}

	rate := MonthlyRate(loan.Rate)
	led := runSchedule(loan.Balance, termCap(loan.TermMonths), simpleInterestStep(rate, payment, shortfallNegates))

	return loan.result(payment, led), nil
}
