// Package engine computes month-by-month amortization schedules for the
// supported loan types. Each simulator is a pure function over immutable
// inputs: it walks the loan one month at a time, appending ledger events
// until the balance clears or an iteration cap fires.
//
// All monetary values use shopspring/decimal — never float64 for money.
// The annuity payment formula needs a real-valued power, which is computed
// in float64 and immediately converted back to decimal.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInput marks requests the engine refuses to simulate. The
// wrapped message is safe to return to the caller.
var ErrInvalidInput = errors.New("engine: invalid input")

const (
	// MaxScheduleMonths caps every schedule at 100 years. Inputs whose
	// payment never retires the balance would otherwise loop forever.
	MaxScheduleMonths = 1200

	// NegAmGraceMonths extends a student loan's cap beyond its nominal
	// term, leaving room for negative-amortization overruns.
	NegAmGraceMonths = 60

	// daysPerMonth is the number of discrete compounding steps in the
	// revolving-credit daily interest model.
	daysPerMonth = 30

	// moneyScale is the number of decimal places for ledger amounts.
	moneyScale int32 = 2
)

var (
	// balanceEpsilon is the payoff threshold: a balance at or below one
	// cent counts as retired.
	balanceEpsilon = decimal.NewFromFloat(0.01)

	oneHundred = decimal.NewFromInt(100)
	twelve     = decimal.NewFromInt(12)
)

// MonthlyRate converts an annual percentage rate to a monthly periodic rate.
func MonthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(decimal.NewFromInt(1200))
}

// DailyRate converts an annual percentage rate to a daily periodic rate.
func DailyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(decimal.NewFromInt(36500))
}

// amortizedPayment returns the level payment that retires principal over n
// months at the given annual rate:
//
//	payment = P * r*(1+r)^n / ((1+r)^n - 1)
//
// or P/n when r = 0. A non-positive term cannot yield a payment; that is
// an internal error, not client-facing invalid input — the batch path
// deliberately skips per-entry validation.
func amortizedPayment(principal, annualRate decimal.Decimal, n int) (decimal.Decimal, error) {
	if n <= 0 {
		return decimal.Zero, fmt.Errorf("amortized payment: term must be positive, got %d months", n)
	}
	r := MonthlyRate(annualRate)
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))).Round(moneyScale), nil
	}

	rf := r.InexactFloat64()
	pow := math.Pow(1+rf, float64(n))
	payment := principal.InexactFloat64() * rf * pow / (pow - 1)
	return decimal.NewFromFloat(payment).Round(moneyScale), nil
}
