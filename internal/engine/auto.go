package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// Annual vehicle depreciation rates as fractions. New vehicles lose value
// faster, and both classes take an extra first-year hit.
var (
	depRateNew   = decimal.NewFromFloat(0.15)
	depRateUsed  = decimal.NewFromFloat(0.10)
	depBonusNew  = decimal.NewFromFloat(0.10)
	depBonusUsed = decimal.NewFromFloat(0.05)
)

// simulateAuto uses the same interest and payment mechanics as the
// personal-loan simulator, plus an independently tracked vehicle-value
// ledger. Depreciation never feeds back into the balance; the residual
// value at termination is reported alongside the schedule.
func simulateAuto(loan AutoLoan) (*model.LoanResult, error) {
	payment, err := resolveTermPayment(loan.Balance, loan.Rate, loan.Payment, loan.TermMonths)
	if err != nil {
		return nil, err
	}

	baseRate, bonus := depRateNew, depBonusNew
	if loan.Used {
		baseRate, bonus = depRateUsed, depBonusUsed
	}

	value := loan.VehicleValue
	if value.LessThanOrEqual(decimal.Zero) {
		value = loan.Balance
	}

	rate := MonthlyRate(loan.Rate)
	step := simpleInterestStep(rate, payment, shortfallNegates)

	led := runSchedule(loan.Balance, termCap(loan.TermMonths), func(month int, balance decimal.Decimal) stepOutcome {
		// First twelve months depreciate at base plus the one-time
		// first-year bonus; the rate drops back to base after month 12.
		annual := baseRate
		if month <= 12 {
			annual = baseRate.Add(bonus)
		}
		value = value.Sub(value.Mul(annual).Div(twelve))
		if value.IsNegative() {
			value = decimal.Zero
		}

		return step(month, balance)
	})

	result := loan.result(payment, led)
	result.ResidualValue = value.Round(moneyScale)
	return result, nil
}
