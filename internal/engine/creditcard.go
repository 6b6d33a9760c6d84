package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// minimumPayment is the issuer's floor for a revolving balance: a percent
// of the balance, but never below the fixed floor.
func minimumPayment(balance, percent, floor decimal.Decimal) decimal.Decimal {
	pct := balance.Mul(percent).Div(oneHundred).Round(moneyScale)
	return decimal.Max(pct, floor)
}

// simulateCreditCard runs the revolving, daily-compounding model. Interest
// accrues before the payment lands — each month the balance grows through
// thirty discrete compounding days, then the payment is applied against
// the post-compounding balance. Cardholders paying only the minimum ride
// this loop a long time.
func simulateCreditCard(loan CreditCardLoan) *model.LoanResult {
	daily := DailyRate(loan.Rate)
	openingMinimum := minimumPayment(loan.Balance, loan.MinPaymentPercent, loan.MinPaymentFloor)

	led := runSchedule(loan.Balance, MaxScheduleMonths, func(_ int, balance decimal.Decimal) stepOutcome {
		payment := loan.Payment
		if payment.LessThanOrEqual(decimal.Zero) {
			payment = minimumPayment(balance, loan.MinPaymentPercent, loan.MinPaymentFloor)
		}

		// Daily compounding on the running balance: each day's interest
		// is computed on the balance carried from the previous day and
		// added before the next day compounds. Rounding waits until the
		// month closes.
		running := balance
		interest := decimal.Zero
		for day := 0; day < daysPerMonth; day++ {
			dayInterest := running.Mul(daily)
			interest = interest.Add(dayInterest)
			running = running.Add(dayInterest)
		}
		interest = interest.Round(moneyScale)

		compounded := balance.Add(interest)
		payment = decimal.Min(payment, compounded)

		return stepOutcome{
			interest:   interest,
			payment:    payment,
			principal:  payment.Sub(interest),
			endBalance: compounded.Sub(payment),
		}
	})

	reported := loan.Payment
	if reported.LessThanOrEqual(decimal.Zero) {
		reported = openingMinimum
	}
	result := loan.result(reported, led)
	result.MinimumPayment = openingMinimum
	return result
}
