package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// LTV thresholds for private mortgage insurance, in percent.
var (
	pmiRequiredLTV  = decimal.NewFromInt(80) // PMI required above this at origination
	pmiAutoCancel   = decimal.NewFromInt(78) // automatic cancellation at or below
	pmiRequestLTV   = decimal.NewFromInt(80) // voluntary cancellation at or below...
	pmiRequestMonth = 24                     // ...once past this many months
)

func loanToValue(balance, homePrice decimal.Decimal) decimal.Decimal {
	return balance.Div(homePrice).Mul(oneHundred)
}

// simulateMortgage computes a level P&I payment over the full term, a
// constant escrow charge (property tax + insurance + HOA), and PMI that
// switches off permanently once the running LTV crosses a cancellation
// threshold. Cancellation is monotone: PMI is never reinstated.
func simulateMortgage(loan MortgageLoan) (*model.LoanResult, error) {
	termMonths := loan.TermYears * 12
	payment, err := resolveTermPayment(loan.Balance, loan.Rate, loan.Payment, termMonths)
	if err != nil {
		return nil, err
	}

	escrow := loan.PropertyTax.Add(loan.HomeInsurance).Add(loan.HOA)
	rate := MonthlyRate(loan.Rate)

	// PMI is only ever owed if the loan starts above 80% LTV, and the
	// monthly charge is fixed at origination.
	pmiRequired := loan.HomePrice.IsPositive() &&
		loanToValue(loan.Balance, loan.HomePrice).GreaterThan(pmiRequiredLTV)
	monthlyPMI := loan.Balance.Mul(loan.PMIRate).Div(oneHundred).Div(twelve).Round(moneyScale)
	cancelled := false

	led := runSchedule(loan.Balance, termCap(termMonths), func(month int, balance decimal.Decimal) stepOutcome {
		out := simpleInterestMonth(balance, rate, payment, shortfallNegates)

		if pmiRequired && !cancelled {
			ltv := loanToValue(balance, loan.HomePrice)
			if ltv.LessThanOrEqual(pmiAutoCancel) ||
				(month > pmiRequestMonth && ltv.LessThanOrEqual(pmiRequestLTV)) {
				cancelled = true
			}
		}
		if pmiRequired && !cancelled {
			out.pmi = monthlyPMI
		}
		out.escrow = escrow
		return out
	})

	result := loan.result(payment, led)
	if loan.HomePrice.IsPositive() {
		result.FinalEquityPercent = loan.HomePrice.Sub(led.endBalance()).
			Div(loan.HomePrice).Mul(oneHundred).Round(moneyScale)
	}
	return result, nil
}
