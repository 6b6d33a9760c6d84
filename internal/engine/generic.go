package engine

import (
	"github.com/toannhuynh206/loan-engine/internal/model"
)

// simulateGeneric handles entries whose type tag matched nothing: plain
// simple interest on the balance, rate, and payment fields alone — no
// escrow, PMI, or depreciation. Principal paid never goes negative, but
// shortfalls are not carried either; a payment that cannot cover interest
// just stalls the balance until the month cap fires.
func simulateGeneric(loan GenericLoan) *model.LoanResult {
	rate := MonthlyRate(loan.Rate)
	led := runSchedule(loan.Balance, MaxScheduleMonths, simpleInterestStep(rate, loan.Payment, shortfallStalls))
	return loan.result(loan.Payment, led)
}
