package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// Named repayment plans.
const (
	PlanStandard  = "standard"
	PlanExtended  = "extended"
	PlanGraduated = "graduated"
)

// planTerm maps a repayment plan to its term in months. Anything
// unrecognized — income-driven included — gets the extended 300 months.
func planTerm(plan string) int {
	switch plan {
	case PlanStandard, PlanGraduated:
		return 120
	case PlanExtended:
		return 300
	default:
		return 300
	}
}

var (
	graduatedStart = decimal.NewFromFloat(0.75) // opening fraction of base
	graduatedStep  = decimal.NewFromFloat(0.1)  // increase per 2-year block
	graduatedCeil  = decimal.NewFromFloat(1.5)  // never above 150% of base
)

// graduatedPayment back-loads the schedule: 75% of base to start, stepping
// up every 24 months, capped at 150% of base.
func graduatedPayment(base decimal.Decimal, month int) decimal.Decimal {
	blocks := decimal.NewFromInt(int64((month - 1) / 24))
	p := base.Mul(graduatedStart).Add(base.Mul(graduatedStep).Mul(blocks))
	return decimal.Min(p, base.Mul(graduatedCeil)).Round(moneyScale)
}

// simulateStudent runs the simple-interest model with a plan-selected term
// and explicit negative amortization: a month whose payment falls short of
// interest clamps principal to zero and carries the shortfall onto the
// balance. The cap runs past the nominal term to let those overruns
// resolve.
func simulateStudent(loan StudentLoan) (*model.LoanResult, error) {
	term := planTerm(loan.Plan)
	base, err := resolveTermPayment(loan.Balance, loan.Rate, loan.Payment, term)
	if err != nil {
		return nil, err
	}

	rate := MonthlyRate(loan.Rate)
	graduated := loan.Plan == PlanGraduated

	led := runSchedule(loan.Balance, term+NegAmGraceMonths, func(month int, balance decimal.Decimal) stepOutcome {
		payment := base
		if graduated {
			payment = graduatedPayment(base, month)
		}
		return simpleInterestMonth(balance, rate, payment, shortfallCarries)
	})

	return loan.result(base, led), nil
}
