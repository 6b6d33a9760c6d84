package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// stepOutcome reports one simulated month back to the schedule runner.
// endBalance is what the simulator says remains; the runner clamps it at
// zero before recording.
type stepOutcome struct {
	interest   decimal.Decimal
	payment    decimal.Decimal
	principal  decimal.Decimal
	pmi        decimal.Decimal
	escrow     decimal.Decimal
	endBalance decimal.Decimal
}

// stepFunc advances a simulator by one month. Simulators carry their
// type-specific state (depreciation curve, PMI cancellation, graduated
// payment schedule) in the closure; the runner owns termination and
// ledger recording.
type stepFunc func(month int, balance decimal.Decimal) stepOutcome

// ledger accumulates the ordered event list and running totals for one
// simulation.
type ledger struct {
	events        []model.MonthlyEvent
	totalInterest decimal.Decimal
	totalPaid     decimal.Decimal
	totalPMI      decimal.Decimal
	totalEscrow   decimal.Decimal
}

func (l ledger) months() int { return len(l.events) }

func (l ledger) endBalance() decimal.Decimal {
	if len(l.events) == 0 {
		return decimal.Zero
	}
	return l.events[len(l.events)-1].EndBalance
}

// runSchedule drives the shared month loop: while the balance exceeds the
// payoff epsilon and the cap has not fired, ask the step function for the
// month's figures, record the event, and carry the end balance forward.
func runSchedule(opening decimal.Decimal, maxMonths int, step stepFunc) ledger {
	var led ledger
	balance := opening

	for month := 1; month <= maxMonths && balance.GreaterThan(balanceEpsilon); month++ {
		out := step(month, balance)

		end := out.endBalance
		if end.IsNegative() {
			end = decimal.Zero
		}
		total := out.payment.Add(out.pmi).Add(out.escrow)

		led.events = append(led.events, model.MonthlyEvent{
			Month:         month,
			StartBalance:  balance,
			Interest:      out.interest,
			Payment:       out.payment,
			PrincipalPaid: out.principal,
			PMI:           out.pmi,
			Escrow:        out.escrow,
			TotalPayment:  total,
			EndBalance:    end,
		})

		led.totalInterest = led.totalInterest.Add(out.interest)
		led.totalPaid = led.totalPaid.Add(total)
		led.totalPMI = led.totalPMI.Add(out.pmi)
		led.totalEscrow = led.totalEscrow.Add(out.escrow)

		balance = end
	}
	return led
}

// shortfallMode controls what happens in a month whose payment does not
// cover accrued interest.
type shortfallMode int

const (
	// shortfallNegates reports a negative principal component; the
	// balance grows by the uncovered interest.
	shortfallNegates shortfallMode = iota

	// shortfallCarries clamps principal to zero and adds the shortfall
	// to the balance — explicit negative amortization (student loans).
	shortfallCarries

	// shortfallStalls clamps principal to zero and leaves the balance
	// unchanged; the month cap is the only way out (generic fallback).
	shortfallStalls
)

// simpleInterestMonth is the accrue-then-pay month shared by the personal,
// auto, mortgage, student, and generic simulators: interest accrues on the
// current balance, the payment (capped at balance plus interest so the
// final month never overshoots) covers interest first, and the remainder
// reduces principal.
func simpleInterestMonth(balance, rate, payment decimal.Decimal, mode shortfallMode) stepOutcome {
	interest := balance.Mul(rate).Round(moneyScale)
	pay := decimal.Min(payment, balance.Add(interest))
	principal := pay.Sub(interest)
	end := balance.Sub(principal)

	if principal.IsNegative() {
		switch mode {
		case shortfallCarries:
			// end already holds balance + (interest - pay).
			principal = decimal.Zero
		case shortfallStalls:
			principal = decimal.Zero
			end = balance
		}
	}

	return stepOutcome{
		interest:   interest,
		payment:    pay,
		principal:  principal,
		endBalance: end,
	}
}

// simpleInterestStep wraps simpleInterestMonth as a stepFunc with a fixed
// payment.
func simpleInterestStep(rate, payment decimal.Decimal, mode shortfallMode) stepFunc {
	return func(_ int, balance decimal.Decimal) stepOutcome {
		return simpleInterestMonth(balance, rate, payment, mode)
	}
}
