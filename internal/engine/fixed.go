package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// AmortizeFixed runs the fixed-payment simulator. Unlike the other
// simulators, the payment lands before interest accrues: the payment
// (capped at the remaining balance) reduces the balance first, then the
// month's interest accrues on the reduced balance and is added back.
func AmortizeFixed(req model.LoanRequest) (*model.LoanResponse, error) {
	if err := ValidateLoanRequest(req); err != nil {
		return nil, err
	}

	rate := MonthlyRate(req.APR)
	led := runSchedule(req.Principal, MaxScheduleMonths, func(_ int, balance decimal.Decimal) stepOutcome {
		payment := decimal.Min(req.MonthlyPayment, balance)
		reduced := balance.Sub(payment)
		interest := reduced.Mul(rate).Round(moneyScale)

		return stepOutcome{
			interest:   interest,
			payment:    payment,
			principal:  payment.Sub(interest),
			endBalance: reduced.Add(interest),
		}
	})

	return &model.LoanResponse{
		Principal:      req.Principal,
		APR:            req.APR,
		MonthlyPayment: req.MonthlyPayment,
		Events:         led.events,
		TotalMonths:    led.months(),
		TotalInterest:  led.totalInterest,
	}, nil
}
