// Package model defines the core domain types shared across the loan engine.
// All monetary values use shopspring/decimal — never float64 for money.
package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoanRequest is the input for the fixed-payment amortization path.
type LoanRequest struct {
	Principal      decimal.Decimal `json:"principal"`
	APR            decimal.Decimal `json:"apr"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
}

// MonthlyEvent is one row of an amortization ledger. Events are produced
// strictly in increasing month order and never modified after creation.
type MonthlyEvent struct {
	Month         int             `json:"month"`
	StartBalance  decimal.Decimal `json:"startBalance"`
	Interest      decimal.Decimal `json:"interest"`
	Payment       decimal.Decimal `json:"payment"`
	PrincipalPaid decimal.Decimal `json:"principalPaid"`
	PMI           decimal.Decimal `json:"pmi"`
	Escrow        decimal.Decimal `json:"escrow"`
	TotalPayment  decimal.Decimal `json:"totalPayment"` // payment + pmi + escrow
	EndBalance    decimal.Decimal `json:"endBalance"`
}

// LoanResponse is the result of the fixed-payment path.
type LoanResponse struct {
	Principal      decimal.Decimal `json:"principal"`
	APR            decimal.Decimal `json:"apr"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Events         []MonthlyEvent  `json:"events"`
	TotalMonths    int             `json:"totalMonths"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
}

// LoanEntry is a generic multi-loan entry as it arrives on the wire: a type
// tag plus the union of all type-specific fields. The engine resolves it
// into exactly one typed variant before simulation.
type LoanEntry struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Balance        decimal.Decimal `json:"balance"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	APR            decimal.Decimal `json:"apr"` // alias for interestRate
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	TermMonths     int             `json:"termMonths"`

	// Credit card.
	MinimumPaymentPercent decimal.Decimal `json:"minimumPaymentPercent"`
	MinimumPaymentFloor   decimal.Decimal `json:"minimumPaymentFloor"`

	// Auto loan.
	VehicleValue decimal.Decimal `json:"vehicleValue"`
	IsUsed       bool            `json:"isUsed"`

	// Mortgage.
	HomePrice     decimal.Decimal `json:"homePrice"`
	TermYears     int             `json:"termYears"`
	PropertyTax   decimal.Decimal `json:"propertyTax"`   // monthly
	HomeInsurance decimal.Decimal `json:"homeInsurance"` // monthly
	HOA           decimal.Decimal `json:"hoa"`           // monthly
	PMIRate       decimal.Decimal `json:"pmiRate"`       // annual percent

	// Student loan.
	RepaymentPlan string `json:"repaymentPlan"`
}

// Rate returns the entry's annual rate, accepting either field name the
// clients use ("interestRate" preferred, "apr" as alias).
func (e LoanEntry) Rate() decimal.Decimal {
	if !e.InterestRate.IsZero() {
		return e.InterestRate
	}
	return e.APR
}

// LoanResult is the full computed schedule for one loan. It is owned by
// the simulator that produced it and is never shared or mutated.
type LoanResult struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Principal      decimal.Decimal `json:"principal"`
	InterestRate   decimal.Decimal `json:"interestRate"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	Events         []MonthlyEvent  `json:"events"`
	TotalMonths    int             `json:"totalMonths"`
	TotalInterest  decimal.Decimal `json:"totalInterest"`
	TotalPaid      decimal.Decimal `json:"totalPaid"`
	TotalPMI       decimal.Decimal `json:"totalPMI"`
	TotalEscrow    decimal.Decimal `json:"totalEscrow"`

	// Type-specific extras.
	MinimumPayment     decimal.Decimal `json:"minimumPayment"`     // credit card
	ResidualValue      decimal.Decimal `json:"residualValue"`      // auto
	FinalEquityPercent decimal.Decimal `json:"finalEquityPercent"` // mortgage
}

// MultiLoanRequest is an ordered batch of generic loan entries.
type MultiLoanRequest struct {
	Loans []LoanEntry `json:"loans"`
}

// MultiLoanResponse carries per-loan results in submission order plus
// portfolio totals. TotalMonths is the max across loans, not the sum:
// the portfolio is paid off only when the longest-running loan is.
type MultiLoanResponse struct {
	Loans               []LoanResult    `json:"loans"`
	TotalPrincipal      decimal.Decimal `json:"totalPrincipal"`
	TotalInterest       decimal.Decimal `json:"totalInterest"`
	TotalMonthlyPayment decimal.Decimal `json:"totalMonthlyPayment"`
	TotalPaid           decimal.Decimal `json:"totalPaid"`
	TotalMonths         int             `json:"totalMonths"`
}

// Portfolio is a named, saved set of loan entries. Only the loan
// definitions are persisted — computed schedules never are.
type Portfolio struct {
	ID        string      `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`
	Loans     []LoanEntry `json:"loans" db:"loans"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}
