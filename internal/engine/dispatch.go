package engine

import (
	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// Supported loan type tags.
const (
	TypeCreditCard = "credit-card"
	TypePersonal   = "personal-loan"
	TypeAuto       = "auto-loan"
	TypeMortgage   = "mortgage"
	TypeStudent    = "student-loan"
)

// loanTerms holds the fields every loan variant shares.
type loanTerms struct {
	ID      string
	Name    string
	Type    string
	Balance decimal.Decimal
	Rate    decimal.Decimal
	Payment decimal.Decimal
}

// result assembles a LoanResult from the shared terms, the payment the
// simulator settled on, and the finished ledger.
func (t loanTerms) result(payment decimal.Decimal, led ledger) *model.LoanResult {
	return &model.LoanResult{
		ID:             t.ID,
		Name:           t.Name,
		Type:           t.Type,
		Principal:      t.Balance,
		InterestRate:   t.Rate,
		MonthlyPayment: payment,
		Events:         led.events,
		TotalMonths:    led.months(),
		TotalInterest:  led.totalInterest,
		TotalPaid:      led.totalPaid,
		TotalPMI:       led.totalPMI,
		TotalEscrow:    led.totalEscrow,
	}
}

// TypedEntry is the closed set of loan variants the dispatcher simulates.
// A generic entry is resolved exactly once; simulators only ever see their
// own strongly-typed fields.
type TypedEntry interface {
	loanVariant()
}

// CreditCardLoan is a revolving, daily-compounding balance.
type CreditCardLoan struct {
	loanTerms
	MinPaymentPercent decimal.Decimal
	MinPaymentFloor   decimal.Decimal
}

// PersonalLoan is a simple-interest, fixed-term loan.
type PersonalLoan struct {
	loanTerms
	TermMonths int
}

// AutoLoan is a personal loan with an independent vehicle-value
// depreciation track.
type AutoLoan struct {
	loanTerms
	TermMonths   int
	VehicleValue decimal.Decimal
	Used         bool
}

// MortgageLoan carries escrow, PMI, and home-price fields on top of a
// level principal-and-interest payment.
type MortgageLoan struct {
	loanTerms
	TermYears     int
	HomePrice     decimal.Decimal
	PropertyTax   decimal.Decimal
	HomeInsurance decimal.Decimal
	HOA           decimal.Decimal
	PMIRate       decimal.Decimal
}

// StudentLoan selects its term by named repayment plan and allows
// negative amortization.
type StudentLoan struct {
	loanTerms
	Plan string
}

// GenericLoan is the fallback for unrecognized or missing type tags.
type GenericLoan struct {
	loanTerms
}

func (CreditCardLoan) loanVariant() {}
func (PersonalLoan) loanVariant()   {}
func (AutoLoan) loanVariant()       {}
func (MortgageLoan) loanVariant()   {}
func (StudentLoan) loanVariant()    {}
func (GenericLoan) loanVariant()    {}

// Resolve maps a generic wire entry onto exactly one typed variant.
// Unknown type tags fall back to GenericLoan rather than failing: the
// batch path deliberately simulates whatever it is handed.
func Resolve(e model.LoanEntry) TypedEntry {
	terms := loanTerms{
		ID:      e.ID,
		Name:    e.Name,
		Type:    e.Type,
		Balance: e.Balance,
		Rate:    e.Rate(),
		Payment: e.MonthlyPayment,
	}

	switch e.Type {
	case TypeCreditCard:
		return CreditCardLoan{
			loanTerms:         terms,
			MinPaymentPercent: e.MinimumPaymentPercent,
			MinPaymentFloor:   e.MinimumPaymentFloor,
		}
	case TypePersonal:
		return PersonalLoan{loanTerms: terms, TermMonths: e.TermMonths}
	case TypeAuto:
		return AutoLoan{
			loanTerms:    terms,
			TermMonths:   e.TermMonths,
			VehicleValue: e.VehicleValue,
			Used:         e.IsUsed,
		}
	case TypeMortgage:
		return MortgageLoan{
			loanTerms:     terms,
			TermYears:     e.TermYears,
			HomePrice:     e.HomePrice,
			PropertyTax:   e.PropertyTax,
			HomeInsurance: e.HomeInsurance,
			HOA:           e.HOA,
			PMIRate:       e.PMIRate,
		}
	case TypeStudent:
		return StudentLoan{loanTerms: terms, Plan: e.RepaymentPlan}
	default:
		return GenericLoan{loanTerms: terms}
	}
}

// Simulate resolves a generic entry and runs the matching simulator.
func Simulate(e model.LoanEntry) (*model.LoanResult, error) {
	switch loan := Resolve(e).(type) {
	case CreditCardLoan:
		return simulateCreditCard(loan), nil
	case PersonalLoan:
		return simulatePersonal(loan)
	case AutoLoan:
		return simulateAuto(loan)
	case MortgageLoan:
		return simulateMortgage(loan)
	case StudentLoan:
		return simulateStudent(loan)
	case GenericLoan:
		return simulateGeneric(loan), nil
	default:
		// Resolve returns one of the variants above; this is unreachable.
		return simulateGeneric(GenericLoan{}), nil
	}
}
