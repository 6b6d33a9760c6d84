package engine

import (
	"testing"
)

func TestMinimumPayment(t *testing.T) {
	tests := []struct {
		name    string
		balance float64
		percent float64
		floor   float64
		want    float64
	}{
		{"floor wins on small balance", 1000, 2, 25, 25},
		{"percent wins on large balance", 5000, 2, 25, 100},
		{"exact tie takes either", 1250, 2, 25, 25},
		{"zero percent falls to floor", 800, 0, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := minimumPayment(d(tt.balance), d(tt.percent), d(tt.floor))
			if !got.Equal(d(tt.want)) {
				t.Errorf("minimumPayment(%v, %v%%, %v) = %s, want %v",
					tt.balance, tt.percent, tt.floor, got, tt.want)
			}
		})
	}
}

func TestSimulateCreditCard_MinimumPaymentPath(t *testing.T) {
	result := simulateCreditCard(CreditCardLoan{
		loanTerms: loanTerms{
			ID:      "cc-1",
			Balance: d(1000),
			Rate:    d(24),
		},
		MinPaymentPercent: d(2),
		MinPaymentFloor:   d(25),
	})

	// 2% of 1000 is 20, below the 25 floor.
	if !result.MinimumPayment.Equal(d(25)) {
		t.Errorf("minimum payment should be the 25 floor, got %s", result.MinimumPayment)
	}
	if !result.MonthlyPayment.Equal(d(25)) {
		t.Errorf("reported monthly payment should be the opening minimum 25, got %s", result.MonthlyPayment)
	}
	if result.Events[0].Payment.IsZero() || !result.Events[0].Payment.Equal(d(25)) {
		t.Errorf("first month should pay the minimum 25, got %s", result.Events[0].Payment)
	}

	// 30 days of daily compounding at 24% APR on 1000 accrues about
	// 19.92, comfortably under the payment, so the balance declines.
	first := result.Events[0]
	if first.Interest.Sub(d(19.92)).Abs().GreaterThan(d(0.01)) {
		t.Errorf("first month interest should be ≈19.92 from daily compounding, got %s", first.Interest)
	}
	if !first.EndBalance.LessThan(first.StartBalance) {
		t.Errorf("balance should decline when the minimum exceeds interest: %s -> %s",
			first.StartBalance, first.EndBalance)
	}

	if result.TotalMonths >= MaxScheduleMonths {
		t.Errorf("minimum payments above interest must eventually pay off, took %d months", result.TotalMonths)
	}
	checkLedgerInvariants(t, result.Events)

	final := result.Events[len(result.Events)-1]
	if final.EndBalance.GreaterThan(balanceEpsilon) {
		t.Errorf("final balance %s should be at or below the payoff epsilon", final.EndBalance)
	}
}

func TestSimulateCreditCard_InterestBeforePayment(t *testing.T) {
	// An explicit payment exactly equal to the opening balance does not
	// finish the loan in month one: interest compounds first, so a sliver
	// of balance survives the payment.
	result := simulateCreditCard(CreditCardLoan{
		loanTerms: loanTerms{
			ID:      "cc-2",
			Balance: d(500),
			Rate:    d(18),
			Payment: d(500),
		},
		MinPaymentPercent: d(2),
		MinPaymentFloor:   d(25),
	})

	first := result.Events[0]
	if !first.EndBalance.Equal(first.Interest) {
		t.Errorf("paying the opening balance should leave exactly the accrued interest, got end balance %s with interest %s",
			first.EndBalance, first.Interest)
	}
	if result.TotalMonths < 2 {
		t.Errorf("residual interest should push payoff past month one, got %d months", result.TotalMonths)
	}
}

func TestSimulateCreditCard_DailyCompoundingExceedsSimpleInterest(t *testing.T) {
	// Thirty compounding days must accrue more than thirty days of simple
	// interest at the same daily rate.
	result := simulateCreditCard(CreditCardLoan{
		loanTerms: loanTerms{
			ID:      "cc-3",
			Balance: d(10000),
			Rate:    d(24),
			Payment: d(10000),
		},
		MinPaymentPercent: d(2),
		MinPaymentFloor:   d(25),
	})

	simple := d(10000).Mul(DailyRate(d(24))).Mul(d(30)).Round(moneyScale)
	if !result.Events[0].Interest.GreaterThan(simple) {
		t.Errorf("daily compounding (%s) should exceed simple daily interest over the month (%s)",
			result.Events[0].Interest, simple)
	}
}
