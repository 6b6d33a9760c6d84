package engine

import (
	"testing"

	"github.com/shopspring/decimal"
)

func testMortgage() MortgageLoan {
	return MortgageLoan{
		loanTerms: loanTerms{
			ID:      "m-1",
			Balance: d(90000),
			Rate:    d(6),
		},
		TermYears:     30,
		HomePrice:     d(100000),
		PropertyTax:   d(200),
		HomeInsurance: d(100),
		HOA:           d(50),
		PMIRate:       d(0.5),
	}
}

func TestSimulateMortgage_LevelPayment(t *testing.T) {
	result, err := simulateMortgage(testMortgage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 90000 at 6% over 360 months is the textbook 539.60 P&I.
	if result.MonthlyPayment.Sub(d(539.60)).Abs().GreaterThan(d(0.01)) {
		t.Errorf("expected P&I ≈ 539.60, got %s", result.MonthlyPayment)
	}
	if result.TotalMonths != 360 {
		t.Errorf("expected the full 360-month term, got %d", result.TotalMonths)
	}
	checkLedgerInvariants(t, result.Events)
}

func TestSimulateMortgage_EscrowConstant(t *testing.T) {
	result, err := simulateMortgage(testMortgage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	escrow := d(350) // 200 tax + 100 insurance + 50 HOA
	for _, e := range result.Events {
		if !e.Escrow.Equal(escrow) {
			t.Fatalf("month %d escrow should be the constant 350, got %s", e.Month, e.Escrow)
		}
		want := e.Payment.Add(e.PMI).Add(e.Escrow)
		if !e.TotalPayment.Equal(want) {
			t.Fatalf("month %d total payment %s should be P&I + PMI + escrow = %s", e.Month, e.TotalPayment, want)
		}
	}
}

func TestSimulateMortgage_PMICancellationIsMonotone(t *testing.T) {
	result, err := simulateMortgage(testMortgage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 90% LTV at origination requires PMI, fixed at 90000 * 0.5% / 12.
	if !result.Events[0].PMI.Equal(d(37.50)) {
		t.Errorf("first month PMI should be 37.50, got %s", result.Events[0].PMI)
	}

	cancelledAt := 0
	for _, e := range result.Events {
		if cancelledAt == 0 && e.PMI.IsZero() {
			cancelledAt = e.Month
		}
		if cancelledAt != 0 && !e.PMI.IsZero() {
			t.Fatalf("PMI reinstated at month %d after cancellation at month %d", e.Month, cancelledAt)
		}
	}
	if cancelledAt == 0 {
		t.Fatal("PMI should cancel before the loan pays off")
	}

	// On this schedule the balance first reaches 80% LTV long after month
	// 24, so the voluntary 80% rule fires before the 78% auto-cancel.
	// Every month still charged PMI must have started above 80% LTV.
	threshold := d(80000)
	if cancelledAt <= pmiRequestMonth {
		t.Fatalf("cancellation at month %d should not happen before the voluntary window opens", cancelledAt)
	}
	for _, e := range result.Events {
		if e.Month >= cancelledAt {
			break
		}
		if !e.StartBalance.GreaterThan(threshold) {
			t.Fatalf("month %d still charged PMI with start balance %s at or below 80%% LTV", e.Month, e.StartBalance)
		}
	}
}

func TestSimulateMortgage_NoPMIAtOrBelow80LTV(t *testing.T) {
	loan := testMortgage()
	loan.Balance = d(80000) // exactly 80% LTV
	result, err := simulateMortgage(loan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.TotalPMI.IsZero() {
		t.Errorf("a loan at 80%% LTV should never owe PMI, got total %s", result.TotalPMI)
	}
}

func TestSimulateMortgage_FinalEquity(t *testing.T) {
	result, err := simulateMortgage(testMortgage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The loan retires within the term, so equity ends at (or within
	// rounding cents of) 100% of the home price.
	if result.FinalEquityPercent.Sub(decimal.NewFromInt(100)).Abs().GreaterThan(d(0.01)) {
		t.Errorf("final equity should be ≈100%%, got %s", result.FinalEquityPercent)
	}
}

func TestSimulateMortgage_NoHomePriceSkipsEquityAndPMI(t *testing.T) {
	loan := testMortgage()
	loan.HomePrice = decimal.Zero
	result, err := simulateMortgage(loan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.TotalPMI.IsZero() {
		t.Errorf("no home price means no LTV and no PMI, got %s", result.TotalPMI)
	}
	if !result.FinalEquityPercent.IsZero() {
		t.Errorf("no home price means no equity figure, got %s", result.FinalEquityPercent)
	}
}
