package engine

import (
	"testing"
)

func TestPlanTerm(t *testing.T) {
	tests := []struct {
		plan string
		want int
	}{
		{PlanStandard, 120},
		{PlanGraduated, 120},
		{PlanExtended, 300},
		{"income-driven", 300},
		{"", 300},
	}
	for _, tt := range tests {
		if got := planTerm(tt.plan); got != tt.want {
			t.Errorf("planTerm(%q) = %d, want %d", tt.plan, got, tt.want)
		}
	}
}

func TestGraduatedPayment(t *testing.T) {
	base := d(1000)
	tests := []struct {
		month int
		want  float64
	}{
		{1, 750},    // opening block at 75% of base
		{24, 750},   // last month of the first block
		{25, 850},   // first step up
		{49, 950},   // second step
		{169, 1450}, // seventh block
		{200, 1500}, // capped at 150%
		{500, 1500}, // cap holds forever
	}
	for _, tt := range tests {
		if got := graduatedPayment(base, tt.month); !got.Equal(d(tt.want)) {
			t.Errorf("graduatedPayment(1000, %d) = %s, want %v", tt.month, got, tt.want)
		}
	}
}

func TestSimulateStudent_StandardPlan(t *testing.T) {
	result, err := simulateStudent(StudentLoan{
		loanTerms: loanTerms{
			ID:      "s-1",
			Balance: d(30000),
			Rate:    d(5),
		},
		Plan: PlanStandard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkLedgerInvariants(t, result.Events)
	if result.TotalMonths > 120 {
		t.Errorf("standard plan with a derived payment should finish within 120 months, got %d", result.TotalMonths)
	}
}

func TestSimulateStudent_GraduatedPaymentsNonDecreasing(t *testing.T) {
	result, err := simulateStudent(StudentLoan{
		loanTerms: loanTerms{
			ID:      "s-2",
			Balance: d(30000),
			Rate:    d(6),
		},
		Plan: PlanGraduated,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checkLedgerInvariants(t, result.Events)

	ceiling := result.MonthlyPayment.Mul(d(1.5))
	for i, e := range result.Events {
		if e.Payment.GreaterThan(ceiling) {
			t.Fatalf("month %d payment %s exceeds the 150%% ceiling %s", e.Month, e.Payment, ceiling)
		}
		// The scheduled payment steps up every 24 months; only a final
		// capped payoff payment may break the pattern.
		if i > 0 && i < len(result.Events)-1 && e.Payment.LessThan(result.Events[i-1].Payment) {
			t.Fatalf("scheduled payment decreased at month %d: %s -> %s",
				e.Month, result.Events[i-1].Payment, e.Payment)
		}
	}
}

func TestSimulateStudent_NegativeAmortizationCarries(t *testing.T) {
	// An explicit 50 payment cannot cover the 83.33 first-month interest
	// on 10000 at 10%. Principal clamps to zero and the balance grows.
	result, err := simulateStudent(StudentLoan{
		loanTerms: loanTerms{
			ID:      "s-3",
			Balance: d(10000),
			Rate:    d(10),
			Payment: d(50),
		},
		Plan: PlanStandard,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := result.Events[0]
	if !first.PrincipalPaid.IsZero() {
		t.Errorf("shortfall month should clamp principal to zero, got %s", first.PrincipalPaid)
	}
	if !first.EndBalance.GreaterThan(first.StartBalance) {
		t.Errorf("shortfall should grow the balance: %s -> %s", first.StartBalance, first.EndBalance)
	}

	// The balance never pays off; the schedule stops at the nominal term
	// plus the grace window.
	if result.TotalMonths != 120+NegAmGraceMonths {
		t.Errorf("runaway balance should stop at term+grace = %d months, got %d",
			120+NegAmGraceMonths, result.TotalMonths)
	}
	final := result.Events[len(result.Events)-1]
	if !final.EndBalance.GreaterThan(d(10000)) {
		t.Errorf("negative amortization should leave the balance above where it started, got %s", final.EndBalance)
	}
}
