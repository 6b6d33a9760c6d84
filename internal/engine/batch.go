package engine

import (
	"fmt"
	"sync"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// RunBatch simulates every entry in a multi-loan request and combines the
// results. Loans have no data dependency on each other, so they fan out
// across a bounded pool of goroutines; each result is written back at its
// entry's index so the response preserves submission order exactly.
//
// Batch totals sum principal, interest, payment, and total paid. Total
// months is the MAX across loans, not the sum — the portfolio is paid off
// only when the longest-running loan is.
func RunBatch(entries []model.LoanEntry, workers int) (*model.MultiLoanResponse, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no loans provided", ErrInvalidInput)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]*model.LoanResult, len(entries))
	errs := make([]error, len(entries))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, e := range entries {
		wg.Add(1)
		go func(i int, e model.LoanEntry) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i], errs[i] = Simulate(e)
		}(i, e)
	}
	wg.Wait()

	resp := &model.MultiLoanResponse{
		Loans: make([]model.LoanResult, 0, len(entries)),
	}
	for i, r := range results {
		if errs[i] != nil {
			return nil, fmt.Errorf("loan %d (%s): %w", i, entries[i].ID, errs[i])
		}
		resp.Loans = append(resp.Loans, *r)
		resp.TotalPrincipal = resp.TotalPrincipal.Add(r.Principal)
		resp.TotalInterest = resp.TotalInterest.Add(r.TotalInterest)
		resp.TotalMonthlyPayment = resp.TotalMonthlyPayment.Add(r.MonthlyPayment)
		resp.TotalPaid = resp.TotalPaid.Add(r.TotalPaid)
		if r.TotalMonths > resp.TotalMonths {
			resp.TotalMonths = r.TotalMonths
		}
	}
	return resp, nil
}
