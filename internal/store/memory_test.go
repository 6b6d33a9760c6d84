package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

func testPortfolio(id string, created time.Time) *model.Portfolio {
	return &model.Portfolio{
		ID:   id,
		Name: "portfolio " + id,
		Loans: []model.LoanEntry{
			{ID: "l-1", Type: "personal-loan", Balance: decimal.NewFromInt(5000), InterestRate: decimal.NewFromInt(8), TermMonths: 24},
		},
		CreatedAt: created,
	}
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := testPortfolio("p-1", time.Now())
	if err := s.SavePortfolio(ctx, p); err != nil {
		t.Fatalf("SavePortfolio: %v", err)
	}

	got, err := s.GetPortfolio(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if got.Name != p.Name || len(got.Loans) != 1 {
		t.Errorf("round trip mismatch: got %+v", got)
	}
}

func TestMemoryStore_GetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetPortfolio(context.Background(), "nope")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryStore_CopiesOnWriteAndRead(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	p := testPortfolio("p-1", time.Now())
	if err := s.SavePortfolio(ctx, p); err != nil {
		t.Fatalf("SavePortfolio: %v", err)
	}

	// Mutating the caller's slice after save must not leak into the store.
	p.Loans[0].ID = "mutated"
	got, err := s.GetPortfolio(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if got.Loans[0].ID != "l-1" {
		t.Errorf("store leaked caller mutation: %s", got.Loans[0].ID)
	}

	// Mutating a returned copy must not affect a later read.
	got.Loans[0].ID = "mutated-again"
	again, err := s.GetPortfolio(ctx, "p-1")
	if err != nil {
		t.Fatalf("GetPortfolio: %v", err)
	}
	if again.Loans[0].ID != "l-1" {
		t.Errorf("store leaked reader mutation: %s", again.Loans[0].ID)
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	base := time.Now()

	for i, id := range []string{"old", "mid", "new"} {
		if err := s.SavePortfolio(ctx, testPortfolio(id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("SavePortfolio(%s): %v", id, err)
		}
	}

	list, err := s.ListPortfolios(ctx)
	if err != nil {
		t.Fatalf("ListPortfolios: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 portfolios, got %d", len(list))
	}
	for i, want := range []string{"new", "mid", "old"} {
		if list[i].ID != want {
			t.Errorf("position %d should be %s, got %s", i, want, list[i].ID)
		}
	}
}

func TestMemoryStore_Delete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.SavePortfolio(ctx, testPortfolio("p-1", time.Now())); err != nil {
		t.Fatalf("SavePortfolio: %v", err)
	}
	if err := s.DeletePortfolio(ctx, "p-1"); err != nil {
		t.Fatalf("DeletePortfolio: %v", err)
	}
	if _, err := s.GetPortfolio(ctx, "p-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.DeletePortfolio(ctx, "p-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete should return ErrNotFound, got %v", err)
	}
}
