// Package store persists saved loan portfolios. Implementations include
// PostgreSQL (source of truth), Redis (read-through cache), and in-memory
// (for testing). Only loan definitions are stored — computed schedules
// are recreated on demand and never persisted.
package store

import (
	"context"
	"errors"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// ErrNotFound is returned when a portfolio ID has no stored entry.
var ErrNotFound = errors.New("store: portfolio not found")

// Store is the persistence interface for saved portfolios.
type Store interface {
	// SavePortfolio persists a new portfolio.
	SavePortfolio(ctx context.Context, p *model.Portfolio) error

	// GetPortfolio retrieves a portfolio by its ID.
	GetPortfolio(ctx context.Context, id string) (*model.Portfolio, error)

	// ListPortfolios returns all portfolios, newest first.
	ListPortfolios(ctx context.Context) ([]model.Portfolio, error)

	// DeletePortfolio removes a portfolio by its ID.
	DeletePortfolio(ctx context.Context, id string) error
}
