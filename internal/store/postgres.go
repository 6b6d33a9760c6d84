package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/toannhuynh206/loan-engine/internal/model"
)

// PostgresStore implements Store using PostgreSQL as the source of truth.
// Loan entries are stored as JSONB; decimal fields survive the round trip
// as JSON strings.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SavePortfolio(ctx context.Context, p *model.Portfolio) error {
	loans, err := json.Marshal(p.Loans)
	if err != nil {
		return fmt.Errorf("marshal loans: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO portfolios (id, name, loans, created_at)
		 VALUES ($1, $2, $3::JSONB, $4)`,
		p.ID, p.Name, loans, p.CreatedAt,
	)
	return err
}

func (s *PostgresStore) GetPortfolio(ctx context.Context, id string) (*model.Portfolio, error) {
	var p model.Portfolio
	var loans []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, name, loans, created_at FROM portfolios WHERE id = $1`, id).
		Scan(&p.ID, &p.Name, &loans, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get portfolio %s: %w", id, err)
	}

	if err := json.Unmarshal(loans, &p.Loans); err != nil {
		return nil, fmt.Errorf("unmarshal loans for %s: %w", id, err)
	}
	return &p, nil
}

func (s *PostgresStore) ListPortfolios(ctx context.Context) ([]model.Portfolio, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, name, loans, created_at FROM portfolios ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var portfolios []model.Portfolio
	for rows.Next() {
		var p model.Portfolio
		var loans []byte
		if err := rows.Scan(&p.ID, &p.Name, &loans, &p.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(loans, &p.Loans); err != nil {
			return nil, fmt.Errorf("unmarshal loans for %s: %w", p.ID, err)
		}
		portfolios = append(portfolios, p)
	}
	return portfolios, rows.Err()
}

func (s *PostgresStore) DeletePortfolio(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
