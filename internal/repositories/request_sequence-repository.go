package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const RequestNumberSequence = "request_number"

type RequestSequenceRepositoryInterface interface {
	NextInTx(ctx context.Context, tx pgx.Tx, name string) (int64, error)
}

type RequestSequenceRepository struct{}

func NewRequestSequenceRepository() RequestSequenceRepositoryInterface {
	return &RequestSequenceRepository{}
}

// NextInTx increments the named counter and returns the new value. The row stays locked
// until tx ends, so concurrent creators are serialised and never share a value.
func (r *RequestSequenceRepository) NextInTx(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	const query = `
		INSERT INTO request_sequences (name, last_value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET last_value = request_sequences.last_value + 1
		RETURNING last_value`

	var next int64
	if err := tx.QueryRow(ctx, query, name).Scan(&next); err != nil {
		return 0, fmt.Errorf("failed to advance sequence %q: %w", name, err)
	}
	return next, nil
}
