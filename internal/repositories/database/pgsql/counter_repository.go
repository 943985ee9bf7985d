package pgsql

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
)

type PgxCounterRepository struct {
	q querier
}

func newPgxCounterRepository(q querier) portsrepo.CounterRepository {
	return &PgxCounterRepository{q: q}
}

// Ensure PgxCounterRepository implements portsrepo.CounterRepository
var _ portsrepo.CounterRepository = (*PgxCounterRepository)(nil)

// NextNumber increments the (prefix, period) counter and returns the new
// value. The upsert takes the row lock, so concurrent callers for the same
// key queue behind each other until the holder's transaction ends. A
// rolled back transaction gives its number back.
func (r *PgxCounterRepository) NextNumber(ctx context.Context, prefix domain.DocumentType, periodKey string) (int64, error) {
	var next int64
	query := `
		INSERT INTO doc_counters (doc_prefix, year_month, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (doc_prefix, year_month)
		DO UPDATE SET last_number = doc_counters.last_number + 1
		RETURNING last_number`
	if err := r.q.QueryRow(ctx, query, string(prefix), periodKey).Scan(&next); err != nil {
		return 0, mapError(err, "failed to allocate document number")
	}
	return next, nil
}
