package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// CounterRepository owns the durable document number sequences.
type CounterRepository interface {
	// NextNumber locks the (prefix, period) counter row, creating it with
	// last_number = 0 when absent, increments it and returns the new value.
	// The lock is held until the enclosing unit of work ends.
	NextNumber(ctx context.Context, prefix domain.DocumentType, periodKey string) (int64, error)
}
