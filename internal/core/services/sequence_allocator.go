package services

import (
	"context"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
)

// SequenceAllocator hands out document numbers of the form
// {TYPE}-{YYMM}-{NNNN}. Numbers are drawn from the counter row of the
// (type, period) pair inside the caller's unit of work, so a number is only
// consumed when that unit of work commits.
type SequenceAllocator struct {
	now func() time.Time
}

// NewSequenceAllocator creates an allocator that derives the numbering
// period from now.
func NewSequenceAllocator(now func() time.Time) *SequenceAllocator {
	if now == nil {
		now = time.Now
	}
	return &SequenceAllocator{now: now}
}

// Allocate reserves the next number for prefix in the current UTC month.
// The counter row stays locked until the enclosing transaction ends.
func (a *SequenceAllocator) Allocate(ctx context.Context, counters portsrepo.CounterRepository, prefix domain.DocumentType) (string, error) {
	period := domain.PeriodKey(a.now())
	n, err := counters.NextNumber(ctx, prefix, period)
	if err != nil {
		return "", err
	}
	return domain.FormatDocumentNumber(prefix, period, n), nil
}
