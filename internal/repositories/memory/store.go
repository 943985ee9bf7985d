// Package memory is an in-process implementation of the repository ports.
// Transactions are serialised: at most one unit of work runs at a time and a
// failed unit of work restores the snapshot taken when it started.
package memory

import (
	"context"
	"errors"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
)

type counterKey struct {
	prefix domain.DocumentType
	period string
}

type dataset struct {
	categories  map[string]domain.Category
	cases       map[string]domain.Case
	documents   map[string]domain.Document
	lineItems   []domain.JVLineItem
	counters    map[counterKey]int64
	payments    []domain.Payment
	attachments []domain.Attachment
	audit       []domain.AuditLog
}

func newDataset() *dataset {
	return &dataset{
		categories: map[string]domain.Category{},
		cases:      map[string]domain.Case{},
		documents:  map[string]domain.Document{},
		counters:   map[counterKey]int64{},
	}
}

// clone copies every collection. Entities are values and are never mutated
// in place, so a shallow copy per collection is enough.
func (d *dataset) clone() *dataset {
	c := &dataset{
		categories:  make(map[string]domain.Category, len(d.categories)),
		cases:       make(map[string]domain.Case, len(d.cases)),
		documents:   make(map[string]domain.Document, len(d.documents)),
		lineItems:   append([]domain.JVLineItem(nil), d.lineItems...),
		counters:    make(map[counterKey]int64, len(d.counters)),
		payments:    append([]domain.Payment(nil), d.payments...),
		attachments: append([]domain.Attachment(nil), d.attachments...),
		audit:       append([]domain.AuditLog(nil), d.audit...),
	}
	for k, v := range d.categories {
		c.categories[k] = v
	}
	for k, v := range d.cases {
		c.cases[k] = v
	}
	for k, v := range d.documents {
		c.documents[k] = v
	}
	for k, v := range d.counters {
		c.counters[k] = v
	}
	return c
}

// Store holds all data and implements portsrepo.UnitOfWork.
type Store struct {
	sem  chan struct{}
	data *dataset
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		sem:  make(chan struct{}, 1),
		data: newDataset(),
	}
}

var _ portsrepo.UnitOfWork = (*Store)(nil)

// WithinTx runs fn with exclusive access to the store. Waiting for another
// unit of work is bounded by ctx; giving up surfaces as a lock timeout.
func (s *Store) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return apperrors.New(apperrors.ErrConflict, apperrors.CodeLockTimeout, "timed out waiting for a lock", ctx.Err())
	}
	defer func() { <-s.sem }()

	snapshot := s.data.clone()
	if err := fn(ctx, s.repositories()); err != nil {
		s.data = snapshot
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return err
		}
		return apperrors.NewInternalError("transaction failed", err)
	}
	return nil
}

func (s *Store) repositories() portsrepo.Repositories {
	return portsrepo.Repositories{
		Categories:  &categoryRepository{s: s},
		Cases:       &caseRepository{s: s},
		Documents:   &documentRepository{s: s},
		Counters:    &counterRepository{s: s},
		Payments:    &paymentRepository{s: s},
		Attachments: &attachmentRepository{s: s},
		Audit:       &auditRepository{s: s},
	}
}
