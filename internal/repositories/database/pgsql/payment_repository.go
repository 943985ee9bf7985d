package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
	"github.com/chonlathan-cloud/ProjectPRT/internal/utils/mapping"
)

type PgxPaymentRepository struct {
	q querier
}

func newPgxPaymentRepository(q querier) portsrepo.PaymentRepositoryFacade {
	return &PgxPaymentRepository{q: q}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryFacade
var _ portsrepo.PaymentRepositoryFacade = (*PgxPaymentRepository)(nil)

// ListPaymentsByCase returns payments oldest first.
func (r *PgxPaymentRepository) ListPaymentsByCase(ctx context.Context, caseID string) ([]domain.Payment, error) {
	if !validID(caseID) {
		return []domain.Payment{}, nil
	}
	query := `
		SELECT payment_id, case_id, type, amount, paid_by, paid_at, reference_no
		FROM payments
		WHERE case_id = $1
		ORDER BY paid_at, payment_id`
	rows, err := r.q.Query(ctx, query, caseID)
	if err != nil {
		return nil, mapError(err, "failed to list payments")
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Payment])
	if err != nil {
		return nil, mapError(err, "failed to scan payments")
	}
	return mapping.ToDomainPaymentSlice(ms), nil
}

// SavePayment inserts a payment record.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)
	query := `
		INSERT INTO payments (payment_id, case_id, type, amount, paid_by, paid_at, reference_no)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.q.Exec(ctx, query, m.PaymentID, m.CaseID, m.Type, m.Amount, m.PaidBy, m.PaidAt, m.ReferenceNo); err != nil {
		return mapError(err, "failed to save payment")
	}
	return nil
}
