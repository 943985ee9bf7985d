package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// paymentService records money movements on a case after disbursement.
type paymentService struct {
	BaseService
	uow   portsrepo.UnitOfWork
	audit *AuditRecorder
}

func NewPaymentService(uow portsrepo.UnitOfWork, audit *AuditRecorder, options ...ServiceOption) portssvc.PaymentSvcFacade {
	return &paymentService{
		BaseService: newBaseService(options...),
		uow:         uow,
		audit:       audit,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

func (s *paymentService) ListPayments(ctx context.Context, caseID string, actor domain.Actor) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByID(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}
		payments, err = repos.Payments.ListPaymentsByCase(ctx, caseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (s *paymentService) GetVariance(ctx context.Context, caseID string, actor domain.Actor) (*domain.Variance, error) {
	var variance domain.Variance
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByID(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}
		payments, err := repos.Payments.ListPaymentsByCase(ctx, caseID)
		if err != nil {
			return err
		}
		variance = domain.ComputeVariance(*c, payments)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &variance, nil
}

// RecordAdjustment records a refund or additional payment. The case row is
// locked so concurrent adjustments see each other.
func (s *paymentService) RecordAdjustment(ctx context.Context, caseID string, req dto.CreateAdjustmentRequest, actor domain.Actor) (*domain.Payment, error) {
	if !req.Type.IsAdjustment() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("payment type %s is not an adjustment", req.Type))
	}
	if err := validateAmount("amount", req.Amount, false); err != nil {
		return nil, err
	}

	var payment domain.Payment
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByIDForUpdate(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}
		if err := s.Authorize(ctx, actor, domain.ActionRecordAdjustment, c); err != nil {
			return err
		}
		if c.Status != domain.CaseStatusPaid && c.Status != domain.CaseStatusClosed {
			return apperrors.NewConflictError(apperrors.CodeInvalidTransition,
				fmt.Sprintf("adjustments require a PAID or CLOSED case, got %s", c.Status)).
				WithDetails(map[string]any{
					"caseId":           c.CaseID,
					"currentStatus":    string(c.Status),
					"expectedStatuses": []string{string(domain.CaseStatusPaid), string(domain.CaseStatusClosed)},
				})
		}

		payment = domain.Payment{
			PaymentID:   uuid.NewString(),
			CaseID:      c.CaseID,
			Type:        req.Type,
			Amount:      req.Amount,
			PaidBy:      actor.UserID,
			PaidAt:      s.Now(),
			ReferenceNo: trimmedOrNil(req.ReferenceNo),
		}
		if err := repos.Payments.SavePayment(ctx, payment); err != nil {
			return err
		}
		return s.audit.Record(ctx, repos.Audit, domain.EntityCase, c.CaseID, domain.AuditAdjustment, actor, map[string]any{
			"paymentId": payment.PaymentID,
			"type":      string(payment.Type),
			"amount":    payment.Amount.StringFixed(domain.MoneyScale),
		})
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Adjustment recorded",
		slog.String("case_id", caseID),
		slog.String("payment_id", payment.PaymentID),
		slog.String("type", string(payment.Type)))
	return &payment, nil
}
