package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/utils/pagination"
)

// caseService drives cases through their lifecycle.
type caseService struct {
	BaseService
	uow         portsrepo.UnitOfWork
	vouchers    *VoucherGenerator
	audit       *AuditRecorder
	companyName string
}

// NewCaseService creates a new CaseService.
func NewCaseService(uow portsrepo.UnitOfWork, vouchers *VoucherGenerator, audit *AuditRecorder, companyName string, options ...ServiceOption) portssvc.CaseSvcFacade {
	return &caseService{
		BaseService: newBaseService(options...),
		uow:         uow,
		vouchers:    vouchers,
		audit:       audit,
		companyName: companyName,
	}
}

// Ensure caseService implements the portssvc.CaseSvcFacade interface
var _ portssvc.CaseSvcFacade = (*caseService)(nil)

// transitionStep runs after the state graph accepted the event and before
// the case is persisted. It may mutate the case and returns extra audit details.
type transitionStep func(ctx context.Context, repos portsrepo.Repositories, c *domain.Case, category *domain.Category) (map[string]any, error)

// transition applies event to a case inside one unit of work. Checks run in
// order: existence, visibility, capability, state graph.
func (s *caseService) transition(ctx context.Context, caseID string, actor domain.Actor, action domain.Action, event domain.CaseEvent, auditAction string, step transitionStep) (*domain.Case, error) {
	var updated domain.Case
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByIDForUpdate(ctx, caseID)
		if err != nil {
			return err
		}
		if err := s.requireVisible(c, actor); err != nil {
			return err
		}
		if err := s.Authorize(ctx, actor, action, c); err != nil {
			return err
		}

		category, err := repos.Categories.FindCategoryByID(ctx, c.CategoryID)
		if err != nil {
			return err
		}

		from := c.Status
		next, err := domain.NextStatus(from, event, category.Type)
		if err != nil || !domain.IsForward(from, next) {
			return transitionConflict(c, event)
		}

		now := s.Now()
		c.Status = next
		c.LastUpdatedAt = now
		c.LastUpdatedBy = actor.UserID

		details := map[string]any{"from": string(from), "to": string(next)}
		if step != nil {
			extra, err := step(ctx, repos, c, category)
			if err != nil {
				return err
			}
			for k, v := range extra {
				details[k] = v
			}
		}

		if err := repos.Cases.UpdateCaseState(ctx, *c); err != nil {
			return err
		}
		if err := s.audit.Record(ctx, repos.Audit, domain.EntityCase, c.CaseID, auditAction, actor, details); err != nil {
			return err
		}
		updated = *c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Case transitioned",
		slog.String("case_id", updated.CaseID),
		slog.String("event", string(event)),
		slog.String("status", string(updated.Status)),
		slog.String("user_id", actor.UserID))
	return &updated, nil
}

// GetCaseByID retrieves a case visible to the actor.
func (s *caseService) GetCaseByID(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	var found *domain.Case
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		c, err := repos.Cases.FindCaseByID(ctx, caseID)
		if err != nil {
			return err
		}
		found = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	if err := s.requireVisible(found, actor); err != nil {
		return nil, err
	}
	return found, nil
}

// ListCases returns a page of cases, newest first. Callers without a
// privileged role only see their own cases.
func (s *caseService) ListCases(ctx context.Context, params dto.ListCasesParams, actor domain.Actor) (*dto.ListCasesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := domain.CaseFilter{Limit: limit + 1}
	if params.Status != "" {
		status := domain.CaseStatus(params.Status)
		if !status.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown case status %s", params.Status))
		}
		filter.Status = &status
	}
	if !actor.HasAnyRole(domain.PrivilegedRoles...) {
		filter.RequesterID = actor.UserID
	}
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(params.NextToken)
		if err != nil {
			return nil, apperrors.NewValidationError("invalid nextToken")
		}
		filter.Before = &domain.CaseCursor{CreatedAt: createdAt, CaseID: id}
	}

	var cases []domain.Case
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		cases, err = repos.Cases.ListCases(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.ListCasesResponse{}
	if len(cases) > limit {
		cases = cases[:limit]
		last := cases[len(cases)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.CaseID)
		resp.NextToken = &token
	}
	resp.Cases = dto.ToListCaseResponse(cases)
	return resp, nil
}

// CreateCase opens a DRAFT case for the actor.
func (s *caseService) CreateCase(ctx context.Context, req dto.CreateCaseRequest, actor domain.Actor) (*domain.Case, error) {
	if err := s.Authorize(ctx, actor, domain.ActionCreateCase, nil); err != nil {
		return nil, err
	}
	if err := validateAmount("requestedAmount", req.RequestedAmount, false); err != nil {
		return nil, err
	}
	purpose := strings.TrimSpace(req.Purpose)
	if purpose == "" {
		return nil, apperrors.NewValidationError("purpose is required")
	}
	funding := req.FundingType
	if funding == "" {
		funding = domain.FundingOperating
	}
	if !funding.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown funding type %s", req.FundingType))
	}

	var created domain.Case
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		category, err := repos.Categories.FindCategoryByID(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		if !category.IsActive {
			return apperrors.NewInvalidStateError(apperrors.CodeCategoryInactive,
				fmt.Sprintf("category %s is inactive", category.CategoryID))
		}
		depositAccount := trimmedOrNil(req.DepositAccountID)
		if category.Type.RequiresDepositAccount() && depositAccount == nil {
			return apperrors.NewValidationError(
				fmt.Sprintf("depositAccountId is required for %s categories", category.Type))
		}
		if depositAccount != nil {
			// Deposit accounts are active asset categories.
			account, err := repos.Categories.FindCategoryByID(ctx, *depositAccount)
			if err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return apperrors.NewValidationError(fmt.Sprintf("deposit account %s does not exist", *depositAccount))
				}
				return err
			}
			if account.Type != domain.CategoryAsset || !account.IsActive {
				return apperrors.NewValidationError(
					fmt.Sprintf("deposit account %s must be an active ASSET category", *depositAccount))
			}
		}

		now := s.Now()
		caseID := uuid.New()
		created = domain.Case{
			CaseID:           caseID.String(),
			CaseNo:           newCaseNo(now.Format("060102"), caseID),
			CategoryID:       category.CategoryID,
			AccountCode:      category.AccountCode,
			RequesterID:      actor.UserID,
			DepartmentID:     trimmedOrNil(req.DepartmentID),
			CostCenterID:     trimmedOrNil(req.CostCenterID),
			FundingType:      funding,
			RequestedAmount:  req.RequestedAmount,
			Purpose:          purpose,
			DepositAccountID: depositAccount,
			Status:           domain.CaseStatusDraft,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
		if err := repos.Cases.SaveCase(ctx, created); err != nil {
			return err
		}
		return s.audit.Record(ctx, repos.Audit, domain.EntityCase, created.CaseID, domain.AuditCreate, actor, map[string]any{
			"caseNo":          created.CaseNo,
			"categoryId":      created.CategoryID,
			"requestedAmount": created.RequestedAmount.StringFixed(domain.MoneyScale),
		})
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "Case created",
		slog.String("case_id", created.CaseID),
		slog.String("case_no", created.CaseNo),
		slog.String("user_id", actor.UserID))
	return &created, nil
}

// SubmitCase moves a DRAFT case to SUBMITTED.
func (s *caseService) SubmitCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return s.transition(ctx, caseID, actor, domain.ActionSubmitCase, domain.EventSubmit, domain.AuditSubmit, nil)
}

// ApproveCase generates the voucher of a SUBMITTED case. Expense cases move
// to APPROVED; revenue and asset cases close immediately.
func (s *caseService) ApproveCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, *domain.Document, error) {
	var doc *domain.Document
	var category domain.Category
	updated, err := s.transition(ctx, caseID, actor, domain.ActionApproveCase, domain.EventApprove, domain.AuditApprove,
		func(ctx context.Context, repos portsrepo.Repositories, c *domain.Case, cat *domain.Category) (map[string]any, error) {
			generated, err := s.vouchers.GenerateForCase(ctx, repos, *c, *cat, actor)
			if err != nil {
				return nil, err
			}
			doc = generated
			category = *cat
			return map[string]any{
				"documentId": generated.DocumentID,
				"docNo":      generated.DocNo,
				"docType":    string(generated.DocType),
			}, nil
		})
	if err != nil {
		return nil, nil, err
	}

	s.vouchers.publish(ctx, domain.VoucherData{
		Document:    *doc,
		Case:        *updated,
		Category:    category,
		CompanyName: s.companyName,
	})
	return updated, doc, nil
}

// RejectCase moves a SUBMITTED case to REJECTED.
func (s *caseService) RejectCase(ctx context.Context, caseID string, req dto.RejectCaseRequest, actor domain.Actor) (*domain.Case, error) {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("reason is required")
	}
	return s.transition(ctx, caseID, actor, domain.ActionRejectCase, domain.EventReject, domain.AuditReject,
		func(_ context.Context, _ portsrepo.Repositories, c *domain.Case, _ *domain.Category) (map[string]any, error) {
			rejectedAt := c.LastUpdatedAt
			c.RejectReason = &reason
			c.RejectedAt = &rejectedAt
			return map[string]any{"reason": reason}, nil
		})
}

// PayCase moves an APPROVED case to PAID and records the disbursement when
// an amount is given.
func (s *caseService) PayCase(ctx context.Context, caseID string, req dto.PayCaseRequest, actor domain.Actor) (*domain.Case, error) {
	if req.Amount != nil {
		if err := validateAmount("amount", *req.Amount, false); err != nil {
			return nil, err
		}
	}
	return s.transition(ctx, caseID, actor, domain.ActionPayCase, domain.EventPay, domain.AuditPay,
		func(ctx context.Context, repos portsrepo.Repositories, c *domain.Case, _ *domain.Category) (map[string]any, error) {
			if req.Amount == nil {
				return nil, nil
			}
			payment := domain.Payment{
				PaymentID:   uuid.NewString(),
				CaseID:      c.CaseID,
				Type:        domain.PaymentDisburse,
				Amount:      *req.Amount,
				PaidBy:      actor.UserID,
				PaidAt:      c.LastUpdatedAt,
				ReferenceNo: trimmedOrNil(req.ReferenceNo),
			}
			if err := repos.Payments.SavePayment(ctx, payment); err != nil {
				return nil, err
			}
			return map[string]any{
				"paymentId": payment.PaymentID,
				"amount":    payment.Amount.StringFixed(domain.MoneyScale),
			}, nil
		})
}

// UploadReceipt marks the receipt of a PAID case as uploaded.
func (s *caseService) UploadReceipt(ctx context.Context, caseID string, req dto.UploadReceiptRequest, actor domain.Actor) (*domain.Case, error) {
	if req.SettledAmount != nil {
		if err := validateAmount("settledAmount", *req.SettledAmount, true); err != nil {
			return nil, err
		}
	}
	return s.transition(ctx, caseID, actor, domain.ActionUploadReceipt, domain.EventUploadReceipt, domain.AuditUploadReceipt,
		func(_ context.Context, _ portsrepo.Repositories, c *domain.Case, _ *domain.Category) (map[string]any, error) {
			c.IsReceiptUploaded = true
			if req.SettledAmount == nil {
				return nil, nil
			}
			settled := *req.SettledAmount
			c.SettledAmount = &settled
			return map[string]any{"settledAmount": settled.StringFixed(domain.MoneyScale)}, nil
		})
}

// CloseCase closes a PAID case once its receipt is uploaded.
func (s *caseService) CloseCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return s.transition(ctx, caseID, actor, domain.ActionCloseCase, domain.EventClose, domain.AuditClose,
		func(_ context.Context, _ portsrepo.Repositories, c *domain.Case, _ *domain.Category) (map[string]any, error) {
			if !c.IsReceiptUploaded {
				return nil, apperrors.NewConflictError(apperrors.CodeReceiptRequired,
					"receipt must be uploaded before the case can be closed")
			}
			return nil, nil
		})
}

// CancelCase cancels any non-terminal case.
func (s *caseService) CancelCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return s.transition(ctx, caseID, actor, domain.ActionCancelCase, domain.EventCancel, domain.AuditCancel, nil)
}

// newCaseNo renders CAS-{YYMMDD}-{6 hex}.
func newCaseNo(day string, id uuid.UUID) string {
	return fmt.Sprintf("CAS-%s-%s", day, strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:6]))
}

func trimmedOrNil(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
