package services

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// CaseReaderSvc defines read operations for case data. Both apply the
// case visibility rule.
type CaseReaderSvc interface {
	GetCaseByID(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error)
	ListCases(ctx context.Context, params dto.ListCasesParams, actor domain.Actor) (*dto.ListCasesResponse, error)
}

// CaseWorkflowSvc drives a case through its lifecycle. Every operation runs
// in one unit of work and re-checks the case status under a row lock.
type CaseWorkflowSvc interface {
	// CreateCase opens a DRAFT case for the actor.
	CreateCase(ctx context.Context, req dto.CreateCaseRequest, actor domain.Actor) (*domain.Case, error)

	// SubmitCase moves a DRAFT case to SUBMITTED.
	SubmitCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error)

	// ApproveCase generates the case's PV or RV and moves it to APPROVED
	// (expense) or CLOSED (revenue, asset).
	ApproveCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, *domain.Document, error)

	// RejectCase moves a SUBMITTED case to REJECTED with a reason.
	RejectCase(ctx context.Context, caseID string, req dto.RejectCaseRequest, actor domain.Actor) (*domain.Case, error)

	// PayCase moves an APPROVED case to PAID, optionally recording the disbursement.
	PayCase(ctx context.Context, caseID string, req dto.PayCaseRequest, actor domain.Actor) (*domain.Case, error)

	// UploadReceipt flags a PAID case's receipt as uploaded.
	UploadReceipt(ctx context.Context, caseID string, req dto.UploadReceiptRequest, actor domain.Actor) (*domain.Case, error)

	// CloseCase moves a PAID case with an uploaded receipt to CLOSED.
	CloseCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error)

	// CancelCase moves any non-terminal case to CANCELLED.
	CancelCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error)
}

// CaseSvcFacade combines all case-related service interfaces
type CaseSvcFacade interface {
	CaseReaderSvc
	CaseWorkflowSvc
}
