package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

// --- Mock CategoryService ---
type MockCategoryService struct {
	mock.Mock
}

func (m *MockCategoryService) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}
func (m *MockCategoryService) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}
func (m *MockCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest, actor domain.Actor) (*domain.Category, error) {
	args := m.Called(ctx, categoryID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

var _ portssvc.CategorySvcFacade = (*MockCategoryService)(nil)

// --- Mock CaseService ---
type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) caseResult(args mock.Arguments) (*domain.Case, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Case), args.Error(1)
}

func (m *MockCaseService) GetCaseByID(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, actor))
}
func (m *MockCaseService) ListCases(ctx context.Context, params dto.ListCasesParams, actor domain.Actor) (*dto.ListCasesResponse, error) {
	args := m.Called(ctx, params, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCasesResponse), args.Error(1)
}
func (m *MockCaseService) CreateCase(ctx context.Context, req dto.CreateCaseRequest, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, req, actor))
}
func (m *MockCaseService) SubmitCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, actor))
}
func (m *MockCaseService) ApproveCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, *domain.Document, error) {
	args := m.Called(ctx, caseID, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Case), args.Get(1).(*domain.Document), args.Error(2)
}
func (m *MockCaseService) RejectCase(ctx context.Context, caseID string, req dto.RejectCaseRequest, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, req, actor))
}
func (m *MockCaseService) PayCase(ctx context.Context, caseID string, req dto.PayCaseRequest, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, req, actor))
}
func (m *MockCaseService) UploadReceipt(ctx context.Context, caseID string, req dto.UploadReceiptRequest, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, req, actor))
}
func (m *MockCaseService) CloseCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, actor))
}
func (m *MockCaseService) CancelCase(ctx context.Context, caseID string, actor domain.Actor) (*domain.Case, error) {
	return m.caseResult(m.Called(ctx, caseID, actor))
}

var _ portssvc.CaseSvcFacade = (*MockCaseService)(nil)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID string, actor domain.Actor) (*domain.Document, []domain.JVLineItem, error) {
	args := m.Called(ctx, documentID, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	items, _ := args.Get(1).([]domain.JVLineItem)
	return args.Get(0).(*domain.Document), items, args.Error(2)
}
func (m *MockDocumentService) ListCaseDocuments(ctx context.Context, caseID string, actor domain.Actor) ([]domain.Document, error) {
	args := m.Called(ctx, caseID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}
func (m *MockDocumentService) GetArtifactURL(ctx context.Context, documentID string, actor domain.Actor) (*domain.SignedURL, error) {
	args := m.Called(ctx, documentID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SignedURL), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock JournalVoucherService ---
type MockJournalVoucherService struct {
	mock.Mock
}

func (m *MockJournalVoucherService) CreateJV(ctx context.Context, req dto.CreateJVRequest, actor domain.Actor) (*domain.Document, []domain.JVLineItem, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Document), args.Get(1).([]domain.JVLineItem), args.Error(2)
}

var _ portssvc.JournalVoucherSvc = (*MockJournalVoucherService)(nil)

// --- Mock PaymentService ---
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) ListPayments(ctx context.Context, caseID string, actor domain.Actor) ([]domain.Payment, error) {
	args := m.Called(ctx, caseID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Payment), args.Error(1)
}
func (m *MockPaymentService) GetVariance(ctx context.Context, caseID string, actor domain.Actor) (*domain.Variance, error) {
	args := m.Called(ctx, caseID, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Variance), args.Error(1)
}
func (m *MockPaymentService) RecordAdjustment(ctx context.Context, caseID string, req dto.CreateAdjustmentRequest, actor domain.Actor) (*domain.Payment, error) {
	args := m.Called(ctx, caseID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

var _ portssvc.PaymentSvcFacade = (*MockPaymentService)(nil)

// --- Mock AttachmentService ---
type MockAttachmentService struct {
	mock.Mock
}

func (m *MockAttachmentService) CreateUploadURL(ctx context.Context, caseID string, req dto.UploadURLRequest, actor domain.Actor) (*domain.Attachment, *domain.SignedURL, error) {
	args := m.Called(ctx, caseID, req, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Attachment), args.Get(1).(*domain.SignedURL), args.Error(2)
}
func (m *MockAttachmentService) CreateDownloadURL(ctx context.Context, caseID string, params dto.DownloadURLParams, actor domain.Actor) (*domain.Attachment, *domain.SignedURL, error) {
	args := m.Called(ctx, caseID, params, actor)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Attachment), args.Get(1).(*domain.SignedURL), args.Error(2)
}

var _ portssvc.AttachmentSvcFacade = (*MockAttachmentService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ListAuditTrail(ctx context.Context, entityType, entityID string, limit int, actor domain.Actor) ([]domain.AuditLog, error) {
	args := m.Called(ctx, entityType, entityID, limit, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditLog), args.Error(1)
}

var _ portssvc.AuditTrailSvc = (*MockAuditService)(nil)
