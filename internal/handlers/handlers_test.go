package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/identity/jwtauth"
	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/handlers"
	"github.com/chonlathan-cloud/ProjectPRT/internal/platform/config"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "prt-test"
)

// envelope mirrors the response wrapper with the payload left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *dto.ErrorBody  `json:"error"`
}

type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	provider   *jwtauth.Provider
	categories *MockCategoryService
	cases      *MockCaseService
	documents  *MockDocumentService
	jv         *MockJournalVoucherService
	payments   *MockPaymentService
	attach     *MockAttachmentService
	audit      *MockAuditService
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.provider = jwtauth.NewProvider(testSecret, testIssuer)

	s.categories = new(MockCategoryService)
	s.cases = new(MockCaseService)
	s.documents = new(MockDocumentService)
	s.jv = new(MockJournalVoucherService)
	s.payments = new(MockPaymentService)
	s.attach = new(MockAttachmentService)
	s.audit = new(MockAuditService)

	container := &portssvc.ServiceContainer{
		Category:       s.categories,
		Case:           s.cases,
		JournalVoucher: s.jv,
		Document:       s.documents,
		Payment:        s.payments,
		Attachment:     s.attach,
		Audit:          s.audit,
	}
	handlers.RegisterRoutes(s.router, &config.Config{IsProduction: true}, container, handlers.RouterDeps{Identity: s.provider})
}

func (s *HandlerTestSuite) token(userID string, roles ...domain.Role) string {
	tok, err := s.provider.Issue(userID, roles, time.Hour)
	s.Require().NoError(err)
	return tok
}

func (s *HandlerTestSuite) do(method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func actorID(id string) interface{} {
	return mock.MatchedBy(func(a domain.Actor) bool { return a.UserID == id })
}

func sampleCase(id string, status domain.CaseStatus) *domain.Case {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return &domain.Case{
		CaseID:          id,
		CaseNo:          "CAS-250314-A1B2C3",
		CategoryID:      "cat-1",
		AccountCode:     "5100",
		RequesterID:     "user-1",
		FundingType:     domain.FundingOperating,
		RequestedAmount: decimal.RequireFromString("1500.50"),
		Purpose:         "Printer toner",
		Status:          status,
		AuditFields:     domain.AuditFields{CreatedAt: now, CreatedBy: "user-1", LastUpdatedAt: now, LastUpdatedBy: "user-1"},
	}
}

func (s *HandlerTestSuite) TestHealth() {
	w, _ := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())
}

func (s *HandlerTestSuite) TestMissingTokenIsUnauthorized() {
	w, env := s.do(http.MethodGet, "/api/v1/me", "", "")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.False(env.Success)
	s.Require().NotNil(env.Error)
	s.Equal(apperrors.CodeUnauthorized, env.Error.Code)

	w, env = s.do(http.MethodGet, "/api/v1/me", "", "not-a-jwt")
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal("Invalid token", env.Error.Message)
}

func (s *HandlerTestSuite) TestMe() {
	w, env := s.do(http.MethodGet, "/api/v1/me", "", s.token("user-7", domain.RoleFinance, domain.RoleTreasury))
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(env.Success)
	s.Nil(env.Error)

	var me dto.MeResponse
	s.Require().NoError(json.Unmarshal(env.Data, &me))
	s.Equal("user-7", me.UserID)
	s.Equal([]string{"Finance", "Treasury"}, me.Roles)
}

func (s *HandlerTestSuite) TestCreateCase() {
	created := sampleCase("case-1", domain.CaseStatusDraft)
	s.cases.On("CreateCase", mock.Anything,
		mock.MatchedBy(func(req dto.CreateCaseRequest) bool {
			return req.CategoryID == "cat-1" && req.RequestedAmount.Equal(decimal.RequireFromString("1500.50"))
		}),
		actorID("user-1"),
	).Return(created, nil).Once()

	body := `{"categoryId":"cat-1","requestedAmount":"1500.50","purpose":"Printer toner"}`
	w, env := s.do(http.MethodPost, "/api/v1/cases", body, s.token("user-1", domain.RoleRequester))
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp dto.CaseResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal("case-1", resp.CaseID)
	s.Equal(domain.CaseStatusDraft, resp.Status)
	s.True(resp.RequestedAmount.Equal(created.RequestedAmount))
	s.cases.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestCreateCaseRejectsBadAmounts() {
	tok := s.token("user-1", domain.RoleRequester)
	for _, amount := range []string{`"10.001"`, `"-5"`, `"0"`, `"abc"`} {
		body := `{"categoryId":"cat-1","requestedAmount":` + amount + `,"purpose":"x"}`
		w, env := s.do(http.MethodPost, "/api/v1/cases", body, tok)
		s.Equal(http.StatusBadRequest, w.Code, amount)
		s.Require().NotNil(env.Error, amount)
		s.Equal(apperrors.CodeValidation, env.Error.Code, amount)
	}
	s.cases.AssertNotCalled(s.T(), "CreateCase", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestErrorMapping() {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", apperrors.NewNotFoundError("case not found"), http.StatusNotFound, apperrors.CodeNotFound, "case not found"},
		{"forbidden", apperrors.NewForbiddenError("not visible"), http.StatusForbidden, apperrors.CodeForbidden, "not visible"},
		{"conflict", apperrors.NewConflictError(apperrors.CodeInvalidTransition, "bad transition"), http.StatusConflict, apperrors.CodeInvalidTransition, "bad transition"},
		{"invalid state", apperrors.NewInvalidStateError(apperrors.CodeCategoryInactive, "inactive"), http.StatusConflict, apperrors.CodeCategoryInactive, "inactive"},
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest, apperrors.CodeValidation, "bad input"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, apperrors.CodeInternal, "Failed to get case"},
	}

	tok := s.token("user-1", domain.RoleRequester)
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.cases.On("GetCaseByID", mock.Anything, "case-1", actorID("user-1")).Return(nil, tt.err).Once()

			w, env := s.do(http.MethodGet, "/api/v1/cases/case-1", "", tok)
			s.Equal(tt.status, w.Code)
			s.False(env.Success)
			s.Equal("null", string(env.Data))
			s.Require().NotNil(env.Error)
			s.Equal(tt.code, env.Error.Code)
			s.Equal(tt.message, env.Error.Message)
		})
	}
}

func (s *HandlerTestSuite) TestErrorDetailsAreReturned() {
	err := apperrors.NewConflictError(apperrors.CodeDuplicate, "category already exists").
		WithDetails(map[string]any{"field": "name"})
	s.categories.On("CreateCategory", mock.Anything, mock.Anything, actorID("acct-1")).Return(nil, err).Once()

	body := `{"name":"Travel","type":"EXPENSE","accountCode":"5200"}`
	w, env := s.do(http.MethodPost, "/api/v1/categories", body, s.token("acct-1", domain.RoleAccounting))
	s.Equal(http.StatusConflict, w.Code)
	s.Require().NotNil(env.Error)
	s.Equal(apperrors.CodeDuplicate, env.Error.Code)
	s.Equal("name", env.Error.Details["field"])
}

func (s *HandlerTestSuite) TestCreateCategoryValidatesType() {
	body := `{"name":"Loans","type":"LIABILITY","accountCode":"2100"}`
	w, env := s.do(http.MethodPost, "/api/v1/categories", body, s.token("acct-1", domain.RoleAccounting))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeValidation, env.Error.Code)
	s.categories.AssertNotCalled(s.T(), "CreateCategory", mock.Anything, mock.Anything, mock.Anything)
}

func (s *HandlerTestSuite) TestApproveReturnsCaseAndVoucher() {
	approved := sampleCase("case-1", domain.CaseStatusApproved)
	doc := &domain.Document{
		DocumentID:  "doc-1",
		CaseID:      "case-1",
		DocType:     domain.DocumentPV,
		DocNo:       "PV-2503-0001",
		Amount:      approved.RequestedAmount,
		ArtifactURI: "mem://prt/documents/PV-2503-0001.xlsx",
		CreatedBy:   "fin-1",
	}
	s.cases.On("ApproveCase", mock.Anything, "case-1", actorID("fin-1")).Return(approved, doc, nil).Once()

	w, env := s.do(http.MethodPost, "/api/v1/cases/case-1/approve", "", s.token("fin-1", domain.RoleFinance))
	s.Require().Equal(http.StatusOK, w.Code)

	var resp dto.ApproveCaseResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal(domain.CaseStatusApproved, resp.Case.Status)
	s.Equal("PV-2503-0001", resp.Document.DocNo)
	s.Equal(domain.DocumentPV, resp.Document.DocType)
	s.cases.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestPayAcceptsEmptyBody() {
	s.cases.On("PayCase", mock.Anything, "case-1", dto.PayCaseRequest{}, actorID("tre-1")).
		Return(sampleCase("case-1", domain.CaseStatusPaid), nil).Once()

	w, _ := s.do(http.MethodPost, "/api/v1/cases/case-1/pay", "", s.token("tre-1", domain.RoleTreasury))
	s.Equal(http.StatusOK, w.Code)

	w, env := s.do(http.MethodPost, "/api/v1/cases/case-1/pay", `{"amount":"1.234"}`, s.token("tre-1", domain.RoleTreasury))
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.CodeValidation, env.Error.Code)
	s.cases.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestRejectRequiresReason() {
	w, _ := s.do(http.MethodPost, "/api/v1/cases/case-1/reject", `{}`, s.token("fin-1", domain.RoleFinance))
	s.Equal(http.StatusBadRequest, w.Code)

	rejected := sampleCase("case-1", domain.CaseStatusRejected)
	s.cases.On("RejectCase", mock.Anything, "case-1", dto.RejectCaseRequest{Reason: "Missing quote"}, actorID("fin-1")).
		Return(rejected, nil).Once()
	w, _ = s.do(http.MethodPost, "/api/v1/cases/case-1/reject", `{"reason":"Missing quote"}`, s.token("fin-1", domain.RoleFinance))
	s.Equal(http.StatusOK, w.Code)
	s.cases.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestCloseWithoutReceipt() {
	s.cases.On("CloseCase", mock.Anything, "case-1", actorID("user-1")).
		Return(nil, apperrors.NewConflictError(apperrors.CodeReceiptRequired, "receipt must be uploaded before closing")).Once()

	w, env := s.do(http.MethodPost, "/api/v1/cases/case-1/close", "", s.token("user-1", domain.RoleRequester))
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(apperrors.CodeReceiptRequired, env.Error.Code)
}

func (s *HandlerTestSuite) TestCreateJV() {
	doc := &domain.Document{DocumentID: "doc-9", CaseID: "case-1", DocType: domain.DocumentJV, DocNo: "JV-2503-0001", Amount: decimal.RequireFromString("350.00")}
	items := []domain.JVLineItem{
		{LineItemID: "li-1", JVDocumentID: "doc-9", RefCaseID: "case-1", Amount: decimal.RequireFromString("100.00")},
		{LineItemID: "li-2", JVDocumentID: "doc-9", RefCaseID: "case-2", Amount: decimal.RequireFromString("250.00")},
	}
	s.jv.On("CreateJV", mock.Anything,
		dto.CreateJVRequest{MainCaseID: "case-1", LinkedCaseIDs: []string{"case-2"}},
		actorID("acct-1"),
	).Return(doc, items, nil).Once()

	body := `{"mainCaseId":"case-1","linkedCaseIds":["case-2"]}`
	w, env := s.do(http.MethodPost, "/api/v1/documents/jv", body, s.token("acct-1", domain.RoleAccounting))
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp dto.DocumentDetailResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal("JV-2503-0001", resp.DocNo)
	s.Require().Len(resp.LineItems, 2)
	s.Equal("case-2", resp.LineItems[1].RefCaseID)

	w, _ = s.do(http.MethodPost, "/api/v1/documents/jv", `{"linkedCaseIds":["case-2"]}`, s.token("acct-1", domain.RoleAccounting))
	s.Equal(http.StatusBadRequest, w.Code)
	s.jv.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestUploadURL() {
	att := &domain.Attachment{AttachmentID: "att-1", CaseID: "case-1", Type: domain.AttachmentQuote, Filename: "quote.pdf"}
	signed := &domain.SignedURL{URL: "https://example.test/upload", Method: http.MethodPut, ExpiresAt: time.Now().Add(15 * time.Minute)}
	req := dto.UploadURLRequest{Type: domain.AttachmentQuote, Filename: "quote.pdf", ContentType: "application/pdf"}
	s.attach.On("CreateUploadURL", mock.Anything, "case-1", req, actorID("user-1")).Return(att, signed, nil).Once()

	body := `{"type":"QUOTE","filename":"quote.pdf","contentType":"application/pdf"}`
	w, env := s.do(http.MethodPost, "/api/v1/cases/case-1/attachments/upload-url", body, s.token("user-1", domain.RoleRequester))
	s.Require().Equal(http.StatusCreated, w.Code)

	var resp dto.SignedURLResponse
	s.Require().NoError(json.Unmarshal(env.Data, &resp))
	s.Equal(http.MethodPut, resp.SignedURL.Method)
	s.Equal("att-1", resp.Attachment.AttachmentID)
	s.attach.AssertExpectations(s.T())
}

func (s *HandlerTestSuite) TestAuditTrailRequiresEntity() {
	tok := s.token("adm-1", domain.RoleAdmin)
	w, _ := s.do(http.MethodGet, "/api/v1/audit-logs?entityType=case", "", tok)
	s.Equal(http.StatusBadRequest, w.Code)

	s.audit.On("ListAuditTrail", mock.Anything, domain.EntityCase, "case-1", 0, actorID("adm-1")).
		Return([]domain.AuditLog{{AuditID: "log-1", EntityType: domain.EntityCase, EntityID: "case-1", Action: domain.AuditSubmit}}, nil).Once()
	w, env := s.do(http.MethodGet, "/api/v1/audit-logs?entityType=case&entityId=case-1", "", tok)
	s.Require().Equal(http.StatusOK, w.Code)

	var logs []domain.AuditLog
	s.Require().NoError(json.Unmarshal(env.Data, &logs))
	s.Require().Len(logs, 1)
	s.Equal(domain.AuditSubmit, logs[0].Action)
	s.audit.AssertExpectations(s.T())
}
