package services_test

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

type CaseServiceSuite struct {
	workflowSuite
}

func TestCaseServiceSuite(t *testing.T) {
	suite.Run(t, new(CaseServiceSuite))
}

func (s *CaseServiceSuite) TestExpenseHappyPath() {
	c := s.createCase(s.expense, "1500.00", requester)
	s.Equal(domain.CaseStatusDraft, c.Status)
	s.Equal("5100", c.AccountCode)
	s.Equal(domain.FundingOperating, c.FundingType)
	s.Regexp(`^CAS-250310-[0-9A-F]{6}$`, c.CaseNo)

	c, err := s.svc.Case.SubmitCase(s.ctx, c.CaseID, requester)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusSubmitted, c.Status)

	c, doc, err := s.svc.Case.ApproveCase(s.ctx, c.CaseID, finance)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusApproved, c.Status)
	s.Equal(domain.DocumentPV, doc.DocType)
	s.Equal("PV-2503-0001", doc.DocNo)
	s.True(doc.Amount.Equal(money("1500.00")))
	s.Equal(c.CaseID, doc.CaseID)
	s.Equal("mem://prt/vouchers/PV-2503-0001.xlsx", doc.ArtifactURI)
	s.Equal(1, s.publisher.count())

	c, err = s.svc.Case.PayCase(s.ctx, c.CaseID, dto.PayCaseRequest{Amount: moneyPtr("1500.00"), ReferenceNo: strPtr("TRF-1")}, treasury)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusPaid, c.Status)

	c, err = s.svc.Case.UploadReceipt(s.ctx, c.CaseID, dto.UploadReceiptRequest{SettledAmount: moneyPtr("1450.00")}, requester)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusPaid, c.Status)
	s.True(c.IsReceiptUploaded)
	s.Require().NotNil(c.SettledAmount)
	s.True(c.SettledAmount.Equal(money("1450.00")))

	c, err = s.svc.Case.CloseCase(s.ctx, c.CaseID, requester)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusClosed, c.Status)

	payments, err := s.svc.Payment.ListPayments(s.ctx, c.CaseID, requester)
	s.Require().NoError(err)
	s.Require().Len(payments, 1)
	s.Equal(domain.PaymentDisburse, payments[0].Type)

	trail, err := s.svc.Audit.ListAuditTrail(s.ctx, domain.EntityCase, c.CaseID, 0, admin)
	s.Require().NoError(err)
	actions := make([]string, len(trail))
	for i, entry := range trail {
		actions[i] = entry.Action
	}
	s.Equal([]string{
		domain.AuditClose, domain.AuditUploadReceipt, domain.AuditPay,
		domain.AuditApprove, domain.AuditSubmit, domain.AuditCreate,
	}, actions)
	s.Equal("PV-2503-0001", trail[3].Details["docNo"])
}

func (s *CaseServiceSuite) TestRevenueApprovalClosesCase() {
	c := s.submittedCase(s.revenue, "800.00")

	c, doc, err := s.svc.Case.ApproveCase(s.ctx, c.CaseID, accounting)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusClosed, c.Status)
	s.Equal(domain.DocumentRV, doc.DocType)
	s.Equal("RV-2503-0001", doc.DocNo)

	_, err = s.svc.Case.PayCase(s.ctx, c.CaseID, dto.PayCaseRequest{}, treasury)
	s.requireAppError(err, apperrors.ErrConflict, apperrors.CodeInvalidTransition)
}

func (s *CaseServiceSuite) TestAssetApprovalUsesRV() {
	c := s.submittedCase(s.asset, "20000.00")
	_, doc, err := s.svc.Case.ApproveCase(s.ctx, c.CaseID, finance)
	s.Require().NoError(err)
	s.Equal(domain.DocumentRV, doc.DocType)
}

func (s *CaseServiceSuite) TestRevenueWithoutDepositAccountIsRejected() {
	_, err := s.svc.Case.CreateCase(s.ctx, dto.CreateCaseRequest{
		CategoryID:       s.revenue.CategoryID,
		RequestedAmount:  money("100.00"),
		Purpose:          "sale",
		DepositAccountID: strPtr("   "),
	}, requester)
	s.requireAppError(err, apperrors.ErrValidation, apperrors.CodeValidation)

	page, err := s.svc.Case.ListCases(s.ctx, dto.ListCasesParams{Limit: 20}, admin)
	s.Require().NoError(err)
	s.Empty(page.Cases)
}

func (s *CaseServiceSuite) TestDepositAccountMustBeActiveAsset() {
	create := func(depositID string) error {
		_, err := s.svc.Case.CreateCase(s.ctx, dto.CreateCaseRequest{
			CategoryID:       s.revenue.CategoryID,
			RequestedAmount:  money("100.00"),
			Purpose:          "sale",
			DepositAccountID: strPtr(depositID),
		}, requester)
		return err
	}

	s.requireAppError(create(s.expense.CategoryID), apperrors.ErrValidation, apperrors.CodeValidation)
	s.requireAppError(create("missing"), apperrors.ErrValidation, apperrors.CodeValidation)

	_, err := s.svc.Category.UpdateCategory(s.ctx, s.bank.CategoryID, dto.UpdateCategoryRequest{IsActive: new(bool)}, admin)
	s.Require().NoError(err)
	s.requireAppError(create(s.bank.CategoryID), apperrors.ErrValidation, apperrors.CodeValidation)

	s.Require().NoError(create(s.asset.CategoryID))
}

func (s *CaseServiceSuite) TestCreateCaseValidation() {
	tests := []struct {
		name   string
		req    dto.CreateCaseRequest
		kind   error
		code   string
		caller domain.Actor
	}{
		{"zero amount", dto.CreateCaseRequest{CategoryID: s.expense.CategoryID, RequestedAmount: money("0"), Purpose: "x"}, apperrors.ErrValidation, apperrors.CodeValidation, requester},
		{"negative amount", dto.CreateCaseRequest{CategoryID: s.expense.CategoryID, RequestedAmount: money("-5"), Purpose: "x"}, apperrors.ErrValidation, apperrors.CodeValidation, requester},
		{"three decimals", dto.CreateCaseRequest{CategoryID: s.expense.CategoryID, RequestedAmount: money("1.005"), Purpose: "x"}, apperrors.ErrValidation, apperrors.CodeValidation, requester},
		{"blank purpose", dto.CreateCaseRequest{CategoryID: s.expense.CategoryID, RequestedAmount: money("1"), Purpose: " "}, apperrors.ErrValidation, apperrors.CodeValidation, requester},
		{"unknown category", dto.CreateCaseRequest{CategoryID: "nope", RequestedAmount: money("1"), Purpose: "x"}, apperrors.ErrNotFound, apperrors.CodeNotFound, requester},
		{"not a requester", dto.CreateCaseRequest{CategoryID: s.expense.CategoryID, RequestedAmount: money("1"), Purpose: "x"}, apperrors.ErrForbidden, apperrors.CodeForbidden, finance},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.Case.CreateCase(s.ctx, tt.req, tt.caller)
			s.requireAppError(err, tt.kind, tt.code)
		})
	}
}

func (s *CaseServiceSuite) TestInactiveCategoryIsRejected() {
	_, err := s.svc.Category.UpdateCategory(s.ctx, s.expense.CategoryID, dto.UpdateCategoryRequest{IsActive: new(bool)}, admin)
	s.Require().NoError(err)

	_, err = s.svc.Case.CreateCase(s.ctx, dto.CreateCaseRequest{
		CategoryID:      s.expense.CategoryID,
		RequestedAmount: money("10.00"),
		Purpose:         "pens",
	}, requester)
	s.requireAppError(err, apperrors.ErrInvalidState, apperrors.CodeCategoryInactive)
}

func (s *CaseServiceSuite) TestReceiptGate() {
	c := s.paidCase("300.00")

	_, err := s.svc.Case.CloseCase(s.ctx, c.CaseID, requester)
	s.requireAppError(err, apperrors.ErrConflict, apperrors.CodeReceiptRequired)
	s.Equal(domain.CaseStatusPaid, s.caseStatus(c.CaseID))

	_, err = s.svc.Case.UploadReceipt(s.ctx, c.CaseID, dto.UploadReceiptRequest{}, requester)
	s.Require().NoError(err)

	c, err = s.svc.Case.CloseCase(s.ctx, c.CaseID, admin)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusClosed, c.Status)
}

func (s *CaseServiceSuite) TestApproveTwiceConflicts() {
	c, _ := s.approvedCase("100.00")

	_, _, err := s.svc.Case.ApproveCase(s.ctx, c.CaseID, finance)
	s.requireAppError(err, apperrors.ErrConflict, apperrors.CodeInvalidTransition)

	var appErr *apperrors.AppError
	s.Require().ErrorAs(err, &appErr)
	s.Equal(string(domain.CaseStatusApproved), appErr.Details["currentStatus"])
	s.Equal([]string{string(domain.CaseStatusSubmitted)}, appErr.Details["expectedStatuses"])

	docs, err := s.svc.Document.ListCaseDocuments(s.ctx, c.CaseID, finance)
	s.Require().NoError(err)
	s.Len(docs, 1, "a case owns at most one PV")
}

func (s *CaseServiceSuite) TestGuardsOrder() {
	c := s.submittedCase(s.expense, "100.00")

	_, _, err := s.svc.Case.ApproveCase(s.ctx, "missing", finance)
	s.requireAppError(err, apperrors.ErrNotFound, apperrors.CodeNotFound)

	_, _, err = s.svc.Case.ApproveCase(s.ctx, c.CaseID, requester)
	s.requireAppError(err, apperrors.ErrForbidden, apperrors.CodeForbidden)

	_, err = s.svc.Case.SubmitCase(s.ctx, c.CaseID, requester2)
	s.requireAppError(err, apperrors.ErrForbidden, apperrors.CodeForbidden)

	_, err = s.svc.Case.SubmitCase(s.ctx, c.CaseID, requester)
	s.requireAppError(err, apperrors.ErrConflict, apperrors.CodeInvalidTransition)
}

func (s *CaseServiceSuite) TestVisibility() {
	c := s.createCase(s.expense, "50.00", requester)

	_, err := s.svc.Case.GetCaseByID(s.ctx, c.CaseID, requester2)
	s.requireAppError(err, apperrors.ErrForbidden, "")

	for _, actor := range []domain.Actor{requester, finance, accounting, treasury, admin} {
		got, err := s.svc.Case.GetCaseByID(s.ctx, c.CaseID, actor)
		s.Require().NoError(err)
		s.Equal(c.CaseID, got.CaseID)
	}
}

func (s *CaseServiceSuite) TestRejectRecordsReason() {
	c := s.submittedCase(s.expense, "100.00")

	_, err := s.svc.Case.RejectCase(s.ctx, c.CaseID, dto.RejectCaseRequest{Reason: "  "}, finance)
	s.requireAppError(err, apperrors.ErrValidation, "")

	c, err = s.svc.Case.RejectCase(s.ctx, c.CaseID, dto.RejectCaseRequest{Reason: "no budget"}, finance)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusRejected, c.Status)
	s.Require().NotNil(c.RejectReason)
	s.Equal("no budget", *c.RejectReason)
	s.Require().NotNil(c.RejectedAt)
	s.Equal(fixedNow, *c.RejectedAt)

	_, err = s.svc.Case.CancelCase(s.ctx, c.CaseID, admin)
	s.requireAppError(err, apperrors.ErrConflict, apperrors.CodeInvalidTransition)
}

func (s *CaseServiceSuite) TestCancel() {
	c := s.createCase(s.expense, "100.00", requester)

	_, err := s.svc.Case.CancelCase(s.ctx, c.CaseID, requester)
	s.requireAppError(err, apperrors.ErrForbidden, "")

	c, err = s.svc.Case.CancelCase(s.ctx, c.CaseID, admin)
	s.Require().NoError(err)
	s.Equal(domain.CaseStatusCancelled, c.Status)

	_, err = s.svc.Case.SubmitCase(s.ctx, c.CaseID, requester)
	s.requireAppError(err, apperrors.ErrConflict, apperrors.CodeInvalidTransition)
}

func (s *CaseServiceSuite) TestPayValidatesAmount() {
	c, _ := s.approvedCase("100.00")

	_, err := s.svc.Case.PayCase(s.ctx, c.CaseID, dto.PayCaseRequest{Amount: moneyPtr("0")}, treasury)
	s.requireAppError(err, apperrors.ErrValidation, "")

	_, err = s.svc.Case.PayCase(s.ctx, c.CaseID, dto.PayCaseRequest{}, finance)
	s.requireAppError(err, apperrors.ErrForbidden, "")
	s.Equal(domain.CaseStatusApproved, s.caseStatus(c.CaseID))
}

func (s *CaseServiceSuite) TestConcurrentApprovalsAllocateContiguousNumbers() {
	const n = 20
	ids := make([]string, n)
	for i := range ids {
		ids[i] = s.submittedCase(s.expense, "10.00").CaseID
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers []string
		errs    []error
	)
	for _, id := range ids {
		wg.Add(1)
		go func(caseID string) {
			defer wg.Done()
			_, doc, err := s.svc.Case.ApproveCase(s.ctx, caseID, finance)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers = append(numbers, doc.DocNo)
		}(id)
	}
	wg.Wait()

	s.Require().Empty(errs)
	sort.Strings(numbers)
	expected := make([]string, n)
	for i := range expected {
		expected[i] = fmt.Sprintf("PV-2503-%04d", i+1)
	}
	s.Equal(expected, numbers)
}

func (s *CaseServiceSuite) TestListCasesVisibilityAndPagination() {
	for i := 0; i < 3; i++ {
		s.createCase(s.expense, "10.00", requester)
	}
	s.createCase(s.expense, "10.00", requester2)

	own, err := s.svc.Case.ListCases(s.ctx, dto.ListCasesParams{Limit: 20}, requester2)
	s.Require().NoError(err)
	s.Len(own.Cases, 1)
	s.Nil(own.NextToken)

	seen := map[string]bool{}
	params := dto.ListCasesParams{Limit: 3}
	first, err := s.svc.Case.ListCases(s.ctx, params, finance)
	s.Require().NoError(err)
	s.Len(first.Cases, 3)
	s.Require().NotNil(first.NextToken)
	for _, c := range first.Cases {
		seen[c.CaseID] = true
	}

	params.NextToken = *first.NextToken
	second, err := s.svc.Case.ListCases(s.ctx, params, finance)
	s.Require().NoError(err)
	s.Len(second.Cases, 1)
	s.Nil(second.NextToken)
	s.False(seen[second.Cases[0].CaseID])

	_, err = s.svc.Case.ListCases(s.ctx, dto.ListCasesParams{Limit: 3, NextToken: "%%%"}, finance)
	s.requireAppError(err, apperrors.ErrValidation, "")

	drafts, err := s.svc.Case.ListCases(s.ctx, dto.ListCasesParams{Limit: 20, Status: string(domain.CaseStatusSubmitted)}, finance)
	s.Require().NoError(err)
	s.Empty(drafts.Cases)
}
