package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/chonlathan-cloud/ProjectPRT/internal/adapters/storage/inmem"
	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
	"github.com/chonlathan-cloud/ProjectPRT/internal/platform/config"
	"github.com/chonlathan-cloud/ProjectPRT/internal/repositories/memory"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

var (
	requester  = domain.Actor{UserID: "req-1", Roles: []domain.Role{domain.RoleRequester}}
	requester2 = domain.Actor{UserID: "req-2", Roles: []domain.Role{domain.RoleRequester}}
	finance    = domain.Actor{UserID: "fin-1", Roles: []domain.Role{domain.RoleFinance}}
	accounting = domain.Actor{UserID: "acc-1", Roles: []domain.Role{domain.RoleAccounting}}
	treasury   = domain.Actor{UserID: "trs-1", Roles: []domain.Role{domain.RoleTreasury}}
	admin      = domain.Actor{UserID: "adm-1", Roles: []domain.Role{domain.RoleAdmin}}
)

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func moneyPtr(s string) *decimal.Decimal {
	d := money(s)
	return &d
}

func strPtr(s string) *string { return &s }

// recordingPublisher captures vouchers handed to the renderer.
type recordingPublisher struct {
	mu        sync.Mutex
	published []domain.VoucherData
}

func (p *recordingPublisher) ArtifactURI(doc domain.Document) string {
	return "mem://prt/vouchers/" + doc.DocNo + ".xlsx"
}

func (p *recordingPublisher) Publish(_ context.Context, data domain.VoucherData) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, data)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

var errInjected = errors.New("injected failure")

// failingCaseRepository fails the n-th UpdateCaseState call of a unit of work.
type failingCaseRepository struct {
	portsrepo.CaseRepositoryFacade
	failOn int
	calls  *int
}

func (r failingCaseRepository) UpdateCaseState(ctx context.Context, c domain.Case) error {
	*r.calls++
	if *r.calls == r.failOn {
		return errInjected
	}
	return r.CaseRepositoryFacade.UpdateCaseState(ctx, c)
}

type faultyUnitOfWork struct {
	inner  portsrepo.UnitOfWork
	failOn int
}

func (u *faultyUnitOfWork) WithinTx(ctx context.Context, fn portsrepo.TxFunc) error {
	calls := 0
	return u.inner.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		repos.Cases = failingCaseRepository{CaseRepositoryFacade: repos.Cases, failOn: u.failOn, calls: &calls}
		return fn(ctx, repos)
	})
}

// workflowSuite wires every service to a fresh in-memory store.
type workflowSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	objects   *inmem.Store
	publisher *recordingPublisher
	svc       *portssvc.ServiceContainer
	expense   *domain.Category
	revenue   *domain.Category
	asset     *domain.Category
	bank      *domain.Category
}

func (s *workflowSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore()
	s.objects = inmem.New("prt", "http://localhost:8080/objects")
	s.publisher = &recordingPublisher{}
	cfg := &config.Config{CompanyName: "PRT Co., Ltd.", SignedURLExpiration: 15 * time.Minute}
	s.svc = services.NewServiceContainer(cfg, s.store, s.objects, s.publisher, services.WithClock(clock))

	s.expense = s.createCategory("Office supplies", domain.CategoryExpense, "5100")
	s.revenue = s.createCategory("Service income", domain.CategoryRevenue, "4100")
	s.asset = s.createCategory("Equipment sale", domain.CategoryAsset, "1500")
	s.bank = s.createCategory("Bank account", domain.CategoryAsset, "1100")
}

func (s *workflowSuite) createCategory(name string, t domain.CategoryType, code string) *domain.Category {
	c, err := s.svc.Category.CreateCategory(s.ctx, dto.CreateCategoryRequest{Name: name, Type: t, AccountCode: code}, admin)
	s.Require().NoError(err)
	return c
}

func (s *workflowSuite) createCase(category *domain.Category, amount string, actor domain.Actor) *domain.Case {
	req := dto.CreateCaseRequest{
		CategoryID:      category.CategoryID,
		RequestedAmount: money(amount),
		Purpose:         "test purpose",
	}
	if category.Type.RequiresDepositAccount() {
		req.DepositAccountID = &s.bank.CategoryID
	}
	c, err := s.svc.Case.CreateCase(s.ctx, req, actor)
	s.Require().NoError(err)
	return c
}

func (s *workflowSuite) submittedCase(category *domain.Category, amount string) *domain.Case {
	c := s.createCase(category, amount, requester)
	c, err := s.svc.Case.SubmitCase(s.ctx, c.CaseID, requester)
	s.Require().NoError(err)
	return c
}

func (s *workflowSuite) approvedCase(amount string) (*domain.Case, *domain.Document) {
	c := s.submittedCase(s.expense, amount)
	c, doc, err := s.svc.Case.ApproveCase(s.ctx, c.CaseID, finance)
	s.Require().NoError(err)
	return c, doc
}

func (s *workflowSuite) paidCase(amount string) *domain.Case {
	c, _ := s.approvedCase(amount)
	c, err := s.svc.Case.PayCase(s.ctx, c.CaseID, dto.PayCaseRequest{}, treasury)
	s.Require().NoError(err)
	return c
}

func (s *workflowSuite) caseStatus(caseID string) domain.CaseStatus {
	c, err := s.svc.Case.GetCaseByID(s.ctx, caseID, admin)
	s.Require().NoError(err)
	return c.Status
}

func (s *workflowSuite) requireAppError(err error, kind error, code string) {
	s.Require().Error(err)
	s.ErrorIs(err, kind)
	if code != "" {
		s.Equal(code, apperrors.CodeOf(err))
	}
}
