package repositories

import (
	"context"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// CaseReader defines read operations for case data
type CaseReader interface {
	// FindCaseByID retrieves a case without locking it.
	FindCaseByID(ctx context.Context, caseID string) (*domain.Case, error)

	// ListCases retrieves cases newest first, honouring the filter's cursor and limit.
	ListCases(ctx context.Context, filter domain.CaseFilter) ([]domain.Case, error)
}

// CaseLocker defines row locking reads. Locks are held until the enclosing
// unit of work ends.
type CaseLocker interface {
	// FindCaseByIDForUpdate retrieves a case and locks its row.
	FindCaseByIDForUpdate(ctx context.Context, caseID string) (*domain.Case, error)

	// FindCasesByIDsForUpdate locks the rows in ascending id order so that
	// concurrent callers sharing a case cannot deadlock. Missing ids are
	// simply absent from the result.
	FindCasesByIDsForUpdate(ctx context.Context, caseIDs []string) (map[string]domain.Case, error)
}

// CaseWriter defines write operations for case data
type CaseWriter interface {
	SaveCase(ctx context.Context, c domain.Case) error

	// UpdateCaseState persists the mutable workflow fields of a case: status,
	// receipt flag, settled amount, rejection details and last-updated audit fields.
	UpdateCaseState(ctx context.Context, c domain.Case) error
}

// CaseRepositoryFacade combines all case-related repository interfaces
type CaseRepositoryFacade interface {
	CaseReader
	CaseLocker
	CaseWriter
}
