package services

import (
	"context"
	"fmt"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

const (
	defaultAuditLimit = 100
	maxAuditLimit     = 500
)

var auditEntityTypes = map[string]bool{
	domain.EntityCategory:   true,
	domain.EntityCase:       true,
	domain.EntityDocument:   true,
	domain.EntityAttachment: true,
	domain.EntityPayment:    true,
}

type auditTrailService struct {
	BaseService
	uow portsrepo.UnitOfWork
}

func NewAuditTrailService(uow portsrepo.UnitOfWork, options ...ServiceOption) portssvc.AuditTrailSvc {
	return &auditTrailService{BaseService: newBaseService(options...), uow: uow}
}

var _ portssvc.AuditTrailSvc = (*auditTrailService)(nil)

// ListAuditTrail returns the newest entries for an entity first.
func (s *auditTrailService) ListAuditTrail(ctx context.Context, entityType, entityID string, limit int, actor domain.Actor) ([]domain.AuditLog, error) {
	if err := s.Authorize(ctx, actor, domain.ActionViewAudit, nil); err != nil {
		return nil, err
	}
	if !auditEntityTypes[entityType] {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown entity type %s", entityType))
	}
	if entityID == "" {
		return nil, apperrors.NewValidationError("entityId is required")
	}
	switch {
	case limit <= 0:
		limit = defaultAuditLimit
	case limit > maxAuditLimit:
		limit = maxAuditLimit
	}

	var logs []domain.AuditLog
	err := s.uow.WithinTx(ctx, func(ctx context.Context, repos portsrepo.Repositories) error {
		var err error
		logs, err = repos.Audit.ListAuditLogs(ctx, entityType, entityID, limit)
		return err
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}
