package services

import (
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
	"github.com/chonlathan-cloud/ProjectPRT/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, uow portsrepo.UnitOfWork, store portssvc.ObjectStore, publisher portssvc.VoucherPublisher, options ...ServiceOption) *portssvc.ServiceContainer {
	base := newBaseService(options...)
	now := base.now

	// Shared building blocks; every service writes audit entries and the
	// workflow services allocate document numbers from the same counters.
	audit := NewAuditRecorder(now)
	vouchers := NewVoucherGenerator(NewSequenceAllocator(now), publisher, now)

	return &portssvc.ServiceContainer{
		Category:       NewCategoryService(uow, audit, options...),
		Case:           NewCaseService(uow, vouchers, audit, cfg.CompanyName, options...),
		JournalVoucher: NewJournalVoucherService(uow, vouchers, audit, cfg.CompanyName, options...),
		Document:       NewDocumentService(uow, store, cfg.SignedURLExpiration, options...),
		Payment:        NewPaymentService(uow, audit, options...),
		Attachment:     NewAttachmentService(uow, store, audit, cfg.SignedURLExpiration, options...),
		Audit:          NewAuditTrailService(uow, options...),
	}
}
