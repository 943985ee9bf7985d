package repositories

// Repositories holds all repository interfaces a unit of work exposes to
// services.
type Repositories struct {
	Categories  CategoryRepositoryFacade
	Cases       CaseRepositoryFacade
	Documents   DocumentRepositoryFacade
	Counters    CounterRepository
	Payments    PaymentRepositoryFacade
	Attachments AttachmentRepositoryFacade
	Audit       AuditRepositoryFacade
}
