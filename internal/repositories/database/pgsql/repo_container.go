package pgsql

import (
	portsrepo "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/repositories"
)

// newRepositories binds every repository to q, normally the transaction of
// the current unit of work.
func newRepositories(q querier) portsrepo.Repositories {
	return portsrepo.Repositories{
		Categories:  newPgxCategoryRepository(q),
		Cases:       newPgxCaseRepository(q),
		Documents:   newPgxDocumentRepository(q),
		Counters:    newPgxCounterRepository(q),
		Payments:    newPgxPaymentRepository(q),
		Attachments: newPgxAttachmentRepository(q),
		Audit:       newPgxAuditRepository(q),
	}
}
