package mapping

import (
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:  d.DocumentID,
		CaseID:      d.CaseID,
		DocType:     string(d.DocType),
		DocNo:       d.DocNo,
		Amount:      d.Amount,
		ArtifactURI: d.ArtifactURI,
		Description: d.Description,
		CreatedBy:   d.CreatedBy,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:  m.DocumentID,
		CaseID:      m.CaseID,
		DocType:     domain.DocumentType(m.DocType),
		DocNo:       m.DocNo,
		Amount:      m.Amount,
		ArtifactURI: m.ArtifactURI,
		Description: m.Description,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to a slice of domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

// ToModelJVLineItem converts a domain JVLineItem to a model JVLineItem
func ToModelJVLineItem(d domain.JVLineItem) models.JVLineItem {
	return models.JVLineItem{
		LineItemID:   d.LineItemID,
		JVDocumentID: d.JVDocumentID,
		RefCaseID:    d.RefCaseID,
		Amount:       d.Amount,
	}
}

// ToDomainJVLineItemSlice converts a slice of model JVLineItems to domain JVLineItems
func ToDomainJVLineItemSlice(ms []models.JVLineItem) []domain.JVLineItem {
	ds := make([]domain.JVLineItem, len(ms))
	for i, m := range ms {
		ds[i] = domain.JVLineItem{
			LineItemID:   m.LineItemID,
			JVDocumentID: m.JVDocumentID,
			RefCaseID:    m.RefCaseID,
			Amount:       m.Amount,
		}
	}
	return ds
}
