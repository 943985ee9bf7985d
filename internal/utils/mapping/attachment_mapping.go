package mapping

import (
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/models"
)

// ToModelAttachment converts a domain Attachment to a model Attachment
func ToModelAttachment(d domain.Attachment) models.Attachment {
	return models.Attachment{
		AttachmentID: d.AttachmentID,
		CaseID:       d.CaseID,
		Type:         string(d.Type),
		ObjectURI:    d.ObjectURI,
		Filename:     d.Filename,
		ContentType:  d.ContentType,
		UploadedBy:   d.UploadedBy,
		UploadedAt:   d.UploadedAt,
	}
}

// ToDomainAttachment converts a model Attachment to a domain Attachment
func ToDomainAttachment(m models.Attachment) domain.Attachment {
	return domain.Attachment{
		AttachmentID: m.AttachmentID,
		CaseID:       m.CaseID,
		Type:         domain.AttachmentType(m.Type),
		ObjectURI:    m.ObjectURI,
		Filename:     m.Filename,
		ContentType:  m.ContentType,
		UploadedBy:   m.UploadedBy,
		UploadedAt:   m.UploadedAt,
	}
}
