package domain

import "time"

// AttachmentType classifies supporting files.
type AttachmentType string

const (
	AttachmentQuote   AttachmentType = "QUOTE"
	AttachmentReceipt AttachmentType = "RECEIPT"
	AttachmentOther   AttachmentType = "OTHER"
)

func (t AttachmentType) IsValid() bool {
	switch t {
	case AttachmentQuote, AttachmentReceipt, AttachmentOther:
		return true
	}
	return false
}

// Attachment is a file uploaded against a case. The row is created before
// the client uploads the bytes to the object store.
type Attachment struct {
	AttachmentID string         `json:"attachmentId"`
	CaseID       string         `json:"caseId"`
	Type         AttachmentType `json:"type"`
	ObjectURI    string         `json:"objectUri"`
	Filename     string         `json:"filename"`
	ContentType  string         `json:"contentType"`
	UploadedBy   string         `json:"uploadedBy"`
	UploadedAt   time.Time      `json:"uploadedAt"`
}

// SignedURL is a time limited link to an object.
type SignedURL struct {
	URL       string    `json:"url"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expiresAt"`
}
