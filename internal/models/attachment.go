package models

import "time"

// Attachment is a row of the attachments table.
type Attachment struct {
	AttachmentID string    `db:"attachment_id"`
	CaseID       string    `db:"case_id"`
	Type         string    `db:"type"`
	ObjectURI    string    `db:"object_uri"`
	Filename     string    `db:"filename"`
	ContentType  string    `db:"content_type"`
	UploadedBy   string    `db:"uploaded_by"`
	UploadedAt   time.Time `db:"uploaded_at"`
}
