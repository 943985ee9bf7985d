package dto

import (
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// UploadURLRequest asks for a signed URL to upload a supporting file.
type UploadURLRequest struct {
	Type        domain.AttachmentType `json:"type" binding:"required,oneof=QUOTE RECEIPT OTHER"`
	Filename    string                `json:"filename" binding:"required,max=255"`
	ContentType string                `json:"contentType" binding:"required"`
}

// DownloadURLParams selects an attachment either by id or by latest of a type.
type DownloadURLParams struct {
	AttachmentID string `form:"attachmentId"`
	Type         string `form:"type" binding:"omitempty,oneof=QUOTE RECEIPT OTHER"`
}

// SignedURLResponse returns an attachment together with its signed URL.
type SignedURLResponse struct {
	Attachment *domain.Attachment `json:"attachment,omitempty"`
	SignedURL  domain.SignedURL   `json:"signedUrl"`
}
