package services_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/chonlathan-cloud/ProjectPRT/internal/apperrors"
	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	"github.com/chonlathan-cloud/ProjectPRT/internal/dto"
)

type AttachmentServiceSuite struct {
	workflowSuite
}

func TestAttachmentServiceSuite(t *testing.T) {
	suite.Run(t, new(AttachmentServiceSuite))
}

func (s *AttachmentServiceSuite) TestUploadThenDownloadLatest() {
	c := s.createCase(s.expense, "100.00", requester)

	att, signed, err := s.svc.Attachment.CreateUploadURL(s.ctx, c.CaseID, dto.UploadURLRequest{
		Type:        domain.AttachmentQuote,
		Filename:    `C:\quotes\quote.pdf`,
		ContentType: "application/pdf",
	}, requester)
	s.Require().NoError(err)
	s.Equal("quote.pdf", att.Filename)
	s.Equal("mem://prt/cases/"+c.CaseID+"/attachments/"+att.AttachmentID+"/quote.pdf", att.ObjectURI)
	s.Equal(http.MethodPut, signed.Method)
	s.True(strings.Contains(signed.URL, "contentType=application%2Fpdf"))

	got, signed, err := s.svc.Attachment.CreateDownloadURL(s.ctx, c.CaseID, dto.DownloadURLParams{Type: string(domain.AttachmentQuote)}, finance)
	s.Require().NoError(err)
	s.Equal(att.AttachmentID, got.AttachmentID)
	s.Equal(http.MethodGet, signed.Method)

	got, _, err = s.svc.Attachment.CreateDownloadURL(s.ctx, c.CaseID, dto.DownloadURLParams{AttachmentID: att.AttachmentID}, requester)
	s.Require().NoError(err)
	s.Equal(att.AttachmentID, got.AttachmentID)

	trail, err := s.svc.Audit.ListAuditTrail(s.ctx, domain.EntityAttachment, att.AttachmentID, 0, admin)
	s.Require().NoError(err)
	s.Len(trail, 3)
}

func (s *AttachmentServiceSuite) TestGuards() {
	c := s.createCase(s.expense, "100.00", requester)
	req := dto.UploadURLRequest{Type: domain.AttachmentReceipt, Filename: "r.jpg", ContentType: "image/jpeg"}

	_, _, err := s.svc.Attachment.CreateUploadURL(s.ctx, c.CaseID, req, requester2)
	s.requireAppError(err, apperrors.ErrForbidden, "")

	_, _, err = s.svc.Attachment.CreateUploadURL(s.ctx, c.CaseID, req, finance)
	s.requireAppError(err, apperrors.ErrForbidden, "")

	_, _, err = s.svc.Attachment.CreateUploadURL(s.ctx, c.CaseID, dto.UploadURLRequest{Type: domain.AttachmentReceipt, Filename: " ", ContentType: "image/jpeg"}, requester)
	s.requireAppError(err, apperrors.ErrValidation, "")

	_, _, err = s.svc.Attachment.CreateDownloadURL(s.ctx, c.CaseID, dto.DownloadURLParams{}, requester)
	s.requireAppError(err, apperrors.ErrValidation, "")

	_, _, err = s.svc.Attachment.CreateDownloadURL(s.ctx, c.CaseID, dto.DownloadURLParams{Type: string(domain.AttachmentReceipt)}, requester)
	s.requireAppError(err, apperrors.ErrNotFound, "")

	other := s.createCase(s.expense, "5.00", requester)
	att, _, err := s.svc.Attachment.CreateUploadURL(s.ctx, other.CaseID, req, requester)
	s.Require().NoError(err)
	_, _, err = s.svc.Attachment.CreateDownloadURL(s.ctx, c.CaseID, dto.DownloadURLParams{AttachmentID: att.AttachmentID}, requester)
	s.requireAppError(err, apperrors.ErrNotFound, "")
}
