package services

import (
	"context"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
)

// IdentityProvider resolves a bearer token to the calling actor.
type IdentityProvider interface {
	ResolveToken(ctx context.Context, token string) (domain.Actor, error)
}

// ObjectStore stores rendered artifacts and issues time limited URLs.
type ObjectStore interface {
	// ObjectURI returns the canonical URI of objectName without touching the store.
	ObjectURI(objectName string) string

	// Put uploads data and returns its URI.
	Put(ctx context.Context, objectName, contentType string, data []byte) (string, error)

	// SignedURL returns a URL allowing method (GET or PUT) on objectURI until ttl elapses.
	SignedURL(ctx context.Context, objectURI, method, contentType string, ttl time.Duration) (*domain.SignedURL, error)
}

// DocumentRenderer turns voucher data into a printable artifact.
type DocumentRenderer interface {
	Render(ctx context.Context, data domain.VoucherData) ([]byte, error)
	ContentType() string
	FileExtension() string
}

// VoucherPublisher hands committed vouchers to the renderer. Publish must
// never block the caller on rendering.
type VoucherPublisher interface {
	// ArtifactURI returns where the rendered artifact of doc will be stored.
	ArtifactURI(doc domain.Document) string
	Publish(ctx context.Context, data domain.VoucherData)
}
