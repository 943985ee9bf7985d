// Package gcs stores objects in a Google Cloud Storage bucket and issues V4
// signed URLs with the service account key.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

const (
	scheme       = "gs://"
	maxSignedTTL = 7 * 24 * time.Hour
)

// Signer holds the service account identity used for V4 signatures.
type Signer struct {
	Email      string
	PrivateKey []byte
}

// Store is a portssvc.ObjectStore backed by one bucket.
type Store struct {
	client   *storage.Client
	bucket   string
	basePath string
	signer   *Signer
	now      func() time.Time
}

var _ portssvc.ObjectStore = (*Store)(nil)

// New creates a Store using the service account key at credentialsFile. An
// empty path falls back to application default credentials, in which case
// SignedURL is unavailable.
func New(ctx context.Context, bucket, basePath, credentialsFile string) (*Store, error) {
	if bucket == "" {
		return nil, errors.New("gcs: bucket name is required")
	}

	var opts []option.ClientOption
	var signer *Signer
	if credentialsFile != "" {
		raw, err := os.ReadFile(credentialsFile)
		if err != nil {
			return nil, fmt.Errorf("gcs: failed to read credentials: %w", err)
		}
		signer, err = SignerFromJSON(raw)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithCredentialsJSON(raw))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: failed to create storage client: %w", err)
	}
	return NewWithClient(client, bucket, basePath, signer), nil
}

// NewWithClient wraps an existing storage client.
func NewWithClient(client *storage.Client, bucket, basePath string, signer *Signer) *Store {
	return &Store{
		client:   client,
		bucket:   bucket,
		basePath: strings.Trim(basePath, "/"),
		signer:   signer,
		now:      time.Now,
	}
}

// SignerFromJSON extracts the client email and private key of a service
// account key file.
func SignerFromJSON(raw []byte) (*Signer, error) {
	conf, err := google.JWTConfigFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("gcs: invalid service account key: %w", err)
	}
	return &Signer{Email: conf.Email, PrivateKey: conf.PrivateKey}, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) objectName(name string) string {
	name = strings.TrimLeft(name, "/")
	if s.basePath == "" {
		return name
	}
	return s.basePath + "/" + name
}

func (s *Store) ObjectURI(objectName string) string {
	return scheme + s.bucket + "/" + s.objectName(objectName)
}

func (s *Store) Put(ctx context.Context, objectName, contentType string, data []byte) (string, error) {
	name := s.objectName(objectName)
	w := s.client.Bucket(s.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: failed to upload %s: %w", name, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: failed to upload %s: %w", name, err)
	}
	return scheme + s.bucket + "/" + name, nil
}

// SignedURL produces a V4 query-string signed URL. For PUT the content type
// is part of the signature and the uploader must send the same header.
func (s *Store) SignedURL(_ context.Context, objectURI, method, contentType string, ttl time.Duration) (*domain.SignedURL, error) {
	if s.signer == nil {
		return nil, errors.New("gcs: no service account key configured for signing")
	}
	prefix := scheme + s.bucket + "/"
	if !strings.HasPrefix(objectURI, prefix) {
		return nil, fmt.Errorf("gcs: object %s is not in bucket %s", objectURI, s.bucket)
	}
	if method != http.MethodGet && method != http.MethodPut {
		return nil, fmt.Errorf("gcs: unsupported signed URL method %s", method)
	}
	if ttl <= 0 || ttl > maxSignedTTL {
		return nil, fmt.Errorf("gcs: signed URL lifetime %s out of range", ttl)
	}

	expires := s.now().UTC().Add(ttl)
	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		GoogleAccessID: s.signer.Email,
		PrivateKey:     s.signer.PrivateKey,
		Method:         method,
		Expires:        expires,
	}
	if method == http.MethodPut {
		opts.ContentType = contentType
	}

	u, err := storage.SignedURL(s.bucket, strings.TrimPrefix(objectURI, prefix), opts)
	if err != nil {
		return nil, fmt.Errorf("gcs: failed to sign URL: %w", err)
	}
	return &domain.SignedURL{URL: u, Method: method, ExpiresAt: expires}, nil
}
