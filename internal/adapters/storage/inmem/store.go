// Package inmem is an ObjectStore kept in process memory. It backs the
// memory storage driver and tests; signed URLs point at a local base URL
// and are not verifiable.
package inmem

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chonlathan-cloud/ProjectPRT/internal/core/domain"
	portssvc "github.com/chonlathan-cloud/ProjectPRT/internal/core/ports/services"
)

const scheme = "mem://"

type object struct {
	contentType string
	data        []byte
}

// Store holds objects of a single bucket.
type Store struct {
	mu      sync.RWMutex
	bucket  string
	baseURL string
	objects map[string]object
	now     func() time.Time
}

// New creates a store for bucket. Signed URLs are rooted at baseURL.
func New(bucket, baseURL string) *Store {
	return &Store{
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: map[string]object{},
		now:     time.Now,
	}
}

var _ portssvc.ObjectStore = (*Store)(nil)

func (s *Store) ObjectURI(objectName string) string {
	return scheme + s.bucket + "/" + strings.TrimLeft(objectName, "/")
}

func (s *Store) Put(_ context.Context, objectName, contentType string, data []byte) (string, error) {
	uri := s.ObjectURI(objectName)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[uri] = object{contentType: contentType, data: append([]byte(nil), data...)}
	return uri, nil
}

// Get returns a stored object.
func (s *Store) Get(objectURI string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[objectURI]
	if !ok {
		return nil, "", false
	}
	return obj.data, obj.contentType, true
}

func (s *Store) SignedURL(_ context.Context, objectURI, method, contentType string, ttl time.Duration) (*domain.SignedURL, error) {
	prefix := scheme + s.bucket + "/"
	if !strings.HasPrefix(objectURI, prefix) {
		return nil, fmt.Errorf("object %s is not in bucket %s", objectURI, s.bucket)
	}
	if method != http.MethodGet && method != http.MethodPut {
		return nil, fmt.Errorf("unsupported signed URL method %s", method)
	}

	expiresAt := s.now().UTC().Add(ttl)
	q := url.Values{}
	q.Set("method", method)
	q.Set("expires", fmt.Sprint(expiresAt.Unix()))
	if contentType != "" {
		q.Set("contentType", contentType)
	}
	return &domain.SignedURL{
		URL:       fmt.Sprintf("%s/%s/%s?%s", s.baseURL, s.bucket, strings.TrimPrefix(objectURI, prefix), q.Encode()),
		Method:    method,
		ExpiresAt: expiresAt,
	}, nil
}
