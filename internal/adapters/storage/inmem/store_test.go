package inmem

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutGetAndSign(t *testing.T) {
	s := New("prt", "http://localhost:8080/objects/")
	s.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	uri, err := s.Put(context.Background(), "vouchers/PV-2503-0001.xlsx", "application/octet-stream", []byte("xlsx"))
	require.NoError(t, err)
	assert.Equal(t, "mem://prt/vouchers/PV-2503-0001.xlsx", uri)
	assert.Equal(t, uri, s.ObjectURI("vouchers/PV-2503-0001.xlsx"))

	data, ct, ok := s.Get(uri)
	require.True(t, ok)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "application/octet-stream", ct)

	signed, err := s.SignedURL(context.Background(), uri, http.MethodGet, "", 15*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, signed.Method)
	assert.Contains(t, signed.URL, "http://localhost:8080/objects/prt/vouchers/PV-2503-0001.xlsx?")
	assert.Equal(t, time.Date(2025, 3, 10, 9, 15, 0, 0, time.UTC), signed.ExpiresAt)
}

func TestStore_SignedURLRejectsForeignObjects(t *testing.T) {
	s := New("prt", "http://localhost")
	_, err := s.SignedURL(context.Background(), "gs://other/x", http.MethodGet, "", time.Minute)
	assert.Error(t, err)

	_, err = s.SignedURL(context.Background(), s.ObjectURI("x"), http.MethodDelete, "", time.Minute)
	assert.Error(t, err)
}
