package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	createdAt := time.Date(2025, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeCursor(createdAt, "5f0c7b7e-1111-4c1e-9a55-0d1f3f7f4a10")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedAt, decodedID, err := DecodeCursor(token)
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt), "Created at time should match after decode")
	assert.Equal(t, "5f0c7b7e-1111-4c1e-9a55-0d1f3f7f4a10", decodedID)
}

func TestEncodeCursorNormalisesToUTC(t *testing.T) {
	bangkok := time.FixedZone("ICT", 7*60*60)
	createdAt := time.Date(2025, 3, 15, 21, 0, 0, 0, bangkok)

	decodedAt, _, err := DecodeCursor(EncodeCursor(createdAt, "id"))
	assert.NoError(t, err)
	assert.True(t, createdAt.Equal(decodedAt))
	assert.Equal(t, time.UTC, decodedAt.Location())
}

func TestDecodeCursorErrors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"not base64", "%%%"},
		{"missing id", EncodeMultiFieldToken("2025-03-15T14:30:45Z")},
		{"bad time", EncodeMultiFieldToken("yesterday", "id")},
		{"too many fields", EncodeMultiFieldToken("2025-03-15T14:30:45Z", "id", "extra")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeCursor(tt.token)
			assert.Error(t, err)
		})
	}
}
