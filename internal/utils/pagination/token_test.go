package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard values
	createdAt := time.Date(2023, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(createdAt, "txn-42")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, "txn-42", decodedID, "ID should match after decode")

	// Non-UTC input is normalised
	local := time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("CST", -6*3600))
	decodedLocal, _, err := DecodeToken(EncodeToken(local, "x"))
	assert.NoError(t, err)
	assert.True(t, local.Equal(decodedLocal), "Instant should survive a zone change")

	// IDs containing the separator are kept whole
	_, id, err := DecodeToken(EncodeToken(createdAt, "a|b"))
	assert.NoError(t, err)
	assert.Equal(t, "a|b", id)
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z")))
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Missing ID
	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("2023-05-15T00:00:00Z|")))
	assert.Error(t, err)

	// Invalid date
	_, _, err = DecodeToken(base64.StdEncoding.EncodeToString([]byte("notadate|txn-1")))
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention date parsing issue")
}
