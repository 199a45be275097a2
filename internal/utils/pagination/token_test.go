package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Test case 1: Standard values
	createdAt := time.Date(2026, 3, 12, 14, 30, 45, 123456789, time.UTC)
	rowID := "5f1c7a2e-1111-2222-3333-444455556666"

	token := EncodeToken(createdAt, rowID)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedCreatedAt, decodedID, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")
	assert.Equal(t, rowID, decodedID, "Row ID should match after decode")

	// Test case 2: Zero time value
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, rowID)
	decodedZeroTime, decodedZeroID, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")
	assert.Equal(t, rowID, decodedZeroID, "Row ID should match after decode")

	// Test case 3: Current time
	now := time.Now().UTC()
	nowToken := EncodeToken(now, rowID)
	decodedNowTime, _, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")

	// Due to potential nanosecond precision issues, use Equal instead of direct comparison
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")

	// Test case 4: Row IDs containing the separator survive the round trip
	weirdID := "prefix|suffix"
	weirdToken := EncodeToken(createdAt, weirdID)
	_, decodedWeirdID, err := DecodeToken(weirdToken)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, weirdID, decodedWeirdID, "Row ID with separator should survive")
}

func TestDecodeTokenError(t *testing.T) {
	// Test invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Test invalid format (missing separator)
	invalidToken := "MjAyMy0wNS0xNVQwMDowMDowMFo=" // Base64 encoded timestamp without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Test invalid timestamp
	invalidDateToken := "bm90YWRhdGV8c29tZS1yb3ctaWQ=" // Base64 encoded "notadate|some-row-id"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid timestamp")
	assert.Contains(t, err.Error(), "created_at parse", "Error should mention timestamp parsing issue")
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	date := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	token := EncodeDateBasedToken(date)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, date, decoded, "Date should match after decode")

	_, err = DecodeDateBasedToken("!!!")
	assert.Error(t, err, "Should return an error for invalid base64")
}
