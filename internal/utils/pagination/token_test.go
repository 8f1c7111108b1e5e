package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	// Standard date/time values
	effectiveDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 1, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(effectiveDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedEffectiveDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, effectiveDate, decodedEffectiveDate, "Effective date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")

	// Zero time values
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate, "Zero date should match after decode")
	assert.Equal(t, zeroTime, decodedZeroTime, "Zero time should match after decode")

	// Current time values
	now := time.Now().UTC()
	nowToken := EncodeToken(now, now)
	decodedNowDate, decodedNowTime, err := DecodeToken(nowToken)
	assert.NoError(t, err, "Decoding current time should not return an error")
	assert.True(t, now.Equal(decodedNowDate), "Current date should match after decode")
	assert.True(t, now.Equal(decodedNowTime), "Current time should match after decode")
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Missing separator
	invalidToken := "MjAyNi0wMS0xNVQwMDowMDowMFo=" // Base64 encoded date without separator
	_, _, err = DecodeToken(invalidToken)
	assert.Error(t, err, "Should return an error for invalid token format")
	assert.Contains(t, err.Error(), "split", "Error should mention splitting issue")

	// Invalid date before the separator
	invalidDateToken := "bm90YWRhdGV8MjAyNi0wMS0xNVQxNDozMDo0NS4xMjM0NTY3ODla" // "notadate|2026-01-15T14:30:45.123456789Z"
	_, _, err = DecodeToken(invalidDateToken)
	assert.Error(t, err, "Should return an error for invalid date format")
	assert.Contains(t, err.Error(), "effective date parse", "Error should mention date parsing issue")
}

func TestEncodeDecodeStringToken(t *testing.T) {
	token := EncodeStringToken("CASH-001")
	assert.NotEmpty(t, token)

	decoded, err := DecodeStringToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, "CASH-001", decoded, "Cursor should match after decode")

	// Empty cursor round-trips
	emptyDecoded, err := DecodeStringToken(EncodeStringToken(""))
	assert.NoError(t, err)
	assert.Equal(t, "", emptyDecoded)

	_, err = DecodeStringToken("not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
}
